package app

import (
	"regexp"
	"sort"
	"strings"
	"time"

	models "sales-intel/database/models_pkg"
)

// HintFamily is one independent keyword family for position-intent extraction.
// Unlike topic tagging, families are non-exclusive: a single note may score
// against several families at once.
//
// Known limitation: matching is naive substring/regex and does not handle
// negation, so "not looking to add" still counts as an add hint. Tracked as an
// open issue rather than silently patched here.
type HintFamily struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultHintFamilies is the production family table, evaluated independently
// against lower-cased note text.
var DefaultHintFamilies = []HintFamily{
	{"holding", regexp.MustCompile(`\bhold(ing)?\b|\bown\b|\bposition\b|\bstake\b|core holding`)},
	{"add", regexp.MustCompile(`\badd(ing)?\b|accumulate|buy more|top up|increase (the )?position|scale in`)},
	{"reduce", regexp.MustCompile(`\btrim\b|reduce|sell down|lighten|take profit|scale out|\bexit\b`)},
	{"diversification", regexp.MustCompile(`diversif|rebalanc|rotat|allocation|spread`)},
	{"riskmgmt", regexp.MustCompile(`hedg|stop loss|protect|downside protection|risk management|insurance`)},
}

// BuildPositionHints aggregates stock-level intent hints from call notes.
// One row per (client, stock) pair discussed on at least one call that is
// linked to a stock; calls without a stock link carry no position signal.
func BuildPositionHints(calls []models.CallLog, stocks map[int64]models.Stock, families []HintFamily, now time.Time) []models.PositionHint {
	type hintKey struct {
		clientID int64
		stockID  int64
	}
	type hintAcc struct {
		mentionCount  int
		familyHits    map[string]int
		lastMentionTs time.Time
	}

	accs := make(map[hintKey]*hintAcc)
	for _, c := range calls {
		if c.StockID == nil {
			continue
		}
		key := hintKey{clientID: c.ClientID, stockID: *c.StockID}
		acc, ok := accs[key]
		if !ok {
			acc = &hintAcc{familyHits: make(map[string]int)}
			accs[key] = acc
		}

		acc.mentionCount++
		lowered := strings.ToLower(c.NotesRaw)
		for _, fam := range families {
			if fam.Pattern.MatchString(lowered) {
				acc.familyHits[fam.Name]++
			}
		}
		if c.CallTimestamp.After(acc.lastMentionTs) {
			acc.lastMentionTs = c.CallTimestamp
		}
	}

	keys := make([]hintKey, 0, len(accs))
	for k := range accs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].clientID != keys[j].clientID {
			return keys[i].clientID < keys[j].clientID
		}
		return keys[i].stockID < keys[j].stockID
	})

	hints := make([]models.PositionHint, 0, len(accs))
	for _, key := range keys {
		acc := accs[key]
		ticker := ""
		if s, ok := stocks[key.stockID]; ok {
			ticker = s.Ticker
		}
		hints = append(hints, models.PositionHint{
			ClientID:             key.clientID,
			StockID:              key.stockID,
			Ticker:               ticker,
			MentionCount:         acc.mentionCount,
			HoldingHints:         acc.familyHits["holding"],
			AddHints:             acc.familyHits["add"],
			ReduceHints:          acc.familyHits["reduce"],
			DiversificationHints: acc.familyHits["diversification"],
			RiskMgmtHints:        acc.familyHits["riskmgmt"],
			LastMentionTs:        acc.lastMentionTs,
			UpdatedAt:            now,
		})
	}
	return hints
}
