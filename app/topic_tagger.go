package app

import (
	"regexp"
	"sort"
	"strings"
	"time"

	models "sales-intel/database/models_pkg"
)

// TopicRule pairs a topic label with its keyword pattern. Rules are evaluated
// top to bottom with first-match-wins semantics; earlier rules take precedence
// when a text matches several patterns, so rule order is part of the contract.
type TopicRule struct {
	Topic   string
	Pattern *regexp.Regexp
}

// TopicGeneral is assigned when no rule matches.
const TopicGeneral = "General"

// DefaultTopicRules is the production rule table. Patterns run against
// lower-cased text, so keywords are written in lower case.
var DefaultTopicRules = []TopicRule{
	{"Valuation", regexp.MustCompile(`valuation|multiple|p/e|price target|cheap|expensive|discount to|premium to`)},
	{"Earnings", regexp.MustCompile(`earnings|results|quarter|guidance|consensus|eps|beat|miss`)},
	{"Dividend", regexp.MustCompile(`dividend|yield|payout|buyback|capital return`)},
	{"Growth", regexp.MustCompile(`growth|expansion|pipeline|market share|upside`)},
	{"Risk", regexp.MustCompile(`risk|concern|worried|downside|drawdown|exposure`)},
	{"ESG", regexp.MustCompile(`esg|sustainab|governance|climate|carbon|emissions`)},
	{"Macro", regexp.MustCompile(`macro|rates|inflation|fed|central bank|gdp|currency|recession`)},
}

// TagTopic assigns exactly one topic to the text: the first matching rule
// wins, General when nothing matches. The input is lower-cased before
// matching so callers may pass raw note text.
func TagTopic(text string, rules []TopicRule) string {
	lowered := strings.ToLower(text)
	for _, rule := range rules {
		if rule.Pattern.MatchString(lowered) {
			return rule.Topic
		}
	}
	return TopicGeneral
}

// callTopicText builds the tagging input for a call: its notes concatenated
// with the linked report's title and summary when one is attached.
func callTopicText(call models.CallLog, reports map[int64]models.Report) string {
	if call.RelatedReportID == nil {
		return call.NotesRaw
	}
	report, ok := reports[*call.RelatedReportID]
	if !ok {
		return call.NotesRaw
	}
	return call.NotesRaw + " " + report.Title + " " + report.Summary3Bullets
}

// BuildTopicSignals tags every call and aggregates one dominant-topic row per
// client. Dominant-topic ties break by rule precedence: the topic whose rule
// appears earlier in the table wins, General last.
func BuildTopicSignals(calls []models.CallLog, reports map[int64]models.Report, rules []TopicRule, now time.Time) []models.TopicSignal {
	// precedence index for tie-breaking
	precedence := make(map[string]int, len(rules)+1)
	for i, rule := range rules {
		precedence[rule.Topic] = i
	}
	precedence[TopicGeneral] = len(rules)

	type topicAcc struct {
		counts   map[string]int
		lastSeen map[string]time.Time
		total    int
	}

	accs := make(map[int64]*topicAcc)
	for _, c := range calls {
		topic := TagTopic(callTopicText(c, reports), rules)

		acc, ok := accs[c.ClientID]
		if !ok {
			acc = &topicAcc{
				counts:   make(map[string]int),
				lastSeen: make(map[string]time.Time),
			}
			accs[c.ClientID] = acc
		}
		acc.counts[topic]++
		acc.total++
		if c.CallTimestamp.After(acc.lastSeen[topic]) {
			acc.lastSeen[topic] = c.CallTimestamp
		}
	}

	clientIDs := make([]int64, 0, len(accs))
	for id := range accs {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	signals := make([]models.TopicSignal, 0, len(accs))
	for _, clientID := range clientIDs {
		acc := accs[clientID]

		topTopic := ""
		topCount := 0
		for topic, count := range acc.counts {
			if count > topCount ||
				(count == topCount && precedence[topic] < precedence[topTopic]) {
				topTopic = topic
				topCount = count
			}
		}

		signals = append(signals, models.TopicSignal{
			ClientID:      clientID,
			TopTopic:      topTopic,
			TopTopicShare: float64(topCount) / float64(acc.total),
			TopTopicCount: topCount,
			LastSignalTs:  acc.lastSeen[topTopic],
			UpdatedAt:     now,
		})
	}
	return signals
}
