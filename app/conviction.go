package app

import (
	"regexp"
	"sort"
	"strings"
	"time"

	models "sales-intel/database/models_pkg"
)

// Sentiment keyword patterns run against lower-cased call notes. One hit is
// one pattern occurrence, so a note repeating "bullish" twice scores twice.
var (
	bullishPattern = regexp.MustCompile(`bullish|upside|overweight|conviction|\blong\b|\bpositive\b|constructive`)
	bearishPattern = regexp.MustCompile(`bearish|downside|underweight|cautious|\bshort\b|\bnegative\b|overvalued`)
)

// CountSentimentHits returns the bullish and bearish keyword hit counts in a
// free-text note.
func CountSentimentHits(notes string) (bullish, bearish int) {
	lowered := strings.ToLower(notes)
	bullish = len(bullishPattern.FindAllString(lowered, -1))
	bearish = len(bearishPattern.FindAllString(lowered, -1))
	return bullish, bearish
}

// BuildConvictions scores every stock a client has traded or discussed and
// keeps the single top stock per client.
//
//	conviction_score = trades + 2*mentions + 3*bullish - 2*bearish
//
// Ties break by higher score first, then lexicographically smaller ticker, so
// selection is stable across refreshes. Trade concentration (focus share) is
// measured against the client's stock-linked trades only; basket and OTC
// fills without a ticker dilute nothing.
func BuildConvictions(trades []models.TradeExecution, calls []models.CallLog, stocks map[int64]models.Stock, now time.Time) []models.Conviction {
	type stockStats struct {
		stockID      *int64
		tradeCount   int
		netDirection int
		mentions     int
		bullish      int
		bearish      int
	}

	perClient := make(map[int64]map[string]*stockStats)
	tickerTrades := make(map[int64]int) // stock-linked trade count per client

	getStats := func(clientID int64, ticker string) *stockStats {
		byTicker, ok := perClient[clientID]
		if !ok {
			byTicker = make(map[string]*stockStats)
			perClient[clientID] = byTicker
		}
		st, ok := byTicker[ticker]
		if !ok {
			st = &stockStats{}
			byTicker[ticker] = st
		}
		return st
	}

	for _, t := range trades {
		if t.Ticker == nil || *t.Ticker == "" {
			continue
		}
		st := getStats(t.ClientID, *t.Ticker)
		st.tradeCount++
		if st.stockID == nil {
			st.stockID = t.StockID
		}
		if t.Side == "Buy" {
			st.netDirection++
		} else {
			st.netDirection--
		}
		tickerTrades[t.ClientID]++
	}

	for _, c := range calls {
		if c.StockID == nil {
			continue
		}
		stock, ok := stocks[*c.StockID]
		if !ok {
			continue
		}
		st := getStats(c.ClientID, stock.Ticker)
		st.mentions++
		if st.stockID == nil {
			id := *c.StockID
			st.stockID = &id
		}
		bull, bear := CountSentimentHits(c.NotesRaw)
		st.bullish += bull
		st.bearish += bear
	}

	clientIDs := make([]int64, 0, len(perClient))
	for id := range perClient {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	rows := make([]models.Conviction, 0, len(clientIDs))
	for _, clientID := range clientIDs {
		byTicker := perClient[clientID]

		tickers := make([]string, 0, len(byTicker))
		for ticker := range byTicker {
			tickers = append(tickers, ticker)
		}
		sort.Strings(tickers)

		bestTicker := ""
		bestScore := 0.0
		for _, ticker := range tickers {
			st := byTicker[ticker]
			score := convictionScore(st.tradeCount, st.mentions, st.bullish, st.bearish)
			if bestTicker == "" || score > bestScore {
				bestTicker = ticker
				bestScore = score
			}
		}

		top := byTicker[bestTicker]
		focusShare := 0.0
		if total := tickerTrades[clientID]; total > 0 {
			focusShare = float64(top.tradeCount) / float64(total)
		}

		rows = append(rows, models.Conviction{
			ClientID:             clientID,
			TopConvictionStock:   bestTicker,
			TopConvictionStockID: top.stockID,
			TradeCount:           top.tradeCount,
			CallMentions:         top.mentions,
			NetDirection:         top.netDirection,
			TradeConcentration:   focusShare,
			ConvictionScore:      bestScore,
			BullishMentions:      top.bullish,
			BearishMentions:      top.bearish,
			ConvictionLevel:      classifyConvictionLevel(focusShare),
			SentimentSignal:      classifySentiment(top.netDirection, top.bullish, top.bearish),
			UpdatedAt:            now,
		})
	}
	return rows
}

func convictionScore(trades, mentions, bullish, bearish int) float64 {
	return float64(trades) + 2*float64(mentions) + 3*float64(bullish) - 2*float64(bearish)
}

// classifyConvictionLevel buckets the trade-focus share of the top stock
func classifyConvictionLevel(focusShare float64) string {
	switch {
	case focusShare >= 0.25:
		return "Very High"
	case focusShare >= 0.15:
		return "High"
	case focusShare >= 0.08:
		return "Moderate"
	default:
		return "Diversified"
	}
}

// classifySentiment combines net trade direction with note language.
// Direction with agreeing language reads as an outright view (Bullish or
// Bearish); direction without it reads as positioning (Accumulating or
// Reducing); no direction is Neutral.
func classifySentiment(netDirection, bullish, bearish int) string {
	switch {
	case netDirection > 0 && bullish > bearish:
		return "Bullish"
	case netDirection < 0 && bearish > bullish:
		return "Bearish"
	case netDirection > 0:
		return "Accumulating"
	case netDirection < 0:
		return "Reducing"
	default:
		return "Neutral"
	}
}
