package app

import (
	"sort"
	"time"

	models "sales-intel/database/models_pkg"
)

// TimeWindowLabel maps an hour of day to a discrete contact window.
// Hours outside all windows label as Other (early morning, evening, night).
func TimeWindowLabel(hour int) string {
	switch {
	case hour >= 8 && hour <= 10:
		return "Morning"
	case hour >= 11 && hour <= 13:
		return "Midday"
	case hour >= 14 && hour <= 16:
		return "Afternoon"
	case hour >= 17 && hour <= 19:
		return "Late Afternoon"
	default:
		return "Other"
	}
}

// BuildCallPatterns computes one call pattern row per client with at least one
// logged call. Weekday ties break toward the lowest time.Weekday index
// (Sunday=0); hour ties break toward the earliest hour. Timing confidence is
// the share of calls landing on the best weekday, a concentration measure and
// not a statistical confidence interval.
func BuildCallPatterns(calls []models.CallLog, now time.Time) []models.CallPattern {
	type clientAcc struct {
		callCount     int
		durationSum   float64
		weekdayCounts [7]int
		hourCounts    [24]int
		lastCallTs    time.Time
	}

	accs := make(map[int64]*clientAcc)
	for _, c := range calls {
		acc, ok := accs[c.ClientID]
		if !ok {
			acc = &clientAcc{}
			accs[c.ClientID] = acc
		}
		acc.callCount++
		acc.durationSum += c.DurationMinutes
		acc.weekdayCounts[int(c.CallTimestamp.Weekday())]++
		acc.hourCounts[c.CallTimestamp.Hour()]++
		if c.CallTimestamp.After(acc.lastCallTs) {
			acc.lastCallTs = c.CallTimestamp
		}
	}

	clientIDs := make([]int64, 0, len(accs))
	for id := range accs {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	patterns := make([]models.CallPattern, 0, len(accs))
	for _, clientID := range clientIDs {
		acc := accs[clientID]

		bestWeekday, bestWeekdayCount := 0, 0
		for day, count := range acc.weekdayCounts {
			if count > bestWeekdayCount {
				bestWeekday = day
				bestWeekdayCount = count
			}
		}

		bestHour, bestHourCount := 0, 0
		for hour, count := range acc.hourCounts {
			if count > bestHourCount {
				bestHour = hour
				bestHourCount = count
			}
		}

		patterns = append(patterns, models.CallPattern{
			ClientID:           clientID,
			CallCount:          acc.callCount,
			AvgCallDurationMin: acc.durationSum / float64(acc.callCount),
			BestWeekdayNum:     bestWeekday,
			BestHour:           bestHour,
			BestTimeWindow:     TimeWindowLabel(bestHour),
			TimingConfidence:   float64(bestWeekdayCount) / float64(acc.callCount),
			LastCallTs:         acc.lastCallTs,
			UpdatedAt:          now,
		})
	}
	return patterns
}
