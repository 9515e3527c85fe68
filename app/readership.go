package app

import (
	"sort"
	"time"

	"sales-intel/database/facts"
	models "sales-intel/database/models_pkg"
)

// BuildReadershipIntel folds joined readership records into one intelligence
// row per reading client. Clients with no read events produce no row.
//
// Delay-based ratios use the floored day difference between report publish
// and read time. Events that predate publication (clock skew in the source
// feed) count as zero delay rather than negative.
func BuildReadershipIntel(records []facts.ReadershipRecord, now time.Time) []models.ReadershipIntel {
	type acc struct {
		totalReads   int
		typeCounts   map[string]int
		sectorCounts map[string]int
		delaySum     float64
		sameDay      int
		late         int
		lastRead     time.Time
	}

	perClient := make(map[int64]*acc)
	for _, r := range records {
		a, ok := perClient[r.ClientID]
		if !ok {
			a = &acc{typeCounts: make(map[string]int), sectorCounts: make(map[string]int)}
			perClient[r.ClientID] = a
		}
		a.totalReads++
		if r.ReportType != "" {
			a.typeCounts[r.ReportType]++
		}
		if r.ReportSector != "" {
			a.sectorCounts[r.ReportSector]++
		}

		delay := r.DaysDiff
		if delay < 0 {
			delay = 0
		}
		a.delaySum += float64(delay)
		if delay <= 1 {
			a.sameDay++
		}
		if delay >= 7 {
			a.late++
		}
		if r.ReadTimestamp.After(a.lastRead) {
			a.lastRead = r.ReadTimestamp
		}
	}

	clientIDs := make([]int64, 0, len(perClient))
	for id := range perClient {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	rows := make([]models.ReadershipIntel, 0, len(clientIDs))
	for _, clientID := range clientIDs {
		a := perClient[clientID]
		reads := float64(a.totalReads)
		avgDelay := a.delaySum / reads
		velocity := 1.0 / (1.0 + avgDelay)
		breadth := len(a.sectorCounts)

		prefType, _ := topCategory(a.typeCounts)
		prefSector, _ := topCategory(a.sectorCounts)

		rows = append(rows, models.ReadershipIntel{
			ClientID:               clientID,
			TotalReads:             a.totalReads,
			SectorBreadth:          breadth,
			PreferredReportType:    prefType,
			PreferredSector:        prefSector,
			AvgReadDelayDays:       avgDelay,
			ReadVelocityScore:      velocity,
			SameDayReadRatio:       float64(a.sameDay) / reads,
			LateReadRatio:          float64(a.late) / reads,
			ReaderSpeedType:        classifyReaderSpeed(avgDelay),
			ReaderBreadthType:      classifyReaderBreadth(breadth),
			ReadershipQualityScore: reads*0.3 + velocity*50 + float64(breadth)*2,
			LastReadTs:             a.lastRead,
			UpdatedAt:              now,
		})
	}
	return rows
}

func classifyReaderSpeed(avgDelayDays float64) string {
	switch {
	case avgDelayDays <= 1:
		return "Immediate"
	case avgDelayDays <= 3:
		return "Fast"
	case avgDelayDays <= 7:
		return "Normal"
	default:
		return "Slow"
	}
}

func classifyReaderBreadth(sectorBreadth int) string {
	switch {
	case sectorBreadth >= 8:
		return "Generalist"
	case sectorBreadth >= 4:
		return "Multi-Sector"
	default:
		return "Specialist"
	}
}
