package helpers

import "fmt"

// FormatPercent formats a [0,1] share as a percentage with one decimal
func FormatPercent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// FormatScore formats a composite score to two decimals, the precision the
// category cutoffs are defined at
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
