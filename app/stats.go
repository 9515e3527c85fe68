package app

import "sort"

// topCategory returns the most frequent key in counts and its count.
// Ties break by higher count first, then lexicographically smaller key, so
// the result never depends on map iteration order.
func topCategory(counts map[string]int) (string, int) {
	best := ""
	bestCount := 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best, bestCount
}

// herfindahl computes the concentration index over category counts:
// the sum of squared shares. 1.0 means all observations in one category.
// Returns 0 when there are no observations.
func herfindahl(counts map[string]int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		share := float64(c) / float64(total)
		sum += share * share
	}
	return sum
}

// percentileRanks assigns each value its population-relative rank in [0,1]
// using the mean-rank convention: tied values share the average of the ranks
// they occupy. A single-element population ranks 0.5. The population must be
// passed in explicitly; ranks are only meaningful relative to the full
// current client population of a refresh.
func percentileRanks(values []float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}
	if n == 1 {
		ranks[0] = 0.5
		return ranks
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	// walk runs of equal values; each member gets the mean ordinal of the run
	i := 0
	for i < n {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		meanOrdinal := float64(i+j) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = meanOrdinal / float64(n-1)
		}
		i = j + 1
	}
	return ranks
}

// ratioOrNil returns recent/prior, or nil when prior is zero. A zero
// denominator is "no signal", never infinity.
func ratioOrNil(recent, prior int) *float64 {
	if prior == 0 {
		return nil
	}
	r := float64(recent) / float64(prior)
	return &r
}

func floatPtr(v float64) *float64 {
	return &v
}
