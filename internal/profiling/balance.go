package profiling

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ClassCount is the number of rows of one career
type ClassCount struct {
	Class string  `json:"class"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// ClassBalance tests whether careers are equally represented
type ClassBalance struct {
	Counts    []ClassCount `json:"counts"` // largest first
	ChiSquare float64      `json:"chi_square"`
	DF        int          `json:"df"`
	PValue    float64      `json:"p_value"`
	Balanced  bool         `json:"balanced"` // uniformity not rejected at alpha 0.05
	Ratio     float64      `json:"imbalance_ratio"`
}

// CheckBalance runs a chi-square goodness-of-fit test against a uniform class distribution
func CheckBalance(targets []string) ClassBalance {
	counts := map[string]int{}
	for _, t := range targets {
		counts[t]++
	}

	balance := ClassBalance{Balanced: true, PValue: 1}
	for class, n := range counts {
		balance.Counts = append(balance.Counts, ClassCount{
			Class: class,
			Count: n,
			Share: float64(n) / float64(len(targets)),
		})
	}
	sort.Slice(balance.Counts, func(i, j int) bool {
		if balance.Counts[i].Count != balance.Counts[j].Count {
			return balance.Counts[i].Count > balance.Counts[j].Count
		}
		return balance.Counts[i].Class < balance.Counts[j].Class
	})

	k := len(balance.Counts)
	if k < 2 {
		return balance
	}

	expected := float64(len(targets)) / float64(k)
	for _, c := range balance.Counts {
		d := float64(c.Count) - expected
		balance.ChiSquare += d * d / expected
	}
	balance.DF = k - 1
	balance.PValue = distuv.ChiSquared{K: float64(balance.DF)}.Survival(balance.ChiSquare)
	balance.Balanced = balance.PValue > 0.05
	balance.Ratio = float64(balance.Counts[0].Count) / float64(balance.Counts[k-1].Count)
	return balance
}
