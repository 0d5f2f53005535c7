// Package decision turns a class probability row into a final class, overriding
// low-confidence near ties in favour of the runner-up.
package decision

import "sort"

// Rule is the margin-based override: when the top probability is below
// TopBelow and the runner-up is above SecondAbove, the runner-up wins.
type Rule struct {
	TopBelow    float64 `json:"top_below"`
	SecondAbove float64 `json:"second_above"`
}

// DefaultRule is the rule used in evaluation and serving
var DefaultRule = Rule{TopBelow: 0.37, SecondAbove: 0.30}

// Choice is the outcome of correcting one probability row
type Choice struct {
	Class      int     // final class
	Top        int     // most probable class
	Second     int     // runner-up, -1 with fewer than two classes
	TopProb    float64 // probability of Top
	SecondProb float64 // probability of Second
	Overridden bool    // Class is the runner-up
}

// Rank orders class indices by probability, highest first. Equal
// probabilities keep the lower class index first.
func Rank(probs []float64) []int {
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return probs[order[a]] > probs[order[b]] })
	return order
}

// Correct applies the rule to one probability row. Top is the first class
// with the highest probability. Second is the next-to-last class of a stable
// ascending sort, so on a tied maximum it is Top itself and nothing changes.
func (r Rule) Correct(probs []float64) Choice {
	if len(probs) == 0 {
		return Choice{Class: -1, Top: -1, Second: -1}
	}
	top := 0
	for i, p := range probs {
		if p > probs[top] {
			top = i
		}
	}
	choice := Choice{
		Class:   top,
		Top:     top,
		Second:  -1,
		TopProb: probs[top],
	}
	if len(probs) < 2 {
		return choice
	}

	ascending := make([]int, len(probs))
	for i := range ascending {
		ascending[i] = i
	}
	sort.SliceStable(ascending, func(a, b int) bool { return probs[ascending[a]] < probs[ascending[b]] })
	choice.Second = ascending[len(ascending)-2]
	choice.SecondProb = probs[choice.Second]

	if choice.TopProb < r.TopBelow && choice.SecondProb > r.SecondAbove {
		choice.Class = choice.Second
		choice.Overridden = choice.Second != top
	}
	return choice
}

// Correct applies DefaultRule
func Correct(probs []float64) Choice {
	return DefaultRule.Correct(probs)
}

// CorrectAll applies the rule to every row and returns the final classes
func (r Rule) CorrectAll(rows [][]float64) []int {
	out := make([]int, len(rows))
	for i, row := range rows {
		out[i] = r.Correct(row).Class
	}
	return out
}
