// Package labels holds the target-label relabeling table and the encoder that
// maps career labels to class indices and back.
package labels

import (
	"fmt"
	"sort"

	"careerpath/internal/errors"
)

// MergeTable folds near-duplicate careers into one umbrella label
var MergeTable = map[string]string{
	"Corporate Employee": "Conventional Career",
	"Government Officer": "Conventional Career",
}

// Merge applies a relabeling table; labels not in the table pass through
func Merge(targets []string, table map[string]string) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		if merged, ok := table[t]; ok {
			out[i] = merged
		} else {
			out[i] = t
		}
	}
	return out
}

// Encoder maps labels to class indices. Classes are sorted, so index i is Classes[i].
type Encoder struct {
	Classes []string `json:"classes"`
	index   map[string]int
}

// Fit builds an encoder over the distinct labels
func Fit(targets []string) (*Encoder, error) {
	if len(targets) == 0 {
		return nil, errors.InvalidInput("cannot fit a label encoder on zero labels")
	}
	seen := make(map[string]bool)
	var classes []string
	for _, t := range targets {
		if !seen[t] {
			seen[t] = true
			classes = append(classes, t)
		}
	}
	sort.Strings(classes)
	return NewEncoder(classes), nil
}

// NewEncoder builds an encoder over an already ordered class list
func NewEncoder(classes []string) *Encoder {
	e := &Encoder{Classes: classes}
	e.buildIndex()
	return e
}

func (e *Encoder) buildIndex() {
	e.index = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.index[c] = i
	}
}

// NumClasses returns the number of classes
func (e *Encoder) NumClasses() int {
	return len(e.Classes)
}

// Transform encodes labels to class indices
func (e *Encoder) Transform(targets []string) ([]int, error) {
	if e.index == nil {
		e.buildIndex()
	}
	out := make([]int, len(targets))
	for i, t := range targets {
		idx, ok := e.index[t]
		if !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("unseen label %q", t))
		}
		out[i] = idx
	}
	return out, nil
}

// Inverse decodes one class index
func (e *Encoder) Inverse(class int) (string, error) {
	if class < 0 || class >= len(e.Classes) {
		return "", errors.InvalidInput(fmt.Sprintf("class index %d out of range [0,%d)", class, len(e.Classes)))
	}
	return e.Classes[class], nil
}
