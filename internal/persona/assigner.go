// Package persona groups respondents into behavioural personas with k-means.
// The clustering is fitted once during training; serving either reapplies the
// persisted centroids or uses a fixed placeholder persona.
package persona

import (
	"fmt"

	"careerpath/domain/survey"
	"careerpath/internal/features"
)

// Mode selects how a live record gets its persona
type Mode string

const (
	// ModeFitted reapplies the centroids fitted during training
	ModeFitted Mode = "fitted"
	// ModePlaceholder assigns the same persona to every record
	ModePlaceholder Mode = "placeholder"
)

// PlaceholderPersona is the constant persona used when clustering is not reapplied
const PlaceholderPersona = 1

// ParseMode validates a mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFitted, ModePlaceholder:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown persona mode %q (want %q or %q)", s, ModeFitted, ModePlaceholder)
	}
}

// Assigner gives a persona to a record at serving time
type Assigner interface {
	Assign(rec survey.Record) int
	Mode() Mode
}

// Placeholder always returns the same persona
type Placeholder struct {
	Value int
}

func (p Placeholder) Assign(survey.Record) int { return p.Value }
func (p Placeholder) Mode() Mode             { return ModePlaceholder }

// Fitted assigns the nearest persisted centroid
type Fitted struct {
	Model *Model
}

func (f Fitted) Assign(rec survey.Record) int {
	return f.Model.Assign(features.PersonaInputs(rec))
}

func (f Fitted) Mode() Mode { return ModeFitted }
