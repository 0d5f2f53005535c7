package training

import (
	"fmt"
	"math"

	"careerpath/internal/decision"
	"careerpath/internal/errors"

	"github.com/sjwhitworth/golearn/evaluation"
)

// ClassReport is one row of the classification report
type ClassReport struct {
	Class     string  `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluation scores the corrected predictions on the test partition
type Evaluation struct {
	Accuracy       float64                    `json:"accuracy"`
	MacroPrecision float64                    `json:"macro_precision"`
	MacroRecall    float64                    `json:"macro_recall"`
	MacroF1        float64                    `json:"macro_f1"`
	WeightedF1     float64                    `json:"weighted_f1"`
	Support        int                        `json:"support"`
	Overrides      int                        `json:"overrides"` // predictions the corrector moved to the runner-up
	Classes        []ClassReport              `json:"classes"`
	Confusion      evaluation.ConfusionMatrix `json:"confusion"`
}

// Evaluate applies the decision rule to every probability row and scores the result
func Evaluate(classes []string, yTrue []int, probs [][]float64, rule decision.Rule) (*Evaluation, error) {
	if len(yTrue) != len(probs) {
		return nil, errors.InvalidInput(fmt.Sprintf("%d labels but %d probability rows", len(yTrue), len(probs)))
	}
	if len(yTrue) == 0 {
		return nil, errors.InvalidInput("cannot evaluate on an empty test partition")
	}

	cm := make(evaluation.ConfusionMatrix, len(classes))
	for _, c := range classes {
		cm[c] = make(map[string]int, len(classes))
	}

	eval := &Evaluation{Support: len(yTrue)}
	support := make([]int, len(classes))
	for i, row := range probs {
		choice := rule.Correct(row)
		if choice.Overridden {
			eval.Overrides++
		}
		if yTrue[i] < 0 || yTrue[i] >= len(classes) || choice.Class < 0 || choice.Class >= len(classes) {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d: class out of range", i))
		}
		cm[classes[yTrue[i]]][classes[choice.Class]]++
		support[yTrue[i]]++
	}

	eval.Confusion = cm
	eval.Accuracy = evaluation.GetAccuracy(cm)

	for i, c := range classes {
		r := ClassReport{
			Class:     c,
			Precision: finite(evaluation.GetPrecision(c, cm)),
			Recall:    finite(evaluation.GetRecall(c, cm)),
			F1:        finite(evaluation.GetF1Score(c, cm)),
			Support:   support[i],
		}
		eval.Classes = append(eval.Classes, r)
		eval.MacroPrecision += r.Precision
		eval.MacroRecall += r.Recall
		eval.MacroF1 += r.F1
		eval.WeightedF1 += r.F1 * float64(r.Support)
	}
	n := float64(len(classes))
	eval.MacroPrecision /= n
	eval.MacroRecall /= n
	eval.MacroF1 /= n
	eval.WeightedF1 /= float64(eval.Support)

	return eval, nil
}

// finite reports undefined ratios (no predictions or no support) as zero
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
