package training

import (
	"fmt"
	"sort"
	"strings"

	"careerpath/internal/artifact"
	"careerpath/internal/features"
	"careerpath/internal/forest"
)

// topImportances is how many features the report lists
const topImportances = 10

// Report renders the evaluation as markdown
func Report(run *artifact.Run, eval *Evaluation, model *forest.Forest) string {
	var b strings.Builder

	b.WriteString("# Career model report\n\n")
	if run != nil {
		fmt.Fprintf(&b, "- Run: `%s`\n", run.ID)
		fmt.Fprintf(&b, "- Trained: %s (%s)\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"), run.Duration)
		fmt.Fprintf(&b, "- Dataset: `%s`", run.Dataset)
		if !run.DatasetHash.IsEmpty() {
			fmt.Fprintf(&b, " (sha256 `%s`)", run.DatasetHash.Short())
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "- Rows: %d total, %d train (%d after SMOTE), %d test\n", run.Rows, run.TrainRows, run.Resampled, run.TestRows)
		fmt.Fprintf(&b, "- Forest: %d trees, max depth %d, class weight %s, seed %d\n\n",
			run.Forest.Trees, run.Forest.MaxDepth, run.Forest.ClassWeight, run.Forest.Seed)
	}

	if eval == nil {
		return b.String()
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "**Accuracy: %.4f**\n\n", eval.Accuracy)
	fmt.Fprintf(&b, "Corrected predictions on %d held-out rows; %d moved to the runner-up class.\n\n", eval.Support, eval.Overrides)

	b.WriteString("## Classification report\n\n")
	b.WriteString("| Class | Precision | Recall | F1 | Support |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, c := range eval.Classes {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f | %d |\n", c.Class, c.Precision, c.Recall, c.F1, c.Support)
	}
	fmt.Fprintf(&b, "| **macro avg** | %.2f | %.2f | %.2f | %d |\n", eval.MacroPrecision, eval.MacroRecall, eval.MacroF1, eval.Support)
	fmt.Fprintf(&b, "| **weighted F1** | | | %.2f | %d |\n\n", eval.WeightedF1, eval.Support)

	b.WriteString("## Confusion matrix\n\n")
	b.WriteString("Rows are true classes, columns predicted.\n\n")
	classes := make([]string, len(eval.Classes))
	for i, c := range eval.Classes {
		classes[i] = c.Class
	}
	b.WriteString("| |")
	for _, c := range classes {
		fmt.Fprintf(&b, " %s |", c)
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(classes)))
	b.WriteString("\n")
	for _, actual := range classes {
		fmt.Fprintf(&b, "| %s |", actual)
		for _, predicted := range classes {
			fmt.Fprintf(&b, " %d |", eval.Confusion[actual][predicted])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if model != nil && len(model.Importances) == features.NumFeatures {
		b.WriteString("## Feature importance\n\n")
		b.WriteString("| Feature | Importance |\n|---|---:|\n")
		for _, idx := range rankImportances(model.Importances) {
			fmt.Fprintf(&b, "| %s | %.4f |\n", features.Names[idx], model.Importances[idx])
		}
		b.WriteString("\n")
	}

	return b.String()
}

func rankImportances(importances []float64) []int {
	idx := make([]int, len(importances))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return importances[idx[a]] > importances[idx[b]]
	})
	if len(idx) > topImportances {
		idx = idx[:topImportances]
	}
	return idx
}
