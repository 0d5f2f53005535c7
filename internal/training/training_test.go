package training

import (
	"context"
	"strings"
	"testing"

	"careerpath/internal/artifact"
	"careerpath/internal/dataset"
	"careerpath/internal/decision"
	"careerpath/internal/errors"
	"careerpath/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallConfig keeps test runs fast; everything except the forest size is the real pipeline
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Forest.Trees = 40
	cfg.Forest.MaxDepth = 10
	cfg.Forest.Workers = 4
	return cfg
}

func syntheticDataset(rows int) *dataset.Dataset {
	cfg := testkit.DefaultSurveyConfig()
	cfg.Rows = rows
	return testkit.NewSurveyDataGenerator(cfg).Generate()
}

func TestRunMergesLabelsAndLearns(t *testing.T) {
	res, err := NewTrainer(smallConfig()).Run(context.Background(), syntheticDataset(360))
	require.NoError(t, err)

	assert.Equal(t, []string{"Artist", "Conventional Career", "Entrepreneur", "Scientist", "Teacher"}, res.Encoder.Classes)
	assert.Equal(t, 4, res.Persona.K())
	assert.Len(t, res.Forest.Trees, 40)

	run := res.Run
	assert.Equal(t, 360, run.Rows)
	assert.Equal(t, 72, run.TestRows)
	assert.Equal(t, 288, run.TrainRows)
	// Conventional Career holds two careers' rows, so SMOTE lifts the other four to its size
	assert.Greater(t, run.Resampled, run.TrainRows)
	assert.Len(t, run.Features, 21)
	assert.True(t, run.DatasetHash.IsEmpty())

	// profiles are well separated; a working pipeline clears chance (0.2) by a wide margin
	assert.Greater(t, res.Evaluation.Accuracy, 0.5)
	assert.Equal(t, 72, res.Evaluation.Support)
}

func TestRunIsDeterministic(t *testing.T) {
	ds := syntheticDataset(240)
	a, err := NewTrainer(smallConfig()).Run(context.Background(), ds)
	require.NoError(t, err)
	b, err := NewTrainer(smallConfig()).Run(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, a.Evaluation.Accuracy, b.Evaluation.Accuracy)
	assert.Equal(t, a.Evaluation.Confusion, b.Evaluation.Confusion)
	assert.Equal(t, a.Persona.Centroids, b.Persona.Centroids)
	assert.Equal(t, a.Forest.Trees, b.Forest.Trees)
	assert.NotEqual(t, a.Run.ID, b.Run.ID)
}

func TestRunRejectsSingletonClass(t *testing.T) {
	ds := syntheticDataset(120)
	ds.Targets[0] = "Astronaut"

	_, err := NewTrainer(smallConfig()).Run(context.Background(), ds)
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetInvalid, errors.GetCode(err))
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTrainer(smallConfig()).Run(ctx, syntheticDataset(120))
	assert.Error(t, err)
}

func TestTrainAndSaveWritesEveryArtifact(t *testing.T) {
	store := artifact.NewStore(t.TempDir())
	res, err := NewTrainer(smallConfig()).TrainAndSave(context.Background(), syntheticDataset(180), store)
	require.NoError(t, err)

	enc, err := store.LoadEncoder()
	require.NoError(t, err)
	assert.Equal(t, res.Encoder.Classes, enc.Classes)

	run, err := store.LoadRun()
	require.NoError(t, err)
	assert.Equal(t, res.Run.ID, run.ID)
	assert.Equal(t, res.Evaluation.Accuracy, run.Accuracy)

	report, err := store.LoadReport()
	require.NoError(t, err)
	assert.Contains(t, report, "## Classification report")
	assert.Contains(t, report, "Conventional Career")
}

func TestEvaluate(t *testing.T) {
	classes := []string{"A", "B", "C"}
	probs := [][]float64{
		{0.8, 0.1, 0.1},    // A
		{0.1, 0.8, 0.1},    // B
		{0.30, 0.35, 0.35}, // corrected to C
		{0.6, 0.3, 0.1},    // A, truly C
	}
	eval, err := Evaluate(classes, []int{0, 1, 2, 2}, probs, decision.DefaultRule)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, eval.Accuracy, 1e-9)
	assert.Equal(t, 1, eval.Overrides)
	assert.Equal(t, 1, eval.Confusion["C"]["A"])
	assert.Equal(t, 1, eval.Confusion["C"]["C"])

	assert.InDelta(t, 0.5, eval.Classes[0].Precision, 1e-9)
	assert.InDelta(t, 1.0, eval.Classes[0].Recall, 1e-9)
	assert.InDelta(t, 0.5, eval.Classes[2].Recall, 1e-9)
	assert.Equal(t, 2, eval.Classes[2].Support)
}

func TestEvaluateUndefinedScoresAreZero(t *testing.T) {
	eval, err := Evaluate([]string{"A", "B"}, []int{0, 0}, [][]float64{{0.9, 0.1}, {0.7, 0.3}}, decision.DefaultRule)
	require.NoError(t, err)
	assert.Equal(t, 0.0, eval.Classes[1].Precision)
	assert.Equal(t, 0.0, eval.Classes[1].F1)
	assert.Equal(t, 0, eval.Classes[1].Support)
}

func TestEvaluateInputErrors(t *testing.T) {
	_, err := Evaluate([]string{"A"}, []int{0}, nil, decision.DefaultRule)
	assert.Error(t, err)
	_, err = Evaluate([]string{"A"}, nil, nil, decision.DefaultRule)
	assert.Error(t, err)
}

func TestReportWithoutModel(t *testing.T) {
	eval, err := Evaluate([]string{"A", "B"}, []int{0, 1}, [][]float64{{0.9, 0.1}, {0.2, 0.8}}, decision.DefaultRule)
	require.NoError(t, err)

	report := Report(nil, eval, nil)
	assert.True(t, strings.HasPrefix(report, "# Career model report"))
	assert.Contains(t, report, "**Accuracy: 1.0000**")
	assert.NotContains(t, report, "Feature importance")
}
