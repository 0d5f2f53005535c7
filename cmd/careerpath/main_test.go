package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"careerpath/internal/artifact"
	"careerpath/internal/config"
	"careerpath/internal/errors"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSynthTrainPredict(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "survey.xlsx")
	artifacts := filepath.Join(dir, "artifacts")
	t.Setenv("CAREER_ARTIFACT_DIR", artifacts)
	t.Setenv("CAREER_TREES", "25")
	t.Setenv("CAREER_WORKERS", "2")

	out, err := run(t, "synth", data, "--rows", "240", "--text")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 240 rows")

	out, err = run(t, "describe", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Conventional Career")

	out, err = run(t, "train", "--data", data, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy")
	assert.FileExists(t, filepath.Join(artifacts, artifact.ModelFile))
	assert.FileExists(t, filepath.Join(artifacts, artifact.RunFile))

	out, err = run(t, "predict", "--json", "--subject", "Science", "--tech-savviness", "Advanced", "--academic-performance", "91")
	require.NoError(t, err)
	var pred struct {
		Career        string `json:"career"`
		Probabilities []struct {
			Career string `json:"career"`
		} `json:"probabilities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &pred))
	assert.NotEmpty(t, pred.Career)
	assert.Len(t, pred.Probabilities, 5)
}

func TestPredictRejectsBadFlags(t *testing.T) {
	t.Setenv("CAREER_ARTIFACT_DIR", t.TempDir())

	_, err := run(t, "predict", "--age", "old")
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	_, err = run(t, "predict", "--age", "19")
	require.Error(t, err)
	assert.Equal(t, errors.CodeArtifactMissing, errors.GetCode(err))
}

func TestTrainingConfigFromEnvironment(t *testing.T) {
	c := &config.Config{Model: config.ModelConfig{Seed: 7, Trees: 10, MaxDepth: 4, Workers: 3}}
	tc := trainingConfig(c)
	assert.Equal(t, uint64(7), tc.Seed)
	assert.Equal(t, uint64(7), tc.Forest.Seed)
	assert.Equal(t, uint64(7), tc.SMOTE.Seed)
	assert.Equal(t, 10, tc.Forest.Trees)
	assert.Equal(t, 4, tc.Forest.MaxDepth)
	assert.Equal(t, 3, tc.Forest.Workers)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "work-environment", flagName("work_environment"))
	assert.Equal(t, "age", flagName("age"))
}
