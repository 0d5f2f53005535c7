package profiling

import (
	"bytes"
	"testing"

	"careerpath/internal/labels"
	"careerpath/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize("x", []float64{1, 2, 3, 4, 100})
	require.NoError(t, err)
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 22.0, s.Mean, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 1, s.Outliers)
	assert.Greater(t, s.Skewness, 0.0)

	_, err = Summarize("empty", nil)
	assert.Error(t, err)
}

func TestSkewnessOfConstantColumn(t *testing.T) {
	s, err := Summarize("c", []float64{5, 5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Skewness)
	assert.Equal(t, 0, s.Outliers)
}

func TestCheckBalance(t *testing.T) {
	even := CheckBalance([]string{"a", "b", "c", "a", "b", "c"})
	assert.True(t, even.Balanced)
	assert.Equal(t, 0.0, even.ChiSquare)
	assert.Equal(t, 2, even.DF)
	assert.InDelta(t, 1.0, even.PValue, 1e-9)

	var skewed []string
	for i := 0; i < 90; i++ {
		skewed = append(skewed, "a")
	}
	for i := 0; i < 10; i++ {
		skewed = append(skewed, "b")
	}
	b := CheckBalance(skewed)
	assert.False(t, b.Balanced)
	assert.InDelta(t, 64.0, b.ChiSquare, 1e-9)
	assert.Equal(t, "a", b.Counts[0].Class)
	assert.InDelta(t, 9.0, b.Ratio, 1e-9)

	single := CheckBalance([]string{"a", "a"})
	assert.True(t, single.Balanced)
	assert.Equal(t, 0, single.DF)
}

func TestProfileDataset(t *testing.T) {
	cfg := testkit.DefaultSurveyConfig()
	cfg.Rows = 120
	ds := testkit.NewSurveyDataGenerator(cfg).Generate()

	p, err := ProfileDataset(ds, labels.MergeTable)
	require.NoError(t, err)
	assert.Len(t, p.Columns, 13)
	assert.Len(t, p.Raw.Counts, 6)
	assert.True(t, p.Raw.Balanced)
	require.Len(t, p.Merged.Counts, 5)
	assert.Equal(t, "Conventional Career", p.Merged.Counts[0].Class)
	assert.Equal(t, 40, p.Merged.Counts[0].Count)

	var buf bytes.Buffer
	require.NoError(t, p.WriteText(&buf))
	assert.Contains(t, buf.String(), "Careers after merging")
	assert.Contains(t, buf.String(), "Risk-Taking Ability")
}
