package testkit

import (
	"testing"

	"careerpath/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyGeneratorIsDeterministic(t *testing.T) {
	cfg := DefaultSurveyConfig()
	cfg.Rows = 120

	a := NewSurveyDataGenerator(cfg).Generate()
	b := NewSurveyDataGenerator(cfg).Generate()
	assert.Equal(t, a.Records, b.Records)
	assert.Equal(t, a.Targets, b.Targets)

	cfg.Seed = 7
	c := NewSurveyDataGenerator(cfg).Generate()
	assert.NotEqual(t, a.Records, c.Records)
}

func TestSurveyGeneratorRowsAreValid(t *testing.T) {
	cfg := DefaultSurveyConfig()
	cfg.Rows = 300
	cfg.Noise = 0.5
	ds := NewSurveyDataGenerator(cfg).Generate()

	require.Equal(t, 300, ds.Len())
	counts := map[string]int{}
	for i, rec := range ds.Records {
		require.NoError(t, rec.Validate(), "row %d", i)
		counts[ds.Targets[i]]++
	}
	for _, career := range DefaultCareers() {
		assert.Equal(t, 50, counts[career], career)
	}
}

func TestGenerateExcelParsesBack(t *testing.T) {
	for _, text := range []bool{false, true} {
		cfg := DefaultSurveyConfig()
		cfg.Rows = 60
		cfg.TextCategories = text
		data := NewSurveyDataGenerator(cfg).GenerateExcel()

		assert.True(t, data.HasColumn("Favorite Color"))
		assert.True(t, data.HasColumn("Birth Month"))

		ds, err := dataset.FromExcel(data)
		require.NoError(t, err)
		assert.Equal(t, NewSurveyDataGenerator(cfg).Generate().Records, ds.Records)
	}
}

func TestAnswersAreValid(t *testing.T) {
	g := NewSurveyDataGenerator(DefaultSurveyConfig())
	for _, career := range append(DefaultCareers(), "Astronaut") {
		a := g.Answers(career)
		_, err := a.Record()
		assert.NoError(t, err, career)
	}
}
