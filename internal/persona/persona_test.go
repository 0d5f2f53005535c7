package persona

import (
	"math/rand/v2"
	"testing"

	"careerpath/domain/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobs returns four well separated groups of 5-dimensional points
func blobs(perGroup int) ([][]float64, []int) {
	rng := rand.New(rand.NewPCG(7, 7))
	centers := [][]float64{
		{1, 1, 1, 10, 1},
		{9, 9, 1, 90, 10},
		{2, 8, 9, 50, 5},
		{8, 2, 8, 20, 3},
	}
	var points [][]float64
	var truth []int
	for g, c := range centers {
		for i := 0; i < perGroup; i++ {
			p := make([]float64, len(c))
			for j := range c {
				p[j] = c[j] + rng.NormFloat64()*0.3
			}
			points = append(points, p)
			truth = append(truth, g)
		}
	}
	return points, truth
}

func TestFitRecoversSeparatedGroups(t *testing.T) {
	points, truth := blobs(30)
	model, err := Fit(points, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 4, model.K())
	require.Len(t, model.Labels, len(points))

	// every true group maps onto exactly one cluster
	mapping := map[int]int{}
	for i, g := range truth {
		if c, ok := mapping[g]; ok {
			assert.Equal(t, c, model.Labels[i], "point %d split from its group", i)
		} else {
			mapping[g] = model.Labels[i]
		}
	}
	used := map[int]bool{}
	for _, c := range mapping {
		used[c] = true
	}
	assert.Len(t, used, 4)
}

func TestFitIsDeterministic(t *testing.T) {
	points, _ := blobs(20)
	a, err := Fit(points, DefaultConfig())
	require.NoError(t, err)
	b, err := Fit(points, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Centroids, b.Centroids)
}

func TestAssignMatchesFitLabels(t *testing.T) {
	points, _ := blobs(15)
	model, err := Fit(points, DefaultConfig())
	require.NoError(t, err)

	for i, p := range points {
		assert.Equal(t, model.Labels[i], model.Assign(p))
	}
}

func TestFitRejectsTooFewPoints(t *testing.T) {
	_, err := Fit([][]float64{{1, 2, 3, 4, 5}}, DefaultConfig())
	assert.Error(t, err)

	_, err = Fit([][]float64{{1}, {2}, {3}, {4, 5}}, DefaultConfig())
	assert.Error(t, err)
}

func TestFitIdenticalPoints(t *testing.T) {
	points := make([][]float64, 8)
	for i := range points {
		points[i] = []float64{5, 5, 5, 50, 5}
	}
	model, err := Fit(points, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.0, model.Inertia)
}

func TestAssigners(t *testing.T) {
	rec := survey.Record{RiskTaking: 9, FinancialStability: 9, Leadership: 1, AcademicPerformance: 90, TechSavviness: 10}

	var a Assigner = Placeholder{Value: PlaceholderPersona}
	assert.Equal(t, 1, a.Assign(rec))
	assert.Equal(t, ModePlaceholder, a.Mode())

	model := &Model{Centroids: [][]float64{
		{1, 1, 1, 10, 1},
		{9, 9, 1, 90, 10},
	}}
	a = Fitted{Model: model}
	assert.Equal(t, 1, a.Assign(rec))
	assert.Equal(t, ModeFitted, a.Mode())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("fitted")
	require.NoError(t, err)
	assert.Equal(t, ModeFitted, m)

	_, err = ParseMode("live")
	assert.Error(t, err)
}

func TestModelValidate(t *testing.T) {
	assert.NoError(t, (&Model{Centroids: [][]float64{{1, 2}, {3, 4}}}).Validate())
	assert.Error(t, (&Model{}).Validate())
	assert.Error(t, (&Model{Centroids: [][]float64{{}}}).Validate())
	assert.Error(t, (&Model{Centroids: [][]float64{{1, 2, 3, 4, 5}, {1, 2}}}).Validate())
}
