package forest

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable builds three classes split on the first feature; the second feature is noise
func separable(n int) ([][]float64, []int) {
	rng := rand.New(rand.NewPCG(3, 3))
	X := make([][]float64, 0, n)
	y := make([]int, 0, n)
	for i := 0; i < n; i++ {
		c := i % 3
		X = append(X, []float64{float64(c*10) + rng.Float64()*5, rng.Float64() * 100})
		y = append(y, c)
	}
	return X, y
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Trees = 25
	cfg.MaxFeatures = 2
	return cfg
}

func TestFitSeparableData(t *testing.T) {
	X, y := separable(90)
	f, err := Fit(context.Background(), X, y, 3, smallConfig())
	require.NoError(t, err)

	assert.Len(t, f.Trees, 25)
	correct := 0
	for i, x := range X {
		pred, err := f.Predict(x)
		require.NoError(t, err)
		if pred == y[i] {
			correct++
		}
	}
	assert.Equal(t, len(X), correct)

	probs, err := f.PredictProba([]float64{22, 50})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs[0]+probs[1]+probs[2], 1e-9)
	assert.Equal(t, 2, Argmax(probs))

	assert.Greater(t, f.Importances[0], f.Importances[1])
}

func TestFitIsDeterministicAcrossWorkerCounts(t *testing.T) {
	X, y := separable(60)
	cfg := smallConfig()
	cfg.MaxFeatures = 1

	cfg.Workers = 1
	a, err := Fit(context.Background(), X, y, 3, cfg)
	require.NoError(t, err)
	cfg.Workers = 8
	b, err := Fit(context.Background(), X, y, 3, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Trees, b.Trees)
	for _, x := range X {
		pa, _ := a.PredictProba(x)
		pb, _ := b.PredictProba(x)
		assert.Equal(t, pa, pb)
	}
}

func TestMaxDepthIsHonoured(t *testing.T) {
	X, y := separable(90)
	cfg := smallConfig()
	cfg.MaxDepth = 1
	f, err := Fit(context.Background(), X, y, 3, cfg)
	require.NoError(t, err)
	for _, tree := range f.Trees {
		assert.LessOrEqual(t, tree.Depth(), 1)
	}
}

func TestBalancedClassWeights(t *testing.T) {
	w := computeClassWeights([]int{0, 0, 0, 1}, 2, ClassWeightBalanced)
	assert.InDelta(t, 4.0/6.0, w[0], 1e-12)
	assert.InDelta(t, 2.0, w[1], 1e-12)

	w = computeClassWeights([]int{0, 1}, 3, ClassWeightNone)
	assert.Equal(t, []float64{1, 1, 1}, w)
}

func TestFitRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	_, err := Fit(ctx, nil, nil, 2, smallConfig())
	assert.Error(t, err)

	_, err = Fit(ctx, [][]float64{{1}, {2}}, []int{0}, 2, smallConfig())
	assert.Error(t, err)

	_, err = Fit(ctx, [][]float64{{1}, {2}}, []int{0, 5}, 2, smallConfig())
	assert.Error(t, err)

	_, err = Fit(ctx, [][]float64{{1}, {2, 3}}, []int{0, 1}, 2, smallConfig())
	assert.Error(t, err)
}

func TestFitHonoursCancellation(t *testing.T) {
	X, y := separable(30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := smallConfig()
	cfg.Workers = 1
	_, err := Fit(ctx, X, y, 3, cfg)
	assert.Error(t, err)
}

func TestPredictProbaWidthCheck(t *testing.T) {
	X, y := separable(30)
	f, err := Fit(context.Background(), X, y, 3, smallConfig())
	require.NoError(t, err)
	_, err = f.PredictProba([]float64{1})
	assert.Error(t, err)
}

func TestArgmaxTies(t *testing.T) {
	assert.Equal(t, 1, Argmax([]float64{0.3, 0.35, 0.35}))
	assert.Equal(t, 0, Argmax([]float64{0.5, 0.5}))
}

func TestPureNodeIsLeaf(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []int{1, 1, 1}
	cfg := smallConfig()
	cfg.Trees = 1
	cfg.MaxFeatures = 1
	f, err := Fit(context.Background(), X, y, 2, cfg)
	require.NoError(t, err)
	require.Len(t, f.Trees[0].Nodes, 1)
	assert.Equal(t, []float64{0, 1}, f.Trees[0].Nodes[0].Value)
}

func TestValidate(t *testing.T) {
	X, y := separable(30)
	f, err := Fit(context.Background(), X, y, 3, smallConfig())
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	leaf := Node{Feature: -1, Value: []float64{0.2, 0.3, 0.5}}
	tests := []struct {
		name  string
		nodes []Node
	}{
		{"no nodes", nil},
		{"short leaf", []Node{{Feature: -1, Value: []float64{1}}}},
		{"feature out of range", []Node{{Feature: 7, Left: 1, Right: 2}, leaf, leaf}},
		{"child out of range", []Node{{Feature: 0, Left: 1, Right: 5}, leaf, leaf}},
		{"self loop", []Node{{Feature: 0, Left: 0, Right: 1}, leaf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := &Forest{NumClasses: 3, NumFeatures: 2, Trees: []Tree{{Nodes: tt.nodes}}}
			assert.Error(t, bad.Validate())
		})
	}
}
