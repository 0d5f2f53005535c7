// Package forest implements a random forest classifier: bootstrapped CART trees
// with gini splits, balanced class weights and soft voting.
package forest

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"careerpath/internal"
	"careerpath/internal/errors"

	"golang.org/x/sync/semaphore"
)

// ClassWeight selects how classes are weighted during fitting
type ClassWeight string

const (
	// ClassWeightBalanced weights each class by n / (numClasses * count)
	ClassWeightBalanced ClassWeight = "balanced"
	// ClassWeightNone gives every row weight 1
	ClassWeightNone ClassWeight = "none"
)

// Config holds forest hyper-parameters
type Config struct {
	Trees           int         `json:"trees"`
	MaxDepth        int         `json:"max_depth"`
	MinSamplesSplit int         `json:"min_samples_split"`
	MinSamplesLeaf  int         `json:"min_samples_leaf"`
	MaxFeatures     int         `json:"max_features"` // 0 means floor(sqrt(features))
	ClassWeight     ClassWeight `json:"class_weight"`
	Bootstrap       bool        `json:"bootstrap"`
	Seed            uint64      `json:"seed"`
	Workers         int         `json:"-"` // 0 means runtime.NumCPU()
}

// DefaultConfig returns the forest the career model is trained with
func DefaultConfig() Config {
	return Config{
		Trees:           600,
		MaxDepth:        20,
		MinSamplesSplit: 3,
		MinSamplesLeaf:  1,
		ClassWeight:     ClassWeightBalanced,
		Bootstrap:       true,
		Seed:            42,
	}
}

// Forest is a fitted random forest
type Forest struct {
	NumClasses  int
	NumFeatures int
	Trees       []Tree
	Importances []float64
	Config      Config
}

// Fit grows cfg.Trees trees in parallel. Every tree draws its own seed from
// cfg.Seed up front, so the result does not depend on scheduling.
func Fit(ctx context.Context, X [][]float64, y []int, numClasses int, cfg Config) (*Forest, error) {
	if err := validateInput(X, y, numClasses, cfg); err != nil {
		return nil, err
	}

	numFeatures := len(X[0])
	maxFeatures := cfg.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Max(1, math.Floor(math.Sqrt(float64(numFeatures)))))
	}
	if maxFeatures > numFeatures {
		maxFeatures = numFeatures
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	classWeights := computeClassWeights(y, numClasses, cfg.ClassWeight)

	master := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	seeds := make([]uint64, cfg.Trees)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	start := time.Now()
	log.Printf("[Forest] Fitting %d trees on %d rows x %d features (%d classes, max_features=%d, workers=%d)",
		cfg.Trees, len(X), numFeatures, numClasses, maxFeatures, workers)

	trees := make([]Tree, cfg.Trees)
	importances := make([][]float64, cfg.Trees)
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var acquireErr error

	for i := 0; i < cfg.Trees; i++ {
		if err := ctx.Err(); err != nil {
			acquireErr = err
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			trees[i], importances[i] = fitTree(X, y, numClasses, maxFeatures, classWeights, cfg, seeds[i])
			if internal.DefaultLogger.Enabled(internal.LogLevelDebug) {
				internal.DefaultLogger.Debug("[Forest] tree %d: %d nodes, depth %d", i, len(trees[i].Nodes), trees[i].Depth())
			}
		}(i)
	}
	wg.Wait()

	if acquireErr != nil {
		return nil, errors.Wrap(acquireErr, "forest fit cancelled")
	}

	log.Printf("[Forest] Fitted %d trees in %.2fs", cfg.Trees, time.Since(start).Seconds())

	return &Forest{
		NumClasses:  numClasses,
		NumFeatures: numFeatures,
		Trees:       trees,
		Importances: averageImportances(importances, numFeatures),
		Config:      cfg,
	}, nil
}

// Validate checks that a decoded forest can be walked: every split points
// forward to nodes in range and every leaf carries NumClasses probabilities.
func (f *Forest) Validate() error {
	if len(f.Trees) == 0 || f.NumClasses <= 0 || f.NumFeatures <= 0 {
		return fmt.Errorf("forest has %d trees, %d classes, %d features", len(f.Trees), f.NumClasses, f.NumFeatures)
	}
	for t, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", t)
		}
		for i, n := range tree.Nodes {
			if n.Feature < 0 {
				if len(n.Value) != f.NumClasses {
					return fmt.Errorf("tree %d leaf %d has %d class probabilities, want %d", t, i, len(n.Value), f.NumClasses)
				}
				continue
			}
			if n.Feature >= f.NumFeatures {
				return fmt.Errorf("tree %d node %d splits on feature %d of %d", t, i, n.Feature, f.NumFeatures)
			}
			// children are always stored after their parent, which also rules out cycles
			if n.Left <= i || n.Left >= len(tree.Nodes) || n.Right <= i || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has children %d/%d outside (%d,%d)", t, i, n.Left, n.Right, i, len(tree.Nodes))
			}
		}
	}
	return nil
}

func validateInput(X [][]float64, y []int, numClasses int, cfg Config) error {
	if len(X) == 0 {
		return errors.InvalidInput("cannot fit a forest on zero rows")
	}
	if len(X) != len(y) {
		return errors.InvalidInput(fmt.Sprintf("%d feature rows but %d labels", len(X), len(y)))
	}
	if cfg.Trees <= 0 {
		return errors.InvalidInput("forest needs at least one tree")
	}
	if cfg.MaxDepth <= 0 || cfg.MinSamplesSplit < 2 || cfg.MinSamplesLeaf < 1 {
		return errors.InvalidInput("invalid tree size limits")
	}
	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return errors.InvalidInput(fmt.Sprintf("row %d has %d features, expected %d", i, len(row), width))
		}
	}
	for i, c := range y {
		if c < 0 || c >= numClasses {
			return errors.InvalidInput(fmt.Sprintf("row %d has class %d outside [0,%d)", i, c, numClasses))
		}
	}
	return nil
}

func computeClassWeights(y []int, numClasses int, mode ClassWeight) []float64 {
	weights := make([]float64, numClasses)
	if mode != ClassWeightBalanced {
		for c := range weights {
			weights[c] = 1
		}
		return weights
	}
	counts := make([]int, numClasses)
	for _, c := range y {
		counts[c]++
	}
	for c, n := range counts {
		if n > 0 {
			weights[c] = float64(len(y)) / float64(numClasses*n)
		}
	}
	return weights
}

func fitTree(X [][]float64, y []int, numClasses, maxFeatures int, classWeights []float64, cfg Config, seed uint64) (Tree, []float64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x94d049bb133111eb))
	n := len(X)

	weights := make([]float64, n)
	if cfg.Bootstrap {
		for i := 0; i < n; i++ {
			weights[rng.IntN(n)]++
		}
	} else {
		for i := range weights {
			weights[i] = 1
		}
	}

	samples := make([]int, 0, n)
	for i := range weights {
		if weights[i] > 0 {
			weights[i] *= classWeights[y[i]]
			samples = append(samples, i)
		}
	}

	b := &treeBuilder{
		X:           X,
		y:           y,
		weights:     weights,
		numClasses:  numClasses,
		maxFeatures: maxFeatures,
		cfg:         cfg,
		rng:         rng,
	}
	tree := b.build(samples)
	return tree, b.importance
}

func averageImportances(perTree [][]float64, numFeatures int) []float64 {
	out := make([]float64, numFeatures)
	for _, imp := range perTree {
		sum := 0.0
		for _, v := range imp {
			sum += v
		}
		if sum <= 0 {
			continue
		}
		for f, v := range imp {
			out[f] += v / sum
		}
	}
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total > 0 {
		for f := range out {
			out[f] /= total
		}
	}
	return out
}

// PredictProba averages the leaf distributions of every tree
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.NumFeatures {
		return nil, errors.InvalidInput(fmt.Sprintf("expected %d features, got %d", f.NumFeatures, len(x)))
	}
	probs := make([]float64, f.NumClasses)
	for i := range f.Trees {
		for c, p := range f.Trees[i].Proba(x) {
			probs[c] += p
		}
	}
	for c := range probs {
		probs[c] /= float64(len(f.Trees))
	}
	return probs, nil
}

// Predict returns the most probable class; ties go to the lower index
func (f *Forest) Predict(x []float64) (int, error) {
	probs, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return Argmax(probs), nil
}

// Argmax returns the index of the largest value, the first one on ties
func Argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
