package persona

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"careerpath/internal/errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Config controls the k-means fit
type Config struct {
	K         int     `json:"k"`
	Seed      uint64  `json:"seed"`
	MaxIter   int     `json:"max_iter"`
	Tolerance float64 `json:"tolerance"` // relative to the mean per-feature variance
}

// DefaultConfig returns the persona clustering used by training: four personas, seed 42
func DefaultConfig() Config {
	return Config{
		K:         4,
		Seed:      42,
		MaxIter:   300,
		Tolerance: 1e-4,
	}
}

// Model is a fitted k-means clustering
type Model struct {
	Centroids  [][]float64 `json:"centroids"`
	Labels     []int       `json:"-"`
	Inertia    float64     `json:"inertia"`
	Iterations int         `json:"iterations"`
}

// K returns the number of clusters
func (m *Model) K() int {
	return len(m.Centroids)
}

// Validate checks that every centroid has the same, non-zero dimension
func (m *Model) Validate() error {
	if m.K() == 0 {
		return fmt.Errorf("persona model has no centroids")
	}
	dim := len(m.Centroids[0])
	if dim == 0 {
		return fmt.Errorf("centroid 0 is empty")
	}
	for c, centroid := range m.Centroids {
		if len(centroid) != dim {
			return fmt.Errorf("centroid %d has %d dimensions, centroid 0 has %d", c, len(centroid), dim)
		}
	}
	return nil
}

// Assign returns the index of the nearest centroid; ties go to the lower index
func (m *Model) Assign(point []float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range m.Centroids {
		if d := sqDist(point, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Fit clusters points with k-means++ seeding followed by Lloyd iterations
func Fit(points [][]float64, cfg Config) (*Model, error) {
	if cfg.K <= 0 {
		return nil, errors.InvalidInput("persona cluster count must be positive")
	}
	if len(points) < cfg.K {
		return nil, errors.InvalidInput(fmt.Sprintf("need at least %d records to fit %d personas, got %d", cfg.K, cfg.K, len(points)))
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, errors.InvalidInput(fmt.Sprintf("record %d has %d persona inputs, expected %d", i, len(p), dim))
		}
	}

	start := time.Now()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	tol := cfg.Tolerance * meanVariance(points)

	centroids := seedPlusPlus(points, cfg.K, rng)
	labels := make([]int, len(points))

	iter := 0
	for iter < cfg.MaxIter {
		iter++
		assignAll(points, centroids, labels)
		next := recompute(points, labels, centroids)

		shift := 0.0
		for c := range centroids {
			shift += sqDist(centroids[c], next[c])
		}
		centroids = next
		if shift <= tol {
			break
		}
	}
	inertia := assignAll(points, centroids, labels)

	log.Printf("[Persona] k-means k=%d converged in %d iterations (inertia %.2f, %.2fms)",
		cfg.K, iter, inertia, float64(time.Since(start).Nanoseconds())/1e6)

	return &Model{
		Centroids:  centroids,
		Labels:     labels,
		Inertia:    inertia,
		Iterations: iter,
	}, nil
}

// seedPlusPlus picks initial centroids with greedy k-means++: each step samples
// 2+ln(k) candidates weighted by squared distance and keeps the one that lowers
// the potential most.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	trials := 2 + int(math.Log(float64(k)))

	centroids := make([][]float64, 0, k)
	first := points[rng.IntN(n)]
	centroids = append(centroids, clone(first))

	closest := make([]float64, n)
	for i, p := range points {
		closest[i] = sqDist(p, first)
	}
	potential := floats.Sum(closest)

	cumulative := make([]float64, n)
	for len(centroids) < k {
		floats.CumSum(cumulative, closest)

		bestCandidate := -1
		bestPotential := math.Inf(1)
		var bestClosest []float64
		for t := 0; t < trials; t++ {
			target := rng.Float64() * potential
			cand := sort.SearchFloat64s(cumulative, target)
			if cand >= n {
				cand = n - 1
			}

			trial := make([]float64, n)
			for i, p := range points {
				trial[i] = math.Min(closest[i], sqDist(p, points[cand]))
			}
			if pot := floats.Sum(trial); pot < bestPotential {
				bestCandidate, bestPotential, bestClosest = cand, pot, trial
			}
		}

		centroids = append(centroids, clone(points[bestCandidate]))
		closest = bestClosest
		potential = bestPotential
	}
	return centroids
}

// assignAll writes the nearest centroid of every point into labels and returns the inertia
func assignAll(points, centroids [][]float64, labels []int) float64 {
	inertia := 0.0
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := sqDist(p, centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
		inertia += bestDist
	}
	return inertia
}

// recompute returns the mean of every cluster. An empty cluster takes over the
// point farthest from its current centroid.
func recompute(points [][]float64, labels []int, old [][]float64) [][]float64 {
	k, dim := len(old), len(old[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}

	taken := make(map[int]bool)
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), sums[c])
			continue
		}
		far, farDist := -1, -1.0
		for i, p := range points {
			if taken[i] || counts[labels[i]] <= 1 {
				continue
			}
			if d := sqDist(p, old[labels[i]]); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			copy(sums[c], old[c])
			continue
		}
		taken[far] = true
		copy(sums[c], points[far])
	}
	return sums
}

func meanVariance(points [][]float64) float64 {
	dim := len(points[0])
	column := make([]float64, len(points))
	total := 0.0
	for j := 0; j < dim; j++ {
		for i, p := range points {
			column[i] = p[j]
		}
		total += stat.PopVariance(column, nil)
	}
	return total / float64(dim)
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
