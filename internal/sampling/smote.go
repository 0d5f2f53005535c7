package sampling

import (
	"math/rand/v2"
	"sort"

	"careerpath/internal"
	"careerpath/internal/errors"

	"gonum.org/v1/gonum/floats"
)

// SMOTEConfig controls synthetic minority oversampling
type SMOTEConfig struct {
	Neighbors int
	Seed      uint64
}

// DefaultSMOTEConfig uses five neighbours and seed 42
func DefaultSMOTEConfig() SMOTEConfig {
	return SMOTEConfig{Neighbors: 5, Seed: 42}
}

// SMOTE oversamples every class up to the size of the largest one. Each synthetic
// row lies on the segment between a class member and one of its nearest
// same-class neighbours. The inputs are not modified; originals come first in the output.
func SMOTE(X [][]float64, y []int, cfg SMOTEConfig) ([][]float64, []int, error) {
	if len(X) != len(y) {
		return nil, nil, errors.InvalidInput("feature rows and labels differ in length")
	}
	if len(X) == 0 {
		return nil, nil, errors.InvalidInput("cannot oversample an empty partition")
	}
	if cfg.Neighbors < 1 {
		return nil, nil, errors.InvalidInput("SMOTE needs at least one neighbour")
	}

	byClass := groupByClass(y)
	classes := sortedClasses(byClass)
	target := 0
	for _, c := range classes {
		if len(byClass[c]) > target {
			target = len(byClass[c])
		}
	}

	outX := make([][]float64, len(X), len(classes)*target)
	copy(outX, X)
	outY := make([]int, len(y), len(classes)*target)
	copy(outY, y)

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xbf58476d1ce4e5b9))
	for _, c := range classes {
		members := byClass[c]
		need := target - len(members)
		if need == 0 {
			continue
		}

		k := cfg.Neighbors
		if k > len(members)-1 {
			k = len(members) - 1
		}
		neighbors := nearestNeighbors(X, members, k)

		for s := 0; s < need; s++ {
			pick := rng.IntN(len(members))
			base := X[members[pick]]
			synthetic := make([]float64, len(base))
			if k == 0 {
				copy(synthetic, base)
			} else {
				other := X[neighbors[pick][rng.IntN(k)]]
				diff := make([]float64, len(base))
				floats.SubTo(diff, other, base)
				floats.AddScaledTo(synthetic, base, rng.Float64(), diff)
			}
			outX = append(outX, synthetic)
			outY = append(outY, c)
		}
		internal.DefaultLogger.Debug("[SMOTE] class %d: %d -> %d rows (k=%d)", c, len(members), target, k)
	}
	return outX, outY, nil
}

// nearestNeighbors returns, for each member, the row indices of its k nearest
// other members; equal distances keep the lower member position first.
func nearestNeighbors(X [][]float64, members []int, k int) [][]int {
	out := make([][]int, len(members))
	if k == 0 {
		return out
	}
	type cand struct {
		row  int
		dist float64
	}
	for i, mi := range members {
		cands := make([]cand, 0, len(members)-1)
		for j, mj := range members {
			if i == j {
				continue
			}
			cands = append(cands, cand{row: mj, dist: floats.Distance(X[mi], X[mj], 2)})
		}
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
		rows := make([]int, k)
		for n := 0; n < k; n++ {
			rows[n] = cands[n].row
		}
		out[i] = rows
	}
	return out
}
