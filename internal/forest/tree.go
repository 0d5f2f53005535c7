package forest

import (
	"math/rand/v2"
	"sort"
)

// featureThreshold is the smallest gap between two values that can be split on
const featureThreshold = 1e-7

// Node is one node of a decision tree, stored in a flat slice.
// Leaves have Feature == -1 and carry the class distribution in Value.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     []float64
}

// Tree is a fitted classification tree
type Tree struct {
	Nodes []Node
}

// Proba returns the class distribution of the leaf x falls into
func (t *Tree) Proba(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth returns the depth of the deepest leaf
func (t *Tree) Depth() int {
	var walk func(i, d int) int
	walk = func(i, d int) int {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return d
		}
		return max(walk(n.Left, d+1), walk(n.Right, d+1))
	}
	return walk(0, 0)
}

// treeBuilder grows one tree over a weighted sample of the training rows
type treeBuilder struct {
	X           [][]float64
	y           []int
	weights     []float64 // per row, zero for rows not in the bootstrap
	numClasses  int
	maxFeatures int
	cfg         Config
	rng         *rand.Rand

	nodes      []Node
	importance []float64
}

func (b *treeBuilder) build(samples []int) Tree {
	b.importance = make([]float64, len(b.X[0]))
	b.grow(samples, 0)
	return Tree{Nodes: b.nodes}
}

// grow appends the subtree over samples and returns its root index
func (b *treeBuilder) grow(samples []int, depth int) int {
	counts, total := b.classWeights(samples)
	impurity := gini(counts, total)

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1})

	if depth >= b.cfg.MaxDepth ||
		len(samples) < b.cfg.MinSamplesSplit ||
		len(samples) < 2*b.cfg.MinSamplesLeaf ||
		impurity <= 0 {
		b.nodes[idx].Value = normalize(counts, total)
		return idx
	}

	sp, ok := b.bestSplit(samples, impurity, total)
	if !ok {
		b.nodes[idx].Value = normalize(counts, total)
		return idx
	}

	b.importance[sp.feature] += total*impurity - sp.weightedChildImpurity

	var left, right []int
	for _, s := range samples {
		if b.X[s][sp.feature] <= sp.threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[idx] = Node{Feature: sp.feature, Threshold: sp.threshold, Left: l, Right: r}
	return idx
}

type split struct {
	feature               int
	threshold             float64
	weightedChildImpurity float64
}

// bestSplit searches a random subset of features for the split with the lowest
// weighted child gini. Features that are constant within the node do not count
// toward the subset size.
func (b *treeBuilder) bestSplit(samples []int, impurity, total float64) (split, bool) {
	order := b.rng.Perm(len(b.X[0]))

	best := split{weightedChildImpurity: total * impurity}
	found := false
	visited := 0

	sorted := make([]int, len(samples))
	leftCounts := make([]float64, b.numClasses)
	rightCounts := make([]float64, b.numClasses)
	nodeCounts := b.totals(samples)

	for _, f := range order {
		if visited >= b.maxFeatures {
			break
		}

		copy(sorted, samples)
		sort.SliceStable(sorted, func(i, j int) bool { return b.X[sorted[i]][f] < b.X[sorted[j]][f] })
		lo, hi := b.X[sorted[0]][f], b.X[sorted[len(sorted)-1]][f]
		if hi-lo <= featureThreshold {
			continue
		}
		visited++

		for c := range leftCounts {
			leftCounts[c] = 0
		}
		copy(rightCounts, nodeCounts)
		leftTotal, rightTotal := 0.0, total

		for i := 0; i < len(sorted)-1; i++ {
			s := sorted[i]
			w := b.weights[s]
			leftCounts[b.y[s]] += w
			rightCounts[b.y[s]] -= w
			leftTotal += w
			rightTotal -= w

			a, next := b.X[s][f], b.X[sorted[i+1]][f]
			if next-a <= featureThreshold {
				continue
			}
			if i+1 < b.cfg.MinSamplesLeaf || len(sorted)-(i+1) < b.cfg.MinSamplesLeaf {
				continue
			}
			child := leftTotal*gini(leftCounts, leftTotal) + rightTotal*gini(rightCounts, rightTotal)
			if child < best.weightedChildImpurity-1e-12 {
				threshold := a/2 + next/2
				if threshold >= next {
					threshold = a
				}
				best = split{feature: f, threshold: threshold, weightedChildImpurity: child}
				found = true
			}
		}
	}
	return best, found
}

func (b *treeBuilder) classWeights(samples []int) ([]float64, float64) {
	counts := b.totals(samples)
	total := 0.0
	for _, c := range counts {
		total += c
	}
	return counts, total
}

func (b *treeBuilder) totals(samples []int) []float64 {
	counts := make([]float64, b.numClasses)
	for _, s := range samples {
		counts[b.y[s]] += b.weights[s]
	}
	return counts
}

func gini(counts []float64, total float64) float64 {
	if total <= 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := c / total
		sum += p * p
	}
	return 1 - sum
}

func normalize(counts []float64, total float64) []float64 {
	out := make([]float64, len(counts))
	if total <= 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}
