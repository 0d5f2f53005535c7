// Package sampling splits labelled rows into train/test partitions and
// rebalances the training partition with synthetic minority oversampling.
package sampling

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"careerpath/internal/errors"
)

// Split holds row indices of the two partitions, each in ascending order
type Split struct {
	Train []int
	Test  []int
}

// StratifiedSplit holds out testFraction of the rows, keeping every class's
// share of the test partition proportional to its share of all rows.
func StratifiedSplit(y []int, testFraction float64, seed uint64) (Split, error) {
	n := len(y)
	if testFraction <= 0 || testFraction >= 1 {
		return Split{}, errors.InvalidInput(fmt.Sprintf("test fraction must be in (0,1), got %v", testFraction))
	}

	byClass := groupByClass(y)
	classes := sortedClasses(byClass)
	for _, c := range classes {
		if len(byClass[c]) < 2 {
			return Split{}, errors.DatasetInvalid(fmt.Sprintf("class %d has a single row; stratified splitting needs at least 2", c))
		}
	}

	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest < len(classes) || n-nTest < len(classes) {
		return Split{}, errors.DatasetInvalid(fmt.Sprintf("%d rows cannot be split %.0f/%.0f across %d classes",
			n, (1-testFraction)*100, testFraction*100, len(classes)))
	}

	alloc := allocate(byClass, classes, nTest, n)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var split Split
	for _, c := range classes {
		rows := append([]int(nil), byClass[c]...)
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		split.Test = append(split.Test, rows[:alloc[c]]...)
		split.Train = append(split.Train, rows[alloc[c]:]...)
	}
	sort.Ints(split.Train)
	sort.Ints(split.Test)
	return split, nil
}

// allocate distributes nTest across classes by largest remainder, never taking
// a class's last training row.
func allocate(byClass map[int][]int, classes []int, nTest, n int) map[int]int {
	type share struct {
		class int
		frac  float64
	}
	alloc := make(map[int]int, len(classes))
	shares := make([]share, 0, len(classes))
	assigned := 0
	for _, c := range classes {
		exact := float64(len(byClass[c])) * float64(nTest) / float64(n)
		whole := int(math.Floor(exact))
		if whole > len(byClass[c])-1 {
			whole = len(byClass[c]) - 1
		}
		alloc[c] = whole
		assigned += whole
		shares = append(shares, share{class: c, frac: exact - float64(whole)})
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].frac > shares[j].frac })

	for assigned < nTest {
		progressed := false
		for _, s := range shares {
			if assigned == nTest {
				break
			}
			if alloc[s.class] < len(byClass[s.class])-1 {
				alloc[s.class]++
				assigned++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return alloc
}

func groupByClass(y []int) map[int][]int {
	byClass := make(map[int][]int)
	for i, c := range y {
		byClass[c] = append(byClass[c], i)
	}
	return byClass
}

func sortedClasses(byClass map[int][]int) []int {
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	return classes
}

// ClassCounts returns the number of rows of each class index in [0,numClasses)
func ClassCounts(y []int, numClasses int) []int {
	counts := make([]int, numClasses)
	for _, c := range y {
		counts[c]++
	}
	return counts
}

// Take returns the rows of X and y at the given indices
func Take(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	outX := make([][]float64, len(idx))
	outY := make([]int, len(idx))
	for i, j := range idx {
		outX[i] = X[j]
		outY[i] = y[j]
	}
	return outX, outY
}
