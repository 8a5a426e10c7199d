// Package oracle judges strategy output against a reference computation.
package oracle

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"go.uber.org/zap"
)

// Verdict is the oracle's opinion about one output.
type Verdict string

const (
	Unknown   Verdict = "unknown"
	Correct   Verdict = "correct"
	Incorrect Verdict = "incorrect"
)

func verdictOf(match bool) Verdict {
	if match {
		return Correct
	}
	return Incorrect
}

// Judge compares output with the expected result for category computed from
// the exact arguments the strategy received. Output is the strategy's
// normalized value (algorithms.Result.Value). A reference computation that
// fails or panics yields Unknown.
func Judge(category algorithms.Category, arguments algorithms.Arguments, output any) (verdict Verdict) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logx.Logger.Warn(
				"reference computation panicked",
				zap.String("category", string(category)),
				zap.Any("panic", recovered),
			)
			verdict = Unknown
		}
	}()

	verdict, err := judge(category, arguments, output)
	if err != nil {
		return Unknown
	}
	return verdict
}

func judge(category algorithms.Category, arguments algorithms.Arguments, output any) (Verdict, error) {
	switch category {
	case algorithms.Sorting:
		return judgeSorting(arguments, output), nil
	case algorithms.Searching:
		return judgeSearching(arguments, output), nil
	case algorithms.StringMatching:
		return judgeStringMatching(arguments, output), nil
	case algorithms.SubsetGeneration:
		return judgeSubsets(arguments, output), nil
	case algorithms.Knapsack:
		return judgeKnapsack(arguments, output)
	case algorithms.GraphTraversal:
		return judgeTraversal(arguments, output)
	case algorithms.ShortestPath:
		return judgeShortestPath(arguments, output)
	case algorithms.MinimumSpanningTree:
		return judgeSpanningTree(arguments, output)
	}

	return Unknown, fmt.Errorf("no oracle for category %q", category)
}

// ExpectedSorted is the reference ordering: ascending, natural order.
func ExpectedSorted(array []int) []int {
	expected := slices.Clone(array)
	slices.Sort(expected)
	return expected
}

func judgeSorting(arguments algorithms.Arguments, output any) Verdict {
	got, ok := output.([]int)
	if !ok {
		return Incorrect
	}
	return verdictOf(slices.Equal(got, ExpectedSorted(arguments.Array)))
}

// ExpectedPresence reports whether target occurs in array. Searching is
// judged on presence only; the returned index may point anywhere.
func ExpectedPresence(array []int, target int) bool {
	return slices.Contains(array, target)
}

func judgeSearching(arguments algorithms.Arguments, output any) Verdict {
	index, ok := output.(int)
	if !ok {
		return Incorrect
	}
	return verdictOf((index != algorithms.NotFound) == ExpectedPresence(arguments.Array, arguments.Target))
}

// ExpectedOccurrences returns every offset of pattern in text, overlapping
// occurrences included.
func ExpectedOccurrences(text, pattern string) []int {
	offsets := make([]int, 0)
	if pattern == "" {
		return offsets
	}

	for i := 0; i+len(pattern) <= len(text); i++ {
		if strings.HasPrefix(text[i:], pattern) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func judgeStringMatching(arguments algorithms.Arguments, output any) Verdict {
	got, ok := output.([]int)
	if !ok {
		return Incorrect
	}
	return verdictOf(slices.Equal(got, ExpectedOccurrences(arguments.Text, arguments.Pattern)))
}

// canonicalSubsets sorts every subset and renders it as a key, then sorts
// the keys, so two collections are equal regardless of either order.
func canonicalSubsets(subsets [][]int) []string {
	keys := make([]string, 0, len(subsets))
	for _, subset := range subsets {
		sorted := slices.Clone(subset)
		slices.Sort(sorted)

		parts := make([]string, len(sorted))
		for i, value := range sorted {
			parts[i] = strconv.Itoa(value)
		}
		keys = append(keys, "{"+strings.Join(parts, ",")+"}")
	}
	sort.Strings(keys)
	return keys
}

// ExpectedPowerset returns all 2^n subsets of array.
func ExpectedPowerset(array []int) [][]int {
	n := len(array)
	subsets := make([][]int, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		subset := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, array[i])
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

func judgeSubsets(arguments algorithms.Arguments, output any) Verdict {
	got, ok := output.([][]int)
	if !ok {
		return Incorrect
	}
	return verdictOf(slices.Equal(canonicalSubsets(got), canonicalSubsets(ExpectedPowerset(arguments.Array))))
}

// ExpectedKnapsackValue is the optimal value computed by dynamic programming.
func ExpectedKnapsackValue(values, weights []int, capacity int) (int, error) {
	if len(values) != len(weights) {
		return 0, fmt.Errorf("values and weights differ in length: %d != %d", len(values), len(weights))
	}
	if capacity < 0 {
		return 0, fmt.Errorf("capacity must not be negative: %d", capacity)
	}

	best := make([]int, capacity+1)
	for i := range values {
		if weights[i] < 0 {
			return 0, fmt.Errorf("weight %d must not be negative", i)
		}
		for w := capacity; w >= weights[i]; w-- {
			if candidate := best[w-weights[i]] + values[i]; candidate > best[w] {
				best[w] = candidate
			}
		}
	}
	return best[capacity], nil
}

func judgeKnapsack(arguments algorithms.Arguments, output any) (Verdict, error) {
	expected, err := ExpectedKnapsackValue(arguments.Values, arguments.Weights, arguments.Capacity)
	if err != nil {
		return Unknown, err
	}

	switch got := output.(type) {
	case algorithms.KnapsackSolution:
		return verdictOf(got.Value == expected), nil
	case int:
		return verdictOf(got == expected), nil
	}

	return Incorrect, nil
}
