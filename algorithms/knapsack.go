package algorithms

import (
	"context"
	"sort"
)

// Knapsack strategies return the solution and the number of comparisons.
// Items with a missing weight are ignored.

func KnapsackDP(ctx context.Context, values, weights []int, capacity int) (KnapsackSolution, int) {
	counter := newStepCounter(ctx)
	n := min(len(values), len(weights))
	if capacity < 0 {
		capacity = 0
	}

	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, capacity+1)
	}

	for i := 1; i <= n; i++ {
		for w := 0; w <= capacity; w++ {
			counter.tick()
			table[i][w] = table[i-1][w]
			if weights[i-1] <= w {
				if candidate := values[i-1] + table[i-1][w-weights[i-1]]; candidate > table[i][w] {
					table[i][w] = candidate
				}
			}
		}
	}

	selected := make([]int, 0)
	for i, w := n, capacity; i > 0 && w > 0; i-- {
		counter.tick()
		if table[i][w] != table[i-1][w] {
			selected = append(selected, i-1)
			w -= weights[i-1]
		}
	}

	return KnapsackSolution{Value: table[n][capacity], Selected: selected}, counter.steps
}

func KnapsackBacktracking(ctx context.Context, values, weights []int, capacity int) (KnapsackSolution, int) {
	counter := newStepCounter(ctx)
	n := min(len(values), len(weights))
	best := KnapsackSolution{Selected: []int{}}
	chosen := make([]int, 0, n)

	var backtrack func(index, value, weight int)
	backtrack = func(index, value, weight int) {
		counter.tick()
		if weight > capacity {
			return
		}
		if value > best.Value {
			best.Value = value
			best.Selected = append([]int{}, chosen...)
		}
		if index >= n {
			return
		}

		chosen = append(chosen, index)
		backtrack(index+1, value+values[index], weight+weights[index])
		chosen = chosen[:len(chosen)-1]

		backtrack(index+1, value, weight)
	}
	backtrack(0, 0, 0)

	return best, counter.steps
}

type knapsackItem struct {
	index  int
	value  int
	weight int
}

// KnapsackBranchBound explores items by value density and prunes branches
// whose fractional relaxation cannot beat the best value found so far.
func KnapsackBranchBound(ctx context.Context, values, weights []int, capacity int) (KnapsackSolution, int) {
	counter := newStepCounter(ctx)
	n := min(len(values), len(weights))
	items := make([]knapsackItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, knapsackItem{index: i, value: values[i], weight: weights[i]})
	}
	sort.SliceStable(items, func(a, b int) bool {
		// value_a/weight_a > value_b/weight_b without dividing by zero.
		return items[a].value*items[b].weight > items[b].value*items[a].weight
	})

	bound := func(level, value, weight int) float64 {
		if weight > capacity {
			return 0
		}
		estimate := float64(value)
		remaining := capacity - weight
		for i := level; i < len(items); i++ {
			if items[i].weight <= remaining {
				remaining -= items[i].weight
				estimate += float64(items[i].value)
				continue
			}
			if items[i].weight > 0 {
				estimate += float64(items[i].value) * float64(remaining) / float64(items[i].weight)
			}
			break
		}
		return estimate
	}

	best := KnapsackSolution{Selected: []int{}}
	chosen := make([]int, 0, n)

	var explore func(level, value, weight int)
	explore = func(level, value, weight int) {
		counter.tick()
		if weight > capacity {
			return
		}
		if value > best.Value {
			best.Value = value
			best.Selected = append([]int{}, chosen...)
		}
		if level >= len(items) || bound(level, value, weight) <= float64(best.Value) {
			return
		}

		item := items[level]
		chosen = append(chosen, item.index)
		explore(level+1, value+item.value, weight+item.weight)
		chosen = chosen[:len(chosen)-1]

		explore(level+1, value, weight)
	}
	explore(0, 0, 0)

	sort.Ints(best.Selected)

	return best, counter.steps
}
