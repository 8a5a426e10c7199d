package algorithms

import "context"

func SubsetBacktracking(ctx context.Context, array []int) [][]int {
	counter := newStepCounter(ctx)
	subsets := make([][]int, 0, 1<<len(array))
	path := make([]int, 0, len(array))

	var backtrack func(start int)
	backtrack = func(start int) {
		counter.tick()
		subsets = append(subsets, append([]int{}, path...))
		for i := start; i < len(array); i++ {
			path = append(path, array[i])
			backtrack(i + 1)
			path = path[:len(path)-1]
		}
	}
	backtrack(0)

	return subsets
}

func SubsetBitmasking(ctx context.Context, array []int) [][]int {
	counter := newStepCounter(ctx)
	n := len(array)
	subsets := make([][]int, 0, 1<<n)

	for mask := 0; mask < 1<<n; mask++ {
		subset := make([]int, 0)
		for i := 0; i < n; i++ {
			counter.tick()
			if mask&(1<<i) != 0 {
				subset = append(subset, array[i])
			}
		}
		subsets = append(subsets, subset)
	}

	return subsets
}
