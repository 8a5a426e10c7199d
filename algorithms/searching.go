package algorithms

import (
	"context"
	"slices"
)

// Searching strategies return (index, comparisons). Binary and Fibonacci
// search operate on a sorted copy, so their index refers to that copy.

func LinearSearch(ctx context.Context, array []int, target int) (int, int) {
	counter := newStepCounter(ctx)
	for i, value := range array {
		counter.tick()
		if value == target {
			return i, counter.steps
		}
	}
	return NotFound, counter.steps
}

func BinarySearch(ctx context.Context, array []int, target int) (int, int) {
	counter := newStepCounter(ctx)
	sorted := slices.Clone(array)
	slices.Sort(sorted)

	low, high := 0, len(sorted)-1
	for low <= high {
		middle := low + (high-low)/2
		counter.tick()
		switch {
		case sorted[middle] == target:
			return middle, counter.steps
		case sorted[middle] < target:
			low = middle + 1
		default:
			high = middle - 1
		}
	}
	return NotFound, counter.steps
}

func FibonacciSearch(ctx context.Context, array []int, target int) (int, int) {
	counter := newStepCounter(ctx)
	sorted := slices.Clone(array)
	slices.Sort(sorted)
	n := len(sorted)

	fibM2, fibM1 := 0, 1
	fib := fibM1 + fibM2
	for fib < n {
		fibM2 = fibM1
		fibM1 = fib
		fib = fibM1 + fibM2
	}

	offset := -1
	for fib > 1 {
		i := min(offset+fibM2, n-1)
		counter.tick()
		switch {
		case sorted[i] < target:
			fib = fibM1
			fibM1 = fibM2
			fibM2 = fib - fibM1
			offset = i
		case sorted[i] > target:
			fib = fibM2
			fibM1 = fibM1 - fibM2
			fibM2 = fib - fibM1
		default:
			return i, counter.steps
		}
	}

	if fibM1 == 1 && offset+1 < n {
		counter.tick()
		if sorted[offset+1] == target {
			return offset + 1, counter.steps
		}
	}

	return NotFound, counter.steps
}
