package algorithms

import "context"

func BubbleSort(ctx context.Context, array []int) []int {
	counter := newStepCounter(ctx)
	n := len(array)
	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			counter.tick()
			if array[j] > array[j+1] {
				array[j], array[j+1] = array[j+1], array[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return array
}

func InsertionSort(ctx context.Context, array []int) []int {
	counter := newStepCounter(ctx)
	for i := 1; i < len(array); i++ {
		counter.tick()
		key := array[i]
		j := i - 1
		for j >= 0 && array[j] > key {
			counter.tick()
			array[j+1] = array[j]
			j--
		}
		array[j+1] = key
	}
	return array
}

func MergeSort(ctx context.Context, array []int) []int {
	return mergeSort(newStepCounter(ctx), array)
}

func mergeSort(counter *stepCounter, array []int) []int {
	if len(array) <= 1 {
		return array
	}

	middle := len(array) / 2
	left := mergeSort(counter, append([]int(nil), array[:middle]...))
	right := mergeSort(counter, append([]int(nil), array[middle:]...))

	merged := make([]int, 0, len(array))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		counter.tick()
		if left[i] <= right[j] {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	return append(merged, right[j:]...)
}

func QuickSort(ctx context.Context, array []int) []int {
	quickSort(newStepCounter(ctx), array, 0, len(array)-1)
	return array
}

func quickSort(counter *stepCounter, array []int, low, high int) {
	for low < high {
		pivot := partition(counter, array, low, high)
		// Recurse into the smaller half to bound stack depth.
		if pivot-low < high-pivot {
			quickSort(counter, array, low, pivot-1)
			low = pivot + 1
		} else {
			quickSort(counter, array, pivot+1, high)
			high = pivot - 1
		}
	}
}

func partition(counter *stepCounter, array []int, low, high int) int {
	middle := low + (high-low)/2
	array[middle], array[high] = array[high], array[middle]
	pivot := array[high]

	i := low
	for j := low; j < high; j++ {
		counter.tick()
		if array[j] < pivot {
			array[i], array[j] = array[j], array[i]
			i++
		}
	}
	array[i], array[high] = array[high], array[i]

	return i
}

func SelectionSort(ctx context.Context, array []int) []int {
	counter := newStepCounter(ctx)
	for i := 0; i < len(array); i++ {
		minimum := i
		for j := i + 1; j < len(array); j++ {
			counter.tick()
			if array[j] < array[minimum] {
				minimum = j
			}
		}
		array[i], array[minimum] = array[minimum], array[i]
	}
	return array
}

func HeapSort(ctx context.Context, array []int) []int {
	counter := newStepCounter(ctx)
	n := len(array)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(counter, array, i, n)
	}
	for end := n - 1; end > 0; end-- {
		array[0], array[end] = array[end], array[0]
		siftDown(counter, array, 0, end)
	}
	return array
}

func siftDown(counter *stepCounter, array []int, root, size int) {
	for {
		counter.tick()
		largest := root
		left, right := 2*root+1, 2*root+2
		if left < size && array[left] > array[largest] {
			largest = left
		}
		if right < size && array[right] > array[largest] {
			largest = right
		}
		if largest == root {
			return
		}
		array[root], array[largest] = array[largest], array[root]
		root = largest
	}
}
