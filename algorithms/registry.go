package algorithms

import (
	"errors"
	"fmt"
	"sync"
)

var (
	UnknownAlgorithm    = errors.New("algorithm not found")
	DuplicateDescriptor = errors.New("algorithm already registered")
	InvalidDescriptor   = errors.New("algorithm descriptor is not valid")
)

type registryKey struct {
	category Category
	key      string
}

// Registry maps (category, key) to a Descriptor. Lookups are safe for
// concurrent use with registration.
type Registry struct {
	mutex       sync.RWMutex
	descriptors map[registryKey]*Descriptor
	order       []*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[registryKey]*Descriptor)}
}

// Register adds a descriptor. The caller must not mutate it afterwards.
func (registry *Registry) Register(descriptor *Descriptor) error {
	if descriptor == nil || descriptor.Key == "" || descriptor.Strategy == nil {
		return InvalidDescriptor
	}

	if _, ok := ParseCategory(string(descriptor.Category)); !ok {
		return fmt.Errorf("%w: unknown category %q", InvalidDescriptor, descriptor.Category)
	}

	if descriptor.Name == "" {
		descriptor.Name = descriptor.Key
	}

	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	id := registryKey{category: descriptor.Category, key: descriptor.Key}

	if _, exists := registry.descriptors[id]; exists {
		return fmt.Errorf("%w: %s/%s", DuplicateDescriptor, descriptor.Category, descriptor.Key)
	}

	registry.descriptors[id] = descriptor
	registry.order = append(registry.order, descriptor)

	return nil
}

// Lookup resolves a key within a category.
func (registry *Registry) Lookup(category Category, key string) (*Descriptor, error) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	descriptor, ok := registry.descriptors[registryKey{category: category, key: key}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", UnknownAlgorithm, category, key)
	}

	return descriptor, nil
}

// List returns every descriptor in registration order.
func (registry *Registry) List() []*Descriptor {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	return append([]*Descriptor(nil), registry.order...)
}

// ByCategory returns the descriptors of one category in registration order.
func (registry *Registry) ByCategory(category Category) []*Descriptor {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	descriptors := make([]*Descriptor, 0)
	for _, descriptor := range registry.order {
		if descriptor.Category == category {
			descriptors = append(descriptors, descriptor)
		}
	}

	return descriptors
}

// NewDefaultRegistry returns a registry holding every built-in strategy.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	for _, descriptor := range builtins() {
		if err := registry.Register(descriptor); err != nil {
			// Built-ins are static; a failure here is a programming error.
			panic(err)
		}
	}

	return registry
}

func builtins() []*Descriptor {
	return []*Descriptor{
		{Key: "bubble_sort", Name: "Bubble Sort", Category: Sorting, Strategy: Sorter(BubbleSort)},
		{Key: "insertion_sort", Name: "Insertion Sort", Category: Sorting, Strategy: Sorter(InsertionSort)},
		{Key: "merge_sort", Name: "Merge Sort", Category: Sorting, Strategy: Sorter(MergeSort)},
		{Key: "quick_sort", Name: "Quick Sort", Category: Sorting, Strategy: Sorter(QuickSort)},
		{Key: "selection_sort", Name: "Selection Sort", Category: Sorting, Strategy: Sorter(SelectionSort)},
		{Key: "heap_sort", Name: "Heap Sort", Category: Sorting, Strategy: Sorter(HeapSort)},

		{Key: "linear_search", Name: "Linear Search", Category: Searching, Strategy: Searcher(LinearSearch)},
		{Key: "binary_search", Name: "Binary Search", Category: Searching, Strategy: Searcher(BinarySearch)},
		{Key: "fibonacci_search", Name: "Fibonacci Search", Category: Searching, Strategy: Searcher(FibonacciSearch)},

		{Key: "naive_search", Name: "Naive Search", Category: StringMatching, Strategy: Matcher(NaiveSearch)},
		{Key: "kmp_search", Name: "KMP Search", Category: StringMatching, Strategy: Matcher(KMPSearch)},
		{Key: "rabin_karp", Name: "Rabin-Karp", Category: StringMatching, Strategy: Matcher(RabinKarp)},
		{Key: "boyer_moore", Name: "Boyer-Moore", Category: StringMatching, Strategy: Matcher(BoyerMoore)},

		{Key: "bfs", Name: "Breadth-First Search (BFS)", Category: GraphTraversal, Strategy: Traverser(BFS)},
		{Key: "dfs", Name: "Depth-First Search (DFS)", Category: GraphTraversal, Strategy: Traverser(DFS)},

		{Key: "dijkstra", Name: "Dijkstra's Algorithm", Category: ShortestPath, Strategy: PathFinder(Dijkstra)},
		{Key: "bellman_ford", Name: "Bellman-Ford Algorithm", Category: ShortestPath, Strategy: PathFinder(BellmanFord)},
		{Key: "floyd_warshall", Name: "Floyd-Warshall Algorithm", Category: ShortestPath, Strategy: PathFinder(FloydWarshall)},

		{Key: "prim", Name: "Prim's Algorithm", Category: MinimumSpanningTree, Strategy: SpanningTree(Prim)},
		{Key: "kruskal", Name: "Kruskal's Algorithm", Category: MinimumSpanningTree, Strategy: SpanningTree(Kruskal)},

		{Key: "subset_backtracking", Name: "Backtracking", Category: SubsetGeneration, Strategy: SubsetGenerator(SubsetBacktracking)},
		{Key: "subset_bitmasking", Name: "Bitmasking", Category: SubsetGeneration, Strategy: SubsetGenerator(SubsetBitmasking)},

		{Key: "knapsack_dp", Name: "Dynamic Programming", Category: Knapsack, Strategy: KnapsackSolver(KnapsackDP)},
		{Key: "knapsack_backtracking", Name: "Backtracking", Category: Knapsack, Strategy: KnapsackSolver(KnapsackBacktracking)},
		{Key: "knapsack_branch_bound", Name: "Branch and Bound", Category: Knapsack, Strategy: KnapsackSolver(KnapsackBranchBound)},
	}
}
