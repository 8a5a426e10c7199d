package algorithms

import "strings"

// Category is the algorithmic domain contested in a room. It fixes the
// argument shape handed to a strategy and the oracle used to judge it.
type Category string

const (
	Sorting             Category = "sorting"
	Searching           Category = "searching"
	StringMatching      Category = "string_matching"
	GraphTraversal      Category = "graph"
	ShortestPath        Category = "shortest_path"
	MinimumSpanningTree Category = "mst"
	SubsetGeneration    Category = "subset_generation"
	Knapsack            Category = "knapsack"
)

var categories = []Category{
	Sorting,
	Searching,
	StringMatching,
	GraphTraversal,
	ShortestPath,
	MinimumSpanningTree,
	SubsetGeneration,
	Knapsack,
}

// Categories returns every known category in a stable order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory accepts the canonical value as well as the human spelling
// ("string matching", "Shortest Path").
func ParseCategory(value string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	for _, category := range categories {
		if string(category) == normalized {
			return category, true
		}
	}

	return "", false
}

// RequiresTarget reports whether submissions must carry a target value.
func (category Category) RequiresTarget() bool {
	return category == Searching
}

// IsGraph reports whether the category operates on (graph, startNode).
func (category Category) IsGraph() bool {
	switch category {
	case GraphTraversal, ShortestPath, MinimumSpanningTree:
		return true
	}
	return false
}
