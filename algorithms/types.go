package algorithms

import (
	"context"
	"slices"
	"sort"
)

// NotFound is the index a searching strategy returns when the target is absent.
const NotFound = -1

// Graph is a weighted adjacency map: Graph[u][v] is the weight of edge u→v.
// Undirected graphs list every edge in both directions.
type Graph map[string]map[string]int

// Nodes returns every node mentioned as a source or a destination, sorted.
func (graph Graph) Nodes() []string {
	seen := make(map[string]struct{}, len(graph))
	for from, neighbors := range graph {
		seen[from] = struct{}{}
		for to := range neighbors {
			seen[to] = struct{}{}
		}
	}

	nodes := make([]string, 0, len(seen))
	for node := range seen {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	return nodes
}

// HasNode reports whether node appears anywhere in the graph.
func (graph Graph) HasNode(node string) bool {
	if _, ok := graph[node]; ok {
		return true
	}
	for _, neighbors := range graph {
		if _, ok := neighbors[node]; ok {
			return true
		}
	}
	return false
}

// Neighbors returns the neighbors of node sorted by id so traversals are
// deterministic.
func (graph Graph) Neighbors(node string) []string {
	neighbors := make([]string, 0, len(graph[node]))
	for neighbor := range graph[node] {
		neighbors = append(neighbors, neighbor)
	}
	sort.Strings(neighbors)
	return neighbors
}

// Clone returns a deep copy so strategies cannot mutate a player's input.
func (graph Graph) Clone() Graph {
	clone := make(Graph, len(graph))
	for from, neighbors := range graph {
		copied := make(map[string]int, len(neighbors))
		for to, weight := range neighbors {
			copied[to] = weight
		}
		clone[from] = copied
	}
	return clone
}

// Edge is one edge of a spanning tree.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// KnapsackSolution is the value and the chosen item indexes of a 0/1
// knapsack strategy. Only Value is judged.
type KnapsackSolution struct {
	Value    int   `json:"value"`
	Selected []int `json:"selected"`
}

// Arguments carries every argument shape a strategy can receive. Only the
// fields belonging to the descriptor's category are populated.
type Arguments struct {
	Array    []int
	Target   int
	Text     string
	Pattern  string
	Values   []int
	Weights  []int
	Capacity int
	Graph    Graph
	Start    string
}

// Clone deep-copies the argument slices and graph.
func (arguments Arguments) Clone() Arguments {
	arguments.Array = slices.Clone(arguments.Array)
	arguments.Values = slices.Clone(arguments.Values)
	arguments.Weights = slices.Clone(arguments.Weights)
	if arguments.Graph != nil {
		arguments.Graph = arguments.Graph.Clone()
	}
	return arguments
}

// Result is the normalized strategy return value. Metric holds the
// auxiliary count (comparisons) when the strategy reports one.
type Result struct {
	Value  any  `json:"value"`
	Metric *int `json:"metric,omitempty"`
}

// Strategy is the uniform callable every registered algorithm is exposed as.
type Strategy func(ctx context.Context, arguments Arguments) (Result, error)
