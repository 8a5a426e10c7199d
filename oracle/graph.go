package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmirRezaM75/algobattle/algorithms"
)

var MalformedGraph = errors.New("graph is not valid for this oracle")

func reachable(graph algorithms.Graph, start string) map[string]bool {
	order, _ := algorithms.BFS(context.Background(), graph, start)
	nodes := make(map[string]bool, len(order))
	for _, node := range order {
		nodes[node] = true
	}
	return nodes
}

// judgeTraversal accepts any visit order that starts at start and visits
// every reachable node exactly once. BFS and DFS orders differ, and both
// depend on neighbor order, so no single sequence is expected.
func judgeTraversal(arguments algorithms.Arguments, output any) (Verdict, error) {
	if !arguments.Graph.HasNode(arguments.Start) {
		return Unknown, fmt.Errorf("%w: start %q", MalformedGraph, arguments.Start)
	}

	order, ok := output.([]string)
	if !ok || len(order) == 0 || order[0] != arguments.Start {
		return Incorrect, nil
	}

	expected := reachable(arguments.Graph, arguments.Start)
	if len(order) != len(expected) {
		return Incorrect, nil
	}

	seen := make(map[string]bool, len(order))
	for _, node := range order {
		if !expected[node] || seen[node] {
			return Incorrect, nil
		}
		seen[node] = true
	}

	return Correct, nil
}

// judgeShortestPath compares against reference Dijkstra distances. Graphs
// with negative weights get no opinion.
func judgeShortestPath(arguments algorithms.Arguments, output any) (Verdict, error) {
	expected, _, err := algorithms.Dijkstra(context.Background(), arguments.Graph, arguments.Start)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", MalformedGraph, err)
	}

	distances, ok := output.(map[string]int)
	if !ok || len(distances) != len(expected) {
		return Incorrect, nil
	}

	for node, distance := range expected {
		if got, ok := distances[node]; !ok || got != distance {
			return Incorrect, nil
		}
	}

	return Correct, nil
}

// judgeSpanningTree checks that output is a spanning tree of the start
// component of the undirected view built from real edges, with the same
// total weight as the reference Kruskal tree.
func judgeSpanningTree(arguments algorithms.Arguments, output any) (Verdict, error) {
	reference, _, err := algorithms.Kruskal(context.Background(), arguments.Graph, arguments.Start)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", MalformedGraph, err)
	}

	edges, ok := output.([]algorithms.Edge)
	if !ok || len(edges) != len(reference) {
		return Incorrect, nil
	}

	adjacency := algorithms.Undirected(arguments.Graph)
	component := reachable(adjacency, arguments.Start)

	parent := make(map[string]string, len(component))
	for node := range component {
		parent[node] = node
	}
	var find func(string) string
	find = func(node string) string {
		if parent[node] != node {
			parent[node] = find(parent[node])
		}
		return parent[node]
	}

	expectedWeight, gotWeight := 0, 0
	for _, edge := range reference {
		expectedWeight += edge.Weight
	}

	for _, edge := range edges {
		weight, exists := adjacency[edge.From][edge.To]
		if !exists || weight != edge.Weight || !component[edge.From] || !component[edge.To] {
			return Incorrect, nil
		}

		rootFrom, rootTo := find(edge.From), find(edge.To)
		if rootFrom == rootTo {
			return Incorrect, nil
		}
		parent[rootFrom] = rootTo
		gotWeight += edge.Weight
	}

	return verdictOf(gotWeight == expectedWeight), nil
}
