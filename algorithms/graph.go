package algorithms

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	StartNotFound       = errors.New("start node not found in graph")
	NegativeWeight      = errors.New("graph contains a negative edge weight")
	NegativeWeightCycle = errors.New("graph contains a negative-weight cycle")
)

// Graph traversal strategies return (visit order, comparisons).

func BFS(ctx context.Context, graph Graph, start string) ([]string, int) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return []string{}, 0
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	order := make([]string, 0, len(graph))

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, neighbor := range graph.Neighbors(node) {
			counter.tick()
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return order, counter.steps
}

func DFS(ctx context.Context, graph Graph, start string) ([]string, int) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return []string{}, 0
	}

	visited := make(map[string]bool)
	order := make([]string, 0, len(graph))

	var visit func(node string)
	visit = func(node string) {
		visited[node] = true
		order = append(order, node)
		for _, neighbor := range graph.Neighbors(node) {
			counter.tick()
			if !visited[neighbor] {
				visit(neighbor)
			}
		}
	}
	visit(start)

	return order, counter.steps
}

// Shortest path strategies return the distance to every node reachable from
// start; unreachable nodes are omitted.

type distanceItem struct {
	node     string
	distance int
}

type distanceQueue []distanceItem

func (q distanceQueue) Len() int { return len(q) }
func (q distanceQueue) Less(i, j int) bool {
	if q[i].distance == q[j].distance {
		return q[i].node < q[j].node
	}
	return q[i].distance < q[j].distance
}
func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x any) { *q = append(*q, x.(distanceItem)) }
func (q *distanceQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

func Dijkstra(ctx context.Context, graph Graph, start string) (map[string]int, int, error) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return nil, 0, fmt.Errorf("%w: %q", StartNotFound, start)
	}

	for _, neighbors := range graph {
		for _, weight := range neighbors {
			if weight < 0 {
				return nil, 0, NegativeWeight
			}
		}
	}

	distances := map[string]int{start: 0}
	queue := &distanceQueue{{node: start}}

	for queue.Len() > 0 {
		current := heap.Pop(queue).(distanceItem)
		if current.distance > distances[current.node] {
			continue
		}
		for _, neighbor := range graph.Neighbors(current.node) {
			counter.tick()
			candidate := current.distance + graph[current.node][neighbor]
			if known, ok := distances[neighbor]; !ok || candidate < known {
				distances[neighbor] = candidate
				heap.Push(queue, distanceItem{node: neighbor, distance: candidate})
			}
		}
	}

	return distances, counter.steps, nil
}

func BellmanFord(ctx context.Context, graph Graph, start string) (map[string]int, int, error) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return nil, 0, fmt.Errorf("%w: %q", StartNotFound, start)
	}

	nodes := graph.Nodes()
	edges := graphEdges(graph)
	distances := map[string]int{start: 0}

	for i := 0; i < len(nodes)-1; i++ {
		changed := false
		for _, edge := range edges {
			counter.tick()
			from, ok := distances[edge.From]
			if !ok {
				continue
			}
			if known, ok := distances[edge.To]; !ok || from+edge.Weight < known {
				distances[edge.To] = from + edge.Weight
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, edge := range edges {
		counter.tick()
		from, ok := distances[edge.From]
		if ok && from+edge.Weight < distances[edge.To] {
			return nil, counter.steps, NegativeWeightCycle
		}
	}

	return distances, counter.steps, nil
}

func FloydWarshall(ctx context.Context, graph Graph, start string) (map[string]int, int, error) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return nil, 0, fmt.Errorf("%w: %q", StartNotFound, start)
	}

	nodes := graph.Nodes()
	index := make(map[string]int, len(nodes))
	for i, node := range nodes {
		index[node] = i
	}

	n := len(nodes)
	reachable := make([][]bool, n)
	distance := make([][]int, n)
	for i := range nodes {
		reachable[i] = make([]bool, n)
		distance[i] = make([]int, n)
		reachable[i][i] = true
	}
	for from, neighbors := range graph {
		for to, weight := range neighbors {
			i, j := index[from], index[to]
			if !reachable[i][j] || weight < distance[i][j] {
				reachable[i][j] = true
				distance[i][j] = weight
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !reachable[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				counter.tick()
				if !reachable[k][j] {
					continue
				}
				if candidate := distance[i][k] + distance[k][j]; !reachable[i][j] || candidate < distance[i][j] {
					reachable[i][j] = true
					distance[i][j] = candidate
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		if distance[i][i] < 0 {
			return nil, counter.steps, NegativeWeightCycle
		}
	}

	row := index[start]
	distances := make(map[string]int)
	for j, node := range nodes {
		if reachable[row][j] {
			distances[node] = distance[row][j]
		}
	}

	return distances, counter.steps, nil
}

// Spanning tree strategies treat the graph as undirected and return the
// minimum spanning tree of the component containing start.

func Prim(ctx context.Context, graph Graph, start string) ([]Edge, int, error) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return nil, 0, fmt.Errorf("%w: %q", StartNotFound, start)
	}

	adjacency := Undirected(graph)
	visited := map[string]bool{start: true}
	queue := &edgeQueue{}
	for _, neighbor := range adjacency.Neighbors(start) {
		heap.Push(queue, Edge{From: start, To: neighbor, Weight: adjacency[start][neighbor]})
	}

	tree := make([]Edge, 0)
	for queue.Len() > 0 {
		edge := heap.Pop(queue).(Edge)
		counter.tick()
		if visited[edge.To] {
			continue
		}
		visited[edge.To] = true
		tree = append(tree, edge)
		for _, neighbor := range adjacency.Neighbors(edge.To) {
			counter.tick()
			if !visited[neighbor] {
				heap.Push(queue, Edge{From: edge.To, To: neighbor, Weight: adjacency[edge.To][neighbor]})
			}
		}
	}

	return tree, counter.steps, nil
}

func Kruskal(ctx context.Context, graph Graph, start string) ([]Edge, int, error) {
	counter := newStepCounter(ctx)
	if !graph.HasNode(start) {
		return nil, 0, fmt.Errorf("%w: %q", StartNotFound, start)
	}

	adjacency := Undirected(graph)
	component, _ := BFS(ctx, adjacency, start)
	inComponent := make(map[string]bool, len(component))
	for _, node := range component {
		inComponent[node] = true
	}

	edges := make([]Edge, 0)
	for _, edge := range graphEdges(adjacency) {
		if edge.From < edge.To && inComponent[edge.From] {
			edges = append(edges, edge)
		}
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight < edges[j].Weight })

	forest := newDisjointSet(component)
	tree := make([]Edge, 0, len(component))
	for _, edge := range edges {
		counter.tick()
		if forest.union(edge.From, edge.To) {
			tree = append(tree, edge)
		}
	}

	return tree, counter.steps, nil
}

// Undirected returns a symmetric copy of graph keeping the lighter weight
// when both directions are present with different weights.
func Undirected(graph Graph) Graph {
	adjacency := make(Graph, len(graph))
	add := func(from, to string, weight int) {
		if adjacency[from] == nil {
			adjacency[from] = make(map[string]int)
		}
		if known, ok := adjacency[from][to]; !ok || weight < known {
			adjacency[from][to] = weight
		}
	}

	for from, neighbors := range graph {
		if adjacency[from] == nil {
			adjacency[from] = make(map[string]int)
		}
		for to, weight := range neighbors {
			add(from, to, weight)
			add(to, from, weight)
		}
	}

	return adjacency
}

// graphEdges lists every directed edge in a deterministic order.
func graphEdges(graph Graph) []Edge {
	edges := make([]Edge, 0)
	for _, from := range graph.Nodes() {
		for _, to := range graph.Neighbors(from) {
			edges = append(edges, Edge{From: from, To: to, Weight: graph[from][to]})
		}
	}
	return edges
}

type edgeQueue []Edge

func (q edgeQueue) Len() int { return len(q) }
func (q edgeQueue) Less(i, j int) bool {
	if q[i].Weight == q[j].Weight {
		return q[i].To < q[j].To
	}
	return q[i].Weight < q[j].Weight
}
func (q edgeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *edgeQueue) Push(x any) { *q = append(*q, x.(Edge)) }
func (q *edgeQueue) Pop() any {
	old := *q
	edge := old[len(old)-1]
	*q = old[:len(old)-1]
	return edge
}

type disjointSet struct {
	parent map[string]string
	rank   map[string]int
}

func newDisjointSet(nodes []string) *disjointSet {
	set := &disjointSet{
		parent: make(map[string]string, len(nodes)),
		rank:   make(map[string]int, len(nodes)),
	}
	for _, node := range nodes {
		set.parent[node] = node
	}
	return set
}

func (set *disjointSet) find(node string) string {
	for set.parent[node] != node {
		set.parent[node] = set.parent[set.parent[node]]
		node = set.parent[node]
	}
	return node
}

// union merges the sets of a and b and reports whether they were disjoint.
func (set *disjointSet) union(a, b string) bool {
	rootA, rootB := set.find(a), set.find(b)
	if rootA == rootB {
		return false
	}

	switch {
	case set.rank[rootA] > set.rank[rootB]:
		set.parent[rootB] = rootA
	case set.rank[rootA] < set.rank[rootB]:
		set.parent[rootA] = rootB
	default:
		set.parent[rootB] = rootA
		set.rank[rootA]++
	}

	return true
}
