package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
)

const (
	maxGeneratedValue = 1000
	maxSubsetSize     = 20
	maxGraphWeight    = 20
)

// InputGenerator produces random valid inputs for players who do not want
// to type one.
type InputGenerator struct {
	mutex  sync.Mutex
	random *rand.Rand
}

func NewInputGenerator(seed int64) *InputGenerator {
	return &InputGenerator{random: rand.New(rand.NewSource(seed))}
}

// Generate returns an input of the given size for category, and a target
// when the category needs one.
func (generator *InputGenerator) Generate(category algorithms.Category, size int) (entities.Input, *int, error) {
	if size <= 0 {
		return entities.Input{}, nil, fmt.Errorf("%w: size must be positive", entities.InvalidInput)
	}

	generator.mutex.Lock()
	defer generator.mutex.Unlock()

	switch category {
	case algorithms.Sorting:
		return entities.Input{Array: generator.array(size)}, nil, nil
	case algorithms.Searching:
		array := generator.array(size)
		target := array[generator.random.Intn(size)]
		return entities.Input{Array: array}, &target, nil
	case algorithms.SubsetGeneration:
		if size > maxSubsetSize {
			return entities.Input{}, nil, fmt.Errorf("%w: at most %d elements", entities.InvalidInput, maxSubsetSize)
		}
		return entities.Input{Array: generator.array(size)}, nil, nil
	case algorithms.StringMatching:
		return generator.text(size), nil, nil
	case algorithms.Knapsack:
		return generator.knapsack(size), nil, nil
	case algorithms.GraphTraversal, algorithms.ShortestPath, algorithms.MinimumSpanningTree:
		return generator.graph(size), nil, nil
	}

	return entities.Input{}, nil, fmt.Errorf("%w: unknown category %q", entities.InvalidInput, category)
}

// array returns unique values in [1, 1000] while size allows it.
func (generator *InputGenerator) array(size int) []int {
	array := make([]int, size)

	if size <= maxGeneratedValue {
		permutation := generator.random.Perm(maxGeneratedValue)
		for i := range array {
			array[i] = permutation[i] + 1
		}
		return array
	}

	for i := range array {
		array[i] = generator.random.Intn(maxGeneratedValue) + 1
	}
	return array
}

// text uses a two letter alphabet so the pattern, cut from the text, tends
// to occur more than once.
func (generator *InputGenerator) text(size int) entities.Input {
	letters := make([]byte, size)
	for i := range letters {
		letters[i] = "ab"[generator.random.Intn(2)]
	}

	length := min(3, size)
	offset := generator.random.Intn(size - length + 1)

	return entities.Input{
		Text:    string(letters),
		Pattern: string(letters[offset : offset+length]),
	}
}

func (generator *InputGenerator) knapsack(size int) entities.Input {
	input := entities.Input{
		Values:  make([]int, size),
		Weights: make([]int, size),
	}

	total := 0
	for i := 0; i < size; i++ {
		input.Values[i] = generator.random.Intn(100) + 1
		input.Weights[i] = generator.random.Intn(50) + 1
		total += input.Weights[i]
	}
	input.Capacity = total / 2

	return input
}

// graph returns a connected undirected graph: a random spanning tree plus
// roughly size extra edges.
func (generator *InputGenerator) graph(size int) entities.Input {
	nodes := make([]string, size)
	graph := algorithms.Graph{}

	for i := range nodes {
		nodes[i] = "n" + strconv.Itoa(i)
		graph[nodes[i]] = map[string]int{}
	}

	connect := func(a, b string) {
		weight := generator.random.Intn(maxGraphWeight) + 1
		graph[a][b] = weight
		graph[b][a] = weight
	}

	for i := 1; i < size; i++ {
		connect(nodes[i], nodes[generator.random.Intn(i)])
	}

	if size > 2 {
		for extra := 0; extra < size; extra++ {
			a, b := generator.random.Intn(size), generator.random.Intn(size)
			if a != b {
				connect(nodes[a], nodes[b])
			}
		}
	}

	return entities.Input{Graph: graph, Start: nodes[0]}
}
