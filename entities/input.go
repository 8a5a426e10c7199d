package entities

import (
	"fmt"
	"slices"

	"github.com/AmirRezaM75/algobattle/algorithms"
)

// Input is a player's submission. Which fields matter depends on the room
// category: Array for sorting, searching and subset generation; Text and
// Pattern for string matching; Values, Weights and Capacity for knapsack;
// Graph and Start for the graph categories.
type Input struct {
	Array    []int            `json:"array,omitempty"`
	Text     string           `json:"text,omitempty"`
	Pattern  string           `json:"pattern,omitempty"`
	Values   []int            `json:"values,omitempty"`
	Weights  []int            `json:"weights,omitempty"`
	Capacity int              `json:"capacity,omitempty"`
	Graph    algorithms.Graph `json:"graph,omitempty"`
	Start    string           `json:"start,omitempty"`
}

// maxSubsetInput bounds subset generation input since the output is 2^n.
const maxSubsetInput = 20

// maxKnapsackCells bounds (items+1)*(capacity+1), the size of a dynamic
// programming table over the input.
const maxKnapsackCells = 1 << 22

// Size is the cardinality compared against the room's input size.
func (input Input) Size(category algorithms.Category) int {
	switch category {
	case algorithms.StringMatching:
		return len(input.Text)
	case algorithms.Knapsack:
		return len(input.Values)
	case algorithms.GraphTraversal, algorithms.ShortestPath, algorithms.MinimumSpanningTree:
		return len(input.Graph.Nodes())
	}
	return len(input.Array)
}

// Validate checks the structure of the input for category. It does not
// check the size against a room.
func (input Input) Validate(category algorithms.Category) error {
	switch category {
	case algorithms.StringMatching:
		if input.Pattern == "" {
			return fmt.Errorf("%w: pattern is required", InvalidInput)
		}
	case algorithms.Knapsack:
		if len(input.Values) != len(input.Weights) {
			return fmt.Errorf("%w: %d values but %d weights", InvalidInput, len(input.Values), len(input.Weights))
		}
		if input.Capacity < 0 {
			return fmt.Errorf("%w: capacity must not be negative", InvalidInput)
		}
		if input.Capacity >= maxKnapsackCells || (len(input.Values)+1)*(input.Capacity+1) > maxKnapsackCells {
			return fmt.Errorf("%w: capacity %d is too large for %d items", InvalidInput, input.Capacity, len(input.Values))
		}
		for i, weight := range input.Weights {
			if weight < 0 {
				return fmt.Errorf("%w: weight %d must not be negative", InvalidInput, i)
			}
		}
	case algorithms.GraphTraversal, algorithms.ShortestPath, algorithms.MinimumSpanningTree:
		if !input.Graph.HasNode(input.Start) {
			return fmt.Errorf("%w: start node %q is not in the graph", InvalidInput, input.Start)
		}
	case algorithms.SubsetGeneration:
		if len(input.Array) > maxSubsetInput {
			return fmt.Errorf("%w: at most %d elements", InvalidInput, maxSubsetInput)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (input Input) Clone() Input {
	input.Array = slices.Clone(input.Array)
	input.Values = slices.Clone(input.Values)
	input.Weights = slices.Clone(input.Weights)
	if input.Graph != nil {
		input.Graph = input.Graph.Clone()
	}
	return input
}

// Arguments assembles the strategy arguments for this input.
func (input Input) Arguments(target *int) algorithms.Arguments {
	arguments := algorithms.Arguments{
		Array:    input.Array,
		Text:     input.Text,
		Pattern:  input.Pattern,
		Values:   input.Values,
		Weights:  input.Weights,
		Capacity: input.Capacity,
		Graph:    input.Graph,
		Start:    input.Start,
	}
	if target != nil {
		arguments.Target = *target
	}
	return arguments.Clone()
}
