// Package scoring turns correctness, time and memory into a bounded score
// relative to the best time and memory observed in the same battle.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var InvalidWeights = errors.New("scoring weights are not valid")

// Weights are the coefficients of the three score terms. They must be
// non-negative and sum to 1 so every score stays within [0, 1].
type Weights struct {
	Correctness float64 `json:"correctness"`
	Time        float64 `json:"time"`
	Memory      float64 `json:"memory"`
}

func DefaultWeights() Weights {
	return Weights{Correctness: 0.5, Time: 0.3, Memory: 0.2}
}

func (weights Weights) Validate() error {
	if weights.Correctness < 0 || weights.Time < 0 || weights.Memory < 0 {
		return fmt.Errorf("%w: weights must not be negative", InvalidWeights)
	}

	if sum := weights.Correctness + weights.Time + weights.Memory; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: weights sum to %v, want 1", InvalidWeights, sum)
	}

	return nil
}

// Terms holds the individual score components, each within [0, 1].
type Terms struct {
	Correctness float64 `json:"correctness"`
	Time        float64 `json:"time"`
	Memory      float64 `json:"memory"`
}

func ratio(best, actual float64) float64 {
	if actual <= 0 || best <= 0 {
		return 0
	}
	return math.Min(1, best/actual)
}

// Compute returns the terms for one participant.
func Compute(correct bool, time, memory, fastestTime, lowestMemory float64) Terms {
	terms := Terms{
		Time:   ratio(fastestTime, time),
		Memory: ratio(lowestMemory, memory),
	}
	if correct {
		terms.Correctness = 1
	}
	return terms
}

// Score combines the terms with weights.
func (weights Weights) Score(terms Terms) float64 {
	score := weights.Correctness*terms.Correctness + weights.Time*terms.Time + weights.Memory*terms.Memory
	return math.Max(0, math.Min(1, score))
}

// Score computes one participant's score in a single call.
func Score(correct bool, time, memory, fastestTime, lowestMemory float64, weights Weights) float64 {
	return weights.Score(Compute(correct, time, memory, fastestTime, lowestMemory))
}

// Min returns the smallest value, the batch-relative baseline for time and
// memory. An empty batch yields 0, which zeroes the matching term.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	lowest := values[0]
	for _, value := range values[1:] {
		lowest = math.Min(lowest, value)
	}
	return lowest
}

// Rank orders scores descending. Equal scores keep their input order and
// share a competition rank (1, 1, 3). It returns the input indexes in ranked
// order and the rank of each input index.
func Rank(scores []float64) (order []int, ranks []int) {
	order = make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranks = make([]int, len(scores))
	for position, index := range order {
		if position > 0 && scores[index] == scores[order[position-1]] {
			ranks[index] = ranks[order[position-1]]
			continue
		}
		ranks[index] = position + 1
	}

	return order, ranks
}
