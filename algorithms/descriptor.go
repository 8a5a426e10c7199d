package algorithms

import (
	"context"
	"slices"
)

// Descriptor identifies one registered algorithm. It is immutable once
// registered and is looked up by (Category, Key).
type Descriptor struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Strategy Strategy `json:"-"`
}

// Equal compares identity, never the strategy value.
func (descriptor *Descriptor) Equal(other *Descriptor) bool {
	if descriptor == nil || other == nil {
		return descriptor == other
	}
	return descriptor.Category == other.Category && descriptor.Key == other.Key
}

func bare(value any) Result {
	return Result{Value: value}
}

func counted(value any, comparisons int) Result {
	return Result{Value: value, Metric: &comparisons}
}

// The adapters below turn a category-shaped function into a Strategy. They
// are the only place where return shapes are inspected; every input is
// cloned first so a strategy cannot mutate a player's submission. The
// functions poll ctx and stop once it is done.

func Sorter(fn func(ctx context.Context, array []int) []int) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			return bare(fn(ctx, slices.Clone(arguments.Array))), nil
		})
	}
}

func Searcher(fn func(ctx context.Context, array []int, target int) (int, int)) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			index, comparisons := fn(ctx, slices.Clone(arguments.Array), arguments.Target)
			return counted(index, comparisons), nil
		})
	}
}

func Matcher(fn func(ctx context.Context, text, pattern string) []int) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			return bare(fn(ctx, arguments.Text, arguments.Pattern)), nil
		})
	}
}

func Traverser(fn func(ctx context.Context, graph Graph, start string) ([]string, int)) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			order, comparisons := fn(ctx, arguments.Graph.Clone(), arguments.Start)
			return counted(order, comparisons), nil
		})
	}
}

func PathFinder(fn func(ctx context.Context, graph Graph, start string) (map[string]int, int, error)) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			distances, comparisons, err := fn(ctx, arguments.Graph.Clone(), arguments.Start)
			if err != nil {
				return Result{}, err
			}
			return counted(distances, comparisons), nil
		})
	}
}

func SpanningTree(fn func(ctx context.Context, graph Graph, start string) ([]Edge, int, error)) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			edges, comparisons, err := fn(ctx, arguments.Graph.Clone(), arguments.Start)
			if err != nil {
				return Result{}, err
			}
			return counted(edges, comparisons), nil
		})
	}
}

func SubsetGenerator(fn func(ctx context.Context, array []int) [][]int) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			return bare(fn(ctx, slices.Clone(arguments.Array))), nil
		})
	}
}

func KnapsackSolver(fn func(ctx context.Context, values, weights []int, capacity int) (KnapsackSolution, int)) Strategy {
	return func(ctx context.Context, arguments Arguments) (Result, error) {
		return run(ctx, func() (Result, error) {
			solution, comparisons := fn(
				ctx,
				slices.Clone(arguments.Values),
				slices.Clone(arguments.Weights),
				arguments.Capacity,
			)
			return counted(solution, comparisons), nil
		})
	}
}
