package algorithms

import "context"

// pollEvery is how many steps a built-in strategy takes between ctx checks.
const pollEvery = 1 << 10

// interrupted unwinds a built-in strategy whose context is done. run turns
// it back into the context error.
type interrupted struct {
	err error
}

// stepCounter counts the steps of one strategy call and stops the call once
// ctx is done. Strategies that report comparisons return steps as the count.
type stepCounter struct {
	ctx   context.Context
	steps int
}

func newStepCounter(ctx context.Context) *stepCounter {
	return &stepCounter{ctx: ctx}
}

func (counter *stepCounter) tick() {
	counter.steps++
	if counter.steps%pollEvery != 0 {
		return
	}
	if err := counter.ctx.Err(); err != nil {
		panic(interrupted{err: err})
	}
}

// run calls fn unless ctx is already done and recovers an interruption as
// ctx's error. Any other panic propagates.
func run(ctx context.Context, fn func() (Result, error)) (result Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			stop, ok := recovered.(interrupted)
			if !ok {
				panic(recovered)
			}
			result, err = Result{}, stop.err
		}
	}()

	return fn()
}
