// Package harness runs a single strategy invocation and measures it.
//
// The harness knows nothing about categories or return shapes. It reports
// how long the call took, how much it allocated, and how it ended. A
// strategy that panics, returns an error or overruns its deadline never
// makes Execute fail.
package harness

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Outcome describes how a strategy invocation ended.
type Outcome string

const (
	Completed Outcome = "completed"
	Faulted   Outcome = "faulted"
	TimedOut  Outcome = "timed_out"
)

var PanicRecovered = errors.New("strategy panicked")

// Measurement is what Execute observed. Output is nil unless the outcome is
// Completed.
type Measurement struct {
	Elapsed    time.Duration
	PeakMemory uint64 // bytes
	Outcome    Outcome
	Output     any
	Err        error
}

// Succeeded reports whether the strategy returned normally.
func (measurement Measurement) Succeeded() bool {
	return measurement.Outcome == Completed
}

// Invocation is one prepared call to a strategy.
type Invocation func(ctx context.Context) (any, error)

type completion struct {
	output  any
	err     error
	elapsed time.Duration
	memory  uint64
}

// Execute runs invocation on its own goroutine and waits for it to return
// or for ctx to be done, whichever comes first.
//
// On timeout the invocation goroutine is abandoned; it keeps running until
// the strategy returns or observes ctx, so strategies must poll ctx. Time and memory reported for a
// timed out call are what was observed up to the deadline.
func Execute(ctx context.Context, invocation Invocation) Measurement {
	done := make(chan completion, 1)

	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	go func() {
		var result completion

		defer func() {
			recovered := recover()
			result.elapsed = time.Since(start)
			result.memory = allocatedSince(&before)

			if recovered != nil {
				result.output = nil
				result.err = fmt.Errorf("%w: %v\n%s", PanicRecovered, recovered, debug.Stack())
			}
			done <- result
		}()

		result.output, result.err = invocation(ctx)
	}()

	select {
	case result := <-done:
		measurement := Measurement{
			Elapsed:    result.elapsed,
			PeakMemory: result.memory,
			Outcome:    Completed,
			Output:     result.output,
		}

		if result.err != nil {
			measurement.Output = nil
			measurement.Err = result.err
			measurement.Outcome = Faulted

			if errors.Is(result.err, context.DeadlineExceeded) {
				measurement.Outcome = TimedOut
			}
		}

		return measurement
	case <-ctx.Done():
		return Measurement{
			Elapsed:    time.Since(start),
			PeakMemory: allocatedSince(&before),
			Outcome:    TimedOut,
			Err:        ctx.Err(),
		}
	}
}

// allocatedSince returns the bytes allocated on the heap since before was
// captured. Go offers no per-goroutine peak, so cumulative allocation during
// the call stands in for the peak footprint.
func allocatedSince(before *runtime.MemStats) uint64 {
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	if after.TotalAlloc < before.TotalAlloc {
		return 0
	}

	return after.TotalAlloc - before.TotalAlloc
}
