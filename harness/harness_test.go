package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCompleted(t *testing.T) {
	measurement := Execute(context.Background(), func(ctx context.Context) (any, error) {
		buffer := make([]int, 1<<16)
		for i := range buffer {
			buffer[i] = i
		}
		return len(buffer), nil
	})

	require.Equal(t, Completed, measurement.Outcome)
	assert.True(t, measurement.Succeeded())
	assert.Equal(t, 1<<16, measurement.Output)
	assert.NoError(t, measurement.Err)
	assert.Positive(t, measurement.Elapsed)
	assert.GreaterOrEqual(t, measurement.PeakMemory, uint64(8*(1<<16)))
}

func TestExecuteRecoversPanic(t *testing.T) {
	measurement := Execute(context.Background(), func(ctx context.Context) (any, error) {
		var values []int
		return values[3], nil
	})

	assert.Equal(t, Faulted, measurement.Outcome)
	assert.False(t, measurement.Succeeded())
	assert.Nil(t, measurement.Output)
	assert.True(t, errors.Is(measurement.Err, PanicRecovered))
	assert.GreaterOrEqual(t, measurement.Elapsed, time.Duration(0))
}

func TestExecuteReturnedError(t *testing.T) {
	failure := errors.New("negative cycle")

	measurement := Execute(context.Background(), func(ctx context.Context) (any, error) {
		return "partial", failure
	})

	assert.Equal(t, Faulted, measurement.Outcome)
	assert.Nil(t, measurement.Output)
	assert.ErrorIs(t, measurement.Err, failure)
}

func TestExecuteTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)

	measurement := Execute(ctx, func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	})

	assert.Equal(t, TimedOut, measurement.Outcome)
	assert.ErrorIs(t, measurement.Err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, measurement.Elapsed, 20*time.Millisecond)
}

func TestExecuteCooperativeCancellationIsTimeout(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	measurement := Execute(ctx, func(ctx context.Context) (any, error) {
		return nil, ctx.Err()
	})

	assert.Equal(t, TimedOut, measurement.Outcome)
}

func TestPanicReportIsNotChargedToStrategy(t *testing.T) {
	panicking := func(ctx context.Context) (any, error) {
		panic("boom")
	}

	// The first run may allocate a fresh goroutine.
	Execute(context.Background(), panicking)
	measurement := Execute(context.Background(), panicking)

	require.Equal(t, Faulted, measurement.Outcome)
	assert.Contains(t, measurement.Err.Error(), "boom")
	assert.Less(t, measurement.PeakMemory, uint64(1024))
}
