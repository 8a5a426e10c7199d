package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFormula(t *testing.T) {
	weights := DefaultWeights()

	assert.InDelta(t, 1.0, Score(true, 2, 4, 2, 4, weights), 1e-12)
	assert.InDelta(t, 0.5, Score(true, 0, 0, 2, 4, weights), 1e-12)
	assert.InDelta(t, 0.5*1+0.3*0.5+0.2*0.25, Score(true, 4, 16, 2, 4, weights), 1e-12)
	assert.InDelta(t, 0.3+0.2, Score(false, 2, 4, 2, 4, weights), 1e-12)
	assert.Zero(t, Score(false, 1, 1, 0, 0, weights))
}

func TestFastestParticipantGetsFullTimeTerm(t *testing.T) {
	times := []float64{0.0031, 0.0009, 0.0120}
	fastest := Min(times)
	require.Equal(t, 0.0009, fastest)

	assert.Equal(t, 1.0, Compute(true, times[1], 1, fastest, 1).Time)
	assert.Less(t, Compute(true, times[0], 1, fastest, 1).Time, 1.0)
}

func TestScoreIsBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := DefaultWeights()

	for i := 0; i < 1000; i++ {
		times := []float64{rng.Float64(), rng.Float64() * 10, rng.Float64() / 100}
		memories := []float64{rng.Float64() * 1e6, 0, rng.Float64()}
		fastest, lowest := Min(times), Min(memories)

		for j := range times {
			score := Score(rng.Intn(2) == 0, times[j], memories[j], fastest, lowest, weights)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.ErrorIs(t, Weights{Correctness: 0.6, Time: 0.3, Memory: 0.2}.Validate(), InvalidWeights)
	assert.ErrorIs(t, Weights{Correctness: 1.2, Time: -0.2}.Validate(), InvalidWeights)
	assert.NoError(t, Weights{Correctness: 1}.Validate())
}

func TestMin(t *testing.T) {
	assert.Equal(t, 2.0, Min([]float64{3, 5, 2, 9}))
	assert.Zero(t, Min([]float64{4, 0}))
	assert.Zero(t, Min(nil))
}

func TestZeroBaselineZeroesTerm(t *testing.T) {
	terms := Compute(true, 0.5, 100, 0.5, 0)

	assert.Equal(t, 1.0, terms.Time)
	assert.Zero(t, terms.Memory)
}

func TestRankKeepsTiesStable(t *testing.T) {
	order, ranks := Rank([]float64{0.5, 0.9, 0.5, 1.0, 0.1})

	assert.Equal(t, []int{3, 1, 0, 2, 4}, order)
	assert.Equal(t, []int{3, 2, 3, 1, 5}, ranks)
}
