package services

import (
	"slices"
	"testing"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedInputsAreValid(t *testing.T) {
	generator := NewInputGenerator(42)

	for _, category := range algorithms.Categories() {
		for _, size := range []int{1, 2, 7, 15} {
			input, target, err := generator.Generate(category, size)
			require.NoError(t, err, "%s/%d", category, size)

			assert.NoError(t, input.Validate(category), "%s/%d", category, size)
			assert.Equal(t, size, input.Size(category), "%s/%d", category, size)
			assert.Equal(t, category.RequiresTarget(), target != nil, "%s/%d", category, size)

			if target != nil {
				assert.True(t, slices.Contains(input.Array, *target))
			}
		}
	}
}

func TestGeneratedArrayValuesAreUnique(t *testing.T) {
	input, _, err := NewInputGenerator(7).Generate(algorithms.Sorting, 100)
	require.NoError(t, err)

	sorted := slices.Clone(input.Array)
	slices.Sort(sorted)
	assert.Len(t, slices.Compact(sorted), 100)
	assert.GreaterOrEqual(t, sorted[0], 1)
	assert.LessOrEqual(t, sorted[len(sorted)-1], 1000)
}

func TestGenerateRejections(t *testing.T) {
	generator := NewInputGenerator(1)

	_, _, err := generator.Generate(algorithms.SubsetGeneration, 21)
	assert.ErrorIs(t, err, entities.InvalidInput)

	_, _, err = generator.Generate(algorithms.Sorting, 0)
	assert.ErrorIs(t, err, entities.InvalidInput)

	_, _, err = generator.Generate(algorithms.Category("poetry"), 3)
	assert.ErrorIs(t, err, entities.InvalidInput)
}
