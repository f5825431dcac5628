package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisPartitionCoversExactly(t *testing.T) {
	offsets, counts := axisPartition(10, 3)
	require.Len(t, offsets, 3)

	total := 0
	for i, c := range counts {
		total += c
		if i > 0 {
			assert.Equal(t, offsets[i-1]+counts[i-1], offsets[i])
		}
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 4, counts[0]) // as-equal-as-possible: extra cell to lowest-indexed units
	assert.Equal(t, 3, counts[1])
	assert.Equal(t, 3, counts[2])
}

func TestAxisUnitOfCoversEveryGlobalIndex(t *testing.T) {
	offsets, counts := axisPartition(17, 4)
	for g := 0; g < 17; g++ {
		u := axisUnitOf(g, offsets, counts)
		assert.LessOrEqual(t, offsets[u], g)
		assert.Less(t, g, offsets[u]+counts[u])
	}
}
