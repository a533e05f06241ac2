package multiwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkSize(t *testing.T) {
	cases := []struct {
		elements, width, want int
	}{
		{elements: 0, width: 4, want: 1},
		{elements: 3, width: 4, want: 1},
		{elements: 4, width: 4, want: 1},
		{elements: 5, width: 4, want: 1},
		{elements: 8, width: 4, want: 2},
		{elements: 1000, width: 4, want: 250},
		{elements: 1001, width: 4, want: 250},
		{elements: 100, width: 3, want: 33},
		{elements: 37, width: 1, want: 37},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, chunkSize(c.elements, c.width),
			"chunkSize(%d, %d)", c.elements, c.width)
	}
}

// TestChunkSizeBound asserts that partitioning never overshoots: as long as
// there are at least as many elements as parallel units, the units' combined
// chunks fit within the element count.
func TestChunkSizeBound(t *testing.T) {
	for width := 1; width <= 16; width++ {
		for elements := width; elements <= 4*width+3; elements++ {
			chunk := chunkSize(elements, width)
			assert.LessOrEqual(t, chunk*width, elements,
				"chunkSize(%d, %d)*%d exceeds element count", elements, width, width)
		}
	}
}
