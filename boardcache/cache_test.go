package boardcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRookDirectionCount(t *testing.T) {
	c := New(3, 4)
	assert.Len(t, c.RookDirections, 2*3)
}

func TestKingOffsetsExcludeZero(t *testing.T) {
	c := New(2, 8)
	assert.Len(t, c.KingOffsets, 8)
	for _, o := range c.KingOffsets {
		nonZero := false
		for _, v := range o {
			if v != 0 {
				nonZero = true
			}
		}
		assert.True(t, nonZero)
	}
}

func TestKnightOffsets3D(t *testing.T) {
	c := New(3, 4)
	// magnitude-2-on-one-axis, magnitude-1-on-a-distinct-axis, zero
	// elsewhere; from (0,0,0) this matches the seed scenario's 6
	// destinations once filtered for bounds, but the offsets themselves
	// total 3 axis pairs * 2 orders * 2 signs(on 2) * 2 signs(on 1) = 24.
	assert.Len(t, c.KnightOffsets, 3*2*2*2)
}

func TestValidityMaskStepOneMatchesBounds(t *testing.T) {
	c := New(2, 8)
	// direction index 0 is the +1 axis-0 rook direction.
	mask := c.MaskFor(0, 1)
	assert.NotNil(t, mask)
	// Cell at rank 7 (max) cannot step +1 on axis 0 and stay in bounds.
	assert.False(t, mask.GetBit(7)) // coordinate (7,0) -> index 7
	// Cell at rank 0 can.
	assert.True(t, mask.GetBit(0))
}
