package bitboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBitAcrossModes(t *testing.T) {
	for _, cells := range []int{20, 100, 5000} {
		s := New(cells)
		s.SetBit(3)
		assert.True(t, s.GetBit(3))
		assert.Equal(t, 1, s.Count())
		s.ClearBit(3)
		assert.False(t, s.GetBit(3))
		assert.Equal(t, 0, s.Count())
	}
}

func TestPopLSBAscending(t *testing.T) {
	for _, cells := range []int{20, 100, 5000} {
		s := New(cells)
		s.SetBit(5)
		s.SetBit(1)
		s.SetBit(cells - 1)
		var got []int
		for {
			idx, ok := s.PopLSB()
			if !ok {
				break
			}
			got = append(got, idx)
		}
		assert.Equal(t, []int{1, 5, cells - 1}, got)
	}
}

func TestShlShrRoundTrip(t *testing.T) {
	for _, cells := range []int{100, 5000} {
		s := New(cells)
		s.SetBit(10)
		s.Shl(3)
		assert.True(t, s.GetBit(13))
		s.Shr(3)
		assert.True(t, s.GetBit(10))
	}
}

func TestAndOrAndNot(t *testing.T) {
	a := New(200)
	b := New(200)
	a.SetBit(7)
	a.SetBit(8)
	b.SetBit(8)

	and := a.Clone()
	and.And(b)
	assert.Equal(t, 1, and.Count())
	assert.True(t, and.GetBit(8))

	or := a.Clone()
	or.Or(b)
	assert.Equal(t, 2, or.Count())

	andNot := a.Clone()
	andNot.AndNot(b)
	assert.Equal(t, 1, andNot.Count())
	assert.True(t, andNot.GetBit(7))
}

func TestResetLikeReusesCapacity(t *testing.T) {
	template := New(5000)
	template.SetBit(10)
	scratch := New(5000)
	scratch.SetBit(99)
	scratch.ResetLike(template)
	assert.Equal(t, 0, scratch.Count())
	assert.Equal(t, template.Mode(), scratch.Mode())
}
