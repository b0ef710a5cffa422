// Package bitboard implements the fixed-width bit-set abstraction over cell
// indices of an N-dimensional board. Storage variant (word, double-word, or
// chunked lane array) is chosen purely by capacity; operations never mix
// variants of different capacity.
package bitboard

import "math/bits"

// Mode identifies which of the three storage tiers a Set uses.
type Mode uint8

const (
	// Small holds up to 32 cells in a single uint32.
	Small Mode = iota
	// Medium holds up to 128 cells in a pair of uint64 words.
	Medium
	// Large holds an arbitrary number of cells in a lane array, one
	// uint64 per 64 cells, most-significant lane first.
	Large
)

const wordBits = 64

// Set is a bit vector over cell indices [0, Bits).
type Set struct {
	mode  Mode
	bits  int
	small uint32
	lo    uint64 // Medium: bits [0,64)
	hi    uint64 // Medium: bits [64,128)
	lanes []uint64 // Large: big-endian lanes, lanes[0] is most significant
}

// New returns an empty Set with capacity for the given number of cells.
func New(totalCells int) *Set {
	s := &Set{bits: totalCells}
	switch {
	case totalCells <= 32:
		s.mode = Small
	case totalCells <= 128:
		s.mode = Medium
	default:
		s.mode = Large
		s.lanes = make([]uint64, (totalCells+wordBits-1)/wordBits)
	}
	return s
}

// Bits reports the capacity (S^N) this Set was constructed for.
func (s *Set) Bits() int { return s.bits }

// Mode reports the storage tier in use.
func (s *Set) Mode() Mode { return s.mode }

// laneOf converts a bit index into (lane, bitInLane) for Large mode,
// where lane 0 holds the highest-indexed 64 cells.
func (s *Set) laneOf(i int) (lane int, bit uint) {
	n := len(s.lanes)
	// lanes are ordered most-significant first; cell i lives in the lane
	// counted from the end, i.e. lane (n-1) - i/64.
	lane = n - 1 - i/wordBits
	bit = uint(i % wordBits)
	return
}

// SetBit sets bit i.
func (s *Set) SetBit(i int) {
	switch s.mode {
	case Small:
		s.small |= 1 << uint(i)
	case Medium:
		if i < 64 {
			s.lo |= 1 << uint(i)
		} else {
			s.hi |= 1 << uint(i-64)
		}
	default:
		lane, bit := s.laneOf(i)
		s.lanes[lane] |= 1 << bit
	}
}

// ClearBit clears bit i.
func (s *Set) ClearBit(i int) {
	switch s.mode {
	case Small:
		s.small &^= 1 << uint(i)
	case Medium:
		if i < 64 {
			s.lo &^= 1 << uint(i)
		} else {
			s.hi &^= 1 << uint(i-64)
		}
	default:
		lane, bit := s.laneOf(i)
		s.lanes[lane] &^= 1 << bit
	}
}

// GetBit reports whether bit i is set.
func (s *Set) GetBit(i int) bool {
	switch s.mode {
	case Small:
		return s.small&(1<<uint(i)) != 0
	case Medium:
		if i < 64 {
			return s.lo&(1<<uint(i)) != 0
		}
		return s.hi&(1<<uint(i-64)) != 0
	default:
		lane, bit := s.laneOf(i)
		return s.lanes[lane]&(1<<bit) != 0
	}
}

// Count returns the number of set bits.
func (s *Set) Count() int {
	switch s.mode {
	case Small:
		return bits.OnesCount32(s.small)
	case Medium:
		return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
	default:
		n := 0
		for _, w := range s.lanes {
			n += bits.OnesCount64(w)
		}
		return n
	}
}

// IsZero reports whether no bits are set.
func (s *Set) IsZero() bool { return s.Count() == 0 }

// PopLSB clears and returns the lowest-indexed set bit. ok is false when the
// set was empty.
func (s *Set) PopLSB() (idx int, ok bool) {
	switch s.mode {
	case Small:
		if s.small == 0 {
			return 0, false
		}
		idx = bits.TrailingZeros32(s.small)
		s.small &= s.small - 1
		return idx, true
	case Medium:
		if s.lo != 0 {
			idx = bits.TrailingZeros64(s.lo)
			s.lo &= s.lo - 1
			return idx, true
		}
		if s.hi != 0 {
			idx = 64 + bits.TrailingZeros64(s.hi)
			s.hi &= s.hi - 1
			return idx, true
		}
		return 0, false
	default:
		n := len(s.lanes)
		for lane := n - 1; lane >= 0; lane-- {
			if s.lanes[lane] != 0 {
				bit := bits.TrailingZeros64(s.lanes[lane])
				s.lanes[lane] &= s.lanes[lane] - 1
				idx = (n-1-lane)*wordBits + bit
				return idx, true
			}
		}
		return 0, false
	}
}

// ForEach calls f with every set index in ascending order without mutating
// the receiver.
func (s *Set) ForEach(f func(idx int)) {
	clone := s.Clone()
	for {
		idx, ok := clone.PopLSB()
		if !ok {
			return
		}
		f(idx)
	}
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	c := &Set{mode: s.mode, bits: s.bits, small: s.small, lo: s.lo, hi: s.hi}
	if s.lanes != nil {
		c.lanes = append([]uint64(nil), s.lanes...)
	}
	return c
}

// CopyFrom overwrites the receiver's bits with src's. Both must share mode
// and capacity.
func (s *Set) CopyFrom(src *Set) {
	s.small = src.small
	s.lo = src.lo
	s.hi = src.hi
	if s.lanes != nil {
		copy(s.lanes, src.lanes)
	}
}

// Reset zeroes the receiver in place, keeping its mode, capacity and lane
// storage without reallocating.
func (s *Set) Reset() {
	s.small, s.lo, s.hi = 0, 0, 0
	for i := range s.lanes {
		s.lanes[i] = 0
	}
}

// ResetLike zeroes the receiver and, if its capacity differs from
// template's, resizes the lane storage to match — the "resize lanes to
// match template; zero them" reuse primitive.
func (s *Set) ResetLike(template *Set) {
	s.mode = template.mode
	s.bits = template.bits
	s.small, s.lo, s.hi = 0, 0, 0
	if template.mode == Large {
		if cap(s.lanes) >= len(template.lanes) {
			s.lanes = s.lanes[:len(template.lanes)]
			for i := range s.lanes {
				s.lanes[i] = 0
			}
		} else {
			s.lanes = make([]uint64, len(template.lanes))
		}
	} else {
		s.lanes = nil
	}
}

// And computes the in-place intersection s &= other.
func (s *Set) And(other *Set) {
	switch s.mode {
	case Small:
		s.small &= other.small
	case Medium:
		s.lo &= other.lo
		s.hi &= other.hi
	default:
		for i := range s.lanes {
			s.lanes[i] &= other.lanes[i]
		}
	}
}

// Or computes the in-place union s |= other.
func (s *Set) Or(other *Set) {
	switch s.mode {
	case Small:
		s.small |= other.small
	case Medium:
		s.lo |= other.lo
		s.hi |= other.hi
	default:
		for i := range s.lanes {
			s.lanes[i] |= other.lanes[i]
		}
	}
}

// AndNot computes the in-place difference s &= ^other.
func (s *Set) AndNot(other *Set) {
	switch s.mode {
	case Small:
		s.small &^= other.small
	case Medium:
		s.lo &^= other.lo
		s.hi &^= other.hi
	default:
		for i := range s.lanes {
			s.lanes[i] &^= other.lanes[i]
		}
	}
}

// Not complements the receiver in place, within its capacity (bits beyond
// s.bits in the top word/lane are left as garbage beyond the valid range;
// callers must mask against a known-valid-cells template when needed).
func (s *Set) Not() {
	switch s.mode {
	case Small:
		s.small = ^s.small
	case Medium:
		s.lo = ^s.lo
		s.hi = ^s.hi
	default:
		for i := range s.lanes {
			s.lanes[i] = ^s.lanes[i]
		}
	}
}

// Shl shifts the whole bit vector left by k (toward higher indices),
// discarding bits shifted past the storage width. Bits that land at or
// above Bits() but still inside the last word or lane are kept, as with
// Not.
func (s *Set) Shl(k int) {
	if k <= 0 {
		return
	}
	switch s.mode {
	case Small:
		if k >= 32 {
			s.small = 0
			return
		}
		s.small <<= uint(k)
	case Medium:
		if k >= 128 {
			s.lo, s.hi = 0, 0
			return
		}
		if k >= 64 {
			s.hi = s.lo << uint(k-64)
			s.lo = 0
			return
		}
		s.hi = (s.hi << uint(k)) | (s.lo >> uint(64-k))
		s.lo <<= uint(k)
	default:
		s.shiftLanesLeft(k)
	}
}

// Shr shifts the whole bit vector right by k (toward lower indices),
// discarding bits that underflow below zero.
func (s *Set) Shr(k int) {
	if k <= 0 {
		return
	}
	switch s.mode {
	case Small:
		if k >= 32 {
			s.small = 0
			return
		}
		s.small >>= uint(k)
	case Medium:
		if k >= 128 {
			s.lo, s.hi = 0, 0
			return
		}
		if k >= 64 {
			s.lo = s.hi >> uint(k-64)
			s.hi = 0
			return
		}
		s.lo = (s.lo >> uint(k)) | (s.hi << uint(64-k))
		s.hi >>= uint(k)
	default:
		s.shiftLanesRight(k)
	}
}

// shiftLanesLeft implements the Large-mode shift: rotate whole lanes by
// floor(k/64) toward the low (most-significant, index 0) end, then ripple a
// k%64 intra-lane shift blending in bits carried from the neighboring,
// less-significant lane.
func (s *Set) shiftLanesLeft(k int) {
	n := len(s.lanes)
	laneShift := k / wordBits
	bitShift := uint(k % wordBits)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		src := i + laneShift
		if src >= n {
			continue
		}
		v := s.lanes[src] << bitShift
		if bitShift > 0 && src+1 < n {
			v |= s.lanes[src+1] >> (wordBits - bitShift)
		}
		out[i] = v
	}
	s.lanes = out
}

// shiftLanesRight is the mirror image of shiftLanesLeft.
func (s *Set) shiftLanesRight(k int) {
	n := len(s.lanes)
	laneShift := k / wordBits
	bitShift := uint(k % wordBits)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		src := i - laneShift
		if src < 0 {
			continue
		}
		v := s.lanes[src] >> bitShift
		if bitShift > 0 && src-1 >= 0 {
			v |= s.lanes[src-1] << (wordBits - bitShift)
		}
		out[i] = v
	}
	s.lanes = out
}

// Equal reports whether two sets of matching capacity hold the same bits.
func (s *Set) Equal(o *Set) bool {
	switch s.mode {
	case Small:
		return s.small == o.small
	case Medium:
		return s.lo == o.lo && s.hi == o.hi
	default:
		for i := range s.lanes {
			if s.lanes[i] != o.lanes[i] {
				return false
			}
		}
		return true
	}
}
