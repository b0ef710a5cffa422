// Package boardcache precomputes, once per (dimension, side) board shape,
// the direction/offset tables and step validity masks that move generation
// and evaluation consult on every call. Nothing here mutates after
// construction; a Cache is shared by immutable reference across every
// board of the same shape.
package boardcache

import "github.com/MichaelMcCulloch/hyperchess-sub000/bitboard"

// direction is one rook or bishop direction vector, plus its precomputed
// linear-index stride (sum of delta_i * side^i) used by the Kogge-Stone
// fill.
type direction struct {
	delta  []int
	stride int
}

// Cache holds every precomputed table for one (dimension, side) shape.
type Cache struct {
	Dimension int
	Side      int

	RookDirections   []direction
	BishopDirections []direction
	// SliderDirections is the concatenation of Rook then Bishop
	// directions, indexed consistently with ValidityMasks.
	SliderDirections []direction

	KnightOffsets [][]int
	KingOffsets   [][]int

	// WhitePawnCaptureOffsets / BlackPawnCaptureOffsets combine the
	// axis-0 forward step with a lateral +-1 step on any other single
	// axis (including axis 1), per SPEC_FULL.md's boardcache definition.
	WhitePawnCaptureOffsets [][]int
	BlackPawnCaptureOffsets [][]int

	// ValidityMasks[dirIndex][step] is the bitboard of cells from which
	// stepping `step` times along SliderDirections[dirIndex] stays
	// in-bounds on every axis. Populated for step = 1, 2, 4, ... < Side.
	ValidityMasks [][]*bitboard.Set
}

// New builds (or would, at process start, be looked up from a small
// process-lifetime cache keyed by shape) the full table set for one
// board shape.
func New(dimension, side int) *Cache {
	c := &Cache{Dimension: dimension, Side: side}
	c.RookDirections = rookDirections(dimension, side)
	c.BishopDirections = bishopDirections(dimension, side)
	c.SliderDirections = append(append([]direction{}, c.RookDirections...), c.BishopDirections...)
	c.KnightOffsets = knightOffsets(dimension)
	c.KingOffsets = kingOffsets(dimension)
	c.WhitePawnCaptureOffsets = pawnCaptureOffsets(dimension, +1)
	c.BlackPawnCaptureOffsets = pawnCaptureOffsets(dimension, -1)
	c.ValidityMasks = buildValidityMasks(dimension, side, c.SliderDirections)
	return c
}

func stride(delta []int, side int) int {
	s := 0
	weight := 1
	for _, d := range delta {
		s += d * weight
		weight *= side
	}
	return s
}

func rookDirections(dimension, side int) []direction {
	var dirs []direction
	for axis := 0; axis < dimension; axis++ {
		for _, sign := range []int{1, -1} {
			delta := make([]int, dimension)
			delta[axis] = sign
			dirs = append(dirs, direction{delta: delta, stride: stride(delta, side)})
		}
	}
	return dirs
}

// bishopDirections returns every vector in {-1,0,1}^N with an even,
// non-zero number of non-zero components.
func bishopDirections(dimension, side int) []direction {
	var dirs []direction
	delta := make([]int, dimension)
	var rec func(axis int)
	rec = func(axis int) {
		if axis == dimension {
			nz := 0
			for _, v := range delta {
				if v != 0 {
					nz++
				}
			}
			if nz > 0 && nz%2 == 0 {
				cp := append([]int(nil), delta...)
				dirs = append(dirs, direction{delta: cp, stride: stride(cp, side)})
			}
			return
		}
		for _, v := range []int{-1, 0, 1} {
			delta[axis] = v
			rec(axis + 1)
		}
		delta[axis] = 0
	}
	rec(0)
	return dirs
}

// knightOffsets returns every vector with magnitude 2 on one axis and 1
// on a distinct axis, zero elsewhere.
func knightOffsets(dimension int) [][]int {
	var offsets [][]int
	for twoAxis := 0; twoAxis < dimension; twoAxis++ {
		for oneAxis := 0; oneAxis < dimension; oneAxis++ {
			if twoAxis == oneAxis {
				continue
			}
			for _, twoSign := range []int{2, -2} {
				for _, oneSign := range []int{1, -1} {
					delta := make([]int, dimension)
					delta[twoAxis] = twoSign
					delta[oneAxis] = oneSign
					offsets = append(offsets, delta)
				}
			}
		}
	}
	return offsets
}

// kingOffsets returns every vector in {-1,0,1}^N except the zero vector.
func kingOffsets(dimension int) [][]int {
	var offsets [][]int
	delta := make([]int, dimension)
	var rec func(axis int)
	rec = func(axis int) {
		if axis == dimension {
			allZero := true
			for _, v := range delta {
				if v != 0 {
					allZero = false
					break
				}
			}
			if !allZero {
				offsets = append(offsets, append([]int(nil), delta...))
			}
			return
		}
		for _, v := range []int{-1, 0, 1} {
			delta[axis] = v
			rec(axis + 1)
		}
		delta[axis] = 0
	}
	rec(0)
	return offsets
}

// pawnCaptureOffsets combines the axis-0 forward step with +-1 on every
// other single axis, including axis 1.
func pawnCaptureOffsets(dimension int, forward int) [][]int {
	var offsets [][]int
	for axis := 1; axis < dimension; axis++ {
		for _, lateral := range []int{1, -1} {
			delta := make([]int, dimension)
			delta[0] = forward
			delta[axis] = lateral
			offsets = append(offsets, delta)
		}
	}
	return offsets
}

// buildValidityMasks computes, for each slider direction and each
// power-of-two step < side, the bitboard of origin cells from which that
// many steps in that direction remain within every axis's bounds.
func buildValidityMasks(dimension, side int, dirs []direction) [][]*bitboard.Set {
	total := 1
	for i := 0; i < dimension; i++ {
		total *= side
	}
	masks := make([][]*bitboard.Set, len(dirs))
	steps := stepSequence(side)
	for di, d := range dirs {
		masks[di] = make([]*bitboard.Set, len(steps))
		for si, k := range steps {
			mask := bitboard.New(total)
			for idx := 0; idx < total; idx++ {
				if stepsStayInBounds(idx, d.delta, k, dimension, side) {
					mask.SetBit(idx)
				}
			}
			masks[di][si] = mask
		}
	}
	return masks
}

// stepSequence returns 1, 2, 4, ... < side.
func stepSequence(side int) []int {
	var steps []int
	for k := 1; k < side; k *= 2 {
		steps = append(steps, k)
	}
	return steps
}

func stepsStayInBounds(idx int, delta []int, k, dimension, side int) bool {
	coords := indexToCoords(idx, dimension, side)
	for axis, d := range delta {
		v := coords[axis] + d*k
		if v < 0 || v >= side {
			return false
		}
	}
	return true
}

func indexToCoords(idx, dimension, side int) []int {
	coords := make([]int, dimension)
	for i := 0; i < dimension; i++ {
		coords[i] = idx % side
		idx /= side
	}
	return coords
}

// MaskFor returns the validity mask for the given slider direction index
// and exact step k (which must be a power of two present in the cache's
// step sequence), or nil if none was built for that step.
func (c *Cache) MaskFor(dirIndex, k int) *bitboard.Set {
	steps := stepSequence(c.Side)
	for i, s := range steps {
		if s == k {
			return c.ValidityMasks[dirIndex][i]
		}
	}
	return nil
}

// Steps exposes the power-of-two step sequence used for this shape's
// Kogge-Stone doubling.
func (c *Cache) Steps() []int { return stepSequence(c.Side) }
