package rules

import (
	"github.com/MichaelMcCulloch/hyperchess-sub000/bitboard"
	"github.com/MichaelMcCulloch/hyperchess-sub000/boardcache"
)

// shiftBy applies a signed shift: positive amounts shift toward higher
// indices (Shl), negative amounts shift toward lower indices (Shr).
func shiftBy(s *bitboard.Set, amount int) {
	if amount > 0 {
		s.Shl(amount)
	} else if amount < 0 {
		s.Shr(-amount)
	}
}

// koggeStoneFill computes the set of squares reachable by sliding from
// originIdx along the direction at SliderDirections[dirIndex], through
// empty squares, stopping at (and including) the first blocker —
// SPEC_FULL.md §4.4's doubling-trick sliding fill.
func koggeStoneFill(cache *boardcache.Cache, dirIndex int, originIdx, totalCells int, empty *bitboard.Set) *bitboard.Set {
	origin := bitboard.New(totalCells)
	origin.SetBit(originIdx)

	g := origin.Clone()
	p := empty.Clone()
	stride := cache.SliderDirections[dirIndex].stride

	for _, k := range cache.Steps() {
		mask := cache.MaskFor(dirIndex, k)
		if mask == nil {
			continue
		}
		amount := stride * k

		maskedG := g.Clone()
		maskedG.And(mask)
		shiftBy(maskedG, amount)
		maskedG.And(p)
		g.Or(maskedG)

		maskedP := p.Clone()
		maskedP.And(mask)
		shiftBy(maskedP, amount)
		p.And(maskedP)
	}

	// Final single step with the step-1 mask includes the first blocker
	// (a capture), without requiring the destination to be empty.
	mask1 := cache.MaskFor(dirIndex, 1)
	if mask1 != nil {
		maskedG := g.Clone()
		maskedG.And(mask1)
		shiftBy(maskedG, stride)
		g.Or(maskedG)
	}

	g.ClearBit(originIdx)
	return g
}

// SlideFill exposes koggeStoneFill for packages outside rules (static
// exchange evaluation needs the same ray-fill to find x-ray attackers).
func SlideFill(cache *boardcache.Cache, dirIndex int, originIdx, totalCells int, empty *bitboard.Set) *bitboard.Set {
	return koggeStoneFill(cache, dirIndex, originIdx, totalCells, empty)
}
