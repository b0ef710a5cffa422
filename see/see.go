// Package see implements static exchange evaluation: simulating a capture
// sequence on a single square to price in recaptures before a search
// prunes a losing-looking capture.
package see

import (
	"github.com/MichaelMcCulloch/hyperchess-sub000/bitboard"
	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/boardcache"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
)

var pieceValue = map[board.PieceType]int{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

// Evaluate runs the swap-off simulation for the capturing move m and
// returns the net material result from the moving side's perspective.
func Evaluate(b *board.Board, m board.Move) int {
	sim := b.Clone()
	fromIdx := sim.CoordsToIndex(m.From)
	toIdx := sim.CoordsToIndex(m.To)

	capturer, ok := sim.GetPieceAtIndex(fromIdx)
	if !ok {
		return 0
	}
	mover := capturer.Owner

	var target board.Piece
	if target, ok = sim.GetPieceAtIndex(toIdx); !ok {
		if sim.EnPassant != nil && toIdx == sim.EnPassant.Target {
			target = board.Piece{Type: board.Pawn, Owner: mover.Opponent()}
		} else {
			return 0
		}
	}

	gain := []int{pieceValue[target.Type]}
	next := pieceValue[capturer.Type]

	sim.RemovePiece(fromIdx)
	sim.RemovePiece(toIdx)
	sim.PlacePiece(toIdx, capturer)
	side := mover.Opponent()

	for {
		attackerIdx, attacker, found := leastValuableAttacker(sim, toIdx, side)
		if !found {
			break
		}
		gain = append(gain, next-gain[len(gain)-1])
		next = pieceValue[attacker.Type]
		sim.RemovePiece(attackerIdx)
		sim.RemovePiece(toIdx)
		sim.PlacePiece(toIdx, attacker)
		side = side.Opponent()
	}

	for len(gain) > 1 {
		last := gain[len(gain)-1]
		gain = gain[:len(gain)-1]
		tail := gain[len(gain)-1]
		if -last > tail {
			tail = -last
		}
		gain[len(gain)-1] = tail
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece belonging to side that
// attacks t, considering x-ray discoveries revealed by prior removals
// since it rescans the live board each call.
func leastValuableAttacker(b *board.Board, t int, side board.Player) (int, board.Piece, bool) {
	cache := boardcache.Get(b.Dimension, b.Side)
	coord := b.IndexToCoords(t)

	bestIdx := -1
	var best board.Piece
	bestValue := 1 << 30

	consider := func(idx int, p board.Piece) {
		if p.Owner != side {
			return
		}
		v := pieceValue[p.Type]
		if v < bestValue {
			bestValue = v
			bestIdx = idx
			best = p
		}
	}

	for _, off := range cache.KnightOffsets {
		from := applyOffset(coord, off)
		if !b.InBounds(from) {
			continue
		}
		if p, ok := b.GetPiece(from); ok && p.Type == board.Knight {
			consider(b.CoordsToIndex(from), p)
		}
	}
	for _, off := range cache.KingOffsets {
		from := applyOffset(coord, off)
		if !b.InBounds(from) {
			continue
		}
		if p, ok := b.GetPiece(from); ok && p.Type == board.King {
			consider(b.CoordsToIndex(from), p)
		}
	}
	offsets := cache.WhitePawnCaptureOffsets
	if side == board.Black {
		offsets = cache.BlackPawnCaptureOffsets
	}
	for _, off := range offsets {
		from := applyOffset(coord, negate(off))
		if !b.InBounds(from) {
			continue
		}
		if p, ok := b.GetPiece(from); ok && p.Type == board.Pawn {
			consider(b.CoordsToIndex(from), p)
		}
	}

	empty := rules.EmptySquares(b)
	attackerOcc := b.WhiteOcc
	if side == board.Black {
		attackerOcc = b.BlackOcc
	}
	n := len(cache.RookDirections)
	for dirIdx := range cache.SliderDirections {
		want := board.Rook
		if dirIdx >= n {
			want = board.Bishop
		}
		idx, p, ok := nearestSliderAttacker(b, cache, dirIdx, t, empty, attackerOcc, want)
		if ok {
			consider(idx, p)
		}
	}

	if bestIdx < 0 {
		return 0, board.Piece{}, false
	}
	return bestIdx, best, true
}

func nearestSliderAttacker(b *board.Board, cache *boardcache.Cache, dirIdx, t int, empty, attackerOcc *bitboard.Set, want board.PieceType) (int, board.Piece, bool) {
	reachable := rules.SlideFill(cache, dirIdx, t, b.TotalCells, empty)
	reachable.And(attackerOcc)
	nextIdx, ok := rules.NearestOnRay(b, cache, dirIdx, t, reachable)
	if !ok {
		return 0, board.Piece{}, false
	}
	p, _ := b.GetPieceAtIndex(nextIdx)
	if p.Type == want || p.Type == board.Queen {
		return nextIdx, p, true
	}
	return 0, board.Piece{}, false
}

func applyOffset(c board.Coordinate, off []int) board.Coordinate {
	values := make([]int, len(c.Values))
	for i := range values {
		values[i] = c.Values[i] + off[i]
	}
	return board.Coordinate{Values: values}
}

func negate(off []int) []int {
	n := make([]int, len(off))
	for i, v := range off {
		n[i] = -v
	}
	return n
}
