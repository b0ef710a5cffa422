// Package rules implements pseudo-legal and legal move generation, the
// king-safety attack filter, castling/en-passant/promotion handling, loud
// move enumeration for quiescence, and per-piece mobility counting — the
// N-dimensional generalization of classical chess movement.
package rules

import (
	"github.com/MichaelMcCulloch/hyperchess-sub000/bitboard"
	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/boardcache"
)

func occupancyFor(b *board.Board, p board.Player) *bitboard.Set {
	if p == board.White {
		return b.WhiteOcc
	}
	return b.BlackOcc
}

func emptySquares(b *board.Board) *bitboard.Set {
	occ := b.WhiteOcc.Clone()
	occ.Or(b.BlackOcc)
	occ.Not()
	return occ
}

// EmptySquares exposes emptySquares for packages outside rules.
func EmptySquares(b *board.Board) *bitboard.Set { return emptySquares(b) }

// GenerateLegalMoves returns every move available to player that does not
// leave player's own king attacked afterward.
func GenerateLegalMoves(b *board.Board, player board.Player) []board.Move {
	pseudo := GeneratePseudoLegalMoves(b, player)
	legal := make([]board.Move, 0, len(pseudo))
	for _, m := range pseudo {
		if moveIsLegal(b, player, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func moveIsLegal(b *board.Board, player board.Player, m board.Move) bool {
	info, err := b.ApplyMove(m)
	if err != nil {
		return false
	}
	defer b.UnmakeMove(m, info)
	kingCoord, ok := b.GetKingCoordinate(player)
	if !ok {
		return true
	}
	return !IsSquareAttacked(b, kingCoord, player.Opponent())
}

// GeneratePseudoLegalMoves enumerates every move available to player
// ignoring whether it leaves that player's own king attacked.
func GeneratePseudoLegalMoves(b *board.Board, player board.Player) []board.Move {
	cache := boardcache.Get(b.Dimension, b.Side)
	var moves []board.Move

	occ := occupancyFor(b, player).Clone()
	for {
		idx, ok := occ.PopLSB()
		if !ok {
			break
		}
		piece, _ := b.GetPieceAtIndex(idx)
		coord := b.IndexToCoords(idx)
		switch piece.Type {
		case board.Pawn:
			moves = append(moves, genPawnMoves(b, cache, player, idx, coord)...)
		case board.Knight:
			moves = append(moves, genLeaperMoves(b, player, idx, coord, cache.KnightOffsets)...)
		case board.King:
			moves = append(moves, genLeaperMoves(b, player, idx, coord, cache.KingOffsets)...)
		case board.Bishop:
			moves = append(moves, genSliderMoves(b, cache, player, idx, coord, bishopDirRange(cache))...)
		case board.Rook:
			moves = append(moves, genSliderMoves(b, cache, player, idx, coord, rookDirRange(cache))...)
		case board.Queen:
			moves = append(moves, genSliderMoves(b, cache, player, idx, coord, allDirRange(cache))...)
		}
	}
	moves = append(moves, GenerateCastlingMoves(b, player)...)
	return moves
}

func rookDirRange(c *boardcache.Cache) []int {
	r := make([]int, len(c.RookDirections))
	for i := range r {
		r[i] = i
	}
	return r
}

func bishopDirRange(c *boardcache.Cache) []int {
	n := len(c.RookDirections)
	r := make([]int, len(c.BishopDirections))
	for i := range r {
		r[i] = n + i
	}
	return r
}

func allDirRange(c *boardcache.Cache) []int {
	r := make([]int, len(c.SliderDirections))
	for i := range r {
		r[i] = i
	}
	return r
}

func genSliderMoves(b *board.Board, cache *boardcache.Cache, player board.Player, idx int, from board.Coordinate, dirIndices []int) []board.Move {
	empty := emptySquares(b)
	ownOcc := occupancyFor(b, player)
	var moves []board.Move
	for _, dirIdx := range dirIndices {
		reachable := koggeStoneFill(cache, dirIdx, idx, b.TotalCells, empty)
		reachable.AndNot(ownOcc)
		reachable.ForEach(func(toIdx int) {
			moves = append(moves, board.Move{From: from, To: b.IndexToCoords(toIdx)})
		})
	}
	return moves
}

func genLeaperMoves(b *board.Board, player board.Player, idx int, from board.Coordinate, offsets [][]int) []board.Move {
	ownOcc := occupancyFor(b, player)
	var moves []board.Move
	for _, off := range offsets {
		to := applyOffset(from, off)
		if !b.InBounds(to) {
			continue
		}
		toIdx := b.CoordsToIndex(to)
		if ownOcc.GetBit(toIdx) {
			continue
		}
		moves = append(moves, board.Move{From: from, To: to})
	}
	return moves
}

func applyOffset(c board.Coordinate, off []int) board.Coordinate {
	values := make([]int, len(c.Values))
	for i := range values {
		values[i] = c.Values[i] + off[i]
	}
	return board.Coordinate{Values: values}
}

// forwardSign returns +1 for White, -1 for Black.
func forwardSign(p board.Player) int {
	if p == board.White {
		return 1
	}
	return -1
}

func genPawnMoves(b *board.Board, cache *boardcache.Cache, player board.Player, idx int, from board.Coordinate) []board.Move {
	var moves []board.Move
	forward := forwardSign(player)
	empty := emptySquares(b)
	oppOcc := occupancyFor(b, player.Opponent())

	// Pushes: any axis other than axis 1 (the file/castling axis).
	for axis := 0; axis < b.Dimension; axis++ {
		if axis == 1 {
			continue
		}
		single := make([]int, b.Dimension)
		copy(single, from.Values)
		single[axis] += forward
		singleCoord := board.Coordinate{Values: single}
		if !b.InBounds(singleCoord) {
			continue
		}
		singleIdx := b.CoordsToIndex(singleCoord)
		if !empty.GetBit(singleIdx) {
			continue
		}
		addPawnMove(&moves, b, player, from, singleCoord)

		startRank := 1
		if player == board.Black {
			startRank = b.Side - 2
		}
		if from.Values[axis] == startRank {
			double := make([]int, b.Dimension)
			copy(double, from.Values)
			double[axis] += 2 * forward
			doubleCoord := board.Coordinate{Values: double}
			if b.InBounds(doubleCoord) && empty.GetBit(b.CoordsToIndex(doubleCoord)) {
				addPawnMove(&moves, b, player, from, doubleCoord)
			}
		}
	}

	// Captures: axis-0 forward combined with +-1 on any other single
	// axis (including axis 1), per boardcache's pawn capture offsets.
	offsets := cache.WhitePawnCaptureOffsets
	if player == board.Black {
		offsets = cache.BlackPawnCaptureOffsets
	}
	for _, off := range offsets {
		to := applyOffset(from, off)
		if !b.InBounds(to) {
			continue
		}
		toIdx := b.CoordsToIndex(to)
		if oppOcc.GetBit(toIdx) {
			addPawnMove(&moves, b, player, from, to)
			continue
		}
		if b.EnPassant != nil && toIdx == b.EnPassant.Target {
			addPawnMove(&moves, b, player, from, to)
		}
	}
	return moves
}

// isPromotionDestination reports whether to is maximal for player on
// every axis other than axis 1, per spec.md §9(c).
func isPromotionDestination(b *board.Board, player board.Player, to board.Coordinate) bool {
	target := b.Side - 1
	if player == board.Black {
		target = 0
	}
	for axis, v := range to.Values {
		if axis == 1 {
			continue
		}
		if v != target {
			return false
		}
	}
	return true
}

func addPawnMove(moves *[]board.Move, b *board.Board, player board.Player, from, to board.Coordinate) {
	if isPromotionDestination(b, player, to) {
		for _, pt := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
			*moves = append(*moves, board.Move{From: from, To: to, Promotion: pt})
		}
		return
	}
	*moves = append(*moves, board.Move{From: from, To: to})
}

// IsSquareAttacked reports whether by attacks the cell at coord.
func IsSquareAttacked(b *board.Board, coord board.Coordinate, by board.Player) bool {
	cache := boardcache.Get(b.Dimension, b.Side)
	idx := b.CoordsToIndex(coord)
	attackerOcc := occupancyFor(b, by)

	for _, off := range cache.KnightOffsets {
		from := applyOffset(coord, off)
		if !b.InBounds(from) {
			continue
		}
		if p, ok := b.GetPiece(from); ok && p.Owner == by && p.Type == board.Knight {
			return true
		}
	}
	for _, off := range cache.KingOffsets {
		from := applyOffset(coord, off)
		if !b.InBounds(from) {
			continue
		}
		if p, ok := b.GetPiece(from); ok && p.Owner == by && p.Type == board.King {
			return true
		}
	}
	// Pawn capture attacks: the attacker sits one forward-step-plus-
	// lateral away from coord, in the attacker's own forward direction.
	offsets := cache.WhitePawnCaptureOffsets
	if by == board.Black {
		offsets = cache.BlackPawnCaptureOffsets
	}
	for _, off := range offsets {
		from := applyOffset(coord, negate(off))
		if !b.InBounds(from) {
			continue
		}
		if p, ok := b.GetPiece(from); ok && p.Owner == by && p.Type == board.Pawn {
			return true
		}
	}

	empty := emptySquares(b)
	for dirIdx := range cache.RookDirections {
		if rayHitsAttacker(b, cache, dirIdx, idx, empty, attackerOcc, board.Rook, board.Queen) {
			return true
		}
	}
	n := len(cache.RookDirections)
	for i := range cache.BishopDirections {
		if rayHitsAttacker(b, cache, n+i, idx, empty, attackerOcc, board.Bishop, board.Queen) {
			return true
		}
	}
	return false
}

func negate(off []int) []int {
	n := make([]int, len(off))
	for i, v := range off {
		n[i] = -v
	}
	return n
}

// rayHitsAttacker walks the slider fill from idx along dirIdx and checks
// whether the first blocker is an enemy piece of either wantA or wantB.
func rayHitsAttacker(b *board.Board, cache *boardcache.Cache, dirIdx int, idx int, empty *bitboard.Set, attackerOcc *bitboard.Set, wantA, wantB board.PieceType) bool {
	reachable := koggeStoneFill(cache, dirIdx, idx, b.TotalCells, empty)
	reachable.And(attackerOcc)
	firstIdx, ok := nearestOnRay(b, cache, dirIdx, idx, reachable)
	if !ok {
		return false
	}
	p, _ := b.GetPieceAtIndex(firstIdx)
	return p.Type == wantA || p.Type == wantB
}

// nearestOnRay finds the candidate bit in candidates nearest to idx along
// the direction's stride, by walking step-1 increments — rays from a
// single origin are short relative to S, so a linear walk is sufficient
// and avoids recomputing distances from indices alone (which would be
// ambiguous across axis boundaries).
// NearestOnRay exposes nearestOnRay for packages outside rules.
func NearestOnRay(b *board.Board, cache *boardcache.Cache, dirIdx, idx int, candidates *bitboard.Set) (int, bool) {
	return nearestOnRay(b, cache, dirIdx, idx, candidates)
}

func nearestOnRay(b *board.Board, cache *boardcache.Cache, dirIdx, idx int, candidates *bitboard.Set) (int, bool) {
	if candidates.IsZero() {
		return 0, false
	}
	delta := cache.SliderDirections[dirIdx].delta
	coord := b.IndexToCoords(idx)
	cur := coord
	for step := 0; step < b.Side; step++ {
		next := applyOffset(cur, delta)
		if !b.InBounds(next) {
			return 0, false
		}
		nextIdx := b.CoordsToIndex(next)
		if candidates.GetBit(nextIdx) {
			return nextIdx, true
		}
		cur = next
	}
	return 0, false
}

// GenerateCastlingMoves returns the (at most two) castling moves
// available to player, valid only on the classical two-dimensional
// side-8 board.
func GenerateCastlingMoves(b *board.Board, player board.Player) []board.Move {
	if b.Side != 8 || b.Dimension != 2 {
		return nil
	}
	var moves []board.Move
	rank := 0
	kingsideRight := board.WhiteKingside
	queensideRight := board.WhiteQueenside
	opponent := player.Opponent()
	if player == board.Black {
		rank = b.Side - 1
		kingsideRight = board.BlackKingside
		queensideRight = board.BlackQueenside
	}
	kingCoord := board.NewCoordinate(rank, 4)
	if IsSquareAttacked(b, kingCoord, opponent) {
		return nil
	}
	if b.CastlingRights&kingsideRight != 0 {
		if cellsEmpty(b, rank, []int{5, 6}) &&
			!IsSquareAttacked(b, board.NewCoordinate(rank, 5), opponent) &&
			!IsSquareAttacked(b, board.NewCoordinate(rank, 6), opponent) {
			moves = append(moves, board.Move{From: kingCoord, To: board.NewCoordinate(rank, 6)})
		}
	}
	if b.CastlingRights&queensideRight != 0 {
		if cellsEmpty(b, rank, []int{1, 2, 3}) &&
			!IsSquareAttacked(b, board.NewCoordinate(rank, 3), opponent) &&
			!IsSquareAttacked(b, board.NewCoordinate(rank, 2), opponent) {
			moves = append(moves, board.Move{From: kingCoord, To: board.NewCoordinate(rank, 2)})
		}
	}
	return moves
}

func cellsEmpty(b *board.Board, rank int, files []int) bool {
	for _, f := range files {
		if _, ok := b.GetPiece(board.NewCoordinate(rank, f)); ok {
			return false
		}
	}
	return true
}

// IsLoud reports whether m is a capture (including en passant) or a
// promotion — the subset of legal moves quiescence search considers.
func IsLoud(b *board.Board, m board.Move) bool {
	if m.Promotion != board.None {
		return true
	}
	if _, ok := b.GetPiece(m.To); ok {
		return true
	}
	if b.EnPassant != nil {
		toIdx := b.CoordsToIndex(m.To)
		if toIdx == b.EnPassant.Target {
			if p, ok := b.GetPiece(m.From); ok && p.Type == board.Pawn {
				return true
			}
		}
	}
	return false
}

// GenerateLoudMoves returns the legal, loud subset for player — the
// quiescence search's move list.
func GenerateLoudMoves(b *board.Board, player board.Player) []board.Move {
	legal := GenerateLegalMoves(b, player)
	loud := legal[:0:0]
	for _, m := range legal {
		if IsLoud(b, m) {
			loud = append(loud, m)
		}
	}
	return loud
}

// CountPieceMobility returns the number of pseudo-legal destinations for
// the piece at idx, used by the evaluator's mobility term.
func CountPieceMobility(b *board.Board, idx int, pieceType board.PieceType) int {
	cache := boardcache.Get(b.Dimension, b.Side)
	coord := b.IndexToCoords(idx)
	owner := board.White
	if b.BlackOcc.GetBit(idx) {
		owner = board.Black
	}
	switch pieceType {
	case board.Knight:
		return len(genLeaperMoves(b, owner, idx, coord, cache.KnightOffsets))
	case board.Bishop:
		return len(genSliderMoves(b, cache, owner, idx, coord, bishopDirRange(cache)))
	case board.Rook:
		return len(genSliderMoves(b, cache, owner, idx, coord, rookDirRange(cache)))
	case board.Queen:
		return len(genSliderMoves(b, cache, owner, idx, coord, allDirRange(cache)))
	default:
		return 0
	}
}
