package board

import "github.com/MichaelMcCulloch/hyperchess-sub000/bitboard"

// Board holds eight parallel bitboards (occupancy per color, one per piece
// type) plus the Zobrist hash, move history, en-passant state, and
// castling rights. Dimension and Side are fixed for the board's lifetime;
// Board never mixes bitboard variants of mismatched capacity.
type Board struct {
	Dimension  int
	Side       int
	TotalCells int

	WhiteOcc *bitboard.Set
	BlackOcc *bitboard.Set
	Pawns    *bitboard.Set
	Knights  *bitboard.Set
	Bishops  *bitboard.Set
	Rooks    *bitboard.Set
	Queens   *bitboard.Set
	Kings    *bitboard.Set

	Zobrist *ZobristKeys
	Hash    uint64

	History []uint64

	EnPassant      *EnPassant
	CastlingRights uint8
}

// New builds an empty board of the given dimension and side length, with
// freshly generated Zobrist keys. Axis 0 is the rank axis, axis 1 the file
// axis (castling); axes >= 2 exist only when dimension >= 3.
func New(dimension, side int) *Board {
	total := 1
	for i := 0; i < dimension; i++ {
		total *= side
	}
	b := &Board{
		Dimension:  dimension,
		Side:       side,
		TotalCells: total,
		WhiteOcc:   bitboard.New(total),
		BlackOcc:   bitboard.New(total),
		Pawns:      bitboard.New(total),
		Knights:    bitboard.New(total),
		Bishops:    bitboard.New(total),
		Rooks:      bitboard.New(total),
		Queens:     bitboard.New(total),
		Kings:      bitboard.New(total),
		Zobrist:    NewZobristKeys(total),
	}
	return b
}

// NewStandard builds a board with the classical chess setup. For (2, 8)
// this is the full familiar position. For other shapes, the classical
// setup is replicated only in the axis0/axis1 slice where every axis >= 2
// is held at coordinate 0, leaving the rest of the hypercube empty — a
// seed position sufficient to play the generalized game, since a fully
// populated N>=3 starting position is undefined by the rules this system
// generalizes.
func NewStandard(dimension, side int) *Board {
	b := New(dimension, side)
	if dimension == 2 && side == 8 {
		b.setupClassical(nil)
		b.CastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
	} else if side >= 4 {
		higher := make([]int, dimension-2)
		b.setupClassical(higher)
	}
	b.Hash = b.Zobrist.Hash(b, White)
	return b
}

func (b *Board) setupClassical(higherAxes []int) {
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	place := func(rank, file int, owner Player, pt PieceType) {
		coords := make([]int, b.Dimension)
		coords[0] = rank
		coords[1] = file
		for i, v := range higherAxes {
			coords[2+i] = v
		}
		idx := b.CoordsToIndex(NewCoordinate(coords...))
		b.PlacePiece(idx, Piece{Type: pt, Owner: owner})
	}
	lastFile := b.Side - 1
	if lastFile > 7 {
		lastFile = 7
	}
	for file := 0; file <= lastFile && file < len(backRank); file++ {
		place(0, file, White, backRank[file])
		place(1, file, White, Pawn)
		place(b.Side-2, file, Black, Pawn)
		place(b.Side-1, file, Black, backRank[file])
	}
}

// CoordsToIndex converts a coordinate to its linear index, idx = sum(c_i *
// side^i).
func (b *Board) CoordsToIndex(c Coordinate) int {
	idx := 0
	weight := 1
	for i := 0; i < b.Dimension; i++ {
		idx += c.Values[i] * weight
		weight *= b.Side
	}
	return idx
}

// IndexToCoords is the inverse of CoordsToIndex.
func (b *Board) IndexToCoords(idx int) Coordinate {
	values := make([]int, b.Dimension)
	for i := 0; i < b.Dimension; i++ {
		values[i] = idx % b.Side
		idx /= b.Side
	}
	return Coordinate{Values: values}
}

// InBounds reports whether every axis of c lies in [0, Side).
func (b *Board) InBounds(c Coordinate) bool {
	if c.Dim() != b.Dimension {
		return false
	}
	for _, v := range c.Values {
		if v < 0 || v >= b.Side {
			return false
		}
	}
	return true
}

// GetPieceAtIndex returns the piece occupying idx, if any.
func (b *Board) GetPieceAtIndex(idx int) (Piece, bool) {
	var owner Player
	switch {
	case b.WhiteOcc.GetBit(idx):
		owner = White
	case b.BlackOcc.GetBit(idx):
		owner = Black
	default:
		return Piece{}, false
	}
	switch {
	case b.Pawns.GetBit(idx):
		return Piece{Type: Pawn, Owner: owner}, true
	case b.Knights.GetBit(idx):
		return Piece{Type: Knight, Owner: owner}, true
	case b.Bishops.GetBit(idx):
		return Piece{Type: Bishop, Owner: owner}, true
	case b.Rooks.GetBit(idx):
		return Piece{Type: Rook, Owner: owner}, true
	case b.Queens.GetBit(idx):
		return Piece{Type: Queen, Owner: owner}, true
	case b.Kings.GetBit(idx):
		return Piece{Type: King, Owner: owner}, true
	}
	return Piece{}, false
}

// GetPiece is the coordinate-addressed form of GetPieceAtIndex.
func (b *Board) GetPiece(c Coordinate) (Piece, bool) {
	return b.GetPieceAtIndex(b.CoordsToIndex(c))
}

func (b *Board) pieceBoard(t PieceType) *bitboard.Set {
	switch t {
	case Pawn:
		return b.Pawns
	case Knight:
		return b.Knights
	case Bishop:
		return b.Bishops
	case Rook:
		return b.Rooks
	case Queen:
		return b.Queens
	case King:
		return b.Kings
	}
	return nil
}

// PlacePiece puts p at idx, which must currently be empty.
func (b *Board) PlacePiece(idx int, p Piece) {
	if p.Owner == White {
		b.WhiteOcc.SetBit(idx)
	} else {
		b.BlackOcc.SetBit(idx)
	}
	b.pieceBoard(p.Type).SetBit(idx)
}

// RemovePiece clears whatever piece occupies idx, if any.
func (b *Board) RemovePiece(idx int) {
	p, ok := b.GetPieceAtIndex(idx)
	if !ok {
		return
	}
	if p.Owner == White {
		b.WhiteOcc.ClearBit(idx)
	} else {
		b.BlackOcc.ClearBit(idx)
	}
	b.pieceBoard(p.Type).ClearBit(idx)
}

// GetKingCoordinate finds player's king, if present.
func (b *Board) GetKingCoordinate(player Player) (Coordinate, bool) {
	occ := b.WhiteOcc
	if player == Black {
		occ = b.BlackOcc
	}
	kings := b.Kings.Clone()
	kings.And(occ)
	idx, ok := kings.PopLSB()
	if !ok {
		return Coordinate{}, false
	}
	return b.IndexToCoords(idx), true
}

// IsRepetition reports whether the current hash already occurred once in
// History — the in-search single-recurrence draw check (distinct from the
// three-fold rule game.Game applies for terminal results).
func (b *Board) IsRepetition() bool {
	for _, h := range b.History {
		if h == b.Hash {
			return true
		}
	}
	return false
}

// ThreefoldRepetition reports whether the current hash has occurred at
// least twice previously (three occurrences total, including the
// current one).
func (b *Board) ThreefoldRepetition() bool {
	count := 0
	for _, h := range b.History {
		if h == b.Hash {
			count++
		}
	}
	return count >= 2
}

// Clone deep-copies the board, for search nodes and speculative move
// application that must not mutate the caller's board.
func (b *Board) Clone() *Board {
	c := &Board{
		Dimension:      b.Dimension,
		Side:           b.Side,
		TotalCells:     b.TotalCells,
		WhiteOcc:       b.WhiteOcc.Clone(),
		BlackOcc:       b.BlackOcc.Clone(),
		Pawns:          b.Pawns.Clone(),
		Knights:        b.Knights.Clone(),
		Bishops:        b.Bishops.Clone(),
		Rooks:          b.Rooks.Clone(),
		Queens:         b.Queens.Clone(),
		Kings:          b.Kings.Clone(),
		Zobrist:        b.Zobrist,
		Hash:           b.Hash,
		CastlingRights: b.CastlingRights,
	}
	c.History = append([]uint64(nil), b.History...)
	if b.EnPassant != nil {
		ep := *b.EnPassant
		c.EnPassant = &ep
	}
	return c
}

// corners reports, for a board laid out like (2,8), the linear indices of
// the four rook-starting corners used for castling-rights bookkeeping.
// Non-classical shapes never grant castling rights, so this is only ever
// consulted when Side == 8 and Dimension == 2.
func (b *Board) corners() (a1, h1, a8, h8 int) {
	a1 = b.CoordsToIndex(NewCoordinate(0, 0))
	h1 = b.CoordsToIndex(NewCoordinate(0, 7))
	a8 = b.CoordsToIndex(NewCoordinate(7, 0))
	h8 = b.CoordsToIndex(NewCoordinate(7, 7))
	return
}

// ApplyMove performs the full apply procedure described in SPEC_FULL.md
// §4.3 and returns UnmakeInfo sufficient to exactly reverse it.
func (b *Board) ApplyMove(m Move) (UnmakeInfo, error) {
	if !b.InBounds(m.From) || !b.InBounds(m.To) {
		return UnmakeInfo{}, newError(InvalidCoordinate, m.String())
	}
	mover, ok := b.GetPiece(m.From)
	if !ok {
		return UnmakeInfo{}, newError(NoPieceAtOrigin, m.From.String())
	}

	info := UnmakeInfo{
		PriorHash:           b.Hash,
		PriorCastlingRights: b.CastlingRights,
		PriorEnPassant:      b.EnPassant,
	}

	b.History = append(b.History, b.Hash)

	fromIdx := b.CoordsToIndex(m.From)
	toIdx := b.CoordsToIndex(m.To)

	// En-passant capture: a pawn moving onto the recorded target square
	// removes the victim pawn instead of (or in addition to) whatever
	// sits at the destination.
	if mover.Type == Pawn && b.EnPassant != nil && toIdx == b.EnPassant.Target {
		victim, _ := b.GetPieceAtIndex(b.EnPassant.Victim)
		info.Captured = &CapturedPiece{Piece: victim, Index: b.EnPassant.Victim}
		b.RemovePiece(b.EnPassant.Victim)
	} else if captured, ok := b.GetPieceAtIndex(toIdx); ok {
		info.Captured = &CapturedPiece{Piece: captured, Index: toIdx}
	}

	b.EnPassant = nil

	// Two-square pawn advance along axis 0 sets a fresh en-passant right.
	if mover.Type == Pawn && m.From.Values[1] == m.To.Values[1] {
		delta := m.To.Values[0] - m.From.Values[0]
		if delta == 2 || delta == -2 {
			skipped := make([]int, b.Dimension)
			copy(skipped, m.From.Values)
			skipped[0] = m.From.Values[0] + delta/2
			b.EnPassant = &EnPassant{
				Target: b.CoordsToIndex(Coordinate{Values: skipped}),
				Victim: toIdx,
			}
		}
	}

	// Castling-rights bookkeeping: only meaningful on the classical
	// (2,8) shape, where corner squares and king-file are fixed.
	if b.Dimension == 2 && b.Side == 8 {
		a1, h1, a8, h8 := b.corners()
		switch {
		case mover.Type == King && mover.Owner == White:
			b.CastlingRights &^= WhiteKingside | WhiteQueenside
		case mover.Type == King && mover.Owner == Black:
			b.CastlingRights &^= BlackKingside | BlackQueenside
		}
		switch fromIdx {
		case a1:
			b.CastlingRights &^= WhiteQueenside
		case h1:
			b.CastlingRights &^= WhiteKingside
		case a8:
			b.CastlingRights &^= BlackQueenside
		case h8:
			b.CastlingRights &^= BlackKingside
		}
		switch toIdx {
		case a1:
			b.CastlingRights &^= WhiteQueenside
		case h1:
			b.CastlingRights &^= WhiteKingside
		case a8:
			b.CastlingRights &^= BlackQueenside
		case h8:
			b.CastlingRights &^= BlackKingside
		}
	}

	// Castling: king moving two files along axis 1 relocates the rook.
	if mover.Type == King {
		fileDelta := m.To.Values[1] - m.From.Values[1]
		if fileDelta == 2 || fileDelta == -2 {
			rookFrom := make([]int, b.Dimension)
			rookTo := make([]int, b.Dimension)
			copy(rookFrom, m.From.Values)
			copy(rookTo, m.From.Values)
			if fileDelta == 2 {
				rookFrom[1] = m.From.Values[1] + 3
				rookTo[1] = m.To.Values[1] - 1
			} else {
				rookFrom[1] = m.From.Values[1] - 4
				rookTo[1] = m.To.Values[1] + 1
			}
			rookFromIdx := b.CoordsToIndex(Coordinate{Values: rookFrom})
			rookToIdx := b.CoordsToIndex(Coordinate{Values: rookTo})
			rook, _ := b.GetPieceAtIndex(rookFromIdx)
			b.RemovePiece(rookFromIdx)
			b.PlacePiece(rookToIdx, rook)
			info.RookMove = &RookRelocation{From: rookFromIdx, To: rookToIdx}
		}
	}

	b.RemovePiece(fromIdx)
	b.RemovePiece(toIdx)
	placed := mover
	if m.Promotion != None {
		placed = Piece{Type: m.Promotion, Owner: mover.Owner}
	}
	b.PlacePiece(toIdx, placed)

	b.Hash = b.Zobrist.Hash(b, mover.Owner.Opponent())

	return info, nil
}

// UnmakeMove exactly reverses the ApplyMove call that produced info.
func (b *Board) UnmakeMove(m Move, info UnmakeInfo) {
	fromIdx := b.CoordsToIndex(m.From)
	toIdx := b.CoordsToIndex(m.To)

	moved, _ := b.GetPieceAtIndex(toIdx)
	b.RemovePiece(toIdx)

	var original Piece
	if m.Promotion != None {
		original = Piece{Type: Pawn, Owner: moved.Owner}
	} else {
		original = moved
	}
	b.PlacePiece(fromIdx, original)

	if info.RookMove != nil {
		rook, _ := b.GetPieceAtIndex(info.RookMove.To)
		b.RemovePiece(info.RookMove.To)
		b.PlacePiece(info.RookMove.From, rook)
	}

	if info.Captured != nil {
		b.PlacePiece(info.Captured.Index, info.Captured.Piece)
	}

	b.EnPassant = info.PriorEnPassant
	b.CastlingRights = info.PriorCastlingRights
	b.Hash = info.PriorHash

	if n := len(b.History); n > 0 {
		b.History = b.History[:n-1]
	}
}
