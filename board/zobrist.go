package board

import "math/rand"

// pieceOffset maps (owner, type) to the piece-square key block used by
// ZobristKeys: White pawn..king occupy offsets 0-5, Black 6-11.
func pieceOffset(p Piece) int {
	base := 0
	if p.Owner == Black {
		base = 6
	}
	return base + int(p.Type) - 1
}

// ZobristKeys holds the fixed-size random tables used to fingerprint a
// position: per-piece-square keys, en-passant-square keys, castling-rights
// keys, and a single side-to-move key. Generated once when board.New
// creates a board and shared by immutable reference with every Clone of
// it; separately created boards get separate key sets.
type ZobristKeys struct {
	PieceKeys    []uint64 // 12 * totalCells
	BlackToMove  uint64
	EnPassantKeys []uint64 // totalCells
	CastlingKeys []uint64 // 16
}

// NewZobristKeys builds a fresh random key set sized for totalCells.
func NewZobristKeys(totalCells int) *ZobristKeys {
	rng := rand.New(rand.NewSource(rand.Int63()))
	z := &ZobristKeys{
		PieceKeys:     make([]uint64, 12*totalCells),
		EnPassantKeys: make([]uint64, totalCells),
		CastlingKeys:  make([]uint64, 16),
	}
	for i := range z.PieceKeys {
		z.PieceKeys[i] = rng.Uint64()
	}
	for i := range z.EnPassantKeys {
		z.EnPassantKeys[i] = rng.Uint64()
	}
	for i := range z.CastlingKeys {
		z.CastlingKeys[i] = rng.Uint64()
	}
	z.BlackToMove = rng.Uint64()
	return z
}

// Hash computes the Zobrist hash of b assuming currentPlayer is to move
// next. Depends only on piece placement, castling rights, en-passant
// square, and side to move.
func (z *ZobristKeys) Hash(b *Board, currentPlayer Player) uint64 {
	var hash uint64
	if currentPlayer == Black {
		hash ^= z.BlackToMove
	}
	if b.EnPassant != nil && b.EnPassant.Target < len(z.EnPassantKeys) {
		hash ^= z.EnPassantKeys[b.EnPassant.Target]
	}
	if int(b.CastlingRights) < len(z.CastlingKeys) {
		hash ^= z.CastlingKeys[b.CastlingRights]
	}
	for i := 0; i < b.TotalCells; i++ {
		p, ok := b.GetPieceAtIndex(i)
		if !ok {
			continue
		}
		hash ^= z.PieceKeys[pieceOffset(p)*b.TotalCells+i]
	}
	return hash
}
