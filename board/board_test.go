package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUnmakeRoundTrip(t *testing.T) {
	b := NewStandard(2, 8)
	before := b.Hash

	m := Move{From: NewCoordinate(1, 4), To: NewCoordinate(3, 4)}
	info, err := b.ApplyMove(m)
	require.NoError(t, err)
	assert.NotEqual(t, before, b.Hash)

	b.UnmakeMove(m, info)
	assert.Equal(t, before, b.Hash)
	p, ok := b.GetPiece(NewCoordinate(1, 4))
	assert.True(t, ok)
	assert.Equal(t, Pawn, p.Type)
}

func TestApplyMoveSetsEnPassantOnDoublePush(t *testing.T) {
	b := NewStandard(2, 8)
	m := Move{From: NewCoordinate(1, 4), To: NewCoordinate(3, 4)}
	_, err := b.ApplyMove(m)
	require.NoError(t, err)

	require.NotNil(t, b.EnPassant)
	assert.Equal(t, b.CoordsToIndex(NewCoordinate(2, 4)), b.EnPassant.Target)
	assert.Equal(t, b.CoordsToIndex(NewCoordinate(3, 4)), b.EnPassant.Victim)
}

func TestApplyMoveCastlingRelocatesRook(t *testing.T) {
	b := New(2, 8)
	b.PlacePiece(b.CoordsToIndex(NewCoordinate(0, 4)), Piece{Type: King, Owner: White})
	b.PlacePiece(b.CoordsToIndex(NewCoordinate(0, 7)), Piece{Type: Rook, Owner: White})
	b.Hash = b.Zobrist.Hash(b, White)

	m := Move{From: NewCoordinate(0, 4), To: NewCoordinate(0, 6)}
	info, err := b.ApplyMove(m)
	require.NoError(t, err)
	require.NotNil(t, info.RookMove)

	rook, ok := b.GetPiece(NewCoordinate(0, 5))
	assert.True(t, ok)
	assert.Equal(t, Rook, rook.Type)

	b.UnmakeMove(m, info)
	rookBack, ok := b.GetPiece(NewCoordinate(0, 7))
	assert.True(t, ok)
	assert.Equal(t, Rook, rookBack.Type)
}

func TestApplyMoveRejectsMissingPiece(t *testing.T) {
	b := NewStandard(2, 8)
	m := Move{From: NewCoordinate(3, 3), To: NewCoordinate(4, 3)}
	_, err := b.ApplyMove(m)
	assert.Error(t, err)
	var boardErr *Error
	assert.ErrorAs(t, err, &boardErr)
	assert.Equal(t, NoPieceAtOrigin, boardErr.Kind)
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewStandard(2, 8)
	c := b.Clone()

	_, err := c.ApplyMove(Move{From: NewCoordinate(1, 4), To: NewCoordinate(3, 4)})
	require.NoError(t, err)

	_, stillThere := b.GetPiece(NewCoordinate(1, 4))
	assert.True(t, stillThere)
}

func TestThreefoldRepetitionRequiresThreeOccurrences(t *testing.T) {
	b := New(2, 8)
	b.PlacePiece(b.CoordsToIndex(NewCoordinate(0, 0)), Piece{Type: King, Owner: White})
	b.PlacePiece(b.CoordsToIndex(NewCoordinate(7, 7)), Piece{Type: King, Owner: Black})
	b.Hash = b.Zobrist.Hash(b, White)

	assert.False(t, b.ThreefoldRepetition())

	initial := b.Hash
	shuttle := func(from, to Coordinate) {
		m := Move{From: from, To: to}
		_, err := b.ApplyMove(m)
		require.NoError(t, err)
	}
	shuttle(NewCoordinate(0, 0), NewCoordinate(0, 1))
	shuttle(NewCoordinate(7, 7), NewCoordinate(7, 6))
	shuttle(NewCoordinate(0, 1), NewCoordinate(0, 0))
	shuttle(NewCoordinate(7, 6), NewCoordinate(7, 7))
	assert.Equal(t, initial, b.Hash)

	shuttle(NewCoordinate(0, 0), NewCoordinate(0, 1))
	shuttle(NewCoordinate(7, 7), NewCoordinate(7, 6))
	shuttle(NewCoordinate(0, 1), NewCoordinate(0, 0))
	shuttle(NewCoordinate(7, 6), NewCoordinate(7, 7))

	assert.True(t, b.ThreefoldRepetition())
}
