package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
)

func TestStandardOpeningMoveCount(t *testing.T) {
	b := board.NewStandard(2, 8)
	moves := GenerateLegalMoves(b, board.White)
	// 8 pawns * 2 pushes + 2 knights * 2 destinations = 20.
	assert.Len(t, moves, 20)
}

func TestKnightMobilityFromCorner(t *testing.T) {
	b := board.New(2, 8)
	idx := b.CoordsToIndex(board.NewCoordinate(0, 0))
	b.PlacePiece(idx, board.Piece{Type: board.Knight, Owner: board.White})
	assert.Equal(t, 2, CountPieceMobility(b, idx, board.Knight))
}

func TestEnPassantCaptureGenerated(t *testing.T) {
	b := board.New(2, 8)
	whitePawnIdx := b.CoordsToIndex(board.NewCoordinate(4, 4))
	b.PlacePiece(whitePawnIdx, board.Piece{Type: board.Pawn, Owner: board.White})
	blackPawnFrom := board.NewCoordinate(6, 5)
	b.PlacePiece(b.CoordsToIndex(blackPawnFrom), board.Piece{Type: board.Pawn, Owner: board.Black})

	blackTwoSquare := board.Move{From: blackPawnFrom, To: board.NewCoordinate(4, 5)}
	_, err := b.ApplyMove(blackTwoSquare)
	assert.NoError(t, err)
	assert.NotNil(t, b.EnPassant)

	moves := GenerateLegalMoves(b, board.White)
	found := false
	for _, m := range moves {
		if m.From.Equal(board.NewCoordinate(4, 4)) && m.To.Equal(board.NewCoordinate(5, 5)) {
			found = true
		}
	}
	assert.True(t, found, "expected en passant capture (4,4)->(5,5) among legal moves")
}

func TestPromotionGeneratesFourChoices(t *testing.T) {
	b := board.New(2, 8)
	idx := b.CoordsToIndex(board.NewCoordinate(6, 0))
	b.PlacePiece(idx, board.Piece{Type: board.Pawn, Owner: board.White})
	moves := GenerateLegalMoves(b, board.White)
	promos := map[board.PieceType]bool{}
	for _, m := range moves {
		if m.Promotion != board.None {
			promos[m.Promotion] = true
		}
	}
	assert.Len(t, promos, 4)
}

func TestCastlingAvailableWhenClear(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 4)), board.Piece{Type: board.King, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 7)), board.Piece{Type: board.Rook, Owner: board.White})
	b.CastlingRights = board.WhiteKingside

	moves := GenerateCastlingMoves(b, board.White)
	assert.Len(t, moves, 1)
	assert.Equal(t, board.NewCoordinate(0, 6), moves[0].To)
}

func TestCastlingBlockedWhenKingInCheck(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 4)), board.Piece{Type: board.King, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 7)), board.Piece{Type: board.Rook, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(7, 4)), board.Piece{Type: board.Rook, Owner: board.Black})
	b.CastlingRights = board.WhiteKingside

	moves := GenerateCastlingMoves(b, board.White)
	assert.Empty(t, moves)
}

func TestIsSquareAttackedBySlider(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 0)), board.Piece{Type: board.Rook, Owner: board.White})
	assert.True(t, IsSquareAttacked(b, board.NewCoordinate(0, 5), board.White))
	assert.False(t, IsSquareAttacked(b, board.NewCoordinate(5, 5), board.White))
}

func TestLegalMovesExcludeSelfCheck(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 4)), board.Piece{Type: board.King, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(1, 4)), board.Piece{Type: board.Rook, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(7, 4)), board.Piece{Type: board.Rook, Owner: board.Black})

	moves := GenerateLegalMoves(b, board.White)
	for _, m := range moves {
		if m.From.Equal(board.NewCoordinate(1, 4)) {
			assert.Equal(t, 4, m.To.Values[1], "a pinned rook may only move along the pin line")
		}
	}
}

func TestLoudMovesAreCapturesOrPromotions(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(3, 3)), board.Piece{Type: board.Rook, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(3, 6)), board.Piece{Type: board.Rook, Owner: board.Black})

	loud := GenerateLoudMoves(b, board.White)
	assert.NotEmpty(t, loud)
	for _, m := range loud {
		assert.True(t, IsLoud(b, m))
	}
}
