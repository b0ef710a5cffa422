package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
)

func TestPlayTurnAdvancesAndRecords(t *testing.T) {
	b := board.NewStandard(2, 8)
	g := New(b)

	m := board.Move{From: board.NewCoordinate(1, 4), To: board.NewCoordinate(3, 4)}
	status, err := g.PlayTurn(m)
	assert.NoError(t, err)
	assert.Equal(t, InProgress, status)
	assert.Equal(t, board.Black, g.Turn)
	assert.Len(t, g.History, 1)
}

func TestPlayTurnRejectsIllegalMove(t *testing.T) {
	b := board.NewStandard(2, 8)
	g := New(b)

	m := board.Move{From: board.NewCoordinate(1, 4), To: board.NewCoordinate(5, 4)}
	_, err := g.PlayTurn(m)
	assert.Error(t, err)
	assert.Equal(t, board.White, g.Turn)
}

func TestPlayTurnRejectsAfterGameOver(t *testing.T) {
	b := board.NewStandard(2, 8)
	g := New(b)
	g.Status = CheckmateWhiteWins

	m := board.Move{From: board.NewCoordinate(1, 4), To: board.NewCoordinate(3, 4)}
	_, err := g.PlayTurn(m)
	assert.Error(t, err)
	var gameErr *board.Error
	assert.ErrorAs(t, err, &gameErr)
	assert.Equal(t, board.GameOver, gameErr.Kind)
}

func TestCheckmateEndsGame(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(7, 0)), board.Piece{Type: board.King, Owner: board.Black})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 0)), board.Piece{Type: board.King, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(6, 7)), board.Piece{Type: board.Rook, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(5, 5)), board.Piece{Type: board.Rook, Owner: board.White})
	g := New(b)
	g.Turn = board.White

	m := board.Move{From: board.NewCoordinate(5, 5), To: board.NewCoordinate(7, 5)}
	status, err := g.PlayTurn(m)
	assert.NoError(t, err)
	assert.Equal(t, CheckmateWhiteWins, status)
}
