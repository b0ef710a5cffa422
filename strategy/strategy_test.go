package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/tt"
)

func TestHumanNeverChooses(t *testing.T) {
	b := board.NewStandard(2, 8)
	var s Strategy = Human{}
	_, ok := s.ChooseMove(b, board.White)
	assert.False(t, ok)
}

func TestAlphaBetaChoosesLegalMove(t *testing.T) {
	b := board.NewStandard(2, 8)
	table := tt.New(1 << 20)
	s := NewAlphaBeta(table, 200*time.Millisecond, 3)

	m, ok := s.ChooseMove(b, board.White)
	assert.True(t, ok)
	piece, found := b.GetPiece(m.From)
	assert.True(t, found)
	assert.Equal(t, board.White, piece.Owner)
}

func TestMCTSStrategyChoosesLegalMove(t *testing.T) {
	b := board.NewStandard(2, 8)
	table := tt.New(1 << 20)
	s := NewMCTSStrategy(table, 64, 2)

	m, ok := s.ChooseMove(b, board.White)
	assert.True(t, ok)
	piece, found := b.GetPiece(m.From)
	assert.True(t, found)
	assert.Equal(t, board.White, piece.Owner)
}

func TestHybridChoosesLegalMove(t *testing.T) {
	b := board.NewStandard(2, 8)
	table := tt.New(1 << 20)
	s := NewHybrid(table, 500*time.Millisecond, 16, 2)

	m, ok := s.ChooseMove(b, board.White)
	assert.True(t, ok)
	piece, found := b.GetPiece(m.From)
	assert.True(t, found)
	assert.Equal(t, board.White, piece.Owner)
}
