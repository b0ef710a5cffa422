package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/tt"
)

func TestBestMoveFindsMateInOne(t *testing.T) {
	b := board.New(2, 8)
	// Black king boxed on the back rank, white rook delivers mate along
	// the rank while a second rook seals the escape rank.
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(7, 0)), board.Piece{Type: board.King, Owner: board.Black})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 0)), board.Piece{Type: board.King, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(6, 7)), board.Piece{Type: board.Rook, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(5, 5)), board.Piece{Type: board.Rook, Owner: board.White})

	engine := NewEngine(tt.New(1<<20), nil)
	tc := NewTimeControl(2*time.Second, 3)
	move, ok := engine.BestMove(b, board.White, tc, 0)
	assert.True(t, ok)
	assert.Equal(t, board.NewCoordinate(5, 5), move.From)
	assert.Equal(t, board.NewCoordinate(7, 5), move.To)
}

// depthRecorder remembers the deepest completed iteration reported.
type depthRecorder struct {
	NulLogger
	deepest int32
}

func (r *depthRecorder) PrintPV(stats Stats, score int32, pv []board.Move) {
	if stats.Depth > r.deepest {
		r.deepest = stats.Depth
	}
}

func TestBestMoveRespectsDepthOverride(t *testing.T) {
	b := board.NewStandard(2, 8)
	rec := &depthRecorder{}
	engine := NewEngine(tt.New(1<<20), rec)
	tc := NewTimeControl(5*time.Second, 0)
	move, ok := engine.BestMove(b, board.White, tc, 2)
	assert.True(t, ok)
	assert.NotEqual(t, board.Move{}, move)
	assert.Equal(t, int32(2), rec.deepest)
}

func TestQuiescenceSettlesOnCapture(t *testing.T) {
	b := board.New(2, 8)
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(3, 3)), board.Piece{Type: board.Rook, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(3, 6)), board.Piece{Type: board.Rook, Owner: board.Black})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(0, 0)), board.Piece{Type: board.King, Owner: board.White})
	b.PlacePiece(b.CoordsToIndex(board.NewCoordinate(7, 7)), board.Piece{Type: board.King, Owner: board.Black})

	engine := NewEngine(tt.New(1<<16), nil)
	score := engine.quiescence(b, board.White, 0, -CheckmateScore, CheckmateScore)
	assert.True(t, score > 0)
}
