// Package strategy defines the single-method Strategy interface move
// choosers implement, and provides the human pass-through, alpha-beta,
// MCTS, and hybrid engines.
package strategy

import (
	"time"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/mcts"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
	"github.com/MichaelMcCulloch/hyperchess-sub000/search"
	"github.com/MichaelMcCulloch/hyperchess-sub000/tt"
)

// Strategy is implemented by every move-choosing engine: human relay,
// alpha-beta, MCTS, and their hybrid composition.
type Strategy interface {
	ChooseMove(b *board.Board, player board.Player) (board.Move, bool)
}

// Human never chooses on its own; the HTTP layer supplies the player's
// move directly. ChooseMove always reports no move, so Human exists only
// to satisfy the Strategy interface for a human-controlled seat.
type Human struct{}

func (Human) ChooseMove(b *board.Board, player board.Player) (board.Move, bool) {
	return board.Move{}, false
}

// AlphaBeta runs iterative-deepening negamax to a wall-clock budget.
type AlphaBeta struct {
	Engine *search.Engine
	Budget time.Duration
	MaxPly int32
}

// NewAlphaBeta builds an AlphaBeta strategy sharing table across calls.
func NewAlphaBeta(table *tt.Table, budget time.Duration, maxPly int32) *AlphaBeta {
	return &AlphaBeta{Engine: search.NewEngine(table, nil), Budget: budget, MaxPly: maxPly}
}

func (a *AlphaBeta) ChooseMove(b *board.Board, player board.Player) (board.Move, bool) {
	tc := search.NewTimeControl(a.Budget, a.MaxPly)
	return a.Engine.BestMove(b, player, tc, 0)
}

// MCTSStrategy picks the root move with the most visits after running a
// fixed iteration budget across worker goroutines.
type MCTSStrategy struct {
	Table      *tt.Table
	Iterations int
	Workers    int
}

// NewMCTSStrategy builds an MCTSStrategy sharing table across calls.
func NewMCTSStrategy(table *tt.Table, iterations, workers int) *MCTSStrategy {
	return &MCTSStrategy{Table: table, Iterations: iterations, Workers: workers}
}

func (m *MCTSStrategy) ChooseMove(b *board.Board, player board.Player) (board.Move, bool) {
	legal := rules.GenerateLegalMoves(b, player)
	if len(legal) == 0 {
		return board.Move{}, false
	}
	if len(legal) == 1 {
		return legal[0], true
	}

	tree := mcts.New(b, player, m.Table)
	tree.Run(m.Iterations, m.Workers)
	return tree.BestRootMove()
}

// Hybrid runs alpha-beta with its search depth fixed at 2 and its leaf
// evaluator replaced by a short MCTS run, per the documented composition
// of alpha-beta and MCTS.
type Hybrid struct {
	Engine         *search.Engine
	Budget         time.Duration
	MCTSIterations int
	MCTSWorkers    int
	Table          *tt.Table
}

const hybridDepth int32 = 2

// NewHybrid builds a Hybrid strategy sharing table across calls.
func NewHybrid(table *tt.Table, budget time.Duration, mctsIterations, mctsWorkers int) *Hybrid {
	h := &Hybrid{Budget: budget, MCTSIterations: mctsIterations, MCTSWorkers: mctsWorkers, Table: table}
	h.Engine = search.NewEngine(table, nil)
	h.Engine.LeafEval = h.mctsLeafEval
	return h
}

// mctsLeafEval runs a short MCTS pass for b and affine-maps its win rate
// ([0, 1], from mover's perspective) to a score symmetric around zero.
func (h *Hybrid) mctsLeafEval(b *board.Board, mover board.Player) int32 {
	tree := mcts.New(b, mover, h.Table)
	winRate := tree.Run(h.MCTSIterations, h.MCTSWorkers)
	const scoreRange = 1000.0
	return int32((winRate*2 - 1) * scoreRange)
}

func (h *Hybrid) ChooseMove(b *board.Board, player board.Player) (board.Move, bool) {
	tc := search.NewTimeControl(h.Budget, hybridDepth)
	return h.Engine.BestMove(b, player, tc, hybridDepth)
}
