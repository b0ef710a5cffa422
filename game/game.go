// Package game implements the game aggregate: a Board plus whose turn it
// is, the running result, and the move history, with the single
// mutating operation play_turn.
package game

import (
	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
)

// Result classifies how a game currently stands.
type Result uint8

const (
	InProgress Result = iota
	CheckmateWhiteWins
	CheckmateBlackWins
	Stalemate
	Draw
)

func (r Result) String() string {
	switch r {
	case CheckmateWhiteWins:
		return "checkmate (white wins)"
	case CheckmateBlackWins:
		return "checkmate (black wins)"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// Turn pairs a player with the move they made.
type Turn struct {
	Player board.Player
	Move   board.Move
}

// Game is the aggregate root controlling a single match's lifecycle.
type Game struct {
	Board   *board.Board
	Turn    board.Player
	Status  Result
	History []Turn
}

// New starts a fresh game on b, White to move.
func New(b *board.Board) *Game {
	return &Game{Board: b, Turn: board.White, Status: InProgress}
}

// PlayTurn applies m as the current player's move, rejecting it if the
// game has already ended, then re-evaluates the terminal status and
// advances the turn when the game is still in progress.
func (g *Game) PlayTurn(m board.Move) (Result, error) {
	if g.Status != InProgress {
		return g.Status, &board.Error{Kind: board.GameOver, Detail: g.Status.String()}
	}

	legal := rules.GenerateLegalMoves(g.Board, g.Turn)
	if !containsMove(legal, m) {
		return g.Status, &board.Error{Kind: board.IllegalMove, Detail: m.String()}
	}

	if _, err := g.Board.ApplyMove(m); err != nil {
		return g.Status, err
	}

	g.History = append(g.History, Turn{Player: g.Turn, Move: m})
	g.Status = g.checkStatus(g.Turn)

	if g.Status == InProgress {
		g.Turn = g.Turn.Opponent()
	}
	return g.Status, nil
}

func containsMove(moves []board.Move, m board.Move) bool {
	for _, candidate := range moves {
		if candidate.From.Equal(m.From) && candidate.To.Equal(m.To) && candidate.Promotion == m.Promotion {
			return true
		}
	}
	return false
}

// checkStatus evaluates the position from the perspective of the player
// who just moved: the opponent is now to move.
func (g *Game) checkStatus(justMoved board.Player) Result {
	toMove := justMoved.Opponent()

	if g.Board.ThreefoldRepetition() {
		return Draw
	}

	legal := rules.GenerateLegalMoves(g.Board, toMove)
	if len(legal) > 0 {
		return InProgress
	}

	kingCoord, ok := g.Board.GetKingCoordinate(toMove)
	if ok && rules.IsSquareAttacked(g.Board, kingCoord, toMove.Opponent()) {
		if toMove == board.White {
			return CheckmateBlackWins
		}
		return CheckmateWhiteWins
	}
	return Stalemate
}
