package api

import (
	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/game"
)

// MoveConsequence classifies what landing on a valid-move destination
// does to the position, for client UIs that want to highlight captures
// and game-ending moves without resimulating them.
type MoveConsequence string

const (
	ConsequenceNoEffect MoveConsequence = "NoEffect"
	ConsequenceCapture  MoveConsequence = "Capture"
	ConsequenceVictory  MoveConsequence = "Victory"
)

// Piece is one occupied cell, serialized with its board coordinate.
type Piece struct {
	PieceType  string `json:"piece_type"`
	Owner      string `json:"owner"`
	Coordinate []int  `json:"coordinate"`
}

// ValidMove is one reachable destination from some origin cell.
type ValidMove struct {
	To          []int           `json:"to"`
	Consequence MoveConsequence `json:"consequence"`
}

// GameState is the full client-facing snapshot of one game.
type GameState struct {
	Pieces        []Piece                `json:"pieces"`
	CurrentPlayer string                 `json:"current_player"`
	ValidMoves    map[string][]ValidMove `json:"valid_moves"`
	Status        string                 `json:"status"`
	Dimension     int                    `json:"dimension"`
	Side          int                    `json:"side"`
	InCheck       bool                   `json:"in_check"`
	Sequence      int                    `json:"sequence"`
}

// NewGameRequest is the /new_game request body. Mode selects who controls
// each side: "hh" human/human, "hc" human/computer, "ch" computer/human,
// "cc" computer/computer.
type NewGameRequest struct {
	Mode      string `json:"mode"`
	Dimension *int   `json:"dimension,omitempty"`
	Side      *int   `json:"side,omitempty"`
}

// NewGameResponse reports the id a client uses for every later request
// against the game it just created.
type NewGameResponse struct {
	UUID string `json:"uuid"`
}

// TurnRequest is the /take_turn request body.
type TurnRequest struct {
	UUID  string `json:"uuid"`
	Start []int  `json:"start"`
	End   []int  `json:"end"`
}

func coordToInts(c board.Coordinate) []int {
	out := make([]int, len(c.Values))
	copy(out, c.Values)
	return out
}

func intsToCoord(values []int) board.Coordinate {
	return board.NewCoordinate(values...)
}

func playerString(p board.Player) string {
	return p.String()
}

func statusString(r game.Result) string {
	return r.String()
}
