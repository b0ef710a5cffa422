// Package eval implements the tapered midgame/endgame position evaluator:
// material, center-distance piece-square terms, and mobility, blended by
// game phase.
package eval

import (
	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
)

// Score is a centipawn evaluation from White's perspective.
type Score int32

// StartPhase is the blend denominator, matching classical material.
const StartPhase = 24

// coefficients holds a piece type's midgame/endgame pair for one term.
type coefficients struct {
	mg, eg int32
}

var materialValue = map[board.PieceType]coefficients{
	board.Pawn:   {100, 150},
	board.Knight: {320, 300},
	board.Bishop: {330, 330},
	board.Rook:   {500, 500},
	board.Queen:  {900, 900},
	board.King:   {0, 0},
}

var phaseWeight = map[board.PieceType]int32{
	board.Pawn:   0,
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
	board.King:   0,
}

var distancePenalty = map[board.PieceType]coefficients{
	board.Pawn:   {2, 5},
	board.Knight: {4, 4},
	board.Bishop: {1, 1},
	board.Rook:   {0, 0},
	board.Queen:  {1, 2},
	board.King:   {-5, 10},
}

var mobilityCoefficient = map[board.PieceType]coefficients{
	board.Knight: {4, 4},
	board.Bishop: {5, 5},
	board.Rook:   {2, 4},
	board.Queen:  {1, 2},
}

// Evaluate returns the tapered position score, positive favoring White.
func Evaluate(b *board.Board) Score {
	var mg, eg, phase int32
	center := float64(b.Side-1) / 2

	accumulate := func(idx int, p board.Piece) {
		sign := int32(1)
		if p.Owner == board.Black {
			sign = -1
		}

		mat := materialValue[p.Type]
		mg += sign * mat.mg
		eg += sign * mat.eg
		phase += phaseWeight[p.Type]

		dist := 0.0
		for _, v := range b.IndexToCoords(idx).Values {
			d := float64(v) - center
			if d < 0 {
				d = -d
			}
			dist += d
		}
		dp := distancePenalty[p.Type]
		mg -= sign * int32(dist*float64(dp.mg))
		eg -= sign * int32(dist*float64(dp.eg))

		if mc, ok := mobilityCoefficient[p.Type]; ok {
			mob := int32(rules.CountPieceMobility(b, idx, p.Type))
			mg += sign * mob * mc.mg
			eg += sign * mob * mc.eg
		}
	}

	for idx := 0; idx < b.TotalCells; idx++ {
		if p, ok := b.GetPieceAtIndex(idx); ok {
			accumulate(idx, p)
		}
	}

	if phase > StartPhase {
		phase = StartPhase
	}
	return Score((mg*phase + eg*(StartPhase-phase)) / StartPhase)
}

// ForSideToMove returns Evaluate from the perspective of player: positive
// always means "good for player", matching negamax's sign convention.
func ForSideToMove(b *board.Board, player board.Player) Score {
	s := Evaluate(b)
	if player == board.Black {
		return -s
	}
	return s
}
