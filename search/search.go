// Package search implements iterative-deepening negamax alpha-beta with
// transposition-table-assisted cutoffs, MVV-LVA move ordering, and a
// quiescence search over loud moves pruned by static exchange evaluation.
package search

import (
	"math/rand"
	"sync"
	"time"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/eval"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
	"github.com/MichaelMcCulloch/hyperchess-sub000/see"
	"github.com/MichaelMcCulloch/hyperchess-sub000/tt"
)

// CheckmateScore anchors ply-based mate scoring: a forced mate in N plies
// scores CheckmateScore - N, always distinguishable from material eval.
const CheckmateScore int32 = 30000

// nodesPerStopCheck is how often the search polls the wall-clock budget.
const nodesPerStopCheck = 2048

// Options configures one search call.
type Options struct {
	AnalyseMode bool
}

// Stats accumulates counters for one iterative-deepening iteration.
type Stats struct {
	Nodes     uint64
	CacheHit  uint64
	CacheMiss uint64
	Depth     int32
}

// Logger reports search progress; NulLogger implements it as a no-op for
// callers that don't want output.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []board.Move)
}

// NulLogger discards every event.
type NulLogger struct{}

func (NulLogger) BeginSearch()                                   {}
func (NulLogger) EndSearch()                                     {}
func (NulLogger) PrintPV(stats Stats, score int32, pv []board.Move) {}

// atomicFlag is a mutex-guarded bool that only ever transitions false to
// true, matching the teacher's coarse-but-simple stop-signaling idiom.
type atomicFlag struct {
	mu   sync.Mutex
	flag bool
}

func (f *atomicFlag) set() {
	f.mu.Lock()
	f.flag = true
	f.mu.Unlock()
}

func (f *atomicFlag) get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flag
}

// TimeControl bounds one search call by wall clock.
type TimeControl struct {
	Budget  time.Duration
	MaxPly  int32
	stopped atomicFlag
	start   time.Time
}

// NewTimeControl builds a TimeControl with the given wall-clock budget and
// depth ceiling (0 means no explicit ceiling: iterative deepening then
// stops at depth 64 or when the clock runs out).
func NewTimeControl(budget time.Duration, maxPly int32) *TimeControl {
	return &TimeControl{Budget: budget, MaxPly: maxPly}
}

func (tc *TimeControl) expired() bool {
	if tc.Budget <= 0 {
		return false
	}
	return time.Since(tc.start) > tc.Budget
}

// Engine runs negamax alpha-beta search against one board shape's shared
// transposition table.
type Engine struct {
	Table   *tt.Table
	Logger  Logger
	Options Options

	// LeafEval, when set, replaces the static evaluator at quiescence
	// stand-pat time — the hook a Hybrid strategy uses to substitute a
	// short MCTS run for the leaf position.
	LeafEval func(b *board.Board, mover board.Player) int32

	nodes uint64
	tc    *TimeControl
	rng   *rand.Rand
}

// NewEngine builds an Engine over table, logging via logger (NulLogger if
// nil).
func NewEngine(table *tt.Table, logger Logger) *Engine {
	if logger == nil {
		logger = NulLogger{}
	}
	return &Engine{Table: table, Logger: logger, rng: rand.New(rand.NewSource(1))}
}

// BestMove drives iterative deepening from depth 1 up to tc.MaxPly (or
// until the clock runs out), reusing the transposition table between
// iterations, and returns the best move found at the deepest completed
// depth. maxDepthOverride, when nonzero, caps the deepest negamax call —
// the hybrid alpha-beta/MCTS strategy uses this to fix depth at 2.
func (e *Engine) BestMove(b *board.Board, player board.Player, tc *TimeControl, maxDepthOverride int32) (board.Move, bool) {
	e.tc = tc
	tc.start = time.Now()
	e.Logger.BeginSearch()
	defer e.Logger.EndSearch()

	legal := rules.GenerateLegalMoves(b, player)
	if len(legal) == 0 {
		return board.Move{}, false
	}

	var best board.Move
	haveBest := false
	maxDepth := tc.MaxPly
	if maxDepthOverride > 0 && (maxDepth == 0 || maxDepthOverride < maxDepth) {
		maxDepth = maxDepthOverride
	}
	if maxDepth <= 0 {
		maxDepth = 64
	}

	for depth := int32(1); depth <= maxDepth; depth++ {
		e.nodes = 0
		stats := Stats{Depth: depth}
		move, score, ok := e.searchRoot(b, player, depth, legal)
		if !ok {
			break
		}
		best = move
		haveBest = true
		stats.Nodes = e.nodes
		e.Logger.PrintPV(stats, score, []board.Move{move})
		if tc.stopped.get() || tc.expired() {
			break
		}
	}
	return best, haveBest
}

func (e *Engine) searchRoot(b *board.Board, player board.Player, depth int32, legal []board.Move) (board.Move, int32, bool) {
	alpha := -CheckmateScore - 1
	beta := CheckmateScore + 1
	var bestScore int32 = alpha - 1
	var bestMoves []board.Move

	ordered := orderMoves(b, legal, e.Table)
	for _, m := range ordered {
		info, err := b.ApplyMove(m)
		if err != nil {
			continue
		}
		score := -e.negamax(b, player.Opponent(), depth-1, 1, -beta, -alpha)
		b.UnmakeMove(m, info)

		if e.tc.stopped.get() {
			return board.Move{}, 0, false
		}

		if score > bestScore {
			bestScore = score
			bestMoves = []board.Move{m}
		} else if score == bestScore {
			bestMoves = append(bestMoves, m)
		}
		if score > alpha {
			alpha = score
		}
	}
	if len(bestMoves) == 0 {
		return board.Move{}, 0, false
	}
	return bestMoves[e.rng.Intn(len(bestMoves))], bestScore, true
}

func (e *Engine) negamax(b *board.Board, mover board.Player, depth, ply int32, alpha, beta int32) int32 {
	e.nodes++
	if e.nodes%nodesPerStopCheck == 0 && e.tc.expired() {
		e.tc.stopped.set()
	}
	if e.tc.stopped.get() {
		return 0
	}
	if b.IsRepetition() {
		return 0
	}

	hash := b.Hash
	if entry, ok := e.Table.Probe(hash); ok && int32(entry.Depth) >= depth {
		switch entry.Flag {
		case tt.Exact:
			return int32(entry.Score)
		case tt.LowerBound:
			if int32(entry.Score) > alpha {
				alpha = int32(entry.Score)
			}
		case tt.UpperBound:
			if int32(entry.Score) < beta {
				beta = int32(entry.Score)
			}
		}
		if alpha >= beta {
			return int32(entry.Score)
		}
	}

	if depth == 0 {
		return e.quiescence(b, mover, ply, alpha, beta)
	}

	legal := rules.GenerateLegalMoves(b, mover)
	if len(legal) == 0 {
		kingCoord, hasKing := b.GetKingCoordinate(mover)
		if hasKing && rules.IsSquareAttacked(b, kingCoord, mover.Opponent()) {
			return -CheckmateScore + ply
		}
		return 0
	}

	ordered := orderMoves(b, legal, e.Table)
	originalAlpha := alpha
	var best int32 = -CheckmateScore - 1
	for _, m := range ordered {
		info, err := b.ApplyMove(m)
		if err != nil {
			continue
		}
		score := -e.negamax(b, mover.Opponent(), depth-1, ply+1, -beta, -alpha)
		b.UnmakeMove(m, info)

		if e.tc.stopped.get() {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	flag := tt.Exact
	if best <= originalAlpha {
		flag = tt.UpperBound
	} else if best >= beta {
		flag = tt.LowerBound
	}
	clamped := best
	if clamped > 32767 {
		clamped = 32767
	} else if clamped < -32768 {
		clamped = -32768
	}
	e.Table.Store(hash, int16(clamped), int8(depth), flag)

	return best
}

func (e *Engine) quiescence(b *board.Board, mover board.Player, ply int32, alpha, beta int32) int32 {
	e.nodes++
	standPat := e.leafValue(b, mover)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	loud := rules.GenerateLoudMoves(b, mover)
	ordered := orderMoves(b, loud, e.Table)
	for _, m := range ordered {
		if see.Evaluate(b, m) < 0 {
			continue
		}
		info, err := b.ApplyMove(m)
		if err != nil {
			continue
		}
		score := -e.quiescence(b, mover.Opponent(), ply+1, -beta, -alpha)
		b.UnmakeMove(m, info)

		if score >= beta {
			e.Table.Store(b.Hash, clampScore(score), 0, tt.LowerBound)
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (e *Engine) leafValue(b *board.Board, mover board.Player) int32 {
	if e.LeafEval != nil {
		return e.LeafEval(b, mover)
	}
	return int32(eval.ForSideToMove(b, mover))
}

func clampScore(score int32) int16 {
	if score > 32767 {
		return 32767
	}
	if score < -32768 {
		return -32768
	}
	return int16(score)
}

// mvvlvaValue approximates victim value for move ordering.
var mvvlvaValue = map[board.PieceType]int32{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

// orderMoves sorts moves by MVV-LVA victim value plus a promotion bonus.
// The transposition table's fixed-width entry (tt.Entry) has no room for
// a move field, so unlike a TT move hint this ordering never consults
// the table directly.
func orderMoves(b *board.Board, moves []board.Move, _ *tt.Table) []board.Move {
	ordered := append([]board.Move(nil), moves...)
	scoreOf := func(m board.Move) int32 {
		s := int32(0)
		if p, ok := b.GetPiece(m.To); ok {
			s += mvvlvaValue[p.Type]
		}
		if m.Promotion != board.None {
			s += mvvlvaValue[m.Promotion]
		}
		return s
	}
	for i := 1; i < len(ordered); i++ {
		j := i
		for j > 0 && scoreOf(ordered[j-1]) < scoreOf(ordered[j]) {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
			j--
		}
	}
	return ordered
}
