// Package mcts implements Monte Carlo tree search over an arena-allocated
// vector of nodes: UCT selection, random-rollout simulation with an
// optional transposition-table-informed early cutoff, and multi-worker
// parallel iteration under a shared coarse lock.
package mcts

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
	"github.com/MichaelMcCulloch/hyperchess-sub000/tt"
)

// uctC is the UCT exploration constant, sqrt(2).
const uctC = math.Sqrt2

// maxRolloutDepth bounds a random playout before it's scored as a draw.
const maxRolloutDepth = 50

const kingValueForNormalization = 20000.0

// node is one arena entry. Index-based parent/child links avoid pointer
// cycles and let the whole tree live in one slice.
type node struct {
	parent           int
	hasParent        bool
	children         []int
	visits           uint32
	score            float64
	unexpandedMoves  []board.Move
	isTerminal       bool
	moveToNode       board.Move
	hasMoveToNode    bool
	playerToMove     board.Player
}

// Tree runs MCTS iterations from a fixed root state.
type Tree struct {
	mu         sync.Mutex
	nodes      []node
	rootPlayer board.Player
	rootBoard  *board.Board
	table      *tt.Table

	stopped atomic.Bool
	nodeCounter atomic.Uint64
}

// New builds a Tree rooted at root (the caller retains ownership; Tree
// clones it per iteration) with rootPlayer to move, optionally consulting
// table for rollout cutoffs.
func New(root *board.Board, rootPlayer board.Player, table *tt.Table) *Tree {
	legal := rules.GenerateLegalMoves(root, rootPlayer)
	rootNode := node{
		hasParent:       false,
		unexpandedMoves: shuffled(legal),
		playerToMove:    rootPlayer,
	}
	return &Tree{
		nodes:      []node{rootNode},
		rootPlayer: rootPlayer,
		rootBoard:  root,
		table:      table,
	}
}

func shuffled(moves []board.Move) []board.Move {
	out := append([]board.Move(nil), moves...)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Run splits iterations across workers goroutines running in parallel,
// each performing complete MCTS iterations against the shared arena under
// t.mu, and
// returns the root's win rate in [0, 1] once every worker finishes its
// share of iterations.
func (t *Tree) Run(iterations, workers int) float64 {
	if workers < 1 {
		workers = 1
	}
	perWorker := iterations / workers
	remainder := iterations % workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		share := perWorker
		if w < remainder {
			share++
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				if t.stopped.Load() {
					return
				}
				t.iterate()
			}
		}(share)
	}
	wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	root := &t.nodes[0]
	if root.visits == 0 {
		return 0.0
	}
	return root.score / float64(root.visits)
}

// Stop signals every in-flight worker to finish its current iteration and
// return without starting another.
func (t *Tree) Stop() { t.stopped.Store(true) }

func (t *Tree) iterate() {
	t.mu.Lock()
	nodeIdx := 0
	currentState := t.rootBoard.Clone()
	currentPlayer := t.rootPlayer

	for len(t.nodes[nodeIdx].unexpandedMoves) == 0 && len(t.nodes[nodeIdx].children) > 0 {
		nodeIdx = t.selectChild(nodeIdx)
		mv := t.nodes[nodeIdx].moveToNode
		currentState.ApplyMove(mv)
		currentPlayer = currentPlayer.Opponent()
	}

	if len(t.nodes[nodeIdx].unexpandedMoves) > 0 {
		pending := t.nodes[nodeIdx].unexpandedMoves
		mv := pending[len(pending)-1]
		t.nodes[nodeIdx].unexpandedMoves = pending[:len(pending)-1]

		currentState.ApplyMove(mv)
		nextPlayer := currentPlayer.Opponent()
		legalNext := rules.GenerateLegalMoves(currentState, nextPlayer)

		child := node{
			parent:          nodeIdx,
			hasParent:       true,
			unexpandedMoves: shuffled(legalNext),
			isTerminal:      len(legalNext) == 0,
			moveToNode:      mv,
			hasMoveToNode:   true,
			playerToMove:    nextPlayer,
		}
		childIdx := len(t.nodes)
		t.nodes = append(t.nodes, child)
		t.nodes[nodeIdx].children = append(t.nodes[nodeIdx].children, childIdx)

		nodeIdx = childIdx
		currentPlayer = nextPlayer
	}

	isTerminal := t.nodes[nodeIdx].isTerminal
	t.mu.Unlock()

	var resultScore float64
	if isTerminal {
		resultScore = t.evaluateTerminal(currentState, currentPlayer)
	} else {
		resultScore = t.rollout(currentState, currentPlayer)
	}
	t.nodeCounter.Add(1)

	t.mu.Lock()
	t.backpropagate(nodeIdx, resultScore)
	t.mu.Unlock()
}

// selectChild must be called with t.mu held.
func (t *Tree) selectChild(parentIdx int) int {
	parent := &t.nodes[parentIdx]
	logN := math.Log(float64(parent.visits))
	maximize := parent.playerToMove == t.rootPlayer

	bestScore := math.Inf(-1)
	bestChild := parent.children[0]

	for _, childIdx := range parent.children {
		child := &t.nodes[childIdx]
		winRate := 0.0
		if child.visits > 0 {
			winRate = child.score / float64(child.visits)
		}
		exploitation := winRate
		if !maximize {
			exploitation = 1.0 - winRate
		}
		exploration := uctC * math.Sqrt(logN/(float64(child.visits)+1e-6))
		uctValue := exploitation + exploration
		if uctValue > bestScore {
			bestScore = uctValue
			bestChild = childIdx
		}
	}
	return bestChild
}

func (t *Tree) rollout(state *board.Board, player board.Player) float64 {
	for depth := 0; depth < maxRolloutDepth; depth++ {
		if t.table != nil {
			if entry, ok := t.table.Probe(state.Hash); ok && entry.Flag == tt.Exact {
				normalized := float64(entry.Score)/kingValueForNormalization/2.0 + 0.5
				if normalized < 0 {
					normalized = 0
				}
				if normalized > 1 {
					normalized = 1
				}
				// The stored score is from the side to move's view;
				// rollout results are from the root player's view.
				if player != t.rootPlayer {
					normalized = 1 - normalized
				}
				return normalized
			}
		}

		moves := rules.GenerateLegalMoves(state, player)
		if len(moves) == 0 {
			return t.evaluateTerminal(state, player)
		}
		mv := moves[rand.Intn(len(moves))]
		state.ApplyMove(mv)
		player = player.Opponent()
	}
	return 0.5
}

func (t *Tree) evaluateTerminal(state *board.Board, playerAtLeaf board.Player) float64 {
	kingCoord, ok := state.GetKingCoordinate(playerAtLeaf)
	if ok && rules.IsSquareAttacked(state, kingCoord, playerAtLeaf.Opponent()) {
		if playerAtLeaf == t.rootPlayer {
			return 0.0
		}
		return 1.0
	}
	return 0.5
}

// backpropagate must be called with t.mu held.
func (t *Tree) backpropagate(nodeIdx int, score float64) {
	for {
		n := &t.nodes[nodeIdx]
		n.visits++
		n.score += score
		if !n.hasParent {
			return
		}
		nodeIdx = n.parent
	}
}

// NodesExplored reports the total iteration count completed so far,
// for progress reporting.
func (t *Tree) NodesExplored() uint64 { return t.nodeCounter.Load() }

// BestRootMove returns the move leading to the root's most-visited child,
// the standard MCTS move-selection rule (favoring visit count over raw
// win rate, which stays noisy on low-sample children). Reports false if
// Run has never expanded a root child (e.g. a terminal position).
func (t *Tree) BestRootMove() (board.Move, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	root := &t.nodes[0]
	if len(root.children) == 0 {
		return board.Move{}, false
	}

	bestIdx := root.children[0]
	for _, childIdx := range root.children[1:] {
		if t.nodes[childIdx].visits > t.nodes[bestIdx].visits {
			bestIdx = childIdx
		}
	}
	return t.nodes[bestIdx].moveToNode, true
}
