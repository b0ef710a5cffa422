package api

import (
	"sync"
	"time"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/config"
	"github.com/MichaelMcCulloch/hyperchess-sub000/game"
	"github.com/MichaelMcCulloch/hyperchess-sub000/strategy"
	"github.com/MichaelMcCulloch/hyperchess-sub000/tt"
)

// Session pairs a running Game with the strategy (if any) controlling
// each side, guarded by its own lock so concurrent requests against
// different games never block each other.
type Session struct {
	mu    sync.RWMutex
	Game  *game.Game
	White strategy.Strategy
	Black strategy.Strategy
}

func (s *Session) strategyFor(player board.Player) strategy.Strategy {
	if player == board.White {
		return s.White
	}
	return s.Black
}

func secondsFromMinutes(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// Store is the in-memory registry of running games, keyed by UUID.
type Store struct {
	mu    sync.RWMutex
	games map[string]*Session
}

// NewStore builds an empty game registry.
func NewStore() *Store {
	return &Store{games: make(map[string]*Session)}
}

func (s *Store) put(id string, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = session
}

func (s *Store) get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.games[id]
	return session, ok
}

// Server bundles the shared state every handler needs.
type Server struct {
	Store  *Store
	Config config.Config
	Table  *tt.Table
}

// NewServer builds a Server with a fresh game registry and a single
// fixed-size (64 MiB) transposition table shared by every engine seat;
// the table size does not depend on cfg.
func NewServer(cfg config.Config) *Server {
	return &Server{
		Store:  NewStore(),
		Config: cfg,
		Table:  tt.New(64 << 20),
	}
}

// buildStrategy mirrors the engine-selection rule: MCTS config present
// means every computer seat gets the MCTS strategy, otherwise alpha-beta.
func (srv *Server) buildStrategy() strategy.Strategy {
	budget := secondsFromMinutes(srv.Config.Compute.Minutes)
	if srv.Config.MCTS != nil {
		return strategy.NewMCTSStrategy(srv.Table, srv.Config.MCTS.Iterations, srv.Config.Compute.Concurrency)
	}
	return strategy.NewAlphaBeta(srv.Table, budget, int32(srv.Config.Minimax.Depth))
}
