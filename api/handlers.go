package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MichaelMcCulloch/hyperchess-sub000/board"
	"github.com/MichaelMcCulloch/hyperchess-sub000/game"
	"github.com/MichaelMcCulloch/hyperchess-sub000/rules"
)

// newGameID returns a random 128-bit hex id. No UUID library appears
// anywhere in the dependency pack, so ids are generated directly from a
// CSPRNG rather than reaching for an ungrounded third-party package.
func newGameID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

// CreateGame handles POST /api/v1/new_game: it builds a fresh board of the
// requested shape, assigns a strategy to each computer-controlled seat per
// mode, registers the session, and kicks off a bot move if White opens.
func (srv *Server) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	dimension := 2
	if req.Dimension != nil {
		dimension = *req.Dimension
	}
	side := 8
	if req.Side != nil {
		side = *req.Side
	}

	b := board.NewStandard(dimension, side)
	g := game.New(b)

	session := &Session{Game: g}
	switch strings.ToLower(req.Mode) {
	case "cc":
		session.White = srv.buildStrategy()
		session.Black = srv.buildStrategy()
	case "hc":
		session.Black = srv.buildStrategy()
	case "ch":
		session.White = srv.buildStrategy()
	case "hh":
	default:
		http.Error(w, "invalid mode", http.StatusBadRequest)
		return
	}

	id := newGameID()
	srv.Store.put(id, session)

	go srv.runBotMoves(id)

	writeJSON(w, http.StatusCreated, NewGameResponse{UUID: id})
}

// GetGame handles GET /api/v1/game/{uuid}.
func (srv *Server) GetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("uuid")
	session, ok := srv.Store.get(id)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	// buildGameState probes consequences by applying and unmaking every
	// legal move against the live board, so this needs the write lock
	// even though the request itself is read-only.
	session.mu.Lock()
	state := buildGameState(session.Game)
	session.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

// TakeTurn handles POST /api/v1/take_turn: it rejects the request outright
// if it's a computer-controlled seat's turn, otherwise matches the
// requested start/end against the legal moves and applies it, always
// promoting to Queen when a choice isn't otherwise specified.
func (srv *Server) TakeTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, ok := srv.Store.get(req.UUID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	session.mu.Lock()

	current := session.Game.Turn
	if session.strategyFor(current) != nil {
		session.mu.Unlock()
		http.Error(w, "not human turn", http.StatusForbidden)
		return
	}

	m, ok := matchRequestedMove(session.Game, req)
	if !ok {
		session.mu.Unlock()
		http.Error(w, "invalid move", http.StatusBadRequest)
		return
	}

	if _, err := session.Game.PlayTurn(m); err != nil {
		session.mu.Unlock()
		http.Error(w, fmt.Sprintf("move failed: %v", err), http.StatusBadRequest)
		return
	}

	state := buildGameState(session.Game)
	next := session.Game.Turn
	status := session.Game.Status
	session.mu.Unlock()

	if status == game.InProgress && session.strategyFor(next) != nil {
		go srv.runBotMoves(req.UUID)
	}

	writeJSON(w, http.StatusOK, state)
}

func matchRequestedMove(g *game.Game, req TurnRequest) (board.Move, bool) {
	start := intsToCoord(req.Start)
	end := intsToCoord(req.End)

	legal := rules.GenerateLegalMoves(g.Board, g.Turn)
	for _, m := range legal {
		if !m.From.Equal(start) || !m.To.Equal(end) {
			continue
		}
		if m.Promotion == board.None || m.Promotion == board.Queen {
			return m, true
		}
	}
	return board.Move{}, false
}

func buildGameState(g *game.Game) GameState {
	var pieces []Piece
	for idx := 0; idx < g.Board.TotalCells; idx++ {
		p, ok := g.Board.GetPieceAtIndex(idx)
		if !ok {
			continue
		}
		pieces = append(pieces, Piece{
			PieceType:  p.Type.String(),
			Owner:      playerString(p.Owner),
			Coordinate: coordToInts(g.Board.IndexToCoords(idx)),
		})
	}

	current := g.Turn
	validMoves := make(map[string][]ValidMove)
	for _, m := range rules.GenerateLegalMoves(g.Board, current) {
		consequence := ConsequenceNoEffect
		if _, captured := g.Board.GetPiece(m.To); captured {
			consequence = ConsequenceCapture
		}

		info, err := g.Board.ApplyMove(m)
		if err == nil {
			if info.Captured != nil {
				consequence = ConsequenceCapture
			}
			opponent := current.Opponent()
			if len(rules.GenerateLegalMoves(g.Board, opponent)) == 0 {
				if kingCoord, ok := g.Board.GetKingCoordinate(opponent); ok && rules.IsSquareAttacked(g.Board, kingCoord, current) {
					consequence = ConsequenceVictory
				}
			}
			g.Board.UnmakeMove(m, info)
		}

		key := m.From.String()
		validMoves[key] = append(validMoves[key], ValidMove{To: coordToInts(m.To), Consequence: consequence})
	}

	inCheck := false
	if kingCoord, ok := g.Board.GetKingCoordinate(current); ok {
		inCheck = rules.IsSquareAttacked(g.Board, kingCoord, current.Opponent())
	}

	return GameState{
		Pieces:        pieces,
		CurrentPlayer: playerString(current),
		ValidMoves:    validMoves,
		Status:        statusString(g.Status),
		Dimension:     g.Board.Dimension,
		Side:          g.Board.Side,
		InCheck:       inCheck,
		Sequence:      len(g.History),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
