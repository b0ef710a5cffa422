package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelMcCulloch/hyperchess-sub000/config"
)

func newTestServer() *Server {
	cfg := config.Default()
	cfg.MCTS = nil
	cfg.Minimax.Depth = 2
	return NewServer(cfg)
}

func TestCreateGameHumanVsHuman(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	body, _ := json.Marshal(NewGameRequest{Mode: "hh"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/new_game", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp NewGameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UUID)
}

func TestCreateGameRejectsBadMode(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	body, _ := json.Marshal(NewGameRequest{Mode: "zz"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/new_game", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGameNotFound(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/game/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTakeTurnAppliesLegalMove(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	createBody, _ := json.Marshal(NewGameRequest{Mode: "hh"})
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/new_game", bytes.NewReader(createBody))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, createReq)
	var created NewGameResponse
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	turnBody, _ := json.Marshal(TurnRequest{UUID: created.UUID, Start: []int{1, 4}, End: []int{3, 4}})
	turnReq := httptest.NewRequest(http.MethodPost, "/api/v1/take_turn", bytes.NewReader(turnBody))
	turnRec := httptest.NewRecorder()
	router.ServeHTTP(turnRec, turnReq)

	require.Equal(t, http.StatusOK, turnRec.Code)
	var state GameState
	require.NoError(t, json.Unmarshal(turnRec.Body.Bytes(), &state))
	assert.Equal(t, "black", state.CurrentPlayer)
	assert.Equal(t, 1, state.Sequence)
}

func TestTakeTurnRejectsIllegalMove(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	createBody, _ := json.Marshal(NewGameRequest{Mode: "hh"})
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/new_game", bytes.NewReader(createBody))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, createReq)
	var created NewGameResponse
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	turnBody, _ := json.Marshal(TurnRequest{UUID: created.UUID, Start: []int{1, 4}, End: []int{5, 4}})
	turnReq := httptest.NewRequest(http.MethodPost, "/api/v1/take_turn", bytes.NewReader(turnBody))
	turnRec := httptest.NewRecorder()
	router.ServeHTTP(turnRec, turnReq)

	assert.Equal(t, http.StatusBadRequest, turnRec.Code)
}

func TestTakeTurnRejectsWhenBotControlsSeat(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	createBody, _ := json.Marshal(NewGameRequest{Mode: "ch"})
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/new_game", bytes.NewReader(createBody))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, createReq)
	var created NewGameResponse
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	turnBody, _ := json.Marshal(TurnRequest{UUID: created.UUID, Start: []int{1, 4}, End: []int{3, 4}})
	turnReq := httptest.NewRequest(http.MethodPost, "/api/v1/take_turn", bytes.NewReader(turnBody))
	turnRec := httptest.NewRecorder()
	router.ServeHTTP(turnRec, turnReq)

	assert.Equal(t, http.StatusForbidden, turnRec.Code)
}
