package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

type gameEnvelope struct {
	Success bool         `json:"success"`
	Code    int          `json:"code"`
	Extras  gameResponse `json:"extras"`
}

func newTestServer(t *testing.T, settings tictactoe.Settings) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager, err := usecase.NewGameManager(
		logger,
		repository.NewMemoryGameRepository(),
		repository.NewMemoryStatsRepository(),
		settings,
		usecase.Options{SessionID: "local", HistorySize: 10},
	)
	require.NoError(t, err)

	_, err = manager.Resume(context.Background())
	require.NoError(t, err)

	srv, err := New(logger, manager)
	require.NoError(t, err)

	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	return rec
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) gameEnvelope {
	t.Helper()

	var envelope gameEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestRegisterValidators(t *testing.T) {
	// When: registering twice
	require.NoError(t, registerValidators())
	require.NoError(t, registerValidators())

	// Then: the mark tag is known to gin's validator
	require.NoError(t, binding.Validator.ValidateStruct(symbolRequest{Mark: " o "}))
	require.Error(t, binding.Validator.ValidateStruct(symbolRequest{Mark: "z"}))
}

func TestServer_Ping(t *testing.T) {
	srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

	rec := do(t, srv, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "code": 200, "extras": {"content": "pong"}}`, rec.Body.String())
}

func TestServer_Game(t *testing.T) {
	t.Run("Get the fresh game", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

		rec := do(t, srv, http.MethodGet, "/game", "")

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeGame(t, rec)
		assert.True(t, envelope.Success)
		assert.Equal(t, entity.PhaseInProgress, envelope.Extras.Game.Phase)
		assert.Equal(t, "You: X | AI: O", envelope.Extras.Status)
	})

	t.Run("Move is answered by the AI", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

		// When: the human takes the center
		rec := do(t, srv, http.MethodPost, "/game/move", `{"row": 1, "col": 1}`)

		// Then: the AI took the first corner and the move is reported
		require.Equal(t, http.StatusOK, rec.Code)
		game := decodeGame(t, rec).Extras.Game
		assert.Equal(t, entity.PlayerX, game.Board[1][1])
		assert.Equal(t, entity.PlayerO, game.Board[0][0])
		assert.Equal(t, &entity.Move{Row: 0, Col: 0}, game.LastAIMove)
	})

	t.Run("Occupied cell is a conflict", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

		require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/game/move", `{"row": 1, "col": 1}`).Code)

		rec := do(t, srv, http.MethodPost, "/game/move", `{"row": 0, "col": 0}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("Malformed move is a bad request", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

		for _, body := range []string{`{"row": 1}`, `{"row": 3, "col": 0}`, `{"row": -1, "col": 0}`, `not json`} {
			rec := do(t, srv, http.MethodPost, "/game/move", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("Zero coordinates are accepted", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

		rec := do(t, srv, http.MethodPost, "/game/move", `{"row": 0, "col": 0}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.PlayerX, decodeGame(t, rec).Extras.Game.Board[0][0])
	})
}

func TestServer_ChooseSymbol(t *testing.T) {
	t.Run("Lower case symbol is accepted", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{ChooseSymbol: true})

		rec := do(t, srv, http.MethodPost, "/game/symbol", `{"mark": "o"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		game := decodeGame(t, rec).Extras.Game
		assert.Equal(t, entity.PlayerO, game.HumanMark)
		assert.Equal(t, 1, game.Board.Count(entity.PlayerX))
	})

	t.Run("Unknown symbol is a bad request", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{ChooseSymbol: true})

		rec := do(t, srv, http.MethodPost, "/game/symbol", `{"mark": "z"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Second choice is a conflict", func(t *testing.T) {
		srv := newTestServer(t, tictactoe.Settings{ChooseSymbol: true})

		require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/game/symbol", `{"mark": "X"}`).Code)

		rec := do(t, srv, http.MethodPost, "/game/symbol", `{"mark": "O"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_RestartStatsHistory(t *testing.T) {
	// Given: a human who loses by always taking the first free cell
	srv := newTestServer(t, tictactoe.Settings{HumanMark: entity.PlayerX})

	for _, body := range []string{`{"row": 0, "col": 0}`, `{"row": 0, "col": 1}`, `{"row": 1, "col": 0}`} {
		require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/game/move", body).Code)
	}

	rec := do(t, srv, http.MethodGet, "/game", "")
	assert.Equal(t, "O wins!", decodeGame(t, rec).Extras.Status)

	// When: restarting
	rec = do(t, srv, http.MethodPost, "/game/restart", "")

	// Then: the board is empty again and the loss is on record
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.Board{}, decodeGame(t, rec).Extras.Game.Board)

	rec = do(t, srv, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "code": 200, "extras": {"human_wins": 0, "ai_wins": 1, "draws": 0}}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Extras struct {
			List []entity.Snapshot `json:"list"`
		} `json:"extras"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Extras.List, 1)
	assert.Equal(t, entity.PlayerO, envelope.Extras.List[0].Winner)
}
