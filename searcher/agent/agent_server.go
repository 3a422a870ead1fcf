package agent

import (
	"cattrap/game"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Outcomes reported by the move endpoint
const (
	OutcomeMove    = "move"
	OutcomeTrapped = "trapped"
	OutcomeTimeout = "timeout"
)

type MoveRequest struct {
	Board  *game.Board `json:"board"`
	Config Config      `json:"config"`
}

type MoveResponse struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Value   float64 `json:"value"`
	Outcome string  `json:"outcome"`
}

// NewRouter returns the agent's HTTP routes: POST /move answers one move
// request and GET /ping reports liveness.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/move", handleMove)
	return r
}

func handleMove(w http.ResponseWriter, r *http.Request) {
	var payload MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload: " + err.Error()})
		return
	}
	if payload.Board == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing board"})
		return
	}

	start := time.Now()
	from := payload.Board.Escaper()
	move, value, err := ComputeMove(r.Context(), payload.Board, payload.Config)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	log.Info().Msgf("[%s] %s: %v -> %v in %s", middleware.GetReqID(r.Context()), payload.Config.Strategy(), from, move, time.Since(start))

	writeJSON(w, http.StatusOK, NewMoveResponse(from, move, value))
}

// NewMoveResponse classifies the move an agent made from the escaper's
// coordinate from.
func NewMoveResponse(from, move game.Coord, value float64) MoveResponse {
	outcome := OutcomeMove
	switch move {
	case game.NoCoord:
		outcome = OutcomeTimeout
	case from:
		outcome = OutcomeTrapped
	}
	return MoveResponse{Row: move.Row, Col: move.Col, Value: value, Outcome: outcome}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// StartAgentServer serves the agent on addr until ctx is cancelled.
func StartAgentServer(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("agent server shutdown")
		}
	}()

	log.Info().Msgf("starting agent server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
