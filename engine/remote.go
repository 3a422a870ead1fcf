package engine

import (
	"bytes"
	"cattrap/experiments/metrics"
	"cattrap/game"
	"cattrap/searcher/agent"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// RemoteAgent asks an agent server for each escaper move.
type RemoteAgent struct {
	URL    string
	Config agent.Config
	Client *http.Client
}

func NewRemoteAgent(url string, cfg agent.Config) *RemoteAgent {
	return &RemoteAgent{URL: url, Config: cfg, Client: http.DefaultClient}
}

func (r *RemoteAgent) Name() string {
	return "remote-" + r.Config.Strategy()
}

// FindMove posts the board to the server's /move endpoint. Transport
// failures are logged and reported as a timeout, the escaper's loss.
func (r *RemoteAgent) FindMove(ctx context.Context, b *game.Board) (game.Coord, float64, metrics.SearchMetric) {
	start := time.Now()
	metric := metrics.SearchMetric{Strategy: r.Name()}

	resp, err := r.requestMove(ctx, b)
	metric.Duration = time.Since(start)
	if err != nil {
		log.Error().Err(err).Msgf("remote agent %s", r.URL)
		metric.TimedOut = true
		return game.NoCoord, 0, metric
	}
	metric.TimedOut = resp.Outcome == agent.OutcomeTimeout
	return game.Coord{Row: resp.Row, Col: resp.Col}, resp.Value, metric
}

func (r *RemoteAgent) requestMove(ctx context.Context, b *game.Board) (*agent.MoveResponse, error) {
	body, err := json.Marshal(agent.MoveRequest{Board: b, Config: r.Config})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL+"/move", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var move agent.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return nil, err
	}
	return &move, nil
}
