package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one escaper configuration of an experiment.
type AgentConfig struct {
	ID         int
	Strategy   string
	Evaluation string
	Budget     time.Duration
}

type GameRecord struct {
	ID      string
	Agent   int // AgentConfig.ID
	Blocker string
	GameMetric
}

type MoveRecord struct {
	Game string // GameRecord.ID
	MoveMetric
}

type SearchRecord struct {
	Agent int    // AgentConfig.ID
	Board uint64 // Hash of the searched board
	SearchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by experiment and current timestamp.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Strategy,
			config.Evaluation,
			config.Budget.String(),
		})
	}
	return w.write("agent_configs.csv", []string{"id", "strategy", "evaluation", "budget"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Agent),
			record.Blocker,
			strconv.Itoa(record.Size),
			record.Outcome,
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "agent", "blocker", "size", "outcome", "moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Block,
			record.Escaper,
			strconv.Itoa(record.Blocks),
			strconv.FormatUint(record.Board, 16),
			strconv.FormatFloat(record.Value, 'f', -1, 64),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Prunes),
			strconv.Itoa(record.Depth),
			strconv.FormatBool(record.TimedOut),
		})
	}
	header := []string{"game", "step", "block", "escaper", "blocks", "board", "value", "duration", "nodes", "prunes", "depth", "timed_out"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Agent),
			strconv.FormatUint(record.Board, 16),
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Prunes),
			strconv.Itoa(record.Depth),
			strconv.FormatBool(record.TimedOut),
		})
	}
	header := []string{"agent", "board", "strategy", "duration", "nodes", "prunes", "depth", "timed_out"}
	return w.write("search_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
