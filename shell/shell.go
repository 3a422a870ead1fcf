package shell

import (
	"cattrap/engine"
	"cattrap/game"
	"cattrap/searcher/agent"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var errExit = errors.New("exit")

type Mode int

const (
	PlayMode Mode = iota
	EditMode
)

// ShellController plays interactive games: the user places blocks and the
// configured agent moves the escaper.
type ShellController struct {
	l *readline.Instance

	size    int
	rng     *rand.Rand
	agent   agent.Config
	escaper agent.Agent
	game    *engine.Local
	board   *game.Board
	mode    Mode
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController starts with a fresh random board of the given size.
func NewShellController(size int, cfg agent.Config) (*ShellController, error) {
	sc := &ShellController{size: size, rng: agent.NewRand()}
	if err := sc.setAgent(cfg); err != nil {
		return nil, err
	}
	if err := sc.newGame(size); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *ShellController) setAgent(cfg agent.Config) error {
	a, err := agent.New(cfg, agent.WithRand(sc.rng), agent.WithMetrics())
	if err != nil {
		return err
	}
	sc.agent, sc.escaper = cfg, a
	if sc.game != nil {
		sc.game.Escaper = a
	}
	return nil
}

func (sc *ShellController) newGame(size int) error {
	b, err := game.NewRandomBoard(size, sc.rng)
	if err != nil {
		return err
	}
	sc.size, sc.board, sc.mode = size, b, PlayMode
	sc.game = engine.LocalEngine(b, sc.escaper, nil)
	return nil
}

// Execute runs one command line and returns what to show the user.
func (sc *ShellController) Execute(ctx context.Context, line string) (string, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "new":
		size := sc.size
		if len(args) > 0 {
			if size, err = strconv.Atoi(args[0]); err != nil {
				return "", fmt.Errorf("bad size %q", args[0])
			}
		}
		if err := sc.newGame(size); err != nil {
			return "", err
		}
		return sc.show(), nil
	case "block":
		return sc.block(ctx, args)
	case "edit":
		return sc.edit(args)
	case "toggle":
		return sc.toggle(args)
	case "escaper":
		return sc.placeEscaper(args)
	case "strategy":
		if len(args) == 0 {
			return fmt.Sprintf("strategy: %s", sc.escaper.Name()), nil
		}
		cfg, err := ParseStrategy(args)
		if err != nil {
			return "", err
		}
		if err := sc.setAgent(cfg); err != nil {
			return "", err
		}
		return fmt.Sprintf("strategy: %s", sc.escaper.Name()), nil
	case "hint":
		if sc.board.Escaper() == game.NoCoord {
			return "", errors.New("no escaper on the board")
		}
		move, value, err := agent.ComputeMove(ctx, sc.board.Clone(), sc.agent)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("escaper would move to %v (value %.1f)", move, value), nil
	case "show":
		return sc.show(), nil
	case "help":
		return usage, nil
	case "exit", "quit":
		return "", errExit
	default:
		return "", fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (sc *ShellController) block(ctx context.Context, args []string) (string, error) {
	if sc.mode == EditMode {
		return "", errors.New("leave edit mode before playing")
	}
	c, err := parseCoord(args)
	if err != nil {
		return "", err
	}
	outcome, err := sc.game.Play(ctx, c)
	if err != nil {
		return "", err
	}
	moves := sc.game.Moves()
	last := moves[len(moves)-1]
	msg := fmt.Sprintf("%s%s moved to %s in %s (depth %d, %d nodes)", sc.board, sc.escaper.Name(), last.Escaper, last.Duration, last.Depth, last.Nodes)
	if outcome.Over() {
		msg += fmt.Sprintf("\nescaper %s after %d moves, type new to play again", outcome, len(moves))
	}
	return msg, nil
}

func (sc *ShellController) edit(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: edit on|off")
	}
	switch args[0] {
	case "on":
		sc.mode = EditMode
		return "editing: toggle r c, escaper r c, edit off", nil
	case "off":
		if sc.board.Escaper() == game.NoCoord {
			return "", errors.New("place the escaper before playing")
		}
		sc.mode = PlayMode
		sc.game = engine.LocalEngine(sc.board, sc.escaper, nil)
		return sc.show(), nil
	default:
		return "", errors.New("usage: edit on|off")
	}
}

// toggle cycles a tile while editing: empty tiles get blocked, blocks are
// cleared and the escaper is taken off the board.
func (sc *ShellController) toggle(args []string) (string, error) {
	if sc.mode != EditMode {
		return "", errors.New("toggle needs edit mode")
	}
	c, err := parseCoord(args)
	if err != nil {
		return "", err
	}
	switch sc.board.At(c) {
	case game.Empty:
		err = sc.board.Block(c)
	case game.Blocked:
		err = sc.board.Unblock(c)
	case game.Escaper:
		sc.board.RemoveEscaper()
	}
	if err != nil {
		return "", err
	}
	return sc.board.String(), nil
}

func (sc *ShellController) placeEscaper(args []string) (string, error) {
	if sc.mode != EditMode {
		return "", errors.New("escaper needs edit mode")
	}
	c, err := parseCoord(args)
	if err != nil {
		return "", err
	}
	if err := sc.board.PlaceEscaper(c); err != nil {
		return "", err
	}
	return sc.board.String(), nil
}

func (sc *ShellController) show() string {
	status := "editing"
	if sc.mode == PlayMode {
		status = "escaper " + sc.game.Outcome().String()
	}
	return fmt.Sprintf("%s%s, %d blocks, %s", sc.board, status, sc.board.CountCells(game.Blocked), sc.escaper.Name())
}

func parseCoord(args []string) (game.Coord, error) {
	if len(args) != 2 {
		return game.NoCoord, errors.New("expected a row and a column")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return game.NoCoord, fmt.Errorf("bad row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return game.NoCoord, fmt.Errorf("bad column %q", args[1])
	}
	return game.Coord{Row: row, Col: col}, nil
}

// ParseStrategy reads "random", "minimax" or "alphabeta" followed by
// optional "depth N", "iterative SECONDS" and "eval NAME" clauses.
func ParseStrategy(args []string) (agent.Config, error) {
	var cfg agent.Config
	switch args[0] {
	case "random":
		cfg.Random = true
	case "minimax":
	case "alphabeta":
		cfg.AlphaBeta = true
	default:
		return cfg, fmt.Errorf("unknown strategy %q", args[0])
	}

	rest := args[1:]
	for len(rest) > 0 {
		if len(rest) < 2 {
			return cfg, fmt.Errorf("%s needs a value", rest[0])
		}
		key, value := rest[0], rest[1]
		rest = rest[2:]
		switch key {
		case "depth":
			d, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("bad depth %q", value)
			}
			cfg.DepthLimited, cfg.MaxDepth = true, &d
		case "iterative":
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return cfg, fmt.Errorf("bad time budget %q", value)
			}
			cfg.IterativeDeepening, cfg.TimeBudgetSeconds = true, &seconds
		case "budget":
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return cfg, fmt.Errorf("bad time budget %q", value)
			}
			cfg.TimeBudgetSeconds = &seconds
		case "eval":
			cfg.Evaluation = value
		default:
			return cfg, fmt.Errorf("unknown strategy option %q", key)
		}
	}
	return cfg, cfg.Validate()
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// Loop reads commands until exit or end of input.
func (sc *ShellController) Loop(ctx context.Context) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mcattrap>\033[0m ",
		HistoryFile:     "/tmp/cattrap.readline",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	defer sc.l.Close()

	showMessage(sc.show(), sc.l.Stdout())
	for {
		line, err := sc.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		}

		out, err := sc.Execute(ctx, strings.TrimSpace(line))
		if errors.Is(err, errExit) {
			break
		}
		if err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
			continue
		}
		if out != "" {
			showMessage(out, sc.l.Stdout())
		}
	}
	log.Debug().Msg("exiting readline loop...")
	return nil
}

const usage = `commands:
  new [size]                 start a game on a random board
  block r c                  block a tile, then the escaper moves
  edit on|off                enter or leave edit mode
  toggle r c                 (edit) block, clear or remove the escaper
  escaper r c                (edit) place the escaper
  strategy NAME [depth N] [iterative SECONDS] [budget SECONDS] [eval moves|challenge|proximity]
                             NAME is random, minimax or alphabeta
  hint                       show the escaper's next move without playing it
  show                       print the board
  help                       this message
  exit                       leave`
