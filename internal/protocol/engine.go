package protocol

import (
	"errors"
	"fmt"
	"io"

	logging "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dpojoga/chessflow/internal/chess"
	"github.com/dpojoga/chessflow/internal/search"
)

// ErrQuit is returned by Execute upon a "quit" command; the caller's
// read loop treats it as a clean shutdown signal, not an error.
var ErrQuit = errors.New("protocol: quit")

var log = logging.MustGetLogger("chessflow")

// Options holds the engine's configurable knobs (spec.md §6.1's
// setoption targets), validated at the setter rather than scattered
// through search code.
type Options struct {
	MaxDepth       int
	MaxQDepth      int
	IsEvaluationMode bool
}

// DefaultOptions returns the engine's out-of-the-box configuration.
func DefaultOptions() Options {
	return Options{MaxDepth: 6, MaxQDepth: 4, IsEvaluationMode: false}
}

func (o *Options) setMaxDepth(v int) error {
	if v < 1 || v > 20 {
		return fmt.Errorf("protocol: max_depth %d out of range [1,20]", v)
	}
	o.MaxDepth = v
	return nil
}

func (o *Options) setMaxQDepth(v int) error {
	if v < 1 || v > 10 {
		return fmt.Errorf("protocol: max_q_depth %d out of range [1,10]", v)
	}
	o.MaxQDepth = v
	return nil
}

// searchTask is a snapshot of a position plus a depth, posted to the
// search worker. The worker never sees a mutably-shared Position: the
// pointer is handed off once and the engine loop builds a fresh
// Position for every subsequent command.
type searchTask struct {
	pos   *chess.Position
	depth int
}

// Engine owns the current position, configuration, and search state,
// and dispatches parsed commands either synchronously (engine loop) or
// by posting a task to the one long-lived search worker (spec.md §5).
type Engine struct {
	Options Options

	position *chess.Position
	state    *search.State

	out     io.Writer
	printer *message.Printer

	tasks chan searchTask
}

// NewEngine builds an engine that writes protocol responses to out
// and caches search results in tt.
func NewEngine(out io.Writer, tt search.TranspositionTable) *Engine {
	e := &Engine{
		Options:  DefaultOptions(),
		position: chess.StartPosition(),
		state:    search.NewState(tt),
		out:      out,
		printer:  message.NewPrinter(language.English),
		tasks:    make(chan searchTask, 1),
	}
	e.state.Touch(e.position.Hash())
	return e
}

// tasksChan exposes the receive side of the task channel for the worker
// goroutine (see worker.go); only the engine's own worker drains it.
func (e *Engine) tasksChan() <-chan searchTask { return e.tasks }

// RepetitionCount reports how many times hash has occurred on the
// canonical game line so far. Exposed for inspection by callers that
// want to surface draw-by-repetition risk (e.g. a game manager) without
// reaching into search.State directly.
func (e *Engine) RepetitionCount(hash uint64) int {
	return e.state.Repetition[hash]
}

// Execute parses and dispatches one input line. It returns ErrQuit on
// "quit" and nil otherwise: a malformed command is reported on the
// output as an "error ..." line and logged, and the loop continues
// (spec.md §7).
func (e *Engine) Execute(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		log.Warningf("malformed command: %v", err)
		fmt.Fprintf(e.out, "error %v\n", err)
		return nil
	}

	switch cmd.Kind {
	case KindUnknown:
		return nil
	case KindUCI:
		e.handleUCI()
	case KindIsReady:
		fmt.Fprintln(e.out, "readyok")
	case KindNewGame:
		e.state.Reset()
		e.position = chess.StartPosition()
		e.state.Touch(e.position.Hash())
		log.Info("new game: engine state reset")
	case KindSetOption:
		e.handleSetOption(cmd)
	case KindPosition:
		e.handlePosition(cmd)
	case KindGo:
		e.handleGo(cmd)
	case KindStop:
		e.state.Stop.Store(true)
		log.Debug("stop requested")
	case KindQuit:
		return ErrQuit
	}
	return nil
}

func (e *Engine) handleUCI() {
	fmt.Fprintln(e.out, "id name ChessFlow")
	fmt.Fprintln(e.out, "id author the ChessFlow contributors")
	fmt.Fprintln(e.out, "option name max_depth type spin default 6 min 1 max 20")
	fmt.Fprintln(e.out, "option name max_q_depth type spin default 4 min 1 max 10")
	fmt.Fprintln(e.out, "option name is_evaluation_mode type check default false")
	fmt.Fprintln(e.out, "uciok")
}

func (e *Engine) handleSetOption(cmd Command) {
	var err error
	switch cmd.OptionName {
	case "max_depth":
		err = setIntOption(cmd.OptionValue, e.Options.setMaxDepth)
	case "max_q_depth":
		err = setIntOption(cmd.OptionValue, e.Options.setMaxQDepth)
	case "is_evaluation_mode":
		e.Options.IsEvaluationMode = cmd.OptionValue == "true"
	default:
		err = fmt.Errorf("protocol: unknown option %q", cmd.OptionName)
	}
	if err != nil {
		log.Warningf("setoption failed: %v", err)
		fmt.Fprintf(e.out, "error %v\n", err)
		return
	}
	// setoption resets the position to start (spec.md §6.1).
	e.position = chess.StartPosition()
	e.state.Touch(e.position.Hash())
}

func setIntOption(raw string, set func(int) error) error {
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		return fmt.Errorf("protocol: option value %q is not an integer", raw)
	}
	return set(v)
}

func (e *Engine) handlePosition(cmd Command) {
	pos := chess.StartPosition()
	if cmd.FEN != "" {
		parsed, err := chess.ParseFEN(cmd.FEN)
		if err != nil {
			log.Warningf("position fen failed: %v", err)
			fmt.Fprintf(e.out, "error %v\n", err)
			return
		}
		pos = parsed
	}

	for _, uci := range cmd.Moves {
		m, ok := findLegalMove(pos, uci)
		if !ok {
			// spec.md §7: illegal/unparseable moves in a moves list are
			// ignored and subsequent moves are still attempted.
			log.Warningf("ignoring illegal/unknown move %q in position command", uci)
			continue
		}
		pos = pos.Apply(m)
		e.state.Touch(pos.Hash())
	}

	e.position = pos
}

func findLegalMove(pos *chess.Position, uci string) (chess.Move, bool) {
	for _, m := range chess.GenerateLegalMoves(pos) {
		if m.UCI() == uci {
			return m, true
		}
	}
	return chess.NoMove, false
}

func (e *Engine) handleGo(cmd Command) {
	depth := e.Options.MaxDepth
	if cmd.HasDepth {
		depth = cmd.Depth
	}
	if depth < 1 {
		// spec.md §7: a malformed or adversarial depth must not hang or
		// crash the loop; a non-positive depth degrades to depth 1
		// rather than being rejected outright, since "go depth 0" is
		// otherwise a reasonable (if useless) request for a quiescence-only
		// probe.
		log.Warningf("go depth %d clamped to 1", depth)
		depth = 1
	}
	e.state.Stop.Store(false)
	select {
	case e.tasks <- searchTask{pos: e.position, depth: depth}:
	default:
		// The task channel holds one pending task: a "go" that arrives
		// while a search runs waits there and runs after it. A further
		// "go" while that slot is still taken is reported rather than
		// silently dropped.
		log.Warning("go received while a search is already in flight")
		fmt.Fprintln(e.out, "error search already in progress")
	}
}

func (e *Engine) emitInfo(stats search.Stats, score int32, pv []chess.Move) {
	nodesStr := e.printer.Sprintf("%d", number.Decimal(stats.Nodes))
	pvStr := ""
	for _, m := range pv {
		pvStr += " " + m.UCI()
	}
	if search.IsMateScore(score) {
		mateIn := (search.MateScore - abs32(score) + 1) / 2
		fmt.Fprintf(e.out, "info depth %d score mate %d nodes %s pv%s\n", stats.Depth, mateIn, nodesStr, pvStr)
		return
	}
	fmt.Fprintf(e.out, "info depth %d score cp %d nodes %s pv%s\n", stats.Depth, score, nodesStr, pvStr)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
