package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/dpojoga/chessflow/internal/search"
)

// Run wires the engine loop (reading lines from in) to a single
// long-lived search-worker goroutine (spec.md §4.10/§5), tying both
// lifecycles together with an errgroup so that "quit" or an input-close
// unwinds both cleanly. Run blocks until the loop exits.
func (e *Engine) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.runWorker(ctx)
		return nil
	})

	loopErr := e.runLoop(in)
	cancel()
	close(e.tasks)
	_ = g.Wait()
	return loopErr
}

// runLoop is the single-threaded command reader; it blocks only on
// input readiness (spec.md §5).
func (e *Engine) runLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if err := e.Execute(line); err != nil {
			if err == ErrQuit {
				log.Info("quit received")
				return nil
			}
			log.Errorf("command loop error: %v", err)
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("input read error: %v", err)
		return err
	}
	return nil
}

// runWorker runs tasks one at a time, in arrival order, until Run
// closes the task channel; a task already queued when the loop exits is
// still searched and answered (spec.md §5's MPSC channel contract).
func (e *Engine) runWorker(ctx context.Context) {
	for task := range e.tasksChan() {
		e.runSearch(task)
	}
}

func (e *Engine) runSearch(task searchTask) {
	searcher := search.NewSearcher(e.state, e.Options.MaxQDepth)
	log.Debugf("search start depth=%d evaluation_mode=%v", task.depth, e.Options.IsEvaluationMode)

	var best = chessNoMoveUCI
	if e.Options.IsEvaluationMode {
		m, _ := searcher.IterativeDeepen(task.pos, task.depth, e.emitInfo)
		best = m.UCI()
	} else {
		m, _, ok := searcher.FindBestMove(task.pos, task.depth)
		if ok {
			best = m.UCI()
		}
	}

	fmt.Fprintf(e.out, "bestmove %s\n", best)
}

const chessNoMoveUCI = "0000"
