// Command chessflow-engine is the thin process shell around the
// engine core: it wires stdin/stdout to the protocol loop. Per
// spec.md §1, the shell itself (argument parsing, stdin/stdout
// plumbing) is an external collaborator, not part of the core; this
// file is kept minimal so the interesting logic stays in
// internal/protocol.
package main

import (
	"context"
	"flag"
	"os"

	logging "github.com/op/go-logging"

	"github.com/dpojoga/chessflow/internal/protocol"
	"github.com/dpojoga/chessflow/internal/search"
)

var ttSizeBytes = flag.Int64("tt-bytes", 64<<20, "transposition table size in bytes")

func main() {
	flag.Parse()

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(backend)
	logging.SetFormatter(logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{message}`,
	))

	tt, err := search.NewRistrettoTranspositionTable(*ttSizeBytes)
	if err != nil {
		logging.MustGetLogger("chessflow").Fatalf("failed to build transposition table: %v", err)
	}

	engine := protocol.NewEngine(os.Stdout, tt)
	if err := engine.Run(context.Background(), os.Stdin); err != nil {
		os.Exit(1)
	}
}
