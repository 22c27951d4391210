// Package protocol implements the line-oriented command protocol
// (spec.md §6.1) and the engine loop that dispatches parsed commands
// to a dedicated search-worker goroutine.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which protocol command a line parsed to.
type Kind int

const (
	KindUnknown Kind = iota
	KindUCI
	KindSetOption
	KindIsReady
	KindNewGame
	KindPosition
	KindGo
	KindStop
	KindQuit
)

// Command is the parsed form of one input line. Only the fields
// relevant to Kind are populated.
type Command struct {
	Kind Kind

	OptionName  string
	OptionValue string

	FEN   string   // empty means startpos
	Moves []string // UCI move strings to replay after setting up FEN/startpos

	HasDepth bool
	Depth    int
}

// ParseCommand tokenizes one input line and classifies it. A blank line
// yields KindUnknown and a nil error. Unknown or malformed input yields
// KindUnknown and a non-nil error; callers
// report the error and continue (spec.md §7) rather than treating it
// as fatal.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: KindUnknown}, nil
	}

	switch fields[0] {
	case "uci":
		return Command{Kind: KindUCI}, nil
	case "isready":
		return Command{Kind: KindIsReady}, nil
	case "ucinewgame":
		return Command{Kind: KindNewGame}, nil
	case "stop":
		return Command{Kind: KindStop}, nil
	case "quit":
		return Command{Kind: KindQuit}, nil
	case "setoption":
		return parseSetOption(fields)
	case "position":
		return parsePosition(fields)
	case "go":
		return parseGo(fields)
	default:
		return Command{Kind: KindUnknown}, fmt.Errorf("protocol: unrecognized command %q", fields[0])
	}
}

// parseSetOption handles "setoption name <N> value <V>".
func parseSetOption(fields []string) (Command, error) {
	if len(fields) < 5 || fields[1] != "name" {
		return Command{Kind: KindUnknown}, fmt.Errorf("protocol: malformed setoption: %q", strings.Join(fields, " "))
	}
	valueIdx := -1
	for i := 2; i < len(fields); i++ {
		if fields[i] == "value" {
			valueIdx = i
			break
		}
	}
	if valueIdx < 0 || valueIdx+1 >= len(fields) {
		return Command{Kind: KindUnknown}, fmt.Errorf("protocol: setoption missing value: %q", strings.Join(fields, " "))
	}
	return Command{
		Kind:        KindSetOption,
		OptionName:  strings.Join(fields[2:valueIdx], " "),
		OptionValue: strings.Join(fields[valueIdx+1:], " "),
	}, nil
}

// parsePosition handles "position startpos|fen <6 fields> [moves ...]".
func parsePosition(fields []string) (Command, error) {
	if len(fields) < 2 {
		return Command{Kind: KindUnknown}, fmt.Errorf("protocol: malformed position command")
	}
	cmd := Command{Kind: KindPosition}
	i := 1
	switch fields[i] {
	case "startpos":
		i++
	case "fen":
		if i+6 >= len(fields) {
			return Command{Kind: KindUnknown}, fmt.Errorf("protocol: position fen needs 6 fields")
		}
		cmd.FEN = strings.Join(fields[i+1:i+7], " ")
		i += 7
	default:
		return Command{Kind: KindUnknown}, fmt.Errorf("protocol: position expects startpos or fen, got %q", fields[i])
	}
	if i < len(fields) {
		if fields[i] != "moves" {
			return Command{Kind: KindUnknown}, fmt.Errorf("protocol: expected moves, got %q", fields[i])
		}
		cmd.Moves = append(cmd.Moves, fields[i+1:]...)
	}
	return cmd, nil
}

// parseGo handles "go [depth N]".
func parseGo(fields []string) (Command, error) {
	cmd := Command{Kind: KindGo}
	for i := 1; i < len(fields); i++ {
		if fields[i] == "depth" && i+1 < len(fields) {
			d, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return Command{Kind: KindUnknown}, fmt.Errorf("protocol: bad depth %q: %w", fields[i+1], err)
			}
			cmd.HasDepth = true
			cmd.Depth = d
			i++
		}
	}
	return cmd, nil
}
