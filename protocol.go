package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chess-core/board"
	"chess-core/engine"
	"chess-core/peer"
)

func main() {
	commandLoop(os.Stdin, os.Stdout)
}

// commandLoop reads one command per line from in until quit or EOF. Problems
// with a command are reported as "info string" lines and never end the loop.
func commandLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	state := board.NewGame()
	opts := engine.DefaultOptions()
	opts.Info = out

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		if strings.HasPrefix(tokens[0], "MOVE|") {
			if _, err := peer.Apply(state, line); err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			reportStatus(out, state)
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "quit":
			return
		case "position":
			next, err := parsePosition(tokens[1:])
			if err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			state = next
		case "move":
			if len(tokens) < 3 {
				fmt.Fprintln(out, "info string Malformed move command")
				continue
			}
			msg := fmt.Sprintf("MOVE|%s|%s|%s", tokens[1], tokens[2], state.Turn())
			if len(tokens) > 3 {
				msg += "|" + tokens[3]
			}
			if _, err := peer.Apply(state, msg); err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			reportStatus(out, state)
		case "go":
			searchOpts := opts
			for i := 1; i < len(tokens); i++ {
				switch strings.ToLower(tokens[i]) {
				case "depth":
					if i+1 >= len(tokens) {
						fmt.Fprintln(out, "info string Malformed go command option depth")
						continue
					}
					i++
					d, err := strconv.Atoi(tokens[i])
					if err != nil || d < 1 {
						fmt.Fprintln(out, "info string Malformed go command option; could not convert depth")
						continue
					}
					searchOpts.Depth = d
				default:
					fmt.Fprintln(out, "info string Unknown go subcommand", tokens[i])
				}
			}
			res, ok := engine.NewSearcher(searchOpts).Search(state, state.Turn())
			if !ok {
				fmt.Fprintln(out, "bestmove (none)")
				continue
			}
			fmt.Fprintln(out, "bestmove", formatMove(res.Move))
		case "setoption":
			if err := setOption(&opts, tokens[1:]); err != nil {
				fmt.Fprintln(out, "info string", err)
			}
		case "legal":
			moves := state.LegalMoves()
			names := make([]string, 0, len(moves))
			for _, m := range moves {
				names = append(names, m.String())
			}
			fmt.Fprintln(out, "legal", strings.Join(names, " "))
		case "layout":
			fmt.Fprintln(out, "layout", state.Layout())
		case "fen":
			fmt.Fprintln(out, "fen", state.FEN())
		default:
			fmt.Fprintln(out, "info string Unknown command:", line)
		}
	}
}

// parsePosition handles "startpos", "layout <l>" and "fen <fen>", each
// optionally followed by "moves" and a list of coordinate moves.
func parsePosition(tokens []string) (*board.State, error) {
	if len(tokens) == 0 {
		return nil, errors.New("malformed position command")
	}
	var state *board.State
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		state = board.NewGame()
	case "layout":
		if len(rest) == 0 {
			return nil, errors.New("malformed position command")
		}
		state = board.Initialize(rest[0])
		rest = rest[1:]
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		s, err := board.ParseFEN(strings.Join(fields, " "))
		if err != nil {
			return nil, err
		}
		state = s
	default:
		return nil, fmt.Errorf("invalid position subcommand %q", tokens[0])
	}

	if len(rest) == 0 {
		return state, nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return nil, fmt.Errorf("invalid position subcommand %q", rest[0])
	}
	for _, moveStr := range rest[1:] {
		if err := playCoordinate(state, strings.ToLower(moveStr)); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func playCoordinate(state *board.State, moveStr string) error {
	for _, m := range state.LegalMoves() {
		if m.String() == moveStr {
			state.MakeMove(m)
			return nil
		}
	}
	return fmt.Errorf("move %s not found for position %s: %w", moveStr, state.FEN(), board.ErrIllegalMove)
}

func setOption(opts *engine.Options, tokens []string) error {
	// setoption name <name> value <value>
	if len(tokens) != 4 || strings.ToLower(tokens[0]) != "name" || strings.ToLower(tokens[2]) != "value" {
		return errors.New("malformed setoption command")
	}
	value := strings.ToLower(tokens[3])
	switch strings.ToLower(tokens[1]) {
	case "depth":
		d, err := strconv.Atoi(value)
		if err != nil || d < 1 {
			return fmt.Errorf("invalid depth %q", tokens[3])
		}
		opts.Depth = d
	case "tiebreak":
		tb, ok := engine.ParseTieBreak(value)
		if !ok {
			return fmt.Errorf("invalid tiebreak %q", tokens[3])
		}
		opts.TieBreak = tb
	default:
		return fmt.Errorf("unknown option %q", tokens[1])
	}
	return nil
}

func formatMove(m board.Move) string {
	s := fmt.Sprintf("%d,%d %d,%d", m.From.Row, m.From.Col, m.To.Row, m.To.Col)
	if m.Promotion != board.PieceTypeNone {
		s += " " + strings.ToLower(board.PieceFromType(board.White, m.Promotion).String())
	}
	return s
}

func reportStatus(out io.Writer, state *board.State) {
	switch {
	case state.Checkmate():
		fmt.Fprintln(out, "info string checkmate,", state.Turn().Other(), "wins")
	case state.Stalemate():
		fmt.Fprintln(out, "info string stalemate")
	case state.InCheck():
		fmt.Fprintln(out, "info string check")
	}
}
