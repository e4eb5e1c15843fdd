package main

import (
	"bytes"
	"strings"
	"testing"
)

func runLoop(t *testing.T, input string) []string {
	t.Helper()
	var out bytes.Buffer
	commandLoop(strings.NewReader(input), &out)
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestCommandLoopTranscript(t *testing.T) {
	input := strings.Join([]string{
		"position startpos moves f2f3 e7e5 g2g4",
		"fen",
		"setoption name depth value 1",
		"go",
		"MOVE|0,3|4,7|black",
		"go",
		"quit",
		"layout",
	}, "\n")
	lines := runLoop(t, input)

	want := []string{
		"fen rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 1",
		"info depth 1 score mate 1 ",
		"bestmove 0,3 4,7",
		"info string checkmate, black wins",
		"bestmove (none)",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w) {
			t.Errorf("line %d: got %q want prefix %q", i, lines[i], w)
		}
	}
}

func TestCommandLoopReportsErrors(t *testing.T) {
	input := strings.Join([]string{
		"position fen not/a/fen w - -",
		"move 6,4 3,4",
		"MOVE|1,4|3,4|black",
		"setoption name tiebreak value sometimes",
		"frobnicate",
		"layout",
	}, "\n")
	lines := runLoop(t, input)
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	for i, l := range lines[:5] {
		if !strings.HasPrefix(l, "info string ") {
			t.Errorf("line %d: expected an info string, got %q", i, l)
		}
	}
	if lines[5] != "layout rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" {
		t.Fatalf("state changed by rejected commands: %q", lines[5])
	}
}

func TestCommandLoopMoveAndLegal(t *testing.T) {
	input := strings.Join([]string{
		"position layout 7k/P7/8/8/8/8/8/K7",
		"move 1,0 0,0 r",
		"layout",
		"legal",
	}, "\n")
	lines := runLoop(t, input)
	want := []string{
		"info string check",
		"layout R6k/8/8/8/8/8/8/K7",
		"legal h8h7 h8g7",
	}
	if len(lines) != len(want) {
		t.Fatalf("got:\n%s", strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q want %q", i, lines[i], want[i])
		}
	}
}
