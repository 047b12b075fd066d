package domain

import (
	"errors"
	"testing"
)

type tokenDrop struct {
	column int
	cell   Cell
}

func place(t *testing.T, b *Board, column int, cell Cell) Position {
	t.Helper()
	pos, err := b.PlaceToken(column, cell)
	if err != nil {
		t.Fatalf("PlaceToken(%d, %v) error: %v", column, cell, err)
	}
	return pos
}

func TestRunsIsolatedToken(t *testing.T) {
	b := mustBoard(t, 6, 7)
	place(t, b, 0, Player2)
	place(t, b, 2, Player2)
	pos := place(t, b, 1, Player1)

	runs, err := b.Runs(pos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range runs {
		if r.Length != 1 {
			t.Fatalf("axis %v length = %d, want 1", r.Axis, r.Length)
		}
		if r.Axis != Axis(i) {
			t.Fatalf("runs[%d].Axis = %v, want %v", i, r.Axis, Axis(i))
		}
	}
}

func TestRunsAxisOrder(t *testing.T) {
	b := mustBoard(t, 6, 7)
	pos := place(t, b, 3, Player1)
	runs, err := b.Runs(pos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Axis{AxisVertical, AxisHorizontal, AxisForwardDiagonal, AxisBackwardDiagonal}
	for i, a := range want {
		if runs[i].Axis != a {
			t.Fatalf("runs[%d].Axis = %v, want %v", i, runs[i].Axis, a)
		}
	}
}

func TestRunsPerAxis(t *testing.T) {
	tests := []struct {
		name   string
		moves  []tokenDrop
		origin Position
		axis   Axis
		want   int
	}{
		{
			name: "vertical three",
			moves: []tokenDrop{
				{0, Player1}, {0, Player1}, {0, Player1},
			},
			origin: Position{Row: 4, Column: 0},
			axis:   AxisVertical,
			want:   3,
		},
		{
			name: "horizontal counts both sides of origin",
			moves: []tokenDrop{
				{1, Player2}, {2, Player2}, {3, Player2}, {4, Player2}, {5, Player1},
			},
			origin: Position{Row: 5, Column: 2},
			axis:   AxisHorizontal,
			want:   4,
		},
		{
			name: "horizontal stops at opponent",
			moves: []tokenDrop{
				{0, Player1}, {1, Player2}, {2, Player1}, {3, Player1},
			},
			origin: Position{Row: 5, Column: 3},
			axis:   AxisHorizontal,
			want:   2,
		},
		{
			name: "backward diagonal",
			moves: []tokenDrop{
				{0, Player2}, {0, Player2}, {0, Player1},
				{1, Player2}, {1, Player1},
				{2, Player1},
			},
			origin: Position{Row: 4, Column: 1},
			axis:   AxisBackwardDiagonal,
			want:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, 6, 7)
			for _, m := range tt.moves {
				place(t, b, m.column, m.cell)
			}
			runs, err := b.Runs(tt.origin)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := runs[tt.axis].Length; got != tt.want {
				t.Fatalf("%v run = %d, want %d (runs %+v)", tt.axis, got, tt.want, runs)
			}
		})
	}
}

func TestRunsDiagonalScenario(t *testing.T) {
	b := mustBoard(t, 6, 7)
	// supporting tokens for player 2 lift player 1 onto (5,0),(4,1),(3,2),(2,3)
	place(t, b, 0, Player1)
	place(t, b, 1, Player2)
	place(t, b, 1, Player1)
	place(t, b, 2, Player2)
	place(t, b, 2, Player2)
	place(t, b, 2, Player1)
	place(t, b, 3, Player2)
	place(t, b, 3, Player2)
	place(t, b, 3, Player2)
	last := place(t, b, 3, Player1)

	if last != (Position{Row: 2, Column: 3}) {
		t.Fatalf("last token at %+v, want (2,3)", last)
	}

	runs, err := b.Runs(last)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs[AxisForwardDiagonal].Length != 4 {
		t.Fatalf("forward diagonal run = %d, want 4", runs[AxisForwardDiagonal].Length)
	}

	longestRun, err := b.LongestRun(last)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if longestRun.Axis != AxisForwardDiagonal || longestRun.Length != 4 {
		t.Fatalf("LongestRun() = %+v, want forward diagonal of 4", longestRun)
	}
}

func TestLongestRunTieGoesToEarlierAxis(t *testing.T) {
	b := mustBoard(t, 6, 7)
	place(t, b, 0, Player1)
	pos := place(t, b, 0, Player1)
	place(t, b, 1, Player2)
	place(t, b, 1, Player1)

	got, err := b.LongestRun(pos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Run{Axis: AxisVertical, Length: 2}) {
		t.Fatalf("LongestRun() = %+v, want vertical 2", got)
	}
}

func TestRunsErrors(t *testing.T) {
	b := mustBoard(t, 6, 7)
	if _, err := b.Runs(Position{Row: 5, Column: 0}); !errors.Is(err, ErrEmptyCell) {
		t.Fatalf("error = %v, want ErrEmptyCell", err)
	}
	if _, err := b.Runs(Position{Row: 6, Column: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("error = %v, want ErrOutOfBounds", err)
	}
}
