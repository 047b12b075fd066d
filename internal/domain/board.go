package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Position identifies a square. Row 0 is the top of the board.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// BoardView is the read-only surface of a Board.
type BoardView interface {
	Rows() int
	Columns() int
	Cell(pos Position) (Cell, error)
	Grid(empty int) [][]int
	Render(empty int) string
	IsFull() bool
	ValidColumns() []int
	Runs(pos Position) ([4]Run, error)
	LongestRun(pos Position) (Run, error)
}

// Board is a gravity-fed grid of cells. PlaceToken is the only mutator.
type Board struct {
	rows    int
	columns int
	cells   [][]Cell
}

func NewBoard(rows, columns int) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, ErrInvalidDimensions
	}

	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, columns)
	}
	return &Board{rows: rows, columns: columns, cells: cells}, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Columns() int { return b.columns }

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

func (b *Board) Cell(pos Position) (Cell, error) {
	if !b.inBounds(pos.Row, pos.Column) {
		return Empty, ErrOutOfBounds
	}
	return b.cells[pos.Row][pos.Column], nil
}

// PlaceToken drops cell into column and returns where it landed.
func (b *Board) PlaceToken(column int, cell Cell) (Position, error) {
	if column < 0 || column >= b.columns {
		return Position{}, fmt.Errorf("%w: %d is not between 0 and %d", ErrInvalidColumn, column, b.columns-1)
	}
	if !cell.isPlayer() {
		return Position{}, ErrInvalidCell
	}

	// scanning from the bottom row (rows-1) up to the top row (0)
	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			b.cells[row][column] = cell
			return Position{Row: row, Column: column}, nil
		}
	}

	return Position{}, fmt.Errorf("%w: column %d", ErrColumnFull, column)
}

// IsFull reports whether no column can take another token.
func (b *Board) IsFull() bool {
	for c := 0; c < b.columns; c++ {
		if b.cells[0][c] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) ValidColumns() []int {
	valid := []int{}
	for c := 0; c < b.columns; c++ {
		if b.cells[0][c] == Empty {
			valid = append(valid, c)
		}
	}
	return valid
}

// Grid returns a deep copy of the board as raw markers.
func (b *Board) Grid(empty int) [][]int {
	grid := make([][]int, b.rows)
	for r := range b.cells {
		grid[r] = make([]int, b.columns)
		for c, cell := range b.cells[r] {
			grid[r][c] = cell.Marker(empty)
		}
	}
	return grid
}

// Render formats every row top to bottom, a separator line and the
// column labels:
//
//	| 0 | 0 | 0 |
//	| 1 | 2 | 0 |
//	_____________
//	| 0 | 1 | 2 |
func (b *Board) Render(empty int) string {
	var sb strings.Builder

	for _, row := range b.cells {
		values := make([]string, len(row))
		for c, cell := range row {
			values[c] = strconv.Itoa(cell.Marker(empty))
		}
		writeRow(&sb, values)
	}

	seps := make([]string, b.columns)
	for c := range seps {
		seps[c] = "_"
	}
	sb.WriteString("__")
	sb.WriteString(strings.Join(seps, "___"))
	sb.WriteString("__\n")

	labels := make([]string, b.columns)
	for c := range labels {
		labels[c] = strconv.Itoa(c)
	}
	writeRow(&sb, labels)

	return sb.String()
}

func writeRow(sb *strings.Builder, values []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(values, " | "))
	sb.WriteString(" |\n")
}
