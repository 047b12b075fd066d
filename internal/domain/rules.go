package domain

// Axis is one of the four lines a run can lie on.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
	// AxisForwardDiagonal runs bottom-left to top-right (/).
	AxisForwardDiagonal
	// AxisBackwardDiagonal runs top-left to bottom-right (\).
	AxisBackwardDiagonal
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	case AxisForwardDiagonal:
		return "forward_diagonal"
	case AxisBackwardDiagonal:
		return "backward_diagonal"
	}
	return "unknown"
}

type direction struct {
	deltaRow int
	deltaCol int
}

// axes are walked in this order; ties in LongestRun go to the earlier axis.
var axes = [4]struct {
	axis       Axis
	directions [2]direction
}{
	{AxisVertical, [2]direction{{-1, 0}, {1, 0}}},
	{AxisHorizontal, [2]direction{{0, 1}, {0, -1}}},
	{AxisForwardDiagonal, [2]direction{{-1, 1}, {1, -1}}},
	{AxisBackwardDiagonal, [2]direction{{-1, -1}, {1, 1}}},
}

// Run is the number of contiguous same-owner tokens through a position on one axis.
type Run struct {
	Axis   Axis `json:"axis"`
	Length int  `json:"length"`
}

// Runs counts, for every axis, the origin plus the matching tokens on both
// sides of pos. Each side stops at the first mismatch or the board edge.
func (b *Board) Runs(pos Position) ([4]Run, error) {
	var runs [4]Run

	cell, err := b.Cell(pos)
	if err != nil {
		return runs, err
	}
	if cell == Empty {
		return runs, ErrEmptyCell
	}

	for i, a := range axes {
		length := 1
		for _, d := range a.directions {
			length += b.countInDirection(pos, d, cell)
		}
		runs[i] = Run{Axis: a.axis, Length: length}
	}
	return runs, nil
}

// LongestRun is the maximum of Runs.
func (b *Board) LongestRun(pos Position) (Run, error) {
	runs, err := b.Runs(pos)
	if err != nil {
		return Run{}, err
	}
	return longest(runs), nil
}

func longest(runs [4]Run) Run {
	best := runs[0]
	for _, r := range runs[1:] {
		if r.Length > best.Length {
			best = r
		}
	}
	return best
}

// this counts the number of tokens in a specific direction, origin excluded
func (b *Board) countInDirection(pos Position, d direction, cell Cell) int {
	count := 0
	r, c := pos.Row+d.deltaRow, pos.Column+d.deltaCol
	for b.inBounds(r, c) && b.cells[r][c] == cell {
		count++
		r += d.deltaRow
		c += d.deltaCol
	}
	return count
}
