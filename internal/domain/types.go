package domain

// Cell is the content of a single board square.
type Cell int

const (
	Empty   Cell = 0
	Player1 Cell = 1
	Player2 Cell = 2
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "unknown"
}

// Marker returns the raw integer used for c in grids and renders.
// Players always map to 1 and 2, empty squares map to the given sentinel.
func (c Cell) Marker(empty int) int {
	if c == Empty {
		return empty
	}
	return int(c)
}

// Opponent returns the other player's cell. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (c Cell) isPlayer() bool {
	return c == Player1 || c == Player2
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	DefaultToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrColumnFull        Error = "column is full"
	ErrGameOver          Error = "game is over"
	ErrInvalidDimensions Error = "board dimensions must be positive"
	ErrInvalidToWin      Error = "run length to win must be positive"
	ErrInvalidPlayerName Error = "player name must not be empty"
	ErrInvalidCell       Error = "cannot place an empty token"
	ErrOutOfBounds       Error = "position is outside the board"
	ErrEmptyCell         Error = "no token at position"
)
