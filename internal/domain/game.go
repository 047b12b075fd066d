package domain

import "strings"

// Player is one of the two participants of a session.
type Player struct {
	Cell Cell   `json:"cell"`
	Name string `json:"name"`
}

// Options configures a session. Zero fields take the defaults.
type Options struct {
	Rows    int
	Columns int
	ToWin   int
}

func (o Options) withDefaults() (Options, error) {
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.ToWin == 0 {
		o.ToWin = DefaultToWin
	}
	if o.Rows < 0 || o.Columns < 0 {
		return o, ErrInvalidDimensions
	}
	if o.ToWin < 0 {
		return o, ErrInvalidToWin
	}
	return o, nil
}

type Result string

const (
	ResultContinue Result = "continue"
	ResultWin      Result = "win"
)

// TurnOutcome describes an accepted move.
type TurnOutcome struct {
	Result   Result
	Player   Player
	Position Position
	Runs     [4]Run
	// Longest is the longest of Runs; on a win it is the winning run.
	Longest Run
	// BoardFull is set when no column accepts another token after this move.
	BoardFull bool
	// Next is the player to move after this turn. It equals Player on a win.
	Next Player
}

// Session is a single game between two players. It is not safe for
// concurrent use; hosts serialize calls per session.
type Session struct {
	board     *Board
	players   [2]Player
	current   int
	toWin     int
	status    GameStatus
	moveCount int
}

func NewSession(player1Name, player2Name string, opts Options) (*Session, error) {
	player1Name = strings.TrimSpace(player1Name)
	player2Name = strings.TrimSpace(player2Name)
	if player1Name == "" || player2Name == "" {
		return nil, ErrInvalidPlayerName
	}

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	board, err := NewBoard(opts.Rows, opts.Columns)
	if err != nil {
		return nil, err
	}

	return &Session{
		board: board,
		players: [2]Player{
			{Cell: Player1, Name: player1Name},
			{Cell: Player2, Name: player2Name},
		},
		current: 0,
		toWin:   opts.ToWin,
		status:  StatusInProgress,
	}, nil
}

func (s *Session) CurrentPlayer() Player {
	return s.players[s.current]
}

func (s *Session) Players() [2]Player {
	return s.players
}

func (s *Session) ToWin() int {
	return s.toWin
}

func (s *Session) Status() GameStatus {
	return s.status
}

func (s *Session) IsOver() bool {
	return s.status == StatusWon
}

// Winner returns the winning player once the session is won.
func (s *Session) Winner() (Player, bool) {
	if s.status != StatusWon {
		return Player{}, false
	}
	return s.players[s.current], true
}

func (s *Session) MoveCount() int {
	return s.moveCount
}

func (s *Session) Board() BoardView {
	return s.board
}

// SubmitMove plays the current player's token into column. Rejected moves
// leave the board and the turn untouched.
func (s *Session) SubmitMove(column int) (TurnOutcome, error) {
	if s.status == StatusWon {
		return TurnOutcome{}, ErrGameOver
	}

	player := s.CurrentPlayer()
	pos, err := s.board.PlaceToken(column, player.Cell)
	if err != nil {
		return TurnOutcome{}, err
	}
	s.moveCount++

	// only the lines through the new token can have changed
	runs, err := s.board.Runs(pos)
	if err != nil {
		return TurnOutcome{}, err
	}

	outcome := TurnOutcome{
		Result:    ResultContinue,
		Player:    player,
		Position:  pos,
		Runs:      runs,
		Longest:   longest(runs),
		BoardFull: s.board.IsFull(),
	}

	if outcome.Longest.Length >= s.toWin {
		s.status = StatusWon
		outcome.Result = ResultWin
		outcome.Next = player
		return outcome, nil
	}

	s.current = 1 - s.current
	outcome.Next = s.CurrentPlayer()
	return outcome, nil
}
