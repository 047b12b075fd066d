package game

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iamasit07/connectfour/internal/domain"
)

// GameSession is one hosted game. All access to the underlying
// domain.Session goes through mu, which serializes moves.
type GameSession struct {
	GameID    string
	CreatedAt time.Time

	game         *domain.Session
	emptyMarker  int
	finishedAt   time.Time
	lastActivity time.Time
	tracer       trace.Tracer
	now          func() time.Time
	mu           sync.Mutex
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	GameID        string            `json:"gameId"`
	Player1       string            `json:"player1"`
	Player2       string            `json:"player2"`
	CurrentPlayer string            `json:"currentPlayer"`
	CurrentTurn   int               `json:"currentTurn"`
	Status        domain.GameStatus `json:"status"`
	Winner        string            `json:"winner,omitempty"`
	MoveCount     int               `json:"moveCount"`
	ToWin         int               `json:"toWin"`
	Rows          int               `json:"rows"`
	Columns       int               `json:"columns"`
	BoardFull     bool              `json:"boardFull"`
	Board         [][]int           `json:"board"`
	Render        string            `json:"render"`
	StartedAt     time.Time         `json:"startedAt"`
}

// HandleMove submits column for whoever's turn it is.
func (gs *GameSession) HandleMove(ctx context.Context, column int) (domain.TurnOutcome, error) {
	_, span := gs.tracer.Start(ctx, "connectfour.move", trace.WithAttributes(
		attribute.String("game.id", gs.GameID),
		attribute.Int("game.column", column),
	))
	defer span.End()

	gs.mu.Lock()
	defer gs.mu.Unlock()

	outcome, err := gs.game.SubmitMove(column)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return outcome, err
	}

	gs.lastActivity = gs.now()
	span.SetAttributes(
		attribute.String("game.result", string(outcome.Result)),
		attribute.Int("game.row", outcome.Position.Row),
		attribute.Int("game.run_length", outcome.Longest.Length),
	)

	if outcome.Result == domain.ResultWin || outcome.BoardFull {
		gs.finishedAt = gs.lastActivity
	}
	if outcome.Result == domain.ResultWin {
		log.Printf("[GAME] %s won game %s with a %s run of %d after %d moves",
			outcome.Player.Name, gs.GameID, outcome.Longest.Axis, outcome.Longest.Length, gs.game.MoveCount())
	}

	return outcome, nil
}

func (gs *GameSession) IsOver() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.game.IsOver()
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

// snapshotLocked builds a Snapshot (caller must hold mu)
func (gs *GameSession) snapshotLocked() Snapshot {
	players := gs.game.Players()
	current := gs.game.CurrentPlayer()
	board := gs.game.Board()

	snap := Snapshot{
		GameID:        gs.GameID,
		Player1:       players[0].Name,
		Player2:       players[1].Name,
		CurrentPlayer: current.Name,
		CurrentTurn:   int(current.Cell),
		Status:        gs.game.Status(),
		MoveCount:     gs.game.MoveCount(),
		ToWin:         gs.game.ToWin(),
		Rows:          board.Rows(),
		Columns:       board.Columns(),
		BoardFull:     board.IsFull(),
		Board:         board.Grid(gs.emptyMarker),
		Render:        board.Render(gs.emptyMarker),
		StartedAt:     gs.CreatedAt,
	}
	if winner, ok := gs.game.Winner(); ok {
		snap.Winner = winner.Name
	}
	return snap
}

// expired reports whether a finished session (won or on a full board)
// outlived finishedTTL or an unfinished one sat idle longer than idleTTL.
func (gs *GameSession) expired(now time.Time, finishedTTL, idleTTL time.Duration) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.game.IsOver() || gs.game.Board().IsFull() {
		return now.Sub(gs.finishedAt) > finishedTTL
	}
	return now.Sub(gs.lastActivity) > idleTTL
}
