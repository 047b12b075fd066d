package websocket

import (
	"errors"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/service/game"
)

type ClientMessage struct {
	Type    string `json:"type"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	Columns int    `json:"columns,omitempty"`
	ToWin   int    `json:"toWin,omitempty"`
	Column  *int   `json:"column,omitempty"`
}

type MovePayload struct {
	Column    int    `json:"column"`
	Row       int    `json:"row"`
	Player    int    `json:"player"`
	Name      string `json:"name"`
	Axis      string `json:"axis"`
	RunLength int    `json:"runLength"`
}

type ServerMessage struct {
	Type          string       `json:"type"`
	Code          string       `json:"code,omitempty"`
	Message       string       `json:"message,omitempty"`
	GameID        string       `json:"gameId,omitempty"`
	Player1       string       `json:"player1,omitempty"`
	Player2       string       `json:"player2,omitempty"`
	CurrentPlayer string       `json:"currentPlayer,omitempty"`
	CurrentTurn   int          `json:"currentTurn,omitempty"`
	ToWin         int          `json:"toWin,omitempty"`
	Move          *MovePayload `json:"move,omitempty"`
	Board         [][]int      `json:"board,omitempty"`
	Render        string       `json:"render,omitempty"`
	Winner        string       `json:"winner,omitempty"`
	Reason        string       `json:"reason,omitempty"`
}

// error codes sent to clients
const (
	CodeInvalidColumn = "invalid_column"
	CodeColumnFull    = "column_full"
	CodeGameOver      = "game_over"
	CodeNoGame        = "no_game"
	CodeBadRequest    = "bad_request"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidColumn):
		return CodeInvalidColumn
	case errors.Is(err, domain.ErrColumnFull):
		return CodeColumnFull
	case errors.Is(err, domain.ErrGameOver):
		return CodeGameOver
	case errors.Is(err, game.ErrSessionNotFound):
		return CodeNoGame
	}
	return CodeBadRequest
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: "error", Code: errorCode(err), Message: err.Error()}
}

func stateMessage(msgType string, snap game.Snapshot) ServerMessage {
	return ServerMessage{
		Type:          msgType,
		GameID:        snap.GameID,
		Player1:       snap.Player1,
		Player2:       snap.Player2,
		CurrentPlayer: snap.CurrentPlayer,
		CurrentTurn:   snap.CurrentTurn,
		ToWin:         snap.ToWin,
		Board:         snap.Board,
		Render:        snap.Render,
	}
}

func movePayload(outcome domain.TurnOutcome) *MovePayload {
	return &MovePayload{
		Column:    outcome.Position.Column,
		Row:       outcome.Position.Row,
		Player:    int(outcome.Player.Cell),
		Name:      outcome.Player.Name,
		Axis:      outcome.Longest.Axis.String(),
		RunLength: outcome.Longest.Length,
	}
}
