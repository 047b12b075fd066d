package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connectfour/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

type liveGameResponse struct {
	GameID        string `json:"gameId"`
	Player1       string `json:"player1"`
	Player2       string `json:"player2"`
	CurrentPlayer string `json:"currentPlayer"`
	MoveCount     int    `json:"moveCount"`
	StartedAt     string `json:"startedAt"`
}

// GetLiveGames returns all unfinished games, oldest first
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	activeGames := h.SessionManager.GetActiveGames()

	response := make([]liveGameResponse, 0, len(activeGames))
	for _, g := range activeGames {
		response = append(response, liveGameResponse{
			GameID:        g.GameID,
			Player1:       g.Player1,
			Player2:       g.Player2,
			CurrentPlayer: g.CurrentPlayer,
			MoveCount:     g.MoveCount,
			StartedAt:     g.StartedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetGame returns the full read-only state of one game, finished or not
func (h *WatchHandler) GetGame(c *gin.Context) {
	session, exists := h.SessionManager.GetSession(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}
