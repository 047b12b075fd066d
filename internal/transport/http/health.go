package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connectfour/internal/service/game"
)

func HealthHandler(sm *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sm.Count()})
	}
}
