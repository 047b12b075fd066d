package http

import (
	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connectfour/internal/service/game"
	"github.com/iamasit07/connectfour/internal/transport/http/middleware"
)

// NewRouter wires the HTTP API. ws serves the websocket upgrade route.
func NewRouter(sm *game.SessionManager, allowedOrigins []string, ws gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	watchHandler := NewWatchHandler(sm)

	router.GET("/healthz", HealthHandler(sm))
	router.GET("/api/watch", watchHandler.GetLiveGames)
	router.GET("/api/watch/:id", watchHandler.GetGame)

	if ws != nil {
		router.GET("/ws", ws)
	}
	return router
}
