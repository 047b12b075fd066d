package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/service/game"
	"github.com/iamasit07/connectfour/pkg/uid"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler runs hot-seat games over WebSocket: one connection drives both
// players of at most one session at a time.
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		log.Printf("[WS] Origin '%s' not in allowed list", origin)
		return false
	}
}

// HandleWebSocket upgrades the request and serves the connection until it closes.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(c.Request.Context(), conn)
}

// connState is the per-connection game binding.
type connState struct {
	connID string
	gameID string
}

func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	state := &connState{connID: uid.GenerateConnectionID()}
	h.ConnManager.AddConnection(state.connID, conn)
	log.Printf("[WS] Connection %s opened", state.connID)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go h.keepAlive(state.connID, done)

	defer func() {
		close(done)
		h.dropGame(state)
		h.ConnManager.RemoveConnection(state.connID)
		log.Printf("[WS] Connection %s closed", state.connID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Connection %s dropped unexpectedly: %v", state.connID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.send(state, ServerMessage{Type: "error", Code: CodeBadRequest, Message: "invalid JSON"})
			continue
		}

		h.processMessage(ctx, state, msg)
	}
}

func (h *Handler) keepAlive(connID string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(connID); err != nil {
				return
			}
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, state *connState, msg ClientMessage) {
	switch msg.Type {
	case "new_game":
		h.dropGame(state)

		gs, err := h.SessionManager.CreateSession(ctx, msg.Player1, msg.Player2, domain.Options{
			Rows:    msg.Rows,
			Columns: msg.Columns,
			ToWin:   msg.ToWin,
		})
		if err != nil {
			h.send(state, errorMessage(err))
			return
		}
		state.gameID = gs.GameID
		h.send(state, stateMessage("game_start", gs.Snapshot()))

	case "make_move":
		if state.gameID == "" {
			h.send(state, ServerMessage{Type: "error", Code: CodeNoGame, Message: "no game in progress"})
			return
		}
		if msg.Column == nil {
			h.send(state, ServerMessage{Type: "error", Code: CodeBadRequest, Message: "make_move needs a column"})
			return
		}
		h.handleMove(ctx, state, *msg.Column)

	case "abandon_game":
		if state.gameID == "" {
			h.send(state, ServerMessage{Type: "error", Code: CodeNoGame, Message: "no game in progress"})
			return
		}
		gameID := state.gameID
		h.dropGame(state)
		h.send(state, ServerMessage{Type: "game_abandoned", GameID: gameID})

	default:
		h.send(state, ServerMessage{Type: "error", Code: CodeBadRequest, Message: "unknown message type: " + msg.Type})
	}
}

func (h *Handler) handleMove(ctx context.Context, state *connState, column int) {
	gs, exists := h.SessionManager.GetSession(state.gameID)
	if !exists {
		// expired by the cleanup worker
		state.gameID = ""
		h.send(state, ServerMessage{Type: "error", Code: CodeNoGame, Message: "game expired"})
		return
	}

	outcome, err := gs.HandleMove(ctx, column)
	if err != nil {
		h.send(state, errorMessage(err))
		return
	}

	snap := gs.Snapshot()
	moveMsg := stateMessage("move_made", snap)
	moveMsg.Move = movePayload(outcome)
	h.send(state, moveMsg)

	switch {
	case outcome.Result == domain.ResultWin:
		over := stateMessage("game_over", snap)
		over.Winner = outcome.Player.Name
		over.Reason = "connect_four"
		over.Move = movePayload(outcome)
		h.send(state, over)
	case outcome.BoardFull:
		over := stateMessage("game_over", snap)
		over.Reason = "board_full"
		h.send(state, over)
	}
}

// dropGame forgets the connection's current game and removes unfinished
// sessions; won games stay listed until the cleanup worker expires them.
func (h *Handler) dropGame(state *connState) {
	if state.gameID == "" {
		return
	}
	gs, exists := h.SessionManager.GetSession(state.gameID)
	if exists && !gs.IsOver() {
		if err := h.SessionManager.RemoveSession(state.gameID); err != nil {
			log.Printf("[WS] Removing game %s: %v", state.gameID, err)
		}
	}
	state.gameID = ""
}

func (h *Handler) send(state *connState, msg ServerMessage) {
	if err := h.ConnManager.SendMessage(state.connID, msg); err != nil {
		log.Printf("[WS] Send to %s failed: %v", state.connID, err)
	}
}
