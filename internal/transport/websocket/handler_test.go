package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/service/game"
)

func col(c int) *int { return &c }

func newTestServer(t *testing.T) (*httptest.Server, *game.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := game.NewSessionManager(game.ManagerConfig{
		Defaults:    domain.Options{Rows: 6, Columns: 7, ToWin: 4},
		FinishedTTL: time.Hour,
		IdleTTL:     time.Hour,
	})
	h := NewHandler(NewConnectionManager(), sm, []string{"http://allowed.example"})

	router := gin.New()
	router.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, sm
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg ClientMessage) ServerMessage {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write error: %v", err)
	}
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply ServerMessage
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read error: %v", err)
	}
	return reply
}

func TestHotSeatGameToVerticalWin(t *testing.T) {
	srv, sm := newTestServer(t)
	conn := dial(t, srv, nil)

	start := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada", Player2: "Grace"})
	if start.Type != "game_start" || start.GameID == "" {
		t.Fatalf("start = %+v, want game_start", start)
	}
	if start.CurrentPlayer != "Ada" || len(start.Board) != 6 || len(start.Board[0]) != 7 {
		t.Fatalf("unexpected start state: %+v", start)
	}

	for _, column := range []int{0, 1, 0, 1, 0, 1} {
		reply := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(column)})
		if reply.Type != "move_made" || reply.Move == nil || reply.Move.Column != column {
			t.Fatalf("move %d reply = %+v", column, reply)
		}
	}

	moved := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(0)})
	if moved.Type != "move_made" || moved.Move.Row != 2 {
		t.Fatalf("winning move reply = %+v", moved)
	}
	over := read(t, conn)
	if over.Type != "game_over" || over.Winner != "Ada" || over.Reason != "connect_four" {
		t.Fatalf("game over = %+v", over)
	}
	if over.Move == nil || over.Move.Axis != domain.AxisVertical.String() || over.Move.RunLength < 4 {
		t.Fatalf("winning run = %+v, want vertical >= 4", over.Move)
	}

	after := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(3)})
	if after.Type != "error" || after.Code != CodeGameOver {
		t.Fatalf("move after win = %+v, want game_over error", after)
	}

	if _, ok := sm.GetSession(start.GameID); !ok {
		t.Fatalf("won session removed before cleanup")
	}
}

func TestMoveErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, nil)

	noGame := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(0)})
	if noGame.Code != CodeNoGame {
		t.Fatalf("reply = %+v, want no_game", noGame)
	}

	badName := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada"})
	if badName.Type != "error" || badName.Code != CodeBadRequest {
		t.Fatalf("reply = %+v, want bad_request", badName)
	}

	start := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada", Player2: "Grace", Rows: 1, Columns: 2})
	if start.Type != "game_start" {
		t.Fatalf("start = %+v", start)
	}

	invalid := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(9)})
	if invalid.Code != CodeInvalidColumn {
		t.Fatalf("reply = %+v, want invalid_column", invalid)
	}

	if reply := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(0)}); reply.Type != "move_made" {
		t.Fatalf("reply = %+v, want move_made", reply)
	}
	full := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(0)})
	if full.Code != CodeColumnFull {
		t.Fatalf("reply = %+v, want column_full", full)
	}
	if full.Type != "error" {
		t.Fatalf("reply type = %q, want error", full.Type)
	}

	unknown := roundTrip(t, conn, ClientMessage{Type: "dance"})
	if unknown.Code != CodeBadRequest {
		t.Fatalf("reply = %+v, want bad_request", unknown)
	}
}

func TestBoardFullEndsGame(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, nil)

	roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada", Player2: "Grace", Rows: 1, Columns: 2, ToWin: 3})
	roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(0)})
	if reply := roundTrip(t, conn, ClientMessage{Type: "make_move", Column: col(1)}); reply.Type != "move_made" {
		t.Fatalf("reply = %+v, want move_made", reply)
	}
	over := read(t, conn)
	if over.Type != "game_over" || over.Reason != "board_full" || over.Winner != "" {
		t.Fatalf("game over = %+v, want board_full draw", over)
	}
}

func TestAbandonAndDisconnectRemoveSession(t *testing.T) {
	srv, sm := newTestServer(t)
	conn := dial(t, srv, nil)

	first := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada", Player2: "Grace"})
	abandoned := roundTrip(t, conn, ClientMessage{Type: "abandon_game"})
	if abandoned.Type != "game_abandoned" || abandoned.GameID != first.GameID {
		t.Fatalf("reply = %+v, want game_abandoned", abandoned)
	}
	if _, ok := sm.GetSession(first.GameID); ok {
		t.Fatalf("abandoned session still registered")
	}

	second := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada", Player2: "Grace"})
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := sm.GetSession(second.GameID); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("session %s survived disconnect", second.GameID)
}

func TestRejectsUnknownOrigin(t *testing.T) {
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	header := http.Header{"Origin": []string{"http://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Fatalf("dial from unknown origin succeeded")
	}

	dial(t, srv, http.Header{"Origin": []string{"http://allowed.example"}})
}

func TestMoveWithoutColumnIsRejected(t *testing.T) {
	srv, sm := newTestServer(t)
	conn := dial(t, srv, nil)

	start := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "Ada", Player2: "Grace"})
	reply := roundTrip(t, conn, ClientMessage{Type: "make_move"})
	if reply.Type != "error" || reply.Code != CodeBadRequest {
		t.Fatalf("reply = %+v, want bad_request", reply)
	}

	gs, ok := sm.GetSession(start.GameID)
	if !ok {
		t.Fatalf("session %s missing", start.GameID)
	}
	if snap := gs.Snapshot(); snap.MoveCount != 0 {
		t.Fatalf("MoveCount = %d, want 0 after a move without a column", snap.MoveCount)
	}
}

func TestOversizeBoardIsRejected(t *testing.T) {
	srv, sm := newTestServer(t)
	conn := dial(t, srv, nil)

	for _, msg := range []ClientMessage{
		{Type: "new_game", Player1: "a", Player2: "b", Rows: 1099511627776, Columns: 1},
		{Type: "new_game", Player1: "a", Player2: "b", Rows: 1, Columns: 1 << 40},
		{Type: "new_game", Player1: "a", Player2: "b", Rows: game.DefaultMaxRows + 1},
	} {
		reply := roundTrip(t, conn, msg)
		if reply.Type != "error" || reply.Code != CodeBadRequest {
			t.Fatalf("reply to %dx%d = %+v, want bad_request", msg.Rows, msg.Columns, reply)
		}
	}
	if sm.Count() != 0 {
		t.Fatalf("oversize boards registered %d sessions", sm.Count())
	}

	if reply := roundTrip(t, conn, ClientMessage{Type: "new_game", Player1: "a", Player2: "b"}); reply.Type != "game_start" {
		t.Fatalf("reply = %+v, want game_start after rejected sizes", reply)
	}
}
