package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a time,
	// conn.WriteJSON is not safe for concurrent use.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a new connection and initializes its write lock
func (cm *ConnectionManager) AddConnection(connID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.connections[connID] = conn
	cm.writeMu[connID] = &sync.Mutex{}
}

// RemoveConnection closes a connection and cleans up its lock
func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[connID]; exists {
		conn.Close()
		delete(cm.connections, connID)
		delete(cm.writeMu, connID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage sends a JSON message to a specific connection
func (cm *ConnectionManager) SendMessage(connID string, message ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[connID]
	mu, muExists := cm.writeMu[connID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // disconnected, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// Ping writes a ping control frame under the connection's write lock.
func (cm *ConnectionManager) Ping(connID string) error {
	cm.mu.RLock()
	conn, exists := cm.connections[connID]
	mu, muExists := cm.writeMu[connID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// CloseAll notifies every client with reason and closes the sockets.
func (cm *ConnectionManager) CloseAll(reason string) {
	cm.mu.RLock()
	ids := make([]string, 0, len(cm.connections))
	for id := range cm.connections {
		ids = append(ids, id)
	}
	cm.mu.RUnlock()

	for _, id := range ids {
		_ = cm.SendMessage(id, ServerMessage{Type: "force_disconnect", Message: reason})
		cm.RemoveConnection(id)
	}
}
