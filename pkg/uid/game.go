package uid

import "github.com/google/uuid"

// GenerateGameID returns a random identifier for a hosted game.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateConnectionID returns a random identifier for a websocket connection.
func GenerateConnectionID() string {
	return "conn_" + uuid.NewString()
}
