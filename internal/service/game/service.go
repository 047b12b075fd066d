package game

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/pkg/uid"
)

const tracerName = "github.com/iamasit07/connectfour/internal/service/game"

const (
	// ErrSessionNotFound is returned for unknown game IDs.
	ErrSessionNotFound domain.Error = "session not found"
	ErrBoardTooLarge   domain.Error = "board exceeds the maximum size"
)

// limits used when ManagerConfig leaves MaxRows or MaxColumns at zero
const (
	DefaultMaxRows    = 64
	DefaultMaxColumns = 64
)

type ManagerConfig struct {
	// Defaults fill zero fields of the options given to CreateSession.
	Defaults    domain.Options
	MaxRows     int
	MaxColumns  int
	EmptyMarker int
	FinishedTTL time.Duration
	IdleTTL     time.Duration
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	cfg      ManagerConfig
	tracer   trace.Tracer
	now      func() time.Time
}

func NewSessionManager(cfg ManagerConfig) *SessionManager {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultMaxRows
	}
	if cfg.MaxColumns <= 0 {
		cfg.MaxColumns = DefaultMaxColumns
	}
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		cfg:      cfg,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
}

func (sm *SessionManager) EmptyMarker() int {
	return sm.cfg.EmptyMarker
}

func (sm *SessionManager) CreateSession(ctx context.Context, player1Name, player2Name string, opts domain.Options) (*GameSession, error) {
	opts = sm.withDefaults(opts)

	_, span := sm.tracer.Start(ctx, "connectfour.create_session", trace.WithAttributes(
		attribute.Int("game.rows", opts.Rows),
		attribute.Int("game.columns", opts.Columns),
		attribute.Int("game.to_win", opts.ToWin),
	))
	defer span.End()

	if opts.Rows > sm.cfg.MaxRows || opts.Columns > sm.cfg.MaxColumns {
		span.RecordError(ErrBoardTooLarge)
		return nil, fmt.Errorf("create session: %w: %dx%d, limit %dx%d",
			ErrBoardTooLarge, opts.Rows, opts.Columns, sm.cfg.MaxRows, sm.cfg.MaxColumns)
	}

	player1Name = NormalizeName(player1Name)
	player2Name = NormalizeName(player2Name)

	g, err := domain.NewSession(player1Name, player2Name, opts)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	now := sm.now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		CreatedAt:    now,
		game:         g,
		emptyMarker:  sm.cfg.EmptyMarker,
		lastActivity: now,
		tracer:       sm.tracer,
		now:          sm.now,
	}
	span.SetAttributes(attribute.String("game.id", gs.GameID))

	sm.mu.Lock()
	sm.sessions[gs.GameID] = gs
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s vs %s (%dx%d, %d to win)",
		gs.GameID, player1Name, player2Name, opts.Rows, opts.Columns, opts.ToWin)
	return gs, nil
}

func (sm *SessionManager) withDefaults(opts domain.Options) domain.Options {
	if opts.Rows == 0 {
		opts.Rows = sm.cfg.Defaults.Rows
	}
	if opts.Columns == 0 {
		opts.Columns = sm.cfg.Defaults.Columns
	}
	if opts.ToWin == 0 {
		opts.ToWin = sm.cfg.Defaults.ToWin
	}
	return opts
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

// HandleMove looks up gameID and submits column to it.
func (sm *SessionManager) HandleMove(ctx context.Context, gameID string, column int) (domain.TurnOutcome, error) {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return domain.TurnOutcome{}, ErrSessionNotFound
	}
	return session.HandleMove(ctx, column)
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[gameID]; !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.sessions, gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// GetActiveGames returns snapshots of sessions still being played, oldest
// first. Won games and games on a full board are left out.
func (sm *SessionManager) GetActiveGames() []Snapshot {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	active := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		snap := s.Snapshot()
		if snap.Status == domain.StatusInProgress && !snap.BoardFull {
			active = append(active, snap)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].StartedAt.Equal(active[j].StartedAt) {
			return active[i].GameID < active[j].GameID
		}
		return active[i].StartedAt.Before(active[j].StartedAt)
	})
	return active
}

// CleanupOldSessions drops expired sessions and returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(now time.Time) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	for gameID, session := range sm.sessions {
		if session.expired(now, sm.cfg.FinishedTTL, sm.cfg.IdleTTL) {
			delete(sm.sessions, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}
