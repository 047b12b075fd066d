package cleanup

import (
	"context"
	"log"
	"time"
)

// Cleaner drops stale sessions and reports how many it removed.
type Cleaner interface {
	CleanupOldSessions(now time.Time) int
}

type Worker struct {
	Sessions Cleaner
	Interval time.Duration
	now      func() time.Time
}

func NewWorker(sessions Cleaner, interval time.Duration) *Worker {
	return &Worker{Sessions: sessions, Interval: interval, now: time.Now}
}

// Start runs one cleanup immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) run(ctx context.Context) {
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() {
	if removed := w.Sessions.CleanupOldSessions(w.now()); removed > 0 {
		log.Printf("[CLEANUP] Removed %d expired game sessions", removed)
	}
}
