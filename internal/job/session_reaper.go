package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// SessionReaper periodically drops sessions that have been idle past their
// TTL. Sessions are transient by design; this just bounds memory.
type SessionReaper struct {
	tracer       trace.Tracer
	sessions     SessionSweeper
	ttl          time.Duration
	pollInterval time.Duration
}

type SessionSweeper interface {
	Reap(ctx context.Context, ttl time.Duration) int
}

func NewSessionReaper(tracer trace.Tracer, sessions SessionSweeper, ttlMins, pollSecs int) *SessionReaper {
	return &SessionReaper{
		tracer:       tracer,
		sessions:     sessions,
		ttl:          time.Duration(ttlMins) * time.Minute,
		pollInterval: time.Duration(pollSecs) * time.Second,
	}
}

// Start sweeps once immediately, then on every tick. Blocks until ctx is
// cancelled.
func (r *SessionReaper) Start(ctx context.Context) {
	log.Println("Session reaper starting...")

	r.sweep(ctx)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session reaper stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *SessionReaper) sweep(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "session-reaper.sweep")
	defer span.End()

	if removed := r.sessions.Reap(ctx, r.ttl); removed > 0 {
		log.Printf("reaped %d idle sessions", removed)
	}
}
