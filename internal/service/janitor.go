package service

import (
	"context"
	"time"

	"condo_ledger/internal/logger"
	"condo_ledger/internal/repository"
)

// DefaultSweepInterval is how often expired sessions are purged while serving.
const DefaultSweepInterval = 10 * time.Minute

// SessionJanitor purges expired session rows in the background.
type SessionJanitor struct {
	sessions repository.SessionRepository
	log      *logger.Logger
	now      func() time.Time
}

func NewSessionJanitor(sessions repository.SessionRepository, log *logger.Logger, now func() time.Time) *SessionJanitor {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &SessionJanitor{sessions: sessions, log: log, now: now}
}

// Run sweeps at the given interval until ctx is canceled.
func (j *SessionJanitor) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = DefaultSweepInterval
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = j.Sweep(ctx)
		}
	}
}

// Sweep deletes every session that has expired as of now.
func (j *SessionJanitor) Sweep(ctx context.Context) (int64, error) {
	n, err := j.sessions.DeleteExpired(ctx, j.now().UTC())
	if err != nil {
		j.log.Warnw("session sweep failed", "err", err)
		return 0, storeErr("delete expired sessions", err)
	}
	if n > 0 {
		j.log.Debugw("expired sessions purged", "count", n)
	}
	return n, nil
}
