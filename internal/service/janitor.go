package service

import (
	"context"
	"sync"
	"time"

	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/store"
)

// Janitor deletes history past its retention window.
type Janitor struct {
	store        *store.Store
	clock        Clock
	snapshotDays int
	taskDays     int
	interval     time.Duration

	mu      sync.Mutex
	lastRun time.Time
}

func NewJanitor(st *store.Store, clock Clock, snapshotDays, taskDays int, interval time.Duration) *Janitor {
	return &Janitor{store: st, clock: clock, snapshotDays: snapshotDays, taskDays: taskDays, interval: interval}
}

// Sweep prunes snapshots older than snapshotDays and tasks reported more than taskDays ago.
// Failures are logged only.
func (j *Janitor) Sweep(ctx context.Context) store.PruneResult {
	today := j.clock.today()
	res, err := j.store.Prune(ctx, today.AddDays(-j.snapshotDays), today.AddDays(-j.taskDays))
	if err != nil {
		logger.Ctx(ctx).Warn("retention.sweep failed", "err", err)
	}
	if res.StatusSnapshots+res.ItemSnapshots+res.Tasks > 0 {
		logger.Ctx(ctx).Info("retention.sweep",
			"status_snapshots", res.StatusSnapshots, "item_snapshots", res.ItemSnapshots, "tasks", res.Tasks)
	}
	return res
}

// MaybeSweep runs Sweep when at least interval has passed since the last run.
// It reports whether a sweep ran.
func (j *Janitor) MaybeSweep(ctx context.Context) bool {
	now := j.clock()
	j.mu.Lock()
	if !j.lastRun.IsZero() && now.Sub(j.lastRun) < j.interval {
		j.mu.Unlock()
		return false
	}
	j.lastRun = now
	j.mu.Unlock()

	j.Sweep(ctx)
	return true
}
