package backup

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/umaralireal1/qisst2026/internal/metrics"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// DefaultDebounce is the quiet period after the last change before an automatic push.
const DefaultDebounce = 4 * time.Second

// Status is the externally visible state of the syncer.
type Status struct {
	Configured bool
	AutoSync   bool
	Pending    bool
	LastSync   time.Time
	LastError  error
}

// Syncer coalesces snapshot changes into debounced pushes and exposes manual
// push and pull. Push outcomes never feed back into the book: local data stays
// the source of truth whatever the remote does.
type Syncer struct {
	channel  Channel
	debounce time.Duration
	timeout  time.Duration
	now      func() time.Time

	autoSync *atomic.Bool
	lastSync *atomic.Time
	lastErr  *atomic.Error

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.Snapshot
	gen     uint64
	closed  bool

	// pushMu keeps pushes in the order they were started.
	pushMu sync.Mutex
}

// NewSyncer returns a syncer over channel. A nil channel gives a syncer that
// reports itself unconfigured and fails every push and pull with ErrNotConfigured.
func NewSyncer(channel Channel, debounce time.Duration, autoSync bool) *Syncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Syncer{
		channel:  channel,
		debounce: debounce,
		timeout:  30 * time.Second,
		now:      time.Now,
		autoSync: atomic.NewBool(autoSync),
		lastSync: atomic.NewTime(time.Time{}),
		lastErr:  atomic.NewError(nil),
	}
}

// Notify schedules snap for an automatic push once no newer snapshot arrives
// within the debounce interval. It is meant to be registered as a book observer.
func (s *Syncer) Notify(snap models.Snapshot) {
	if s.channel == nil || !s.autoSync.Load() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.pending = &snap
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.flush(gen) })
}

func (s *Syncer) flush(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	snap := *s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_ = s.push(ctx, snap, "auto")
}

// PushNow uploads snap immediately and drops any pending automatic push.
func (s *Syncer) PushNow(ctx context.Context, snap models.Snapshot) error {
	if s.channel == nil {
		return ErrNotConfigured
	}
	s.cancelPending()
	return s.push(ctx, snap, "manual")
}

// Pull fetches the remote snapshot. It does not touch any local state.
func (s *Syncer) Pull(ctx context.Context) (models.Snapshot, error) {
	if s.channel == nil {
		return models.Snapshot{}, ErrNotConfigured
	}
	snap, err := s.channel.Pull(ctx)
	if err != nil {
		metrics.BackupOperations.WithLabelValues("pull", "failed").Inc()
		slog.Error("Backup pull failed", "error", err)
		return models.Snapshot{}, err
	}
	metrics.BackupOperations.WithLabelValues("pull", "ok").Inc()
	slog.Info("Backup pulled",
		"circles", len(snap.Circles),
		"members", len(snap.Members),
	)
	return snap, nil
}

// SetAutoSync turns debounced pushes on or off. Turning it off drops a pending push.
func (s *Syncer) SetAutoSync(enabled bool) {
	s.autoSync.Store(enabled)
	if !enabled {
		s.cancelPending()
	}
	slog.Info("Auto-sync toggled", "enabled", enabled)
}

// Status reports configuration, auto-sync state and the last push outcome.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	pending := s.pending != nil
	s.mu.Unlock()

	return Status{
		Configured: s.channel != nil,
		AutoSync:   s.autoSync.Load(),
		Pending:    pending,
		LastSync:   s.lastSync.Load(),
		LastError:  s.lastErr.Load(),
	}
}

// Close stops the debounce timer and pushes a pending snapshot right away,
// so a change made just before shutdown still reaches the remote.
func (s *Syncer) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	s.pending = nil
	s.gen++
	s.mu.Unlock()

	if pending == nil {
		return nil
	}
	if err := s.push(ctx, *pending, "shutdown"); err != nil && !errors.Is(err, ErrEmptySnapshot) {
		return err
	}
	return nil
}

func (s *Syncer) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.gen++
}

func (s *Syncer) push(ctx context.Context, snap models.Snapshot, trigger string) error {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	err := s.channel.Push(ctx, snap)
	switch {
	case err == nil:
		now := s.now()
		s.lastSync.Store(now)
		s.lastErr.Store(nil)
		metrics.BackupOperations.WithLabelValues("push", "ok").Inc()
		metrics.LastBackupTimestamp.Set(float64(now.Unix()))
		slog.Info("Backup pushed",
			"trigger", trigger,
			"circles", len(snap.Circles),
			"members", len(snap.Members),
			"attendance", len(snap.Attendance),
		)
	case errors.Is(err, ErrEmptySnapshot):
		metrics.BackupOperations.WithLabelValues("push", "skipped").Inc()
		slog.Warn("Backup skipped, snapshot is empty", "trigger", trigger)
	default:
		s.lastErr.Store(err)
		metrics.BackupOperations.WithLabelValues("push", "failed").Inc()
		slog.Error("Backup push failed", "trigger", trigger, "error", err)
	}
	return err
}
