// Package book owns the single mutable snapshot of the ledger.
//
// Every change goes through Book.Apply with an Action. The action's reducer builds
// the next snapshot, the book swaps it in, hands it to the persistence store and
// notifies observers (the backup syncer). Readers get copies and never block writers
// for longer than a swap.
package book

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/metrics"
	"github.com/umaralireal1/qisst2026/internal/models"
	"github.com/umaralireal1/qisst2026/internal/storage"
)

// Observer is called with every snapshot the book accepts, after it was persisted.
type Observer func(models.Snapshot)

// Book is the owned mutable store of circles, members, attendance and draws.
type Book struct {
	mu        sync.RWMutex
	snap      models.Snapshot
	observers []Observer

	store storage.Store
	now   func() time.Time
	loc   *time.Location
	scope ledger.EligibilityScope
	newID func() string

	degraded *atomic.Bool
	saveErr  *atomic.Error
}

// Option configures a Book.
type Option func(*Book)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithLocation sets the zone whose calendar decides "today".
func WithLocation(loc *time.Location) Option {
	return func(b *Book) { b.loc = loc }
}

// WithScope sets the draw eligibility rule.
func WithScope(scope ledger.EligibilityScope) Option {
	return func(b *Book) { b.scope = scope }
}

// WithIDGenerator replaces uuid.NewString for new records.
func WithIDGenerator(newID func() string) Option {
	return func(b *Book) { b.newID = newID }
}

// Open loads the book from store. A load failure is not fatal: the book starts
// empty and reports itself degraded until the next successful save.
// A nil store keeps the book in memory only.
func Open(ctx context.Context, store storage.Store, opts ...Option) *Book {
	b := &Book{
		store:    store,
		now:      time.Now,
		loc:      time.Local,
		scope:    ledger.ScopeSystem,
		newID:    uuid.NewString,
		degraded: atomic.NewBool(false),
		saveErr:  atomic.NewError(nil),
	}
	for _, opt := range opts {
		opt(b)
	}

	snap := models.Snapshot{}
	if store != nil {
		loaded, err := store.LoadSnapshot(ctx)
		if err != nil {
			slog.Error("Failed to load snapshot, starting with an empty book", "error", err)
			b.setDegraded(err)
		} else {
			snap = loaded
		}
	}
	b.snap = snap.Clone()
	recordSizes(b.snap)

	slog.Info("Book opened",
		"circles", len(b.snap.Circles),
		"members", len(b.snap.Members),
		"attendance", len(b.snap.Attendance),
		"draws", len(b.snap.Draws),
	)
	return b
}

// Observe registers fn to be called after every accepted mutation.
func (b *Book) Observe(fn Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, fn)
}

// Snapshot returns a copy of the current snapshot.
func (b *Book) Snapshot() models.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap.Clone()
}

// Index returns the current snapshot together with a lookup index over it.
func (b *Book) Index() (models.Snapshot, *ledger.Index) {
	snap := b.Snapshot()
	return snap, ledger.NewIndex(snap, b.scope)
}

// Today is the current calendar day in the book's location.
func (b *Book) Today() calendar.Date {
	return calendar.Today(b.now(), b.loc)
}

// Scope is the draw eligibility rule in force.
func (b *Book) Scope() ledger.EligibilityScope {
	return b.scope
}

// Degraded reports whether the last save failed, and why.
func (b *Book) Degraded() (bool, error) {
	return b.degraded.Load(), b.saveErr.Load()
}

// Apply runs action against the current snapshot. A rejected action leaves the
// book untouched and returns its error. An accepted one replaces the snapshot and
// is persisted; a failed save only marks the book degraded, the in-memory change stays.
func (b *Book) Apply(ctx context.Context, action Action) (models.Snapshot, error) {
	b.mu.Lock()
	next, err := action.Reduce(b.snap, b.env())
	if err != nil {
		b.mu.Unlock()
		metrics.BookActions.WithLabelValues(action.Kind(), "rejected").Inc()
		slog.Debug("Action rejected", "action", action.Kind(), "error", err)
		return models.Snapshot{}, err
	}
	b.snap = next
	b.persist(ctx, next)
	observers := slices.Clone(b.observers)
	b.mu.Unlock()

	metrics.BookActions.WithLabelValues(action.Kind(), "applied").Inc()
	recordSizes(next)
	slog.Debug("Action applied", "action", action.Kind())

	for _, fn := range observers {
		fn(next)
	}
	return next.Clone(), nil
}

func (b *Book) env() Env {
	now := b.now()
	return Env{
		Now:   now,
		Today: calendar.Today(now, b.loc),
		Scope: b.scope,
		NewID: b.newID,
	}
}

// persist must be called with mu held so saves land in mutation order.
func (b *Book) persist(ctx context.Context, snap models.Snapshot) {
	if b.store == nil {
		return
	}
	// A client hanging up must not abort a save of an already accepted change.
	if err := b.store.SaveSnapshot(context.WithoutCancel(ctx), snap); err != nil {
		slog.Error("Failed to persist snapshot, continuing in memory", "error", err)
		metrics.PersistFailures.Inc()
		b.setDegraded(err)
		return
	}
	if b.degraded.Load() {
		slog.Info("Persistence recovered")
	}
	b.setDegraded(nil)
}

func (b *Book) setDegraded(err error) {
	b.saveErr.Store(err)
	b.degraded.Store(err != nil)
	if err != nil {
		metrics.Degraded.Set(1)
	} else {
		metrics.Degraded.Set(0)
	}
}

func recordSizes(snap models.Snapshot) {
	metrics.SnapshotRecords.WithLabelValues("circles").Set(float64(len(snap.Circles)))
	metrics.SnapshotRecords.WithLabelValues("members").Set(float64(len(snap.Members)))
	metrics.SnapshotRecords.WithLabelValues("attendance").Set(float64(len(snap.Attendance)))
	metrics.SnapshotRecords.WithLabelValues("draws").Set(float64(len(snap.Draws)))
}
