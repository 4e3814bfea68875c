package book

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// memStore is an in-memory storage.Store that can be told to fail.
type memStore struct {
	snap    models.Snapshot
	saves   int
	failErr error
	loadErr error
}

func (s *memStore) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	if s.loadErr != nil {
		return models.Snapshot{}, s.loadErr
	}
	return s.snap.Clone(), nil
}

func (s *memStore) SaveSnapshot(ctx context.Context, snap models.Snapshot) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.saves++
	s.snap = snap.Clone()
	return nil
}

func (s *memStore) Close() error { return nil }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestBook(t *testing.T, store *memStore, today string, opts ...Option) *Book {
	t.Helper()
	now := calendar.MustParse(today).In(time.UTC).Add(10 * time.Hour)
	base := []Option{
		WithClock(func() time.Time { return now }),
		WithLocation(time.UTC),
		WithIDGenerator(sequentialIDs()),
	}
	if store == nil {
		store = &memStore{}
	}
	return Open(context.Background(), store, append(base, opts...)...)
}

func mustApply(t *testing.T, b *Book, action Action) models.Snapshot {
	t.Helper()
	snap, err := b.Apply(context.Background(), action)
	if err != nil {
		t.Fatalf("%s failed: %v", action.Kind(), err)
	}
	return snap
}

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func seedCircle(t *testing.T, b *Book, name string, daily int64, start string) models.Circle {
	t.Helper()
	a := &CreateCircle{Name: name, DailyAmount: amount(daily), StartDate: calendar.MustParse(start)}
	mustApply(t, b, a)
	return a.Circle
}

func seedMember(t *testing.T, b *Book, circleID, name, joined string) models.Member {
	t.Helper()
	a := &EnrollMember{Name: name, CircleID: circleID, JoiningDate: calendar.MustParse(joined)}
	mustApply(t, b, a)
	return a.Member
}

func TestCreateCircleValidation(t *testing.T) {
	tests := []struct {
		name         string
		action       CreateCircle
		wantProblems int
	}{
		{name: "missing name and amount", action: CreateCircle{Name: "  "}, wantProblems: 2},
		{name: "duplicate name ignores case", action: CreateCircle{Name: "bazaar", DailyAmount: amount(10)}, wantProblems: 1},
		{name: "non-positive target", action: CreateCircle{Name: "New", DailyAmount: amount(10), TotalTarget: ptr(decimal.Zero)}, wantProblems: 1},
		{name: "negative amount", action: CreateCircle{Name: "New", DailyAmount: amount(-5)}, wantProblems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			b := newTestBook(t, store, "2024-01-01")
			seedCircle(t, b, "Bazaar", 100, "2024-01-01")
			saves := store.saves

			action := tt.action
			_, err := b.Apply(context.Background(), &action)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got := len(verr.Problems()); got != tt.wantProblems {
				t.Errorf("problems = %v, want %d", verr.Problems(), tt.wantProblems)
			}
			if len(b.Snapshot().Circles) != 1 {
				t.Error("rejected action changed the snapshot")
			}
			if store.saves != saves {
				t.Error("rejected action was persisted")
			}
		})
	}
}

func TestCreateCircleDefaults(t *testing.T) {
	b := newTestBook(t, nil, "2024-03-05")
	a := &CreateCircle{Name: "  Office  ", DailyAmount: amount(200)}
	mustApply(t, b, a)

	if a.Circle.ID != "id-1" || a.Circle.Name != "Office" {
		t.Errorf("unexpected circle %+v", a.Circle)
	}
	if a.Circle.StartDate.String() != "2024-03-05" {
		t.Errorf("start date defaulted to %s, want today", a.Circle.StartDate)
	}
}

func TestEnrollMember(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-20")
	circle := seedCircle(t, b, "Bazaar", 100, "2024-01-01")

	a := &EnrollMember{Name: "Ayesha", CircleID: circle.ID}
	mustApply(t, b, a)
	if a.Member.Phone != models.DefaultPhone {
		t.Errorf("phone = %q, want %q", a.Member.Phone, models.DefaultPhone)
	}
	if a.Member.JoiningDate.String() != "2024-01-20" {
		t.Errorf("joining date = %s, want today", a.Member.JoiningDate)
	}

	_, err := b.Apply(context.Background(), &EnrollMember{Name: "Ghost", CircleID: "missing"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for unknown circle, got %v", err)
	}
}

func TestDeleteCircleCascades(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-15")
	c1 := seedCircle(t, b, "Bazaar", 100, "2024-01-01")
	c2 := seedCircle(t, b, "Office", 50, "2024-01-01")
	m1 := seedMember(t, b, c1.ID, "Ayesha", "2024-01-01")
	m2 := seedMember(t, b, c1.ID, "Bilal", "2024-01-01")
	other := seedMember(t, b, c2.ID, "Chand", "2024-01-01")

	mustApply(t, b, &CommitBackfill{MemberID: m1.ID})
	mustApply(t, b, &CommitBackfill{MemberID: m2.ID})
	mustApply(t, b, &CommitBackfill{MemberID: other.ID})
	mustApply(t, b, &ConfirmDraw{CircleID: c1.ID, MemberID: m1.ID, Month: "2024-01"})

	_, err := b.Apply(context.Background(), &DeleteCircle{CircleID: c1.ID})
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if len(b.Snapshot().Circles) != 2 {
		t.Fatal("unconfirmed delete removed the circle")
	}

	action := &DeleteCircle{CircleID: c1.ID, Confirm: true}
	snap := mustApply(t, b, action)

	if action.Removed != (Cascade{Members: 2, Attendance: 30, Draws: 1}) {
		t.Errorf("removed = %+v", action.Removed)
	}
	for _, m := range snap.Members {
		if m.CircleID == c1.ID {
			t.Errorf("member %s of deleted circle survived", m.ID)
		}
	}
	for _, r := range snap.Attendance {
		if r.CircleID == c1.ID {
			t.Errorf("attendance %+v of deleted circle survived", r)
		}
	}
	if len(snap.Members) != 1 || len(snap.Attendance) != 15 || len(snap.Draws) != 0 {
		t.Errorf("other circle's data changed: members %d attendance %d draws %d",
			len(snap.Members), len(snap.Attendance), len(snap.Draws))
	}

	_, err = b.Apply(context.Background(), &DeleteCircle{CircleID: c1.ID, Confirm: true})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteMemberKeepsDraws(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-03")
	c := seedCircle(t, b, "Bazaar", 100, "2024-01-01")
	m := seedMember(t, b, c.ID, "Ayesha", "2024-01-01")
	mustApply(t, b, &CommitBackfill{MemberID: m.ID})
	mustApply(t, b, &ConfirmDraw{CircleID: c.ID, MemberID: m.ID, Month: "2024-01"})

	action := &DeleteMember{MemberID: m.ID, Confirm: true}
	snap := mustApply(t, b, action)

	if len(snap.Members) != 0 || len(snap.Attendance) != 0 {
		t.Errorf("member or attendance survived: %+v", snap)
	}
	if len(snap.Draws) != 1 {
		t.Errorf("expected draw to be kept, got %d", len(snap.Draws))
	}
	if action.Removed.Attendance != 3 {
		t.Errorf("removed attendance = %d, want 3", action.Removed.Attendance)
	}
}

func TestRecordAttendanceReplacesByKey(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-05")
	c := seedCircle(t, b, "Bazaar", 100, "2024-01-01")
	m := seedMember(t, b, c.ID, "Ayesha", "2024-01-01")
	day := calendar.MustParse("2024-01-02")

	mustApply(t, b, &RecordAttendance{MemberID: m.ID, Date: day, Status: models.StatusPaid, Amount: ptr(amount(40))})
	first := &RecordAttendance{MemberID: m.ID, Date: day, Status: models.StatusPaid}
	snap := mustApply(t, b, first)
	if len(snap.Attendance) != 1 {
		t.Fatalf("expected 1 record after rewrite, got %d", len(snap.Attendance))
	}
	if !snap.Attendance[0].AmountPaid.Equal(amount(100)) {
		t.Errorf("amount = %s, want daily amount 100", snap.Attendance[0].AmountPaid)
	}

	snap = mustApply(t, b, &RecordAttendance{MemberID: m.ID, Date: day, Status: models.StatusUnpaid, Amount: ptr(amount(70))})
	if len(snap.Attendance) != 1 || snap.Attendance[0].Status != models.StatusUnpaid {
		t.Fatalf("unexpected attendance %+v", snap.Attendance)
	}
	if !snap.Attendance[0].AmountPaid.IsZero() {
		t.Errorf("UNPAID record stored amount %s", snap.Attendance[0].AmountPaid)
	}

	tests := []struct {
		name   string
		action RecordAttendance
	}{
		{name: "bad status", action: RecordAttendance{MemberID: m.ID, Status: "LATE"}},
		{name: "wrong circle", action: RecordAttendance{MemberID: m.ID, CircleID: "other", Status: models.StatusPaid}},
		{name: "negative amount", action: RecordAttendance{MemberID: m.ID, Status: models.StatusPaid, Amount: ptr(amount(-1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := tt.action
			if _, err := b.Apply(context.Background(), &action); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCommitBackfillScenario(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-15")
	c := seedCircle(t, b, "Bazaar", 100, "2024-01-01")
	m := seedMember(t, b, c.ID, "Ayesha", "2024-01-10")

	// A stray UNPAID mark inside the range is overwritten, not duplicated.
	mustApply(t, b, &RecordAttendance{MemberID: m.ID, Date: calendar.MustParse("2024-01-12"), Status: models.StatusUnpaid})

	action := &CommitBackfill{MemberID: m.ID, TargetDate: calendar.MustParse("2024-01-15")}
	once := mustApply(t, b, action)
	if action.Plan.Days != 6 {
		t.Fatalf("plan days = %d, want 6", action.Plan.Days)
	}
	if len(once.Attendance) != 6 {
		t.Fatalf("expected 6 records, got %d", len(once.Attendance))
	}

	twice := mustApply(t, b, &CommitBackfill{MemberID: m.ID, TargetDate: calendar.MustParse("2024-01-15")})
	if len(twice.Attendance) != len(once.Attendance) {
		t.Fatalf("backfill not idempotent: %d then %d records", len(once.Attendance), len(twice.Attendance))
	}

	snap, ix := b.Index()
	member, _ := snap.FindMember(m.ID)
	circle, _ := snap.FindCircle(c.ID)
	summary := ledger.Summarize(member, circle, ix, b.Today())
	if !summary.CollectedToDate.Equal(amount(600)) || !summary.OutstandingBalance.Equal(amount(900)) {
		t.Errorf("collected %s outstanding %s, want 600 and 900", summary.CollectedToDate, summary.OutstandingBalance)
	}
}

func TestCommitBackfillBeforeJoinIsRejected(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-15")
	c := seedCircle(t, b, "Bazaar", 100, "2024-01-01")
	m := seedMember(t, b, c.ID, "Ayesha", "2024-01-10")

	_, err := b.Apply(context.Background(), &CommitBackfill{MemberID: m.ID, TargetDate: calendar.MustParse("2024-01-05")})
	if !IsValidation(err) || !errors.Is(err, ledger.ErrTargetBeforeJoin) {
		t.Fatalf("expected validation error wrapping ErrTargetBeforeJoin, got %v", err)
	}
	if n := len(b.Snapshot().Attendance); n != 0 {
		t.Fatalf("rejected backfill wrote %d records", n)
	}
}

func TestDrawLifecycle(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-31")
	c := seedCircle(t, b, "Bazaar", 50, "2024-01-01")
	var members []models.Member
	for _, name := range []string{"A", "B", "C", "D"} {
		members = append(members, seedMember(t, b, c.ID, name, "2024-01-01"))
	}

	confirm := &ConfirmDraw{CircleID: c.ID, MemberID: members[0].ID, Month: "2024-01"}
	mustApply(t, b, confirm)
	if !confirm.Draw.AmountGiven.Equal(amount(6000)) {
		t.Errorf("payout = %s, want 6000", confirm.Draw.AmountGiven)
	}
	if confirm.Draw.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	_, err := b.Apply(context.Background(), &ConfirmDraw{CircleID: c.ID, MemberID: members[0].ID, Month: "2024-02"})
	if !IsValidation(err) {
		t.Fatalf("expected repeat winner to be rejected, got %v", err)
	}

	_, err = b.Apply(context.Background(), &ConfirmDraw{CircleID: c.ID})
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Problems()) != 2 {
		t.Fatalf("expected two problems for missing winner and month, got %v", err)
	}

	update := &UpdateDrawAmount{DrawID: confirm.Draw.ID, Amount: amount(5500)}
	mustApply(t, b, update)
	if !update.Draw.AmountGiven.Equal(amount(5500)) || update.Draw.Month != "2024-01" {
		t.Errorf("unexpected updated draw %+v", update.Draw)
	}

	snap, ix := b.Index()
	if n := len(ledger.EligibleMembers(snap, ix, c.ID)); n != 3 {
		t.Errorf("eligible before delete = %d, want 3", n)
	}

	mustApply(t, b, &DeleteDraw{DrawID: confirm.Draw.ID})
	snap, ix = b.Index()
	if n := len(ledger.EligibleMembers(snap, ix, c.ID)); n != 4 {
		t.Errorf("eligible after delete = %d, want 4", n)
	}

	if _, err := b.Apply(context.Background(), &DeleteDraw{DrawID: confirm.Draw.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConfirmDrawUsesTarget(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-31")
	a := &CreateCircle{Name: "Gold", DailyAmount: amount(50), TotalTarget: ptr(amount(25000))}
	mustApply(t, b, a)
	m := seedMember(t, b, a.Circle.ID, "A", "2024-01-01")

	confirm := &ConfirmDraw{CircleID: a.Circle.ID, MemberID: m.ID, Month: "2024-01"}
	mustApply(t, b, confirm)
	if !confirm.Draw.AmountGiven.Equal(amount(25000)) {
		t.Errorf("payout = %s, want target 25000", confirm.Draw.AmountGiven)
	}
}

func TestPersistenceFailureDegradesButKeepsChange(t *testing.T) {
	store := &memStore{}
	b := newTestBook(t, store, "2024-01-01")
	store.failErr = errors.New("disk full")

	snap, err := b.Apply(context.Background(), &CreateCircle{Name: "Bazaar", DailyAmount: amount(100)})
	if err != nil {
		t.Fatalf("save failure leaked to caller: %v", err)
	}
	if len(snap.Circles) != 1 || len(b.Snapshot().Circles) != 1 {
		t.Fatal("in-memory change was lost")
	}
	if degraded, cause := b.Degraded(); !degraded || cause == nil {
		t.Fatalf("expected degraded state, got %v (%v)", degraded, cause)
	}

	store.failErr = nil
	mustApply(t, b, &CreateCircle{Name: "Office", DailyAmount: amount(50)})
	if degraded, _ := b.Degraded(); degraded {
		t.Fatal("expected recovery after successful save")
	}
	if len(store.snap.Circles) != 2 {
		t.Errorf("store holds %d circles, want 2", len(store.snap.Circles))
	}
}

func TestOpenWithLoadFailureStartsEmpty(t *testing.T) {
	b := newTestBook(t, &memStore{loadErr: errors.New("corrupt")}, "2024-01-01")
	if !b.Snapshot().IsEmpty() {
		t.Fatal("expected empty book")
	}
	if degraded, _ := b.Degraded(); !degraded {
		t.Fatal("expected degraded after load failure")
	}
}

func TestObserversSeeAcceptedSnapshots(t *testing.T) {
	b := newTestBook(t, nil, "2024-01-01")
	var seen []int
	b.Observe(func(snap models.Snapshot) { seen = append(seen, len(snap.Circles)) })

	seedCircle(t, b, "Bazaar", 100, "2024-01-01")
	_, _ = b.Apply(context.Background(), &CreateCircle{})
	seedCircle(t, b, "Office", 100, "2024-01-01")

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("observer calls = %v, want [1 2]", seen)
	}
}

func TestRestore(t *testing.T) {
	store := &memStore{}
	b := newTestBook(t, store, "2024-01-01")
	seedCircle(t, b, "Local", 100, "2024-01-01")

	remote := models.Snapshot{
		Circles: []models.Circle{{ID: "r1", Name: "Remote", StartDate: calendar.MustParse("2023-12-01"), DailyAmount: amount(10)}},
		Members: []models.Member{{ID: "rm1", Name: "Zara", CircleID: "r1", JoiningDate: calendar.MustParse("2023-12-01")}},
	}

	if _, err := b.Apply(context.Background(), &Restore{Snapshot: remote}); !IsConfirmationRequired(err) {
		t.Fatalf("expected confirmation error, got %v", err)
	}

	snap := mustApply(t, b, &Restore{Snapshot: remote, Confirm: true})
	if len(snap.Circles) != 1 || snap.Circles[0].ID != "r1" || len(snap.Members) != 1 {
		t.Fatalf("restore did not replace snapshot: %+v", snap)
	}
	if snap.Attendance == nil || snap.Draws == nil {
		t.Error("expected empty collections, got nil")
	}
	if len(store.snap.Circles) != 1 || store.snap.Circles[0].ID != "r1" {
		t.Error("restored snapshot was not persisted")
	}
}

func TestRestoreNormalizesAttendance(t *testing.T) {
	store := &memStore{}
	b := newTestBook(t, store, "2024-01-05")

	day := calendar.MustParse("2024-01-02")
	remote := models.Snapshot{
		Circles: []models.Circle{
			{ID: "c1", Name: "Bazaar", StartDate: calendar.MustParse("2024-01-01"), DailyAmount: amount(100)},
			{ID: "c2", Name: "Undated", DailyAmount: amount(100)},
		},
		Members: []models.Member{
			{ID: "m1", Name: "Ayesha", CircleID: "c1", JoiningDate: calendar.MustParse("2024-01-01")},
			{ID: "m2", Name: "Bilal", CircleID: "c1"},
		},
		Attendance: []models.AttendanceRecord{
			{Date: day, MemberID: "m1", CircleID: "c1", Status: models.StatusPaid, AmountPaid: amount(100)},
			{Date: day, MemberID: "m1", CircleID: "c1", Status: models.StatusPaid, AmountPaid: amount(60)},
			{MemberID: "m1", CircleID: "c1", Status: models.StatusPaid, AmountPaid: amount(100)},
		},
	}

	snap := mustApply(t, b, &Restore{Snapshot: remote, Confirm: true})

	if len(snap.Circles) != 1 || snap.Circles[0].ID != "c1" {
		t.Errorf("expected undated circle to be dropped, got %+v", snap.Circles)
	}
	if len(snap.Members) != 1 || snap.Members[0].ID != "m1" {
		t.Errorf("expected undated member to be dropped, got %+v", snap.Members)
	}
	if len(snap.Attendance) != 1 {
		t.Fatalf("attendance after restore: got %d records, want 1", len(snap.Attendance))
	}
	if !snap.Attendance[0].AmountPaid.Equal(amount(60)) {
		t.Errorf("expected the last duplicate to win, got %s", snap.Attendance[0].AmountPaid)
	}

	ix := ledger.NewIndex(snap, ledger.ScopeSystem)
	if got := ix.Collected("m1", "c1"); !got.Equal(amount(60)) {
		t.Errorf("collected: got %s, want 60", got)
	}
	if len(store.snap.Attendance) != 1 {
		t.Errorf("persisted attendance: got %d records, want 1", len(store.snap.Attendance))
	}
}
