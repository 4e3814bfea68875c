package book

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// Env is what a reducer may know about the world besides the snapshot.
type Env struct {
	Now   time.Time
	Today calendar.Date
	Scope ledger.EligibilityScope
	NewID func() string
}

// Action is one discrete mutation of the book.
//
// Reduce returns the next snapshot without modifying snap. On error the returned
// snapshot must be ignored. Actions are passed by pointer so Reduce can report
// what it created (IDs, computed amounts) back to the caller.
type Action interface {
	Kind() string
	Reduce(snap models.Snapshot, env Env) (models.Snapshot, error)
}

// CreateCircle adds a new circle. StartDate defaults to today.
type CreateCircle struct {
	Name        string
	StartDate   calendar.Date
	DailyAmount decimal.Decimal
	TotalTarget *decimal.Decimal

	Circle models.Circle
}

func (a *CreateCircle) Kind() string { return "create_circle" }

func (a *CreateCircle) Reduce(snap models.Snapshot, env Env) (models.Snapshot, error) {
	name := strings.TrimSpace(a.Name)

	var v validator
	v.check(name != "", "circle name is required")
	v.check(a.DailyAmount.IsPositive(), "daily amount must be greater than zero")
	v.check(a.TotalTarget == nil || a.TotalTarget.IsPositive(), "total target must be greater than zero when set")
	if name != "" {
		for _, c := range snap.Circles {
			if strings.EqualFold(c.Name, name) {
				v.check(false, "a circle named %q already exists", c.Name)
				break
			}
		}
	}
	if err := v.err(); err != nil {
		return snap, err
	}

	start := a.StartDate
	if start.IsZero() {
		start = env.Today
	}
	a.Circle = models.Circle{
		ID:          env.NewID(),
		Name:        name,
		StartDate:   start,
		DailyAmount: a.DailyAmount,
		TotalTarget: a.TotalTarget,
	}

	next := snap.Clone()
	next.Circles = append(next.Circles, a.Circle)
	return next, nil
}

// Cascade counts what a delete removed alongside its target.
type Cascade struct {
	Members    int
	Attendance int
	Draws      int
}

// DeleteCircle removes a circle together with its members, their attendance and its draws.
type DeleteCircle struct {
	CircleID string
	Confirm  bool

	Removed Cascade
}

func (a *DeleteCircle) Kind() string { return "delete_circle" }

func (a *DeleteCircle) Reduce(snap models.Snapshot, _ Env) (models.Snapshot, error) {
	if !a.Confirm {
		return snap, confirmationRequired("deleting a circle removes its members, attendance and draws")
	}
	if _, ok := snap.FindCircle(a.CircleID); !ok {
		return snap, notFound("circle", a.CircleID)
	}

	next := snap.Clone()
	removedMembers := make(map[string]struct{})
	for _, m := range next.Members {
		if m.CircleID == a.CircleID {
			removedMembers[m.ID] = struct{}{}
		}
	}

	before := Cascade{Members: len(next.Members), Attendance: len(next.Attendance), Draws: len(next.Draws)}
	next.Circles = slices.DeleteFunc(next.Circles, func(c models.Circle) bool { return c.ID == a.CircleID })
	next.Members = slices.DeleteFunc(next.Members, func(m models.Member) bool { return m.CircleID == a.CircleID })
	next.Attendance = slices.DeleteFunc(next.Attendance, func(r models.AttendanceRecord) bool {
		_, byMember := removedMembers[r.MemberID]
		return r.CircleID == a.CircleID || byMember
	})
	next.Draws = slices.DeleteFunc(next.Draws, func(d models.Draw) bool { return d.CircleID == a.CircleID })

	a.Removed = Cascade{
		Members:    before.Members - len(next.Members),
		Attendance: before.Attendance - len(next.Attendance),
		Draws:      before.Draws - len(next.Draws),
	}
	return next, nil
}

// EnrollMember adds a member to an existing circle.
// Phone defaults to models.DefaultPhone and JoiningDate to today.
type EnrollMember struct {
	Name        string
	Phone       string
	CircleID    string
	JoiningDate calendar.Date

	Member models.Member
}

func (a *EnrollMember) Kind() string { return "enroll_member" }

func (a *EnrollMember) Reduce(snap models.Snapshot, env Env) (models.Snapshot, error) {
	name := strings.TrimSpace(a.Name)

	var v validator
	v.check(name != "", "member name is required")
	if a.CircleID == "" {
		v.check(false, "circle is required")
	} else if _, ok := snap.FindCircle(a.CircleID); !ok {
		v.check(false, "circle %q does not exist", a.CircleID)
	}
	if err := v.err(); err != nil {
		return snap, err
	}

	phone := strings.TrimSpace(a.Phone)
	if phone == "" {
		phone = models.DefaultPhone
	}
	joined := a.JoiningDate
	if joined.IsZero() {
		joined = env.Today
	}
	a.Member = models.Member{
		ID:          env.NewID(),
		Name:        name,
		Phone:       phone,
		CircleID:    a.CircleID,
		JoiningDate: joined,
	}

	next := snap.Clone()
	next.Members = append(next.Members, a.Member)
	return next, nil
}

// DeleteMember removes a member and their attendance. Draws they won are kept.
type DeleteMember struct {
	MemberID string
	Confirm  bool

	Removed Cascade
}

func (a *DeleteMember) Kind() string { return "delete_member" }

func (a *DeleteMember) Reduce(snap models.Snapshot, _ Env) (models.Snapshot, error) {
	if !a.Confirm {
		return snap, confirmationRequired("deleting a member removes their attendance history")
	}
	if _, ok := snap.FindMember(a.MemberID); !ok {
		return snap, notFound("member", a.MemberID)
	}

	next := snap.Clone()
	before := len(next.Attendance)
	next.Members = slices.DeleteFunc(next.Members, func(m models.Member) bool { return m.ID == a.MemberID })
	next.Attendance = slices.DeleteFunc(next.Attendance, func(r models.AttendanceRecord) bool { return r.MemberID == a.MemberID })
	a.Removed = Cascade{Members: 1, Attendance: before - len(next.Attendance)}
	return next, nil
}

// RecordAttendance saves the status of one member on one day, replacing any
// existing record for the same member, circle and date.
//
// CircleID defaults to the member's circle and Date to today. A PAID record without
// Amount takes the circle's daily amount; an UNPAID record always stores zero.
type RecordAttendance struct {
	MemberID string
	CircleID string
	Date     calendar.Date
	Status   models.PaymentStatus
	Amount   *decimal.Decimal

	Record models.AttendanceRecord
}

func (a *RecordAttendance) Kind() string { return "record_attendance" }

func (a *RecordAttendance) Reduce(snap models.Snapshot, env Env) (models.Snapshot, error) {
	member, ok := snap.FindMember(a.MemberID)
	if !ok {
		return snap, notFound("member", a.MemberID)
	}
	circleID := a.CircleID
	if circleID == "" {
		circleID = member.CircleID
	}

	var v validator
	v.check(a.Status.Valid(), "status must be %s or %s", models.StatusPaid, models.StatusUnpaid)
	v.check(member.CircleID == circleID, "member %q is not enrolled in circle %q", member.ID, circleID)
	circle, found := snap.FindCircle(circleID)
	v.check(found, "circle %q does not exist", circleID)
	if a.Amount != nil {
		v.check(!a.Amount.IsNegative(), "amount paid cannot be negative")
	}
	if err := v.err(); err != nil {
		return snap, err
	}

	day := a.Date
	if day.IsZero() {
		day = env.Today
	}
	amount := decimal.Zero
	if a.Status == models.StatusPaid {
		amount = circle.DailyAmount
		if a.Amount != nil {
			amount = *a.Amount
		}
	}
	a.Record = models.AttendanceRecord{
		Date:       day,
		MemberID:   member.ID,
		CircleID:   circleID,
		Status:     a.Status,
		AmountPaid: amount,
	}

	next := snap.Clone()
	next.Attendance = upsertRecords(next.Attendance, a.Record)
	return next, nil
}

// CommitBackfill marks every day from the member's joining date through TargetDate
// as PAID at the circle's daily amount. Re-committing the same range is a no-op.
type CommitBackfill struct {
	MemberID   string
	TargetDate calendar.Date

	Plan ledger.BackfillPlan
}

func (a *CommitBackfill) Kind() string { return "commit_backfill" }

func (a *CommitBackfill) Reduce(snap models.Snapshot, env Env) (models.Snapshot, error) {
	member, ok := snap.FindMember(a.MemberID)
	if !ok {
		return snap, notFound("member", a.MemberID)
	}
	circle, ok := snap.FindCircle(member.CircleID)
	if !ok {
		var v validator
		v.check(false, "member %q belongs to a circle that no longer exists", member.ID)
		return snap, v.err()
	}

	target := a.TargetDate
	if target.IsZero() {
		target = env.Today
	}
	plan, err := ledger.PrepareBackfill(member, circle, target)
	if err != nil {
		var v validator
		v.add(err)
		return snap, v.err()
	}
	a.Plan = plan

	next := snap.Clone()
	next.Attendance = upsertRecords(next.Attendance, plan.Records()...)
	return next, nil
}

// ConfirmDraw records a circle's payout to an eligible member for a month.
// The amount is computed by ledger.PayoutAmount from the circle as it is now.
type ConfirmDraw struct {
	CircleID string
	MemberID string
	Month    string

	Draw models.Draw
}

func (a *ConfirmDraw) Kind() string { return "confirm_draw" }

func (a *ConfirmDraw) Reduce(snap models.Snapshot, env Env) (models.Snapshot, error) {
	month := strings.TrimSpace(a.Month)

	var v validator
	v.check(a.CircleID != "", "circle is required")
	v.check(a.MemberID != "", "winner is required")
	v.check(month != "", "month is required")
	if err := v.err(); err != nil {
		return snap, err
	}

	circle, ok := snap.FindCircle(a.CircleID)
	if !ok {
		return snap, notFound("circle", a.CircleID)
	}
	member, ok := snap.FindMember(a.MemberID)
	if !ok {
		return snap, notFound("member", a.MemberID)
	}
	v.check(member.CircleID == circle.ID, "member %q is not enrolled in circle %q", member.ID, circle.ID)
	ix := ledger.NewIndex(snap, env.Scope)
	if won, already := ix.WonDraw(member.ID, circle.ID); already {
		v.check(false, "member %q already won the draw for %s", member.Name, won.Month)
	}
	if err := v.err(); err != nil {
		return snap, err
	}

	a.Draw = models.Draw{
		ID:          env.NewID(),
		CircleID:    circle.ID,
		MemberID:    member.ID,
		Month:       month,
		AmountGiven: ledger.PayoutAmount(circle, ix.Enrolled(circle.ID)),
		CreatedAt:   env.Now.UTC(),
	}

	next := snap.Clone()
	next.Draws = append(next.Draws, a.Draw)
	return next, nil
}

// UpdateDrawAmount corrects the amount paid out by a draw. Nothing else about a draw is editable.
type UpdateDrawAmount struct {
	DrawID string
	Amount decimal.Decimal

	Draw models.Draw
}

func (a *UpdateDrawAmount) Kind() string { return "update_draw_amount" }

func (a *UpdateDrawAmount) Reduce(snap models.Snapshot, _ Env) (models.Snapshot, error) {
	i := slices.IndexFunc(snap.Draws, func(d models.Draw) bool { return d.ID == a.DrawID })
	if i < 0 {
		return snap, notFound("draw", a.DrawID)
	}
	var v validator
	v.check(!a.Amount.IsNegative(), "draw amount cannot be negative")
	if err := v.err(); err != nil {
		return snap, err
	}

	next := snap.Clone()
	next.Draws[i].AmountGiven = a.Amount
	a.Draw = next.Draws[i]
	return next, nil
}

// DeleteDraw removes a draw. Its winner becomes eligible again.
type DeleteDraw struct {
	DrawID string
}

func (a *DeleteDraw) Kind() string { return "delete_draw" }

func (a *DeleteDraw) Reduce(snap models.Snapshot, _ Env) (models.Snapshot, error) {
	if _, ok := snap.FindDraw(a.DrawID); !ok {
		return snap, notFound("draw", a.DrawID)
	}
	next := snap.Clone()
	next.Draws = slices.DeleteFunc(next.Draws, func(d models.Draw) bool { return d.ID == a.DrawID })
	return next, nil
}

// Restore replaces the whole snapshot, typically with one pulled from a backup.
// The snapshot is normalized first, so duplicate or undated records never reach the store.
type Restore struct {
	Snapshot models.Snapshot
	Confirm  bool
}

func (a *Restore) Kind() string { return "restore" }

func (a *Restore) Reduce(snap models.Snapshot, _ Env) (models.Snapshot, error) {
	if !a.Confirm {
		return snap, confirmationRequired("restoring replaces every local record")
	}
	return a.Snapshot.Normalize(), nil
}

// upsertRecords writes records into existing, replacing any record with the same key.
func upsertRecords(existing []models.AttendanceRecord, records ...models.AttendanceRecord) []models.AttendanceRecord {
	replaced := make(map[models.AttendanceKey]struct{}, len(records))
	for _, r := range records {
		replaced[r.Key()] = struct{}{}
	}
	kept := slices.DeleteFunc(existing, func(r models.AttendanceRecord) bool {
		_, ok := replaced[r.Key()]
		return ok
	})
	return append(kept, records...)
}

// IsConfirmationRequired reports whether err asks the caller to confirm and retry.
func IsConfirmationRequired(err error) bool {
	return errors.Is(err, ErrConfirmationRequired)
}
