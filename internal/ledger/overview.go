package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// CircleCollection is the total paid into one circle.
type CircleCollection struct {
	CircleID  string
	Name      string
	Collected decimal.Decimal
}

// Overview is the dashboard view of the whole book.
type Overview struct {
	TotalMembers   int
	ActiveCircles  int
	TotalCollected decimal.Decimal

	// UnpaidToday lists members with no record today, or an UNPAID one.
	UnpaidToday []models.Member

	Collections []CircleCollection
	Alerts      []CycleStatus
}

// BuildOverview aggregates the dashboard figures for today.
func BuildOverview(snap models.Snapshot, ix *Index, today calendar.Date) Overview {
	ov := Overview{
		TotalMembers:   len(snap.Members),
		ActiveCircles:  len(snap.Circles),
		TotalCollected: decimal.Zero,
		Alerts:         CycleAlerts(snap.Circles, today),
	}

	for _, rec := range snap.Attendance {
		ov.TotalCollected = ov.TotalCollected.Add(rec.AmountPaid)
	}

	for _, m := range snap.Members {
		rec, ok := ix.Record(models.AttendanceKey{MemberID: m.ID, CircleID: m.CircleID, Date: today})
		if !ok || rec.Status == models.StatusUnpaid {
			ov.UnpaidToday = append(ov.UnpaidToday, m)
		}
	}

	for _, c := range snap.Circles {
		ov.Collections = append(ov.Collections, CircleCollection{
			CircleID:  c.ID,
			Name:      c.Name,
			Collected: ix.CollectedByCircle(c.ID),
		})
	}

	return ov
}
