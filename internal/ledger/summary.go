package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// Summary is one member's financial position as of a given day.
type Summary struct {
	MemberID   string
	MemberName string
	CircleID   string
	CircleName string

	// StartDate is the day expectations are counted from.
	StartDate calendar.Date

	// DaysElapsed counts days from StartDate to today inclusive (0 before the start).
	DaysElapsed int

	CollectedToDate    decimal.Decimal
	ExpectedToDate     decimal.Decimal
	OutstandingBalance decimal.Decimal

	HasWonDraw bool
	WonMonth   string
}

// Summarize computes a member's balance. circle may be the zero Circle when the
// member's circle no longer exists; expectations are then zero.
//
// Algorithm:
//   - collected = sum of amountPaid over the member's records in the circle
//   - expected = dailyAmount × days from the circle's start date to today inclusive
//     (the circle start, not the joining date: late joiners start with a deficit)
//   - outstanding = max(0, expected − collected); overpayment is not carried as credit
func Summarize(member models.Member, circle models.Circle, ix *Index, today calendar.Date) Summary {
	start := anchorDate(member, circle)
	days, err := calendar.DaysBetweenInclusive(start, today)
	if err != nil || start.IsZero() {
		days = 0
	}

	collected := ix.Collected(member.ID, member.CircleID)
	expected := circle.DailyAmount.Mul(decimal.NewFromInt(int64(days)))
	outstanding := expected.Sub(collected)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	summary := Summary{
		MemberID:           member.ID,
		MemberName:         member.Name,
		CircleID:           member.CircleID,
		CircleName:         circle.Name,
		StartDate:          start,
		DaysElapsed:        days,
		CollectedToDate:    collected,
		ExpectedToDate:     expected,
		OutstandingBalance: outstanding,
	}
	if draw, ok := ix.WonDraw(member.ID, member.CircleID); ok {
		summary.HasWonDraw = true
		summary.WonMonth = draw.Month
	}
	return summary
}

// MemberHistory summarizes every member of the snapshot, in enrollment order.
func MemberHistory(snap models.Snapshot, ix *Index, today calendar.Date) []Summary {
	summaries := make([]Summary, 0, len(snap.Members))
	for _, m := range snap.Members {
		circle, _ := snap.FindCircle(m.CircleID)
		summaries = append(summaries, Summarize(m, circle, ix, today))
	}
	return summaries
}

// Outstanding lists the members who have not yet won a draw.
func Outstanding(snap models.Snapshot, ix *Index, today calendar.Date) []Summary {
	var remaining []Summary
	for _, s := range MemberHistory(snap, ix, today) {
		if !s.HasWonDraw {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

// anchorDate falls back to the joining date for a member whose circle is gone.
// A zero result means nothing is expected of the member.
func anchorDate(member models.Member, circle models.Circle) calendar.Date {
	if circle.ID == "" || circle.StartDate.IsZero() {
		return member.JoiningDate
	}
	return circle.StartDate
}
