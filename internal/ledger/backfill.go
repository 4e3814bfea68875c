package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

var (
	ErrTargetBeforeJoin  = errors.New("target date is before the member's joining date")
	ErrMemberNotInCircle = errors.New("member is not enrolled in this circle")
)

// BackfillPlan is the prepared half of a bulk catch-up: the days that a commit will
// mark PAID and what they cost. Preparing a plan never touches the snapshot.
type BackfillPlan struct {
	MemberID    string
	CircleID    string
	From        calendar.Date
	To          calendar.Date
	Days        int
	DailyAmount decimal.Decimal
	Total       decimal.Decimal
}

// PrepareBackfill plans marking every day from the member's joining date through
// target as PAID at the circle's daily amount.
func PrepareBackfill(member models.Member, circle models.Circle, target calendar.Date) (BackfillPlan, error) {
	if member.CircleID != circle.ID {
		return BackfillPlan{}, ErrMemberNotInCircle
	}
	days, err := calendar.DaysBetweenInclusive(member.JoiningDate, target)
	if err != nil {
		return BackfillPlan{}, fmt.Errorf("%w (joined %s, target %s)", ErrTargetBeforeJoin, member.JoiningDate, target)
	}

	return BackfillPlan{
		MemberID:    member.ID,
		CircleID:    circle.ID,
		From:        member.JoiningDate,
		To:          target,
		Days:        days,
		DailyAmount: circle.DailyAmount,
		Total:       circle.DailyAmount.Mul(decimal.NewFromInt(int64(days))),
	}, nil
}

// Records expands the plan into one PAID record per day, ascending.
func (p BackfillPlan) Records() []models.AttendanceRecord {
	records := make([]models.AttendanceRecord, 0, p.Days)
	for day := range calendar.Days(p.From, p.To) {
		records = append(records, models.AttendanceRecord{
			Date:       day,
			MemberID:   p.MemberID,
			CircleID:   p.CircleID,
			Status:     models.StatusPaid,
			AmountPaid: p.DailyAmount,
		})
	}
	return records
}
