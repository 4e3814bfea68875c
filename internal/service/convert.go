package service

import (
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/models"
	"github.com/umaralireal1/qisst2026/pkg/api"
)

// parseDate reads an optional YYYY-MM-DD field. Empty yields the zero Date,
// which actions treat as "today".
func parseDate(field, value string) (calendar.Date, error) {
	if value == "" {
		return calendar.Date{}, nil
	}
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, invalidArgument("%s: %v", field, err)
	}
	return d, nil
}

func toAPICircle(c models.Circle, ix *ledger.Index) api.Circle {
	enrolled := ix.Enrolled(c.ID)
	return api.Circle{
		ID:           c.ID,
		Name:         c.Name,
		StartDate:    c.StartDate.String(),
		DailyAmount:  c.DailyAmount,
		TotalTarget:  c.TotalTarget,
		MemberCount:  enrolled,
		PayoutAmount: ledger.PayoutAmount(c, enrolled),
	}
}

func toAPIMember(m models.Member, snap models.Snapshot) api.Member {
	out := api.Member{
		ID:          m.ID,
		Name:        m.Name,
		Phone:       m.Phone,
		CircleID:    m.CircleID,
		JoiningDate: m.JoiningDate.String(),
	}
	if c, ok := snap.FindCircle(m.CircleID); ok {
		out.CircleName = c.Name
	}
	return out
}

func toAPIMembers(members []models.Member, snap models.Snapshot) []api.Member {
	out := make([]api.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toAPIMember(m, snap))
	}
	return out
}

func toAPIRecord(r models.AttendanceRecord) api.AttendanceRecord {
	return api.AttendanceRecord{
		Date:       r.Date.String(),
		MemberID:   r.MemberID,
		CircleID:   r.CircleID,
		Status:     string(r.Status),
		AmountPaid: r.AmountPaid,
	}
}

func toAPIDraw(d models.Draw, snap models.Snapshot) api.Draw {
	out := api.Draw{
		ID:          d.ID,
		CircleID:    d.CircleID,
		MemberID:    d.MemberID,
		Month:       d.Month,
		AmountGiven: d.AmountGiven,
		CreatedAt:   d.CreatedAt,
	}
	if c, ok := snap.FindCircle(d.CircleID); ok {
		out.CircleName = c.Name
	}
	if m, ok := snap.FindMember(d.MemberID); ok {
		out.MemberName = m.Name
	}
	return out
}

func toAPISummary(s ledger.Summary) api.MemberSummary {
	return api.MemberSummary{
		MemberID:           s.MemberID,
		MemberName:         s.MemberName,
		CircleID:           s.CircleID,
		CircleName:         s.CircleName,
		StartDate:          s.StartDate.String(),
		DaysElapsed:        s.DaysElapsed,
		CollectedToDate:    s.CollectedToDate,
		ExpectedToDate:     s.ExpectedToDate,
		OutstandingBalance: s.OutstandingBalance,
		HasWonDraw:         s.HasWonDraw,
		WonMonth:           s.WonMonth,
	}
}

func toAPISummaries(summaries []ledger.Summary) []api.MemberSummary {
	out := make([]api.MemberSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toAPISummary(s))
	}
	return out
}

func toAPIPlan(p ledger.BackfillPlan) api.BackfillPlan {
	return api.BackfillPlan{
		MemberID:    p.MemberID,
		CircleID:    p.CircleID,
		From:        p.From.String(),
		To:          p.To.String(),
		Days:        p.Days,
		DailyAmount: p.DailyAmount,
		Total:       p.Total,
	}
}

func toAPIAlerts(statuses []ledger.CycleStatus) []api.CycleAlert {
	out := make([]api.CycleAlert, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, api.CycleAlert{
			CircleID:       s.CircleID,
			CircleName:     s.CircleName,
			DaysSinceStart: s.DaysSinceStart,
			DayInCycle:     s.DayInCycle,
			CycleNumber:    s.CycleNumber,
			DaysRemaining:  s.DaysRemaining,
		})
	}
	return out
}

func sumOutstanding(summaries []ledger.Summary) decimal.Decimal {
	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.OutstandingBalance)
	}
	return total
}
