package ledger

import (
	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// AlertWindowStart is the first zero-based day of a cycle that raises an alert.
const AlertWindowStart = 25

// CycleStatus is where a circle stands in its 30-day rotation.
type CycleStatus struct {
	CircleID   string
	CircleName string

	// DaysSinceStart is zero-based: 0 on the start date itself.
	DaysSinceStart int
	DayInCycle     int
	CycleNumber    int
	DaysRemaining  int

	// Alert is set when the circle is near (day >= 25) or exactly on (day 0) a cycle boundary.
	Alert bool
}

// CycleStatusOf evaluates a circle's rotation position. It returns false for circles
// whose start date is after today.
func CycleStatusOf(circle models.Circle, today calendar.Date) (CycleStatus, bool) {
	days, err := calendar.DaysBetweenInclusive(circle.StartDate, today)
	if err != nil {
		return CycleStatus{}, false
	}

	sinceStart := days - 1
	dayInCycle := sinceStart % CycleLength
	return CycleStatus{
		CircleID:       circle.ID,
		CircleName:     circle.Name,
		DaysSinceStart: sinceStart,
		DayInCycle:     dayInCycle,
		CycleNumber:    sinceStart/CycleLength + 1,
		DaysRemaining:  CycleLength - dayInCycle,
		Alert:          dayInCycle >= AlertWindowStart || dayInCycle == 0,
	}, true
}

// CycleAlerts returns the statuses of circles currently raising an alert.
// Alerts are not stored; they reappear on every call while the condition holds.
func CycleAlerts(circles []models.Circle, today calendar.Date) []CycleStatus {
	var alerts []CycleStatus
	for _, c := range circles {
		status, ok := CycleStatusOf(c, today)
		if ok && status.Alert {
			alerts = append(alerts, status)
		}
	}
	return alerts
}
