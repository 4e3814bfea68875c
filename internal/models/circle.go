package models

import (
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
)

// Circle is a savings group ("Qisst") with a shared daily contribution rate.
type Circle struct {
	// ID is the unique identifier for the circle (UUID format).
	ID string `json:"id"`

	// Name is unique across circles, compared case-insensitively.
	Name string `json:"name"`

	// StartDate is the first day contributions are expected.
	StartDate calendar.Date `json:"startDate"`

	// DailyAmount is the contribution each member owes per day.
	DailyAmount decimal.Decimal `json:"dailyAmount"`

	// TotalTarget is the explicit payout amount for a draw, if set.
	// When nil (or not positive) the payout falls back to a 30-day estimate.
	TotalTarget *decimal.Decimal `json:"totalTarget,omitempty"`
}

// HasTarget reports whether the circle carries a positive explicit payout amount.
func (c Circle) HasTarget() bool {
	return c.TotalTarget != nil && c.TotalTarget.IsPositive()
}
