package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draw records that a member won a circle's payout for a month.
type Draw struct {
	// ID is the unique identifier for the draw (UUID format).
	ID string `json:"id"`

	CircleID string `json:"circleId"`

	// MemberID is the winner.
	MemberID string `json:"memberId"`

	// Month is a label for the calendar month paid out, e.g. "2024-01".
	Month string `json:"month"`

	AmountGiven decimal.Decimal `json:"amountGiven"`

	// CreatedAt is when the draw was confirmed (UTC).
	CreatedAt time.Time `json:"dateCreated"`
}
