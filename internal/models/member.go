package models

import "github.com/umaralireal1/qisst2026/internal/calendar"

// DefaultPhone is stored when a member enrolls without a phone number.
const DefaultPhone = "N/A"

// Member is a participant enrolled in one circle.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	Name  string `json:"name"`
	Phone string `json:"phone"`

	// CircleID references the owning Circle.
	CircleID string `json:"circleId"`

	// JoiningDate is the first day the member takes part. Backfill starts here.
	JoiningDate calendar.Date `json:"joiningDate"`
}
