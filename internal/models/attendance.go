package models

import (
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
)

// PaymentStatus is the outcome recorded for one member on one day.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "PAID"
	StatusUnpaid PaymentStatus = "UNPAID"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

// AttendanceRecord is the atomic fact of the ledger: at most one exists per AttendanceKey.
type AttendanceRecord struct {
	Date     calendar.Date `json:"date"`
	MemberID string        `json:"memberId"`
	CircleID string        `json:"circleId"`
	Status   PaymentStatus `json:"status"`

	// AmountPaid is zero for UNPAID records.
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// AttendanceKey identifies the single attendance slot of a member in a circle on a day.
type AttendanceKey struct {
	MemberID string
	CircleID string
	Date     calendar.Date
}

// Key returns the record's identity.
func (r AttendanceRecord) Key() AttendanceKey {
	return AttendanceKey{MemberID: r.MemberID, CircleID: r.CircleID, Date: r.Date}
}
