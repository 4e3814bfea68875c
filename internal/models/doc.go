// Package models defines the ledger records of a savings circle book.
//
// # Collections
//
// Four collections make up a Snapshot:
//   - Circle: a savings group with a daily contribution rate and a start date
//   - Member: a participant enrolled in exactly one circle
//   - AttendanceRecord: the paid/unpaid fact for one member, one circle, one day
//   - Draw: a payout of a circle's pool to one winning member for a month
//
// # Design Principles
//
//  1. Records reference each other by ID strings, never by pointer
//  2. Currency amounts are decimal.Decimal, never float64
//  3. Calendar days are calendar.Date values, never timestamps
//  4. A Snapshot is replaced wholesale; nothing is edited in place
package models
