// Package calendar provides a local calendar-day value type and day-sequence helpers.
//
// A Date carries only (year, month, day) components. Day arithmetic never goes
// through elapsed-millisecond subtraction, so daylight-saving transitions cannot
// shift a day count by one.
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

// Layout is the wire and storage format of a Date.
const Layout = "2006-01-02"

// ErrEndBeforeStart is returned by DaysBetweenInclusive when end precedes start.
var ErrEndBeforeStart = errors.New("end date is before start date")

// Date is a calendar day with no time-of-day and no zone.
// The zero value is "not set".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the normalized date for the given components.
// Out-of-range values roll over the way time.Date does (Jan 32 becomes Feb 1).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(now.In(loc))
}

// Parse reads a YYYY-MM-DD string.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.ordinal() < other.ordinal():
		return -1
	case d.ordinal() > other.ordinal():
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// ordinal is the day number since 1970-01-01. UTC has no DST, so the division is exact.
func (d Date) ordinal() int64 {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DaysBetweenInclusive counts calendar days from start to end, both included.
// start == end yields 1.
func DaysBetweenInclusive(start, end Date) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s > %s", ErrEndBeforeStart, start, end)
	}
	return int(end.ordinal()-start.ordinal()) + 1, nil
}

// Days yields every calendar day from start to end inclusive, ascending.
// The sequence is empty when end is before start and can be ranged over more than once.
func Days(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for day := start; !day.After(end); day = day.AddDays(1) {
			if !yield(day) {
				return
			}
		}
	}
}

// DaysDescending yields the same days as Days, most recent first.
func DaysDescending(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for day := end; !day.Before(start); day = day.AddDays(-1) {
			if !yield(day) {
				return
			}
		}
	}
}

// SequenceOfDays collects Days into a slice.
func SequenceOfDays(start, end Date) []Date {
	var days []Date
	for day := range Days(start, end) {
		days = append(days, day)
	}
	return days
}

// MarshalJSON encodes d as a YYYY-MM-DD string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts YYYY-MM-DD, a full RFC 3339 timestamp (date part kept), null or "".
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := parseLoose(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner for TEXT and DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		parsed, err := parseLoose(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = FromTime(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into calendar.Date", src)
	}
}

func parseLoose(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, nil
	}
	if len(raw) > len(Layout) && raw[len(Layout)] == 'T' {
		raw = raw[:len(Layout)]
	}
	return Parse(raw)
}
