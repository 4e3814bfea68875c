package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrMalformedSnapshot is returned when a document cannot serve as a snapshot at all.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the whole dataset. It is owned by one store and replaced wholesale on every write.
type Snapshot struct {
	Circles    []Circle           `json:"circles"`
	Members    []Member           `json:"members"`
	Attendance []AttendanceRecord `json:"attendance"`
	Draws      []Draw             `json:"draws"`
}

// IsEmpty reports whether the snapshot holds no circles and no members.
func (s Snapshot) IsEmpty() bool {
	return len(s.Circles) == 0 && len(s.Members) == 0
}

// Clone returns a snapshot whose slices do not alias s.
// Nil collections become empty so the result always encodes as arrays.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Circles:    cloneOrEmpty(s.Circles),
		Members:    cloneOrEmpty(s.Members),
		Attendance: cloneOrEmpty(s.Attendance),
		Draws:      cloneOrEmpty(s.Draws),
	}
}

// Normalize returns a copy of s that the ledger can trust. Circles without a start
// date, members without a joining date and attendance without a date are dropped.
// Attendance is reduced to one record per AttendanceKey; the last one wins.
func (s Snapshot) Normalize() Snapshot {
	out := s.Clone()
	out.Circles = slices.DeleteFunc(out.Circles, func(c Circle) bool { return c.StartDate.IsZero() })
	out.Members = slices.DeleteFunc(out.Members, func(m Member) bool { return m.JoiningDate.IsZero() })

	seen := make(map[AttendanceKey]struct{}, len(out.Attendance))
	kept := make([]AttendanceRecord, 0, len(out.Attendance))
	for _, r := range slices.Backward(out.Attendance) {
		if r.Date.IsZero() {
			continue
		}
		if _, dup := seen[r.Key()]; dup {
			continue
		}
		seen[r.Key()] = struct{}{}
		kept = append(kept, r)
	}
	slices.Reverse(kept)
	out.Attendance = kept
	return out
}

// FindCircle returns the circle with the given ID.
func (s Snapshot) FindCircle(id string) (Circle, bool) {
	i := slices.IndexFunc(s.Circles, func(c Circle) bool { return c.ID == id })
	if i < 0 {
		return Circle{}, false
	}
	return s.Circles[i], true
}

// FindMember returns the member with the given ID.
func (s Snapshot) FindMember(id string) (Member, bool) {
	i := slices.IndexFunc(s.Members, func(m Member) bool { return m.ID == id })
	if i < 0 {
		return Member{}, false
	}
	return s.Members[i], true
}

// FindDraw returns the draw with the given ID.
func (s Snapshot) FindDraw(id string) (Draw, bool) {
	i := slices.IndexFunc(s.Draws, func(d Draw) bool { return d.ID == id })
	if i < 0 {
		return Draw{}, false
	}
	return s.Draws[i], true
}

// MembersOf returns the members enrolled in a circle, in enrollment order.
func (s Snapshot) MembersOf(circleID string) []Member {
	var members []Member
	for _, m := range s.Members {
		if m.CircleID == circleID {
			members = append(members, m)
		}
	}
	return members
}

// legacyKeys maps field names written by older backups onto current names.
var legacyKeys = map[string]string{
	"qissts":     "circles",
	"customers":  "members",
	"qisstId":    "circleId",
	"customerId": "memberId",
}

// DecodeSnapshot reads a snapshot document leniently.
// Missing or malformed collections decode as empty rather than failing, so partially
// written and legacy backups still load. Only a document that is not a JSON object is an error.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	snap, _, err := decodeSnapshot(data)
	return snap, err
}

// DecodeBackup is DecodeSnapshot with the stricter rule applied to remote backups:
// the circles and members collections must be present as arrays.
func DecodeBackup(data []byte) (Snapshot, error) {
	snap, arrays, err := decodeSnapshot(data)
	if err != nil {
		return Snapshot{}, err
	}
	for _, name := range []string{"circles", "members"} {
		if !arrays[name] {
			return Snapshot{}, fmt.Errorf("%w: %s is not an array", ErrMalformedSnapshot, name)
		}
	}
	return snap, nil
}

func decodeSnapshot(data []byte) (Snapshot, map[string]bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Snapshot{}.Clone(), nil, fmt.Errorf("%w: document is not an object", ErrMalformedSnapshot)
	}
	fields = renameLegacy(fields)

	arrays := make(map[string]bool, 4)
	var snap Snapshot
	arrays["circles"] = decodeCollection("circles", fields["circles"], &snap.Circles)
	arrays["members"] = decodeCollection("members", fields["members"], &snap.Members)
	arrays["attendance"] = decodeCollection("attendance", fields["attendance"], &snap.Attendance)
	arrays["draws"] = decodeCollection("draws", fields["draws"], &snap.Draws)

	normalized := snap.Normalize()
	if dropped := len(snap.Circles) + len(snap.Members) + len(snap.Attendance) -
		len(normalized.Circles) - len(normalized.Members) - len(normalized.Attendance); dropped > 0 {
		slog.Warn("Dropped undated or duplicate snapshot records", "count", dropped)
	}
	return normalized, arrays, nil
}

// decodeCollection fills dst from raw and reports whether raw was a JSON array.
// Elements that do not decode are skipped; the rest of the collection is kept.
func decodeCollection[T any](name string, raw json.RawMessage, dst *[]T) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err == nil {
			if renamed, err := json.Marshal(renameLegacy(fields)); err == nil {
				item = renamed
			}
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			slog.Warn("Skipping malformed snapshot entry", "collection", name, "error", err)
			continue
		}
		out = append(out, v)
	}
	*dst = out
	return true
}

func renameLegacy(fields map[string]json.RawMessage) map[string]json.RawMessage {
	for old, current := range legacyKeys {
		value, ok := fields[old]
		if !ok {
			continue
		}
		if _, exists := fields[current]; !exists {
			fields[current] = value
		}
		delete(fields, old)
	}
	return fields
}

func cloneOrEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return slices.Clone(values)
}
