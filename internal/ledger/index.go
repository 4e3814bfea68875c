// Package ledger derives balances, statements, backfill plans, draw eligibility and
// cycle alerts from a models.Snapshot. Everything here is a pure function of its
// inputs: nothing is cached between calls and nothing mutates the snapshot.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/models"
)

type memberCircle struct {
	memberID string
	circleID string
}

// Index is a read-only lookup structure over one snapshot.
// It turns the per-day attendance lookup into O(1) and pre-aggregates collected totals.
type Index struct {
	scope             EligibilityScope
	records           map[models.AttendanceKey]models.AttendanceRecord
	collected         map[memberCircle]decimal.Decimal
	collectedByCircle map[string]decimal.Decimal
	firstDraw         map[string]models.Draw
	firstDrawByCircle map[memberCircle]models.Draw
	enrolled          map[string]int
}

// NewIndex indexes snap. scope decides which draws count as "already won".
func NewIndex(snap models.Snapshot, scope EligibilityScope) *Index {
	ix := &Index{
		scope:             scope,
		records:           make(map[models.AttendanceKey]models.AttendanceRecord, len(snap.Attendance)),
		collected:         make(map[memberCircle]decimal.Decimal),
		collectedByCircle: make(map[string]decimal.Decimal),
		firstDraw:         make(map[string]models.Draw),
		firstDrawByCircle: make(map[memberCircle]models.Draw),
		enrolled:          make(map[string]int),
	}

	for _, rec := range snap.Attendance {
		ix.records[rec.Key()] = rec
		key := memberCircle{rec.MemberID, rec.CircleID}
		ix.collected[key] = ix.collected[key].Add(rec.AmountPaid)
		ix.collectedByCircle[rec.CircleID] = ix.collectedByCircle[rec.CircleID].Add(rec.AmountPaid)
	}

	for _, d := range snap.Draws {
		if _, seen := ix.firstDraw[d.MemberID]; !seen {
			ix.firstDraw[d.MemberID] = d
		}
		key := memberCircle{d.MemberID, d.CircleID}
		if _, seen := ix.firstDrawByCircle[key]; !seen {
			ix.firstDrawByCircle[key] = d
		}
	}

	for _, m := range snap.Members {
		ix.enrolled[m.CircleID]++
	}

	return ix
}

// Record returns the attendance record stored under key.
func (ix *Index) Record(key models.AttendanceKey) (models.AttendanceRecord, bool) {
	rec, ok := ix.records[key]
	return rec, ok
}

// Collected is the sum of amounts paid by a member into a circle.
func (ix *Index) Collected(memberID, circleID string) decimal.Decimal {
	return ix.collected[memberCircle{memberID, circleID}]
}

// CollectedByCircle is the sum of all amounts paid into a circle.
func (ix *Index) CollectedByCircle(circleID string) decimal.Decimal {
	return ix.collectedByCircle[circleID]
}

// Enrolled is the number of members currently enrolled in a circle.
func (ix *Index) Enrolled(circleID string) int {
	return ix.enrolled[circleID]
}

// WonDraw returns the first draw that makes the member ineligible under the index scope.
func (ix *Index) WonDraw(memberID, circleID string) (models.Draw, bool) {
	if ix.scope == ScopeCircle {
		d, ok := ix.firstDrawByCircle[memberCircle{memberID, circleID}]
		return d, ok
	}
	d, ok := ix.firstDraw[memberID]
	return d, ok
}
