package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/models"
)

// CycleLength is the fixed rotation length in days.
const CycleLength = 30

// EligibilityScope decides which past wins exclude a member from a draw.
type EligibilityScope int

const (
	// ScopeSystem excludes a member who has won any draw in any circle.
	ScopeSystem EligibilityScope = iota
	// ScopeCircle excludes a member only for draws of the circle they won in.
	ScopeCircle
)

// ParseEligibilityScope reads "system" or "circle".
func ParseEligibilityScope(value string) (EligibilityScope, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "system":
		return ScopeSystem, nil
	case "circle":
		return ScopeCircle, nil
	default:
		return ScopeSystem, fmt.Errorf("unknown draw eligibility scope %q", value)
	}
}

func (s EligibilityScope) String() string {
	if s == ScopeCircle {
		return "circle"
	}
	return "system"
}

// EligibleMembers returns the circle's members who have not already won.
// Eligibility is derived on every call; deleting a draw makes its winner eligible again.
func EligibleMembers(snap models.Snapshot, ix *Index, circleID string) []models.Member {
	var eligible []models.Member
	for _, m := range snap.MembersOf(circleID) {
		if _, won := ix.WonDraw(m.ID, circleID); !won {
			eligible = append(eligible, m)
		}
	}
	return eligible
}

// PayoutAmount is what a draw in the circle pays out.
// An explicit positive target wins; otherwise dailyAmount × 30 × enrolled members.
// The fallback is a fixed-cycle estimate and is not reconciled against collections.
func PayoutAmount(circle models.Circle, enrolled int) decimal.Decimal {
	if circle.HasTarget() {
		return *circle.TotalTarget
	}
	return circle.DailyAmount.
		Mul(decimal.NewFromInt(CycleLength)).
		Mul(decimal.NewFromInt(int64(enrolled)))
}
