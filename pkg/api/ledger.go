package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dates are YYYY-MM-DD strings. An empty date means "today" where a default exists.

type Circle struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	StartDate   string           `json:"startDate"`
	DailyAmount decimal.Decimal  `json:"dailyAmount"`
	TotalTarget *decimal.Decimal `json:"totalTarget,omitempty"`
	MemberCount int              `json:"memberCount"`
	// PayoutAmount is what a draw would pay out today.
	PayoutAmount decimal.Decimal `json:"payoutAmount"`
}

type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CircleID    string `json:"circleId"`
	CircleName  string `json:"circleName,omitempty"`
	JoiningDate string `json:"joiningDate"`
}

type AttendanceRecord struct {
	Date       string          `json:"date"`
	MemberID   string          `json:"memberId"`
	CircleID   string          `json:"circleId"`
	Status     string          `json:"status"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

type Draw struct {
	ID          string          `json:"id"`
	CircleID    string          `json:"circleId"`
	CircleName  string          `json:"circleName,omitempty"`
	MemberID    string          `json:"memberId"`
	MemberName  string          `json:"memberName,omitempty"`
	Month       string          `json:"month"`
	AmountGiven decimal.Decimal `json:"amountGiven"`
	CreatedAt   time.Time       `json:"dateCreated"`
}

type MemberSummary struct {
	MemberID           string          `json:"memberId"`
	MemberName         string          `json:"memberName"`
	CircleID           string          `json:"circleId"`
	CircleName         string          `json:"circleName"`
	StartDate          string          `json:"startDate"`
	DaysElapsed        int             `json:"daysElapsed"`
	CollectedToDate    decimal.Decimal `json:"collectedToDate"`
	ExpectedToDate     decimal.Decimal `json:"expectedToDate"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	HasWonDraw         bool            `json:"hasWonDraw"`
	WonMonth           string          `json:"wonMonth,omitempty"`
}

type StatementEntry struct {
	Date     string          `json:"date"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Recorded bool            `json:"recorded"`
}

type BackfillPlan struct {
	MemberID    string          `json:"memberId"`
	CircleID    string          `json:"circleId"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Days        int             `json:"days"`
	DailyAmount decimal.Decimal `json:"dailyAmount"`
	Total       decimal.Decimal `json:"total"`
}

type CycleAlert struct {
	CircleID       string `json:"circleId"`
	CircleName     string `json:"circleName"`
	DaysSinceStart int    `json:"daysSinceStart"`
	DayInCycle     int    `json:"dayInCycle"`
	CycleNumber    int    `json:"cycleNumber"`
	DaysRemaining  int    `json:"daysRemaining"`
}

type CircleCollection struct {
	CircleID  string          `json:"circleId"`
	Name      string          `json:"name"`
	Collected decimal.Decimal `json:"collected"`
}

// Circles

type CreateCircleRequest struct {
	Name        string           `json:"name"`
	StartDate   string           `json:"startDate,omitempty"`
	DailyAmount decimal.Decimal  `json:"dailyAmount"`
	TotalTarget *decimal.Decimal `json:"totalTarget,omitempty"`
}

type CreateCircleResponse struct {
	Circle Circle `json:"circle"`
}

type ListCirclesRequest struct{}

type ListCirclesResponse struct {
	Circles []Circle `json:"circles"`
}

type DeleteCircleRequest struct {
	CircleID string `json:"circleId"`
	Confirm  bool   `json:"confirm"`
}

type DeleteCircleResponse struct {
	RemovedMembers    int `json:"removedMembers"`
	RemovedAttendance int `json:"removedAttendance"`
	RemovedDraws      int `json:"removedDraws"`
}

// Members

type EnrollMemberRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	CircleID    string `json:"circleId"`
	JoiningDate string `json:"joiningDate,omitempty"`
}

type EnrollMemberResponse struct {
	Member Member `json:"member"`
}

type ListMembersRequest struct {
	CircleID string `json:"circleId,omitempty"`
	// Query matches member names case-insensitively.
	Query string `json:"query,omitempty"`
}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type DeleteMemberRequest struct {
	MemberID string `json:"memberId"`
	Confirm  bool   `json:"confirm"`
}

type DeleteMemberResponse struct {
	RemovedAttendance int `json:"removedAttendance"`
}

// Attendance

type RecordAttendanceRequest struct {
	MemberID   string           `json:"memberId"`
	CircleID   string           `json:"circleId,omitempty"`
	Date       string           `json:"date,omitempty"`
	Status     string           `json:"status"`
	AmountPaid *decimal.Decimal `json:"amountPaid,omitempty"`
}

type RecordAttendanceResponse struct {
	Record AttendanceRecord `json:"record"`
}

type ListDayAttendanceRequest struct {
	CircleID string `json:"circleId"`
	Date     string `json:"date,omitempty"`
	Query    string `json:"query,omitempty"`
}

type DayAttendanceEntry struct {
	Member Member `json:"member"`
	// Recorded is false when nothing was saved for the day; Status is then empty.
	Recorded   bool            `json:"recorded"`
	Status     string          `json:"status,omitempty"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

type ListDayAttendanceResponse struct {
	Date    string               `json:"date"`
	Entries []DayAttendanceEntry `json:"entries"`
}

// Backfill

type PrepareBackfillRequest struct {
	MemberID   string `json:"memberId"`
	TargetDate string `json:"targetDate,omitempty"`
}

type PrepareBackfillResponse struct {
	Plan BackfillPlan `json:"plan"`
}

type CommitBackfillRequest struct {
	MemberID   string `json:"memberId"`
	TargetDate string `json:"targetDate,omitempty"`
}

type CommitBackfillResponse struct {
	Plan    BackfillPlan  `json:"plan"`
	Summary MemberSummary `json:"summary"`
}

// Reports

type GetMemberSummaryRequest struct {
	MemberID string `json:"memberId"`
}

type GetMemberSummaryResponse struct {
	Summary MemberSummary `json:"summary"`
}

type ListMemberHistoryRequest struct {
	Query string `json:"query,omitempty"`
}

type ListMemberHistoryResponse struct {
	Summaries []MemberSummary `json:"summaries"`
}

type GetStatementRequest struct {
	MemberID string `json:"memberId"`
	// Query keeps entries whose date contains it, e.g. "2024-01".
	Query string `json:"query,omitempty"`
}

type GetStatementResponse struct {
	Summary MemberSummary    `json:"summary"`
	Entries []StatementEntry `json:"entries"`
}

type ListOutstandingRequest struct {
	CircleID string `json:"circleId,omitempty"`
}

type ListOutstandingResponse struct {
	Summaries        []MemberSummary `json:"summaries"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}

// Draws

type ListDrawCandidatesRequest struct {
	CircleID string `json:"circleId"`
}

type ListDrawCandidatesResponse struct {
	Candidates   []Member        `json:"candidates"`
	PayoutAmount decimal.Decimal `json:"payoutAmount"`
	// Month is the current calendar month, suggested as the draw label.
	Month string `json:"month"`
}

type ConfirmDrawRequest struct {
	CircleID string `json:"circleId"`
	MemberID string `json:"memberId"`
	Month    string `json:"month"`
}

type ConfirmDrawResponse struct {
	Draw Draw `json:"draw"`
}

type UpdateDrawAmountRequest struct {
	DrawID      string          `json:"drawId"`
	AmountGiven decimal.Decimal `json:"amountGiven"`
}

type UpdateDrawAmountResponse struct {
	Draw Draw `json:"draw"`
}

type DeleteDrawRequest struct {
	DrawID string `json:"drawId"`
}

type DeleteDrawResponse struct{}

type ListDrawsRequest struct {
	CircleID string `json:"circleId,omitempty"`
}

type ListDrawsResponse struct {
	Draws []Draw `json:"draws"`
}

// Dashboard

type GetOverviewRequest struct{}

type GetOverviewResponse struct {
	Today          string             `json:"today"`
	TotalMembers   int                `json:"totalMembers"`
	ActiveCircles  int                `json:"activeCircles"`
	TotalCollected decimal.Decimal    `json:"totalCollected"`
	UnpaidToday    []Member           `json:"unpaidToday"`
	Collections    []CircleCollection `json:"collections"`
	Alerts         []CycleAlert       `json:"alerts"`
	Degraded       bool               `json:"degraded"`
	DegradedReason string             `json:"degradedReason,omitempty"`
}
