package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/book"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/models"
	"github.com/umaralireal1/qisst2026/pkg/api"
	"github.com/umaralireal1/qisst2026/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService over a Book.
type LedgerService struct {
	book *book.Book
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService backed by b.
func NewLedgerService(b *book.Book) *LedgerService {
	return &LedgerService{book: b}
}

// CreateCircle creates a new savings circle.
func (s *LedgerService) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	slog.Info("CreateCircle request received",
		"name", req.Msg.Name,
		"daily_amount", req.Msg.DailyAmount.String(),
	)

	start, err := parseDate("startDate", req.Msg.StartDate)
	if err != nil {
		return nil, err
	}

	action := &book.CreateCircle{
		Name:        req.Msg.Name,
		StartDate:   start,
		DailyAmount: req.Msg.DailyAmount,
		TotalTarget: req.Msg.TotalTarget,
	}
	snap, err := s.book.Apply(ctx, action)
	if err != nil {
		slog.Error("CreateCircle failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Circle created", "circle_id", action.Circle.ID)

	ix := ledger.NewIndex(snap, s.book.Scope())
	return connect.NewResponse(&api.CreateCircleResponse{
		Circle: toAPICircle(action.Circle, ix),
	}), nil
}

// ListCircles returns every circle with its enrollment and current payout.
func (s *LedgerService) ListCircles(ctx context.Context, req *connect.Request[api.ListCirclesRequest]) (*connect.Response[api.ListCirclesResponse], error) {
	slog.Info("ListCircles request received")

	snap, ix := s.book.Index()
	circles := make([]api.Circle, 0, len(snap.Circles))
	for _, c := range snap.Circles {
		circles = append(circles, toAPICircle(c, ix))
	}

	return connect.NewResponse(&api.ListCirclesResponse{Circles: circles}), nil
}

// DeleteCircle removes a circle and everything that belongs to it.
func (s *LedgerService) DeleteCircle(ctx context.Context, req *connect.Request[api.DeleteCircleRequest]) (*connect.Response[api.DeleteCircleResponse], error) {
	slog.Info("DeleteCircle request received",
		"circle_id", req.Msg.CircleID,
		"confirm", req.Msg.Confirm,
	)

	action := &book.DeleteCircle{CircleID: req.Msg.CircleID, Confirm: req.Msg.Confirm}
	if _, err := s.book.Apply(ctx, action); err != nil {
		slog.Error("DeleteCircle failed", "circle_id", req.Msg.CircleID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Circle deleted",
		"circle_id", req.Msg.CircleID,
		"members", action.Removed.Members,
		"attendance", action.Removed.Attendance,
		"draws", action.Removed.Draws,
	)

	return connect.NewResponse(&api.DeleteCircleResponse{
		RemovedMembers:    action.Removed.Members,
		RemovedAttendance: action.Removed.Attendance,
		RemovedDraws:      action.Removed.Draws,
	}), nil
}

// EnrollMember adds a member to a circle.
func (s *LedgerService) EnrollMember(ctx context.Context, req *connect.Request[api.EnrollMemberRequest]) (*connect.Response[api.EnrollMemberResponse], error) {
	slog.Info("EnrollMember request received",
		"name", req.Msg.Name,
		"circle_id", req.Msg.CircleID,
	)

	joined, err := parseDate("joiningDate", req.Msg.JoiningDate)
	if err != nil {
		return nil, err
	}

	action := &book.EnrollMember{
		Name:        req.Msg.Name,
		Phone:       req.Msg.Phone,
		CircleID:    req.Msg.CircleID,
		JoiningDate: joined,
	}
	snap, err := s.book.Apply(ctx, action)
	if err != nil {
		slog.Error("EnrollMember failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Member enrolled", "member_id", action.Member.ID, "circle_id", action.Member.CircleID)

	return connect.NewResponse(&api.EnrollMemberResponse{
		Member: toAPIMember(action.Member, snap),
	}), nil
}

// ListMembers returns members, optionally narrowed to one circle and a name search.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	slog.Info("ListMembers request received",
		"circle_id", req.Msg.CircleID,
		"query", req.Msg.Query,
	)

	snap := s.book.Snapshot()
	var members []models.Member
	for _, m := range snap.Members {
		if req.Msg.CircleID != "" && m.CircleID != req.Msg.CircleID {
			continue
		}
		if !matchesName(m.Name, req.Msg.Query) {
			continue
		}
		members = append(members, m)
	}

	return connect.NewResponse(&api.ListMembersResponse{
		Members: toAPIMembers(members, snap),
	}), nil
}

// DeleteMember removes a member and their attendance.
func (s *LedgerService) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	slog.Info("DeleteMember request received",
		"member_id", req.Msg.MemberID,
		"confirm", req.Msg.Confirm,
	)

	action := &book.DeleteMember{MemberID: req.Msg.MemberID, Confirm: req.Msg.Confirm}
	if _, err := s.book.Apply(ctx, action); err != nil {
		slog.Error("DeleteMember failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Member deleted", "member_id", req.Msg.MemberID, "attendance", action.Removed.Attendance)

	return connect.NewResponse(&api.DeleteMemberResponse{
		RemovedAttendance: action.Removed.Attendance,
	}), nil
}

// RecordAttendance saves one member's status for one day.
func (s *LedgerService) RecordAttendance(ctx context.Context, req *connect.Request[api.RecordAttendanceRequest]) (*connect.Response[api.RecordAttendanceResponse], error) {
	slog.Info("RecordAttendance request received",
		"member_id", req.Msg.MemberID,
		"date", req.Msg.Date,
		"status", req.Msg.Status,
	)

	day, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}

	action := &book.RecordAttendance{
		MemberID: req.Msg.MemberID,
		CircleID: req.Msg.CircleID,
		Date:     day,
		Status:   models.PaymentStatus(strings.ToUpper(strings.TrimSpace(req.Msg.Status))),
		Amount:   req.Msg.AmountPaid,
	}
	if _, err := s.book.Apply(ctx, action); err != nil {
		slog.Error("RecordAttendance failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.RecordAttendanceResponse{
		Record: toAPIRecord(action.Record),
	}), nil
}

// ListDayAttendance returns the attendance sheet of one circle for one day.
func (s *LedgerService) ListDayAttendance(ctx context.Context, req *connect.Request[api.ListDayAttendanceRequest]) (*connect.Response[api.ListDayAttendanceResponse], error) {
	slog.Info("ListDayAttendance request received",
		"circle_id", req.Msg.CircleID,
		"date", req.Msg.Date,
	)

	day, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = s.book.Today()
	}

	snap, ix := s.book.Index()
	if _, ok := snap.FindCircle(req.Msg.CircleID); !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("circle %q: %w", req.Msg.CircleID, book.ErrNotFound))
	}

	entries := []api.DayAttendanceEntry{}
	for _, m := range snap.MembersOf(req.Msg.CircleID) {
		if !matchesName(m.Name, req.Msg.Query) {
			continue
		}
		entry := api.DayAttendanceEntry{Member: toAPIMember(m, snap), AmountPaid: decimal.Zero}
		key := models.AttendanceKey{MemberID: m.ID, CircleID: req.Msg.CircleID, Date: day}
		if rec, ok := ix.Record(key); ok {
			entry.Recorded = true
			entry.Status = string(rec.Status)
			entry.AmountPaid = rec.AmountPaid
		}
		entries = append(entries, entry)
	}

	return connect.NewResponse(&api.ListDayAttendanceResponse{
		Date:    day.String(),
		Entries: entries,
	}), nil
}

// PrepareBackfill previews a catch-up without saving anything.
func (s *LedgerService) PrepareBackfill(ctx context.Context, req *connect.Request[api.PrepareBackfillRequest]) (*connect.Response[api.PrepareBackfillResponse], error) {
	slog.Info("PrepareBackfill request received",
		"member_id", req.Msg.MemberID,
		"target_date", req.Msg.TargetDate,
	)

	target, err := parseDate("targetDate", req.Msg.TargetDate)
	if err != nil {
		return nil, err
	}
	if target.IsZero() {
		target = s.book.Today()
	}

	snap := s.book.Snapshot()
	member, ok := snap.FindMember(req.Msg.MemberID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("member %q: %w", req.Msg.MemberID, book.ErrNotFound))
	}
	circle, _ := snap.FindCircle(member.CircleID)

	plan, err := ledger.PrepareBackfill(member, circle, target)
	if err != nil {
		slog.Warn("PrepareBackfill rejected", "member_id", member.ID, "error", err)
		if errors.Is(err, ledger.ErrTargetBeforeJoin) || errors.Is(err, ledger.ErrMemberNotInCircle) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.PrepareBackfillResponse{Plan: toAPIPlan(plan)}), nil
}

// CommitBackfill marks the planned days PAID.
func (s *LedgerService) CommitBackfill(ctx context.Context, req *connect.Request[api.CommitBackfillRequest]) (*connect.Response[api.CommitBackfillResponse], error) {
	slog.Info("CommitBackfill request received",
		"member_id", req.Msg.MemberID,
		"target_date", req.Msg.TargetDate,
	)

	target, err := parseDate("targetDate", req.Msg.TargetDate)
	if err != nil {
		return nil, err
	}

	action := &book.CommitBackfill{MemberID: req.Msg.MemberID, TargetDate: target}
	snap, err := s.book.Apply(ctx, action)
	if err != nil {
		slog.Error("CommitBackfill failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Backfill committed",
		"member_id", action.Plan.MemberID,
		"days", action.Plan.Days,
		"total", action.Plan.Total.String(),
	)

	member, _ := snap.FindMember(action.Plan.MemberID)
	circle, _ := snap.FindCircle(action.Plan.CircleID)
	ix := ledger.NewIndex(snap, s.book.Scope())
	return connect.NewResponse(&api.CommitBackfillResponse{
		Plan:    toAPIPlan(action.Plan),
		Summary: toAPISummary(ledger.Summarize(member, circle, ix, s.book.Today())),
	}), nil
}

// GetMemberSummary returns one member's balance as of today.
func (s *LedgerService) GetMemberSummary(ctx context.Context, req *connect.Request[api.GetMemberSummaryRequest]) (*connect.Response[api.GetMemberSummaryResponse], error) {
	slog.Info("GetMemberSummary request received", "member_id", req.Msg.MemberID)

	snap, ix := s.book.Index()
	member, ok := snap.FindMember(req.Msg.MemberID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("member %q: %w", req.Msg.MemberID, book.ErrNotFound))
	}
	circle, _ := snap.FindCircle(member.CircleID)

	return connect.NewResponse(&api.GetMemberSummaryResponse{
		Summary: toAPISummary(ledger.Summarize(member, circle, ix, s.book.Today())),
	}), nil
}

// ListMemberHistory summarizes every member, optionally filtered by name.
func (s *LedgerService) ListMemberHistory(ctx context.Context, req *connect.Request[api.ListMemberHistoryRequest]) (*connect.Response[api.ListMemberHistoryResponse], error) {
	slog.Info("ListMemberHistory request received", "query", req.Msg.Query)

	snap, ix := s.book.Index()
	history := slices.DeleteFunc(ledger.MemberHistory(snap, ix, s.book.Today()), func(sum ledger.Summary) bool {
		return !matchesName(sum.MemberName, req.Msg.Query)
	})

	return connect.NewResponse(&api.ListMemberHistoryResponse{
		Summaries: toAPISummaries(history),
	}), nil
}

// GetStatement returns a member's day-by-day statement, newest first.
func (s *LedgerService) GetStatement(ctx context.Context, req *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error) {
	slog.Info("GetStatement request received",
		"member_id", req.Msg.MemberID,
		"query", req.Msg.Query,
	)

	snap, ix := s.book.Index()
	member, ok := snap.FindMember(req.Msg.MemberID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("member %q: %w", req.Msg.MemberID, book.ErrNotFound))
	}
	circle, _ := snap.FindCircle(member.CircleID)
	today := s.book.Today()

	entries := []api.StatementEntry{}
	for e := range ledger.FilterStatement(ledger.Statement(member, circle, ix, today), req.Msg.Query) {
		entries = append(entries, api.StatementEntry{
			Date:     e.Date.String(),
			Status:   string(e.Status),
			Amount:   e.Amount,
			Recorded: e.Recorded,
		})
	}

	return connect.NewResponse(&api.GetStatementResponse{
		Summary: toAPISummary(ledger.Summarize(member, circle, ix, today)),
		Entries: entries,
	}), nil
}

// ListOutstanding returns members who have not yet won, with what they owe.
func (s *LedgerService) ListOutstanding(ctx context.Context, req *connect.Request[api.ListOutstandingRequest]) (*connect.Response[api.ListOutstandingResponse], error) {
	slog.Info("ListOutstanding request received", "circle_id", req.Msg.CircleID)

	snap, ix := s.book.Index()
	remaining := slices.DeleteFunc(ledger.Outstanding(snap, ix, s.book.Today()), func(sum ledger.Summary) bool {
		return req.Msg.CircleID != "" && sum.CircleID != req.Msg.CircleID
	})

	return connect.NewResponse(&api.ListOutstandingResponse{
		Summaries:        toAPISummaries(remaining),
		TotalOutstanding: sumOutstanding(remaining),
	}), nil
}

// ListDrawCandidates returns the members of a circle who may still win.
func (s *LedgerService) ListDrawCandidates(ctx context.Context, req *connect.Request[api.ListDrawCandidatesRequest]) (*connect.Response[api.ListDrawCandidatesResponse], error) {
	slog.Info("ListDrawCandidates request received", "circle_id", req.Msg.CircleID)

	snap, ix := s.book.Index()
	circle, ok := snap.FindCircle(req.Msg.CircleID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("circle %q: %w", req.Msg.CircleID, book.ErrNotFound))
	}
	today := s.book.Today()

	return connect.NewResponse(&api.ListDrawCandidatesResponse{
		Candidates:   toAPIMembers(ledger.EligibleMembers(snap, ix, circle.ID), snap),
		PayoutAmount: ledger.PayoutAmount(circle, ix.Enrolled(circle.ID)),
		Month:        fmt.Sprintf("%04d-%02d", today.Year, int(today.Month)),
	}), nil
}

// ConfirmDraw records a winner for a circle and month.
func (s *LedgerService) ConfirmDraw(ctx context.Context, req *connect.Request[api.ConfirmDrawRequest]) (*connect.Response[api.ConfirmDrawResponse], error) {
	slog.Info("ConfirmDraw request received",
		"circle_id", req.Msg.CircleID,
		"member_id", req.Msg.MemberID,
		"month", req.Msg.Month,
	)

	action := &book.ConfirmDraw{
		CircleID: req.Msg.CircleID,
		MemberID: req.Msg.MemberID,
		Month:    req.Msg.Month,
	}
	snap, err := s.book.Apply(ctx, action)
	if err != nil {
		slog.Error("ConfirmDraw failed", "circle_id", req.Msg.CircleID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Draw confirmed",
		"draw_id", action.Draw.ID,
		"amount", action.Draw.AmountGiven.String(),
	)

	return connect.NewResponse(&api.ConfirmDrawResponse{
		Draw: toAPIDraw(action.Draw, snap),
	}), nil
}

// UpdateDrawAmount corrects a draw's payout.
func (s *LedgerService) UpdateDrawAmount(ctx context.Context, req *connect.Request[api.UpdateDrawAmountRequest]) (*connect.Response[api.UpdateDrawAmountResponse], error) {
	slog.Info("UpdateDrawAmount request received",
		"draw_id", req.Msg.DrawID,
		"amount", req.Msg.AmountGiven.String(),
	)

	action := &book.UpdateDrawAmount{DrawID: req.Msg.DrawID, Amount: req.Msg.AmountGiven}
	snap, err := s.book.Apply(ctx, action)
	if err != nil {
		slog.Error("UpdateDrawAmount failed", "draw_id", req.Msg.DrawID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.UpdateDrawAmountResponse{
		Draw: toAPIDraw(action.Draw, snap),
	}), nil
}

// DeleteDraw removes a draw; its winner becomes eligible again.
func (s *LedgerService) DeleteDraw(ctx context.Context, req *connect.Request[api.DeleteDrawRequest]) (*connect.Response[api.DeleteDrawResponse], error) {
	slog.Info("DeleteDraw request received", "draw_id", req.Msg.DrawID)

	if _, err := s.book.Apply(ctx, &book.DeleteDraw{DrawID: req.Msg.DrawID}); err != nil {
		slog.Error("DeleteDraw failed", "draw_id", req.Msg.DrawID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Draw deleted", "draw_id", req.Msg.DrawID)

	return connect.NewResponse(&api.DeleteDrawResponse{}), nil
}

// ListDraws returns draws newest first, optionally for one circle.
func (s *LedgerService) ListDraws(ctx context.Context, req *connect.Request[api.ListDrawsRequest]) (*connect.Response[api.ListDrawsResponse], error) {
	slog.Info("ListDraws request received", "circle_id", req.Msg.CircleID)

	snap := s.book.Snapshot()
	draws := []api.Draw{}
	for _, d := range slices.Backward(snap.Draws) {
		if req.Msg.CircleID != "" && d.CircleID != req.Msg.CircleID {
			continue
		}
		draws = append(draws, toAPIDraw(d, snap))
	}

	return connect.NewResponse(&api.ListDrawsResponse{Draws: draws}), nil
}

// GetOverview returns the dashboard figures for today.
func (s *LedgerService) GetOverview(ctx context.Context, req *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error) {
	slog.Info("GetOverview request received")

	snap, ix := s.book.Index()
	today := s.book.Today()
	ov := ledger.BuildOverview(snap, ix, today)

	collections := make([]api.CircleCollection, 0, len(ov.Collections))
	for _, c := range ov.Collections {
		collections = append(collections, api.CircleCollection{
			CircleID:  c.CircleID,
			Name:      c.Name,
			Collected: c.Collected,
		})
	}

	resp := &api.GetOverviewResponse{
		Today:          today.String(),
		TotalMembers:   ov.TotalMembers,
		ActiveCircles:  ov.ActiveCircles,
		TotalCollected: ov.TotalCollected,
		UnpaidToday:    toAPIMembers(ov.UnpaidToday, snap),
		Collections:    collections,
		Alerts:         toAPIAlerts(ov.Alerts),
	}
	if degraded, reason := s.book.Degraded(); degraded {
		resp.Degraded = true
		if reason != nil {
			resp.DegradedReason = reason.Error()
		}
	}

	return connect.NewResponse(resp), nil
}

// matchesName reports whether name contains query, ignoring case. An empty query matches all.
func matchesName(name, query string) bool {
	query = strings.TrimSpace(query)
	return query == "" || strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
