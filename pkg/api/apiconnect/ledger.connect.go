// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/umaralireal1/qisst2026/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "qisst.v1.LedgerService"

// Procedure names, as they appear in URL paths.
const (
	LedgerServiceCreateCircleProcedure       = "/qisst.v1.LedgerService/CreateCircle"
	LedgerServiceListCirclesProcedure        = "/qisst.v1.LedgerService/ListCircles"
	LedgerServiceDeleteCircleProcedure       = "/qisst.v1.LedgerService/DeleteCircle"
	LedgerServiceEnrollMemberProcedure       = "/qisst.v1.LedgerService/EnrollMember"
	LedgerServiceListMembersProcedure        = "/qisst.v1.LedgerService/ListMembers"
	LedgerServiceDeleteMemberProcedure       = "/qisst.v1.LedgerService/DeleteMember"
	LedgerServiceRecordAttendanceProcedure   = "/qisst.v1.LedgerService/RecordAttendance"
	LedgerServiceListDayAttendanceProcedure  = "/qisst.v1.LedgerService/ListDayAttendance"
	LedgerServicePrepareBackfillProcedure    = "/qisst.v1.LedgerService/PrepareBackfill"
	LedgerServiceCommitBackfillProcedure     = "/qisst.v1.LedgerService/CommitBackfill"
	LedgerServiceGetMemberSummaryProcedure   = "/qisst.v1.LedgerService/GetMemberSummary"
	LedgerServiceListMemberHistoryProcedure  = "/qisst.v1.LedgerService/ListMemberHistory"
	LedgerServiceGetStatementProcedure       = "/qisst.v1.LedgerService/GetStatement"
	LedgerServiceListOutstandingProcedure    = "/qisst.v1.LedgerService/ListOutstanding"
	LedgerServiceListDrawCandidatesProcedure = "/qisst.v1.LedgerService/ListDrawCandidates"
	LedgerServiceConfirmDrawProcedure        = "/qisst.v1.LedgerService/ConfirmDraw"
	LedgerServiceUpdateDrawAmountProcedure   = "/qisst.v1.LedgerService/UpdateDrawAmount"
	LedgerServiceDeleteDrawProcedure         = "/qisst.v1.LedgerService/DeleteDraw"
	LedgerServiceListDrawsProcedure          = "/qisst.v1.LedgerService/ListDraws"
	LedgerServiceGetOverviewProcedure        = "/qisst.v1.LedgerService/GetOverview"
)

// LedgerServiceClient is a client for the qisst.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	ListCircles(context.Context, *connect.Request[api.ListCirclesRequest]) (*connect.Response[api.ListCirclesResponse], error)
	DeleteCircle(context.Context, *connect.Request[api.DeleteCircleRequest]) (*connect.Response[api.DeleteCircleResponse], error)
	EnrollMember(context.Context, *connect.Request[api.EnrollMemberRequest]) (*connect.Response[api.EnrollMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	DeleteMember(context.Context, *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error)
	RecordAttendance(context.Context, *connect.Request[api.RecordAttendanceRequest]) (*connect.Response[api.RecordAttendanceResponse], error)
	ListDayAttendance(context.Context, *connect.Request[api.ListDayAttendanceRequest]) (*connect.Response[api.ListDayAttendanceResponse], error)
	PrepareBackfill(context.Context, *connect.Request[api.PrepareBackfillRequest]) (*connect.Response[api.PrepareBackfillResponse], error)
	CommitBackfill(context.Context, *connect.Request[api.CommitBackfillRequest]) (*connect.Response[api.CommitBackfillResponse], error)
	GetMemberSummary(context.Context, *connect.Request[api.GetMemberSummaryRequest]) (*connect.Response[api.GetMemberSummaryResponse], error)
	ListMemberHistory(context.Context, *connect.Request[api.ListMemberHistoryRequest]) (*connect.Response[api.ListMemberHistoryResponse], error)
	GetStatement(context.Context, *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error)
	ListOutstanding(context.Context, *connect.Request[api.ListOutstandingRequest]) (*connect.Response[api.ListOutstandingResponse], error)
	ListDrawCandidates(context.Context, *connect.Request[api.ListDrawCandidatesRequest]) (*connect.Response[api.ListDrawCandidatesResponse], error)
	ConfirmDraw(context.Context, *connect.Request[api.ConfirmDrawRequest]) (*connect.Response[api.ConfirmDrawResponse], error)
	UpdateDrawAmount(context.Context, *connect.Request[api.UpdateDrawAmountRequest]) (*connect.Response[api.UpdateDrawAmountResponse], error)
	DeleteDraw(context.Context, *connect.Request[api.DeleteDrawRequest]) (*connect.Response[api.DeleteDrawResponse], error)
	ListDraws(context.Context, *connect.Request[api.ListDrawsRequest]) (*connect.Response[api.ListDrawsResponse], error)
	GetOverview(context.Context, *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error)
}

// NewLedgerServiceClient constructs a client for the qisst.v1.LedgerService service. Requests are
// sent as JSON using api.JSONCodec.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		createCircle:       connect.NewClient[api.CreateCircleRequest, api.CreateCircleResponse](httpClient, baseURL+LedgerServiceCreateCircleProcedure, opts...),
		listCircles:        connect.NewClient[api.ListCirclesRequest, api.ListCirclesResponse](httpClient, baseURL+LedgerServiceListCirclesProcedure, opts...),
		deleteCircle:       connect.NewClient[api.DeleteCircleRequest, api.DeleteCircleResponse](httpClient, baseURL+LedgerServiceDeleteCircleProcedure, opts...),
		enrollMember:       connect.NewClient[api.EnrollMemberRequest, api.EnrollMemberResponse](httpClient, baseURL+LedgerServiceEnrollMemberProcedure, opts...),
		listMembers:        connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+LedgerServiceListMembersProcedure, opts...),
		deleteMember:       connect.NewClient[api.DeleteMemberRequest, api.DeleteMemberResponse](httpClient, baseURL+LedgerServiceDeleteMemberProcedure, opts...),
		recordAttendance:   connect.NewClient[api.RecordAttendanceRequest, api.RecordAttendanceResponse](httpClient, baseURL+LedgerServiceRecordAttendanceProcedure, opts...),
		listDayAttendance:  connect.NewClient[api.ListDayAttendanceRequest, api.ListDayAttendanceResponse](httpClient, baseURL+LedgerServiceListDayAttendanceProcedure, opts...),
		prepareBackfill:    connect.NewClient[api.PrepareBackfillRequest, api.PrepareBackfillResponse](httpClient, baseURL+LedgerServicePrepareBackfillProcedure, opts...),
		commitBackfill:     connect.NewClient[api.CommitBackfillRequest, api.CommitBackfillResponse](httpClient, baseURL+LedgerServiceCommitBackfillProcedure, opts...),
		getMemberSummary:   connect.NewClient[api.GetMemberSummaryRequest, api.GetMemberSummaryResponse](httpClient, baseURL+LedgerServiceGetMemberSummaryProcedure, opts...),
		listMemberHistory:  connect.NewClient[api.ListMemberHistoryRequest, api.ListMemberHistoryResponse](httpClient, baseURL+LedgerServiceListMemberHistoryProcedure, opts...),
		getStatement:       connect.NewClient[api.GetStatementRequest, api.GetStatementResponse](httpClient, baseURL+LedgerServiceGetStatementProcedure, opts...),
		listOutstanding:    connect.NewClient[api.ListOutstandingRequest, api.ListOutstandingResponse](httpClient, baseURL+LedgerServiceListOutstandingProcedure, opts...),
		listDrawCandidates: connect.NewClient[api.ListDrawCandidatesRequest, api.ListDrawCandidatesResponse](httpClient, baseURL+LedgerServiceListDrawCandidatesProcedure, opts...),
		confirmDraw:        connect.NewClient[api.ConfirmDrawRequest, api.ConfirmDrawResponse](httpClient, baseURL+LedgerServiceConfirmDrawProcedure, opts...),
		updateDrawAmount:   connect.NewClient[api.UpdateDrawAmountRequest, api.UpdateDrawAmountResponse](httpClient, baseURL+LedgerServiceUpdateDrawAmountProcedure, opts...),
		deleteDraw:         connect.NewClient[api.DeleteDrawRequest, api.DeleteDrawResponse](httpClient, baseURL+LedgerServiceDeleteDrawProcedure, opts...),
		listDraws:          connect.NewClient[api.ListDrawsRequest, api.ListDrawsResponse](httpClient, baseURL+LedgerServiceListDrawsProcedure, opts...),
		getOverview:        connect.NewClient[api.GetOverviewRequest, api.GetOverviewResponse](httpClient, baseURL+LedgerServiceGetOverviewProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createCircle       *connect.Client[api.CreateCircleRequest, api.CreateCircleResponse]
	listCircles        *connect.Client[api.ListCirclesRequest, api.ListCirclesResponse]
	deleteCircle       *connect.Client[api.DeleteCircleRequest, api.DeleteCircleResponse]
	enrollMember       *connect.Client[api.EnrollMemberRequest, api.EnrollMemberResponse]
	listMembers        *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	deleteMember       *connect.Client[api.DeleteMemberRequest, api.DeleteMemberResponse]
	recordAttendance   *connect.Client[api.RecordAttendanceRequest, api.RecordAttendanceResponse]
	listDayAttendance  *connect.Client[api.ListDayAttendanceRequest, api.ListDayAttendanceResponse]
	prepareBackfill    *connect.Client[api.PrepareBackfillRequest, api.PrepareBackfillResponse]
	commitBackfill     *connect.Client[api.CommitBackfillRequest, api.CommitBackfillResponse]
	getMemberSummary   *connect.Client[api.GetMemberSummaryRequest, api.GetMemberSummaryResponse]
	listMemberHistory  *connect.Client[api.ListMemberHistoryRequest, api.ListMemberHistoryResponse]
	getStatement       *connect.Client[api.GetStatementRequest, api.GetStatementResponse]
	listOutstanding    *connect.Client[api.ListOutstandingRequest, api.ListOutstandingResponse]
	listDrawCandidates *connect.Client[api.ListDrawCandidatesRequest, api.ListDrawCandidatesResponse]
	confirmDraw        *connect.Client[api.ConfirmDrawRequest, api.ConfirmDrawResponse]
	updateDrawAmount   *connect.Client[api.UpdateDrawAmountRequest, api.UpdateDrawAmountResponse]
	deleteDraw         *connect.Client[api.DeleteDrawRequest, api.DeleteDrawResponse]
	listDraws          *connect.Client[api.ListDrawsRequest, api.ListDrawsResponse]
	getOverview        *connect.Client[api.GetOverviewRequest, api.GetOverviewResponse]
}

func (c *ledgerServiceClient) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	return c.createCircle.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListCircles(ctx context.Context, req *connect.Request[api.ListCirclesRequest]) (*connect.Response[api.ListCirclesResponse], error) {
	return c.listCircles.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteCircle(ctx context.Context, req *connect.Request[api.DeleteCircleRequest]) (*connect.Response[api.DeleteCircleResponse], error) {
	return c.deleteCircle.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) EnrollMember(ctx context.Context, req *connect.Request[api.EnrollMemberRequest]) (*connect.Response[api.EnrollMemberResponse], error) {
	return c.enrollMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	return c.deleteMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordAttendance(ctx context.Context, req *connect.Request[api.RecordAttendanceRequest]) (*connect.Response[api.RecordAttendanceResponse], error) {
	return c.recordAttendance.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListDayAttendance(ctx context.Context, req *connect.Request[api.ListDayAttendanceRequest]) (*connect.Response[api.ListDayAttendanceResponse], error) {
	return c.listDayAttendance.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) PrepareBackfill(ctx context.Context, req *connect.Request[api.PrepareBackfillRequest]) (*connect.Response[api.PrepareBackfillResponse], error) {
	return c.prepareBackfill.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CommitBackfill(ctx context.Context, req *connect.Request[api.CommitBackfillRequest]) (*connect.Response[api.CommitBackfillResponse], error) {
	return c.commitBackfill.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMemberSummary(ctx context.Context, req *connect.Request[api.GetMemberSummaryRequest]) (*connect.Response[api.GetMemberSummaryResponse], error) {
	return c.getMemberSummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListMemberHistory(ctx context.Context, req *connect.Request[api.ListMemberHistoryRequest]) (*connect.Response[api.ListMemberHistoryResponse], error) {
	return c.listMemberHistory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetStatement(ctx context.Context, req *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error) {
	return c.getStatement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListOutstanding(ctx context.Context, req *connect.Request[api.ListOutstandingRequest]) (*connect.Response[api.ListOutstandingResponse], error) {
	return c.listOutstanding.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListDrawCandidates(ctx context.Context, req *connect.Request[api.ListDrawCandidatesRequest]) (*connect.Response[api.ListDrawCandidatesResponse], error) {
	return c.listDrawCandidates.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ConfirmDraw(ctx context.Context, req *connect.Request[api.ConfirmDrawRequest]) (*connect.Response[api.ConfirmDrawResponse], error) {
	return c.confirmDraw.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateDrawAmount(ctx context.Context, req *connect.Request[api.UpdateDrawAmountRequest]) (*connect.Response[api.UpdateDrawAmountResponse], error) {
	return c.updateDrawAmount.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteDraw(ctx context.Context, req *connect.Request[api.DeleteDrawRequest]) (*connect.Response[api.DeleteDrawResponse], error) {
	return c.deleteDraw.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListDraws(ctx context.Context, req *connect.Request[api.ListDrawsRequest]) (*connect.Response[api.ListDrawsResponse], error) {
	return c.listDraws.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetOverview(ctx context.Context, req *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error) {
	return c.getOverview.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the qisst.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	ListCircles(context.Context, *connect.Request[api.ListCirclesRequest]) (*connect.Response[api.ListCirclesResponse], error)
	DeleteCircle(context.Context, *connect.Request[api.DeleteCircleRequest]) (*connect.Response[api.DeleteCircleResponse], error)
	EnrollMember(context.Context, *connect.Request[api.EnrollMemberRequest]) (*connect.Response[api.EnrollMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	DeleteMember(context.Context, *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error)
	RecordAttendance(context.Context, *connect.Request[api.RecordAttendanceRequest]) (*connect.Response[api.RecordAttendanceResponse], error)
	ListDayAttendance(context.Context, *connect.Request[api.ListDayAttendanceRequest]) (*connect.Response[api.ListDayAttendanceResponse], error)
	PrepareBackfill(context.Context, *connect.Request[api.PrepareBackfillRequest]) (*connect.Response[api.PrepareBackfillResponse], error)
	CommitBackfill(context.Context, *connect.Request[api.CommitBackfillRequest]) (*connect.Response[api.CommitBackfillResponse], error)
	GetMemberSummary(context.Context, *connect.Request[api.GetMemberSummaryRequest]) (*connect.Response[api.GetMemberSummaryResponse], error)
	ListMemberHistory(context.Context, *connect.Request[api.ListMemberHistoryRequest]) (*connect.Response[api.ListMemberHistoryResponse], error)
	GetStatement(context.Context, *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error)
	ListOutstanding(context.Context, *connect.Request[api.ListOutstandingRequest]) (*connect.Response[api.ListOutstandingResponse], error)
	ListDrawCandidates(context.Context, *connect.Request[api.ListDrawCandidatesRequest]) (*connect.Response[api.ListDrawCandidatesResponse], error)
	ConfirmDraw(context.Context, *connect.Request[api.ConfirmDrawRequest]) (*connect.Response[api.ConfirmDrawResponse], error)
	UpdateDrawAmount(context.Context, *connect.Request[api.UpdateDrawAmountRequest]) (*connect.Response[api.UpdateDrawAmountResponse], error)
	DeleteDraw(context.Context, *connect.Request[api.DeleteDrawRequest]) (*connect.Response[api.DeleteDrawResponse], error)
	ListDraws(context.Context, *connect.Request[api.ListDrawsRequest]) (*connect.Response[api.ListDrawsResponse], error)
	GetOverview(context.Context, *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	createCircleHandler := connect.NewUnaryHandler(LedgerServiceCreateCircleProcedure, svc.CreateCircle, opts...)
	listCirclesHandler := connect.NewUnaryHandler(LedgerServiceListCirclesProcedure, svc.ListCircles, opts...)
	deleteCircleHandler := connect.NewUnaryHandler(LedgerServiceDeleteCircleProcedure, svc.DeleteCircle, opts...)
	enrollMemberHandler := connect.NewUnaryHandler(LedgerServiceEnrollMemberProcedure, svc.EnrollMember, opts...)
	listMembersHandler := connect.NewUnaryHandler(LedgerServiceListMembersProcedure, svc.ListMembers, opts...)
	deleteMemberHandler := connect.NewUnaryHandler(LedgerServiceDeleteMemberProcedure, svc.DeleteMember, opts...)
	recordAttendanceHandler := connect.NewUnaryHandler(LedgerServiceRecordAttendanceProcedure, svc.RecordAttendance, opts...)
	listDayAttendanceHandler := connect.NewUnaryHandler(LedgerServiceListDayAttendanceProcedure, svc.ListDayAttendance, opts...)
	prepareBackfillHandler := connect.NewUnaryHandler(LedgerServicePrepareBackfillProcedure, svc.PrepareBackfill, opts...)
	commitBackfillHandler := connect.NewUnaryHandler(LedgerServiceCommitBackfillProcedure, svc.CommitBackfill, opts...)
	getMemberSummaryHandler := connect.NewUnaryHandler(LedgerServiceGetMemberSummaryProcedure, svc.GetMemberSummary, opts...)
	listMemberHistoryHandler := connect.NewUnaryHandler(LedgerServiceListMemberHistoryProcedure, svc.ListMemberHistory, opts...)
	getStatementHandler := connect.NewUnaryHandler(LedgerServiceGetStatementProcedure, svc.GetStatement, opts...)
	listOutstandingHandler := connect.NewUnaryHandler(LedgerServiceListOutstandingProcedure, svc.ListOutstanding, opts...)
	listDrawCandidatesHandler := connect.NewUnaryHandler(LedgerServiceListDrawCandidatesProcedure, svc.ListDrawCandidates, opts...)
	confirmDrawHandler := connect.NewUnaryHandler(LedgerServiceConfirmDrawProcedure, svc.ConfirmDraw, opts...)
	updateDrawAmountHandler := connect.NewUnaryHandler(LedgerServiceUpdateDrawAmountProcedure, svc.UpdateDrawAmount, opts...)
	deleteDrawHandler := connect.NewUnaryHandler(LedgerServiceDeleteDrawProcedure, svc.DeleteDraw, opts...)
	listDrawsHandler := connect.NewUnaryHandler(LedgerServiceListDrawsProcedure, svc.ListDraws, opts...)
	getOverviewHandler := connect.NewUnaryHandler(LedgerServiceGetOverviewProcedure, svc.GetOverview, opts...)
	return "/qisst.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateCircleProcedure:
			createCircleHandler.ServeHTTP(w, r)
		case LedgerServiceListCirclesProcedure:
			listCirclesHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteCircleProcedure:
			deleteCircleHandler.ServeHTTP(w, r)
		case LedgerServiceEnrollMemberProcedure:
			enrollMemberHandler.ServeHTTP(w, r)
		case LedgerServiceListMembersProcedure:
			listMembersHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteMemberProcedure:
			deleteMemberHandler.ServeHTTP(w, r)
		case LedgerServiceRecordAttendanceProcedure:
			recordAttendanceHandler.ServeHTTP(w, r)
		case LedgerServiceListDayAttendanceProcedure:
			listDayAttendanceHandler.ServeHTTP(w, r)
		case LedgerServicePrepareBackfillProcedure:
			prepareBackfillHandler.ServeHTTP(w, r)
		case LedgerServiceCommitBackfillProcedure:
			commitBackfillHandler.ServeHTTP(w, r)
		case LedgerServiceGetMemberSummaryProcedure:
			getMemberSummaryHandler.ServeHTTP(w, r)
		case LedgerServiceListMemberHistoryProcedure:
			listMemberHistoryHandler.ServeHTTP(w, r)
		case LedgerServiceGetStatementProcedure:
			getStatementHandler.ServeHTTP(w, r)
		case LedgerServiceListOutstandingProcedure:
			listOutstandingHandler.ServeHTTP(w, r)
		case LedgerServiceListDrawCandidatesProcedure:
			listDrawCandidatesHandler.ServeHTTP(w, r)
		case LedgerServiceConfirmDrawProcedure:
			confirmDrawHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateDrawAmountProcedure:
			updateDrawAmountHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteDrawProcedure:
			deleteDrawHandler.ServeHTTP(w, r)
		case LedgerServiceListDrawsProcedure:
			listDrawsHandler.ServeHTTP(w, r)
		case LedgerServiceGetOverviewProcedure:
			getOverviewHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
