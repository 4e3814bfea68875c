package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/umaralireal1/qisst2026/pkg/api"
)

// BackupServiceName is the fully-qualified name of the BackupService.
const BackupServiceName = "qisst.v1.BackupService"

// Procedure names, as they appear in URL paths.
const (
	BackupServicePushBackupProcedure    = "/qisst.v1.BackupService/PushBackup"
	BackupServiceRestoreBackupProcedure = "/qisst.v1.BackupService/RestoreBackup"
	BackupServiceGetSyncStatusProcedure = "/qisst.v1.BackupService/GetSyncStatus"
	BackupServiceSetAutoSyncProcedure   = "/qisst.v1.BackupService/SetAutoSync"
)

// BackupServiceClient is a client for the qisst.v1.BackupService service.
type BackupServiceClient interface {
	PushBackup(context.Context, *connect.Request[api.PushBackupRequest]) (*connect.Response[api.PushBackupResponse], error)
	RestoreBackup(context.Context, *connect.Request[api.RestoreBackupRequest]) (*connect.Response[api.RestoreBackupResponse], error)
	GetSyncStatus(context.Context, *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error)
	SetAutoSync(context.Context, *connect.Request[api.SetAutoSyncRequest]) (*connect.Response[api.SetAutoSyncResponse], error)
}

// NewBackupServiceClient constructs a client for the qisst.v1.BackupService service. Requests are
// sent as JSON using api.JSONCodec.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://localhost:8080).
func NewBackupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BackupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &backupServiceClient{
		pushBackup:    connect.NewClient[api.PushBackupRequest, api.PushBackupResponse](httpClient, baseURL+BackupServicePushBackupProcedure, opts...),
		restoreBackup: connect.NewClient[api.RestoreBackupRequest, api.RestoreBackupResponse](httpClient, baseURL+BackupServiceRestoreBackupProcedure, opts...),
		getSyncStatus: connect.NewClient[api.GetSyncStatusRequest, api.GetSyncStatusResponse](httpClient, baseURL+BackupServiceGetSyncStatusProcedure, opts...),
		setAutoSync:   connect.NewClient[api.SetAutoSyncRequest, api.SetAutoSyncResponse](httpClient, baseURL+BackupServiceSetAutoSyncProcedure, opts...),
	}
}

type backupServiceClient struct {
	pushBackup    *connect.Client[api.PushBackupRequest, api.PushBackupResponse]
	restoreBackup *connect.Client[api.RestoreBackupRequest, api.RestoreBackupResponse]
	getSyncStatus *connect.Client[api.GetSyncStatusRequest, api.GetSyncStatusResponse]
	setAutoSync   *connect.Client[api.SetAutoSyncRequest, api.SetAutoSyncResponse]
}

func (c *backupServiceClient) PushBackup(ctx context.Context, req *connect.Request[api.PushBackupRequest]) (*connect.Response[api.PushBackupResponse], error) {
	return c.pushBackup.CallUnary(ctx, req)
}

func (c *backupServiceClient) RestoreBackup(ctx context.Context, req *connect.Request[api.RestoreBackupRequest]) (*connect.Response[api.RestoreBackupResponse], error) {
	return c.restoreBackup.CallUnary(ctx, req)
}

func (c *backupServiceClient) GetSyncStatus(ctx context.Context, req *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error) {
	return c.getSyncStatus.CallUnary(ctx, req)
}

func (c *backupServiceClient) SetAutoSync(ctx context.Context, req *connect.Request[api.SetAutoSyncRequest]) (*connect.Response[api.SetAutoSyncResponse], error) {
	return c.setAutoSync.CallUnary(ctx, req)
}

// BackupServiceHandler is an implementation of the qisst.v1.BackupService service.
type BackupServiceHandler interface {
	PushBackup(context.Context, *connect.Request[api.PushBackupRequest]) (*connect.Response[api.PushBackupResponse], error)
	RestoreBackup(context.Context, *connect.Request[api.RestoreBackupRequest]) (*connect.Response[api.RestoreBackupResponse], error)
	GetSyncStatus(context.Context, *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error)
	SetAutoSync(context.Context, *connect.Request[api.SetAutoSyncRequest]) (*connect.Response[api.SetAutoSyncResponse], error)
}

// NewBackupServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewBackupServiceHandler(svc BackupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	pushBackupHandler := connect.NewUnaryHandler(BackupServicePushBackupProcedure, svc.PushBackup, opts...)
	restoreBackupHandler := connect.NewUnaryHandler(BackupServiceRestoreBackupProcedure, svc.RestoreBackup, opts...)
	getSyncStatusHandler := connect.NewUnaryHandler(BackupServiceGetSyncStatusProcedure, svc.GetSyncStatus, opts...)
	setAutoSyncHandler := connect.NewUnaryHandler(BackupServiceSetAutoSyncProcedure, svc.SetAutoSync, opts...)
	return "/qisst.v1.BackupService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BackupServicePushBackupProcedure:
			pushBackupHandler.ServeHTTP(w, r)
		case BackupServiceRestoreBackupProcedure:
			restoreBackupHandler.ServeHTTP(w, r)
		case BackupServiceGetSyncStatusProcedure:
			getSyncStatusHandler.ServeHTTP(w, r)
		case BackupServiceSetAutoSyncProcedure:
			setAutoSyncHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
