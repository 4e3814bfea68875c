package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/umaralireal1/qisst2026/internal/backup"
	"github.com/umaralireal1/qisst2026/internal/book"
	"github.com/umaralireal1/qisst2026/pkg/api"
	"github.com/umaralireal1/qisst2026/pkg/api/apiconnect"
)

// BackupService implements the Connect BackupService: manual push, confirmed
// restore and the auto-sync switch.
type BackupService struct {
	book   *book.Book
	syncer *backup.Syncer
}

var _ apiconnect.BackupServiceHandler = (*BackupService)(nil)

// NewBackupService creates a new BackupService.
func NewBackupService(b *book.Book, syncer *backup.Syncer) *BackupService {
	return &BackupService{book: b, syncer: syncer}
}

// PushBackup uploads the current snapshot now.
func (s *BackupService) PushBackup(ctx context.Context, req *connect.Request[api.PushBackupRequest]) (*connect.Response[api.PushBackupResponse], error) {
	slog.Info("PushBackup request received")

	if err := s.syncer.PushNow(ctx, s.book.Snapshot()); err != nil {
		slog.Error("PushBackup failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.PushBackupResponse{Status: s.status()}), nil
}

// RestoreBackup replaces the local snapshot with the remote one.
// Nothing is fetched until the caller confirms.
func (s *BackupService) RestoreBackup(ctx context.Context, req *connect.Request[api.RestoreBackupRequest]) (*connect.Response[api.RestoreBackupResponse], error) {
	slog.Info("RestoreBackup request received", "confirm", req.Msg.Confirm)

	if !req.Msg.Confirm {
		return nil, connectError(fmt.Errorf("restoring replaces every local record: %w", book.ErrConfirmationRequired))
	}

	remote, err := s.syncer.Pull(ctx)
	if err != nil {
		slog.Error("RestoreBackup pull failed", "error", err)
		return nil, connectError(err)
	}

	snap, err := s.book.Apply(ctx, &book.Restore{Snapshot: remote, Confirm: true})
	if err != nil {
		slog.Error("RestoreBackup failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Backup restored",
		"circles", len(snap.Circles),
		"members", len(snap.Members),
		"attendance", len(snap.Attendance),
		"draws", len(snap.Draws),
	)

	return connect.NewResponse(&api.RestoreBackupResponse{
		Circles:    len(snap.Circles),
		Members:    len(snap.Members),
		Attendance: len(snap.Attendance),
		Draws:      len(snap.Draws),
	}), nil
}

// GetSyncStatus reports the backup state and whether local saves are failing.
func (s *BackupService) GetSyncStatus(ctx context.Context, req *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error) {
	slog.Info("GetSyncStatus request received")

	return connect.NewResponse(&api.GetSyncStatusResponse{Status: s.status()}), nil
}

// SetAutoSync switches debounced pushes on or off.
func (s *BackupService) SetAutoSync(ctx context.Context, req *connect.Request[api.SetAutoSyncRequest]) (*connect.Response[api.SetAutoSyncResponse], error) {
	slog.Info("SetAutoSync request received", "enabled", req.Msg.Enabled)

	s.syncer.SetAutoSync(req.Msg.Enabled)

	return connect.NewResponse(&api.SetAutoSyncResponse{Status: s.status()}), nil
}

func (s *BackupService) status() api.SyncStatus {
	st := s.syncer.Status()
	out := api.SyncStatus{
		Configured: st.Configured,
		AutoSync:   st.AutoSync,
		Pending:    st.Pending,
	}
	if !st.LastSync.IsZero() {
		last := st.LastSync
		out.LastSync = &last
	}
	if st.LastError != nil {
		out.LastError = st.LastError.Error()
	}
	out.Degraded, _ = s.book.Degraded()
	return out
}
