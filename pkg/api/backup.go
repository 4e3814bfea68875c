package api

import "time"

type SyncStatus struct {
	Configured bool       `json:"configured"`
	AutoSync   bool       `json:"autoSync"`
	Pending    bool       `json:"pending"`
	LastSync   *time.Time `json:"lastSync,omitempty"`
	LastError  string     `json:"lastError,omitempty"`
	// Degraded reports a failing local persistence store.
	Degraded bool `json:"degraded"`
}

type PushBackupRequest struct{}

type PushBackupResponse struct {
	Status SyncStatus `json:"status"`
}

type RestoreBackupRequest struct {
	Confirm bool `json:"confirm"`
}

type RestoreBackupResponse struct {
	Circles    int `json:"circles"`
	Members    int `json:"members"`
	Attendance int `json:"attendance"`
	Draws      int `json:"draws"`
}

type GetSyncStatusRequest struct{}

type GetSyncStatusResponse struct {
	Status SyncStatus `json:"status"`
}

type SetAutoSyncRequest struct {
	Enabled bool `json:"enabled"`
}

type SetAutoSyncResponse struct {
	Status SyncStatus `json:"status"`
}
