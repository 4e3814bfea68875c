// Package backup pushes snapshots to, and pulls them from, a remote HTTP endpoint.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/umaralireal1/qisst2026/internal/models"
)

var (
	// ErrEmptySnapshot is returned by Push for a snapshot with no circles and no
	// members. Sending it could overwrite a good remote backup with nothing.
	ErrEmptySnapshot = errors.New("refusing to back up an empty snapshot")

	// ErrInvalidPayload is returned by Pull when the remote document is not a usable snapshot.
	ErrInvalidPayload = errors.New("remote backup is not a valid snapshot")

	// ErrNotConfigured is returned when no backup URL is set.
	ErrNotConfigured = errors.New("remote backup is not configured")

	// ErrTransport wraps failures to reach the remote or a non-2xx answer from it.
	ErrTransport = errors.New("remote backup unreachable")
)

// maxPayload bounds how much of a remote response is read.
const maxPayload = 64 << 20

// Channel is a remote store holding a single backup snapshot.
type Channel interface {
	Push(ctx context.Context, snap models.Snapshot) error
	Pull(ctx context.Context) (models.Snapshot, error)
}

// HTTPChannel keeps the backup at one URL: POST writes it, GET reads it back.
type HTTPChannel struct {
	url    string
	client *http.Client
}

var _ Channel = (*HTTPChannel)(nil)

// NewHTTPChannel returns a channel for url. A nil client gets a 30 second timeout.
func NewHTTPChannel(url string, client *http.Client) *HTTPChannel {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPChannel{url: url, client: client}
}

// Push uploads snap. It fails closed on an empty snapshot without contacting the remote.
func (c *HTTPChannel) Push(ctx context.Context, snap models.Snapshot) error {
	if snap.IsEmpty() {
		return ErrEmptySnapshot
	}

	body, err := json.Marshal(snap.Clone())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build backup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push backup: %w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayload))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to push backup: %w: remote answered %s", ErrTransport, resp.Status)
	}
	return nil
}

// Pull downloads the remote snapshot. The document must carry circles and members as arrays.
func (c *HTTPChannel) Pull(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to build restore request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to pull backup: %w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Snapshot{}, fmt.Errorf("failed to pull backup: %w: remote answered %s", ErrTransport, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}

	snap, err := models.DecodeBackup(data)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return snap, nil
}
