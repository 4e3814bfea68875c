package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// remote is a write-then-read consistent backup endpoint.
type remote struct {
	mu    sync.Mutex
	body  []byte
	posts int
}

func (r *remote) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch req.Method {
	case http.MethodPost:
		data, _ := io.ReadAll(req.Body)
		r.body = data
		r.posts++
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		w.Write(r.body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func sample() models.Snapshot {
	return models.Snapshot{
		Circles: []models.Circle{{ID: "c1", Name: "Bazaar", StartDate: calendar.MustParse("2024-01-01"), DailyAmount: decimal.NewFromInt(100)}},
		Members: []models.Member{{ID: "m1", Name: "Ayesha", Phone: models.DefaultPhone, CircleID: "c1", JoiningDate: calendar.MustParse("2024-01-10")}},
		Attendance: []models.AttendanceRecord{
			{Date: calendar.MustParse("2024-01-10"), MemberID: "m1", CircleID: "c1", Status: models.StatusPaid, AmountPaid: decimal.NewFromInt(100)},
		},
	}.Clone()
}

func TestHTTPChannelRoundTrip(t *testing.T) {
	srv := httptest.NewServer(&remote{})
	defer srv.Close()
	ch := NewHTTPChannel(srv.URL, srv.Client())
	ctx := context.Background()

	want := sample()
	if err := ch.Push(ctx, want); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	got, err := ch.Pull(ctx)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	g, _ := json.Marshal(got)
	w, _ := json.Marshal(want)
	if string(g) != string(w) {
		t.Errorf("round trip mismatch:\n got: %s\nwant: %s", g, w)
	}
}

func TestHTTPChannelPushFailsClosedOnEmpty(t *testing.T) {
	r := &remote{}
	srv := httptest.NewServer(r)
	defer srv.Close()
	ch := NewHTTPChannel(srv.URL, srv.Client())

	err := ch.Push(context.Background(), models.Snapshot{Draws: []models.Draw{{ID: "orphan"}}})
	if !errors.Is(err, ErrEmptySnapshot) {
		t.Fatalf("expected ErrEmptySnapshot, got %v", err)
	}
	if r.posts != 0 {
		t.Fatalf("empty snapshot reached the remote")
	}
}

func TestHTTPChannelPull(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantInvalid bool
		wantErr     bool
	}{
		{name: "valid", status: http.StatusOK, body: `{"circles": [], "members": []}`},
		{name: "legacy names", status: http.StatusOK, body: `{"qissts": [], "customers": []}`},
		{name: "members missing", status: http.StatusOK, body: `{"circles": []}`, wantInvalid: true, wantErr: true},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantInvalid: true, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"circles": [], "members": []}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewHTTPChannel(srv.URL, srv.Client()).Pull(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Pull() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrInvalidPayload) != tt.wantInvalid {
				t.Errorf("errors.Is(ErrInvalidPayload) = %v, want %v (err %v)", !tt.wantInvalid, tt.wantInvalid, err)
			}
		})
	}
}

func TestHTTPChannelPushReportsRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewHTTPChannel(srv.URL, srv.Client()).Push(context.Background(), sample())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport for 403, got %v", err)
	}
}
