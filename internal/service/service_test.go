package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/backup"
	"github.com/umaralireal1/qisst2026/internal/book"
	"github.com/umaralireal1/qisst2026/internal/middleware"
	"github.com/umaralireal1/qisst2026/internal/storage/sqlite"
	"github.com/umaralireal1/qisst2026/pkg/api"
	"github.com/umaralireal1/qisst2026/pkg/api/apiconnect"
)

// fixedNow is 2024-01-15 in UTC, the "today" of every service test.
var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type testClients struct {
	ledger apiconnect.LedgerServiceClient
	backup apiconnect.BackupServiceClient
	book   *book.Book
}

// setupTestServer serves both services over a temp SQLite database.
// backupURL may be empty for an unconfigured syncer.
func setupTestServer(t *testing.T, backupURL string) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	b := book.Open(context.Background(), store,
		book.WithClock(func() time.Time { return fixedNow }),
		book.WithLocation(time.UTC),
	)

	var channel backup.Channel
	if backupURL != "" {
		channel = backup.NewHTTPChannel(backupURL, nil)
	}
	syncer := backup.NewSyncer(channel, time.Hour, false)
	b.Observe(syncer.Notify)

	interceptors := connect.WithInterceptors(middleware.MetricsInterceptor(), middleware.LoggingInterceptor())
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(NewLedgerService(b), interceptors)
	backupPath, backupHandler := apiconnect.NewBackupServiceHandler(NewBackupService(b, syncer), interceptors)

	mux := http.NewServeMux()
	mux.Handle(ledgerPath, ledgerHandler)
	mux.Handle(backupPath, backupHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		ledger: apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		backup: apiconnect.NewBackupServiceClient(http.DefaultClient, server.URL),
		book:   b,
	}
}

func createCircle(t *testing.T, client apiconnect.LedgerServiceClient, name, start string, daily int64) api.Circle {
	t.Helper()
	resp, err := client.CreateCircle(context.Background(), connect.NewRequest(&api.CreateCircleRequest{
		Name:        name,
		StartDate:   start,
		DailyAmount: decimal.NewFromInt(daily),
	}))
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	return resp.Msg.Circle
}

func enroll(t *testing.T, client apiconnect.LedgerServiceClient, name, circleID, joined string) api.Member {
	t.Helper()
	resp, err := client.EnrollMember(context.Background(), connect.NewRequest(&api.EnrollMemberRequest{
		Name:        name,
		CircleID:    circleID,
		JoiningDate: joined,
	}))
	if err != nil {
		t.Fatalf("EnrollMember failed: %v", err)
	}
	return resp.Msg.Member
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func expectAmount(t *testing.T, what string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("%s: got %s, want %d", what, got, want)
	}
}
