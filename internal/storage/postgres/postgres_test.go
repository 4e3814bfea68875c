package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// Runs only against a disposable database named by TEST_DATABASE_URL.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	want := models.Snapshot{
		Circles: []models.Circle{{ID: "c1", Name: "Bazaar", StartDate: calendar.MustParse("2024-01-01"), DailyAmount: decimal.NewFromInt(100)}},
		Members: []models.Member{{ID: "m1", Name: "Ayesha", Phone: models.DefaultPhone, CircleID: "c1", JoiningDate: calendar.MustParse("2024-01-10")}},
		Attendance: []models.AttendanceRecord{
			{Date: calendar.MustParse("2024-01-10"), MemberID: "m1", CircleID: "c1", Status: models.StatusPaid, AmountPaid: decimal.NewFromInt(100)},
		},
	}
	if err := store.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(got.Circles) != 1 || len(got.Members) != 1 || len(got.Attendance) != 1 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if !got.Attendance[0].AmountPaid.Equal(decimal.NewFromInt(100)) {
		t.Errorf("amount = %s, want 100", got.Attendance[0].AmountPaid)
	}
	if got.Members[0].JoiningDate.String() != "2024-01-10" {
		t.Errorf("joining date = %s", got.Members[0].JoiningDate)
	}

	if err := store.SaveSnapshot(ctx, models.Snapshot{}); err != nil {
		t.Fatalf("clearing snapshot failed: %v", err)
	}
}
