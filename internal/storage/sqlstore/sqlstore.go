// Package sqlstore reads and writes a models.Snapshot through database/sql.
// It is shared by the SQLite and PostgreSQL stores, which differ only in driver,
// placeholder style and migrations.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/models"
)

// Dialect is the bind-parameter style of a driver.
type Dialect int

const (
	// Question uses ? placeholders (SQLite).
	Question Dialect = iota
	// Dollar uses $1, $2, ... placeholders (PostgreSQL).
	Dollar
)

// Rebind rewrites ? placeholders in query for the dialect.
func (d Dialect) Rebind(query string) string {
	if d != Dollar {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Migrate applies every pending up migration found in dir of fsys.
// The caller keeps ownership of the database handle behind driver.
func Migrate(fsys fs.FS, dir, databaseName string, driver database.Driver) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, databaseName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

const timeLayout = time.RFC3339Nano

// Load reads the whole snapshot. Collections keep the order they were saved in.
func Load(ctx context.Context, db *sql.DB) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Circles, err = loadCircles(ctx, db); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Members, err = loadMembers(ctx, db); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Attendance, err = loadAttendance(ctx, db); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Draws, err = loadDraws(ctx, db); err != nil {
		return models.Snapshot{}, err
	}
	return snap.Clone(), nil
}

func loadCircles(ctx context.Context, db *sql.DB) ([]models.Circle, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, start_date, daily_amount, total_target FROM circles ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get circles: %w", err)
	}
	defer rows.Close()

	var circles []models.Circle
	for rows.Next() {
		var c models.Circle
		var target decimal.NullDecimal
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.DailyAmount, &target); err != nil {
			return nil, fmt.Errorf("failed to scan circle: %w", err)
		}
		if target.Valid {
			c.TotalTarget = &target.Decimal
		}
		circles = append(circles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate circles: %w", err)
	}
	return circles, nil
}

func loadMembers(ctx context.Context, db *sql.DB) ([]models.Member, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, phone, circle_id, joining_date FROM members ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.CircleID, &m.JoiningDate); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func loadAttendance(ctx context.Context, db *sql.DB) ([]models.AttendanceRecord, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT day, member_id, circle_id, status, amount_paid FROM attendance ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(&r.Date, &r.MemberID, &r.CircleID, &r.Status, &r.AmountPaid); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return records, nil
}

func loadDraws(ctx context.Context, db *sql.DB) ([]models.Draw, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, circle_id, member_id, month, amount_given, created_at FROM draws ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get draws: %w", err)
	}
	defer rows.Close()

	var draws []models.Draw
	for rows.Next() {
		var d models.Draw
		var created string
		if err := rows.Scan(&d.ID, &d.CircleID, &d.MemberID, &d.Month, &d.AmountGiven, &created); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		if created != "" {
			if d.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
				return nil, fmt.Errorf("failed to parse draw %s created_at: %w", d.ID, err)
			}
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}
	return draws, nil
}

// Save replaces every stored row with snap in a single transaction.
func Save(ctx context.Context, db *sql.DB, dialect Dialect, snap models.Snapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"attendance", "draws", "members", "circles"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, c := range snap.Circles {
		var target decimal.NullDecimal
		if c.TotalTarget != nil {
			target = decimal.NewNullDecimal(*c.TotalTarget)
		}
		_, err := tx.ExecContext(ctx, dialect.Rebind(
			"INSERT INTO circles (id, position, name, start_date, daily_amount, total_target) VALUES (?, ?, ?, ?, ?, ?)"),
			c.ID, i, c.Name, c.StartDate, c.DailyAmount.String(), target,
		)
		if err != nil {
			return fmt.Errorf("failed to insert circle %s: %w", c.ID, err)
		}
	}

	for i, m := range snap.Members {
		_, err := tx.ExecContext(ctx, dialect.Rebind(
			"INSERT INTO members (id, position, name, phone, circle_id, joining_date) VALUES (?, ?, ?, ?, ?, ?)"),
			m.ID, i, m.Name, m.Phone, m.CircleID, m.JoiningDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member %s: %w", m.ID, err)
		}
	}

	insertAttendance, err := tx.PrepareContext(ctx, dialect.Rebind(
		"INSERT INTO attendance (member_id, circle_id, day, position, status, amount_paid) VALUES (?, ?, ?, ?, ?, ?)"))
	if err != nil {
		return fmt.Errorf("failed to prepare attendance insert: %w", err)
	}
	defer insertAttendance.Close()
	for i, r := range snap.Attendance {
		if _, err := insertAttendance.ExecContext(ctx,
			r.MemberID, r.CircleID, r.Date, i, string(r.Status), r.AmountPaid.String(),
		); err != nil {
			return fmt.Errorf("failed to insert attendance %s/%s: %w", r.MemberID, r.Date, err)
		}
	}

	for i, d := range snap.Draws {
		created := ""
		if !d.CreatedAt.IsZero() {
			created = d.CreatedAt.UTC().Format(timeLayout)
		}
		_, err := tx.ExecContext(ctx, dialect.Rebind(
			"INSERT INTO draws (id, position, circle_id, member_id, month, amount_given, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
			d.ID, i, d.CircleID, d.MemberID, d.Month, d.AmountGiven.String(), created,
		)
		if err != nil {
			return fmt.Errorf("failed to insert draw %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
