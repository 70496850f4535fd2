// Package testsupport provides scheduling fixtures for tests: bun models
// for employees and shifts, an in-memory database helper, and seeders
// producing deterministic ordered data.
package testsupport

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/internal/dbconn"
)

// Employee is the minimal employee row used by storage-backed tests.
type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	ID       int64  `bun:"id,pk,autoincrement"`
	PublicID string `bun:"public_id,notnull"`
	Name     string `bun:"name,notnull"`
	Role     string `bun:"role,notnull"`
}

// Shift is a single assignment of an employee to a working window.
type Shift struct {
	bun.BaseModel `bun:"table:shifts"`

	ID         int64  `bun:"id,pk,autoincrement"`
	EmployeeID int64  `bun:"employee_id,notnull"`
	Date       string `bun:"date,notnull"`
	StartTime  string `bun:"start_time,notnull"`
	EndTime    string `bun:"end_time,notnull"`
}

// OpenSQLite returns an isolated in-memory database with the fixture
// schema created. The handle is closed when the test finishes.
func OpenSQLite(t *testing.T) *bun.DB {
	t.Helper()

	db, err := dbconn.Open(dbconn.Config{
		Driver:       dbconn.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, model := range []any{(*Employee)(nil), (*Shift)(nil)} {
		if _, err := db.NewCreateTable().Model(model).Exec(ctx); err != nil {
			t.Fatalf("create fixture table: %v", err)
		}
	}
	return db
}

// SeedEmployees inserts n employees named Employee 001..n and returns
// them with assigned ids, ordered by id ascending.
func SeedEmployees(t *testing.T, db *bun.DB, n int) []Employee {
	t.Helper()

	employees := make([]Employee, 0, n)
	for i := 1; i <= n; i++ {
		employees = append(employees, Employee{
			PublicID: uuid.NewString(),
			Name:     fmt.Sprintf("Employee %03d", i),
			Role:     "server",
		})
	}
	if _, err := db.NewInsert().Model(&employees).Exec(context.Background()); err != nil {
		t.Fatalf("seed employees: %v", err)
	}
	return employees
}

// SeedShifts inserts one shift per employee on the given date.
func SeedShifts(t *testing.T, db *bun.DB, employees []Employee, date string) []Shift {
	t.Helper()

	shifts := make([]Shift, 0, len(employees))
	for _, e := range employees {
		shifts = append(shifts, Shift{
			EmployeeID: e.ID,
			Date:       date,
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
	}
	if _, err := db.NewInsert().Model(&shifts).Exec(context.Background()); err != nil {
		t.Fatalf("seed shifts: %v", err)
	}
	return shifts
}
