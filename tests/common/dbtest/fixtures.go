//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// bcrypt hash of "password123"
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestAdmin(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	adminID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO admins (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		adminID, email, TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM admins WHERE email = $1", email).Scan(&adminID)
		require.NoError(t, err)
	}

	return adminID
}

func DeactivateTestAdmin(t *testing.T, db DBLike, adminID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE admins SET is_active = false WHERE id = $1", adminID)
	require.NoError(t, err)
}

func CreateTestCategory(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	categoryID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", categoryID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM categories WHERE name = $1", name).Scan(&categoryID)
		require.NoError(t, err)
	}

	return categoryID
}

// inserts an active catalog item; total is ignored when unlimited is set
func CreateTestEquipment(t *testing.T, db DBLike, name string, total int, unlimited bool) uuid.UUID {
	t.Helper()

	equipmentID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO equipment (id, name, total_quantity, is_unlimited) VALUES ($1, $2, $3, $4)",
		equipmentID, name, total, unlimited)
	require.NoError(t, err)

	return equipmentID
}

func SetEquipmentActive(t *testing.T, db DBLike, equipmentID uuid.UUID, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE equipment SET is_active = $2 WHERE id = $1", equipmentID, active)
	require.NoError(t, err)
}

func CreateTestReservation(t *testing.T, db DBLike, equipmentID uuid.UUID, quantity int, start, end time.Time, status, contact string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO reservations (id, equipment_id, quantity, start_time, end_time, status, requester_name, requester_contact, department)
		 VALUES ($1, $2, $3, $4, $5, $6, 'Test Requester', $7, 'ICU')`,
		reservationID, equipmentID, quantity, start, end, status, contact)
	require.NoError(t, err)

	return reservationID
}

func CountReservations(t *testing.T, db DBLike, equipmentID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM reservations WHERE equipment_id = $1", equipmentID).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO categories (id, name, description) VALUES
		    (gen_random_uuid(), 'General', 'Uncategorised equipment'),
		    (gen_random_uuid(), 'Monitoring', 'Patient monitors and sensors')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
