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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const defaultSpecificationName = "forklift"

func CreateTestParty(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	partyID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO parties (id, name, email) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		partyID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx,
			"SELECT id FROM parties WHERE email = $1", email).Scan(&partyID))
	}
	return partyID
}

// DefaultSpecificationID returns the reference specification seeded by
// SeedReferenceData.
func DefaultSpecificationID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var specID uuid.UUID
	require.NoError(t, db.QueryRow(context.Background(),
		"SELECT id FROM resource_specifications WHERE name = $1 LIMIT 1",
		defaultSpecificationName).Scan(&specID))
	return specID
}

func CreateTestResource(t *testing.T, db DBLike, specID uuid.UUID, name string, availStart, availEnd time.Time) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO resources (id, specification_id, name, availability_start, availability_end) VALUES ($1, $2, $3, $4, $5)",
		resourceID, specID, name, availStart, availEnd)
	require.NoError(t, err)
	return resourceID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO resource_specifications (id, name, description)
		SELECT gen_random_uuid(), $1, 'reference specification'
		WHERE NOT EXISTS (SELECT 1 FROM resource_specifications WHERE name = $1);
	`, defaultSpecificationName)
	return err
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
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
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
