package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"delivery-zones/internal/migrate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requires a disposable database, e.g. STATS_TEST_DSN=postgres://postgres@localhost:5432/zones_test?sslmode=disable
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("STATS_TEST_DSN")
	if dsn == "" {
		t.Skip("STATS_TEST_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrate.EnsureSchema(db))
	_, err = db.Exec("TRUNCATE _zone_resolve_daily")
	require.NoError(t, err)
	_, err = db.Exec("UPDATE _zone_resolve_total SET total=0, misses=0 WHERE id=1")
	require.NoError(t, err)
	return db
}

func TestRecordResolve(t *testing.T) {
	st := AttachDB(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, st.RecordResolve(ctx, "paris-1"))
	require.NoError(t, st.RecordResolve(ctx, "paris-1"))
	require.NoError(t, st.RecordResolve(ctx, "lyon-centre"))
	require.NoError(t, st.RecordResolve(ctx, ""))

	totals, err := st.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Totals{Total: 4, Misses: 1, Today: 4}, totals)

	var today time.Time
	require.NoError(t, st.DB().QueryRowContext(ctx, "SELECT current_date").Scan(&today))
	counts, err := st.DailyByZone(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, []ZoneCount{
		{ZoneID: "paris-1", Hits: 2},
		{ZoneID: "", Hits: 1},
		{ZoneID: "lyon-centre", Hits: 1},
	}, counts)
}
