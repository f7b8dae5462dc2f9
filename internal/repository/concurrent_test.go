package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cowandilla/clccal/internal/db"
	"github.com/cowandilla/clccal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed database. Unlike :memory:, a
// file-backed DB shares state across all pooled connections, which WAL
// concurrency tests need.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite checks that concurrent view fetches
// see consistent rows while events are being added.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEventRepo(database)

	const writes = 20
	var wg sync.WaitGroup
	errs := make(chan error, writes+50)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			ev := testutil.NewTestEventRow(fmt.Sprintf("Event-%d", i), fmt.Sprintf("2026-03-%02d", i+1))
			if err := repo.Create(ctx, ev); err != nil {
				errs <- err
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				rows, err := repo.List(ctx, EventFilter{})
				if err != nil {
					errs <- err
					continue
				}
				for j := 1; j < len(rows); j++ {
					if rows[j].EventDate < rows[j-1].EventDate {
						errs <- fmt.Errorf("rows out of order at %d", j)
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	all, err := repo.List(ctx, EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, writes)
}
