//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agenda/internal/domain"
	"agenda/migrations"
	"agenda/pkg/database"
)

// Run with: AGENDA_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/
func newPostgresRepositories(t *testing.T) *Repositories {
	t.Helper()

	url := os.Getenv("AGENDA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("AGENDA_TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(ctx, pool, migrations.FS, zap.NewNop()))

	_, err = pool.Exec(ctx, `TRUNCATE appointments, services RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return NewRepositories(pool)
}

func appointmentAt(serviceID int64, start time.Time, length time.Duration) domain.Appointment {
	return domain.Appointment{
		ClientName:  "Ana Maria",
		ClientPhone: "11999990000",
		ServiceID:   serviceID,
		StartTime:   start,
		EndTime:     start.Add(length),
	}
}

func TestPostgresExclusionConstraint(t *testing.T) {
	ctx := context.Background()
	repos := newPostgresRepositories(t)
	svc := seedService(t, repos, "Corte", 30)

	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	_, err := repos.Appointment.Insert(ctx, appointmentAt(svc.ID, start, 30*time.Minute))
	require.NoError(t, err)

	_, err = repos.Appointment.Insert(ctx, appointmentAt(svc.ID, start.Add(15*time.Minute), 30*time.Minute))
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = repos.Appointment.Insert(ctx, appointmentAt(svc.ID, start.Add(30*time.Minute), 30*time.Minute))
	assert.NoError(t, err, "touching intervals do not overlap")
}

func TestPostgresConcurrentOverlappingTransactions(t *testing.T) {
	ctx := context.Background()
	repos := newPostgresRepositories(t)
	svc := seedService(t, repos, "Corte", 30)

	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	offsets := []time.Duration{0, 10 * time.Minute}

	var (
		wg    sync.WaitGroup
		ready sync.WaitGroup
		errs  = make([]error, len(offsets))
	)
	ready.Add(len(offsets))
	for i, offset := range offsets {
		i, offset := i, offset
		wg.Add(1)
		go func() {
			defer wg.Done()
			var once sync.Once
			arrive := func() { once.Do(ready.Done) }
			defer arrive()

			errs[i] = repos.Tx.WithinTx(ctx, func(tx *Repositories) error {
				candidate := appointmentAt(svc.ID, start.Add(offset), 30*time.Minute)
				existing, err := tx.Appointment.ListOverlapping(ctx, candidate.StartTime, candidate.EndTime)
				if err != nil {
					return err
				}
				// Both transactions have read an empty range before either writes.
				arrive()
				ready.Wait()
				if len(existing) > 0 {
					return ErrOverlap
				}
				_, err = tx.Appointment.Insert(ctx, candidate)
				return err
			})
		}()
	}
	wg.Wait()

	var committed int
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		assert.True(t, isConflict(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, committed)

	stored, err := repos.Appointment.List(ctx, domain.AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func isConflict(err error) bool {
	return errors.Is(err, ErrOverlap) || errors.Is(err, ErrSerialization)
}
