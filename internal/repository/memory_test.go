package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domain"
)

func price(v float64) *float64 { return &v }

func seedService(t *testing.T, repos *Repositories, name string, minutes int) *domain.Service {
	t.Helper()
	svc, err := repos.Service.Create(context.Background(), domain.CreateServiceDTO{
		Name:     name,
		Duration: minutes,
		Price:    price(50),
	})
	require.NoError(t, err)
	return svc
}

func TestMemoryServiceCatalog(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()

	cut := seedService(t, repos, "Corte", 30)
	seedService(t, repos, "Barba", 15)

	_, err := repos.Service.Create(ctx, domain.CreateServiceDTO{Name: "Corte", Duration: 45, Price: price(10)})
	assert.ErrorIs(t, err, ErrDuplicate)

	byName, err := repos.Service.GetByName(ctx, "Corte")
	require.NoError(t, err)
	assert.Equal(t, cut.ID, byName.ID)

	list, err := repos.Service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Barba", list[0].Name)

	newName := "Barba"
	_, err = repos.Service.Update(ctx, cut.ID, domain.UpdateServiceDTO{Name: &newName})
	assert.ErrorIs(t, err, ErrDuplicate)

	duration := 40
	updated, err := repos.Service.Update(ctx, cut.ID, domain.UpdateServiceDTO{Duration: &duration})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Duration)

	_, err = repos.Service.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryInsertRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()
	svc := seedService(t, repos, "Corte", 30)

	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	first, err := repos.Appointment.Insert(ctx, domain.Appointment{
		ClientName: "Ana", ClientPhone: "11999990000", ServiceID: svc.ID,
		StartTime: start, EndTime: start.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Corte", first.ServiceName)

	_, err = repos.Appointment.Insert(ctx, domain.Appointment{
		ClientName: "Bia", ClientPhone: "11999990001", ServiceID: svc.ID,
		StartTime: start.Add(15 * time.Minute), EndTime: start.Add(45 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = repos.Appointment.Insert(ctx, domain.Appointment{
		ClientName: "Bia", ClientPhone: "11999990001", ServiceID: svc.ID,
		StartTime: start.Add(30 * time.Minute), EndTime: start.Add(time.Hour),
	})
	assert.NoError(t, err, "touching intervals do not overlap")

	err = repos.Service.Delete(ctx, svc.ID)
	assert.ErrorIs(t, err, ErrInUse)
}

func TestMemoryListOverlapping(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()
	svc := seedService(t, repos, "Corte", 30)

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	for _, h := range []int{15, 9, 12} {
		start := day.Add(time.Duration(h) * time.Hour)
		_, err := repos.Appointment.Insert(ctx, domain.Appointment{
			ClientName: "Ana", ClientPhone: "11999990000", ServiceID: svc.ID,
			StartTime: start, EndTime: start.Add(30 * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := repos.Appointment.ListOverlapping(ctx, day.Add(9*time.Hour+30*time.Minute), day.Add(15*time.Hour+1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 12, got[0].StartTime.Hour())
	assert.Equal(t, 15, got[1].StartTime.Hour())

	from := day.Add(10 * time.Hour)
	listed, err := repos.Appointment.List(ctx, domain.AppointmentFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestMemoryTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()
	boom := errors.New("boom")

	err := repos.Tx.WithinTx(ctx, func(tx *Repositories) error {
		_, err := tx.Service.Create(ctx, domain.CreateServiceDTO{Name: "Escova", Duration: 60, Price: price(80)})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := repos.Service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = repos.Tx.WithinTx(ctx, func(tx *Repositories) error {
		_, err := tx.Service.Create(ctx, domain.CreateServiceDTO{Name: "Escova", Duration: 60, Price: price(80)})
		return err
	})
	require.NoError(t, err)

	list, err = repos.Service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, repos.Health.Ping(ctx))
}
