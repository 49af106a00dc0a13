package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agenda/internal/domain"
	"agenda/internal/repository"
	"agenda/internal/scheduling"
	"agenda/internal/storage"
)

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}()

// Friday 2026-10-16 09:00 in São Paulo; the following Monday is 2026-10-19.
var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, saoPaulo)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, saoPaulo)
}

type testEnv struct {
	repos    *repository.Repositories
	services *Services
	now      time.Time
}

func newTestEnv(t *testing.T, fileStorage storage.FileStorage) *testEnv {
	t.Helper()

	env := &testEnv{
		repos: repository.NewMemoryRepositories(),
		now:   testNow,
	}
	env.services = NewServices(Deps{
		Repos:       env.repos,
		Logger:      zap.NewNop(),
		Policy:      scheduling.MustPolicy(scheduling.DefaultPolicyConfig()),
		Clock:       func() time.Time { return env.now },
		FileStorage: fileStorage,
	})
	return env
}

func (e *testEnv) createService(t *testing.T, name string, minutes int) *domain.Service {
	t.Helper()

	price := 50.0
	svc, err := e.services.Catalog.Create(context.Background(), domain.CreateServiceDTO{
		Name:     name,
		Duration: minutes,
		Price:    &price,
	})
	require.NoError(t, err)
	return svc
}

func (e *testEnv) book(serviceID int64, start string) (*domain.Appointment, error) {
	return e.services.Booking.Book(context.Background(), domain.CreateAppointmentDTO{
		ServiceID:       serviceID,
		AppointmentTime: start,
		ClientName:      "Ana Maria",
		ClientPhone:     "(11) 99999-0000",
	})
}
