package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"agenda/internal/domain"
	"agenda/internal/repository"
	"agenda/internal/scheduling"
	"agenda/internal/storage"
)

var tracer = otel.Tracer("agenda/internal/service")

type Deps struct {
	Repos  *repository.Repositories
	Logger *zap.Logger
	Policy *scheduling.Policy
	// Clock defaults to time.Now.
	Clock       func() time.Time
	FileStorage storage.FileStorage
}

type Services struct {
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
	Report       ReportService
}

func NewServices(deps Deps) *Services {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Services{
		Catalog:      NewCatalogService(deps.Repos.Service, deps.Logger),
		Availability: NewAvailabilityService(deps.Repos.Service, deps.Repos.Appointment, deps.Policy, clock, deps.Logger),
		Booking:      NewBookingService(deps.Repos, deps.Policy, clock, deps.Logger),
		Report:       NewReportService(deps.Repos.Appointment, deps.Policy, deps.FileStorage, deps.Logger),
	}
}

type CatalogService interface {
	Create(ctx context.Context, dto domain.CreateServiceDTO) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Service, error)
}

type AvailabilityService interface {
	ListSlots(ctx context.Context, serviceID int64, date string) (*domain.AvailableSlots, error)
}

type BookingService interface {
	Book(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	// List returns appointments in ascending start order; an empty date lists
	// everything.
	List(ctx context.Context, date string) ([]domain.Appointment, error)
}

type ReportService interface {
	ExportAgenda(ctx context.Context, date string) (*domain.AgendaExport, error)
}
