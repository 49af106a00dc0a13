package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"agenda/internal/domain"
	"agenda/internal/repository"
	"agenda/internal/scheduling"
)

type AvailabilityServiceImpl struct {
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
	policy          *scheduling.Policy
	clock           func() time.Time
	logger          *zap.Logger
}

func NewAvailabilityService(
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
	policy *scheduling.Policy,
	clock func() time.Time,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		policy:          policy,
		clock:           clock,
		logger:          logger,
	}
}

// ListSlots reads without a transaction; a slot listed here may be taken
// before it is booked and Book re-checks it.
func (s *AvailabilityServiceImpl) ListSlots(ctx context.Context, serviceID int64, date string) (*domain.AvailableSlots, error) {
	ctx, span := tracer.Start(ctx, "availability.ListSlots", trace.WithAttributes(
		attribute.Int64("service_id", serviceID),
		attribute.String("date", date),
	))
	defer span.End()

	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		s.logger.Error("failed to load service", zap.Int64("service_id", serviceID), zap.Error(err))
		span.RecordError(err)
		return nil, domain.Unavailable(err)
	}

	booked, err := s.appointmentRepo.ListOverlapping(ctx, s.policy.StartOfDay(day), s.policy.EndOfDay(day))
	if err != nil {
		s.logger.Error("failed to load appointments", zap.String("date", day.String()), zap.Error(err))
		span.RecordError(err)
		return nil, domain.Unavailable(err)
	}

	slots := s.policy.Slots(day, svc.Length(), intervalsOf(booked), s.clock())
	span.SetAttributes(attribute.Int("slots", len(slots)))

	return &domain.AvailableSlots{
		ServiceID: svc.ID,
		Date:      day.String(),
		Slots:     slots,
	}, nil
}

func intervalsOf(appointments []domain.Appointment) []scheduling.Interval {
	intervals := make([]scheduling.Interval, 0, len(appointments))
	for _, a := range appointments {
		intervals = append(intervals, a.Interval())
	}
	return intervals
}
