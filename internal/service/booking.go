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
	"agenda/pkg/validator"
)

type BookingServiceImpl struct {
	repos  *repository.Repositories
	policy *scheduling.Policy
	clock  func() time.Time
	logger *zap.Logger
}

func NewBookingService(repos *repository.Repositories, policy *scheduling.Policy, clock func() time.Time, logger *zap.Logger) *BookingServiceImpl {
	return &BookingServiceImpl{
		repos:  repos,
		policy: policy,
		clock:  clock,
		logger: logger,
	}
}

// Book validates the requested slot against the current calendar and stores
// it. Every check that depends on stored data runs inside one transaction, so
// a slot taken between listing and booking is reported as a conflict.
func (s *BookingServiceImpl) Book(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "booking.Book", trace.WithAttributes(
		attribute.Int64("service_id", dto.ServiceID),
	))
	defer span.End()

	clientName := validator.FormatName(validator.SanitizeString(dto.ClientName))
	if !validator.ValidateClientName(clientName) || !validator.ValidatePhone(dto.ClientPhone) {
		return nil, domain.ErrInvalidClient
	}
	clientPhone := validator.FormatPhone(dto.ClientPhone)

	start, err := s.policy.ParseInstant(dto.AppointmentTime)
	if err != nil {
		return nil, domain.ErrInvalidInstant
	}
	span.SetAttributes(attribute.String("start", start.Format(time.RFC3339)))

	now := s.clock()

	var created *domain.Appointment
	err = s.repos.Tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		svc, err := repos.Service.GetByID(ctx, dto.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrServiceNotFound
			}
			return err
		}

		if err := s.policy.CheckCandidate(start, svc.Length(), now); err != nil {
			return calendarError(err)
		}

		candidate := scheduling.NewInterval(start, svc.Length())
		day := s.policy.DateOf(start)
		existing, err := repos.Appointment.ListOverlapping(ctx,
			s.policy.StartOfDay(day).Add(-svc.Length()),
			s.policy.EndOfDay(day).Add(svc.Length()),
		)
		if err != nil {
			return err
		}

		if blocking, ok := scheduling.Blocking(candidate, intervalsOf(existing)); ok {
			s.logger.Info("requested slot is taken",
				zap.Int64("service_id", svc.ID),
				zap.Time("start", start),
				zap.Time("blocked_until", blocking.End),
			)
			return domain.ErrSlotTaken
		}

		created, err = repos.Appointment.Insert(ctx, domain.Appointment{
			ClientName:  clientName,
			ClientPhone: clientPhone,
			ServiceID:   svc.ID,
			StartTime:   candidate.Start,
			EndTime:     candidate.End,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		created.ServiceName = svc.Name
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, s.bookingError(err, dto.ServiceID, start)
	}

	created.StartTime = s.policy.Normalize(created.StartTime)
	created.EndTime = s.policy.Normalize(created.EndTime)

	s.logger.Info("appointment booked",
		zap.Int64("appointment_id", created.ID),
		zap.Int64("service_id", created.ServiceID),
		zap.Time("start", created.StartTime),
	)

	return created, nil
}

func (s *BookingServiceImpl) List(ctx context.Context, date string) ([]domain.Appointment, error) {
	var filter domain.AppointmentFilter
	if date != "" {
		day, err := scheduling.ParseDate(date)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		from, to := s.policy.StartOfDay(day), s.policy.EndOfDay(day)
		filter.From, filter.To = &from, &to
	}

	appointments, err := s.repos.Appointment.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list appointments", zap.String("date", date), zap.Error(err))
		return nil, domain.Unavailable(err)
	}

	for i := range appointments {
		appointments[i].StartTime = s.policy.Normalize(appointments[i].StartTime)
		appointments[i].EndTime = s.policy.Normalize(appointments[i].EndTime)
	}
	return appointments, nil
}

func (s *BookingServiceImpl) bookingError(err error, serviceID int64, start time.Time) error {
	var domainErr *domain.Error
	switch {
	case errors.As(err, &domainErr):
		return domainErr
	case errors.Is(err, repository.ErrOverlap), errors.Is(err, repository.ErrSerialization):
		s.logger.Warn("booking lost a concurrent race",
			zap.Int64("service_id", serviceID),
			zap.Time("start", start),
			zap.Error(err),
		)
		return domain.ErrSlotTaken
	case errors.Is(err, repository.ErrNotFound):
		return domain.ErrServiceNotFound
	}

	s.logger.Error("failed to book appointment",
		zap.Int64("service_id", serviceID),
		zap.Time("start", start),
		zap.Error(err),
	)
	return domain.Unavailable(err)
}

func calendarError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrNonWorkingDay):
		return domain.ErrNonWorkingDay
	case errors.Is(err, scheduling.ErrPast):
		return domain.ErrPastTime
	case errors.Is(err, scheduling.ErrOutsideWorkingHours):
		return domain.ErrOutsideWorkingHours
	case errors.Is(err, scheduling.ErrLunchBreak):
		return domain.ErrLunchBreak
	}
	return domain.BadRequest(err.Error())
}
