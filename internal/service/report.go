package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"agenda/internal/domain"
	"agenda/internal/repository"
	"agenda/internal/scheduling"
	"agenda/internal/storage"
)

const agendaLinkExpiry = 24 * time.Hour

var agendaHeader = []string{"id", "start", "end", "duration_minutes", "service", "client_name", "client_phone"}

type ReportServiceImpl struct {
	appointmentRepo repository.AppointmentRepository
	policy          *scheduling.Policy
	fileStorage     storage.FileStorage
	logger          *zap.Logger
}

// NewReportService accepts a nil fileStorage; exports then fail as unavailable.
func NewReportService(
	appointmentRepo repository.AppointmentRepository,
	policy *scheduling.Policy,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		appointmentRepo: appointmentRepo,
		policy:          policy,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// ExportAgenda writes the appointments of one day as CSV to file storage and
// returns a temporary download link.
func (s *ReportServiceImpl) ExportAgenda(ctx context.Context, date string) (*domain.AgendaExport, error) {
	ctx, span := tracer.Start(ctx, "report.ExportAgenda", trace.WithAttributes(
		attribute.String("date", date),
	))
	defer span.End()

	if s.fileStorage == nil {
		return nil, domain.ErrExportDisabled
	}

	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	from, to := s.policy.StartOfDay(day), s.policy.EndOfDay(day)
	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{From: &from, To: &to})
	if err != nil {
		s.logger.Error("failed to load agenda", zap.String("date", day.String()), zap.Error(err))
		return nil, domain.Unavailable(err)
	}

	data, err := s.renderAgenda(appointments)
	if err != nil {
		return nil, domain.Unavailable(err)
	}

	object, err := s.fileStorage.UploadFile(ctx, "reports/agenda", data, fmt.Sprintf("agenda-%s.csv", day))
	if err != nil {
		s.logger.Error("failed to upload agenda", zap.String("date", day.String()), zap.Error(err))
		span.RecordError(err)
		return nil, domain.Unavailable(err)
	}

	url, err := s.fileStorage.GetPresignedURL(ctx, object, agendaLinkExpiry)
	if err != nil {
		s.logger.Error("failed to presign agenda", zap.String("object", object), zap.Error(err))
		return nil, domain.Unavailable(err)
	}

	s.logger.Info("agenda exported",
		zap.String("date", day.String()),
		zap.Int("appointments", len(appointments)),
		zap.String("object", object),
	)

	return &domain.AgendaExport{
		Date:         day.String(),
		Appointments: len(appointments),
		Object:       object,
		URL:          url,
	}, nil
}

func (s *ReportServiceImpl) renderAgenda(appointments []domain.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(agendaHeader); err != nil {
		return nil, err
	}
	for _, a := range appointments {
		record := []string{
			strconv.FormatInt(a.ID, 10),
			s.policy.Normalize(a.StartTime).Format(time.RFC3339),
			s.policy.Normalize(a.EndTime).Format(time.RFC3339),
			strconv.Itoa(int(a.Interval().Duration() / time.Minute)),
			a.ServiceName,
			a.ClientName,
			a.ClientPhone,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
