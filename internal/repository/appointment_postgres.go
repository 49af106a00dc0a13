package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agenda/internal/domain"
)

const appointmentSelect = `
	SELECT a.id, a.client_name, a.client_phone, a.service_id, s.name,
	       a.start_time, a.end_time, a.created_at
	FROM appointments a
	JOIN services s ON a.service_id = s.id
`

type AppointmentRepo struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

// Insert stores the appointment. The appointments_no_overlap exclusion
// constraint rejects any row whose [start_time, end_time) intersects an
// existing one; that failure is reported as ErrOverlap.
func (r *AppointmentRepo) Insert(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	query := `
		INSERT INTO appointments (client_name, client_phone, service_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	createdAt := appointment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := r.db.QueryRow(ctx, query,
		appointment.ClientName,
		appointment.ClientPhone,
		appointment.ServiceID,
		appointment.StartTime,
		appointment.EndTime,
		createdAt,
	).Scan(&appointment.ID, &appointment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", classify(err))
	}

	return &appointment, nil
}

func (r *AppointmentRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.start_time < $2 AND a.end_time > $1
		ORDER BY a.start_time ASC
	`

	return r.query(ctx, query, from, to)
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.start_time >= $%d", argCount))
		args = append(args, *filter.From)
		argCount++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.start_time < $%d", argCount))
		args = append(args, *filter.To)
		argCount++
	}

	query := appointmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.start_time ASC"

	return r.query(ctx, query, args...)
}

func (r *AppointmentRepo) query(ctx context.Context, query string, args ...interface{}) ([]domain.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", classify(err))
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.ClientName,
			&appointment.ClientPhone,
			&appointment.ServiceID,
			&appointment.ServiceName,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", classify(err))
	}

	return appointments, nil
}
