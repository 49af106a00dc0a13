package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda/internal/domain"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("duplicate record")
	ErrOverlap       = errors.New("appointment interval overlaps an existing appointment")
	ErrSerialization = errors.New("transaction could not be serialized")
	ErrInUse         = errors.New("record is referenced by other records")
)

type Repositories struct {
	Service     ServiceRepository
	Appointment AppointmentRepository
	Tx          Transactor
	Health      HealthChecker
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Service:     NewServiceRepository(db),
		Appointment: NewAppointmentRepository(db),
		Tx:          NewTransactor(db),
		Health:      db,
	}
}

type ServiceRepository interface {
	Create(ctx context.Context, dto domain.CreateServiceDTO) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Service, error)
}

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
	// ListOverlapping returns appointments whose [start, end) intersects
	// [from, to), ordered by start time.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
}

// Transactor runs fn inside one serializable unit of work. The repositories
// passed to fn are bound to that unit of work; if fn returns an error nothing
// it wrote is kept.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// classify attaches a repository sentinel to well-known Postgres failures.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case "23P01":
		return fmt.Errorf("%w: %w", ErrOverlap, err)
	case "23503":
		return fmt.Errorf("%w: %w", ErrInUse, err)
	case "40001", "40P01":
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}
