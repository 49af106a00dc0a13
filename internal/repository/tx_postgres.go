package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTransactor struct {
	db *pgxpool.Pool
}

func NewTransactor(db *pgxpool.Pool) *PostgresTransactor {
	return &PostgresTransactor{db: db}
}

// WithinTx runs fn in a SERIALIZABLE transaction. A serialization failure is
// reported as ErrSerialization and is not retried here.
func (t *PostgresTransactor) WithinTx(ctx context.Context, fn func(repos *Repositories) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	repos := &Repositories{
		Service:     NewServiceRepository(tx),
		Appointment: NewAppointmentRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}

	return nil
}
