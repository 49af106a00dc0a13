package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agenda/internal/domain"
)

const serviceColumns = `id, name, duration_minutes, price, created_at, updated_at`

type ServiceRepo struct {
	db DBTX
}

func NewServiceRepository(db DBTX) *ServiceRepo {
	return &ServiceRepo{
		db: db,
	}
}

func (r *ServiceRepo) Create(ctx context.Context, dto domain.CreateServiceDTO) (*domain.Service, error) {
	query := `
		INSERT INTO services (name, duration_minutes, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + serviceColumns

	var price float64
	if dto.Price != nil {
		price = *dto.Price
	}

	service, err := scanService(r.db.QueryRow(ctx, query, dto.Name, dto.Duration, price, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("create service: %w", classify(err))
	}
	return service, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, classify(err))
	}
	return service, nil
}

func (r *ServiceRepo) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE name = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get service by name: %w", classify(err))
	}
	return service, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) (*domain.Service, error) {
	var updateFields []string
	var args []interface{}

	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}

	if dto.Duration != nil {
		updateFields = append(updateFields, fmt.Sprintf("duration_minutes = $%d", argCount))
		args = append(args, *dto.Duration)
		argCount++
	}

	if dto.Price != nil {
		updateFields = append(updateFields, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *dto.Price)
		argCount++
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE services
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(updateFields, ", "), argCount, serviceColumns)

	service, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("update service %d: %w", id, classify(err))
	}
	return service, nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete service %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", classify(err))
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, *service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", classify(err))
	}

	return services, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Duration,
		&service.Price,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}
