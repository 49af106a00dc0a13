package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"agenda/internal/domain"
	"agenda/internal/repository"
)

type CatalogServiceImpl struct {
	repo   repository.ServiceRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogServiceImpl) Create(ctx context.Context, dto domain.CreateServiceDTO) (*domain.Service, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" || dto.Duration <= 0 || dto.Price == nil || *dto.Price < 0 {
		return nil, domain.ErrInvalidService
	}

	existing, err := s.repo.GetByName(ctx, dto.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("failed to check service name", zap.String("name", dto.Name), zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if existing != nil {
		return nil, domain.ErrServiceNameTaken
	}

	svc, err := s.repo.Create(ctx, dto)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrServiceNameTaken
		}
		s.logger.Error("failed to create service", zap.String("name", dto.Name), zap.Error(err))
		return nil, domain.Unavailable(err)
	}

	s.logger.Info("service created", zap.Int64("service_id", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		s.logger.Error("failed to get service", zap.Int64("service_id", id), zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	return svc, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) (*domain.Service, error) {
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, domain.ErrInvalidService
		}
		dto.Name = &name
	}
	if dto.Duration != nil && *dto.Duration <= 0 {
		return nil, domain.ErrInvalidService
	}
	if dto.Price != nil && *dto.Price < 0 {
		return nil, domain.ErrInvalidService
	}

	svc, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, domain.ErrServiceNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, domain.ErrServiceNameTaken
		}
		s.logger.Error("failed to update service", zap.Int64("service_id", id), zap.Error(err))
		return nil, domain.Unavailable(err)
	}

	s.logger.Info("service updated", zap.Int64("service_id", id))
	return svc, nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return domain.ErrServiceNotFound
		case errors.Is(err, repository.ErrInUse):
			return domain.ErrServiceInUse
		}
		s.logger.Error("failed to delete service", zap.Int64("service_id", id), zap.Error(err))
		return domain.Unavailable(err)
	}

	s.logger.Info("service deleted", zap.Int64("service_id", id))
	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list services", zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	return services, nil
}
