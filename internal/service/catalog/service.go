package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	apperrors "github.com/agendly/booking-api/pkg/errors"
)

// ServiceCatalog manages the bookable-service registry.
type ServiceCatalog struct {
	repo repository.ServiceRepository
}

func NewServiceCatalog(repo repository.ServiceRepository) *ServiceCatalog {
	return &ServiceCatalog{repo: repo}
}

func (s *ServiceCatalog) Create(ctx context.Context, name string, value decimal.Decimal, duration int) (*model.Service, error) {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check service name: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateName(name)
	}

	service := &model.Service{Name: name, Value: value, Duration: duration}
	if err := s.repo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *ServiceCatalog) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	service, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ServiceNotFound(id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

// Update replaces name, value and duration. The duplicate-name guard is the
// same as for clients: matching any existing record, itself included, is
// rejected.
func (s *ServiceCatalog) Update(ctx context.Context, id uuid.UUID, name string, value decimal.Decimal, duration int) (*model.Service, error) {
	service, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ServiceNotFound(id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check service name: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateName(name)
	}

	service.Name = name
	service.Value = value
	service.Duration = duration
	if err := s.repo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

func (s *ServiceCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.ServiceNotFound(id)
		}
		return fmt.Errorf("failed to get service: %w", err)
	}

	count, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count service appointments: %w", err)
	}
	if count > 0 {
		return apperrors.LinkedAppointments(count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (s *ServiceCatalog) List(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *ServiceCatalog) Search(ctx context.Context, name string) ([]*model.Service, error) {
	services, err := s.repo.Search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}
	return services, nil
}
