package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	apperrors "github.com/agendly/booking-api/pkg/errors"
)

// ClientService manages the client registry. Clients and services share the
// same catalog semantics: case-insensitive name uniqueness and a delete
// guard on linked appointments.
type ClientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) Create(ctx context.Context, name string) (*model.Client, error) {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check client name: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateName(name)
	}

	client := &model.Client{Name: name}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ClientNotFound()
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// Update renames a client. A new name that matches any existing record
// case-insensitively is a conflict, the client's own current name included.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, name string) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ClientNotFound()
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check client name: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateName(name)
	}

	client.Name = name
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.ClientNotFound()
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	count, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count client appointments: %w", err)
	}
	if count > 0 {
		return apperrors.LinkedAppointments(count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *ClientService) List(ctx context.Context) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Search(ctx context.Context, name string) ([]*model.Client, error) {
	clients, err := s.repo.Search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return clients, nil
}
