package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	apperrors "github.com/agendly/booking-api/pkg/errors"
)

// Service orchestrates appointment booking: temporal validation, conflict
// detection, reference resolution and persistence.
type Service struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
	services     repository.ServiceRepository
	outbox       repository.OutboxRepository
	logger       zerolog.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	clients repository.ClientRepository,
	services repository.ServiceRepository,
	outbox repository.OutboxRepository,
	logger zerolog.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		clients:      clients,
		services:     services,
		outbox:       outbox,
		logger:       logger,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if !req.Start.Before(req.End) {
		return nil, apperrors.InvalidInterval()
	}

	appointment := &model.Appointment{
		Date:  req.Date,
		Start: req.Start,
		End:   req.End,
	}

	err := s.appointments.Transact(ctx, req.Date, func(w repository.AppointmentWriter) error {
		if err := s.checkConflict(ctx, w, req.Date, req.Start, req.End, uuid.Nil); err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, appointment, req.ClientID, req.ServiceIDs); err != nil {
			return err
		}
		return w.Save(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventAppointmentCreated, appointment)
	return appointment, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if !req.Start.Before(req.End) {
		return nil, apperrors.InvalidInterval()
	}

	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.AppointmentNotFound()
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointment.Date = req.Date
	appointment.Start = req.Start
	appointment.End = req.End

	err = s.appointments.Transact(ctx, req.Date, func(w repository.AppointmentWriter) error {
		if err := s.checkConflict(ctx, w, req.Date, req.Start, req.End, id); err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, appointment, req.ClientID, req.ServiceIDs); err != nil {
			return err
		}
		return w.Save(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventAppointmentUpdated, appointment)
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.AppointmentNotFound()
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.AppointmentNotFound()
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventAppointmentCancelled, appointment)
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListByDate(ctx context.Context, date model.Date) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// ListByDateFrom returns appointments on date starting at or after start.
func (s *Service) ListByDateFrom(ctx context.Context, date model.Date, start model.TimeOfDay) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListByDateFrom(ctx, date, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// checkConflict queries every appointment on date overlapping [start, end)
// and excludes excludeID from the whole result set, so an update never
// conflicts with its own prior record regardless of result order.
func (s *Service) checkConflict(ctx context.Context, w repository.AppointmentWriter, date model.Date, start, end model.TimeOfDay, excludeID uuid.UUID) error {
	overlapping, err := w.FindOverlapping(ctx, date, start, end)
	if err != nil {
		return fmt.Errorf("failed to find overlapping appointments: %w", err)
	}

	for _, other := range overlapping {
		if other.ID != excludeID {
			return apperrors.SchedulingConflict(date, start, end)
		}
	}
	return nil
}

// resolveReferences embeds the client and the ordered service list, failing
// fast on the first unresolved service id.
func (s *Service) resolveReferences(ctx context.Context, appointment *model.Appointment, clientID uuid.UUID, serviceIDs []uuid.UUID) error {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.ClientNotFound()
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	services := make([]*model.Service, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		svc, err := s.services.Get(ctx, serviceID)
		if err != nil {
			if errors.Is(err, repository.ErrNoRows) {
				return apperrors.ServiceNotFound(serviceID)
			}
			return fmt.Errorf("failed to get service: %w", err)
		}
		services = append(services, svc)
	}

	appointment.ClientID = client.ID
	appointment.Client = client
	appointment.Services = services
	return nil
}

// recordEvent writes a lifecycle event to the outbox. Event delivery is
// best-effort; a failed write never fails the booking itself.
func (s *Service) recordEvent(ctx context.Context, eventType string, appointment *model.Appointment) {
	payload := model.AppointmentEventPayload{
		AppointmentID: appointment.ID,
		Date:          appointment.Date,
		Start:         appointment.Start,
		End:           appointment.End,
	}
	if appointment.Client != nil {
		payload.ClientName = appointment.Client.Name
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal outbox payload")
		return
	}

	event := &model.OutboxEvent{EventType: eventType, Payload: raw}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to record outbox event")
	}
}
