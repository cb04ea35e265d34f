package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agendly/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// ClientRepository handles the client side of the catalog
	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Client, error)
		Search(ctx context.Context, name string) ([]*model.Client, error)
		ExistsByName(ctx context.Context, name string) (bool, error)
		CountAppointments(ctx context.Context, id uuid.UUID) (int, error)
	}

	// ServiceRepository handles the service side of the catalog
	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Service, error)
		Search(ctx context.Context, name string) ([]*model.Service, error)
		ExistsByName(ctx context.Context, name string) (bool, error)
		CountAppointments(ctx context.Context, id uuid.UUID) (int, error)
	}

	// AppointmentWriter is the transactional view an appointment write runs
	// against. Overlap lookup and persist share one transaction so two
	// concurrent bookings for the same slot cannot both commit.
	AppointmentWriter interface {
		FindOverlapping(ctx context.Context, date model.Date, start, end model.TimeOfDay) ([]*model.Appointment, error)
		Save(ctx context.Context, appointment *model.Appointment) error
	}

	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByDate(ctx context.Context, date model.Date) ([]*model.Appointment, error)
		ListByDateFrom(ctx context.Context, date model.Date, start model.TimeOfDay) ([]*model.Appointment, error)
		// Transact serializes all writers touching the given date and runs fn
		// inside the transaction.
		Transact(ctx context.Context, date model.Date, fn func(AppointmentWriter) error) error
		SumServiceValues(ctx context.Context, startDate, endDate model.Date) (decimal.Decimal, error)
		DailyCashFlow(ctx context.Context, startDate, endDate model.Date) ([]model.CashFlowEntry, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)

// ErrNoRows is returned by implementations when a lookup matches nothing.
// Services translate it into their own not-found kinds.
var ErrNoRows = errors.New("record not found")
