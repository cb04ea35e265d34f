package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
)

const appointmentColumns = `
	a.id, a.client_id, a.date, a.start_time, a.end_time,
	a.created_at, a.updated_at,
	c.id AS "client.id", c.name AS "client.name",
	c.created_at AS "client.created_at", c.updated_at AS "client.updated_at"
`

// appointmentRow flattens the appointment/client join for sqlx scanning.
type appointmentRow struct {
	model.Base
	ClientID uuid.UUID       `db:"client_id"`
	Date     model.Date      `db:"date"`
	Start    model.TimeOfDay `db:"start_time"`
	End      model.TimeOfDay `db:"end_time"`
	Client   model.Client    `db:"client"`
}

func (row *appointmentRow) toModel() *model.Appointment {
	client := row.Client
	return &model.Appointment{
		Base:     row.Base,
		ClientID: row.ClientID,
		Client:   &client,
		Date:     row.Date,
		Start:    row.Start,
		End:      row.End,
	}
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.id = $1
	`
	var row appointmentRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointment := row.toModel()
	if err := attachServices(ctx, r.db, []*model.Appointment{appointment}); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		ORDER BY a.date ASC, a.start_time ASC
	`
	return r.selectAppointments(ctx, query)
}

func (r *appointmentRepository) ListByDate(ctx context.Context, date model.Date) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.date = $1
		ORDER BY a.date ASC, a.start_time ASC
	`
	return r.selectAppointments(ctx, query, date)
}

func (r *appointmentRepository) ListByDateFrom(ctx context.Context, date model.Date, start model.TimeOfDay) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.date = $1 AND a.start_time >= $2
		ORDER BY a.date ASC, a.start_time ASC
	`
	return r.selectAppointments(ctx, query, date, start)
}

func (r *appointmentRepository) selectAppointments(ctx context.Context, query string, args ...interface{}) ([]*model.Appointment, error) {
	rows := []*appointmentRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	appointments := make([]*model.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, row.toModel())
	}
	if err := attachServices(ctx, r.db, appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Transact opens a transaction and takes a per-date advisory lock before
// running fn. Concurrent writers for the same date serialize here, which is
// what keeps "find overlaps, then persist" race-free.
func (r *appointmentRepository) Transact(ctx context.Context, date model.Date, fn func(repository.AppointmentWriter) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, dateLockKey(date)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to acquire date lock: %w", err)
	}

	if err := fn(&txAppointmentWriter{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func dateLockKey(date model.Date) int64 {
	h := fnv.New64a()
	h.Write([]byte("appointments:" + date.String()))
	return int64(h.Sum64())
}

type txAppointmentWriter struct {
	tx *sqlx.Tx
}

func (w *txAppointmentWriter) FindOverlapping(ctx context.Context, date model.Date, start, end model.TimeOfDay) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.date = $1 AND a.start_time < $2 AND a.end_time > $3
		ORDER BY a.start_time ASC
	`
	rows := []*appointmentRow{}
	if err := w.tx.SelectContext(ctx, &rows, query, date, end, start); err != nil {
		return nil, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}

	appointments := make([]*model.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, row.toModel())
	}
	return appointments, nil
}

func (w *txAppointmentWriter) Save(ctx context.Context, appointment *model.Appointment) error {
	now := time.Now()
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
		appointment.CreatedAt = now
	}
	appointment.UpdatedAt = now

	query := `
		INSERT INTO appointments (id, client_id, date, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = EXCLUDED.updated_at
	`
	_, err := w.tx.ExecContext(ctx, query,
		appointment.ID,
		appointment.ClientID,
		appointment.Date,
		appointment.Start,
		appointment.End,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}

	// Replace the join rows; position preserves display order.
	if _, err := w.tx.ExecContext(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, appointment.ID); err != nil {
		return fmt.Errorf("failed to clear appointment services: %w", err)
	}
	for i, svc := range appointment.Services {
		_, err := w.tx.ExecContext(ctx,
			`INSERT INTO appointment_services (appointment_id, service_id, position) VALUES ($1, $2, $3)`,
			appointment.ID, svc.ID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to link appointment service: %w", err)
		}
	}
	return nil
}

func (r *appointmentRepository) SumServiceValues(ctx context.Context, startDate, endDate model.Date) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.value), 0)
		FROM appointment_services aps
		JOIN appointments a ON a.id = aps.appointment_id
		JOIN services s ON s.id = aps.service_id
		WHERE a.date BETWEEN $1 AND $2
	`
	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, startDate, endDate); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum service values: %w", err)
	}
	return total, nil
}

func (r *appointmentRepository) DailyCashFlow(ctx context.Context, startDate, endDate model.Date) ([]model.CashFlowEntry, error) {
	query := `
		SELECT a.date AS date, SUM(s.value) AS total
		FROM appointment_services aps
		JOIN appointments a ON a.id = aps.appointment_id
		JOIN services s ON s.id = aps.service_id
		WHERE a.date BETWEEN $1 AND $2
		GROUP BY a.date
		ORDER BY a.date ASC
	`
	entries := []model.CashFlowEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to aggregate cash flow: %w", err)
	}
	return entries, nil
}

// attachServices loads the ordered service list for each appointment in one
// round trip.
func attachServices(ctx context.Context, db sqlx.ExtContext, appointments []*model.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(appointments))
	byID := make(map[uuid.UUID]*model.Appointment, len(appointments))
	for _, appointment := range appointments {
		appointment.Services = []*model.Service{}
		ids = append(ids, appointment.ID)
		byID[appointment.ID] = appointment
	}

	query := `
		SELECT aps.appointment_id, s.id, s.name, s.value, s.duration, s.created_at, s.updated_at
		FROM appointment_services aps
		JOIN services s ON s.id = aps.service_id
		WHERE aps.appointment_id = ANY($1)
		ORDER BY aps.appointment_id, aps.position ASC
	`
	type serviceRow struct {
		AppointmentID uuid.UUID `db:"appointment_id"`
		model.Service
	}

	rows := []*serviceRow{}
	if err := sqlx.SelectContext(ctx, db, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load appointment services: %w", err)
	}

	for _, row := range rows {
		svc := row.Service
		byID[row.AppointmentID].Services = append(byID[row.AppointmentID].Services, &svc)
	}
	return nil
}
