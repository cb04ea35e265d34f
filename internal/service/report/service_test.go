package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	apperrors "github.com/agendly/booking-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	total    decimal.Decimal
	entries  []model.CashFlowEntry
	sumCalls int
}

func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	panic("not used")
}
func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error { panic("not used") }
func (f *fakeAppointmentRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	panic("not used")
}
func (f *fakeAppointmentRepo) ListByDate(ctx context.Context, date model.Date) ([]*model.Appointment, error) {
	panic("not used")
}
func (f *fakeAppointmentRepo) ListByDateFrom(ctx context.Context, date model.Date, start model.TimeOfDay) ([]*model.Appointment, error) {
	panic("not used")
}
func (f *fakeAppointmentRepo) Transact(ctx context.Context, date model.Date, fn func(repository.AppointmentWriter) error) error {
	panic("not used")
}

func (f *fakeAppointmentRepo) SumServiceValues(ctx context.Context, startDate, endDate model.Date) (decimal.Decimal, error) {
	f.sumCalls++
	return f.total, nil
}

func (f *fakeAppointmentRepo) DailyCashFlow(ctx context.Context, startDate, endDate model.Date) ([]model.CashFlowEntry, error) {
	return f.entries, nil
}

func newService(repo *fakeAppointmentRepo) *Service {
	return NewService(repo, time.Minute)
}

func TestValidateRange(t *testing.T) {
	svc := newService(&fakeAppointmentRepo{})

	cases := []struct {
		name       string
		start, end model.Date
		wantErr    error
	}{
		{
			name:  "same day",
			start: model.NewDate(2025, time.January, 1),
			end:   model.NewDate(2025, time.January, 1),
		},
		{
			name:  "under a year",
			start: model.NewDate(2025, time.January, 1),
			end:   model.NewDate(2025, time.December, 31),
		},
		{
			name:  "exactly one year",
			start: model.NewDate(2025, time.January, 1),
			end:   model.NewDate(2026, time.January, 1),
		},
		{
			name:    "one day over a year",
			start:   model.NewDate(2025, time.January, 1),
			end:     model.NewDate(2026, time.January, 2),
			wantErr: apperrors.PeriodTooLong(),
		},
		{
			name:    "end before start",
			start:   model.NewDate(2025, time.June, 10),
			end:     model.NewDate(2025, time.June, 9),
			wantErr: apperrors.EndBeforeStart(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ValidateRange(tc.start, tc.end)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestRevenueTotalZeroWhenEmpty(t *testing.T) {
	svc := newService(&fakeAppointmentRepo{total: decimal.Zero})

	report, err := svc.RevenueTotal(context.Background(),
		model.NewDate(2025, time.January, 1), model.NewDate(2025, time.January, 31))
	require.NoError(t, err)
	assert.True(t, report.Total.Equal(decimal.Zero))
}

func TestRevenueTotal(t *testing.T) {
	svc := newService(&fakeAppointmentRepo{total: decimal.NewFromInt(65)})

	report, err := svc.RevenueTotal(context.Background(),
		model.NewDate(2025, time.January, 1), model.NewDate(2025, time.January, 31))
	require.NoError(t, err)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(65)))
}

func TestRevenueTotalRejectsInvalidRange(t *testing.T) {
	svc := newService(&fakeAppointmentRepo{})

	_, err := svc.RevenueTotal(context.Background(),
		model.NewDate(2025, time.June, 10), model.NewDate(2025, time.June, 9))
	assert.ErrorIs(t, err, apperrors.EndBeforeStart())
}

func TestRevenueTotalCached(t *testing.T) {
	repo := &fakeAppointmentRepo{total: decimal.NewFromInt(10)}
	svc := newService(repo)
	ctx := context.Background()
	start := model.NewDate(2025, time.January, 1)
	end := model.NewDate(2025, time.January, 31)

	_, err := svc.RevenueTotal(ctx, start, end)
	require.NoError(t, err)
	_, err = svc.RevenueTotal(ctx, start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.sumCalls)
}

func TestDailyCashFlow(t *testing.T) {
	entries := []model.CashFlowEntry{
		{Date: model.NewDate(2025, time.January, 10), Total: decimal.NewFromInt(50)},
		{Date: model.NewDate(2025, time.January, 20), Total: decimal.NewFromInt(15)},
	}
	svc := newService(&fakeAppointmentRepo{entries: entries})

	report, err := svc.DailyCashFlow(context.Background(),
		model.NewDate(2025, time.January, 1), model.NewDate(2025, time.January, 31))
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "2025-01-10", report.Entries[0].Date.String())
	assert.True(t, report.Entries[0].Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "2025-01-20", report.Entries[1].Date.String())
	assert.True(t, report.Entries[1].Total.Equal(decimal.NewFromInt(15)))
}

func TestDailyCashFlowRejectsLongPeriod(t *testing.T) {
	svc := newService(&fakeAppointmentRepo{})

	_, err := svc.DailyCashFlow(context.Background(),
		model.NewDate(2024, time.January, 1), model.NewDate(2026, time.January, 1))
	assert.ErrorIs(t, err, apperrors.PeriodTooLong())
}
