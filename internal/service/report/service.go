package report

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	apperrors "github.com/agendly/booking-api/pkg/errors"
)

// Service computes revenue aggregations over bounded date ranges. Results
// are cached briefly since reports are read far more often than bookings
// change within a single range.
type Service struct {
	appointments repository.AppointmentRepository
	cache        *cache.Cache
}

func NewService(appointments repository.AppointmentRepository, cacheTTL time.Duration) *Service {
	return &Service{
		appointments: appointments,
		cache:        cache.New(cacheTTL, 2*cacheTTL),
	}
}

// ValidateRange enforces the report window rules: the span may not exceed
// exactly one calendar year (start + 1 year is the allowed maximum), and the
// end date may not precede the start date. The period-length check runs
// first.
func (s *Service) ValidateRange(startDate, endDate model.Date) error {
	if endDate.After(startDate.AddYears(1)) {
		return apperrors.PeriodTooLong()
	}
	if endDate.Before(startDate) {
		return apperrors.EndBeforeStart()
	}
	return nil
}

func (s *Service) RevenueTotal(ctx context.Context, startDate, endDate model.Date) (*model.RevenueReport, error) {
	if err := s.ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("revenue:%s:%s", startDate, endDate)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.RevenueReport), nil
	}

	total, err := s.appointments.SumServiceValues(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue total: %w", err)
	}

	report := &model.RevenueReport{
		StartDate: startDate,
		EndDate:   endDate,
		Total:     total,
	}
	s.cache.SetDefault(key, report)
	return report, nil
}

func (s *Service) DailyCashFlow(ctx context.Context, startDate, endDate model.Date) (*model.CashFlowReport, error) {
	if err := s.ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cashflow:%s:%s", startDate, endDate)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.CashFlowReport), nil
	}

	entries, err := s.appointments.DailyCashFlow(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cash flow: %w", err)
	}

	report := &model.CashFlowReport{
		StartDate: startDate,
		EndDate:   endDate,
		Entries:   entries,
	}
	s.cache.SetDefault(key, report)
	return report, nil
}
