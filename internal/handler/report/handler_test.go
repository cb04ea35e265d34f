package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	reportService "github.com/agendly/booking-api/internal/service/report"
	"github.com/agendly/booking-api/pkg/validator"
)

type fakeAppointmentRepo struct {
	total decimal.Decimal
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
	return f.total, nil
}

func (f *fakeAppointmentRepo) DailyCashFlow(ctx context.Context, startDate, endDate model.Date) ([]model.CashFlowEntry, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, repo *fakeAppointmentRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterBookingFormats())

	engine := gin.New()
	h := NewHandler(reportService.NewService(repo, time.Minute))
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestGetRevenue(t *testing.T) {
	engine := newTestRouter(t, &fakeAppointmentRepo{total: decimal.NewFromInt(120)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?start_date=2025-01-01&end_date=2025-01-31", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Total decimal.Decimal `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.True(t, body.Data.Total.Equal(decimal.NewFromInt(120)))
}

func TestGetRevenueRejectsMalformedDates(t *testing.T) {
	engine := newTestRouter(t, &fakeAppointmentRepo{})

	cases := []struct {
		name  string
		query string
	}{
		{name: "not a date", query: "start_date=yesterday&end_date=2025-01-31"},
		{name: "impossible day", query: "start_date=2025-01-01&end_date=2025-02-30"},
		{name: "missing end", query: "start_date=2025-01-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?"+tc.query, nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetRevenueRejectsReversedRange(t *testing.T) {
	engine := newTestRouter(t, &fakeAppointmentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?start_date=2025-06-10&end_date=2025-06-09", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
