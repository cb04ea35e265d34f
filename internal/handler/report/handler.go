package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/service/report"
	"github.com/agendly/booking-api/pkg/errors"
	"github.com/agendly/booking-api/pkg/httputil"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/revenue", h.GetRevenue)
		reports.GET("/cash-flow", h.GetCashFlow)
	}
}

type rangeQuery struct {
	StartDate string `form:"start_date" binding:"required,booking_date"`
	EndDate   string `form:"end_date" binding:"required,booking_date"`
}

func (h *Handler) GetRevenue(c *gin.Context) {
	startDate, endDate, ok := h.dateRange(c)
	if !ok {
		return
	}

	result, err := h.service.RevenueTotal(c.Request.Context(), startDate, endDate)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, result)
}

func (h *Handler) GetCashFlow(c *gin.Context) {
	startDate, endDate, ok := h.dateRange(c)
	if !ok {
		return
	}

	result, err := h.service.DailyCashFlow(c.Request.Context(), startDate, endDate)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, result)
}

func (h *Handler) dateRange(c *gin.Context) (model.Date, model.Date, bool) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.RespondWithError(c, errors.Validation("start_date and end_date must be valid dates"))
		return model.Date{}, model.Date{}, false
	}

	// Both already validated as dates by the binding.
	startDate, _ := model.ParseDate(q.StartDate)
	endDate, _ := model.ParseDate(q.EndDate)
	return startDate, endDate, true
}
