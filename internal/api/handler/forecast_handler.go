package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/api/metrics"
	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

type ForecastHandler struct {
	service ports.ForecastService
}

func NewForecastHandler(service ports.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// Get handles GET /forecast.
//
// @Summary      Weekly demand forecast
// @Description  30-day moving average scaled to 7 days, sorted by predicted demand.
// @Tags         forecast
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ForecastItem
// @Failure      403  {object}  errorResponse
// @Router       /forecast [get]
func (h *ForecastHandler) Get(c echo.Context) error {
	start := time.Now()
	items, err := h.service.Forecast(c.Request().Context())
	metrics.ForecastDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	counts := map[domain.ForecastStatus]int{
		domain.ForecastRestock:     0,
		domain.ForecastOverstocked: 0,
		domain.ForecastSufficient:  0,
	}
	for _, it := range items {
		counts[it.Status]++
	}
	for status, n := range counts {
		metrics.ForecastProducts.WithLabelValues(string(status)).Set(float64(n))
	}

	return c.JSON(http.StatusOK, items)
}
