package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/api/metrics"
	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a sale submission safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// SaleHandler handles HTTP requests for sales.
type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// Record handles POST /sales.
//
// @Summary      Record a sale
// @Description  Decrements stock atomically. Retries carrying the same Idempotency-Key return the original sale.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Idempotency key to prevent duplicate sales"
// @Param        body             body      saleRequest  true   "Sale"
// @Success      201              {object}  domain.Sale
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /sales [post]
func (h *SaleHandler) Record(c echo.Context) error {
	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SaleRejectionsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sale, err := h.service.Record(c.Request().Context(), ports.RecordSaleInput{
		ProductID:      req.ProductID,
		QuantitySold:   req.QuantitySold,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		metrics.SaleRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}

	metrics.SalesRecordedTotal.Inc()
	metrics.UnitsSoldTotal.Add(float64(sale.QuantitySold))
	return c.JSON(http.StatusCreated, sale)
}

// Report handles GET /sales/report.
//
// @Summary      Sales report
// @Description  Both bounds are needed to filter; otherwise every sale is returned.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  false  "RFC 3339 timestamp or YYYY-MM-DD"
// @Param        endDate    query     string  false  "RFC 3339 timestamp or YYYY-MM-DD (inclusive)"
// @Success      200        {array}   domain.Sale
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /sales/report [get]
func (h *SaleHandler) Report(c echo.Context) error {
	start, err := parseReportDate(c.QueryParam("startDate"), false)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startDate must be an ISO-8601 date or timestamp")
	}
	end, err := parseReportDate(c.QueryParam("endDate"), true)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must be an ISO-8601 date or timestamp")
	}

	sales, err := h.service.Report(c.Request().Context(), ports.SalesReportInput{StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// parseReportDate accepts RFC 3339 or a bare date. A bare end date covers
// the whole day.
func parseReportDate(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return d, nil
}

func rejectionReason(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}
