package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

func TestSaleHandler_Record_ForwardsIdempotencyKey(t *testing.T) {
	var got ports.RecordSaleInput
	stub := &stubSaleService{
		recordFn: func(_ context.Context, in ports.RecordSaleInput) (*domain.Sale, error) {
			got = in
			return &domain.Sale{ID: "s1", ProductID: in.ProductID, QuantitySold: in.QuantitySold}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/sales", `{"productId":"p1","quantitySold":2}`)
	c.Request().Header.Set(HeaderIdempotencyKey, "3f1c-key")

	if err := NewSaleHandler(stub).Record(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.IdempotencyKey != "3f1c-key" || got.ProductID != "p1" || got.QuantitySold != 2 {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestSaleHandler_Record_RejectsNonPositiveQuantity(t *testing.T) {
	stub := &stubSaleService{
		recordFn: func(context.Context, ports.RecordSaleInput) (*domain.Sale, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/sales", `{"productId":"p1","quantitySold":0}`)

	err := NewSaleHandler(stub).Record(c)
	if httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSaleHandler_Record_PassesStockError(t *testing.T) {
	stockErr := &domain.ValidationError{Msg: "Insufficient stock for product Widget X", Err: domain.ErrInsufficientStock}
	stub := &stubSaleService{
		recordFn: func(context.Context, ports.RecordSaleInput) (*domain.Sale, error) {
			return nil, stockErr
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/sales", `{"productId":"p1","quantitySold":5}`)

	err := NewSaleHandler(stub).Record(c)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected stock error, got %v", err)
	}
	if rejectionReason(err) != "insufficient_stock" {
		t.Errorf("unexpected rejection reason %q", rejectionReason(err))
	}
}

func TestSaleHandler_Report_ParsesDates(t *testing.T) {
	var got ports.SalesReportInput
	stub := &stubSaleService{
		reportFn: func(_ context.Context, in ports.SalesReportInput) ([]*domain.Sale, error) {
			got = in
			return []*domain.Sale{}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/api/sales/report?startDate=2026-11-01T00:00:00Z&endDate=2026-11-30", "")

	if err := NewSaleHandler(stub).Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !got.StartDate.Equal(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v", got.StartDate)
	}
	wantEnd := time.Date(2026, 11, 30, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !got.EndDate.Equal(wantEnd) {
		t.Errorf("bare end date must cover the whole day, got %v", got.EndDate)
	}
}

func TestSaleHandler_Report_BadDate(t *testing.T) {
	stub := &stubSaleService{
		reportFn: func(context.Context, ports.SalesReportInput) ([]*domain.Sale, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodGet, "/api/sales/report?startDate=yesterday", "")

	if err := NewSaleHandler(stub).Report(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
