package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// newSaleSvc takes interfaces so callers can pass an untyped nil for an
// absent replay store or cache.
func newSaleSvc(products *stubProductRepo, sales *stubSaleRepo, replays SaleReplayStore, cache ports.ForecastCache) ports.SaleService {
	return NewSaleService(products, sales, replays, cache, discardLogger)
}

func TestSaleService_Record_HappyPath(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Coffee", 10, 7.5)
	sales := &stubSaleRepo{}
	cache := &stubForecastCache{cached: true}

	svc := newSaleSvc(products, sales, newStubReplays(), cache)
	sale, err := svc.Record(context.Background(), ports.RecordSaleInput{ProductID: p.ID, QuantitySold: 3})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if sale.ProductName != "Coffee" || sale.QuantitySold != 3 {
		t.Errorf("unexpected sale: %+v", sale)
	}
	if sale.SaleDate.IsZero() {
		t.Error("sale date must be set")
	}
	if products.byID[p.ID].Quantity != 7 {
		t.Errorf("expected stock 7, got %d", products.byID[p.ID].Quantity)
	}
	if len(sales.sales) != 1 {
		t.Errorf("expected one stored sale, got %d", len(sales.sales))
	}
	if cache.invalidated != 1 {
		t.Errorf("expected forecast cache invalidation")
	}
}

func TestSaleService_Record_InsufficientStock(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Widget X", 2, 1)
	sales := &stubSaleRepo{}

	svc := newSaleSvc(products, sales, nil, nil)
	_, err := svc.Record(context.Background(), ports.RecordSaleInput{ProductID: p.ID, QuantitySold: 5})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Msg != "Insufficient stock for product Widget X" {
		t.Errorf("unexpected message: %q", ve.Msg)
	}
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Error("expected error to wrap ErrInsufficientStock")
	}
	if products.byID[p.ID].Quantity != 2 {
		t.Errorf("stock must be untouched, got %d", products.byID[p.ID].Quantity)
	}
	if len(sales.sales) != 0 {
		t.Error("no sale must be stored")
	}
}

func TestSaleService_Record_ProductNotFound(t *testing.T) {
	svc := newSaleSvc(newStubProductRepo(), &stubSaleRepo{}, nil, nil)

	_, err := svc.Record(context.Background(), ports.RecordSaleInput{ProductID: "nope", QuantitySold: 1})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSaleService_Record_RejectsNonPositiveQuantity(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Coffee", 10, 7.5)
	svc := newSaleSvc(products, &stubSaleRepo{}, nil, nil)

	for _, qty := range []int{0, -3} {
		_, err := svc.Record(context.Background(), ports.RecordSaleInput{ProductID: p.ID, QuantitySold: qty})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("qty=%d: expected ValidationError, got %v", qty, err)
		}
	}
}

func TestSaleService_Record_InsertFailureRestoresStock(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Coffee", 10, 7.5)
	sales := &stubSaleRepo{createErr: errDB}

	svc := newSaleSvc(products, sales, nil, nil)
	_, err := svc.Record(context.Background(), ports.RecordSaleInput{ProductID: p.ID, QuantitySold: 4})
	if !errors.Is(err, errDB) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if products.byID[p.ID].Quantity != 10 {
		t.Errorf("stock must be restored, got %d", products.byID[p.ID].Quantity)
	}
	if len(products.incremented) != 1 {
		t.Errorf("expected one compensating increment")
	}
}

func TestSaleService_Record_IdempotencyReplay(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Coffee", 10, 7.5)
	sales := &stubSaleRepo{}
	replays := newStubReplays()
	svc := newSaleSvc(products, sales, replays, nil)

	in := ports.RecordSaleInput{ProductID: p.ID, QuantitySold: 2, IdempotencyKey: "key-abc-123"}
	first, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	second, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("replay must return the same sale: got %q, want %q", second.ID, first.ID)
	}
	if products.byID[p.ID].Quantity != 8 {
		t.Errorf("stock must be decremented once, got %d", products.byID[p.ID].Quantity)
	}
	if len(sales.sales) != 1 {
		t.Errorf("expected 1 stored sale, got %d", len(sales.sales))
	}
}

func TestSaleService_Record_ReplayLookupErrorRecordsAnyway(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Coffee", 10, 7.5)
	sales := &stubSaleRepo{}
	replays := newStubReplays()
	replays.findErr = errors.New("redis timeout")

	svc := newSaleSvc(products, sales, replays, nil)
	if _, err := svc.Record(context.Background(), ports.RecordSaleInput{ProductID: p.ID, QuantitySold: 1, IdempotencyKey: "k"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sales.sales) != 1 {
		t.Errorf("expected sale to be recorded when replay lookup errors")
	}
}

func TestSaleService_Record_WithoutReplaysOrCache(t *testing.T) {
	products := newStubProductRepo()
	p := products.seed("Coffee", 10, 7.5)
	svc := newSaleSvc(products, &stubSaleRepo{}, nil, nil)

	in := ports.RecordSaleInput{ProductID: p.ID, QuantitySold: 1, IdempotencyKey: "k"}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if products.byID[p.ID].Quantity != 9 {
		t.Errorf("expected stock 9, got %d", products.byID[p.ID].Quantity)
	}
}

func TestSaleService_Report(t *testing.T) {
	now := time.Now().UTC()
	sales := &stubSaleRepo{sales: []*domain.Sale{
		{ID: "s1", SaleDate: now.AddDate(0, 0, -10)},
		{ID: "s2", SaleDate: now.AddDate(0, 0, -2)},
	}}
	svc := newSaleSvc(newStubProductRepo(), sales, nil, nil)

	all, err := svc.Report(context.Background(), ports.SalesReportInput{StartDate: now.AddDate(0, 0, -3)})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("one missing bound must return everything, got %d", len(all))
	}

	ranged, err := svc.Report(context.Background(), ports.SalesReportInput{
		StartDate: now.AddDate(0, 0, -3),
		EndDate:   now,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ranged) != 1 || ranged[0].ID != "s2" {
		t.Errorf("expected only s2 in range, got %+v", ranged)
	}

	_, err = svc.Report(context.Background(), ports.SalesReportInput{StartDate: now, EndDate: now.AddDate(0, 0, -1)})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("inverted range: expected ValidationError, got %v", err)
	}
}
