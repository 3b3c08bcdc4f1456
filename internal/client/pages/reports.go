package pages

import (
	"context"
	"time"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// SalesReport lists sales in an optional date range.
type SalesReport struct {
	status

	Start time.Time
	End   time.Time
	Sales []domain.Sale

	// UnitsSold is the total over Sales.
	UnitsSold int

	api ReportAPI
}

func NewSalesReport(api ReportAPI) *SalesReport {
	return &SalesReport{api: api}
}

func (p *SalesReport) Load(ctx context.Context) error {
	p.reset()
	sales, err := p.api.SalesReport(ctx, p.Start, p.End)
	if err != nil {
		return p.fail(err, "Failed to load sales report.")
	}
	p.Sales = sales
	p.UnitsSold = 0
	for _, s := range sales {
		p.UnitsSold += s.QuantitySold
	}
	return nil
}

type Forecast struct {
	status

	Items []domain.ForecastItem

	api ForecastAPI
}

func NewForecast(api ForecastAPI) *Forecast {
	return &Forecast{api: api}
}

func (p *Forecast) Load(ctx context.Context) error {
	p.reset()
	items, err := p.api.Forecast(ctx)
	if err != nil {
		return p.fail(err, "Failed to load forecast data.")
	}
	p.Items = items
	return nil
}

// NeedsRestock returns the items flagged for restocking.
func (p *Forecast) NeedsRestock() []domain.ForecastItem {
	var out []domain.ForecastItem
	for _, it := range p.Items {
		if it.Status == domain.ForecastRestock {
			out = append(out, it)
		}
	}
	return out
}

// Users is the admin user management page.
type Users struct {
	status

	Users []domain.User

	api UserAPI
}

func NewUsers(api UserAPI) *Users {
	return &Users{api: api}
}

func (p *Users) Load(ctx context.Context) error {
	p.reset()
	users, err := p.api.ListUsers(ctx)
	if err != nil {
		return p.fail(err, "Failed to load users.")
	}
	p.Users = users
	return nil
}

func (p *Users) Promote(ctx context.Context, id string) error {
	return p.changeRole(ctx, id, p.api.PromoteUser, "Failed to promote user.")
}

func (p *Users) Demote(ctx context.Context, id string) error {
	return p.changeRole(ctx, id, p.api.DemoteUser, "Failed to demote user.")
}

func (p *Users) changeRole(ctx context.Context, id string, call func(context.Context, string) (string, error), fallback string) error {
	p.reset()
	msg, err := call(ctx, id)
	if err != nil {
		return p.fail(err, fallback)
	}
	if err := p.Load(ctx); err != nil {
		return err
	}
	p.Notice = msg
	return nil
}
