package domain

// ForecastStatus is the stocking recommendation attached to a forecast.
type ForecastStatus string

const (
	ForecastRestock     ForecastStatus = "RESTOCK NEEDED"
	ForecastOverstocked ForecastStatus = "OVERSTOCKED"
	ForecastSufficient  ForecastStatus = "SUFFICIENT"
)

// ForecastItem is the predicted demand for one product over the next week.
type ForecastItem struct {
	ProductID       string         `json:"productId"`
	ProductName     string         `json:"productName"`
	CurrentStock    int            `json:"currentStock"`
	PredictedDemand float64        `json:"predictedDemand"`
	Status          ForecastStatus `json:"status"`
}
