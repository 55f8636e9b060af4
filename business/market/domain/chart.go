package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one sample of a historical price series.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// MarketChart is a historical price series for one coin.
type MarketChart struct {
	CoinID     string       `json:"coin_id"`
	VsCurrency string       `json:"vs_currency"`
	Days       int          `json:"days"`
	Prices     []PricePoint `json:"prices"`
}

// IsEmpty reports whether the chart has no samples.
func (c MarketChart) IsEmpty() bool {
	return len(c.Prices) == 0
}

// Min returns the lowest price in the series.
func (c MarketChart) Min() float64 {
	if c.IsEmpty() {
		return 0
	}
	m := c.Prices[0].Price
	for _, p := range c.Prices[1:] {
		if p.Price < m {
			m = p.Price
		}
	}
	return m
}

// Max returns the highest price in the series.
func (c MarketChart) Max() float64 {
	if c.IsEmpty() {
		return 0
	}
	m := c.Prices[0].Price
	for _, p := range c.Prices[1:] {
		if p.Price > m {
			m = p.Price
		}
	}
	return m
}

// Last returns the most recent price.
func (c MarketChart) Last() float64 {
	if c.IsEmpty() {
		return 0
	}
	return c.Prices[len(c.Prices)-1].Price
}

// ChangePercent returns the change from the first to the last sample,
// rounded to 2 decimal places. Zero when the first price is not positive.
func (c MarketChart) ChangePercent() float64 {
	if len(c.Prices) < 2 || c.Prices[0].Price <= 0 {
		return 0
	}
	first := decimal.NewFromFloat(c.Prices[0].Price)
	last := decimal.NewFromFloat(c.Last())
	return last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// Values returns the raw price values in time order.
func (c MarketChart) Values() []float64 {
	out := make([]float64, len(c.Prices))
	for i, p := range c.Prices {
		out[i] = p.Price
	}
	return out
}
