package domain

// TickerQuote is one exchange's last traded price for a pair.
// PriceUSD is nil when the venue did not report a USD conversion.
type TickerQuote struct {
	CoinID          string   `json:"coin_id,omitempty"`
	ExchangeName    string   `json:"exchange_name"`
	ExchangeLogoURL string   `json:"exchange_logo_url,omitempty"`
	BaseSymbol      string   `json:"base_symbol"`
	TargetSymbol    string   `json:"target_symbol"`
	PriceUSD        *float64 `json:"price_usd"`
	VolumeUSD       float64  `json:"volume_usd,omitempty"`
	TradeURL        string   `json:"trade_url,omitempty"`
	IsStale         bool     `json:"is_stale,omitempty"`
	IsAnomaly       bool     `json:"is_anomaly,omitempty"`
}

// IsValid reports whether the quote carries a usable positive USD price.
func (q TickerQuote) IsValid() bool {
	return q.PriceUSD != nil && *q.PriceUSD > 0
}

// PairLabel formats the pair as "BASE/TARGET".
func (q TickerQuote) PairLabel() string {
	return q.BaseSymbol + "/" + q.TargetSymbol
}

// Price returns the USD price or 0 when absent.
func (q TickerQuote) Price() float64 {
	if q.PriceUSD == nil {
		return 0
	}
	return *q.PriceUSD
}

// PriceOf is a helper to build a quote price from a literal.
func PriceOf(v float64) *float64 {
	return &v
}
