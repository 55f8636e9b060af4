package domain

import (
	"testing"
	"time"
)

func TestTickerQuote_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		want  bool
	}{
		{"positive", PriceOf(60000), true},
		{"tiny_positive", PriceOf(0.00000001), true},
		{"nil", nil, false},
		{"zero", PriceOf(0), false},
		{"negative", PriceOf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := TickerQuote{ExchangeName: "Binance", PriceUSD: tt.price}
			if got := q.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickerQuote_PairLabel(t *testing.T) {
	q := TickerQuote{BaseSymbol: "BTC", TargetSymbol: "USDT"}
	if got := q.PairLabel(); got != "BTC/USDT" {
		t.Errorf("PairLabel() = %q", got)
	}
}

func TestCoin_IsListed(t *testing.T) {
	rank := 1
	tests := []struct {
		name string
		coin Coin
		want bool
	}{
		{"ranked", Coin{ID: "bitcoin", MarketCapRank: &rank}, true},
		{"unranked", Coin{ID: "scamcoin"}, false},
		{"missing_id", Coin{MarketCapRank: &rank}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coin.IsListed(); got != tt.want {
				t.Errorf("IsListed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarketChart_Stats(t *testing.T) {
	now := time.Now()
	chart := MarketChart{Prices: []PricePoint{
		{Time: now, Price: 100},
		{Time: now.Add(time.Hour), Price: 90},
		{Time: now.Add(2 * time.Hour), Price: 130},
		{Time: now.Add(3 * time.Hour), Price: 110},
	}}

	if got := chart.Min(); got != 90 {
		t.Errorf("Min() = %v", got)
	}
	if got := chart.Max(); got != 130 {
		t.Errorf("Max() = %v", got)
	}
	if got := chart.Last(); got != 110 {
		t.Errorf("Last() = %v", got)
	}
	if got := chart.ChangePercent(); got != 10 {
		t.Errorf("ChangePercent() = %v, want 10", got)
	}
	if got := len(chart.Values()); got != 4 {
		t.Errorf("len(Values()) = %d", got)
	}
}

func TestMarketChart_Empty(t *testing.T) {
	var chart MarketChart
	if !chart.IsEmpty() {
		t.Error("IsEmpty() = false")
	}
	if chart.Min() != 0 || chart.Max() != 0 || chart.Last() != 0 || chart.ChangePercent() != 0 {
		t.Error("empty chart stats should be zero")
	}
}
