package components

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{name: "empty", values: nil, width: 10, want: ""},
		{name: "rising", values: []float64{1, 2, 3, 4, 5, 6, 7, 8}, width: 8, want: "▁▂▃▄▅▆▇█"},
		{name: "flat", values: []float64{5, 5, 5}, width: 10, want: "▁▁▁"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values, tt.width); got != tt.want {
				t.Errorf("Sparkline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSparkline_Samples(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i)
	}

	got := Sparkline(values, 40)

	if n := utf8.RuneCountInString(got); n != 40 {
		t.Errorf("width = %d, want 40", n)
	}
	if !strings.HasSuffix(got, "█") {
		t.Error("last sample should be the maximum")
	}
}

func TestFormatPrice(t *testing.T) {
	p := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		price *float64
		want  string
	}{
		{"absent", nil, "n/a"},
		{"dollars", p(60123.456), "$60123.46"},
		{"cents", p(0.5), "$0.500000"},
		{"tiny", p(0.00001234), "$1.234e-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTickersComponent_Scroll(t *testing.T) {
	c := NewTickersComponent(2)
	c.Update([]TickerRow{{Exchange: "A"}, {Exchange: "B"}, {Exchange: "C"}})

	c.ScrollDown()
	c.ScrollDown()
	c.ScrollDown()
	if c.offset != 1 {
		t.Errorf("offset = %d, want 1", c.offset)
	}

	c.ScrollUp()
	c.ScrollUp()
	if c.offset != 0 {
		t.Errorf("offset = %d, want 0", c.offset)
	}

	view := c.View()
	if !strings.Contains(view, "rows 1-2 of 3") {
		t.Errorf("view missing scroll hint:\n%s", view)
	}
}

func TestTickersComponent_Highlight(t *testing.T) {
	price := 100.0
	c := NewTickersComponent(10)
	c.Update([]TickerRow{
		{Exchange: "Binance", Pair: "BTC/USDT", Price: &price, IsBuy: true},
		{Exchange: "Uniswap V3", Pair: "WBTC/USDC", Price: &price, IsDEX: true, IsSell: true},
	})

	view := c.View()
	for _, want := range []string{"B ", "S ", "DEX", "CEX", "Uniswap V3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestOpportunityComponent(t *testing.T) {
	c := NewOpportunityComponent(0.1)
	if !strings.Contains(c.View(), "Waiting") {
		t.Error("expected waiting state")
	}

	c.Set(nil, 4)
	if !strings.Contains(c.View(), "No spread of at least 0.1% across 4 valid quotes") {
		t.Errorf("unexpected view:\n%s", c.View())
	}

	c.Set(&OpportunityView{
		Buy:           LegView{Exchange: "Binance", Pair: "BTC/USDT", Price: 60000},
		Sell:          LegView{Exchange: "Kraken", Pair: "BTC/USD", Price: 60200},
		SpreadPercent: 0.33,
	}, 2)
	view := c.View()
	for _, want := range []string{"BUY", "SELL", "Binance", "Kraken", "0.33%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatusComponent_KeepsLatency(t *testing.T) {
	c := NewStatusComponent()
	c.Update(SourceStatus{Name: "CoinGecko", State: "closed", Latency: 120e6})
	c.Update(SourceStatus{Name: "CoinGecko", State: "closed"})

	if !strings.Contains(c.View(), "120ms") {
		t.Errorf("view = %q", c.View())
	}

	c.Update(SourceStatus{Name: "CoinGecko", State: "open"})
	if !strings.Contains(c.View(), "circuit open") {
		t.Errorf("view = %q", c.View())
	}
}
