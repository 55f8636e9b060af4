package domain

import (
	"math"
	"testing"

	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

func quote(exchange, base, target string, price *float64) marketDomain.TickerQuote {
	return marketDomain.TickerQuote{
		ExchangeName: exchange,
		BaseSymbol:   base,
		TargetSymbol: target,
		PriceUSD:     price,
	}
}

var p = marketDomain.PriceOf

func TestFindBestOpportunity_BTCExample(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		quote("Binance", "BTC", "USDT", p(60000)),
		quote("Uniswap V3", "BTC", "WETH", p(60200)),
		quote("Kraken", "BTC", "USD", nil),
	}

	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("expected an opportunity")
	}

	if opp.Buy.ExchangeName != "Binance" || opp.Buy.Price != 60000 || opp.Buy.PairLabel != "BTC/USDT" {
		t.Errorf("Buy = %+v", opp.Buy)
	}
	if opp.Sell.ExchangeName != "Uniswap V3" || opp.Sell.Price != 60200 || opp.Sell.PairLabel != "BTC/WETH" {
		t.Errorf("Sell = %+v", opp.Sell)
	}
	if opp.SpreadPercent != 0.33 {
		t.Errorf("SpreadPercent = %v, want 0.33", opp.SpreadPercent)
	}
}

func TestFindBestOpportunity_None(t *testing.T) {
	tests := []struct {
		name   string
		quotes []marketDomain.TickerQuote
	}{
		{"empty", nil},
		{"single_valid", []marketDomain.TickerQuote{quote("Binance", "BTC", "USDT", p(60000))}},
		{
			"one_valid_rest_invalid",
			[]marketDomain.TickerQuote{
				quote("Binance", "BTC", "USDT", p(60000)),
				quote("Kraken", "BTC", "USD", nil),
				quote("OKX", "BTC", "USDT", p(0)),
				quote("Bybit", "BTC", "USDT", p(-5)),
			},
		},
		{
			"identical_prices",
			[]marketDomain.TickerQuote{
				quote("Binance", "BTC", "USDT", p(60000)),
				quote("Kraken", "BTC", "USD", p(60000)),
				quote("OKX", "BTC", "USDT", p(60000)),
			},
		},
		{
			"same_exchange_same_target",
			[]marketDomain.TickerQuote{
				quote("Binance", "BTC", "USDT", p(60000)),
				quote("Binance", "WBTC", "USDT", p(61000)),
			},
		},
		{
			"below_threshold",
			[]marketDomain.TickerQuote{
				quote("Binance", "BTC", "USDT", p(100)),
				quote("Kraken", "BTC", "USD", p(100.094)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp, ok := FindBestOpportunity(tt.quotes)
			if ok || opp != nil {
				t.Errorf("expected none, got %+v", opp)
			}
		})
	}
}

func TestFindBestOpportunity_SameExchangeDifferentTarget(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		quote("Binance", "BTC", "USDT", p(60000)),
		quote("Binance", "BTC", "EUR", p(60600)),
	}

	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("same exchange with a different target should be allowed")
	}
	if opp.Buy.PairLabel != "BTC/USDT" || opp.Sell.PairLabel != "BTC/EUR" {
		t.Errorf("legs = %s -> %s", opp.Buy.PairLabel, opp.Sell.PairLabel)
	}
	if opp.SpreadPercent != 1 {
		t.Errorf("SpreadPercent = %v, want 1", opp.SpreadPercent)
	}
}

func TestFindBestOpportunity_ThresholdUsesRoundedSpread(t *testing.T) {
	// exactly 0.10 is not below the floor
	quotes := []marketDomain.TickerQuote{
		quote("Binance", "ETH", "USDT", p(100)),
		quote("Kraken", "ETH", "USD", p(100.1)),
	}

	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("expected an opportunity at exactly the threshold")
	}
	if opp.SpreadPercent != 0.1 {
		t.Errorf("SpreadPercent = %v, want 0.1", opp.SpreadPercent)
	}
}

func TestFindBestOpportunity_ExtremePriceRatio(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		quote("Tiny", "X", "USD", p(1e-300)),
		quote("Huge", "X", "USDT", p(1e10)),
	}

	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("expected an opportunity")
	}
	if opp.SpreadPercent != math.MaxFloat64 {
		t.Errorf("SpreadPercent = %v, want MaxFloat64", opp.SpreadPercent)
	}
}

func TestFindBestOpportunity_TieBreakFirstInInputOrder(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		quote("Kraken", "BTC", "USD", p(60000)),
		quote("Binance", "BTC", "USDT", p(60000)),
		quote("Uniswap V3", "BTC", "WETH", p(61000)),
		quote("Curve", "BTC", "USDC", p(61000)),
	}

	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("expected an opportunity")
	}
	if opp.Buy.ExchangeName != "Kraken" {
		t.Errorf("Buy = %s, want first lowest (Kraken)", opp.Buy.ExchangeName)
	}
	if opp.Sell.ExchangeName != "Uniswap V3" {
		t.Errorf("Sell = %s, want first highest (Uniswap V3)", opp.Sell.ExchangeName)
	}

	// reversed input flips the winners
	reversed := []marketDomain.TickerQuote{quotes[3], quotes[2], quotes[1], quotes[0]}
	opp, _ = FindBestOpportunity(reversed)
	if opp.Buy.ExchangeName != "Binance" || opp.Sell.ExchangeName != "Curve" {
		t.Errorf("reversed: buy %s sell %s", opp.Buy.ExchangeName, opp.Sell.ExchangeName)
	}
}

func TestFindBestOpportunity_LegsBoundAllValidQuotes(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		quote("A", "X", "USDT", p(10.5)),
		quote("B", "X", "USDT", p(9.75)),
		quote("C", "X", "USDT", nil),
		quote("D", "X", "USDT", p(11.2)),
		quote("E", "X", "USDT", p(10.01)),
		quote("F", "X", "USDT", p(-3)),
	}

	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("expected an opportunity")
	}

	for _, q := range quotes {
		if !q.IsValid() {
			continue
		}
		if opp.Buy.Price > *q.PriceUSD {
			t.Errorf("buy %v above valid quote %v", opp.Buy.Price, *q.PriceUSD)
		}
		if opp.Sell.Price < *q.PriceUSD {
			t.Errorf("sell %v below valid quote %v", opp.Sell.Price, *q.PriceUSD)
		}
	}
}

func TestFindBestOpportunity_PassesLogoThrough(t *testing.T) {
	a := quote("Binance", "BTC", "USDT", p(100))
	a.ExchangeLogoURL = "https://example.com/binance.png"
	b := quote("Kraken", "BTC", "USD", p(101))

	opp, _ := FindBestOpportunity([]marketDomain.TickerQuote{a, b})
	if opp.Buy.ExchangeLogoURL != a.ExchangeLogoURL {
		t.Errorf("logo = %q", opp.Buy.ExchangeLogoURL)
	}
	if opp.Sell.ExchangeLogoURL != "" {
		t.Errorf("sell logo = %q, want empty", opp.Sell.ExchangeLogoURL)
	}
}

func TestSpreadPercent_Rounding(t *testing.T) {
	tests := []struct {
		name      string
		buy, sell float64
		want      float64
	}{
		{"one_third", 60000, 60200, 0.33},
		{"rounds_up", 3, 3.02, 0.67},
		{"whole", 100, 150, 50},
		{"zero", 100, 100, 0},
		{"non_positive_buy", 0, 100, 0},
		{"large_ratio", 1e-10, 1, 999999999900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpreadPercent(tt.buy, tt.sell); got != tt.want {
				t.Errorf("SpreadPercent(%v, %v) = %v, want %v", tt.buy, tt.sell, got, tt.want)
			}
		})
	}
}

func TestLegHighlighting(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		quote("Binance", "BTC", "USDT", p(60000)),
		quote("Binance", "BTC", "FDUSD", p(60100)),
		quote("Uniswap V3", "BTC", "WETH", p(60200)),
		quote("Kraken", "BTC", "USD", nil),
	}
	opp, ok := FindBestOpportunity(quotes)
	if !ok {
		t.Fatal("expected an opportunity")
	}

	wantBuy := []bool{true, false, false, false}
	wantSell := []bool{false, false, true, false}
	for i, q := range quotes {
		if got := IsBuyLeg(q, opp); got != wantBuy[i] {
			t.Errorf("IsBuyLeg(%d) = %v", i, got)
		}
		if got := IsSellLeg(q, opp); got != wantSell[i] {
			t.Errorf("IsSellLeg(%d) = %v", i, got)
		}
	}

	if IsBuyLeg(quotes[0], nil) || IsSellLeg(quotes[2], nil) {
		t.Error("nil opportunity highlights nothing")
	}
}

func BenchmarkFindBestOpportunity(b *testing.B) {
	quotes := make([]marketDomain.TickerQuote, 200)
	for i := range quotes {
		quotes[i] = quote("Exchange", "BTC", "USDT", p(60000+float64(i%37)*13.5))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindBestOpportunity(quotes)
	}
}
