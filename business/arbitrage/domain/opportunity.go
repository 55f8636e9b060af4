package domain

import (
	"math"

	"github.com/shopspring/decimal"

	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

// MinSpreadPercent is the noise floor; smaller spreads are not reported.
const MinSpreadPercent = 0.1

// Leg is one side of an opportunity.
type Leg struct {
	ExchangeName    string  `json:"exchange_name"`
	ExchangeLogoURL string  `json:"exchange_logo_url,omitempty"`
	PairLabel       string  `json:"pair"`
	Price           float64 `json:"price"`
}

// Opportunity is the cheapest and the most expensive valid quote for one token.
type Opportunity struct {
	Buy           Leg     `json:"buy"`
	Sell          Leg     `json:"sell"`
	SpreadPercent float64 `json:"spread_percent"` // rounded to 2 dp
}

func legOf(q marketDomain.TickerQuote) Leg {
	return Leg{
		ExchangeName:    q.ExchangeName,
		ExchangeLogoURL: q.ExchangeLogoURL,
		PairLabel:       q.PairLabel(),
		Price:           *q.PriceUSD,
	}
}

// FindBestOpportunity returns the buy-lowest/sell-highest pair across valid quotes.
//
// Quotes without a positive USD price are ignored. On equal prices the first quote
// in input order wins for both legs. No opportunity is reported when fewer than two
// quotes are valid, when both legs are the same exchange and target symbol, or when
// the rounded spread is below MinSpreadPercent.
func FindBestOpportunity(quotes []marketDomain.TickerQuote) (*Opportunity, bool) {
	var (
		buy, sell marketDomain.TickerQuote
		valid     int
	)

	for _, q := range quotes {
		if !q.IsValid() {
			continue
		}
		if valid == 0 {
			buy, sell = q, q
		} else {
			if *q.PriceUSD < *buy.PriceUSD {
				buy = q
			}
			if *q.PriceUSD > *sell.PriceUSD {
				sell = q
			}
		}
		valid++
	}

	if valid < 2 {
		return nil, false
	}

	if buy.ExchangeName == sell.ExchangeName && buy.TargetSymbol == sell.TargetSymbol {
		return nil, false
	}

	spread := SpreadPercent(*buy.PriceUSD, *sell.PriceUSD)
	if spread < MinSpreadPercent {
		return nil, false
	}

	return &Opportunity{
		Buy:           legOf(buy),
		Sell:          legOf(sell),
		SpreadPercent: spread,
	}, true
}

// SpreadPercent returns (sell-buy)/buy*100 rounded half away from zero to 2 dp.
// Spreads beyond the float64 range saturate at math.MaxFloat64.
func SpreadPercent(buy, sell float64) float64 {
	if buy <= 0 {
		return 0
	}
	b := decimal.NewFromFloat(buy)
	spread := decimal.NewFromFloat(sell).Sub(b).Div(b).Mul(hundred).Round(2).InexactFloat64()
	if math.IsInf(spread, 1) {
		return math.MaxFloat64
	}
	return spread
}

// IsBuyLeg reports whether q is the quote the buy leg was taken from.
func IsBuyLeg(q marketDomain.TickerQuote, opp *Opportunity) bool {
	return opp != nil && matchesLeg(q, opp.Buy)
}

// IsSellLeg reports whether q is the quote the sell leg was taken from.
func IsSellLeg(q marketDomain.TickerQuote, opp *Opportunity) bool {
	return opp != nil && matchesLeg(q, opp.Sell)
}

// matchesLeg compares exchange name and exact price.
func matchesLeg(q marketDomain.TickerQuote, leg Leg) bool {
	return q.PriceUSD != nil && q.ExchangeName == leg.ExchangeName && *q.PriceUSD == leg.Price
}
