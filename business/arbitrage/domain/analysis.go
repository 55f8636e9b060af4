package domain

import (
	"time"

	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

// ClassifiedQuote is a ticker annotated for display.
type ClassifiedQuote struct {
	marketDomain.TickerQuote
	IsDEX       bool   `json:"is_dex"`
	DisplayName string `json:"display_name"`
	IsBuyLeg    bool   `json:"is_buy_leg"`
	IsSellLeg   bool   `json:"is_sell_leg"`
}

// Analysis is the result of analysing one coin's tickers.
type Analysis struct {
	CoinID      string            `json:"coin_id"`
	Quotes      []ClassifiedQuote `json:"quotes"`
	Opportunity *Opportunity      `json:"opportunity"`
	ValidQuotes int               `json:"valid_quotes"`
	DEXCount    int               `json:"dex_count"`
	CEXCount    int               `json:"cex_count"`
	AnalyzedAt  time.Time         `json:"analyzed_at"`
}

// HasOpportunity reports whether an opportunity was found.
func (a *Analysis) HasOpportunity() bool {
	return a != nil && a.Opportunity != nil
}

// Analyze finds the best opportunity and classifies every quote, keeping input order.
// Classification does not influence selection.
func Analyze(c *Classifier, coinID string, quotes []marketDomain.TickerQuote) *Analysis {
	opp, _ := FindBestOpportunity(quotes)

	a := &Analysis{
		CoinID:      coinID,
		Quotes:      make([]ClassifiedQuote, 0, len(quotes)),
		Opportunity: opp,
		AnalyzedAt:  time.Now(),
	}

	for _, q := range quotes {
		cq := ClassifiedQuote{
			TickerQuote: q,
			IsDEX:       c.Classify(q.ExchangeName),
			DisplayName: q.ExchangeName,
			IsBuyLeg:    IsBuyLeg(q, opp),
			IsSellLeg:   IsSellLeg(q, opp),
		}
		if cq.IsDEX {
			cq.DisplayName = CleanDisplayName(q.ExchangeName)
			a.DEXCount++
		} else {
			a.CEXCount++
		}
		if q.IsValid() {
			a.ValidQuotes++
		}
		a.Quotes = append(a.Quotes, cq)
	}

	return a
}
