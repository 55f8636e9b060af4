// Package domain contains the core domain types for the market data context.
package domain

// Coin is a token returned by a search.
type Coin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank,omitempty"`
	Thumb         string `json:"thumb,omitempty"`
	Large         string `json:"large,omitempty"`
}

// IsListed reports whether the coin has an id and a market-cap rank.
// Unranked search hits are usually dead or spam tokens.
func (c Coin) IsListed() bool {
	return c.ID != "" && c.MarketCapRank != nil
}

// Rank returns the market-cap rank, or 0 when unranked.
func (c Coin) Rank() int {
	if c.MarketCapRank == nil {
		return 0
	}
	return *c.MarketCapRank
}
