package coingecko

// searchResponse is the /search payload; only coins are used.
type searchResponse struct {
	Coins []searchCoin `json:"coins"`
}

type searchCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}

// tickersResponse is the /coins/{id}/tickers payload.
type tickersResponse struct {
	Name    string   `json:"name"`
	Tickers []ticker `json:"tickers"`
}

type ticker struct {
	Base            string             `json:"base"`
	Target          string             `json:"target"`
	Market          market             `json:"market"`
	Last            float64            `json:"last"`
	ConvertedLast   map[string]float64 `json:"converted_last"`
	ConvertedVolume map[string]float64 `json:"converted_volume"`
	IsAnomaly       bool               `json:"is_anomaly"`
	IsStale         bool               `json:"is_stale"`
	TradeURL        *string            `json:"trade_url"`
	CoinID          string             `json:"coin_id"`
}

type market struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Logo       string `json:"logo"`
}

// marketChartResponse is the /coins/{id}/market_chart payload.
// Each sample is [unix millis, price].
type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}
