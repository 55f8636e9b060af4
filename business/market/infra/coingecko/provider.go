package coingecko

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fd1az/arbitrage-lens/business/market/domain"
)

// SearchCoins queries /search.
func (c *Client) SearchCoins(ctx context.Context, query string) ([]domain.Coin, error) {
	ctx, span := c.tracer.Start(ctx, "coingecko.search", attribute.String("query", query))
	defer span.End()

	var resp searchResponse
	if err := c.get(ctx, "search", "/search", map[string]string{"query": query}, &resp); err != nil {
		span.Fail(err)
		return nil, err
	}

	coins := make([]domain.Coin, 0, len(resp.Coins))
	for _, sc := range resp.Coins {
		coins = append(coins, domain.Coin{
			ID:            sc.ID,
			Name:          sc.Name,
			Symbol:        sc.Symbol,
			MarketCapRank: sc.MarketCapRank,
			Thumb:         sc.Thumb,
			Large:         sc.Large,
		})
	}

	span.SetAttributes(attribute.Int("coins", len(coins)))
	return coins, nil
}

// GetTickers queries /coins/{id}/tickers.
func (c *Client) GetTickers(ctx context.Context, coinID string) ([]domain.TickerQuote, error) {
	ctx, span := c.tracer.Start(ctx, "coingecko.tickers", attribute.String("coin_id", coinID))
	defer span.End()

	var resp tickersResponse
	path := "/coins/" + url.PathEscape(coinID) + "/tickers"
	query := map[string]string{"include_exchange_logo": "true"}
	if err := c.get(ctx, "tickers", path, query, &resp); err != nil {
		span.Fail(err)
		return nil, err
	}

	quotes := make([]domain.TickerQuote, 0, len(resp.Tickers))
	for _, t := range resp.Tickers {
		quotes = append(quotes, c.toQuote(coinID, t))
	}

	span.SetAttributes(attribute.Int("tickers", len(quotes)))
	c.logger.Debug(ctx, "fetched tickers", "coin", coinID, "count", len(quotes))

	return quotes, nil
}

// GetMarketChart queries /coins/{id}/market_chart.
func (c *Client) GetMarketChart(ctx context.Context, coinID, vsCurrency string, days int) (*domain.MarketChart, error) {
	ctx, span := c.tracer.Start(ctx, "coingecko.market_chart",
		attribute.String("coin_id", coinID),
		attribute.Int("days", days),
	)
	defer span.End()

	var resp marketChartResponse
	path := "/coins/" + url.PathEscape(coinID) + "/market_chart"
	query := map[string]string{
		"vs_currency": vsCurrency,
		"days":        strconv.Itoa(days),
	}
	if err := c.get(ctx, "market_chart", path, query, &resp); err != nil {
		span.Fail(err)
		return nil, err
	}

	chart := &domain.MarketChart{
		CoinID:     coinID,
		VsCurrency: vsCurrency,
		Days:       days,
		Prices:     make([]domain.PricePoint, 0, len(resp.Prices)),
	}
	for _, p := range resp.Prices {
		chart.Prices = append(chart.Prices, domain.PricePoint{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}

	span.SetAttributes(attribute.Int("points", len(chart.Prices)))
	return chart, nil
}

func (c *Client) toQuote(coinID string, t ticker) domain.TickerQuote {
	q := domain.TickerQuote{
		CoinID:          coinID,
		ExchangeName:    t.Market.Name,
		ExchangeLogoURL: t.Market.Logo,
		BaseSymbol:      c.symbol(t.Base),
		TargetSymbol:    c.symbol(t.Target),
		VolumeUSD:       t.ConvertedVolume["usd"],
		IsStale:         t.IsStale,
		IsAnomaly:       t.IsAnomaly,
	}
	if t.CoinID != "" {
		q.CoinID = t.CoinID
	}
	if t.TradeURL != nil {
		q.TradeURL = *t.TradeURL
	}
	if usd, ok := t.ConvertedLast["usd"]; ok {
		q.PriceUSD = &usd
	}
	return q
}

// symbol resolves known token contracts to their symbol.
func (c *Client) symbol(sym string) string {
	if tok, ok := c.tokens.Lookup(sym); ok {
		return tok.Symbol()
	}
	return shortSymbol(sym)
}

// shortSymbol renders contract-address symbols as a checksummed 0xABCD…1234.
// DEX tickers report unlisted tokens by address instead of symbol.
func shortSymbol(sym string) string {
	if !common.IsHexAddress(sym) {
		return sym
	}
	hex := common.HexToAddress(sym).Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}
