package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/arbitrage-lens/internal/apperror"
)

var hundred = decimal.NewFromInt(100)

// quotientDigits is the number of significant digits kept by div.
const quotientDigits = 20

// SimulationInput holds the raw form values of a hypothetical trade.
// Fees are percentages, "0.1" means 0.1%.
type SimulationInput struct {
	Investment     string `json:"investment"`
	BuyPrice       string `json:"buy_price"`
	SellPrice      string `json:"sell_price"`
	BuyFeePercent  string `json:"buy_fee_percent"`
	SellFeePercent string `json:"sell_fee_percent"`
}

// SimulationResult is the outcome of a simulated buy-low/sell-high trade.
type SimulationResult struct {
	UnitsAcquired     decimal.Decimal `json:"units_acquired"`
	TotalBuyCost      decimal.Decimal `json:"total_buy_cost"`
	GrossSaleProceeds decimal.Decimal `json:"gross_sale_proceeds"`
	NetSaleProceeds   decimal.Decimal `json:"net_sale_proceeds"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	ROIPercent        decimal.Decimal `json:"roi_percent"`
}

// IsProfitable returns true if the trade ends with more than it cost.
func (r SimulationResult) IsProfitable() bool {
	return r.GrossProfit.IsPositive()
}

// Simulate computes fee-aware profit for buying with investment at buyPrice and
// selling everything at sellPrice.
//
// The buy fee is charged on top of the investment, so it does not reduce the units
// acquired. The sell fee is deducted from the sale proceeds.
func Simulate(in SimulationInput) (SimulationResult, error) {
	investment, err := parseField("Investment", in.Investment, true)
	if err != nil {
		return SimulationResult{}, err
	}
	buyPrice, err := parseField("Buy price", in.BuyPrice, true)
	if err != nil {
		return SimulationResult{}, err
	}
	sellPrice, err := parseField("Sell price", in.SellPrice, true)
	if err != nil {
		return SimulationResult{}, err
	}
	buyFee, err := parseField("Buy fee", in.BuyFeePercent, false)
	if err != nil {
		return SimulationResult{}, err
	}
	sellFee, err := parseField("Sell fee", in.SellFeePercent, false)
	if err != nil {
		return SimulationResult{}, err
	}

	units := div(investment, buyPrice)
	totalBuyCost := investment.Add(investment.Mul(buyFee).Div(hundred))
	grossSale := units.Mul(sellPrice)
	netSale := grossSale.Sub(grossSale.Mul(sellFee).Div(hundred))
	profit := netSale.Sub(totalBuyCost)

	roi := decimal.Zero
	if !totalBuyCost.IsZero() {
		roi = div(profit, totalBuyCost).Mul(hundred)
	}

	return SimulationResult{
		UnitsAcquired:     units,
		TotalBuyCost:      totalBuyCost,
		GrossSaleProceeds: grossSale,
		NetSaleProceeds:   netSale,
		GrossProfit:       profit,
		ROIPercent:        roi,
	}, nil
}

// parseField parses a finite decimal; NaN and Inf are rejected by the parser.
func parseField(label, raw string, mustBePositive bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, invalidInput(label, label+" is required")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalidInput(label, label+" must be a number")
	}

	if mustBePositive && !d.IsPositive() {
		return decimal.Zero, invalidInput(label, label+" must be greater than zero")
	}

	return d, nil
}

// div divides keeping quotientDigits significant digits however small the
// operands are; decimal.Div alone stops at a fixed number of decimal places.
func div(a, b decimal.Decimal) decimal.Decimal {
	magnitude := (a.Exponent() + int32(a.NumDigits())) - (b.Exponent() + int32(b.NumDigits()))
	places := quotientDigits - magnitude
	if places < int32(decimal.DivisionPrecision) {
		places = int32(decimal.DivisionPrecision)
	}
	return a.DivRound(b, places)
}

func invalidInput(field, msg string) error {
	return apperror.New(apperror.CodeInvalidSimulationInput,
		apperror.WithMessage(msg),
		apperror.WithContext(field))
}
