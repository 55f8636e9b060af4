// Package infra contains infrastructure adapters for the arbitrage context.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
)

const rule = "================================================================================"
const thinRule = "--------------------------------------------------------------------------------"

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a new ConsoleReporter writing to w, or stdout when w is nil.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleReporter{out: w}
}

// Start initializes the console reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Arbitrage Lens")
	fmt.Fprintln(r.out, "==============")
	return nil
}

// ReportAnalysis prints the ticker table and the best opportunity.
func (r *ConsoleReporter) ReportAnalysis(ctx context.Context, a *domain.Analysis) {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "TICKERS: %s\n", a.CoinID)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Analyzed:       %s\n", a.AnalyzedAt.Format(time.RFC3339))
	fmt.Fprintf(r.out, "Quotes:         %d (%d valid, %d DEX, %d CEX)\n",
		len(a.Quotes), a.ValidQuotes, a.DEXCount, a.CEXCount)
	fmt.Fprintln(r.out, thinRule)

	for _, q := range a.Quotes {
		marker := "  "
		switch {
		case q.IsBuyLeg:
			marker = "B "
		case q.IsSellLeg:
			marker = "S "
		}
		kind := "CEX"
		if q.IsDEX {
			kind = "DEX"
		}
		fmt.Fprintf(r.out, "%s[%s] %-32s %-16s %14s\n",
			marker, kind, truncate(q.DisplayName, 32), truncate(q.PairLabel(), 16), formatPrice(q.PriceUSD))
	}

	fmt.Fprintln(r.out, thinRule)
	if !a.HasOpportunity() {
		fmt.Fprintln(r.out, "No arbitrage opportunity above the minimum spread.")
		fmt.Fprintln(r.out, rule)
		return
	}

	opp := a.Opportunity
	fmt.Fprintln(r.out, "ARBITRAGE OPPORTUNITY")
	fmt.Fprintf(r.out, "  Buy on:         %s (%s) at $%s\n", opp.Buy.ExchangeName, opp.Buy.PairLabel, formatFloat(opp.Buy.Price))
	fmt.Fprintf(r.out, "  Sell on:        %s (%s) at $%s\n", opp.Sell.ExchangeName, opp.Sell.PairLabel, formatFloat(opp.Sell.Price))
	fmt.Fprintf(r.out, "  Spread:         %.2f%%\n", opp.SpreadPercent)
	fmt.Fprintln(r.out, rule)
}

// ReportSimulation prints a simulated trade.
func (r *ConsoleReporter) ReportSimulation(ctx context.Context, in domain.SimulationInput, res domain.SimulationResult) {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "SIMULATION")
	fmt.Fprintf(r.out, "  Investment:     $%s (buy fee %s%%, sell fee %s%%)\n", in.Investment, in.BuyFeePercent, in.SellFeePercent)
	fmt.Fprintf(r.out, "  Units:          %s\n", res.UnitsAcquired.StringFixed(8))
	fmt.Fprintf(r.out, "  Total cost:     $%s\n", res.TotalBuyCost.StringFixed(2))
	fmt.Fprintf(r.out, "  Net proceeds:   $%s\n", res.NetSaleProceeds.StringFixed(2))
	fmt.Fprintf(r.out, "  Profit:         $%s (%s%%)\n", res.GrossProfit.StringFixed(2), res.ROIPercent.StringFixed(4))
	fmt.Fprintln(r.out, rule)
}

// ReportError prints a failure with its user-facing message.
func (r *ConsoleReporter) ReportError(ctx context.Context, err error) {
	msg := apperror.Display(err)
	if apperror.IsRetryable(err) {
		msg += " (temporary)"
	}
	fmt.Fprintf(r.out, "[%s] error: %s\n", time.Now().Format("15:04:05"), msg)
}

// ReportAnalysisError prints a failed analysis like any other error.
func (r *ConsoleReporter) ReportAnalysisError(ctx context.Context, coinID string, err error) {
	r.ReportError(ctx, err)
}

// Stop gracefully shuts down the console reporter.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	return nil
}

func formatPrice(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return "$" + formatFloat(*p)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
