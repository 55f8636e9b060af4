package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
)

const (
	fieldInvestment = iota
	fieldBuyPrice
	fieldSellPrice
	fieldBuyFee
	fieldSellFee
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Investment ($)",
	"Buy price ($)",
	"Sell price ($)",
	"Buy fee (%)",
	"Sell fee (%)",
}

// simulatorForm is the five-field profit simulator.
type simulatorForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	result *arbDomain.SimulationResult
	err    error
}

func newSimulatorForm() simulatorForm {
	var f simulatorForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.Width = 20
		f.inputs[i] = ti
	}
	f.inputs[fieldInvestment].Focus()
	return f
}

// prefill sets the investment and prices; fees stay blank with the defaults as placeholders.
func (f *simulatorForm) prefill(investment, buyPrice, sellPrice, buyFee, sellFee string) {
	f.inputs[fieldInvestment].SetValue(investment)
	f.inputs[fieldBuyPrice].SetValue(buyPrice)
	f.inputs[fieldSellPrice].SetValue(sellPrice)
	f.inputs[fieldBuyFee].SetValue("")
	f.inputs[fieldSellFee].SetValue("")
	f.inputs[fieldBuyFee].Placeholder = buyFee
	f.inputs[fieldSellFee].Placeholder = sellFee
	f.result = nil
	f.err = nil
	f.setFocus(fieldInvestment)
}

func (f *simulatorForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *simulatorForm) next() { f.setFocus(f.focus + 1) }
func (f *simulatorForm) prev() { f.setFocus(f.focus - 1) }

// input returns the raw field values.
func (f simulatorForm) input() arbDomain.SimulationInput {
	return arbDomain.SimulationInput{
		Investment:     f.inputs[fieldInvestment].Value(),
		BuyPrice:       f.inputs[fieldBuyPrice].Value(),
		SellPrice:      f.inputs[fieldSellPrice].Value(),
		BuyFeePercent:  f.inputs[fieldBuyFee].Value(),
		SellFeePercent: f.inputs[fieldSellFee].Value(),
	}
}

func (f simulatorForm) update(msg tea.Msg) (simulatorForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f simulatorForm) view(coinName string) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("PROFIT SIMULATOR"))
	if coinName != "" {
		b.WriteString(MutedValue.Render(" " + coinName))
	}
	b.WriteString("\n\n")

	for i, ti := range f.inputs {
		label := MutedValue.Render(fmt.Sprintf("  %-16s", fieldLabels[i]))
		if i == f.focus {
			label = FocusedLabelStyle.Render(fmt.Sprintf("▸ %-16s", fieldLabels[i]))
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(ti.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case f.err != nil:
		b.WriteString(NegativeValue.Render("  " + apperror.Display(f.err)))
		b.WriteString("\n")
	case f.result != nil:
		b.WriteString(renderSimulationResult(*f.result))
	default:
		b.WriteString(MutedValue.Render("  Press enter to simulate. Blank fees use the defaults shown."))
		b.WriteString("\n")
	}

	return b.String()
}

func renderSimulationResult(r arbDomain.SimulationResult) string {
	profitStyle := PositiveValue
	if !r.IsProfitable() {
		profitStyle = NegativeValue
	}
	sign := "+"
	if r.GrossProfit.IsNegative() {
		sign = "-"
	}

	rows := []struct{ label, value string }{
		{"Units acquired", r.UnitsAcquired.StringFixed(8)},
		{"Total buy cost", "$" + r.TotalBuyCost.StringFixed(2)},
		{"Gross sale", "$" + r.GrossSaleProceeds.StringFixed(2)},
		{"Net sale", "$" + r.NetSaleProceeds.StringFixed(2)},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", row.label, row.value))
	}
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Profit",
		profitStyle.Render(sign+"$"+r.GrossProfit.Abs().StringFixed(2))))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "ROI",
		profitStyle.Render(sign+r.ROIPercent.Abs().StringFixed(4)+"%")))

	return b.String()
}
