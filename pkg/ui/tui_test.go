package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

type fakeBackend struct {
	coins     []marketDomain.Coin
	requested []string
	simInput  arbDomain.SimulationInput
}

func (f *fakeBackend) Search(ctx context.Context, query string) ([]marketDomain.Coin, error) {
	return f.coins, nil
}

func (f *fakeBackend) RequestAnalysis(ctx context.Context, coinID string) {
	f.requested = append(f.requested, coinID)
}

func (f *fakeBackend) Chart(ctx context.Context, coinID string) (*marketDomain.MarketChart, error) {
	return &marketDomain.MarketChart{CoinID: coinID}, nil
}

func (f *fakeBackend) Simulate(ctx context.Context, in arbDomain.SimulationInput) (arbDomain.SimulationResult, error) {
	f.simInput = in
	if in.BuyFeePercent == "" {
		in.BuyFeePercent = "0.1"
	}
	if in.SellFeePercent == "" {
		in.SellFeePercent = "0.1"
	}
	return arbDomain.Simulate(in)
}

func (f *fakeBackend) SimulationDefaults() (string, string, string) {
	return "1000", "0.1", "0.1"
}

func (f *fakeBackend) SourceState() string { return "closed" }

func rank(n int) *int { return &n }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func btcAnalysis(coinID string) *arbDomain.Analysis {
	quotes := []marketDomain.TickerQuote{
		{ExchangeName: "Binance", BaseSymbol: "BTC", TargetSymbol: "USDT", PriceUSD: marketDomain.PriceOf(60000)},
		{ExchangeName: "Uniswap V3 (Ethereum)", BaseSymbol: "WBTC", TargetSymbol: "USDC", PriceUSD: marketDomain.PriceOf(60200)},
	}
	return arbDomain.Analyze(arbDomain.NewClassifier(), coinID, quotes)
}

func searchedModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	m := New(backend)
	m, _ = update(t, m, WelcomeCompleteMsg{})
	if m.phase != PhaseSearch {
		t.Fatalf("phase = %s, want search", m.phase)
	}

	for _, r := range "bitcoin" {
		m, _ = update(t, m, keyMsg(string(r)))
	}
	m, cmd := update(t, m, keyMsg("enter"))
	if !m.searching || cmd == nil {
		t.Fatal("enter should start a search")
	}

	m, _ = update(t, m, SearchResultsMsg{Query: "bitcoin", Coins: backend.coins})
	return m
}

func TestModel_SearchFlow(t *testing.T) {
	backend := &fakeBackend{coins: []marketDomain.Coin{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", MarketCapRank: rank(1)},
		{ID: "wrapped-bitcoin", Name: "Wrapped Bitcoin", Symbol: "wbtc", MarketCapRank: rank(15)},
	}}

	m := searchedModel(t, backend)

	if m.searching {
		t.Error("searching should be cleared")
	}
	if !m.results.Focused() || m.input.Focused() {
		t.Error("results table should take focus after a search")
	}
	if got := m.stats.Stats().Searches; got != 1 {
		t.Errorf("searches = %d, want 1", got)
	}
	if !strings.Contains(m.View(), "Wrapped Bitcoin") {
		t.Error("view should list results")
	}
}

func TestModel_StaleSearchIgnored(t *testing.T) {
	backend := &fakeBackend{coins: []marketDomain.Coin{{ID: "bitcoin", Name: "Bitcoin", MarketCapRank: rank(1)}}}
	m := searchedModel(t, backend)

	m, _ = update(t, m, SearchResultsMsg{Query: "ether", Coins: nil})

	if len(m.coins) != 1 {
		t.Error("results for an older query must be dropped")
	}
}

func TestModel_SelectAndAnalysis(t *testing.T) {
	backend := &fakeBackend{coins: []marketDomain.Coin{{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", MarketCapRank: rank(1)}}}
	m := searchedModel(t, backend)

	m, cmd := update(t, m, keyMsg("enter"))
	if m.phase != PhaseDetail || m.coin == nil || m.coin.ID != "bitcoin" {
		t.Fatalf("phase = %s, coin = %v", m.phase, m.coin)
	}
	if !m.loading || cmd == nil {
		t.Fatal("selecting a coin should start loading")
	}

	// analysis for another coin is ignored
	m, _ = update(t, m, AnalysisMsg{Analysis: btcAnalysis("ethereum")})
	if m.analysis != nil {
		t.Fatal("analysis for another coin must be ignored")
	}

	m, _ = update(t, m, AnalysisMsg{Analysis: btcAnalysis("bitcoin")})
	if m.loading || m.analysis == nil {
		t.Fatal("analysis should be stored")
	}
	if m.tickers.Len() != 2 {
		t.Errorf("ticker rows = %d, want 2", m.tickers.Len())
	}
	if opp := m.opportunity.Opportunity(); opp == nil || opp.SpreadPercent != 0.33 {
		t.Errorf("opportunity = %+v", opp)
	}

	view := m.View()
	for _, want := range []string{"BEST OPPORTUNITY", "Binance", "Uniswap V3", "0.33%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, keyMsg("esc"))
	if m.phase != PhaseSearch || m.coin != nil {
		t.Error("esc should return to results")
	}
}

func TestModel_Simulator(t *testing.T) {
	backend := &fakeBackend{coins: []marketDomain.Coin{{ID: "bitcoin", Name: "Bitcoin", MarketCapRank: rank(1)}}}
	m := searchedModel(t, backend)
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, AnalysisMsg{Analysis: btcAnalysis("bitcoin")})

	m, _ = update(t, m, keyMsg("s"))
	if m.phase != PhaseSimulator {
		t.Fatalf("phase = %s, want simulator", m.phase)
	}

	in := m.form.input()
	if in.Investment != "1000" || in.BuyPrice != "60000" || in.SellPrice != "60200" {
		t.Errorf("prefill = %+v", in)
	}
	if in.BuyFeePercent != "" || in.SellFeePercent != "" {
		t.Error("fees should be left blank for the defaults")
	}

	m, cmd := update(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter should run the simulation")
	}
	msg := cmd()
	sim, ok := msg.(SimulationMsg)
	if !ok {
		t.Fatalf("cmd returned %T", msg)
	}
	if backend.simInput.BuyPrice != "60000" {
		t.Errorf("backend got %+v", backend.simInput)
	}

	m, _ = update(t, m, sim)
	if m.form.result == nil {
		t.Fatal("result should be stored")
	}
	if !strings.Contains(m.View(), "ROI") {
		t.Error("view should show the result")
	}

	m, _ = update(t, m, SimulationErrorMsg{Error: errors.New("bad input")})
	if m.form.err == nil || m.form.result != nil {
		t.Error("error should replace the result")
	}

	m, _ = update(t, m, keyMsg("esc"))
	if m.phase != PhaseDetail {
		t.Error("esc should return to the detail view")
	}
}

func TestModel_StaleAnalysisErrorIgnored(t *testing.T) {
	backend := &fakeBackend{coins: []marketDomain.Coin{{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", MarketCapRank: rank(1)}}}
	m := searchedModel(t, backend)
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, ErrorMsg{CoinID: "ethereum", Error: errors.New("late failure")})
	if !m.loading {
		t.Error("an error for another coin must not stop loading")
	}
	if len(m.errors) != 0 {
		t.Errorf("errors = %d, want 0", len(m.errors))
	}

	m, _ = update(t, m, ErrorMsg{CoinID: "bitcoin", Error: errors.New("fetch failed")})
	if m.loading {
		t.Error("an error for the current coin should stop loading")
	}
	if len(m.errors) != 1 {
		t.Errorf("errors = %d, want 1", len(m.errors))
	}
}

func TestModel_ErrorPanel(t *testing.T) {
	m := New(&fakeBackend{})
	m, _ = update(t, m, WelcomeCompleteMsg{})

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, ErrorMsg{Error: errors.New("boom")})
	}

	if len(m.errors) != 3 {
		t.Errorf("errors kept = %d, want 3", len(m.errors))
	}
	if got := m.stats.Stats().Errors; got != 5 {
		t.Errorf("error count = %d, want 5", got)
	}
}

func TestModel_WelcomeSkip(t *testing.T) {
	m := New(&fakeBackend{})
	if !strings.Contains(m.View(), "T O K E N") {
		t.Error("welcome screen expected")
	}

	m, _ = update(t, m, keyMsg("x"))
	if m.phase != PhaseSearch {
		t.Errorf("phase = %s, want search", m.phase)
	}
}
