package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/pkg/ui/components"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseSearch    Phase = "search"    // Search box and results
	PhaseDetail    Phase = "detail"    // Tickers, opportunity and chart for one coin
	PhaseSimulator Phase = "simulator" // Profit simulator form
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// requestTimeout bounds every backend call made from the UI.
const requestTimeout = 20 * time.Second

// SourceName labels the market data source in the status bar.
const SourceName = "CoinGecko"

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Retryable bool
	Timestamp time.Time
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	backend Backend
	keys    KeyMap
	help    help.Model

	// Components
	input       textinput.Model
	results     table.Model
	spinner     spinner.Model
	tickers     *components.TickersComponent
	opportunity *components.OpportunityComponent
	chart       *components.ChartComponent
	stats       *components.StatsComponent
	status      *components.StatusComponent
	form        simulatorForm

	// Phase state
	phase        Phase
	welcomeStart time.Time

	// State
	quitting   bool
	width      int
	height     int
	lastQuery  string
	searching  bool
	loading    bool
	coins      []marketDomain.Coin
	coin       *marketDomain.Coin
	analysis   *arbDomain.Analysis
	lastUpdate time.Time
	errors     []ErrorEntry // Persistent error panel (last 3)
}

// New creates a new TUI model.
func New(backend Backend) Model {
	input := textinput.New()
	input.Placeholder = "Search a token (e.g. bitcoin, pepe, usdc)"
	input.Prompt = "🔎 "
	input.CharLimit = 64
	input.Width = 48
	input.Focus()

	results := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 6},
			{Title: "Name", Width: 28},
			{Title: "Symbol", Width: 10},
			{Title: "ID", Width: 28},
		}),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	styles.Selected = styles.Selected.
		Foreground(ColorWhite).
		Background(ColorPrimary).
		Bold(false)
	results.SetStyles(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	status := components.NewStatusComponent()
	status.Update(components.SourceStatus{Name: SourceName, State: backend.SourceState()})

	return Model{
		backend:      backend,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		input:        input,
		results:      results,
		spinner:      sp,
		tickers:      components.NewTickersComponent(15),
		opportunity:  components.NewOpportunityComponent(arbDomain.MinSpreadPercent),
		chart:        components.NewChartComponent(60),
		stats:        components.NewStatsComponent(),
		status:       status,
		form:         newSimulatorForm(),
		phase:        PhaseWelcome,
		welcomeStart: time.Now(),
		errors:       make([]ErrorEntry, 0, 3),
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.tickers.SetMaxVisible(msg.Height - 22)
		m.chart.SetWidth(msg.Width/2 - 8)
		return m, nil

	case TickMsg:
		if m.phase == PhaseWelcome {
			if time.Since(m.welcomeStart) >= WelcomeDuration {
				m.enterSearch()
				return m, textinput.Blink
			}
			return m, tickCmd()
		}
		return m, nil

	case WelcomeCompleteMsg:
		if m.phase == PhaseWelcome {
			m.enterSearch()
			return m, textinput.Blink
		}
		return m, nil

	case spinner.TickMsg:
		if !m.searching && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SearchResultsMsg:
		// a newer search supersedes this one
		if msg.Query != m.lastQuery {
			return m, nil
		}
		m.searching = false
		m.coins = msg.Coins
		m.results.SetRows(coinRows(msg.Coins))
		m.results.SetCursor(0)
		if len(msg.Coins) > 0 {
			m.input.Blur()
			m.results.Focus()
		}
		m.bumpStats(func(s *components.Stats) { s.Searches++ })
		m.markSource(msg.Latency)
		return m, nil

	case AnalysisMsg:
		if msg.Analysis == nil || m.coin == nil || msg.Analysis.CoinID != m.coin.ID {
			return m, nil
		}
		m.loading = false
		m.analysis = msg.Analysis
		m.tickers.Update(tickerRows(msg.Analysis))
		m.opportunity.Set(opportunityView(msg.Analysis.Opportunity), msg.Analysis.ValidQuotes)
		m.bumpStats(func(s *components.Stats) {
			s.Analyses++
			if msg.Analysis.HasOpportunity() {
				s.Opportunities++
			}
		})
		m.markSource(0)
		return m, nil

	case ChartMsg:
		if msg.Chart == nil || m.coin == nil || msg.Chart.CoinID != m.coin.ID {
			return m, nil
		}
		m.chart.Set(chartView(msg.Chart))
		return m, nil

	case SimulationMsg:
		result := msg.Result
		m.form.result = &result
		m.form.err = nil
		m.bumpStats(func(s *components.Stats) { s.Simulations++ })
		return m, nil

	case SimulationErrorMsg:
		m.form.err = msg.Error
		m.form.result = nil
		return m, nil

	case ErrorMsg:
		if msg.CoinID != "" && (m.coin == nil || msg.CoinID != m.coin.ID) {
			return m, nil
		}
		m.searching = false
		m.loading = false
		m.addError(msg.Error)
		m.markSource(0)
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards messages such as cursor blinks to the active input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.phase {
	case PhaseSearch:
		if m.input.Focused() {
			m.input, cmd = m.input.Update(msg)
		}
	case PhaseSimulator:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// During welcome phase, any key skips ahead
	if m.phase == PhaseWelcome {
		m.enterSearch()
		return m, textinput.Blink
	}

	switch m.phase {
	case PhaseSearch:
		return m.handleSearchKey(msg)
	case PhaseDetail:
		return m.handleDetailKey(msg)
	case PhaseSimulator:
		return m.handleSimulatorKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Select):
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.lastQuery = query
			m.searching = true
			return m, tea.Batch(m.searchCmd(query), m.spinner.Tick)
		case key.Matches(msg, m.keys.Back):
			if len(m.coins) > 0 {
				m.input.Blur()
				m.results.Focus()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.results.Blur()
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Select):
		idx := m.results.Cursor()
		if idx < 0 || idx >= len(m.coins) {
			return m, nil
		}
		return m.selectCoin(m.coins[idx])
	case key.Matches(msg, m.keys.Clear):
		m.clearErrors()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.leaveDetail()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.leaveDetail()
		m.results.Blur()
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Simulate):
		m.openSimulator()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Refresh):
		if m.coin == nil {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.analyzeCmd(m.coin.ID), m.chartCmd(m.coin.ID), m.spinner.Tick)
	case key.Matches(msg, m.keys.Up):
		m.tickers.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.tickers.ScrollDown()
	case key.Matches(msg, m.keys.Clear):
		m.clearErrors()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleSimulatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.phase = PhaseDetail
		return m, nil
	case key.Matches(msg, m.keys.Select):
		return m, m.simulateCmd(m.form.input())
	case key.Matches(msg, m.keys.Next):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.form.prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *Model) enterSearch() {
	m.phase = PhaseSearch
	m.results.Blur()
	m.input.Focus()
}

func (m Model) selectCoin(coin marketDomain.Coin) (tea.Model, tea.Cmd) {
	m.coin = &coin
	m.analysis = nil
	m.loading = true
	m.phase = PhaseDetail
	m.tickers.Update(nil)
	m.opportunity.Clear()
	m.chart.Set(nil)
	return m, tea.Batch(m.analyzeCmd(coin.ID), m.chartCmd(coin.ID), m.spinner.Tick)
}

// leaveDetail returns to the results; late messages for the old coin are dropped.
func (m *Model) leaveDetail() {
	m.phase = PhaseSearch
	m.coin = nil
	m.analysis = nil
	m.loading = false
}

func (m *Model) openSimulator() {
	investment, buyFee, sellFee := m.backend.SimulationDefaults()
	buyPrice, sellPrice := "", ""
	if m.analysis.HasOpportunity() {
		buyPrice = formatInputFloat(m.analysis.Opportunity.Buy.Price)
		sellPrice = formatInputFloat(m.analysis.Opportunity.Sell.Price)
	}
	m.form.prefill(investment, buyPrice, sellPrice, buyFee, sellFee)
	m.phase = PhaseSimulator
}

func (m *Model) addError(err error) {
	if err == nil {
		return
	}
	m.errors = append(m.errors, ErrorEntry{
		Message:   apperror.Display(err),
		Retryable: apperror.IsRetryable(err),
		Timestamp: time.Now(),
	})
	if len(m.errors) > 3 {
		m.errors = m.errors[len(m.errors)-3:]
	}
	m.bumpStats(func(s *components.Stats) { s.Errors++ })
}

func (m *Model) clearErrors() {
	m.errors = make([]ErrorEntry, 0, 3)
}

func (m *Model) bumpStats(fn func(*components.Stats)) {
	s := m.stats.Stats()
	fn(&s)
	m.stats.Update(s)
	m.lastUpdate = time.Now()
}

func (m *Model) markSource(latency time.Duration) {
	m.status.Update(components.SourceStatus{
		Name:       SourceName,
		State:      m.backend.SourceState(),
		Latency:    latency,
		LastUpdate: time.Now(),
	})
}

// Commands

func (m Model) searchCmd(query string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		start := time.Now()
		coins, err := backend.Search(ctx, query)
		if err != nil {
			return ErrorMsg{Error: err}
		}
		return SearchResultsMsg{Query: query, Coins: coins, Latency: time.Since(start)}
	}
}

// analyzeCmd returns nothing itself; the analysis arrives through the reporter.
func (m Model) analyzeCmd(coinID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		backend.RequestAnalysis(ctx, coinID)
		return nil
	}
}

func (m Model) chartCmd(coinID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		chart, err := backend.Chart(ctx, coinID)
		if err != nil {
			return ErrorMsg{CoinID: coinID, Error: err}
		}
		return ChartMsg{Chart: chart}
	}
}

func (m Model) simulateCmd(in arbDomain.SimulationInput) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := backend.Simulate(ctx, in)
		if err != nil {
			return SimulationErrorMsg{Error: err}
		}
		return SimulationMsg{Input: in, Result: result}
	}
}

// View mapping

func coinRows(coins []marketDomain.Coin) []table.Row {
	rows := make([]table.Row, 0, len(coins))
	for _, c := range coins {
		rank := "-"
		if c.Rank() > 0 {
			rank = strconv.Itoa(c.Rank())
		}
		rows = append(rows, table.Row{rank, c.Name, strings.ToUpper(c.Symbol), c.ID})
	}
	return rows
}

func tickerRows(a *arbDomain.Analysis) []components.TickerRow {
	rows := make([]components.TickerRow, 0, len(a.Quotes))
	for _, q := range a.Quotes {
		rows = append(rows, components.TickerRow{
			Exchange: q.DisplayName,
			IsDEX:    q.IsDEX,
			Pair:     q.PairLabel(),
			Price:    q.PriceUSD,
			Volume:   q.VolumeUSD,
			IsBuy:    q.IsBuyLeg,
			IsSell:   q.IsSellLeg,
			IsStale:  q.IsStale,
		})
	}
	return rows
}

func opportunityView(opp *arbDomain.Opportunity) *components.OpportunityView {
	if opp == nil {
		return nil
	}
	return &components.OpportunityView{
		Buy: components.LegView{
			Exchange: opp.Buy.ExchangeName,
			Pair:     opp.Buy.PairLabel,
			Price:    opp.Buy.Price,
		},
		Sell: components.LegView{
			Exchange: opp.Sell.ExchangeName,
			Pair:     opp.Sell.PairLabel,
			Price:    opp.Sell.Price,
		},
		SpreadPercent: opp.SpreadPercent,
	}
}

func chartView(c *marketDomain.MarketChart) *components.ChartView {
	return &components.ChartView{
		Values:        c.Values(),
		Days:          c.Days,
		Currency:      c.VsCurrency,
		Min:           c.Min(),
		Max:           c.Max(),
		Last:          c.Last(),
		ChangePercent: c.ChangePercent(),
	}
}

func formatInputFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	if m.phase == PhaseWelcome {
		return m.renderWelcomeScreen()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(" 🔭 Token Arbitrage Lens "))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	switch m.phase {
	case PhaseSearch:
		b.WriteString(m.renderSearch())
	case PhaseDetail:
		b.WriteString(m.renderDetail())
	case PhaseSimulator:
		name := ""
		if m.coin != nil {
			name = m.coin.Name
		}
		b.WriteString(BoxStyle.Render(m.form.view(name)))
	}
	b.WriteString("\n\n")

	// Persistent error panel (show last 3 errors)
	if len(m.errors) > 0 {
		b.WriteString(ErrorHeaderStyle.Render("ERRORS"))
		b.WriteString(ErrorHintStyle.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(ErrorLineStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			if err.Retryable {
				b.WriteString(ErrorHintStyle.Render("(temporary) "))
			}
			b.WriteString(ErrorHintStyle.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	if m.searching {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(MutedValue.Render(" searching"))
	}
	b.WriteString("\n\n")

	switch {
	case len(m.coins) > 0:
		b.WriteString(m.results.View())
	case m.lastQuery != "" && !m.searching:
		b.WriteString(MutedValue.Render(fmt.Sprintf("  No ranked tokens match %q", m.lastQuery)))
	default:
		b.WriteString(MutedValue.Render("  Type a name or symbol and press enter"))
	}

	return b.String()
}

func (m Model) renderDetail() string {
	if m.coin == nil {
		return ""
	}

	var header strings.Builder
	header.WriteString(HeaderStyle.Render(fmt.Sprintf("%s (%s)", m.coin.Name, strings.ToUpper(m.coin.Symbol))))
	if m.coin.Rank() > 0 {
		header.WriteString(MutedValue.Render(fmt.Sprintf("  rank #%d", m.coin.Rank())))
	}
	if m.loading {
		header.WriteString("  ")
		header.WriteString(m.spinner.View())
		header.WriteString(MutedValue.Render(" loading tickers"))
	} else if m.analysis != nil {
		header.WriteString(MutedValue.Render(fmt.Sprintf("  %d quotes, %d valid, %d DEX / %d CEX",
			len(m.analysis.Quotes), m.analysis.ValidQuotes, m.analysis.DEXCount, m.analysis.CEXCount)))
	}

	top := m.opportunity.View()
	chart := m.chart.View()
	var panels string
	if m.width > 100 {
		left := BoxStyle.Width(m.width/2 - 2).Render(top)
		right := BoxStyle.Width(m.width/2 - 2).Render(chart)
		panels = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		panels = BoxStyle.Render(top) + "\n" + BoxStyle.Render(chart)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header.String(),
		"",
		panels,
		BoxStyle.Render(m.tickers.View()),
	)
}

func (m Model) renderStatusBar() string {
	parts := []string{m.status.View(), m.stats.View()}

	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago", ago)))
	}

	return strings.Join(parts, "  │  ")
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	// Animated dots based on time
	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder
	sb.WriteString("\n\n\n\n")

	logo := `
   ██╗     ███████╗███╗   ██╗███████╗
   ██║     ██╔════╝████╗  ██║██╔════╝
   ██║     █████╗  ██╔██╗ ██║███████╗
   ██║     ██╔══╝  ██║╚██╗██║╚════██║
   ███████╗███████╗██║ ╚████║███████║
   ╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝
`
	sb.WriteString(LogoStyle.Render(logo))
	sb.WriteString("\n")
	sb.WriteString(MutedValue.Render("      T O K E N   A R B I T R A G E"))
	sb.WriteString("\n\n\n")
	sb.WriteString(TaglineStyle.Render("      Find the spread before it closes"))
	sb.WriteString("\n\n\n")
	sb.WriteString(LoadingStyle.Render(fmt.Sprintf("           Loading%s", dots)))
	sb.WriteString("\n\n")
	sb.WriteString(MutedValue.Render("   Press any key to skip, or wait..."))
	sb.WriteString("\n")

	return sb.String()
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program.
func Run(backend Backend) error {
	Program = tea.NewProgram(New(backend), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
