package view

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/report"
)

// DashboardModel shows per-payment-method totals for a selectable window
// plus the bills that fall inside it.
type DashboardModel struct {
	CommonModel
	billSvc *bill.Service
	sources refdata.Sources
	refs    *refdata.Cache

	year      int
	firstYear int
	rng       report.Range
	index     int

	bills []bill.Bill

	totalsTable table.Model
	billsTable  table.Model

	loading bool
	err     error
}

func NewDashboardModel(billSvc *bill.Service, sources refdata.Sources, refs *refdata.Cache, year int) DashboardModel {
	totals := table.New(
		table.WithColumns([]table.Column{
			{Title: "Payment", Width: 24},
			{Title: "Total", Width: 14},
		}),
		table.WithHeight(8),
	)

	bills := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Supplier", Width: 24},
			{Title: "Outlet", Width: 18},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Payment", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styleTable(&totals)
	styleTable(&bills)

	return DashboardModel{
		billSvc:     billSvc,
		sources:     sources,
		refs:        refs,
		year:        year,
		firstYear:   year,
		rng:         report.RangeYear,
		totalsTable: totals,
		billsTable:  bills,
		loading:     true,
	}
}

func styleTable(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
}

func (m DashboardModel) Title() string { return "Dashboard" }
func (m DashboardModel) ShortHelp() string {
	return "Esc: back | y: year | g: granularity | tab/shift+tab: period | r: refresh"
}

type dashboardLoadMsg struct {
	firstYear int
	bills     []bill.Bill
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.refs.EnsureLoaded(ctx, m.sources); err != nil {
			return dashboardLoadMsg{err: err}
		}

		firstYear, err := m.billSvc.FirstYear(ctx)
		if err != nil {
			return dashboardLoadMsg{err: err}
		}

		bills, err := m.billSvc.ForYear(ctx, m.year)

		return dashboardLoadMsg{firstYear: firstYear, bills: bills, err: err}
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.firstYear = msg.firstYear
		m.bills = msg.bills
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "y":
			m.year--
			if m.year < m.firstYear {
				m.year = currentYear()
			}

			m.index = 0
			m.loading = true

			return m, m.loadCmd()
		case "g":
			m.cycleRange()
			m.refresh()

			return m, nil
		case "tab":
			m.cycleIndex(1)
			m.refresh()

			return m, nil
		case "shift+tab":
			m.cycleIndex(-1)
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.billsTable, cmd = m.billsTable.Update(msg)

	return m, cmd
}

func (m *DashboardModel) cycleRange() {
	switch m.rng {
	case report.RangeYear:
		m.rng = report.RangeQuarter
	case report.RangeQuarter:
		m.rng = report.RangeMonth
	default:
		m.rng = report.RangeYear
	}

	m.index = 0
}

// cycleIndex moves through the selectable periods of the active granularity,
// never offering a future period of the current year.
func (m *DashboardModel) cycleIndex(step int) {
	var available []int

	switch m.rng {
	case report.RangeQuarter:
		available = report.AvailableQuarters(m.year, nowUTC())
	case report.RangeMonth:
		available = report.AvailableMonths(m.year, nowUTC())
	default:
		return
	}

	if len(available) == 0 {
		m.index = 0
		return
	}

	m.index = (m.index + step + len(available)) % len(available)
}

func (m *DashboardModel) refresh() {
	window, err := report.WindowFor(m.year, m.rng, m.index)
	if err != nil {
		m.err = err
		return
	}

	selected := report.Select(bill.ToViewModels(m.bills, m.refs), window)
	totals := report.Aggregate(selected, m.refs.Payments)

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	totalRows := make([]table.Row, 0, len(labels))
	for _, label := range labels {
		totalRows = append(totalRows, table.Row{label, FormatAmount(totals[label])})
	}

	m.totalsTable.SetRows(totalRows)

	billRows := make([]table.Row, 0, len(selected))
	for _, vm := range selected {
		billRows = append(billRows, table.Row{
			FormatDate(vm.PaymentDate),
			vm.SupplierName,
			vm.OutletName,
			FormatAmount(vm.TotalPayment),
			string(vm.PaymentStatus),
			vm.PaymentName,
		})
	}

	m.billsTable.SetRows(billRows)
	m.billsTable.SetCursor(0)
}

func (m DashboardModel) periodLabel() string {
	switch m.rng {
	case report.RangeQuarter:
		return fmt.Sprintf("Q%d", m.index+1)
	case report.RangeMonth:
		return fmt.Sprintf("month %d", m.index+1)
	}

	return "full year"
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("[y] Year: %d | [g] Granularity: %s | [tab] Period: %s", m.year, m.rng, m.periodLabel())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		m.totalsTable.View(),
		"",
		m.billsTable.View(),
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(m.ShortHelp()),
	)
}
