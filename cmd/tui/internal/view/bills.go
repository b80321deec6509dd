package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/refdata"
)

// BillsModel is a year-scoped browser over recorded bills.
type BillsModel struct {
	CommonModel
	billSvc *bill.Service
	sources refdata.Sources
	refs    *refdata.Cache

	year  int
	vms   []bill.ViewModel
	table table.Model

	loading bool
	err     error
	status  string
}

func NewBillsModel(billSvc *bill.Service, sources refdata.Sources, refs *refdata.Cache, year int) BillsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Supplier", Width: 24},
			{Title: "Outlet", Width: 18},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Payment", Width: 18},
			{Title: "Files", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styleTable(&t)

	return BillsModel{
		billSvc: billSvc,
		sources: sources,
		refs:    refs,
		year:    year,
		table:   t,
		loading: true,
	}
}

func (m BillsModel) Title() string { return "Bills" }
func (m BillsModel) ShortHelp() string {
	return "Esc: back | y: year | d: delete | r: refresh"
}

type billsLoadMsg struct {
	vms []bill.ViewModel
	err error
}

type billDeleteMsg struct {
	err error
}

func (m BillsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.refs.EnsureLoaded(ctx, m.sources); err != nil {
			return billsLoadMsg{err: err}
		}

		bills, err := m.billSvc.ForYear(ctx, m.year)
		if err != nil {
			return billsLoadMsg{err: err}
		}

		return billsLoadMsg{vms: bill.ToViewModels(bills, m.refs)}
	}
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billsLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.vms = msg.vms
		m.refreshTable()

		return m, nil

	case billDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}

		m.status = "Bill deleted"

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
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
			if m.year < bill.FirstYearDefault {
				m.year = currentYear()
			}

			m.loading = true

			return m, m.loadCmd()
		case "d":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.vms) {
				return m, nil
			}

			id := m.vms[idx].ID

			return m, func() tea.Msg {
				ctx, cancel := DbCtx()
				defer cancel()

				return billDeleteMsg{err: m.billSvc.Delete(ctx, id)}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *BillsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.vms))
	for _, vm := range m.vms {
		rows = append(rows, table.Row{
			FormatDate(vm.PaymentDate),
			vm.SupplierName,
			vm.OutletName,
			FormatAmount(vm.TotalPayment),
			string(vm.PaymentStatus),
			vm.PaymentName,
			fmt.Sprintf("%d", len(vm.FilesRef)),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m BillsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("[y] Year: %d | %d bills", m.year, len(m.vms))
	if m.status != "" {
		header += " | " + m.status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(m.ShortHelp()),
	)
}
