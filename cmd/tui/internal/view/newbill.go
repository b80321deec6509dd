package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/refdata"
)

type newBillState int

const (
	newBillStateOutlet newBillState = iota
	newBillStateDetails
)

// NewBillModel records a bill through a two-step form: pick the outlet
// first, so its default payment method can be pre-selected in the second
// step.
type NewBillModel struct {
	CommonModel
	billSvc *bill.Service
	sources refdata.Sources
	refs    *refdata.Cache
	userID  uuid.UUID

	state newBillState
	form  *huh.Form

	formOutlet   string
	formSupplier string
	formPayment  string
	formDate     string
	formTotal    string
	formStatus   string

	status string
	err    error
}

func NewNewBillModel(billSvc *bill.Service, sources refdata.Sources, refs *refdata.Cache, userID uuid.UUID) NewBillModel {
	return NewBillModel{
		billSvc: billSvc,
		sources: sources,
		refs:    refs,
		userID:  userID,
	}
}

func (m NewBillModel) Title() string     { return "New Bill" }
func (m NewBillModel) ShortHelp() string { return "Navigate form | Esc: back" }

type refsReadyMsg struct {
	err error
}

type billSavedMsg struct {
	err error
}

func (m NewBillModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return refsReadyMsg{err: m.refs.EnsureLoaded(ctx, m.sources)}
	}
}

func (m *NewBillModel) outletForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(m.refs.Outlets))
	for _, o := range m.refs.Outlets {
		options = append(options, huh.NewOption(o.Name, o.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("outlet").
				Title("Outlet").
				Options(options...).
				Value(&m.formOutlet),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m *NewBillModel) detailsForm() *huh.Form {
	suppliers := make([]huh.Option[string], 0, len(m.refs.Suppliers))
	for _, s := range m.refs.Suppliers {
		suppliers = append(suppliers, huh.NewOption(s.Name, s.ID.String()))
	}

	payments := make([]huh.Option[string], 0, len(m.refs.Payments))
	for _, p := range m.refs.Payments {
		payments = append(payments, huh.NewOption(p.Name, p.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("supplier").
				Title("Supplier").
				Options(suppliers...).
				Value(&m.formSupplier),

			huh.NewSelect[string]().
				Key("payment").
				Title("Payment Method").
				Options(payments...).
				Value(&m.formPayment),

			huh.NewInput().
				Key("date").
				Title("Payment Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("want YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("total").
				Title("Total").
				Placeholder("0.00").
				Value(&m.formTotal).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v == 0 {
						return fmt.Errorf("want a non-zero number")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Paid", string(bill.StatusPaid)),
					huh.NewOption("Not paid", string(bill.StatusNotPaid)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(45).WithShowHelp(false)
}

// prefillPayment seeds the payment select with the chosen outlet's default.
func (m *NewBillModel) prefillPayment() {
	outletID, err := uuid.Parse(m.formOutlet)
	if err != nil {
		return
	}

	for _, o := range m.refs.Outlets {
		if o.ID == outletID && o.DefaultPaymentID != uuid.Nil {
			m.formPayment = o.DefaultPaymentID.String()
			return
		}
	}
}

func (m NewBillModel) saveCmd() tea.Cmd {
	supplierID, _ := uuid.Parse(m.formSupplier)
	outletID, _ := uuid.Parse(m.formOutlet)
	paymentID, _ := uuid.Parse(m.formPayment)
	date, _ := time.Parse("2006-01-02", m.formDate)
	total, _ := strconv.ParseFloat(strings.TrimSpace(m.formTotal), 64)

	params := bill.CreateParams{
		SupplierID:      supplierID,
		OutletID:        outletID,
		PaymentMethodID: paymentID,
		PaymentDate:     date.UTC(),
		TotalPayment:    total,
		PaymentStatus:   bill.Status(m.formStatus),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.billSvc.Create(ctx, m.userID, params, nil)

		return billSavedMsg{err: err}
	}
}

func (m NewBillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refsReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.state = newBillStateOutlet
		m.form = m.outletForm()

		return m, m.form.Init()

	case billSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Bill recorded"
		}

		m.state = newBillStateOutlet
		m.formDate = ""
		m.formTotal = ""
		m.form = m.outletForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case newBillStateOutlet:
		m.state = newBillStateDetails
		m.prefillPayment()
		m.form = m.detailsForm()

		return m, m.form.Init()

	case newBillStateDetails:
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m NewBillModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.form == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading reference data...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = "\n\n" + m.status
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View() + statusLine)
}
