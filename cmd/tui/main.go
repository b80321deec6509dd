package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/johnnycuongn/sp-app/cmd/tui/internal/view"
	authStore "github.com/johnnycuongn/sp-app/internal/auth/store"
	"github.com/johnnycuongn/sp-app/internal/bill"
	billStore "github.com/johnnycuongn/sp-app/internal/bill/store"
	"github.com/johnnycuongn/sp-app/internal/config"
	"github.com/johnnycuongn/sp-app/internal/database"
	"github.com/johnnycuongn/sp-app/internal/outlet"
	outletStore "github.com/johnnycuongn/sp-app/internal/outlet/store"
	"github.com/johnnycuongn/sp-app/internal/payment"
	paymentStore "github.com/johnnycuongn/sp-app/internal/payment/store"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/storage"
	"github.com/johnnycuongn/sp-app/internal/supplier"
	supplierStore "github.com/johnnycuongn/sp-app/internal/supplier/store"
)

type model struct {
	billService *bill.Service
	sources     refdata.Sources
	refs        *refdata.Cache
	userID      uuid.UUID

	currentView View

	dashboardView view.DashboardModel
	billsView     view.BillsModel
	newBillView   view.NewBillModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewBills     View = 2
	ViewNewBill   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var files storage.FileStore

	if cfg.OSSConfigured() {
		files, err = storage.NewOSS(cfg.OSS.Endpoint, cfg.OSS.AccessKey, cfg.OSS.SecretKey, cfg.OSS.Bucket, cfg.OSS.URLTTL)
		if err != nil {
			slog.Error("failed to open object storage", "error", err)
			os.Exit(1)
		}
	} else {
		files = storage.NewMemory()
	}

	var (
		supplierSvc = supplier.NewService(supplierStore.New(db))
		paymentSvc  = payment.NewService(paymentStore.New(db))
		outletSvc   = outlet.NewService(outletStore.New(db))
		billSvc     = bill.NewService(billStore.New(db), files, paymentSvc)
	)

	sources := refdata.Sources{
		Suppliers: supplierSvc,
		Payments:  paymentSvc,
		Outlets:   outletSvc,
	}

	var userID uuid.UUID

	if cfg.TUI.UserEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := authStore.New(db).GetByEmail(ctx, cfg.TUI.UserEmail)
		if err != nil {
			slog.Error("failed to look up TUI user", "email", cfg.TUI.UserEmail, "error", err)
			os.Exit(1)
		}

		userID = user.ID
	} else {
		slog.Warn("TUI_USER_EMAIL not set, recording bills will fail")
	}

	refs := &refdata.Cache{}
	year := time.Now().UTC().Year()

	return model{
		billService:   billSvc,
		sources:       sources,
		refs:          refs,
		userID:        userID,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(billSvc, sources, refs, year),
		billsView:     view.NewBillsModel(billSvc, sources, refs, year),
		newBillView:   view.NewNewBillModel(billSvc, sources, refs, userID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.billService, m.sources, m.refs, time.Now().UTC().Year())

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.billService, m.sources, m.refs, time.Now().UTC().Year())

				return m, m.billsView.Init()
			case "3":
				m.currentView = ViewNewBill
				m.newBillView = view.NewNewBillModel(m.billService, m.sources, m.refs, m.userID)

				return m, m.newBillView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	case ViewNewBill:
		var newModel tea.Model
		newModel, cmd = m.newBillView.Update(msg)
		m.newBillView = newModel.(view.NewBillModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Bills TUI\n\n" +
				"1. Dashboard\n" +
				"2. Browse Bills\n" +
				"3. New Bill\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewBills:
		return m.billsView.View()
	case ViewNewBill:
		return m.newBillView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
