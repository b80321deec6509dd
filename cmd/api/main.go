package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/johnnycuongn/sp-app/internal/auth"
	authStore "github.com/johnnycuongn/sp-app/internal/auth/store"
	"github.com/johnnycuongn/sp-app/internal/bill"
	billStore "github.com/johnnycuongn/sp-app/internal/bill/store"
	"github.com/johnnycuongn/sp-app/internal/config"
	"github.com/johnnycuongn/sp-app/internal/database"
	spHttp "github.com/johnnycuongn/sp-app/internal/http"
	authHandler "github.com/johnnycuongn/sp-app/internal/http/auth"
	billHandler "github.com/johnnycuongn/sp-app/internal/http/bill"
	outletHandler "github.com/johnnycuongn/sp-app/internal/http/outlet"
	paymentHandler "github.com/johnnycuongn/sp-app/internal/http/payment"
	reportHandler "github.com/johnnycuongn/sp-app/internal/http/report"
	supplierHandler "github.com/johnnycuongn/sp-app/internal/http/supplier"
	"github.com/johnnycuongn/sp-app/internal/importer"
	"github.com/johnnycuongn/sp-app/internal/outlet"
	outletStore "github.com/johnnycuongn/sp-app/internal/outlet/store"
	"github.com/johnnycuongn/sp-app/internal/payment"
	paymentStore "github.com/johnnycuongn/sp-app/internal/payment/store"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/storage"
	"github.com/johnnycuongn/sp-app/internal/supplier"
	supplierStore "github.com/johnnycuongn/sp-app/internal/supplier/store"
)

func main() {
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
	defer db.Close()

	var files storage.FileStore

	if cfg.OSSConfigured() {
		files, err = storage.NewOSS(cfg.OSS.Endpoint, cfg.OSS.AccessKey, cfg.OSS.SecretKey, cfg.OSS.Bucket, cfg.OSS.URLTTL)
		if err != nil {
			slog.Error("failed to open object storage", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("object storage not configured, using in-memory store")

		files = storage.NewMemory()
	}

	var (
		supplierService = supplier.NewService(supplierStore.New(db))
		paymentService  = payment.NewService(paymentStore.New(db))
		outletService   = outlet.NewService(outletStore.New(db))
		billService     = bill.NewService(billStore.New(db), files, paymentService)
		importService   = importer.NewService()
		authService     = auth.NewService(authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	)

	refs := refdata.Sources{
		Suppliers: supplierService,
		Payments:  paymentService,
		Outlets:   outletService,
	}

	var (
		authH     = authHandler.NewHandler(authService)
		supplierH = supplierHandler.NewHandler(supplierService)
		paymentH  = paymentHandler.NewHandler(paymentService)
		outletH   = outletHandler.NewHandler(outletService)
		billH     = billHandler.NewHandler(billService, importService, refs)
		reportH   = reportHandler.NewHandler(billService, refs)
	)

	router := spHttp.New(authService, authH, supplierH, paymentH, outletH, billH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
