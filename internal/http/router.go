package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authhttp "github.com/johnnycuongn/sp-app/internal/http/auth"
	billhttp "github.com/johnnycuongn/sp-app/internal/http/bill"
	outlethttp "github.com/johnnycuongn/sp-app/internal/http/outlet"
	paymenthttp "github.com/johnnycuongn/sp-app/internal/http/payment"
	reporthttp "github.com/johnnycuongn/sp-app/internal/http/report"
	supplierhttp "github.com/johnnycuongn/sp-app/internal/http/supplier"
)

func New(
	verifier TokenVerifier,
	authV1 *authhttp.Handler,
	suppliersV1 *supplierhttp.Handler,
	paymentsV1 *paymenthttp.Handler,
	outletsV1 *outlethttp.Handler,
	billsV1 *billhttp.Handler,
	reportsV1 *reporthttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin(verifier))

			r.Route("/suppliers", func(r chi.Router) {
				suppliersV1.Routes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				paymentsV1.Routes(r)
			})

			r.Route("/outlets", func(r chi.Router) {
				outletsV1.Routes(r)
			})

			r.Route("/bills", func(r chi.Router) {
				billsV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)

			r.Route("/import", billsV1.ImportRoutes)
		})
	})

	return router
}
