package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/report"
)

type Handler struct {
	bills *bill.Service
	refs  refdata.Sources
}

func NewHandler(bills *bill.Service, refs refdata.Sources) *Handler {
	return &Handler{bills: bills, refs: refs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.report)
}

type windowDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type billDTO struct {
	ID           string    `json:"id"`
	SupplierName string    `json:"supplier_name"`
	PaymentName  string    `json:"payment_name,omitempty"`
	OutletName   string    `json:"outlet_name,omitempty"`
	PaymentDate  time.Time `json:"payment_date"`
	TotalPayment float64   `json:"total_payment"`
	Status       string    `json:"payment_status"`
}

type reportResponse struct {
	Year   int                `json:"year"`
	Range  report.Range       `json:"range"`
	Index  int                `json:"index"`
	Window windowDTO          `json:"window"`
	Totals map[string]float64 `json:"totals"`
	Bills  []billDTO          `json:"bills"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	rng := report.Range(r.URL.Query().Get("range"))
	if rng == "" {
		rng = report.RangeYear
	}

	index := 0

	if s := r.URL.Query().Get("index"); s != "" {
		index, err = strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid index", http.StatusBadRequest)
			return
		}
	}

	window, err := report.WindowFor(year, rng, index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bills, err := h.bills.ForYear(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	refs, err := refdata.Load(r.Context(), h.refs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	selected := report.Select(bill.ToViewModels(bills, refs), window)

	resp := reportResponse{
		Year:   year,
		Range:  rng,
		Index:  index,
		Window: windowDTO{Start: window.Start, End: window.End},
		Totals: report.Aggregate(selected, refs.Payments),
		Bills:  make([]billDTO, 0, len(selected)),
	}

	for _, vm := range selected {
		resp.Bills = append(resp.Bills, billDTO{
			ID:           vm.ID.String(),
			SupplierName: vm.SupplierName,
			PaymentName:  vm.PaymentName,
			OutletName:   vm.OutletName,
			PaymentDate:  vm.PaymentDate,
			TotalPayment: vm.TotalPayment,
			Status:       string(vm.PaymentStatus),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
