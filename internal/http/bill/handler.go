package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/auth"
	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/importer"
	"github.com/johnnycuongn/sp-app/internal/refdata"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	svc       *bill.Service
	importSvc *importer.Service
	refs      refdata.Sources
}

func NewHandler(svc *bill.Service, importSvc *importer.Service, refs refdata.Sources) *Handler {
	return &Handler{svc: svc, importSvc: importSvc, refs: refs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/files", h.files)
}

func (h *Handler) ImportRoutes(r chi.Router) {
	r.Post("/", h.importLedger)
}

// parseBillForm reads the multipart fields and attachments of a create or
// update request. Field-level validation is left to the service.
func parseBillForm(r *http.Request) (bill.CreateParams, []bill.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return bill.CreateParams{}, nil, err
	}

	var params bill.CreateParams

	if s := r.FormValue("supplier_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return bill.CreateParams{}, nil, errors.New("invalid supplier_id")
		}

		params.SupplierID = id
	}

	if s := r.FormValue("outlet_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return bill.CreateParams{}, nil, errors.New("invalid outlet_id")
		}

		params.OutletID = id
	}

	if s := r.FormValue("payment_method_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return bill.CreateParams{}, nil, errors.New("invalid payment_method_id")
		}

		params.PaymentMethodID = id
	}

	date, err := time.Parse(time.DateOnly, r.FormValue("payment_date"))
	if err != nil {
		return bill.CreateParams{}, nil, errors.New("invalid payment_date, want YYYY-MM-DD")
	}

	params.PaymentDate = date.UTC()

	total, err := strconv.ParseFloat(r.FormValue("total_payment"), 64)
	if err != nil {
		return bill.CreateParams{}, nil, errors.New("invalid total_payment")
	}

	params.TotalPayment = total
	params.PaymentStatus = bill.Status(r.FormValue("payment_status"))

	var files []bill.File

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				return bill.CreateParams{}, nil, err
			}

			files = append(files, bill.File{Name: fh.Filename, Content: f})
		}
	}

	return params, files, nil
}

func isValidationErr(err error) bool {
	return errors.Is(err, bill.ErrMissingSupplier) ||
		errors.Is(err, bill.ErrMissingOutlet) ||
		errors.Is(err, bill.ErrMissingPayment) ||
		errors.Is(err, bill.ErrInvalidTotal) ||
		errors.Is(err, bill.ErrInvalidStatus) ||
		errors.Is(err, bill.ErrUnknownPayment)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	params, files, err := parseBillForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), identity.UserID, params, files)
	if err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns view models so callers never have to join names themselves.
// ?year= scopes to a calendar year, ?supplier_id= to one supplier, neither
// returns everything.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		bills []bill.Bill
		err   error
	)

	switch {
	case r.URL.Query().Get("year") != "":
		year, convErr := strconv.Atoi(r.URL.Query().Get("year"))
		if convErr != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		bills, err = h.svc.ForYear(r.Context(), year)

	case r.URL.Query().Get("supplier_id") != "":
		supplierID, parseErr := uuid.Parse(r.URL.Query().Get("supplier_id"))
		if parseErr != nil {
			http.Error(w, "invalid supplier_id", http.StatusBadRequest)
			return
		}

		bills, err = h.svc.GetAllForSupplier(r.Context(), supplierID)

	default:
		bills, err = h.svc.GetAll(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	refs, err := refdata.Load(r.Context(), h.refs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toViewResponseList(bill.ToViewModels(bills, refs))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	params, files, err := parseBillForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Update(r.Context(), id, params, files)
	if err != nil {
		switch {
		case errors.Is(err, bill.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case isValidationErr(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type filesResponse struct {
	URLs []string `json:"urls"`
}

func (h *Handler) files(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	urls, err := h.svc.DownloadURLs(r.Context(), b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(filesResponse{URLs: urls}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importLedger(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	refs, err := refdata.Load(r.Context(), h.refs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	params, err := h.importSvc.Import(importer.FormatLedger, file, refs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, p := range params {
		if _, err := h.svc.Create(r.Context(), identity.UserID, p, nil); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: len(params)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
