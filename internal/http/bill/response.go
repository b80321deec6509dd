package bill

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/bill"
)

type billResponse struct {
	ID              uuid.UUID   `json:"id"`
	SupplierID      uuid.UUID   `json:"supplier_id"`
	UserID          uuid.UUID   `json:"user_id"`
	OutletID        uuid.UUID   `json:"outlet_id"`
	PaymentDate     time.Time   `json:"payment_date"`
	TotalPayment    float64     `json:"total_payment"`
	PaymentStatus   bill.Status `json:"payment_status"`
	PaymentMethodID uuid.UUID   `json:"payment_method_id"`
	FilesRef        []string    `json:"files_ref"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type billViewResponse struct {
	billResponse
	SupplierName string `json:"supplier_name"`
	PaymentName  string `json:"payment_name,omitempty"`
	OutletName   string `json:"outlet_name,omitempty"`
}

func toResponse(b *bill.Bill) billResponse {
	return billResponse{
		ID:              b.ID,
		SupplierID:      b.SupplierID,
		UserID:          b.UserID,
		OutletID:        b.OutletID,
		PaymentDate:     b.PaymentDate,
		TotalPayment:    b.TotalPayment,
		PaymentStatus:   b.PaymentStatus,
		PaymentMethodID: b.PaymentMethodID,
		FilesRef:        b.FilesRef,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toViewResponse(vm bill.ViewModel) billViewResponse {
	return billViewResponse{
		billResponse: toResponse(&vm.Bill),
		SupplierName: vm.SupplierName,
		PaymentName:  vm.PaymentName,
		OutletName:   vm.OutletName,
	}
}

func toViewResponseList(vms []bill.ViewModel) []billViewResponse {
	resp := make([]billViewResponse, len(vms))
	for i, vm := range vms {
		resp[i] = toViewResponse(vm)
	}

	return resp
}
