package bill

import (
	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/refdata"
)

// Sentinel names substituted when a referenced id has no cache entry.
// Staleness is tolerated and surfaced this way, never as an error.
const (
	UnknownSupplier = "Unknown supplier"
	UnknownPayment  = "Unknown payment"
	UnknownOutlet   = "Unknown outlet"
)

// ViewModel is a Bill with its references resolved to display names. It is
// derived, never persisted, and must be rebuilt before every render and
// before aggregation, which keys on resolved payment-method identity.
type ViewModel struct {
	Bill
	SupplierName string
	PaymentName  string
	OutletName   string
}

// ToViewModel resolves a bill against the reference snapshot. Pure function.
func ToViewModel(b Bill, refs *refdata.Cache) ViewModel {
	vm := ViewModel{Bill: b, SupplierName: UnknownSupplier}

	if name, ok := refs.SupplierName(b.SupplierID); ok {
		vm.SupplierName = name
	}

	if b.PaymentMethodID != uuid.Nil {
		vm.PaymentName = UnknownPayment
		if name, ok := refs.PaymentName(b.PaymentMethodID); ok {
			vm.PaymentName = name
		}
	}

	if b.OutletID != uuid.Nil {
		vm.OutletName = UnknownOutlet
		if name, ok := refs.OutletName(b.OutletID); ok {
			vm.OutletName = name
		}
	}

	return vm
}

func ToViewModels(bills []Bill, refs *refdata.Cache) []ViewModel {
	vms := make([]ViewModel, len(bills))
	for i, b := range bills {
		vms[i] = ToViewModel(b, refs)
	}

	return vms
}
