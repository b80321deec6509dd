package bill_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/outlet"
	"github.com/johnnycuongn/sp-app/internal/payment"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/supplier"
)

func TestToViewModel(t *testing.T) {
	sup := supplier.Supplier{ID: uuid.New(), Name: "Acme Beverages"}
	visa := payment.Method{ID: uuid.New(), Name: "Visa"}
	shop := outlet.Outlet{ID: uuid.New(), Name: "Downtown"}

	refs := &refdata.Cache{
		Suppliers: []supplier.Supplier{sup},
		Payments:  []payment.Method{visa},
		Outlets:   []outlet.Outlet{shop},
	}

	t.Run("AllResolved", func(t *testing.T) {
		vm := bill.ToViewModel(bill.Bill{
			SupplierID:      sup.ID,
			PaymentMethodID: visa.ID,
			OutletID:        shop.ID,
		}, refs)

		assert.Equal(t, "Acme Beverages", vm.SupplierName)
		assert.Equal(t, "Visa", vm.PaymentName)
		assert.Equal(t, "Downtown", vm.OutletName)
	})

	t.Run("StaleReferences", func(t *testing.T) {
		vm := bill.ToViewModel(bill.Bill{
			SupplierID:      uuid.New(),
			PaymentMethodID: uuid.New(),
			OutletID:        uuid.New(),
		}, refs)

		assert.Equal(t, bill.UnknownSupplier, vm.SupplierName)
		assert.Equal(t, bill.UnknownPayment, vm.PaymentName)
		assert.Equal(t, bill.UnknownOutlet, vm.OutletName)
	})

	t.Run("EmptyOptionalReferences", func(t *testing.T) {
		vm := bill.ToViewModel(bill.Bill{SupplierID: sup.ID}, refs)

		assert.Equal(t, "Acme Beverages", vm.SupplierName)
		assert.Empty(t, vm.PaymentName)
		assert.Empty(t, vm.OutletName)
	})
}

func TestToViewModels(t *testing.T) {
	refs := &refdata.Cache{}

	vms := bill.ToViewModels([]bill.Bill{{ID: uuid.New()}, {ID: uuid.New()}}, refs)
	require.Len(t, vms, 2)
	assert.Equal(t, bill.UnknownSupplier, vms[0].SupplierName)
	assert.Equal(t, bill.UnknownSupplier, vms[1].SupplierName)
}
