package ledger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/importer/ledger"
	"github.com/johnnycuongn/sp-app/internal/outlet"
	"github.com/johnnycuongn/sp-app/internal/payment"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/supplier"
)

var (
	supplierID = uuid.New()
	outletID   = uuid.New()
	visaID     = uuid.New()
)

func testRefs() *refdata.Cache {
	return &refdata.Cache{
		Suppliers: []supplier.Supplier{{ID: supplierID, Name: "Acme Beverages"}},
		Outlets:   []outlet.Outlet{{ID: outletID, Name: "Downtown"}},
		Payments:  []payment.Method{{ID: visaID, Name: "Visa"}},
	}
}

func TestParser_Parse(t *testing.T) {
	csv := `date;supplier;outlet;total;status;payment
2024-01-05;Acme Beverages;Downtown;120.50;paid;Visa
2024-02-10;acme beverages;downtown;89,90;Not Paid;visa

`

	p := ledger.NewParser()
	bills, err := p.Parse(strings.NewReader(csv), testRefs())
	require.NoError(t, err)
	require.Len(t, bills, 2)

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), bills[0].PaymentDate)
	assert.Equal(t, supplierID, bills[0].SupplierID)
	assert.Equal(t, outletID, bills[0].OutletID)
	assert.Equal(t, visaID, bills[0].PaymentMethodID)
	assert.Equal(t, 120.50, bills[0].TotalPayment)
	assert.Equal(t, bill.StatusPaid, bills[0].PaymentStatus)

	// Names resolve case-insensitively and totals accept a decimal comma.
	assert.Equal(t, supplierID, bills[1].SupplierID)
	assert.Equal(t, 89.90, bills[1].TotalPayment)
	assert.Equal(t, bill.StatusNotPaid, bills[1].PaymentStatus)
}

func TestParser_UnknownSupplierFailsWithRowNumber(t *testing.T) {
	csv := `date;supplier;outlet;total;status;payment
2024-01-05;Acme Beverages;Downtown;120.50;paid;Visa
2024-01-06;Nowhere Co;Downtown;10.00;paid;Visa
`

	p := ledger.NewParser()
	_, err := p.Parse(strings.NewReader(csv), testRefs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "Nowhere Co")
}

func TestParser_MissingHeader(t *testing.T) {
	csv := `2024-01-05;Acme Beverages;Downtown;120.50;paid;Visa
`

	p := ledger.NewParser()
	_, err := p.Parse(strings.NewReader(csv), testRefs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognised ledger file")
}

func TestParser_InvalidStatus(t *testing.T) {
	csv := `date;supplier;outlet;total;status;payment
2024-01-05;Acme Beverages;Downtown;120.50;pending;Visa
`

	p := ledger.NewParser()
	_, err := p.Parse(strings.NewReader(csv), testRefs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")
}
