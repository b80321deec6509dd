package bill

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Status represents whether a bill has been settled.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusNotPaid Status = "not paid"
)

// FirstYearDefault is assumed to be the earliest reporting year when no bill
// exists yet to derive it from.
const FirstYearDefault = 2023

var (
	ErrNotFound        = errors.New("bill not found")
	ErrMissingSupplier = errors.New("bill requires a supplier")
	ErrMissingOutlet   = errors.New("bill requires an outlet")
	ErrMissingPayment  = errors.New("bill requires a payment method")
	ErrInvalidTotal    = errors.New("total payment must be a finite non-zero number")
	ErrInvalidStatus   = errors.New("payment status must be \"paid\" or \"not paid\"")
	ErrUnknownPayment  = errors.New("payment method does not exist")
)

// Bill is a record of money owed or paid to a supplier.
type Bill struct {
	ID              uuid.UUID
	SupplierID      uuid.UUID
	UserID          uuid.UUID
	OutletID        uuid.UUID
	PaymentDate     time.Time
	TotalPayment    float64
	PaymentStatus   Status
	PaymentMethodID uuid.UUID
	FilesRef        []string // object-store paths of attached receipts
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateParams struct {
	SupplierID      uuid.UUID
	OutletID        uuid.UUID
	PaymentMethodID uuid.UUID
	PaymentDate     time.Time
	TotalPayment    float64
	PaymentStatus   Status
}

// Validate fails fast, before any store call is attempted.
func (p CreateParams) Validate() error {
	if p.SupplierID == uuid.Nil {
		return ErrMissingSupplier
	}

	if p.OutletID == uuid.Nil {
		return ErrMissingOutlet
	}

	if p.PaymentMethodID == uuid.Nil {
		return ErrMissingPayment
	}

	if p.TotalPayment == 0 || math.IsNaN(p.TotalPayment) || math.IsInf(p.TotalPayment, 0) {
		return ErrInvalidTotal
	}

	if p.PaymentStatus != StatusPaid && p.PaymentStatus != StatusNotPaid {
		return ErrInvalidStatus
	}

	return nil
}
