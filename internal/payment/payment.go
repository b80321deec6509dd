package payment

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("payment method not found")
	ErrMissingName = errors.New("payment method name is required")
)

// Limits caps the total spend allowed through a payment method per period.
// A zero value means no cap for that period.
type Limits struct {
	Monthly   float64
	Quarterly float64
	Yearly    float64
}

// Method is a channel bills are paid through, e.g. a bank account or cash.
type Method struct {
	ID          uuid.UUID
	Name        string
	Description string
	Limits      *Limits
}

func (m Method) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrMissingName
	}

	return nil
}
