package outlet

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("outlet not found")
	ErrMissingName = errors.New("outlet name is required")
)

// Outlet is a business location that bills are attributed to. New bills for
// the outlet default to its payment method when one is set.
type Outlet struct {
	ID               uuid.UUID
	Name             string
	Description      string
	DefaultPaymentID uuid.UUID // uuid.Nil when the outlet has no default
}

func (o Outlet) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrMissingName
	}

	return nil
}
