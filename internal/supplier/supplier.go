package supplier

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("supplier not found")
	ErrMissingName = errors.New("supplier name is required")
)

// Supplier is a party that bills are owed to.
type Supplier struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
}

func (s Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}

	return nil
}
