package importer

import (
	"io"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/refdata"
)

type Format string

const (
	FormatLedger Format = "ledger"
)

// Importer turns an uploaded file into bill params, resolving supplier,
// outlet and payment names against the reference cache.
type Importer interface {
	Parse(r io.Reader, refs *refdata.Cache) ([]bill.CreateParams, error)
}
