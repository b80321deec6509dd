package importer

import (
	"fmt"
	"io"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/importer/ledger"
	"github.com/johnnycuongn/sp-app/internal/refdata"
)

type Service struct {
	ledgerImporter Importer
}

func NewService() *Service {
	return &Service{
		ledgerImporter: ledger.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader, refs *refdata.Cache) ([]bill.CreateParams, error) {
	var imp Importer

	switch format {
	case FormatLedger:
		imp = s.ledgerImporter
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return imp.Parse(r, refs)
}
