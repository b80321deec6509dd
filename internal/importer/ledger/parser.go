package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/bill"
	enc "github.com/johnnycuongn/sp-app/internal/encoding"
	"github.com/johnnycuongn/sp-app/internal/refdata"
)

// expected header columns, in order
var header = []string{"date", "supplier", "outlet", "total", "status", "payment"}

const (
	colDate = iota
	colSupplier
	colOutlet
	colTotal
	colStatus
	colPayment
)

// Parser reads semicolon-separated ledger exports and produces bill params.
// Supplier, outlet and payment cells carry names, not ids, so every row is
// resolved against the reference cache; a name the cache does not know fails
// the whole import with the offending row number.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, refs *refdata.Cache) ([]bill.CreateParams, error) {
	utf8r, err := enc.UTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 || !matchesHeader(rows[0]) {
		return nil, fmt.Errorf("unrecognised ledger file: expected header %q", strings.Join(header, ";"))
	}

	return parseRows(rows[1:], refs)
}

func matchesHeader(row []string) bool {
	if len(row) < len(header) {
		return false
	}

	for i, want := range header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), want) {
			return false
		}
	}

	return true
}

func parseRows(rows [][]string, refs *refdata.Cache) ([]bill.CreateParams, error) {
	var out []bill.CreateParams

	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header

		if blankRow(row) {
			continue
		}

		params, err := parseRow(row, refs)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, params)
	}

	return out, nil
}

func parseRow(row []string, refs *refdata.Cache) (bill.CreateParams, error) {
	date, err := time.Parse("2006-01-02", cellValue(row, colDate))
	if err != nil {
		return bill.CreateParams{}, fmt.Errorf("invalid date %q", cellValue(row, colDate))
	}

	supplierID, ok := supplierByName(refs, cellValue(row, colSupplier))
	if !ok {
		return bill.CreateParams{}, fmt.Errorf("unknown supplier %q", cellValue(row, colSupplier))
	}

	outletID, ok := outletByName(refs, cellValue(row, colOutlet))
	if !ok {
		return bill.CreateParams{}, fmt.Errorf("unknown outlet %q", cellValue(row, colOutlet))
	}

	paymentID, ok := paymentByName(refs, cellValue(row, colPayment))
	if !ok {
		return bill.CreateParams{}, fmt.Errorf("unknown payment method %q", cellValue(row, colPayment))
	}

	total, err := parseTotal(cellValue(row, colTotal))
	if err != nil {
		return bill.CreateParams{}, err
	}

	status := bill.Status(strings.ToLower(cellValue(row, colStatus)))
	if status != bill.StatusPaid && status != bill.StatusNotPaid {
		return bill.CreateParams{}, fmt.Errorf("invalid status %q", cellValue(row, colStatus))
	}

	return bill.CreateParams{
		SupplierID:      supplierID,
		OutletID:        outletID,
		PaymentMethodID: paymentID,
		PaymentDate:     date.UTC(),
		TotalPayment:    total,
		PaymentStatus:   status,
	}, nil
}

// parseTotal accepts both "12.50" and the European "12,50".
func parseTotal(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")

	total, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid total %q", s)
	}

	return total, nil
}

func supplierByName(refs *refdata.Cache, name string) (uuid.UUID, bool) {
	for _, s := range refs.Suppliers {
		if strings.EqualFold(s.Name, name) {
			return s.ID, true
		}
	}

	return uuid.Nil, false
}

func outletByName(refs *refdata.Cache, name string) (uuid.UUID, bool) {
	for _, o := range refs.Outlets {
		if strings.EqualFold(o.Name, name) {
			return o.ID, true
		}
	}

	return uuid.Nil, false
}

func paymentByName(refs *refdata.Cache, name string) (uuid.UUID, bool) {
	for _, m := range refs.Payments {
		if strings.EqualFold(m.Name, name) {
			return m.ID, true
		}
	}

	return uuid.Nil, false
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
