package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/bill"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBillColumns = `
	id, supplier_id, user_id, outlet_id, payment_date, total_payment,
	payment_status, payment_method_id, files_ref, created_at, updated_at
`

// scanBill reads a bill row. files_ref is stored as a JSON array of paths.
func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	var statusStr string

	var filesRef []byte

	if err := s.Scan(
		&b.ID, &b.SupplierID, &b.UserID, &b.OutletID, &b.PaymentDate, &b.TotalPayment,
		&statusStr, &b.PaymentMethodID, &filesRef, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.PaymentStatus = bill.Status(statusStr)

	b.FilesRef = []string{}
	if len(filesRef) > 0 {
		if err := json.Unmarshal(filesRef, &b.FilesRef); err != nil {
			return nil, fmt.Errorf("decoding files_ref: %w", err)
		}
	}

	return &b, nil
}

func (s *Store) Create(ctx context.Context, b *bill.Bill) error {
	query := `
		INSERT INTO bills (id, supplier_id, user_id, outlet_id, payment_date, total_payment,
			payment_status, payment_method_id, files_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	filesRef, err := json.Marshal(b.FilesRef)
	if err != nil {
		return fmt.Errorf("encoding files_ref: %w", err)
	}

	err = s.db.QueryRowContext(ctx, query,
		b.ID,
		b.SupplierID,
		b.UserID,
		b.OutletID,
		b.PaymentDate,
		b.TotalPayment,
		b.PaymentStatus,
		b.PaymentMethodID,
		filesRef,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating bill %s: %w", b.ID, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills WHERE id = $1`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill %s: %w", id, err)
	}

	return b, nil
}

func (s *Store) GetAll(ctx context.Context) ([]bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills ORDER BY payment_date DESC`

	return s.queryBills(ctx, query)
}

func (s *Store) ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills
		WHERE supplier_id = $1
		ORDER BY payment_date DESC`

	return s.queryBills(ctx, query, supplierID)
}

// ListByDateRange returns bills whose payment_date falls inside [start, end],
// newest first. Both bounds are inclusive at the store level; report windows
// apply their own stricter predicate on top.
func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills
		WHERE payment_date >= $1 AND payment_date <= $2
		ORDER BY payment_date DESC`

	return s.queryBills(ctx, query, start, end)
}

func (s *Store) queryBills(ctx context.Context, query string, args ...any) ([]bill.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []bill.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, *b)
	}

	return bills, rows.Err()
}

// Update rewrites every mutable column, stamping updated_at and leaving
// created_at untouched.
func (s *Store) Update(ctx context.Context, b *bill.Bill) error {
	query := `
		UPDATE bills
		SET supplier_id = $1, outlet_id = $2, payment_date = $3, total_payment = $4,
			payment_status = $5, payment_method_id = $6, files_ref = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	filesRef, err := json.Marshal(b.FilesRef)
	if err != nil {
		return fmt.Errorf("encoding files_ref: %w", err)
	}

	err = s.db.QueryRowContext(ctx, query,
		b.SupplierID,
		b.OutletID,
		b.PaymentDate,
		b.TotalPayment,
		b.PaymentStatus,
		b.PaymentMethodID,
		filesRef,
		b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return bill.ErrNotFound
		}

		return fmt.Errorf("updating bill %s: %w", b.ID, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bills WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting bill %s: %w", id, err)
	}

	return nil
}

func (s *Store) EarliestPaymentYear(ctx context.Context, notAfter time.Time) (int, error) {
	query := `
		SELECT payment_date
		FROM bills
		WHERE payment_date <= $1
		ORDER BY payment_date ASC
		LIMIT 1
	`

	var earliest time.Time

	err := s.db.QueryRowContext(ctx, query, notAfter).Scan(&earliest)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		return 0, fmt.Errorf("finding earliest bill: %w", err)
	}

	return earliest.Year(), nil
}
