package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/payment"
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

// scanMethod reads a payment method row. Limit columns are nullable: a method
// with no limits at all yields a nil Limits.
func scanMethod(s scanner) (*payment.Method, error) {
	var m payment.Method

	var monthly, quarterly, yearly sql.NullFloat64

	if err := s.Scan(&m.ID, &m.Name, &m.Description, &monthly, &quarterly, &yearly); err != nil {
		return nil, err
	}

	if monthly.Valid || quarterly.Valid || yearly.Valid {
		m.Limits = &payment.Limits{
			Monthly:   monthly.Float64,
			Quarterly: quarterly.Float64,
			Yearly:    yearly.Float64,
		}
	}

	return &m, nil
}

const selectMethodColumns = `id, name, description, limit_monthly, limit_quarterly, limit_yearly`

func (s *Store) GetAll(ctx context.Context) ([]payment.Method, error) {
	query := `SELECT ` + selectMethodColumns + ` FROM payment_methods ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	var methods []payment.Method

	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}

		methods = append(methods, *m)
	}

	return methods, rows.Err()
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*payment.Method, error) {
	query := `SELECT ` + selectMethodColumns + ` FROM payment_methods WHERE id = $1`

	m, err := scanMethod(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment method %s: %w", id, err)
	}

	return m, nil
}

func (s *Store) Create(ctx context.Context, m *payment.Method) error {
	query := `
		INSERT INTO payment_methods (name, description, limit_monthly, limit_quarterly, limit_yearly)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	monthly, quarterly, yearly := limitColumns(m.Limits)

	err := s.db.QueryRowContext(ctx, query, m.Name, m.Description, monthly, quarterly, yearly).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("creating payment method: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, m *payment.Method) error {
	query := `
		UPDATE payment_methods
		SET name = $1, description = $2, limit_monthly = $3, limit_quarterly = $4, limit_yearly = $5
		WHERE id = $6
	`

	monthly, quarterly, yearly := limitColumns(m.Limits)

	res, err := s.db.ExecContext(ctx, query, m.Name, m.Description, monthly, quarterly, yearly, m.ID)
	if err != nil {
		return fmt.Errorf("updating payment method %s: %w", m.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payment.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM payment_methods WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting payment method %s: %w", id, err)
	}

	return nil
}

func limitColumns(l *payment.Limits) (monthly, quarterly, yearly sql.NullFloat64) {
	if l == nil {
		return
	}

	monthly = sql.NullFloat64{Float64: l.Monthly, Valid: true}
	quarterly = sql.NullFloat64{Float64: l.Quarterly, Valid: true}
	yearly = sql.NullFloat64{Float64: l.Yearly, Valid: true}

	return
}
