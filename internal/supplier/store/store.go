package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/supplier"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetAll(ctx context.Context) ([]supplier.Supplier, error) {
	query := `
		SELECT id, name, description, category
		FROM suppliers
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []supplier.Supplier

	for rows.Next() {
		var sup supplier.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Description, &sup.Category); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}

		suppliers = append(suppliers, sup)
	}

	return suppliers, rows.Err()
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	query := `
		SELECT id, name, description, category
		FROM suppliers
		WHERE id = $1
	`

	var sup supplier.Supplier

	err := s.db.QueryRowContext(ctx, query, id).Scan(&sup.ID, &sup.Name, &sup.Description, &sup.Category)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, supplier.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplier %s: %w", id, err)
	}

	return &sup, nil
}

func (s *Store) Create(ctx context.Context, sup *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (name, description, category)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, sup.Name, sup.Description, sup.Category).Scan(&sup.ID)
	if err != nil {
		return fmt.Errorf("creating supplier: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, sup *supplier.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, description = $2, category = $3
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, sup.Name, sup.Description, sup.Category, sup.ID)
	if err != nil {
		return fmt.Errorf("updating supplier %s: %w", sup.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return supplier.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting supplier %s: %w", id, err)
	}

	return nil
}
