package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/johnnycuongn/sp-app/internal/outlet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOutlet(s scanner) (*outlet.Outlet, error) {
	var o outlet.Outlet

	var defaultPayment *uuid.UUID

	if err := s.Scan(&o.ID, &o.Name, &o.Description, &defaultPayment); err != nil {
		return nil, err
	}

	if defaultPayment != nil {
		o.DefaultPaymentID = *defaultPayment
	}

	return &o, nil
}

func (s *Store) GetAll(ctx context.Context) ([]outlet.Outlet, error) {
	query := `
		SELECT id, name, description, default_payment_id
		FROM outlets
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing outlets: %w", err)
	}
	defer rows.Close()

	var outlets []outlet.Outlet

	for rows.Next() {
		o, err := scanOutlet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning outlet: %w", err)
		}

		outlets = append(outlets, *o)
	}

	return outlets, rows.Err()
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*outlet.Outlet, error) {
	query := `
		SELECT id, name, description, default_payment_id
		FROM outlets
		WHERE id = $1
	`

	o, err := scanOutlet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, outlet.ErrNotFound
		}

		return nil, fmt.Errorf("getting outlet %s: %w", id, err)
	}

	return o, nil
}

func (s *Store) Create(ctx context.Context, o *outlet.Outlet) error {
	query := `
		INSERT INTO outlets (name, description, default_payment_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, o.Name, o.Description, nullableID(o.DefaultPaymentID)).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("creating outlet: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, o *outlet.Outlet) error {
	query := `
		UPDATE outlets
		SET name = $1, description = $2, default_payment_id = $3
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, o.Name, o.Description, nullableID(o.DefaultPaymentID), o.ID)
	if err != nil {
		return fmt.Errorf("updating outlet %s: %w", o.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return outlet.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM outlets WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting outlet %s: %w", id, err)
	}

	return nil
}

func nullableID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}

	return &id
}
