// Package refdata holds a page-session snapshot of the reference collections
// (suppliers, payment methods, outlets) so foreign keys on bills can be
// resolved without repeated round-trips.
package refdata

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/johnnycuongn/sp-app/internal/outlet"
	"github.com/johnnycuongn/sp-app/internal/payment"
	"github.com/johnnycuongn/sp-app/internal/supplier"
)

type SupplierSource interface {
	GetAll(ctx context.Context) ([]supplier.Supplier, error)
}

type PaymentSource interface {
	GetAll(ctx context.Context) ([]payment.Method, error)
}

type OutletSource interface {
	GetAll(ctx context.Context) ([]outlet.Outlet, error)
}

// Sources bundles the collection fetchers the cache loads from.
type Sources struct {
	Suppliers SupplierSource
	Payments  PaymentSource
	Outlets   OutletSource
}

// Cache is an immutable-by-convention snapshot of the reference collections.
// There is no invalidation: once a collection is non-empty it is treated as
// fresh until the owner discards the cache. Concurrent reloads race and the
// last write wins, which is acceptable for this read-mostly, per-session use.
type Cache struct {
	Suppliers []supplier.Supplier
	Payments  []payment.Method
	Outlets   []outlet.Outlet
}

// Load fetches all three collections concurrently and returns a fresh cache.
// If any fetch fails the whole load fails, even if the others succeeded.
func Load(ctx context.Context, src Sources) (*Cache, error) {
	c := &Cache{}
	if err := c.reload(ctx, src, true, true, true); err != nil {
		return nil, err
	}

	return c, nil
}

// EnsureLoaded fetches only the collections that are currently empty.
func (c *Cache) EnsureLoaded(ctx context.Context, src Sources) error {
	return c.reload(ctx, src, len(c.Suppliers) == 0, len(c.Payments) == 0, len(c.Outlets) == 0)
}

// Reset discards the snapshot so the next EnsureLoaded refetches everything.
func (c *Cache) Reset() {
	c.Suppliers = nil
	c.Payments = nil
	c.Outlets = nil
}

func (c *Cache) reload(ctx context.Context, src Sources, suppliers, payments, outlets bool) error {
	g, ctx := errgroup.WithContext(ctx)

	if suppliers {
		g.Go(func() error {
			all, err := src.Suppliers.GetAll(ctx)
			if err != nil {
				return err
			}

			c.Suppliers = all

			return nil
		})
	}

	if payments {
		g.Go(func() error {
			all, err := src.Payments.GetAll(ctx)
			if err != nil {
				return err
			}

			c.Payments = all

			return nil
		})
	}

	if outlets {
		g.Go(func() error {
			all, err := src.Outlets.GetAll(ctx)
			if err != nil {
				return err
			}

			c.Outlets = all

			return nil
		})
	}

	return g.Wait()
}

// SupplierName resolves a supplier id against the snapshot.
func (c *Cache) SupplierName(id uuid.UUID) (string, bool) {
	for _, s := range c.Suppliers {
		if s.ID == id {
			return s.Name, true
		}
	}

	return "", false
}

// PaymentName resolves a payment method id against the snapshot.
func (c *Cache) PaymentName(id uuid.UUID) (string, bool) {
	for _, m := range c.Payments {
		if m.ID == id {
			return m.Name, true
		}
	}

	return "", false
}

// OutletName resolves an outlet id against the snapshot.
func (c *Cache) OutletName(id uuid.UUID) (string, bool) {
	for _, o := range c.Outlets {
		if o.ID == id {
			return o.Name, true
		}
	}

	return "", false
}
