package refdata_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnnycuongn/sp-app/internal/outlet"
	"github.com/johnnycuongn/sp-app/internal/payment"
	"github.com/johnnycuongn/sp-app/internal/refdata"
	"github.com/johnnycuongn/sp-app/internal/supplier"
)

type fakeSuppliers struct {
	calls atomic.Int32
	out   []supplier.Supplier
	err   error
}

func (f *fakeSuppliers) GetAll(context.Context) ([]supplier.Supplier, error) {
	f.calls.Add(1)
	return f.out, f.err
}

type fakePayments struct {
	calls atomic.Int32
	out   []payment.Method
	err   error
}

func (f *fakePayments) GetAll(context.Context) ([]payment.Method, error) {
	f.calls.Add(1)
	return f.out, f.err
}

type fakeOutlets struct {
	calls atomic.Int32
	out   []outlet.Outlet
	err   error
}

func (f *fakeOutlets) GetAll(context.Context) ([]outlet.Outlet, error) {
	f.calls.Add(1)
	return f.out, f.err
}

func sources(s *fakeSuppliers, p *fakePayments, o *fakeOutlets) refdata.Sources {
	return refdata.Sources{Suppliers: s, Payments: p, Outlets: o}
}

func TestLoad(t *testing.T) {
	sup := supplier.Supplier{ID: uuid.New(), Name: "Acme Beverages"}
	visa := payment.Method{ID: uuid.New(), Name: "Visa"}
	shop := outlet.Outlet{ID: uuid.New(), Name: "Downtown"}

	s := &fakeSuppliers{out: []supplier.Supplier{sup}}
	p := &fakePayments{out: []payment.Method{visa}}
	o := &fakeOutlets{out: []outlet.Outlet{shop}}

	cache, err := refdata.Load(context.Background(), sources(s, p, o))
	require.NoError(t, err)

	name, ok := cache.SupplierName(sup.ID)
	require.True(t, ok)
	assert.Equal(t, "Acme Beverages", name)

	name, ok = cache.PaymentName(visa.ID)
	require.True(t, ok)
	assert.Equal(t, "Visa", name)

	name, ok = cache.OutletName(shop.ID)
	require.True(t, ok)
	assert.Equal(t, "Downtown", name)

	_, ok = cache.SupplierName(uuid.New())
	assert.False(t, ok)
}

func TestLoad_AnyFetchFailureFailsTheLoad(t *testing.T) {
	s := &fakeSuppliers{out: []supplier.Supplier{{ID: uuid.New(), Name: "Acme"}}}
	p := &fakePayments{err: errors.New("network down")}
	o := &fakeOutlets{}

	_, err := refdata.Load(context.Background(), sources(s, p, o))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}

func TestEnsureLoaded_FetchesOnlyEmptyCollections(t *testing.T) {
	ctx := context.Background()

	s := &fakeSuppliers{out: []supplier.Supplier{{ID: uuid.New(), Name: "Acme"}}}
	p := &fakePayments{out: []payment.Method{{ID: uuid.New(), Name: "Visa"}}}
	o := &fakeOutlets{out: []outlet.Outlet{{ID: uuid.New(), Name: "Downtown"}}}

	cache := &refdata.Cache{}
	require.NoError(t, cache.EnsureLoaded(ctx, sources(s, p, o)))

	// Everything is primed; a second call fetches nothing.
	require.NoError(t, cache.EnsureLoaded(ctx, sources(s, p, o)))
	assert.Equal(t, int32(1), s.calls.Load())
	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, int32(1), o.calls.Load())

	// Only the discarded collection is refetched.
	cache.Outlets = nil
	require.NoError(t, cache.EnsureLoaded(ctx, sources(s, p, o)))
	assert.Equal(t, int32(1), s.calls.Load())
	assert.Equal(t, int32(2), o.calls.Load())
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	s := &fakeSuppliers{out: []supplier.Supplier{{ID: uuid.New(), Name: "Acme"}}}
	p := &fakePayments{}
	o := &fakeOutlets{}

	cache, err := refdata.Load(ctx, sources(s, p, o))
	require.NoError(t, err)
	require.NotEmpty(t, cache.Suppliers)

	cache.Reset()
	assert.Empty(t, cache.Suppliers)

	require.NoError(t, cache.EnsureLoaded(ctx, sources(s, p, o)))
	assert.Equal(t, int32(2), s.calls.Load())
}
