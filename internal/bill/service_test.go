package bill_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/payment"
	"github.com/johnnycuongn/sp-app/internal/storage"
)

func validParams() bill.CreateParams {
	return bill.CreateParams{
		SupplierID:      uuid.New(),
		OutletID:        uuid.New(),
		PaymentMethodID: uuid.New(),
		PaymentDate:     time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		TotalPayment:    120.50,
		PaymentStatus:   bill.StatusPaid,
	}
}

func expectPayment(payments *bill.MockPaymentGetter, id uuid.UUID) {
	payments.EXPECT().
		Get(gomock.Any(), id).
		Return(&payment.Method{ID: id, Name: "Visa"}, nil)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)
		files := storage.NewMemory()

		params := validParams()
		expectPayment(payments, params.PaymentMethodID)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		svc := bill.NewService(repo, files, payments)
		got, err := svc.Create(ctx, userID, params, []bill.File{
			{Name: "receipt.pdf", Content: strings.NewReader("pdf bytes")},
		})
		require.NoError(t, err)

		require.Len(t, got.FilesRef, 1)
		assert.Equal(t, storage.BillPath(got.ID.String(), "receipt.pdf"), got.FilesRef[0])
		assert.Equal(t, userID, got.UserID)
		assert.False(t, got.CreatedAt.IsZero())

		data, ok := files.Object(got.FilesRef[0])
		require.True(t, ok)
		assert.Equal(t, "pdf bytes", string(data))
	})

	t.Run("ValidationFailsBeforeAnyCall", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)

		svc := bill.NewService(repo, storage.NewMemory(), payments)
		_, err := svc.Create(ctx, userID, bill.CreateParams{}, nil)
		assert.ErrorIs(t, err, bill.ErrMissingSupplier)
	})

	t.Run("UnknownPaymentMethod", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)

		params := validParams()
		payments.EXPECT().
			Get(gomock.Any(), params.PaymentMethodID).
			Return(nil, payment.ErrNotFound)

		svc := bill.NewService(repo, storage.NewMemory(), payments)
		_, err := svc.Create(ctx, userID, params, nil)
		assert.ErrorIs(t, err, bill.ErrUnknownPayment)
	})

	t.Run("RecordInsertFailsBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)

		params := validParams()
		expectPayment(payments, params.PaymentMethodID)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		svc := bill.NewService(repo, storage.NewMemory(), payments)
		_, err := svc.Create(ctx, userID, params, []bill.File{
			{Name: "receipt.pdf", Content: strings.NewReader("pdf bytes")},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("ReplacesFilesWholesale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)
		files := storage.NewMemory()

		stale := storage.BillPath(id.String(), "old.pdf")
		require.NoError(t, files.Upload(ctx, stale, strings.NewReader("old")))

		params := validParams()
		expectPayment(payments, params.PaymentMethodID)

		existing := &bill.Bill{ID: id, CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}
		repo.EXPECT().Get(gomock.Any(), id).Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := bill.NewService(repo, files, payments)
		got, err := svc.Update(ctx, id, params, []bill.File{
			{Name: "new.pdf", Content: strings.NewReader("new")},
		})
		require.NoError(t, err)

		// created_at survives, the old attachment does not
		assert.Equal(t, existing.CreatedAt, got.CreatedAt)
		assert.Equal(t, []string{storage.BillPath(id.String(), "new.pdf")}, got.FilesRef)

		_, ok := files.Object(stale)
		assert.False(t, ok)
	})

	t.Run("NoFilesClearsAttachments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)
		files := storage.NewMemory()

		stale := storage.BillPath(id.String(), "old.pdf")
		require.NoError(t, files.Upload(ctx, stale, strings.NewReader("old")))

		params := validParams()
		expectPayment(payments, params.PaymentMethodID)
		repo.EXPECT().Get(gomock.Any(), id).Return(&bill.Bill{ID: id}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := bill.NewService(repo, files, payments)
		got, err := svc.Update(ctx, id, params, nil)
		require.NoError(t, err)

		assert.Empty(t, got.FilesRef)

		_, ok := files.Object(stale)
		assert.False(t, ok)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		payments := bill.NewMockPaymentGetter(ctrl)

		params := validParams()
		expectPayment(payments, params.PaymentMethodID)
		repo.EXPECT().Get(gomock.Any(), id).Return(nil, bill.ErrNotFound)

		svc := bill.NewService(repo, storage.NewMemory(), payments)
		_, err := svc.Update(ctx, id, params, nil)
		assert.ErrorIs(t, err, bill.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("RemovesRecordAndFiles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		files := storage.NewMemory()

		stored := storage.BillPath(id.String(), "receipt.pdf")
		require.NoError(t, files.Upload(ctx, stored, strings.NewReader("x")))

		repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		svc := bill.NewService(repo, files, bill.NewMockPaymentGetter(ctrl))
		require.NoError(t, svc.Delete(ctx, id))

		_, ok := files.Object(stored)
		assert.False(t, ok)
	})

	t.Run("FileCleanupAttemptedDespiteRecordFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		files := storage.NewMemory()

		stored := storage.BillPath(id.String(), "receipt.pdf")
		require.NoError(t, files.Upload(ctx, stored, strings.NewReader("x")))

		repo.EXPECT().Delete(gomock.Any(), id).Return(errors.New("db down"))

		svc := bill.NewService(repo, files, bill.NewMockPaymentGetter(ctrl))
		err := svc.Delete(ctx, id)
		require.Error(t, err)

		_, ok := files.Object(stored)
		assert.False(t, ok)
	})
}

func TestService_ForYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	repo.EXPECT().
		ListByDateRange(
			gomock.Any(),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		).
		Return([]bill.Bill{{ID: uuid.New()}}, nil)

	svc := bill.NewService(repo, storage.NewMemory(), bill.NewMockPaymentGetter(ctrl))
	got, err := svc.ForYear(context.Background(), 2024)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_FirstYear(t *testing.T) {
	ctx := context.Background()

	t.Run("FromEarliestBill", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().EarliestPaymentYear(gomock.Any(), gomock.Any()).Return(2021, nil)

		svc := bill.NewService(repo, storage.NewMemory(), bill.NewMockPaymentGetter(ctrl))
		year, err := svc.FirstYear(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2021, year)
	})

	t.Run("DefaultWhenEmpty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().EarliestPaymentYear(gomock.Any(), gomock.Any()).Return(0, nil)

		svc := bill.NewService(repo, storage.NewMemory(), bill.NewMockPaymentGetter(ctrl))
		year, err := svc.FirstYear(ctx)
		require.NoError(t, err)
		assert.Equal(t, bill.FirstYearDefault, year)
	})
}

func TestService_DownloadURLs(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	files := storage.NewMemory()

	id := uuid.New()
	paths := []string{
		storage.BillPath(id.String(), "a.pdf"),
		storage.BillPath(id.String(), "b.pdf"),
	}
	for _, p := range paths {
		require.NoError(t, files.Upload(ctx, p, strings.NewReader("x")))
	}

	svc := bill.NewService(bill.NewMockRepository(ctrl), files, bill.NewMockPaymentGetter(ctrl))

	urls, err := svc.DownloadURLs(ctx, &bill.Bill{ID: id, FilesRef: paths})
	require.NoError(t, err)
	assert.Equal(t, []string{"memory://" + paths[0], "memory://" + paths[1]}, urls)

	_, err = svc.DownloadURLs(ctx, &bill.Bill{ID: id, FilesRef: []string{"bills/missing/x.pdf"}})
	assert.Error(t, err)
}
