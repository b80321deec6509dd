package bill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/johnnycuongn/sp-app/internal/payment"
	"github.com/johnnycuongn/sp-app/internal/storage"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=bill
type Repository interface {
	Create(ctx context.Context, b *Bill) error
	Get(ctx context.Context, id uuid.UUID) (*Bill, error)
	GetAll(ctx context.Context) ([]Bill, error)
	ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]Bill, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Bill, error)
	Update(ctx context.Context, b *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	// EarliestPaymentYear returns the year of the oldest bill dated at or
	// before notAfter, or 0 when there is none.
	EarliestPaymentYear(ctx context.Context, notAfter time.Time) (int, error)
}

// PaymentGetter verifies payment-method references at creation time.
type PaymentGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*payment.Method, error)
}

// File is an attachment to be stored alongside a bill record.
type File struct {
	Name    string
	Content io.Reader
}

type Service struct {
	repo     Repository
	files    storage.FileStore
	payments PaymentGetter
}

func NewService(repo Repository, files storage.FileStore, payments PaymentGetter) *Service {
	return &Service{repo: repo, files: files, payments: payments}
}

// Create validates eagerly, then dispatches the record insert and every file
// upload concurrently as one batch. The batch is not atomic; any failure
// surfaces as a single error without distinguishing sub-operations.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams, files []File) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if userID == uuid.Nil {
		return nil, fmt.Errorf("invalid user when adding new bill")
	}

	if err := s.checkPayment(ctx, params.PaymentMethodID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &Bill{
		ID:              uuid.New(),
		SupplierID:      params.SupplierID,
		UserID:          userID,
		OutletID:        params.OutletID,
		PaymentDate:     params.PaymentDate,
		TotalPayment:    params.TotalPayment,
		PaymentStatus:   params.PaymentStatus,
		PaymentMethodID: params.PaymentMethodID,
		FilesRef:        []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var batch Batch

	for _, f := range files {
		path := storage.BillPath(b.ID.String(), f.Name)
		b.FilesRef = append(b.FilesRef, path)

		batch.Add(path, func(ctx context.Context) error {
			return s.files.Upload(ctx, path, f.Content)
		})
	}

	batch.Add("record", func(ctx context.Context) error {
		return s.repo.Create(ctx, b)
	})

	if err := batch.Run(ctx).Err(); err != nil {
		return nil, fmt.Errorf("creating bill %s: %w", b.ID, err)
	}

	return b, nil
}

// Update replaces the bill's fields and its attachment set wholesale: every
// stored file under the bill's prefix is deleted and the given files become
// the full new set. Passing no files clears the attachments.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams, files []File) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkPayment(ctx, params.PaymentMethodID); err != nil {
		return nil, err
	}

	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stale, err := s.files.List(ctx, storage.BillPrefix(id.String()))
	if err != nil {
		return nil, fmt.Errorf("listing files for bill %s: %w", id, err)
	}

	b.SupplierID = params.SupplierID
	b.OutletID = params.OutletID
	b.PaymentDate = params.PaymentDate
	b.TotalPayment = params.TotalPayment
	b.PaymentStatus = params.PaymentStatus
	b.PaymentMethodID = params.PaymentMethodID
	b.FilesRef = []string{}
	b.UpdatedAt = time.Now().UTC()

	var batch Batch

	if len(stale) > 0 {
		batch.Add("delete stale files", func(ctx context.Context) error {
			return s.files.Delete(ctx, stale)
		})
	}

	for _, f := range files {
		path := storage.BillPath(id.String(), f.Name)
		b.FilesRef = append(b.FilesRef, path)

		batch.Add(path, func(ctx context.Context) error {
			return s.files.Upload(ctx, path, f.Content)
		})
	}

	batch.Add("record", func(ctx context.Context) error {
		return s.repo.Update(ctx, b)
	})

	if err := batch.Run(ctx).Err(); err != nil {
		return nil, fmt.Errorf("updating bill %s: %w", id, err)
	}

	return b, nil
}

// Delete removes the record and everything under the bill's storage prefix.
// Both are attempted even when one fails; failures are joined.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var errs []error

	if err := s.repo.Delete(ctx, id); err != nil {
		errs = append(errs, fmt.Errorf("deleting bill %s: %w", id, err))
	}

	paths, err := s.files.List(ctx, storage.BillPrefix(id.String()))
	if err != nil {
		errs = append(errs, fmt.Errorf("listing files for bill %s: %w", id, err))
	} else if len(paths) > 0 {
		if err := s.files.Delete(ctx, paths); err != nil {
			errs = append(errs, fmt.Errorf("deleting files for bill %s: %w", id, err))
		}
	}

	return errors.Join(errs...)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetAll(ctx context.Context) ([]Bill, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) GetAllForSupplier(ctx context.Context, supplierID uuid.UUID) ([]Bill, error) {
	if supplierID == uuid.Nil {
		return nil, ErrMissingSupplier
	}

	return s.repo.ListForSupplier(ctx, supplierID)
}

// ForYear returns the bills of one calendar year, newest first. The window is
// Jan 1 00:00:00 through Dec 31 23:59:59 inclusive.
func (s *Service) ForYear(ctx context.Context, year int) ([]Bill, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	return s.repo.ListByDateRange(ctx, start, end)
}

// FirstYear returns the year of the earliest recorded bill, driving the
// oldest selectable year in report screens. Defaults to FirstYearDefault
// when no bill exists yet.
func (s *Service) FirstYear(ctx context.Context) (int, error) {
	year, err := s.repo.EarliestPaymentYear(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if year == 0 {
		return FirstYearDefault, nil
	}

	return year, nil
}

// DownloadURLs resolves every stored attachment path of a bill into a
// retrievable URL, all fetched concurrently and awaited jointly.
func (s *Service) DownloadURLs(ctx context.Context, b *Bill) ([]string, error) {
	urls := make([]string, len(b.FilesRef))

	g, ctx := errgroup.WithContext(ctx)

	for i, path := range b.FilesRef {
		i, path := i, path

		g.Go(func() error {
			url, err := s.files.SignedURL(ctx, path)
			if err != nil {
				return err
			}

			urls[i] = url

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolving files for bill %s: %w", b.ID, err)
	}

	return urls, nil
}

func (s *Service) checkPayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.payments.Get(ctx, id); err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return ErrUnknownPayment
		}

		return err
	}

	return nil
}
