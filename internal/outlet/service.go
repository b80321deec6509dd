package outlet

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Outlet, error)
	Get(ctx context.Context, id uuid.UUID) (*Outlet, error)
	Create(ctx context.Context, o *Outlet) error
	Update(ctx context.Context, o *Outlet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name             string
	Description      string
	DefaultPaymentID uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Outlet, error) {
	o := &Outlet{
		Name:             params.Name,
		Description:      params.Description,
		DefaultPaymentID: params.DefaultPaymentID,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Outlet, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Outlet, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, o *Outlet) error {
	if err := o.Validate(); err != nil {
		return err
	}

	return s.repo.Update(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
