package supplier

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=supplier
type Repository interface {
	GetAll(ctx context.Context) ([]Supplier, error)
	Get(ctx context.Context, id uuid.UUID) (*Supplier, error)
	Create(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Description string
	Category    string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Supplier, error) {
	sup := &Supplier{
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
	}
	if err := sup.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}

	return sup, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Supplier, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(); err != nil {
		return err
	}

	return s.repo.Update(ctx, sup)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
