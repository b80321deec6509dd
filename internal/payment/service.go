package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Method, error)
	Get(ctx context.Context, id uuid.UUID) (*Method, error)
	Create(ctx context.Context, m *Method) error
	Update(ctx context.Context, m *Method) error
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
	Limits      *Limits
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Method, error) {
	m := &Method{
		Name:        params.Name,
		Description: params.Description,
		Limits:      params.Limits,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Method, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Method, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Method) error {
	if err := m.Validate(); err != nil {
		return err
	}

	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
