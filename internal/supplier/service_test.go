package supplier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/johnnycuongn/sp-app/internal/supplier"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    supplier.CreateParams
		setupMock func(m *supplier.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: supplier.CreateParams{
				Name:        "Acme Beverages",
				Description: "Soft drinks wholesaler",
				Category:    "drinks",
			},
			setupMock: func(m *supplier.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *supplier.Supplier) error {
						s.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  supplier.CreateParams{Name: "   "},
			wantErr: supplier.ErrMissingName,
		},
		{
			name:   "RepoError",
			params: supplier.CreateParams{Name: "Acme Beverages"},
			setupMock: func(m *supplier.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := supplier.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := supplier.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, "Acme Beverages", got.Name)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := supplier.NewMockRepository(ctrl)
	svc := supplier.NewService(repo)

	t.Run("ValidationBeforeStore", func(t *testing.T) {
		err := svc.Update(context.Background(), &supplier.Supplier{ID: uuid.New()})
		assert.ErrorIs(t, err, supplier.ErrMissingName)
	})

	t.Run("Success", func(t *testing.T) {
		sup := &supplier.Supplier{ID: uuid.New(), Name: "Acme Beverages"}
		repo.EXPECT().Update(gomock.Any(), sup).Return(nil)

		assert.NoError(t, svc.Update(context.Background(), sup))
	})
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := supplier.NewMockRepository(ctrl)
	id := uuid.New()
	repo.EXPECT().Get(gomock.Any(), id).Return(nil, supplier.ErrNotFound)

	svc := supplier.NewService(repo)
	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, supplier.ErrNotFound)
}
