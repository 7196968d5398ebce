package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/probe"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.OrderRequest, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderRequest), args.Error(1)
}

func (m *mockOrderRepo) Create(ctx context.Context, owner uuid.UUID, requestType, details string) (*models.OrderRequest, error) {
	args := m.Called(ctx, owner, requestType, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderRequest), args.Error(1)
}

func TestOrderService_Submit_DefaultsToDayOff(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()
	owner := uuid.New()

	want := &models.OrderRequest{RequestType: models.OrderTypeDayOff}
	repo.On("Create", ctx, owner, models.OrderTypeDayOff, "Sexta à tarde").Return(want, nil)

	got, err := svc.Submit(ctx, owner, "", "  Sexta à tarde ")
	require.NoError(t, err)
	assert.Same(t, want, got)
	repo.AssertExpectations(t)
}

func TestOrderService_Submit_Validation(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)

	_, err := svc.Submit(context.Background(), uuid.New(), "Bonus", "x")
	appErr, _ := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, i18n.KeyOrderTypeInvalid, appErr.Key)

	_, err = svc.Submit(context.Background(), uuid.New(), models.OrderTypeTool, "  ")
	appErr, _ = apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, i18n.KeyOrderDetailsRequired, appErr.Key)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_List_Unavailable(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()
	owner := uuid.New()

	repo.On("ListByOwner", ctx, owner).Return(nil, probe.Unavailable(probe.OrderTable))

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.True(t, list.ModuleUnavailable)
	assert.Empty(t, list.Items)
}
