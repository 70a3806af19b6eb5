package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checkout/internal/domain"
	apperrors "checkout/internal/errors"
)

type mockOrderReader struct {
	FindByFamilyAndNumberFunc func(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error)
}

func (m *mockOrderReader) FindByFamilyAndNumber(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error) {
	return m.FindByFamilyAndNumberFunc(ctx, family, orderNumber)
}

type mockOrderItemReader struct {
	FindByOrderIDFunc func(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

func (m *mockOrderItemReader) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return m.FindByOrderIDFunc(ctx, orderID)
}

func TestGetOrder_Success(t *testing.T) {
	orderRepo := &mockOrderReader{
		FindByFamilyAndNumberFunc: func(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error) {
			return &domain.Order{ID: 7, OrderNumber: orderNumber, Family: family}, nil
		},
	}
	itemRepo := &mockOrderItemReader{
		FindByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{{OrderID: orderID, ProductID: 10, Quantity: 1, UnitPrice: 5.00}}, nil
		},
	}

	uc := NewGetOrderUseCase(orderRepo, itemRepo, zap.NewNop())

	order, err := uc.GetOrder(context.Background(), domain.FamilyMealBox, 20000001)
	require.NoError(t, err)

	assert.Equal(t, int64(20000001), order.OrderNumber)
	assert.Len(t, order.Items, 1)
}

func TestGetOrder_UnknownFamily(t *testing.T) {
	uc := NewGetOrderUseCase(&mockOrderReader{}, &mockOrderItemReader{}, zap.NewNop())

	_, err := uc.GetOrder(context.Background(), domain.OrderFamily("pickup"), 1)
	require.Error(t, err)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestGetOrder_NotFound(t *testing.T) {
	orderRepo := &mockOrderReader{
		FindByFamilyAndNumberFunc: func(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	uc := NewGetOrderUseCase(orderRepo, &mockOrderItemReader{}, zap.NewNop())

	_, err := uc.GetOrder(context.Background(), domain.FamilyRegular, 10000001)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
