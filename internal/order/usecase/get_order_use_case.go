package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"checkout/internal/domain"
	apperrors "checkout/internal/errors"
)

type OrderReader interface {
	FindByFamilyAndNumber(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error)
}

type OrderItemReader interface {
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

// GetOrderUseCase serves the order confirmation readback: header plus line
// items by family and order number.
type GetOrderUseCase struct {
	orderRepo     OrderReader
	orderItemRepo OrderItemReader
	logger        *zap.Logger
}

func NewGetOrderUseCase(orderRepo OrderReader, orderItemRepo OrderItemReader, logger *zap.Logger) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

func (uc *GetOrderUseCase) GetOrder(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error) {
	if _, err := domain.ConfigForFamily(family); err != nil {
		return nil, apperrors.NewValidationError("unknown order family", apperrors.ValidationDetail{
			Field:   "family",
			Message: fmt.Sprintf("%q is not a known order family", family),
		})
	}

	order, err := uc.orderRepo.FindByFamilyAndNumber(ctx, family, orderNumber)
	if err != nil {
		return nil, err
	}

	items, err := uc.orderItemRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}
