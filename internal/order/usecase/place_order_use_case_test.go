package usecase

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checkout/internal/domain"
	"checkout/internal/dto"
	apperrors "checkout/internal/errors"
	"checkout/internal/order/service"
)

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

type mockCheckoutService struct {
	PlaceOrderFunc func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error)
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
	return m.PlaceOrderFunc(ctx, cmd)
}

func newTestPlaceOrderUseCase(svc CheckoutService) *PlaceOrderUseCase {
	return NewPlaceOrderUseCase(svc, zap.NewNop(), 3)
}

func validRegularRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		CartOwnerID: "user-1",
		OwnerID:     strPtr("user-1"),
		AddressRef:  strPtr("addr-1"),
	}
}

func validCateringGuestRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		CartOwnerID: "guest-session-9",
		GuestName:   strPtr("Asha"),
		GuestPhone:  strPtr("5550001234"),
		EventDate:   timePtr(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func TestPlaceOrder_UnknownFamily(t *testing.T) {
	svcCalled := false
	svc := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
			svcCalled = true
			return nil, nil
		},
	}

	uc := newTestPlaceOrderUseCase(svc)

	_, err := uc.PlaceOrder(context.Background(), domain.OrderFamily("drive-through"), nil, validRegularRequest())
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "family", ve.Details[0].Field)
	assert.False(t, svcCalled)
}

func TestPlaceOrder_RegularRequiresAccount(t *testing.T) {
	svc := &mockCheckoutService{}
	uc := newTestPlaceOrderUseCase(svc)

	req := validRegularRequest()
	req.OwnerID = nil

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, nil, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "ownerId", ve.Details[0].Field)
}

func TestPlaceOrder_RegularRequiresAddress(t *testing.T) {
	svc := &mockCheckoutService{}
	uc := newTestPlaceOrderUseCase(svc)

	req := validRegularRequest()
	req.AddressRef = nil

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, nil, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "addressRef", ve.Details[0].Field)
}

func TestPlaceOrder_CateringRequiresEventDate(t *testing.T) {
	svc := &mockCheckoutService{}
	uc := newTestPlaceOrderUseCase(svc)

	req := validCateringGuestRequest()
	req.EventDate = nil

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyCatering, nil, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "eventDate", ve.Details[0].Field)
}

func TestPlaceOrder_GuestCheckoutRequiresContact(t *testing.T) {
	svc := &mockCheckoutService{}
	uc := newTestPlaceOrderUseCase(svc)

	req := validCateringGuestRequest()
	req.GuestName = nil
	req.GuestPhone = nil

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyCorporate, nil, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 2)
}

func TestPlaceOrder_GuestCheckoutAllowedForCatering(t *testing.T) {
	var gotCmd service.CheckoutCommand
	svc := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
			gotCmd = cmd
			return &domain.Order{OrderNumber: 40000001, Family: domain.FamilyCatering}, nil
		},
	}

	uc := newTestPlaceOrderUseCase(svc)

	order, err := uc.PlaceOrder(context.Background(), domain.FamilyCatering, nil, validCateringGuestRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(40000001), order.OrderNumber)
	assert.Equal(t, domain.FamilyCatering, gotCmd.Config.Family)
	assert.Nil(t, gotCmd.OwnerID)
	assert.Equal(t, "Asha", *gotCmd.GuestName)
	assert.Equal(t, "guest-session-9", gotCmd.CartOwnerID)
}

func TestPlaceOrder_InvalidIdempotencyKey(t *testing.T) {
	svc := &mockCheckoutService{}
	uc := newTestPlaceOrderUseCase(svc)

	key := "not-a-uuid"
	_, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, &key, validRegularRequest())
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Idempotency-Key", ve.Details[0].Field)
}

func TestPlaceOrder_RetriesOnDuplicateNumber(t *testing.T) {
	attempts := 0
	svc := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
			attempts++
			if attempts < 3 {
				return nil, apperrors.NewDuplicateOrderNumberError("order number already taken", nil)
			}
			return &domain.Order{OrderNumber: 10000002, Family: domain.FamilyRegular}, nil
		},
	}

	uc := newTestPlaceOrderUseCase(svc)

	order, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, nil, validRegularRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, attempts)
	assert.Equal(t, int64(10000002), order.OrderNumber)
}

func TestPlaceOrder_RetriesExhausted(t *testing.T) {
	attempts := 0
	svc := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
			attempts++
			return nil, apperrors.NewDuplicateOrderNumberError("order number already taken", nil)
		},
	}

	uc := newTestPlaceOrderUseCase(svc)

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, nil, validRegularRequest())
	require.Error(t, err)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, 3, attempts)
}

func TestPlaceOrder_EmptyCartNotRetried(t *testing.T) {
	attempts := 0
	svc := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
			attempts++
			return nil, apperrors.NewEmptyCartError("cart is empty")
		},
	}

	uc := newTestPlaceOrderUseCase(svc)

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, nil, validRegularRequest())
	require.Error(t, err)

	_, ok := apperrors.IsEmptyCartError(err)
	assert.True(t, ok)
	assert.Equal(t, 1, attempts)
}

func TestPlaceOrder_UnreachableStoreClassified(t *testing.T) {
	svc := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
			return nil, fmt.Errorf("beginning transaction: %w", driver.ErrBadConn)
		},
	}

	uc := newTestPlaceOrderUseCase(svc)

	_, err := uc.PlaceOrder(context.Background(), domain.FamilyRegular, nil, validRegularRequest())
	require.Error(t, err)

	ue, ok := apperrors.IsUnavailableError(err)
	require.True(t, ok)
	assert.ErrorIs(t, ue, driver.ErrBadConn)
}
