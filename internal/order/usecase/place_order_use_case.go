package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"checkout/internal/domain"
	"checkout/internal/dto"
	apperrors "checkout/internal/errors"
	"checkout/internal/infrastructure/mysql"
	"checkout/internal/order/service"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error)
}

// PlaceOrderUseCase routes a checkout request to its order family: it resolves
// the family's policy, validates the family-specific fields, and delegates to
// the checkout service, retrying the whole transaction when an order-number
// allocation collides.
type PlaceOrderUseCase struct {
	checkoutSvc      CheckoutService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewPlaceOrderUseCase(checkoutSvc CheckoutService, logger *zap.Logger, maxRetryAttempts int) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		checkoutSvc:      checkoutSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *PlaceOrderUseCase) PlaceOrder(
	ctx context.Context,
	family domain.OrderFamily,
	idempotencyKey *string,
	req dto.CheckoutRequest,
) (*domain.Order, error) {
	cfg, err := domain.ConfigForFamily(family)
	if err != nil {
		return nil, apperrors.NewValidationError("unknown order family", apperrors.ValidationDetail{
			Field:   "family",
			Message: fmt.Sprintf("%q is not a known order family", family),
		})
	}

	if err := validateRequest(cfg, idempotencyKey, req); err != nil {
		return nil, err
	}

	uc.logger.Info("checkout started",
		zap.String("family", string(family)),
		zap.String("cartOwnerId", req.CartOwnerID),
		zap.Bool("guest", req.OwnerID == nil),
	)

	cmd := service.CheckoutCommand{
		Config:         cfg,
		CartOwnerID:    req.CartOwnerID,
		OwnerID:        req.OwnerID,
		GuestName:      req.GuestName,
		GuestPhone:     req.GuestPhone,
		GuestEmail:     req.GuestEmail,
		AddressRef:     req.AddressRef,
		EventDate:      req.EventDate,
		DeliverySlot:   req.DeliverySlot,
		IdempotencyKey: idempotencyKey,
	}

	return uc.placeWithRetry(ctx, cmd)
}

// placeWithRetry reruns the checkout transaction on order-number collisions
// and storage deadlocks. Both mean another writer got there first and the next
// attempt allocates a fresh number.
func (uc *PlaceOrderUseCase) placeWithRetry(ctx context.Context, cmd service.CheckoutCommand) (*domain.Order, error) {
	maxAttempts := uc.maxRetryAttempts
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err := uc.checkoutSvc.PlaceOrder(ctx, cmd)
		if err == nil {
			return order, nil
		}

		if !isRetryable(err) {
			return nil, classifyStorageError(err)
		}

		if attempt < maxAttempts {
			backoff := backoffs[min(attempt, len(backoffs))-1]
			jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			uc.logger.Warn("order number collision, retrying checkout",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts),
				zap.String("family", string(cmd.Config.Family)),
			)
		}
	}

	return nil, apperrors.NewConflictError("could not allocate an order number, retries exhausted")
}

func isRetryable(err error) bool {
	if _, ok := apperrors.IsDuplicateOrderNumberError(err); ok {
		return true
	}
	return mysql.IsDeadlock(err)
}

// classifyStorageError turns unreachable-store failures into the transient
// error type callers are allowed to retry on. Everything else passes through
// unchanged.
func classifyStorageError(err error) error {
	if mysql.IsUnavailable(err) {
		return apperrors.NewUnavailableError("order store unreachable", err)
	}
	return err
}

func validateRequest(cfg domain.FamilyConfig, idempotencyKey *string, req dto.CheckoutRequest) error {
	var details []apperrors.ValidationDetail

	if req.CartOwnerID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "cartOwnerId",
			Message: "cartOwnerId is required",
		})
	}

	if req.OwnerID != nil && *req.OwnerID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "ownerId",
			Message: "ownerId must not be blank",
		})
	}

	if req.OwnerID == nil && !cfg.GuestAllowed {
		details = append(details, apperrors.ValidationDetail{
			Field:   "ownerId",
			Message: fmt.Sprintf("family %s requires a registered account", cfg.Family),
		})
	}

	if req.OwnerID == nil && cfg.GuestAllowed {
		if req.GuestName == nil || *req.GuestName == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "guestName",
				Message: "guestName is required for guest checkout",
			})
		}
		if req.GuestPhone == nil || *req.GuestPhone == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "guestPhone",
				Message: "guestPhone is required for guest checkout",
			})
		}
	}

	if cfg.RequiresAddress && (req.AddressRef == nil || *req.AddressRef == "") {
		details = append(details, apperrors.ValidationDetail{
			Field:   "addressRef",
			Message: fmt.Sprintf("family %s requires a delivery address", cfg.Family),
		})
	}

	if cfg.RequiresEventDate && req.EventDate == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "eventDate",
			Message: fmt.Sprintf("family %s requires an event date", cfg.Family),
		})
	}

	if idempotencyKey != nil {
		if _, err := uuid.Parse(*idempotencyKey); err != nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   "Idempotency-Key",
				Message: "idempotency key must be a valid UUID",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
