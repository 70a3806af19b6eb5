package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"checkout/internal/domain"
	"checkout/internal/dto"
	apperrors "checkout/internal/errors"
)

type PlaceOrderUseCase interface {
	PlaceOrder(ctx context.Context, family domain.OrderFamily, idempotencyKey *string, req dto.CheckoutRequest) (*domain.Order, error)
}

type GetOrderUseCase interface {
	GetOrder(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error)
}

type CheckoutController struct {
	placeOrder PlaceOrderUseCase
	getOrder   GetOrderUseCase
	logger     *zap.Logger
}

func NewCheckoutController(placeOrder PlaceOrderUseCase, getOrder GetOrderUseCase, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		placeOrder: placeOrder,
		getOrder:   getOrder,
		logger:     logger,
	}
}

func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	family := domain.OrderFamily(chi.URLParam(r, "family"))

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var idempotencyKey *string
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		idempotencyKey = &key
	}

	order, err := c.placeOrder.PlaceOrder(r.Context(), family, idempotencyKey, req)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toCheckoutResponse(traceID, order))
}

func (c *CheckoutController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	family := domain.OrderFamily(chi.URLParam(r, "family"))

	orderNumber, err := strconv.ParseInt(chi.URLParam(r, "orderNumber"), 10, 64)
	if err != nil {
		c.writeValidationError(w, traceID, "invalid orderNumber", apperrors.ValidationDetail{
			Field:   "orderNumber",
			Message: "orderNumber must be an integer",
		})
		return
	}

	order, err := c.getOrder.GetOrder(r.Context(), family, orderNumber)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toCheckoutResponse(traceID, order))
}

func (c *CheckoutController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsEmptyCartError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusUnprocessableEntity, "EMPTY_CART", "cart is empty")
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	if _, ok := apperrors.IsUnavailableError(err); ok {
		logger.Error("order store unavailable", zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusServiceUnavailable, "STORE_UNAVAILABLE",
			"order store is temporarily unavailable, please retry")
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func toCheckoutResponse(traceID string, order *domain.Order) dto.CheckoutResponse {
	items := make([]dto.OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return dto.CheckoutResponse{
		TraceID:     traceID,
		OrderNumber: order.OrderNumber,
		Family:      string(order.Family),
		Status:      order.Status,
		Totals: dto.TotalsDTO{
			Subtotal:    order.Totals.Subtotal,
			DeliveryFee: order.Totals.DeliveryFee,
			Tax:         order.Totals.Tax,
			Total:       order.Totals.Total,
		},
		Items:     items,
		CreatedAt: order.CreatedAt,
		Timestamp: time.Now().UTC(),
	}
}

func (c *CheckoutController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	response := dto.CheckoutErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	c.writeJSON(w, statusCode, response)
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *CheckoutController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	c.writeJSON(w, http.StatusBadRequest, response)
}

func (c *CheckoutController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
