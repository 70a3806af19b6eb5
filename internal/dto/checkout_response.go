package dto

import "time"

type CheckoutResponse struct {
	TraceID     string         `json:"traceId"`
	OrderNumber int64          `json:"orderNumber"`
	Family      string         `json:"family"`
	Status      string         `json:"status"`
	Totals      TotalsDTO      `json:"totals"`
	Items       []OrderItemDTO `json:"items"`
	CreatedAt   time.Time      `json:"createdAt"`
	Timestamp   time.Time      `json:"timestamp"`
}

type TotalsDTO struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

type OrderItemDTO struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type CheckoutErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
