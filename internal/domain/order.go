package domain

import "time"

type Order struct {
	ID             uint
	OrderNumber    int64
	Family         OrderFamily
	OwnerID        *string
	GuestName      *string
	GuestPhone     *string
	GuestEmail     *string
	AddressRef     *string
	EventDate      *time.Time
	DeliverySlot   *string
	Status         string
	Totals         Totals
	Items          []OrderItem
	IdempotencyKey *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID int
	Quantity  int
	// UnitPrice is the catalog price at the moment the order was written, not a
	// live reference to the product's current price.
	UnitPrice float64
}

const (
	OrderStatusPending = "PENDING"
)
