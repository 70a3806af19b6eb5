package domain

import "time"

// CartItem is one entry in a user's cart. Carts carry only product references
// and quantities; prices are resolved from the catalog at checkout time.
type CartItem struct {
	ID        uint
	OwnerID   string
	ProductID int
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
