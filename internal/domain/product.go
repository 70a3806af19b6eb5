package domain

import "time"

type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Category    string
	IsActive    bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available reports whether the product can still be ordered. Deleted dishes
// stay in the table so old orders keep their reference.
func (p Product) Available() bool {
	return p.IsActive && !p.IsDeleted
}
