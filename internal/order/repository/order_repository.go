package repository

import (
	"context"
	"database/sql"
	"fmt"

	"checkout/internal/domain"
	apperrors "checkout/internal/errors"
	"checkout/internal/infrastructure/mysql"
)

type MySQLOrderRepository struct {
	db mysql.DBTX
}

func NewMySQLOrderRepository(db mysql.DBTX) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// InsertHeader writes the order row. The UNIQUE (family, orderNumber) index is
// the backstop against two transactions racing onto one number: the loser gets
// a DuplicateOrderNumberError and the caller reruns the whole allocation.
func (r *MySQLOrderRepository) InsertHeader(ctx context.Context, tx mysql.DBTX, order *domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (orderNumber, family, ownerId, guestName, guestPhone, guestEmail,
		                    addressRef, eventDate, deliverySlot, status,
		                    subtotal, deliveryFee, tax, total, idempotencyKey)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.OrderNumber, string(order.Family), order.OwnerID,
		order.GuestName, order.GuestPhone, order.GuestEmail,
		order.AddressRef, order.EventDate, order.DeliverySlot, order.Status,
		order.Totals.Subtotal, order.Totals.DeliveryFee, order.Totals.Tax, order.Totals.Total,
		order.IdempotencyKey,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err, "uq_orders_family_number") {
			return 0, apperrors.NewDuplicateOrderNumberError(
				fmt.Sprintf("order number %d already taken in family %s", order.OrderNumber, order.Family), err)
		}
		if mysql.IsDuplicateEntry(err, "uq_orders_idempotency_key") {
			return 0, apperrors.NewConflictError("an order with this idempotency key already exists")
		}
		return 0, fmt.Errorf("inserting order header: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByFamilyAndNumber(ctx context.Context, family domain.OrderFamily, orderNumber int64) (*domain.Order, error) {
	query := `
		SELECT id, orderNumber, family, ownerId, guestName, guestPhone, guestEmail,
		       addressRef, eventDate, deliverySlot, status,
		       subtotal, deliveryFee, tax, total, idempotencyKey, createdAt, updatedAt
		FROM Orders
		WHERE family = ? AND orderNumber = ?
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, string(family), orderNumber),
		fmt.Sprintf("order %d not found in family %s", orderNumber, family))
}

func (r *MySQLOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	query := `
		SELECT id, orderNumber, family, ownerId, guestName, guestPhone, guestEmail,
		       addressRef, eventDate, deliverySlot, status,
		       subtotal, deliveryFee, tax, total, idempotencyKey, createdAt, updatedAt
		FROM Orders
		WHERE idempotencyKey = ?
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, key),
		"no order recorded for idempotency key")
}

func (r *MySQLOrderRepository) scanOne(row *sql.Row, notFoundMsg string) (*domain.Order, error) {
	var order domain.Order
	var family string
	err := row.Scan(
		&order.ID, &order.OrderNumber, &family, &order.OwnerID,
		&order.GuestName, &order.GuestPhone, &order.GuestEmail,
		&order.AddressRef, &order.EventDate, &order.DeliverySlot, &order.Status,
		&order.Totals.Subtotal, &order.Totals.DeliveryFee, &order.Totals.Tax, &order.Totals.Total,
		&order.IdempotencyKey, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}

	order.Family = domain.OrderFamily(family)
	return &order, nil
}
