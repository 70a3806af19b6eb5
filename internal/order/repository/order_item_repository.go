package repository

import (
	"context"
	"fmt"

	"checkout/internal/domain"
	"checkout/internal/infrastructure/mysql"
)

type MySQLOrderItemRepository struct {
	db mysql.DBTX
}

func NewMySQLOrderItemRepository(db mysql.DBTX) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx mysql.DBTX, item domain.OrderItem) (uint, error) {
	query := `INSERT INTO OrderItems (orderId, productId, quantity, price) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := `
		SELECT id, orderId, productId, quantity, price
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
