package repository

import (
	"context"
	"fmt"

	"checkout/internal/domain"
	"checkout/internal/infrastructure/mysql"
)

type MySQLCartRepository struct {
	db mysql.DBTX
}

func NewMySQLCartRepository(db mysql.DBTX) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

func (r *MySQLCartRepository) GetItems(ctx context.Context, q mysql.DBTX, ownerID string) ([]domain.CartItem, error) {
	query := `
		SELECT id, ownerId, productId, quantity, createdAt, updatedAt
		FROM CartItems
		WHERE ownerId = ?
		ORDER BY id
	`

	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning cart item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart item rows: %w", err)
	}

	return items, nil
}

// Clear deletes every cart row for the owner. The cart itself is implicit (a
// bag of rows keyed by owner); there is no cart header to touch.
func (r *MySQLCartRepository) Clear(ctx context.Context, q mysql.DBTX, ownerID string) error {
	query := `DELETE FROM CartItems WHERE ownerId = ?`

	if _, err := q.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}

	return nil
}
