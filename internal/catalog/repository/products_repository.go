package repository

import (
	"context"
	"fmt"
	"strings"

	"checkout/internal/domain"
	"checkout/internal/infrastructure/mysql"
)

type MySQLProductRepository struct {
	db mysql.DBTX
}

func NewMySQLProductRepository(db mysql.DBTX) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// FindByIDs loads the current catalog rows for the given product ids. Callers
// that need order-time price snapshots run this on their own transaction handle.
func (r *MySQLProductRepository) FindByIDs(ctx context.Context, q mysql.DBTX, ids []int) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, price, category, isActive, isDeleted,
		       createdAt, updatedAt
		FROM Products
		WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.IsActive, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
