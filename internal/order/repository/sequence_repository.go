package repository

import (
	"context"
	"database/sql"
	"fmt"

	"checkout/internal/domain"
	apperrors "checkout/internal/errors"
	"checkout/internal/infrastructure/mysql"
)

// MySQLSequenceRepository hands out order numbers from a per-family counter
// row. The row is read under FOR UPDATE inside the caller's transaction, so
// allocation is serialized per family and rolls back together with the order
// insert it was allocated for.
type MySQLSequenceRepository struct {
	db mysql.DBTX
}

func NewMySQLSequenceRepository(db mysql.DBTX) *MySQLSequenceRepository {
	return &MySQLSequenceRepository{db: db}
}

// NextOrderNumber returns the next free number for the family and advances the
// counter. Must be called on a transaction handle; the row lock it takes is
// what prevents two checkouts from allocating the same number.
func (r *MySQLSequenceRepository) NextOrderNumber(ctx context.Context, tx mysql.DBTX, cfg domain.FamilyConfig) (int64, error) {
	var next int64
	err := tx.QueryRowContext(ctx,
		`SELECT nextNumber FROM OrderSequences WHERE family = ? FOR UPDATE`,
		string(cfg.Family),
	).Scan(&next)

	if err == sql.ErrNoRows {
		return r.seed(ctx, tx, cfg)
	}
	if err != nil {
		return 0, fmt.Errorf("reading order sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE OrderSequences SET nextNumber = ? WHERE family = ?`,
		next+1, string(cfg.Family),
	)
	if err != nil {
		return 0, fmt.Errorf("advancing order sequence: %w", err)
	}

	return next, nil
}

// seed creates the counter row the first time a family allocates. Existing
// orders (data that predates the counter table) are respected by starting from
// MAX(orderNumber)+1. Two first-time allocations can both reach the INSERT;
// the primary key rejects the loser, which surfaces as a retryable duplicate.
func (r *MySQLSequenceRepository) seed(ctx context.Context, tx mysql.DBTX, cfg domain.FamilyConfig) (int64, error) {
	var maxNumber sql.NullInt64
	err := tx.QueryRowContext(ctx,
		`SELECT MAX(orderNumber) FROM Orders WHERE family = ?`,
		string(cfg.Family),
	).Scan(&maxNumber)
	if err != nil {
		return 0, fmt.Errorf("reading max order number: %w", err)
	}

	next := cfg.StartNumber
	if maxNumber.Valid && maxNumber.Int64 >= cfg.StartNumber {
		next = maxNumber.Int64 + 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO OrderSequences (family, nextNumber) VALUES (?, ?)`,
		string(cfg.Family), next+1,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err, "") {
			return 0, apperrors.NewDuplicateOrderNumberError(
				fmt.Sprintf("sequence for family %s was seeded concurrently", cfg.Family), err)
		}
		return 0, fmt.Errorf("seeding order sequence: %w", err)
	}

	return next, nil
}
