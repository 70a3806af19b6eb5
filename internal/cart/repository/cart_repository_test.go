package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout/internal/testutil"
)

func TestNewMySQLCartRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLCartRepository(db)

	assert.NotNil(t, repo)
}

func TestCartRepository_GetItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCartRepository(db)

	_, err := db.Exec(`INSERT INTO CartItems (ownerId, productId, quantity) VALUES ('user-1', 10, 2), ('user-1', 20, 1), ('user-2', 30, 5)`)
	require.NoError(t, err)

	items, err := repo.GetItems(context.Background(), db, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "user-1", items[0].OwnerID)
	assert.Equal(t, 10, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 20, items[1].ProductID)
}

func TestCartRepository_GetItems_EmptyCart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCartRepository(db)

	items, err := repo.GetItems(context.Background(), db, "nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRepository_Clear_OnlyTargetOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCartRepository(db)

	_, err := db.Exec(`INSERT INTO CartItems (ownerId, productId, quantity) VALUES ('user-1', 10, 2), ('user-2', 30, 5)`)
	require.NoError(t, err)

	err = repo.Clear(context.Background(), db, "user-1")
	require.NoError(t, err)

	items, err := repo.GetItems(context.Background(), db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	others, err := repo.GetItems(context.Background(), db, "user-2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
