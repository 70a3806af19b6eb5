package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Integration tests are skipped
// when no MySQL instance named 'checkout_test' is reachable on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/checkout_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "OrderSequences", "CartItems", "Products"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the checkout schema.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		category VARCHAR(100),
		isActive TINYINT(1) DEFAULT 1,
		isDeleted TINYINT(1) DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_deleted (isDeleted)
	)`

	createCartItemsTable := `
	CREATE TABLE IF NOT EXISTS CartItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		ownerId VARCHAR(64) NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_owner (ownerId)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderNumber BIGINT NOT NULL,
		family VARCHAR(20) NOT NULL,
		ownerId VARCHAR(64),
		guestName VARCHAR(100),
		guestPhone VARCHAR(30),
		guestEmail VARCHAR(150),
		addressRef VARCHAR(64),
		eventDate DATETIME,
		deliverySlot VARCHAR(50),
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		deliveryFee DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		tax DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		total DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		idempotencyKey CHAR(36),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_orders_family_number (family, orderNumber),
		UNIQUE KEY uq_orders_idempotency_key (idempotencyKey),
		INDEX idx_owner (ownerId)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_product (productId)
	)`

	createOrderSequencesTable := `
	CREATE TABLE IF NOT EXISTS OrderSequences (
		family VARCHAR(20) NOT NULL PRIMARY KEY,
		nextNumber BIGINT NOT NULL
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Products", createProductsTable},
		{"CartItems", createCartItemsTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
		{"OrderSequences", createOrderSequencesTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
