package mysql

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// IsDuplicateEntry reports whether err is a MySQL duplicate-key error (1062).
// When key is non-empty the duplicate must be on that index.
func IsDuplicateEntry(err error, key string) bool {
	var mysqlErr *mysqldrv.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return false
	}
	return key == "" || strings.Contains(mysqlErr.Message, key)
}

// IsDeadlock reports whether err is a deadlock (1213) or lock wait timeout
// (1205). Both are resolved by retrying the transaction.
func IsDeadlock(err error) bool {
	var mysqlErr *mysqldrv.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

// IsUnavailable reports whether err means the database could not be reached at
// all, as opposed to rejecting a statement.
func IsUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldrv.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
