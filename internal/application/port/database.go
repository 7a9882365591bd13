// Package port defines interfaces for infrastructure adapters.
package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider hands out the database connection, possibly opening it
// on first access.
type DatabaseProvider interface {
	// DB returns the connection, initializing it if necessary.
	DB(ctx context.Context) (*sql.DB, error)

	// Close closes the connection if it was initialized.
	Close() error

	// IsInitialized reports whether the connection is open.
	IsInitialized() bool
}
