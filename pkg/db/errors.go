package db

import (
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)

// SQLSTATE codes the application reacts to.
const (
	codeUniqueViolation = "23505"
)

// IsUniqueViolation reports whether err carries a PostgreSQL unique_violation.
// When constraint is non-empty the violated constraint name must match too.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsConnectionError reports whether err means the server could not be
// reached or the connection broke, as opposed to a statement failure.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. Class 57P: operator intervention.
		return len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code == "57P01" || pgErr.Code == "57P03")
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// pgxpool reports use after Close with an unexported error value.
	if strings.Contains(err.Error(), "closed pool") {
		return true
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}
