// Package pgerr translates PostgreSQL driver errors into the errs taxonomy.
// Both the pgx (default) and lib/pq drivers are understood.
package pgerr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes the ordering adapters react to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	QueryCanceled        = "57014"

	connectionExceptionClass = "08"
)

// Code returns the SQLSTATE of err, or "" if err is not a PostgreSQL error.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// ConstraintName returns the violated constraint, if the driver reported one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// IsTransient reports whether retrying the same statement later may succeed.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	switch code := Code(err); code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable, QueryCanceled:
		return true
	default:
		return strings.HasPrefix(code, connectionExceptionClass)
	}
}

// Classify wraps a persistence error for the application layer.
//
// Returns:
//   - nil for nil
//   - ConflictError for unique violations (paramName names the clashing value)
//   - UnavailableError for timeouts, lost connections, deadlocks, serialization
//     failures and lock timeouts
//   - err annotated with operation otherwise
//
// Example:
//
//	if err := tx.Create(&dto).Error; err != nil {
//	    return pgerr.Classify("insert order", "order", err)
//	}
func Classify(operation, paramName string, err error) error {
	if err == nil {
		return nil
	}

	if IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause(paramName, fmt.Errorf("%s: constraint %q", operation, ConstraintName(err)))
	}
	if IsTransient(err) {
		return errs.NewUnavailableError(operation, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
