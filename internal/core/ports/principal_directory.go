package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// PrincipalDirectory resolves accounts owned by the external identity service.
// The ordering core only needs to know which role an account has, e.g. to confirm that
// the restaurant an order is placed against really is a restaurant.
type PrincipalDirectory interface {
	// RoleOf returns the account's role or an ObjectNotFoundError.
	RoleOf(ctx context.Context, id kernel.UUID) (kernel.Role, error)
}
