package memory

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Directory implements ports.PrincipalDirectory over seeded accounts.
type Directory struct {
	store *Store
}

func NewDirectory(store *Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) RoleOf(_ context.Context, id kernel.UUID) (kernel.Role, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	role, ok := d.store.principals[id]
	if !ok {
		return kernel.UnknownRole, errs.NewObjectNotFoundError("principal", id.String())
	}
	return role, nil
}
