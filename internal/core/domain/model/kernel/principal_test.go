package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for code, want := range map[string]kernel.Role{
		"client":     kernel.RoleClient,
		"restaurant": kernel.RoleRestaurant,
		"admin":      kernel.RoleAdmin,
	} {
		role, err := kernel.ParseRole(code)
		require.NoError(t, err)
		assert.Equal(t, want, role)
		assert.Equal(t, code, role.String())
	}

	for _, code := range []string{"", "unknown", "Client", "courier"} {
		_, err := kernel.ParseRole(code)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, code)
	}
}

func TestNewPrincipal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := kernel.NewPrincipal(id, kernel.RoleRestaurant)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.True(t, p.Is(kernel.RoleRestaurant))
		assert.False(t, p.Is(kernel.RoleClient))
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := kernel.NewPrincipal(kernel.UUID{}, kernel.UnknownRole)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value", func(t *testing.T) {
		var p kernel.Principal
		require.ErrorIs(t, p.Validate(), kernel.ErrPrincipalIsNotConstructed)
	})
}
