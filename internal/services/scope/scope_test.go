package scope

import (
	"testing"

	"linkpay/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	t.Run("merchant is scoped to own rows", func(t *testing.T) {
		s := For(&models.UserClaims{UserID: 7, Role: models.RoleSubscriber})
		assert.False(t, s.All)
		assert.True(t, s.CanAccess(7))
		assert.False(t, s.CanAccess(8))
	})

	t.Run("super admin is scoped platform wide", func(t *testing.T) {
		s := For(&models.UserClaims{UserID: 1, Role: models.RoleSuperAdmin})
		assert.True(t, s.All)
		assert.True(t, s.CanAccess(7))
		assert.True(t, s.CanAccess(8))
	})

	t.Run("role claim decides, not email", func(t *testing.T) {
		s := For(&models.UserClaims{UserID: 2, Email: "admin@linkpay.io", Role: models.RoleRegisteredUser})
		assert.False(t, s.All)
		assert.False(t, s.CanAccess(3))
	})

	t.Run("nil claims can access nothing", func(t *testing.T) {
		s := For(nil)
		assert.False(t, s.All)
		assert.False(t, s.CanAccess(0))
		assert.False(t, s.CanAccess(1))
	})
}
