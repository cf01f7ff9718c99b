package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func TestParseRole(t *testing.T) {
	cases := map[string]domain.Role{
		"buyer":   domain.RoleBuyer,
		"SELLER":  domain.RoleSeller,
		"Admin":   domain.RoleAdmin,
		" admin":  domain.RoleAdmin,
		"buyer  ": domain.RoleBuyer,
	}
	for raw, want := range cases {
		role, err := domain.ParseRole(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, want, role)
	}

	for _, raw := range []string{"", "superuser", "buy er"} {
		_, err := domain.ParseRole(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, domain.RoleBuyer.Valid())
	assert.True(t, domain.Role("ADMIN").Valid())
	assert.False(t, domain.Role("root").Valid())
}
