package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleUser.Atleast(RoleUser))
	assert.True(t, RoleStuff.Atleast(RoleUser))
	assert.True(t, RoleAdmin.Atleast(RoleStuff))
	assert.True(t, RoleSuperuser.Atleast(RoleAdmin))

	assert.False(t, RoleUser.Atleast(RoleStuff))
	assert.False(t, RoleStuff.Atleast(RoleAdmin))
	assert.False(t, RoleAdmin.Atleast(RoleSuperuser))
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleStuff, RoleAdmin, RoleSuperuser} {
		parsed, err := ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
}

func TestParseRoleUnknown(t *testing.T) {
	_, err := ParseRole("emperor")
	assert.Error(t, err)
}
