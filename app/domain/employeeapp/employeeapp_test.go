package employeeapp

import (
	"testing"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowRoleChange(t *testing.T) {
	permit, err := auth.NewPermit()
	require.NoError(t, err)

	a := newApp(permit, nil)

	roleOf := func(r role.Role) *role.Role { return &r }

	tests := []struct {
		name   string
		actor  role.Role
		uu     userbus.UpdateUser
		denied bool
	}{
		{"no role change always passes", role.Manager, userbus.UpdateUser{}, false},
		{"owner assigns manager", role.CompanyOwner, userbus.UpdateUser{Role: roleOf(role.Manager)}, false},
		{"manager assigns technician", role.Manager, userbus.UpdateUser{Role: roleOf(role.Technician)}, false},
		{"manager assigns user", role.Manager, userbus.UpdateUser{Role: roleOf(role.User)}, false},
		{"manager cannot assign owner", role.Manager, userbus.UpdateUser{Role: roleOf(role.CompanyOwner)}, true},
		{"manager cannot assign manager", role.Manager, userbus.UpdateUser{Role: roleOf(role.Manager)}, true},
		{"owner cannot assign owner", role.CompanyOwner, userbus.UpdateUser{Role: roleOf(role.CompanyOwner)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := a.allowRoleChange(auth.Claims{Role: tt.actor.String()}, tt.uu)
			if !tt.denied {
				assert.Nil(t, enc)
				return
			}

			require.NotNil(t, enc)
			errResp, ok := enc.(*errs.Error)
			require.True(t, ok)
			assert.Equal(t, errs.PermissionDenied, errResp.Code)
		})
	}
}
