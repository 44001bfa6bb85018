package auth_test

import (
	"testing"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/business/types/actions"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermitTable(t *testing.T) {
	permit, err := auth.NewPermit()
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   role.Role
		action  actions.Action
		target  role.Role
		allowed bool
	}{
		{"owner creates manager", role.CompanyOwner, actions.Create, role.Manager, true},
		{"owner cannot create technician", role.CompanyOwner, actions.Create, role.Technician, false},
		{"owner cannot create user", role.CompanyOwner, actions.Create, role.User, false},
		{"owner cannot create owner", role.CompanyOwner, actions.Create, role.CompanyOwner, false},

		{"manager creates technician", role.Manager, actions.Create, role.Technician, true},
		{"manager creates user", role.Manager, actions.Create, role.User, true},
		{"manager cannot create manager", role.Manager, actions.Create, role.Manager, false},
		{"manager cannot create owner", role.Manager, actions.Create, role.CompanyOwner, false},

		{"owner toggles manager", role.CompanyOwner, actions.Toggle, role.Manager, true},
		{"owner toggles user", role.CompanyOwner, actions.Toggle, role.User, true},
		{"manager toggles technician", role.Manager, actions.Toggle, role.Technician, true},
		{"manager cannot toggle manager", role.Manager, actions.Toggle, role.Manager, false},
		{"nobody toggles owner", role.Manager, actions.Toggle, role.CompanyOwner, false},

		{"owner updates technician", role.CompanyOwner, actions.Update, role.Technician, true},
		{"manager updates user", role.Manager, actions.Update, role.User, true},
		{"manager cannot update manager", role.Manager, actions.Update, role.Manager, false},

		{"owner deletes manager", role.CompanyOwner, actions.Delete, role.Manager, true},
		{"manager deletes technician", role.Manager, actions.Delete, role.Technician, true},
		{"manager cannot delete owner", role.Manager, actions.Delete, role.CompanyOwner, false},

		{"technician can do nothing", role.Technician, actions.Create, role.User, false},
		{"user can do nothing", role.User, actions.Toggle, role.User, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := permit.Allow(tt.actor, tt.action, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, auth.ErrForbidden)
		})
	}
}
