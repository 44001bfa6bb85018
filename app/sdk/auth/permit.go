package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/jcpaschoal/manfix/business/types/actions"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// The permit table replaces role-string comparisons scattered through the
// handlers: one policy row per (actor role, action, target role) that is
// allowed. Everything absent is denied.
const permitModel = `
[request_definition]
r = sub, act, obj

[policy_definition]
p = sub, act, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act && r.obj == p.obj
`

// An owner provisions managers, a manager provisions the field roles. All
// other people-management actions follow the same chain of command.
var permitPolicies = [][]string{
	{role.CompanyOwner.String(), actions.Create.String(), role.Manager.String()},
	{role.Manager.String(), actions.Create.String(), role.Technician.String()},
	{role.Manager.String(), actions.Create.String(), role.User.String()},

	{role.CompanyOwner.String(), actions.Toggle.String(), role.Manager.String()},
	{role.CompanyOwner.String(), actions.Toggle.String(), role.Technician.String()},
	{role.CompanyOwner.String(), actions.Toggle.String(), role.User.String()},
	{role.Manager.String(), actions.Toggle.String(), role.Technician.String()},
	{role.Manager.String(), actions.Toggle.String(), role.User.String()},

	{role.CompanyOwner.String(), actions.Update.String(), role.Manager.String()},
	{role.CompanyOwner.String(), actions.Update.String(), role.Technician.String()},
	{role.CompanyOwner.String(), actions.Update.String(), role.User.String()},
	{role.Manager.String(), actions.Update.String(), role.Technician.String()},
	{role.Manager.String(), actions.Update.String(), role.User.String()},

	{role.CompanyOwner.String(), actions.Delete.String(), role.Manager.String()},
	{role.CompanyOwner.String(), actions.Delete.String(), role.Technician.String()},
	{role.CompanyOwner.String(), actions.Delete.String(), role.User.String()},
	{role.Manager.String(), actions.Delete.String(), role.Technician.String()},
	{role.Manager.String(), actions.Delete.String(), role.User.String()},
}

// Permit answers whether an actor role may perform an action against a
// target role.
type Permit struct {
	enforcer *casbin.Enforcer
}

// NewPermit constructs the in-memory permit table.
func NewPermit() (*Permit, error) {
	m, err := model.NewModelFromString(permitModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	for _, p := range permitPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}

	return &Permit{enforcer: e}, nil
}

// Allow returns nil when the actor may perform the action against the target
// role, ErrForbidden otherwise.
func (p *Permit) Allow(actor role.Role, act actions.Action, target role.Role) error {
	ok, err := p.enforcer.Enforce(actor.String(), act.String(), target.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %q cannot %s role %q", ErrForbidden, actor, act, target)
	}

	return nil
}
