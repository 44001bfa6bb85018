package userbus

import (
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on.
// CompanyID is mandatory on collection reads so the tenant filter is never
// forgotten at a call site.
type QueryFilter struct {
	CompanyID uuid.UUID
	ID        *uuid.UUID
	ExcludeID *uuid.UUID
	Name      *name.Name
	Email     *mail.Address
	Role      *role.Role
	Enabled   *bool
}
