package equipmentbus

import (
	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// QueryFilter holds the available fields a query can be filtered on.
// CompanyID is mandatory on collection reads.
type QueryFilter struct {
	CompanyID    uuid.UUID
	ID           *uuid.UUID
	Name         *name.Name
	SerialNumber *string
	TeamID       *uuid.UUID
	IsScrapped   *bool
}
