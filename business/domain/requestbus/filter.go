package requestbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
)

// QueryFilter holds the available fields a query can be filtered on.
// CompanyID is mandatory on collection reads.
type QueryFilter struct {
	CompanyID          uuid.UUID
	ID                 *uuid.UUID
	EquipmentID        *uuid.UUID
	TeamID             *uuid.UUID
	TechnicianID       *uuid.UUID
	CreatedBy          *uuid.UUID
	Type               *requesttype.RequestType
	Status             *requeststatus.Status
	StartScheduledDate *time.Time
	EndScheduledDate   *time.Time
}
