package requestbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
)

// Request represents one maintenance work ticket against an asset.
type Request struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
	EquipmentID   uuid.UUID
	TeamID        *uuid.UUID
	TechnicianID  *uuid.UUID
	Type          requesttype.RequestType
	Status        requeststatus.Status
	Subject       name.Name
	Description   string
	ScheduledDate *time.Time
	DurationHours *float64
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRequest contains information needed to open a request. Status defaults
// to NEW when left as the zero value. TeamID and TechnicianID default to the
// asset's values when nil.
type NewRequest struct {
	CompanyID     uuid.UUID
	EquipmentID   uuid.UUID
	TeamID        *uuid.UUID
	TechnicianID  *uuid.UUID
	Type          requesttype.RequestType
	Status        requeststatus.Status
	Subject       name.Name
	Description   string
	ScheduledDate *time.Time
	DurationHours *float64
	CreatedBy     uuid.UUID
}

// UpdateRequest contains information needed to update a request. Nil fields
// are left unchanged.
type UpdateRequest struct {
	TeamID        *uuid.UUID
	TechnicianID  *uuid.UUID
	Type          *requesttype.RequestType
	Status        *requeststatus.Status
	Subject       *name.Name
	Description   *string
	ScheduledDate *time.Time
	DurationHours *float64
}

// KanbanColumn holds the requests sitting in one status bucket.
type KanbanColumn struct {
	Status   requeststatus.Status
	Requests []Request
}
