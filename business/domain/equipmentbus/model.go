package equipmentbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// Equipment represents a tracked asset. OpenRequestCount is computed on reads
// and ignored on writes.
type Equipment struct {
	ID                  uuid.UUID
	CompanyID           uuid.UUID
	Name                name.Name
	SerialNumber        string
	Department          name.Null
	Location            name.Null
	AssignedEmployee    name.Null
	PurchaseDate        *time.Time
	WarrantyExpiryDate  *time.Time
	TeamID              uuid.UUID
	DefaultTechnicianID *uuid.UUID
	IsScrapped          bool
	OpenRequestCount    int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewEquipment contains information needed to register a new asset.
type NewEquipment struct {
	CompanyID           uuid.UUID
	Name                name.Name
	SerialNumber        string
	Department          name.Null
	Location            name.Null
	AssignedEmployee    name.Null
	PurchaseDate        *time.Time
	WarrantyExpiryDate  *time.Time
	TeamID              uuid.UUID
	DefaultTechnicianID *uuid.UUID
}

// UpdateEquipment contains information needed to update an asset. Nil fields
// are left unchanged.
type UpdateEquipment struct {
	Name                *name.Name
	SerialNumber        *string
	Department          *name.Null
	Location            *name.Null
	AssignedEmployee    *name.Null
	PurchaseDate        *time.Time
	WarrantyExpiryDate  *time.Time
	TeamID              *uuid.UUID
	DefaultTechnicianID *uuid.UUID
}
