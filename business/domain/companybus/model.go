package companybus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// Company represents a tenant in the system.
type Company struct {
	ID        uuid.UUID
	Name      name.Name
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCompany contains information needed to create a new company.
type NewCompany struct {
	Name name.Name
}

// UpdateCompany contains information needed to update a company.
type UpdateCompany struct {
	Name *name.Name
}
