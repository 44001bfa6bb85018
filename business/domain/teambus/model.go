package teambus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// Team represents a maintenance team and its technician membership.
type Team struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      name.Name
	MemberIDs []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTeam contains information needed to create a new team.
type NewTeam struct {
	CompanyID uuid.UUID
	Name      name.Name
	MemberIDs []uuid.UUID
}

// UpdateTeam contains information needed to update a team. Nil fields are
// left unchanged.
type UpdateTeam struct {
	Name      *name.Name
	MemberIDs *[]uuid.UUID
}
