package statsbus

import (
	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
)

// Counters holds the headline counts of the dashboard.
type Counters struct {
	Equipment    int
	Teams        int
	Employees    int
	OpenRequests int
}

// StatusCount holds the number of requests in one status bucket.
type StatusCount struct {
	Status requeststatus.Status
	Count  int
}

// TypeCount holds the number of requests of one type.
type TypeCount struct {
	Type  requesttype.RequestType
	Count int
}

// TechnicianWorkload holds one technician's open assigned request count.
type TechnicianWorkload struct {
	TechnicianID uuid.UUID
	Name         name.Name
	OpenRequests int
}

// Stats is the full dashboard payload for one company.
type Stats struct {
	Counters           Counters
	StatusDistribution []StatusCount
	TypeDistribution   []TypeCount
	TopTechnicians     []TechnicianWorkload
}
