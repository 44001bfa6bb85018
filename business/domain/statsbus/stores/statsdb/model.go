package statsdb

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/statsbus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

type countersDB struct {
	EquipmentCount   int `db:"equipment_count"`
	TeamCount        int `db:"team_count"`
	EmployeeCount    int `db:"employee_count"`
	OpenRequestCount int `db:"open_request_count"`
}

func toBusCounters(db countersDB) statsbus.Counters {
	return statsbus.Counters{
		Equipment:    db.EquipmentCount,
		Teams:        db.TeamCount,
		Employees:    db.EmployeeCount,
		OpenRequests: db.OpenRequestCount,
	}
}

type bucketDB struct {
	Key   string `db:"status"`
	Count int    `db:"count"`
}

type workloadDB struct {
	TechnicianID uuid.UUID `db:"technician_id"`
	Name         string    `db:"name"`
	OpenRequests int       `db:"open_requests"`
}

func toBusWorkloads(dbs []workloadDB) ([]statsbus.TechnicianWorkload, error) {
	bus := make([]statsbus.TechnicianWorkload, len(dbs))

	for i, db := range dbs {
		nme, err := name.Parse(db.Name)
		if err != nil {
			return nil, fmt.Errorf("parse name: %w", err)
		}

		bus[i] = statsbus.TechnicianWorkload{
			TechnicianID: db.TechnicianID,
			Name:         nme,
			OpenRequests: db.OpenRequests,
		}
	}

	return bus, nil
}
