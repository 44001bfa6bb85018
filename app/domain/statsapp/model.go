package statsapp

import (
	"encoding/json"

	"github.com/jcpaschoal/manfix/business/domain/statsbus"
)

// Counters holds the headline counts of the dashboard.
type Counters struct {
	Equipment    int `json:"equipment"`
	Teams        int `json:"teams"`
	Employees    int `json:"employees"`
	OpenRequests int `json:"openRequests"`
}

// BucketCount is one bucket of a distribution.
type BucketCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TechnicianWorkload holds one technician's open assigned request count.
type TechnicianWorkload struct {
	TechnicianID string `json:"technicianId"`
	Name         string `json:"name"`
	OpenRequests int    `json:"openRequests"`
}

// Stats is the full dashboard payload for one company.
type Stats struct {
	Counters           Counters             `json:"counters"`
	StatusDistribution []BucketCount        `json:"statusDistribution"`
	TypeDistribution   []BucketCount        `json:"typeDistribution"`
	TopTechnicians     []TechnicianWorkload `json:"topTechnicians"`
}

// Encode implements the encoder interface.
func (app Stats) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppStats(stats statsbus.Stats) Stats {
	app := Stats{
		Counters: Counters{
			Equipment:    stats.Counters.Equipment,
			Teams:        stats.Counters.Teams,
			Employees:    stats.Counters.Employees,
			OpenRequests: stats.Counters.OpenRequests,
		},
		StatusDistribution: make([]BucketCount, len(stats.StatusDistribution)),
		TypeDistribution:   make([]BucketCount, len(stats.TypeDistribution)),
		TopTechnicians:     make([]TechnicianWorkload, len(stats.TopTechnicians)),
	}

	for i, sc := range stats.StatusDistribution {
		app.StatusDistribution[i] = BucketCount{
			Key:   sc.Status.String(),
			Count: sc.Count,
		}
	}

	for i, tc := range stats.TypeDistribution {
		app.TypeDistribution[i] = BucketCount{
			Key:   tc.Type.String(),
			Count: tc.Count,
		}
	}

	for i, tw := range stats.TopTechnicians {
		app.TopTechnicians[i] = TechnicianWorkload{
			TechnicianID: tw.TechnicianID.String(),
			Name:         tw.Name.String(),
			OpenRequests: tw.OpenRequests,
		}
	}

	return app
}
