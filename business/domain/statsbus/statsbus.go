// Package statsbus provides read-only rollups over a company's data for the
// dashboard. Everything is recomputed per call, nothing is cached.
package statsbus

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
	"github.com/jcpaschoal/manfix/foundation/otel"
)

// TopTechnicians bounds the workload list.
const TopTechnicians = 5

// Storer defines the behavior required to compute dashboard aggregates.
type Storer interface {
	QueryCounters(ctx context.Context, companyID uuid.UUID) (Counters, error)
	QueryStatusDistribution(ctx context.Context, companyID uuid.UUID) (map[requeststatus.Status]int, error)
	QueryTypeDistribution(ctx context.Context, companyID uuid.UUID) (map[requesttype.RequestType]int, error)
	QueryTechnicianWorkload(ctx context.Context, companyID uuid.UUID, limit int) ([]TechnicianWorkload, error)
}

// Core manages the set of APIs for dashboard statistics access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for stats api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// Query computes the full dashboard for the company. Distributions always
// carry every status and type, missing buckets report zero.
func (c *Core) Query(ctx context.Context, companyID uuid.UUID) (Stats, error) {
	ctx, span := otel.AddSpan(ctx, "business.statsbus.query")
	defer span.End()

	counters, err := c.storer.QueryCounters(ctx, companyID)
	if err != nil {
		return Stats{}, fmt.Errorf("querycounters: %w", err)
	}

	statusCounts, err := c.storer.QueryStatusDistribution(ctx, companyID)
	if err != nil {
		return Stats{}, fmt.Errorf("querystatusdistribution: %w", err)
	}

	statusDist := make([]StatusCount, 0, 4)
	for _, status := range requeststatus.All() {
		statusDist = append(statusDist, StatusCount{
			Status: status,
			Count:  statusCounts[status],
		})
	}

	typeCounts, err := c.storer.QueryTypeDistribution(ctx, companyID)
	if err != nil {
		return Stats{}, fmt.Errorf("querytypedistribution: %w", err)
	}

	typeDist := make([]TypeCount, 0, 2)
	for _, reqType := range requesttype.All() {
		typeDist = append(typeDist, TypeCount{
			Type:  reqType,
			Count: typeCounts[reqType],
		})
	}

	workload, err := c.storer.QueryTechnicianWorkload(ctx, companyID, TopTechnicians)
	if err != nil {
		return Stats{}, fmt.Errorf("querytechnicianworkload: %w", err)
	}

	stats := Stats{
		Counters:           counters,
		StatusDistribution: statusDist,
		TypeDistribution:   typeDist,
		TopTechnicians:     workload,
	}

	return stats, nil
}
