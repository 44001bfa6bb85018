package statsbus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/statsbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsStore struct {
	counters statsbus.Counters
	statuses map[requeststatus.Status]int
	types    map[requesttype.RequestType]int
	workload []statsbus.TechnicianWorkload

	gotLimit int
}

func (s *fakeStatsStore) QueryCounters(_ context.Context, _ uuid.UUID) (statsbus.Counters, error) {
	return s.counters, nil
}

func (s *fakeStatsStore) QueryStatusDistribution(_ context.Context, _ uuid.UUID) (map[requeststatus.Status]int, error) {
	return s.statuses, nil
}

func (s *fakeStatsStore) QueryTypeDistribution(_ context.Context, _ uuid.UUID) (map[requesttype.RequestType]int, error) {
	return s.types, nil
}

func (s *fakeStatsStore) QueryTechnicianWorkload(_ context.Context, _ uuid.UUID, limit int) ([]statsbus.TechnicianWorkload, error) {
	s.gotLimit = limit
	if len(s.workload) > limit {
		return s.workload[:limit], nil
	}
	return s.workload, nil
}

func TestQueryZeroFillsDistributions(t *testing.T) {
	store := &fakeStatsStore{
		counters: statsbus.Counters{Equipment: 3, Teams: 1, Employees: 4, OpenRequests: 2},
		statuses: map[requeststatus.Status]int{requeststatus.New: 2},
		types:    map[requesttype.RequestType]int{},
	}

	stats, err := statsbus.NewCore(store).Query(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, stats.StatusDistribution, len(requeststatus.All()))
	counts := make(map[requeststatus.Status]int, len(stats.StatusDistribution))
	for _, sc := range stats.StatusDistribution {
		counts[sc.Status] = sc.Count
	}

	assert.Equal(t, 2, counts[requeststatus.New])
	assert.Equal(t, 0, counts[requeststatus.InProgress])
	assert.Equal(t, 0, counts[requeststatus.Repaired])
	assert.Equal(t, 0, counts[requeststatus.Scrap])

	require.Len(t, stats.TypeDistribution, len(requesttype.All()))
	for _, tc := range stats.TypeDistribution {
		assert.Equal(t, 0, tc.Count)
	}

	assert.Equal(t, 3, stats.Counters.Equipment)
}

func TestQueryWorkloadBound(t *testing.T) {
	var workload []statsbus.TechnicianWorkload
	for i := 0; i < 8; i++ {
		workload = append(workload, statsbus.TechnicianWorkload{
			TechnicianID: uuid.New(),
			Name:         name.MustParse("Técnico Exemplo"),
			OpenRequests: 8 - i,
		})
	}

	store := &fakeStatsStore{
		statuses: map[requeststatus.Status]int{},
		types:    map[requesttype.RequestType]int{},
		workload: workload,
	}

	stats, err := statsbus.NewCore(store).Query(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, statsbus.TopTechnicians, store.gotLimit)
	assert.Len(t, stats.TopTechnicians, statsbus.TopTechnicians)
}

func TestQueryKeepsIdleTechnicians(t *testing.T) {
	// The store reports every technician of the company, busy or not; the
	// zero-count entries must survive to the dashboard.
	workload := []statsbus.TechnicianWorkload{
		{TechnicianID: uuid.New(), Name: name.MustParse("Técnico Exemplo"), OpenRequests: 2},
		{TechnicianID: uuid.New(), Name: name.MustParse("Técnico Ocioso"), OpenRequests: 0},
	}

	store := &fakeStatsStore{
		statuses: map[requeststatus.Status]int{},
		types:    map[requesttype.RequestType]int{},
		workload: workload,
	}

	stats, err := statsbus.NewCore(store).Query(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, stats.TopTechnicians, 2)
	assert.Equal(t, 0, stats.TopTechnicians[1].OpenRequests)
}
