package requestbus_test

import (
	"context"
	"fmt"
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestStore keeps requests in memory.
type fakeRequestStore struct {
	requests map[uuid.UUID]requestbus.Request
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[uuid.UUID]requestbus.Request)}
}

func (s *fakeRequestStore) NewWithTx(tx sqldb.CommitRollbacker) (requestbus.Storer, error) {
	return s, nil
}

func (s *fakeRequestStore) Create(_ context.Context, req requestbus.Request) error {
	s.requests[req.ID] = req
	return nil
}

func (s *fakeRequestStore) Update(_ context.Context, req requestbus.Request) error {
	s.requests[req.ID] = req
	return nil
}

func (s *fakeRequestStore) Delete(_ context.Context, req requestbus.Request) error {
	delete(s.requests, req.ID)
	return nil
}

func (s *fakeRequestStore) Query(ctx context.Context, filter requestbus.QueryFilter, orderBy order.By, _ page.Page) ([]requestbus.Request, error) {
	return s.QueryAll(ctx, filter, orderBy)
}

func (s *fakeRequestStore) QueryAll(_ context.Context, filter requestbus.QueryFilter, _ order.By) ([]requestbus.Request, error) {
	var reqs []requestbus.Request
	for _, req := range s.requests {
		if req.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Type != nil && !req.Type.Equal(*filter.Type) {
			continue
		}
		if filter.StartScheduledDate != nil && (req.ScheduledDate == nil || req.ScheduledDate.Before(*filter.StartScheduledDate)) {
			continue
		}
		if filter.EndScheduledDate != nil && (req.ScheduledDate == nil || req.ScheduledDate.After(*filter.EndScheduledDate)) {
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (s *fakeRequestStore) Count(ctx context.Context, filter requestbus.QueryFilter) (int, error) {
	reqs, err := s.QueryAll(ctx, filter, requestbus.DefaultOrderBy)
	return len(reqs), err
}

func (s *fakeRequestStore) QueryByID(_ context.Context, companyID uuid.UUID, requestID uuid.UUID) (requestbus.Request, error) {
	req, ok := s.requests[requestID]
	if !ok || req.CompanyID != companyID {
		return requestbus.Request{}, requestbus.ErrNotFound
	}
	return req, nil
}

// fakeEquipmentStore keeps equipment in memory.
type fakeEquipmentStore struct {
	equipment map[uuid.UUID]equipmentbus.Equipment
}

func newFakeEquipmentStore() *fakeEquipmentStore {
	return &fakeEquipmentStore{equipment: make(map[uuid.UUID]equipmentbus.Equipment)}
}

func (s *fakeEquipmentStore) NewWithTx(tx sqldb.CommitRollbacker) (equipmentbus.Storer, error) {
	return s, nil
}

func (s *fakeEquipmentStore) Create(_ context.Context, eqp equipmentbus.Equipment) error {
	s.equipment[eqp.ID] = eqp
	return nil
}

func (s *fakeEquipmentStore) Update(_ context.Context, eqp equipmentbus.Equipment) error {
	s.equipment[eqp.ID] = eqp
	return nil
}

func (s *fakeEquipmentStore) Delete(_ context.Context, eqp equipmentbus.Equipment) error {
	delete(s.equipment, eqp.ID)
	return nil
}

func (s *fakeEquipmentStore) Query(_ context.Context, _ equipmentbus.QueryFilter, _ order.By, _ page.Page) ([]equipmentbus.Equipment, error) {
	return nil, nil
}

func (s *fakeEquipmentStore) Count(_ context.Context, _ equipmentbus.QueryFilter) (int, error) {
	return len(s.equipment), nil
}

func (s *fakeEquipmentStore) QueryByID(_ context.Context, companyID uuid.UUID, equipmentID uuid.UUID) (equipmentbus.Equipment, error) {
	eqp, ok := s.equipment[equipmentID]
	if !ok || eqp.CompanyID != companyID {
		return equipmentbus.Equipment{}, equipmentbus.ErrNotFound
	}
	return eqp, nil
}

// fakeTeamStore keeps teams in memory.
type fakeTeamStore struct {
	teams map[uuid.UUID]teambus.Team
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[uuid.UUID]teambus.Team)}
}

func (s *fakeTeamStore) NewWithTx(tx sqldb.CommitRollbacker) (teambus.Storer, error) {
	return s, nil
}

func (s *fakeTeamStore) Create(_ context.Context, team teambus.Team) error {
	s.teams[team.ID] = team
	return nil
}

func (s *fakeTeamStore) Update(_ context.Context, team teambus.Team) error {
	s.teams[team.ID] = team
	return nil
}

func (s *fakeTeamStore) Delete(_ context.Context, team teambus.Team) error {
	delete(s.teams, team.ID)
	return nil
}

func (s *fakeTeamStore) Query(_ context.Context, _ teambus.QueryFilter, _ order.By, _ page.Page) ([]teambus.Team, error) {
	return nil, nil
}

func (s *fakeTeamStore) Count(_ context.Context, _ teambus.QueryFilter) (int, error) {
	return len(s.teams), nil
}

func (s *fakeTeamStore) QueryByID(_ context.Context, companyID uuid.UUID, teamID uuid.UUID) (teambus.Team, error) {
	team, ok := s.teams[teamID]
	if !ok || team.CompanyID != companyID {
		return teambus.Team{}, teambus.ErrNotFound
	}
	return team, nil
}

// fakeUserStore serves the technician lookups.
type fakeUserStore struct {
	users map[uuid.UUID]userbus.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]userbus.User)}
}

func (s *fakeUserStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *fakeUserStore) Create(_ context.Context, usr userbus.User) error {
	s.users[usr.ID] = usr
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, usr userbus.User) error {
	s.users[usr.ID] = usr
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, usr userbus.User) error {
	delete(s.users, usr.ID)
	return nil
}

func (s *fakeUserStore) Query(_ context.Context, _ userbus.QueryFilter, _ order.By, _ page.Page) ([]userbus.User, error) {
	return nil, nil
}

func (s *fakeUserStore) Count(_ context.Context, _ userbus.QueryFilter) (int, error) {
	return len(s.users), nil
}

func (s *fakeUserStore) QueryByID(_ context.Context, userID uuid.UUID) (userbus.User, error) {
	usr, ok := s.users[userID]
	if !ok {
		return userbus.User{}, userbus.ErrNotFound
	}
	return usr, nil
}

func (s *fakeUserStore) QueryByIDs(_ context.Context, userIDs []uuid.UUID) ([]userbus.User, error) {
	var users []userbus.User
	for _, id := range userIDs {
		if usr, ok := s.users[id]; ok {
			users = append(users, usr)
		}
	}
	return users, nil
}

func (s *fakeUserStore) QueryByEmail(_ context.Context, email mail.Address) (userbus.User, error) {
	for _, usr := range s.users {
		if usr.Email.Address == email.Address {
			return usr, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

// =============================================================================

type testSeed struct {
	companyID    uuid.UUID
	teamID       uuid.UUID
	technicianID uuid.UUID
	equipment    equipmentbus.Equipment
	eqpStore     *fakeEquipmentStore
	reqStore     *fakeRequestStore
	teamStore    *fakeTeamStore
	userStore    *fakeUserStore
	core         *requestbus.Core
}

func (seed testSeed) seedTeam(companyID uuid.UUID) uuid.UUID {
	id := uuid.New()
	seed.teamStore.teams[id] = teambus.Team{
		ID:        id,
		CompanyID: companyID,
		Name:      name.MustParse("Equipe Elétrica"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return id
}

func (seed testSeed) seedEmployee(companyID uuid.UUID, rle role.Role) uuid.UUID {
	id := uuid.New()
	seed.userStore.users[id] = userbus.User{
		ID:        id,
		CompanyID: companyID,
		Name:      name.MustParse("Técnico Exemplo"),
		Email:     mail.Address{Address: fmt.Sprintf("%s@example.com", id)},
		Role:      rle,
		Enabled:   true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return id
}

func newTestSeed(t *testing.T) testSeed {
	t.Helper()

	companyID := uuid.New()

	teamStore := newFakeTeamStore()
	userStore := newFakeUserStore()

	seed := testSeed{
		companyID: companyID,
		teamStore: teamStore,
		userStore: userStore,
	}

	teamID := seed.seedTeam(companyID)
	technicianID := seed.seedEmployee(companyID, role.Technician)

	eqp := equipmentbus.Equipment{
		ID:                  uuid.New(),
		CompanyID:           companyID,
		Name:                name.MustParse("Compressor Industrial"),
		SerialNumber:        "CMP-0001",
		TeamID:              teamID,
		DefaultTechnicianID: &technicianID,
		IsScrapped:          false,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	eqpStore := newFakeEquipmentStore()
	eqpStore.equipment[eqp.ID] = eqp

	reqStore := newFakeRequestStore()

	userBus := userbus.NewCore(userStore)
	teamBus := teambus.NewCore(teamStore, userBus)
	equipmentBus := equipmentbus.NewCore(eqpStore, teamBus, userBus)

	seed.teamID = teamID
	seed.technicianID = technicianID
	seed.equipment = eqp
	seed.eqpStore = eqpStore
	seed.reqStore = reqStore
	seed.core = requestbus.NewCore(reqStore, equipmentBus, teamBus, userBus)

	return seed
}

func newRequest(seed testSeed) requestbus.NewRequest {
	return requestbus.NewRequest{
		CompanyID:   seed.companyID,
		EquipmentID: seed.equipment.ID,
		Type:        requesttype.Corrective,
		Subject:     name.MustParse("Vazamento de óleo"),
		Description: "Vazamento constante no flange traseiro",
		CreatedBy:   uuid.New(),
	}
}

func TestCreateDefaults(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	req, err := seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	assert.True(t, req.Status.Equal(requeststatus.New))
	require.NotNil(t, req.TeamID)
	assert.Equal(t, seed.teamID, *req.TeamID)
	require.NotNil(t, req.TechnicianID)
	assert.Equal(t, seed.technicianID, *req.TechnicianID)
}

func TestCreateKeepsExplicitAssignment(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	otherTeam := seed.seedTeam(seed.companyID)
	otherTech := seed.seedEmployee(seed.companyID, role.Technician)

	nr := newRequest(seed)
	nr.TeamID = &otherTeam
	nr.TechnicianID = &otherTech

	req, err := seed.core.Create(ctx, nr)
	require.NoError(t, err)

	assert.Equal(t, otherTeam, *req.TeamID)
	assert.Equal(t, otherTech, *req.TechnicianID)
}

func TestCreateRejectsUnknownTeam(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	unknown := uuid.New()
	nr := newRequest(seed)
	nr.TeamID = &unknown

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrTeamNotFound)
}

func TestCreateRejectsCrossCompanyTeam(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	foreignTeam := seed.seedTeam(uuid.New())
	nr := newRequest(seed)
	nr.TeamID = &foreignTeam

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrTeamNotFound)
}

func TestCreateRejectsNonTechnicianAssignee(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	manager := seed.seedEmployee(seed.companyID, role.Manager)
	nr := newRequest(seed)
	nr.TechnicianID = &manager

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrInvalidTechnician)
}

func TestCreateRejectsCrossCompanyTechnician(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	foreignTech := seed.seedEmployee(uuid.New(), role.Technician)
	nr := newRequest(seed)
	nr.TechnicianID = &foreignTech

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrInvalidTechnician)
}

func TestUpdateValidatesAssignment(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	req, err := seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	unknown := uuid.New()
	_, err = seed.core.Update(ctx, req, requestbus.UpdateRequest{TeamID: &unknown})
	assert.ErrorIs(t, err, requestbus.ErrTeamNotFound)

	regularUser := seed.seedEmployee(seed.companyID, role.User)
	_, err = seed.core.Update(ctx, req, requestbus.UpdateRequest{TechnicianID: &regularUser})
	assert.ErrorIs(t, err, requestbus.ErrInvalidTechnician)

	otherTech := seed.seedEmployee(seed.companyID, role.Technician)
	updReq, err := seed.core.Update(ctx, req, requestbus.UpdateRequest{TechnicianID: &otherTech})
	require.NoError(t, err)
	assert.Equal(t, otherTech, *updReq.TechnicianID)
}

func TestCreateRejectsScrappedEquipment(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	eqp := seed.equipment
	eqp.IsScrapped = true
	seed.eqpStore.equipment[eqp.ID] = eqp

	_, err := seed.core.Create(ctx, newRequest(seed))
	assert.ErrorIs(t, err, requestbus.ErrEquipmentScrapped)
}

func TestCreateUnknownEquipment(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	nr := newRequest(seed)
	nr.EquipmentID = uuid.New()

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrEquipmentNotFound)
}

func TestCreatePreventiveNeedsSchedule(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	nr := newRequest(seed)
	nr.Type = requesttype.Preventive

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrScheduleRequired)

	scheduled := time.Now().AddDate(0, 1, 0)
	nr.ScheduledDate = &scheduled

	_, err = seed.core.Create(ctx, nr)
	assert.NoError(t, err)
}

func TestCreateRepairedNeedsDuration(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	nr := newRequest(seed)
	nr.Status = requeststatus.Repaired

	_, err := seed.core.Create(ctx, nr)
	assert.ErrorIs(t, err, requestbus.ErrDurationRequired)

	hours := 2.5
	nr.DurationHours = &hours

	_, err = seed.core.Create(ctx, nr)
	assert.NoError(t, err)
}

func TestUpdateMergedValidation(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	hours := 1.5
	nr := newRequest(seed)
	nr.DurationHours = &hours

	req, err := seed.core.Create(ctx, nr)
	require.NoError(t, err)

	// The stored duration satisfies the REPAIRED rule on a partial update.
	repaired := requeststatus.Repaired
	updReq, err := seed.core.Update(ctx, req, requestbus.UpdateRequest{Status: &repaired})
	require.NoError(t, err)
	assert.True(t, updReq.Status.Equal(requeststatus.Repaired))

	// Without any stored duration the same update fails.
	req2, err := seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	_, err = seed.core.Update(ctx, req2, requestbus.UpdateRequest{Status: &repaired})
	assert.ErrorIs(t, err, requestbus.ErrDurationRequired)
}

func TestUpdatePreventiveMergedValidation(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	req, err := seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	preventive := requesttype.Preventive
	_, err = seed.core.Update(ctx, req, requestbus.UpdateRequest{Type: &preventive})
	assert.ErrorIs(t, err, requestbus.ErrScheduleRequired)

	scheduled := time.Now().AddDate(0, 0, 7)
	_, err = seed.core.Update(ctx, req, requestbus.UpdateRequest{Type: &preventive, ScheduledDate: &scheduled})
	assert.NoError(t, err)
}

func TestScrapRetiresEquipment(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	req, err := seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	scrap := requeststatus.Scrap
	_, err = seed.core.Update(ctx, req, requestbus.UpdateRequest{Status: &scrap})
	require.NoError(t, err)

	eqp := seed.eqpStore.equipment[seed.equipment.ID]
	assert.True(t, eqp.IsScrapped)

	// Scrapping again is a no-op, not an error.
	firstUpdate := eqp.UpdatedAt

	req2 := req
	req2.Status = requeststatus.Scrap
	_, err = seed.core.Update(ctx, req2, requestbus.UpdateRequest{Status: &scrap})
	require.NoError(t, err)

	eqp = seed.eqpStore.equipment[seed.equipment.ID]
	assert.Equal(t, firstUpdate, eqp.UpdatedAt)
}

func TestCreateScrapStatusRetiresEquipment(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	nr := newRequest(seed)
	nr.Status = requeststatus.Scrap

	_, err := seed.core.Create(ctx, nr)
	require.NoError(t, err)

	eqp := seed.eqpStore.equipment[seed.equipment.ID]
	assert.True(t, eqp.IsScrapped)
}

func TestKanbanPartition(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	_, err := seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	hours := 3.0
	nr := newRequest(seed)
	nr.Status = requeststatus.Repaired
	nr.DurationHours = &hours
	_, err = seed.core.Create(ctx, nr)
	require.NoError(t, err)

	columns, err := seed.core.Kanban(ctx, seed.companyID)
	require.NoError(t, err)
	require.Len(t, columns, len(requeststatus.All()))

	byStatus := make(map[requeststatus.Status]requestbus.KanbanColumn, len(columns))
	total := 0
	for _, col := range columns {
		require.NotNil(t, col.Requests)
		byStatus[col.Status] = col
		total += len(col.Requests)
	}

	assert.Equal(t, 2, total)
	assert.Len(t, byStatus[requeststatus.New].Requests, 1)
	assert.Len(t, byStatus[requeststatus.Repaired].Requests, 1)
	assert.Empty(t, byStatus[requeststatus.InProgress].Requests)
	assert.Empty(t, byStatus[requeststatus.Scrap].Requests)
}

func TestCalendarFiltersPreventive(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	scheduled := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	nr := newRequest(seed)
	nr.Type = requesttype.Preventive
	nr.ScheduledDate = &scheduled
	_, err := seed.core.Create(ctx, nr)
	require.NoError(t, err)

	_, err = seed.core.Create(ctx, newRequest(seed))
	require.NoError(t, err)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	reqs, err := seed.core.Calendar(ctx, seed.companyID, &start, &end)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Type.Equal(requesttype.Preventive))

	after := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	reqs, err = seed.core.Calendar(ctx, seed.companyID, &after, nil)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestCalendarUnboundedRange(t *testing.T) {
	seed := newTestSeed(t)
	ctx := context.Background()

	for _, scheduled := range []time.Time{
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 11, 20, 8, 0, 0, 0, time.UTC),
	} {
		nr := newRequest(seed)
		nr.Type = requesttype.Preventive
		sd := scheduled
		nr.ScheduledDate = &sd
		_, err := seed.core.Create(ctx, nr)
		require.NoError(t, err)
	}

	reqs, err := seed.core.Calendar(ctx, seed.companyID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, reqs, 2)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	reqs, err = seed.core.Calendar(ctx, seed.companyID, &start, nil)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	reqs, err = seed.core.Calendar(ctx, seed.companyID, nil, &end)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}
