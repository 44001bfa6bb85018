package teambus_test

import (
	"context"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func (s *fakeTeamStore) Query(_ context.Context, filter teambus.QueryFilter, _ order.By, _ page.Page) ([]teambus.Team, error) {
	var teams []teambus.Team
	for _, team := range s.teams {
		if team.CompanyID == filter.CompanyID {
			teams = append(teams, team)
		}
	}
	return teams, nil
}

func (s *fakeTeamStore) Count(ctx context.Context, filter teambus.QueryFilter) (int, error) {
	teams, err := s.Query(ctx, filter, teambus.DefaultOrderBy, page.Page{})
	return len(teams), err
}

func (s *fakeTeamStore) QueryByID(_ context.Context, companyID uuid.UUID, teamID uuid.UUID) (teambus.Team, error) {
	team, ok := s.teams[teamID]
	if !ok || team.CompanyID != companyID {
		return teambus.Team{}, teambus.ErrNotFound
	}
	return team, nil
}

// fakeUserStore serves the member lookups.
type fakeUserStore struct {
	users map[uuid.UUID]userbus.User
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

func seedUser(store *fakeUserStore, companyID uuid.UUID, rle role.Role) uuid.UUID {
	id := uuid.New()
	store.users[id] = userbus.User{
		ID:        id,
		CompanyID: companyID,
		Name:      name.MustParse("João Pereira"),
		Email:     mail.Address{Address: id.String() + "@example.com"},
		Role:      rle,
		Enabled:   true,
	}
	return id
}

func newCore() (*teambus.Core, *fakeTeamStore, *fakeUserStore) {
	userStore := &fakeUserStore{users: make(map[uuid.UUID]userbus.User)}
	teamStore := newFakeTeamStore()
	return teambus.NewCore(teamStore, userbus.NewCore(userStore)), teamStore, userStore
}

func TestCreateValidatesMembers(t *testing.T) {
	core, _, userStore := newCore()
	ctx := context.Background()

	companyID := uuid.New()
	technicianID := seedUser(userStore, companyID, role.Technician)

	team, err := core.Create(ctx, teambus.NewTeam{
		CompanyID: companyID,
		Name:      name.MustParse("Equipe Elétrica"),
		MemberIDs: []uuid.UUID{technicianID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{technicianID}, team.MemberIDs)
}

func TestCreateRejectsUnknownMember(t *testing.T) {
	core, _, _ := newCore()
	ctx := context.Background()

	_, err := core.Create(ctx, teambus.NewTeam{
		CompanyID: uuid.New(),
		Name:      name.MustParse("Equipe Elétrica"),
		MemberIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, teambus.ErrMemberNotFound)
}

func TestCreateRejectsCrossCompanyMember(t *testing.T) {
	core, _, userStore := newCore()
	ctx := context.Background()

	otherCompany := uuid.New()
	technicianID := seedUser(userStore, otherCompany, role.Technician)

	_, err := core.Create(ctx, teambus.NewTeam{
		CompanyID: uuid.New(),
		Name:      name.MustParse("Equipe Elétrica"),
		MemberIDs: []uuid.UUID{technicianID},
	})
	assert.ErrorIs(t, err, teambus.ErrMemberNotFound)
}

func TestCreateRejectsNonTechnician(t *testing.T) {
	core, _, userStore := newCore()
	ctx := context.Background()

	companyID := uuid.New()
	managerID := seedUser(userStore, companyID, role.Manager)

	_, err := core.Create(ctx, teambus.NewTeam{
		CompanyID: companyID,
		Name:      name.MustParse("Equipe Elétrica"),
		MemberIDs: []uuid.UUID{managerID},
	})
	assert.ErrorIs(t, err, teambus.ErrMemberNotTechnic)
}

func TestUpdateMembership(t *testing.T) {
	core, _, userStore := newCore()
	ctx := context.Background()

	companyID := uuid.New()
	first := seedUser(userStore, companyID, role.Technician)
	second := seedUser(userStore, companyID, role.Technician)

	team, err := core.Create(ctx, teambus.NewTeam{
		CompanyID: companyID,
		Name:      name.MustParse("Equipe Elétrica"),
		MemberIDs: []uuid.UUID{first},
	})
	require.NoError(t, err)

	members := []uuid.UUID{first, second}
	team, err = core.Update(ctx, team, teambus.UpdateTeam{MemberIDs: &members})
	require.NoError(t, err)
	assert.Len(t, team.MemberIDs, 2)

	// An empty list clears the membership; nil leaves it alone.
	empty := []uuid.UUID{}
	team, err = core.Update(ctx, team, teambus.UpdateTeam{MemberIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, team.MemberIDs)

	newName := name.MustParse("Equipe Hidráulica")
	team, err = core.Update(ctx, team, teambus.UpdateTeam{Name: &newName})
	require.NoError(t, err)
	assert.Empty(t, team.MemberIDs)
	assert.Equal(t, "Equipe Hidráulica", team.Name.String())
}
