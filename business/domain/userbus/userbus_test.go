package userbus_test

import (
	"context"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/password"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore keeps users in memory and enforces the unique email.
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
	for _, existing := range s.users {
		if existing.Email.Address == usr.Email.Address {
			return userbus.ErrUniqueEmail
		}
	}
	s.users[usr.ID] = usr
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, usr userbus.User) error {
	for _, existing := range s.users {
		if existing.ID != usr.ID && existing.Email.Address == usr.Email.Address {
			return userbus.ErrUniqueEmail
		}
	}
	s.users[usr.ID] = usr
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, usr userbus.User) error {
	delete(s.users, usr.ID)
	return nil
}

func (s *fakeUserStore) Query(_ context.Context, filter userbus.QueryFilter, _ order.By, _ page.Page) ([]userbus.User, error) {
	var users []userbus.User
	for _, usr := range s.users {
		if usr.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Role != nil && !usr.Role.Equal(*filter.Role) {
			continue
		}
		users = append(users, usr)
	}
	return users, nil
}

func (s *fakeUserStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	users, err := s.Query(ctx, filter, userbus.DefaultOrderBy, page.Page{})
	return len(users), err
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

func newUser(companyID uuid.UUID, email string, rle role.Role) userbus.NewUser {
	return userbus.NewUser{
		CompanyID: companyID,
		Name:      name.MustParse("Maria Silva"),
		Email:     mail.Address{Address: email},
		Role:      rle,
		Password:  password.MustParse("gophers123"),
	}
}

func TestCreateHashesPassword(t *testing.T) {
	core := userbus.NewCore(newFakeUserStore())
	ctx := context.Background()

	usr, err := core.Create(ctx, newUser(uuid.New(), "maria@example.com", role.Technician))
	require.NoError(t, err)

	assert.True(t, usr.Enabled)
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NotEqual(t, "gophers123", string(usr.PasswordHash))
}

func TestCreateUniqueEmail(t *testing.T) {
	core := userbus.NewCore(newFakeUserStore())
	ctx := context.Background()

	companyID := uuid.New()

	_, err := core.Create(ctx, newUser(companyID, "maria@example.com", role.Technician))
	require.NoError(t, err)

	_, err = core.Create(ctx, newUser(companyID, "maria@example.com", role.User))
	assert.ErrorIs(t, err, userbus.ErrUniqueEmail)
}

func TestAuthenticate(t *testing.T) {
	core := userbus.NewCore(newFakeUserStore())
	ctx := context.Background()

	nu := newUser(uuid.New(), "maria@example.com", role.Manager)
	created, err := core.Create(ctx, nu)
	require.NoError(t, err)

	usr, err := core.Authenticate(ctx, nu.Email, "gophers123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, usr.ID)

	_, err = core.Authenticate(ctx, nu.Email, "wrong-password")
	assert.ErrorIs(t, err, userbus.ErrAuthenticationFailure)

	_, err = core.Authenticate(ctx, mail.Address{Address: "nobody@example.com"}, "gophers123")
	assert.ErrorIs(t, err, userbus.ErrNotFound)
}

func TestToggleEnabled(t *testing.T) {
	core := userbus.NewCore(newFakeUserStore())
	ctx := context.Background()

	usr, err := core.Create(ctx, newUser(uuid.New(), "maria@example.com", role.User))
	require.NoError(t, err)
	require.True(t, usr.Enabled)

	usr, err = core.ToggleEnabled(ctx, usr)
	require.NoError(t, err)
	assert.False(t, usr.Enabled)

	usr, err = core.ToggleEnabled(ctx, usr)
	require.NoError(t, err)
	assert.True(t, usr.Enabled)
}

func TestUpdatePassword(t *testing.T) {
	core := userbus.NewCore(newFakeUserStore())
	ctx := context.Background()

	nu := newUser(uuid.New(), "maria@example.com", role.User)
	usr, err := core.Create(ctx, nu)
	require.NoError(t, err)

	newPass := password.MustParse("changed-secret")
	usr, err = core.Update(ctx, usr, userbus.UpdateUser{Password: &newPass})
	require.NoError(t, err)

	_, err = core.Authenticate(ctx, nu.Email, "changed-secret")
	assert.NoError(t, err)

	_, err = core.Authenticate(ctx, nu.Email, "gophers123")
	assert.ErrorIs(t, err, userbus.ErrAuthenticationFailure)
}
