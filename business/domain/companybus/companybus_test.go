package companybus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompanyStore keeps companies in memory and enforces the unique name.
type fakeCompanyStore struct {
	companies map[uuid.UUID]companybus.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[uuid.UUID]companybus.Company)}
}

func (s *fakeCompanyStore) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
	return s, nil
}

func (s *fakeCompanyStore) Create(_ context.Context, cmp companybus.Company) error {
	for _, existing := range s.companies {
		if existing.Name.Equal(cmp.Name) {
			return companybus.ErrUniqueName
		}
	}
	s.companies[cmp.ID] = cmp
	return nil
}

func (s *fakeCompanyStore) Update(_ context.Context, cmp companybus.Company) error {
	for _, existing := range s.companies {
		if existing.ID != cmp.ID && existing.Name.Equal(cmp.Name) {
			return companybus.ErrUniqueName
		}
	}
	s.companies[cmp.ID] = cmp
	return nil
}

func (s *fakeCompanyStore) QueryByID(_ context.Context, companyID uuid.UUID) (companybus.Company, error) {
	cmp, ok := s.companies[companyID]
	if !ok {
		return companybus.Company{}, companybus.ErrNotFound
	}
	return cmp, nil
}

func (s *fakeCompanyStore) QueryByName(_ context.Context, companyName string) (companybus.Company, error) {
	for _, cmp := range s.companies {
		if cmp.Name.String() == companyName {
			return cmp, nil
		}
	}
	return companybus.Company{}, companybus.ErrNotFound
}

// =============================================================================

func TestGetOrCreateIsIdempotent(t *testing.T) {
	store := newFakeCompanyStore()
	core := companybus.NewCore(store)
	ctx := context.Background()

	nc := companybus.NewCompany{Name: name.MustParse("Oficina Central")}

	first, err := core.GetOrCreate(ctx, nc)
	require.NoError(t, err)

	second, err := core.GetOrCreate(ctx, nc)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.companies, 1)
}

func TestGetOrCreateDistinctNames(t *testing.T) {
	core := companybus.NewCore(newFakeCompanyStore())
	ctx := context.Background()

	first, err := core.GetOrCreate(ctx, companybus.NewCompany{Name: name.MustParse("Oficina Central")})
	require.NoError(t, err)

	second, err := core.GetOrCreate(ctx, companybus.NewCompany{Name: name.MustParse("Oficina Norte")})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateName(t *testing.T) {
	core := companybus.NewCore(newFakeCompanyStore())
	ctx := context.Background()

	cmp, err := core.Create(ctx, companybus.NewCompany{Name: name.MustParse("Oficina Central")})
	require.NoError(t, err)

	newName := name.MustParse("Oficina Central Ltda")
	cmp, err = core.Update(ctx, cmp, companybus.UpdateCompany{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Oficina Central Ltda", cmp.Name.String())

	got, err := core.QueryByID(ctx, cmp.ID)
	require.NoError(t, err)
	assert.Equal(t, cmp.Name, got.Name)
}
