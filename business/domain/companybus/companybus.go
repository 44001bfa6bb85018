// Package companybus provides business access to company domain. A company
// is the tenant boundary: every other entity in the system belongs to
// exactly one company.
package companybus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/otel"
)

var (
	ErrNotFound   = errors.New("company not found")
	ErrUniqueName = errors.New("company name is not unique")
)

// Storer defines the behavior required to persist companies.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, c Company) error
	Update(ctx context.Context, c Company) error
	QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error)
	QueryByName(ctx context.Context, name string) (Company, error)
}

// Core manages the set of APIs for company access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for company api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create adds a new company to the system.
func (c *Core) Create(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.create")
	defer span.End()

	now := time.Now()

	cmp := Company{
		ID:        uuid.New(),
		Name:      nc.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("create: %w", err)
	}

	return cmp, nil
}

// GetOrCreate returns the company with the given name, creating it when it
// does not exist yet. Registration is idempotent per company name: the
// second registration under the same name joins the existing tenant.
func (c *Core) GetOrCreate(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.getorcreate")
	defer span.End()

	cmp, err := c.storer.QueryByName(ctx, nc.Name.String())
	if err == nil {
		return cmp, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Company{}, fmt.Errorf("query by name: %w", err)
	}

	cmp, err = c.Create(ctx, nc)
	if err != nil {

		// A concurrent registration may have taken the name between the
		// lookup and the insert. Re-read under that race.
		if errors.Is(err, ErrUniqueName) {
			return c.storer.QueryByName(ctx, nc.Name.String())
		}
		return Company{}, err
	}

	return cmp, nil
}

// Update modifies data about a company.
func (c *Core) Update(ctx context.Context, cmp Company, uc UpdateCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.update")
	defer span.End()

	if uc.Name != nil {
		cmp.Name = *uc.Name
	}

	cmp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return cmp, nil
}

// QueryByID finds the company by the specified ID.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.querybyid")
	defer span.End()

	cmp, err := c.storer.QueryByID(ctx, companyID)
	if err != nil {
		return Company{}, fmt.Errorf("query: companyID[%s]: %w", companyID, err)
	}

	return cmp, nil
}
