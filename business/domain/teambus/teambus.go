// Package teambus provides business access to maintenance teams. A team is a
// named group of technician users scoped to one company.
package teambus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/jcpaschoal/manfix/foundation/otel"
)

var (
	ErrNotFound         = errors.New("team not found")
	ErrMemberNotFound   = errors.New("team member not found")
	ErrMemberNotTechnic = errors.New("team member is not a technician")
)

// Storer defines the behavior required to persist teams.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, team Team) error
	Update(ctx context.Context, team Team) error
	Delete(ctx context.Context, team Team) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Team, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, teamID uuid.UUID) (Team, error)
}

// Core manages the set of APIs for team access.
type Core struct {
	storer  Storer
	userBus *userbus.Core
}

// NewCore constructs a core for team api access.
func NewCore(storer Storer, userBus *userbus.Core) *Core {
	return &Core{
		storer:  storer,
		userBus: userBus,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	userBus, err := c.userBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer, userBus), nil
}

// Create adds a new team to the system after validating every member is an
// enabled technician of the same company.
func (c *Core) Create(ctx context.Context, nt NewTeam) (Team, error) {
	ctx, span := otel.AddSpan(ctx, "business.teambus.create")
	defer span.End()

	if err := c.validateMembers(ctx, nt.CompanyID, nt.MemberIDs); err != nil {
		return Team{}, err
	}

	now := time.Now()

	team := Team{
		ID:        uuid.New(),
		CompanyID: nt.CompanyID,
		Name:      nt.Name,
		MemberIDs: nt.MemberIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, team); err != nil {
		return Team{}, fmt.Errorf("create: %w", err)
	}

	return team, nil
}

// Update modifies a team's name and membership.
func (c *Core) Update(ctx context.Context, team Team, ut UpdateTeam) (Team, error) {
	ctx, span := otel.AddSpan(ctx, "business.teambus.update")
	defer span.End()

	if ut.Name != nil {
		team.Name = *ut.Name
	}

	if ut.MemberIDs != nil {
		if err := c.validateMembers(ctx, team.CompanyID, *ut.MemberIDs); err != nil {
			return Team{}, err
		}
		team.MemberIDs = *ut.MemberIDs
	}

	team.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, team); err != nil {
		return Team{}, fmt.Errorf("update: %w", err)
	}

	return team, nil
}

// Delete removes the specified team.
func (c *Core) Delete(ctx context.Context, team Team) error {
	ctx, span := otel.AddSpan(ctx, "business.teambus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, team); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing teams.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Team, error) {
	ctx, span := otel.AddSpan(ctx, "business.teambus.query")
	defer span.End()

	teams, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return teams, nil
}

// Count returns the total number of teams matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.teambus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the team identified by the given ID inside the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, teamID uuid.UUID) (Team, error) {
	ctx, span := otel.AddSpan(ctx, "business.teambus.querybyid")
	defer span.End()

	team, err := c.storer.QueryByID(ctx, companyID, teamID)
	if err != nil {
		return Team{}, fmt.Errorf("querybyid: teamID[%s]: %w", teamID, err)
	}

	return team, nil
}

func (c *Core) validateMembers(ctx context.Context, companyID uuid.UUID, memberIDs []uuid.UUID) error {
	if len(memberIDs) == 0 {
		return nil
	}

	users, err := c.userBus.QueryByIDs(ctx, memberIDs)
	if err != nil {
		return fmt.Errorf("querybyids: %w", err)
	}

	found := make(map[uuid.UUID]userbus.User, len(users))
	for _, usr := range users {
		found[usr.ID] = usr
	}

	for _, id := range memberIDs {
		usr, exists := found[id]
		if !exists || usr.CompanyID != companyID {
			return fmt.Errorf("member[%s]: %w", id, ErrMemberNotFound)
		}

		if !usr.Role.Equal(role.Technician) {
			return fmt.Errorf("member[%s]: %w", id, ErrMemberNotTechnic)
		}
	}

	return nil
}
