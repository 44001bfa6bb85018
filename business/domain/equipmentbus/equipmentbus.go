// Package equipmentbus provides business access to the equipment registry.
// Every asset belongs to one company and carries a default maintenance team
// plus an optional default technician, both copied onto new requests.
package equipmentbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/jcpaschoal/manfix/foundation/otel"
)

var (
	ErrNotFound          = errors.New("equipment not found")
	ErrUniqueSerial      = errors.New("serial number is not unique")
	ErrTeamNotFound      = errors.New("maintenance team not found")
	ErrInvalidTechnician = errors.New("default technician is not a technician")
)

// Storer defines the behavior required to persist equipment.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, eqp Equipment) error
	Update(ctx context.Context, eqp Equipment) error
	Delete(ctx context.Context, eqp Equipment) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Equipment, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, equipmentID uuid.UUID) (Equipment, error)
}

// Core manages the set of APIs for equipment access.
type Core struct {
	storer  Storer
	teamBus *teambus.Core
	userBus *userbus.Core
}

// NewCore constructs a core for equipment api access.
func NewCore(storer Storer, teamBus *teambus.Core, userBus *userbus.Core) *Core {
	return &Core{
		storer:  storer,
		teamBus: teamBus,
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

	teamBus, err := c.teamBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	userBus, err := c.userBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer, teamBus, userBus), nil
}

// Create adds a new asset to the registry.
func (c *Core) Create(ctx context.Context, ne NewEquipment) (Equipment, error) {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.create")
	defer span.End()

	if err := c.validateDefaults(ctx, ne.CompanyID, ne.TeamID, ne.DefaultTechnicianID); err != nil {
		return Equipment{}, err
	}

	now := time.Now()

	eqp := Equipment{
		ID:                  uuid.New(),
		CompanyID:           ne.CompanyID,
		Name:                ne.Name,
		SerialNumber:        ne.SerialNumber,
		Department:          ne.Department,
		Location:            ne.Location,
		AssignedEmployee:    ne.AssignedEmployee,
		PurchaseDate:        ne.PurchaseDate,
		WarrantyExpiryDate:  ne.WarrantyExpiryDate,
		TeamID:              ne.TeamID,
		DefaultTechnicianID: ne.DefaultTechnicianID,
		IsScrapped:          false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := c.storer.Create(ctx, eqp); err != nil {
		return Equipment{}, fmt.Errorf("create: %w", err)
	}

	return eqp, nil
}

// Update modifies an asset record. IsScrapped is not updatable here, it only
// flips through MarkScrapped.
func (c *Core) Update(ctx context.Context, eqp Equipment, ue UpdateEquipment) (Equipment, error) {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.update")
	defer span.End()

	if ue.Name != nil {
		eqp.Name = *ue.Name
	}

	if ue.SerialNumber != nil {
		eqp.SerialNumber = *ue.SerialNumber
	}

	if ue.Department != nil {
		eqp.Department = *ue.Department
	}

	if ue.Location != nil {
		eqp.Location = *ue.Location
	}

	if ue.AssignedEmployee != nil {
		eqp.AssignedEmployee = *ue.AssignedEmployee
	}

	if ue.PurchaseDate != nil {
		eqp.PurchaseDate = ue.PurchaseDate
	}

	if ue.WarrantyExpiryDate != nil {
		eqp.WarrantyExpiryDate = ue.WarrantyExpiryDate
	}

	if ue.TeamID != nil {
		eqp.TeamID = *ue.TeamID
	}

	if ue.DefaultTechnicianID != nil {
		eqp.DefaultTechnicianID = ue.DefaultTechnicianID
	}

	if err := c.validateDefaults(ctx, eqp.CompanyID, eqp.TeamID, eqp.DefaultTechnicianID); err != nil {
		return Equipment{}, err
	}

	eqp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, eqp); err != nil {
		return Equipment{}, fmt.Errorf("update: %w", err)
	}

	return eqp, nil
}

// Delete removes the specified asset.
func (c *Core) Delete(ctx context.Context, eqp Equipment) error {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, eqp); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing assets.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Equipment, error) {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.query")
	defer span.End()

	eqps, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return eqps, nil
}

// Count returns the total number of assets matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the asset identified by the given ID inside the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, equipmentID uuid.UUID) (Equipment, error) {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.querybyid")
	defer span.End()

	eqp, err := c.storer.QueryByID(ctx, companyID, equipmentID)
	if err != nil {
		return Equipment{}, fmt.Errorf("querybyid: equipmentID[%s]: %w", equipmentID, err)
	}

	return eqp, nil
}

// MarkScrapped retires the asset permanently. The call is idempotent, an
// already scrapped asset is left untouched.
func (c *Core) MarkScrapped(ctx context.Context, eqp Equipment) (Equipment, error) {
	ctx, span := otel.AddSpan(ctx, "business.equipmentbus.markscrapped")
	defer span.End()

	if eqp.IsScrapped {
		return eqp, nil
	}

	eqp.IsScrapped = true
	eqp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, eqp); err != nil {
		return Equipment{}, fmt.Errorf("update: %w", err)
	}

	return eqp, nil
}

func (c *Core) validateDefaults(ctx context.Context, companyID uuid.UUID, teamID uuid.UUID, technicianID *uuid.UUID) error {
	if _, err := c.teamBus.QueryByID(ctx, companyID, teamID); err != nil {
		if errors.Is(err, teambus.ErrNotFound) {
			return fmt.Errorf("team[%s]: %w", teamID, ErrTeamNotFound)
		}
		return fmt.Errorf("querybyid: %w", err)
	}

	if technicianID == nil {
		return nil
	}

	usr, err := c.userBus.QueryByID(ctx, *technicianID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return fmt.Errorf("technician[%s]: %w", *technicianID, ErrInvalidTechnician)
		}
		return fmt.Errorf("querybyid: %w", err)
	}

	if usr.CompanyID != companyID || !usr.Role.Equal(role.Technician) {
		return fmt.Errorf("technician[%s]: %w", *technicianID, ErrInvalidTechnician)
	}

	return nil
}
