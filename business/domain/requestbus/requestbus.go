// Package requestbus provides business access to maintenance requests. This
// is where the workflow rules live: creation against scrapped assets is
// rejected, preventive work needs a schedule, repaired work needs a duration,
// and a request reaching SCRAP retires its asset inside the same unit of work.
package requestbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/jcpaschoal/manfix/foundation/otel"
)

var (
	ErrNotFound          = errors.New("maintenance request not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrEquipmentScrapped = errors.New("equipment is scrapped")
	ErrScheduleRequired  = errors.New("preventive request requires a scheduled date")
	ErrDurationRequired  = errors.New("repaired request requires duration hours")
	ErrTeamNotFound      = errors.New("maintenance team not found")
	ErrInvalidTechnician = errors.New("assigned technician is not a technician")
)

// Storer defines the behavior required to persist maintenance requests.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, req Request) error
	Delete(ctx context.Context, req Request) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Request, error)
	QueryAll(ctx context.Context, filter QueryFilter, orderBy order.By) ([]Request, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, requestID uuid.UUID) (Request, error)
}

// Core manages the set of APIs for maintenance request access.
type Core struct {
	storer       Storer
	equipmentBus *equipmentbus.Core
	teamBus      *teambus.Core
	userBus      *userbus.Core
}

// NewCore constructs a core for maintenance request api access.
func NewCore(storer Storer, equipmentBus *equipmentbus.Core, teamBus *teambus.Core, userBus *userbus.Core) *Core {
	return &Core{
		storer:       storer,
		equipmentBus: equipmentBus,
		teamBus:      teamBus,
		userBus:      userBus,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	equipmentBus, err := c.equipmentBus.NewWithTx(tx)
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

	return NewCore(storer, equipmentBus, teamBus, userBus), nil
}

// Create opens a new maintenance request. Team and technician default to the
// asset's current values when omitted. Callers are expected to run this under
// a transaction so the scrap side effect commits with the request.
func (c *Core) Create(ctx context.Context, nr NewRequest) (Request, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.create")
	defer span.End()

	eqp, err := c.equipmentBus.QueryByID(ctx, nr.CompanyID, nr.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentbus.ErrNotFound) {
			return Request{}, ErrEquipmentNotFound
		}
		return Request{}, fmt.Errorf("querybyid: %w", err)
	}

	if eqp.IsScrapped {
		return Request{}, ErrEquipmentScrapped
	}

	status := nr.Status
	if status == (requeststatus.Status{}) {
		status = requeststatus.New
	}

	if nr.Type.Equal(requesttype.Preventive) && nr.ScheduledDate == nil {
		return Request{}, ErrScheduleRequired
	}

	if status.Equal(requeststatus.Repaired) && nr.DurationHours == nil {
		return Request{}, ErrDurationRequired
	}

	// Only caller-supplied assignments need checking. The asset's own
	// defaults were validated when the asset was written.
	if err := c.validateAssignment(ctx, nr.CompanyID, nr.TeamID, nr.TechnicianID); err != nil {
		return Request{}, err
	}

	teamID := nr.TeamID
	if teamID == nil {
		id := eqp.TeamID
		teamID = &id
	}

	technicianID := nr.TechnicianID
	if technicianID == nil {
		technicianID = eqp.DefaultTechnicianID
	}

	now := time.Now()

	req := Request{
		ID:            uuid.New(),
		CompanyID:     nr.CompanyID,
		EquipmentID:   nr.EquipmentID,
		TeamID:        teamID,
		TechnicianID:  technicianID,
		Type:          nr.Type,
		Status:        status,
		Subject:       nr.Subject,
		Description:   nr.Description,
		ScheduledDate: nr.ScheduledDate,
		DurationHours: nr.DurationHours,
		CreatedBy:     nr.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storer.Create(ctx, req); err != nil {
		return Request{}, fmt.Errorf("create: %w", err)
	}

	if err := c.applyScrap(ctx, req, eqp); err != nil {
		return Request{}, err
	}

	return req, nil
}

// Update applies a partial update to a request. The preventive/repaired rules
// are checked against the merged result, so a field already present on the
// stored request satisfies them without being resent.
func (c *Core) Update(ctx context.Context, req Request, ur UpdateRequest) (Request, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.update")
	defer span.End()

	if err := c.validateAssignment(ctx, req.CompanyID, ur.TeamID, ur.TechnicianID); err != nil {
		return Request{}, err
	}

	if ur.TeamID != nil {
		req.TeamID = ur.TeamID
	}

	if ur.TechnicianID != nil {
		req.TechnicianID = ur.TechnicianID
	}

	if ur.Type != nil {
		req.Type = *ur.Type
	}

	if ur.Status != nil {
		req.Status = *ur.Status
	}

	if ur.Subject != nil {
		req.Subject = *ur.Subject
	}

	if ur.Description != nil {
		req.Description = *ur.Description
	}

	if ur.ScheduledDate != nil {
		req.ScheduledDate = ur.ScheduledDate
	}

	if ur.DurationHours != nil {
		req.DurationHours = ur.DurationHours
	}

	if req.Type.Equal(requesttype.Preventive) && req.ScheduledDate == nil {
		return Request{}, ErrScheduleRequired
	}

	if req.Status.Equal(requeststatus.Repaired) && req.DurationHours == nil {
		return Request{}, ErrDurationRequired
	}

	req.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, req); err != nil {
		return Request{}, fmt.Errorf("update: %w", err)
	}

	if req.Status.Equal(requeststatus.Scrap) {
		eqp, err := c.equipmentBus.QueryByID(ctx, req.CompanyID, req.EquipmentID)
		if err != nil {
			return Request{}, fmt.Errorf("querybyid: %w", err)
		}

		if err := c.applyScrap(ctx, req, eqp); err != nil {
			return Request{}, err
		}
	}

	return req, nil
}

// Delete removes the specified request.
func (c *Core) Delete(ctx context.Context, req Request) error {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, req); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a page of requests.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Request, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.query")
	defer span.End()

	reqs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return reqs, nil
}

// Count returns the total number of requests matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the request identified by the given ID inside the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, requestID uuid.UUID) (Request, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.querybyid")
	defer span.End()

	req, err := c.storer.QueryByID(ctx, companyID, requestID)
	if err != nil {
		return Request{}, fmt.Errorf("querybyid: requestID[%s]: %w", requestID, err)
	}

	return req, nil
}

// Kanban partitions every request of the company into the four status
// columns. Each request lands in exactly one column.
func (c *Core) Kanban(ctx context.Context, companyID uuid.UUID) ([]KanbanColumn, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.kanban")
	defer span.End()

	reqs, err := c.storer.QueryAll(ctx, QueryFilter{CompanyID: companyID}, DefaultOrderBy)
	if err != nil {
		return nil, fmt.Errorf("queryall: %w", err)
	}

	buckets := make(map[requeststatus.Status][]Request, 4)
	for _, req := range reqs {
		buckets[req.Status] = append(buckets[req.Status], req)
	}

	columns := make([]KanbanColumn, 0, 4)
	for _, status := range requeststatus.All() {
		reqs := buckets[status]
		if reqs == nil {
			reqs = []Request{}
		}
		columns = append(columns, KanbanColumn{
			Status:   status,
			Requests: reqs,
		})
	}

	return columns, nil
}

// Calendar returns the preventive requests scheduled inside [start, end].
// A nil bound leaves that side of the range open.
func (c *Core) Calendar(ctx context.Context, companyID uuid.UUID, start *time.Time, end *time.Time) ([]Request, error) {
	ctx, span := otel.AddSpan(ctx, "business.requestbus.calendar")
	defer span.End()

	preventive := requesttype.Preventive
	filter := QueryFilter{
		CompanyID:          companyID,
		Type:               &preventive,
		StartScheduledDate: start,
		EndScheduledDate:   end,
	}

	reqs, err := c.storer.QueryAll(ctx, filter, order.NewBy(OrderByScheduledDate, order.ASC))
	if err != nil {
		return nil, fmt.Errorf("queryall: %w", err)
	}

	return reqs, nil
}

func (c *Core) validateAssignment(ctx context.Context, companyID uuid.UUID, teamID *uuid.UUID, technicianID *uuid.UUID) error {
	if teamID != nil {
		if _, err := c.teamBus.QueryByID(ctx, companyID, *teamID); err != nil {
			if errors.Is(err, teambus.ErrNotFound) {
				return fmt.Errorf("team[%s]: %w", *teamID, ErrTeamNotFound)
			}
			return fmt.Errorf("querybyid: %w", err)
		}
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

func (c *Core) applyScrap(ctx context.Context, req Request, eqp equipmentbus.Equipment) error {
	if !req.Status.Equal(requeststatus.Scrap) {
		return nil
	}

	if _, err := c.equipmentBus.MarkScrapped(ctx, eqp); err != nil {
		return fmt.Errorf("markscrapped: %w", err)
	}

	return nil
}
