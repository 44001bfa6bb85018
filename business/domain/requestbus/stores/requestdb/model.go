package requestdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
)

type requestDB struct {
	ID            uuid.UUID       `db:"request_id"`
	CompanyID     uuid.UUID       `db:"company_id"`
	EquipmentID   uuid.UUID       `db:"equipment_id"`
	TeamID        sql.NullString  `db:"team_id"`
	TechnicianID  sql.NullString  `db:"technician_id"`
	Type          string          `db:"request_type"`
	Status        string          `db:"status"`
	Subject       string          `db:"subject"`
	Description   string          `db:"description"`
	ScheduledDate sql.NullTime    `db:"scheduled_date"`
	DurationHours sql.NullFloat64 `db:"duration_hours"`
	CreatedBy     uuid.UUID       `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func toDBRequest(bus requestbus.Request) requestDB {
	db := requestDB{
		ID:          bus.ID,
		CompanyID:   bus.CompanyID,
		EquipmentID: bus.EquipmentID,
		Type:        bus.Type.String(),
		Status:      bus.Status.String(),
		Subject:     bus.Subject.String(),
		Description: bus.Description,
		CreatedBy:   bus.CreatedBy,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.TeamID != nil {
		db.TeamID = sql.NullString{String: bus.TeamID.String(), Valid: true}
	}

	if bus.TechnicianID != nil {
		db.TechnicianID = sql.NullString{String: bus.TechnicianID.String(), Valid: true}
	}

	if bus.ScheduledDate != nil {
		db.ScheduledDate = sql.NullTime{Time: bus.ScheduledDate.UTC(), Valid: true}
	}

	if bus.DurationHours != nil {
		db.DurationHours = sql.NullFloat64{Float64: *bus.DurationHours, Valid: true}
	}

	return db
}

func toBusRequest(db requestDB) (requestbus.Request, error) {
	reqType, err := requesttype.Parse(db.Type)
	if err != nil {
		return requestbus.Request{}, fmt.Errorf("parse type: %w", err)
	}

	status, err := requeststatus.Parse(db.Status)
	if err != nil {
		return requestbus.Request{}, fmt.Errorf("parse status: %w", err)
	}

	subject, err := name.Parse(db.Subject)
	if err != nil {
		return requestbus.Request{}, fmt.Errorf("parse subject: %w", err)
	}

	bus := requestbus.Request{
		ID:          db.ID,
		CompanyID:   db.CompanyID,
		EquipmentID: db.EquipmentID,
		Type:        reqType,
		Status:      status,
		Subject:     subject,
		Description: db.Description,
		CreatedBy:   db.CreatedBy,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.TeamID.Valid {
		id, err := uuid.Parse(db.TeamID.String)
		if err != nil {
			return requestbus.Request{}, fmt.Errorf("parse team id: %w", err)
		}
		bus.TeamID = &id
	}

	if db.TechnicianID.Valid {
		id, err := uuid.Parse(db.TechnicianID.String)
		if err != nil {
			return requestbus.Request{}, fmt.Errorf("parse technician id: %w", err)
		}
		bus.TechnicianID = &id
	}

	if db.ScheduledDate.Valid {
		t := db.ScheduledDate.Time.In(time.Local)
		bus.ScheduledDate = &t
	}

	if db.DurationHours.Valid {
		d := db.DurationHours.Float64
		bus.DurationHours = &d
	}

	return bus, nil
}

func toBusRequests(dbs []requestDB) ([]requestbus.Request, error) {
	bus := make([]requestbus.Request, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusRequest(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
