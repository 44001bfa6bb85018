package equipmentdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

type equipmentDB struct {
	ID                  uuid.UUID      `db:"equipment_id"`
	CompanyID           uuid.UUID      `db:"company_id"`
	Name                string         `db:"name"`
	SerialNumber        string         `db:"serial_number"`
	Department          sql.NullString `db:"department"`
	Location            sql.NullString `db:"location"`
	AssignedEmployee    sql.NullString `db:"assigned_employee"`
	PurchaseDate        sql.NullTime   `db:"purchase_date"`
	WarrantyExpiryDate  sql.NullTime   `db:"warranty_expiry_date"`
	TeamID              uuid.UUID      `db:"team_id"`
	DefaultTechnicianID sql.NullString `db:"default_technician_id"`
	IsScrapped          bool           `db:"is_scrapped"`
	OpenRequestCount    int            `db:"open_request_count"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func toDBEquipment(bus equipmentbus.Equipment) equipmentDB {
	db := equipmentDB{
		ID:           bus.ID,
		CompanyID:    bus.CompanyID,
		Name:         bus.Name.String(),
		SerialNumber: bus.SerialNumber,
		Department: sql.NullString{
			String: bus.Department.String(),
			Valid:  bus.Department.Valid(),
		},
		Location: sql.NullString{
			String: bus.Location.String(),
			Valid:  bus.Location.Valid(),
		},
		AssignedEmployee: sql.NullString{
			String: bus.AssignedEmployee.String(),
			Valid:  bus.AssignedEmployee.Valid(),
		},
		TeamID:     bus.TeamID,
		IsScrapped: bus.IsScrapped,
		CreatedAt:  bus.CreatedAt.UTC(),
		UpdatedAt:  bus.UpdatedAt.UTC(),
	}

	if bus.PurchaseDate != nil {
		db.PurchaseDate = sql.NullTime{Time: bus.PurchaseDate.UTC(), Valid: true}
	}

	if bus.WarrantyExpiryDate != nil {
		db.WarrantyExpiryDate = sql.NullTime{Time: bus.WarrantyExpiryDate.UTC(), Valid: true}
	}

	if bus.DefaultTechnicianID != nil {
		db.DefaultTechnicianID = sql.NullString{String: bus.DefaultTechnicianID.String(), Valid: true}
	}

	return db
}

func toBusEquipment(db equipmentDB) (equipmentbus.Equipment, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return equipmentbus.Equipment{}, fmt.Errorf("parse name: %w", err)
	}

	department, err := name.ParseNull(nullString(db.Department))
	if err != nil {
		return equipmentbus.Equipment{}, fmt.Errorf("parse department: %w", err)
	}

	location, err := name.ParseNull(nullString(db.Location))
	if err != nil {
		return equipmentbus.Equipment{}, fmt.Errorf("parse location: %w", err)
	}

	assigned, err := name.ParseNull(nullString(db.AssignedEmployee))
	if err != nil {
		return equipmentbus.Equipment{}, fmt.Errorf("parse assigned employee: %w", err)
	}

	bus := equipmentbus.Equipment{
		ID:               db.ID,
		CompanyID:        db.CompanyID,
		Name:             nme,
		SerialNumber:     db.SerialNumber,
		Department:       department,
		Location:         location,
		AssignedEmployee: assigned,
		TeamID:           db.TeamID,
		IsScrapped:       db.IsScrapped,
		OpenRequestCount: db.OpenRequestCount,
		CreatedAt:        db.CreatedAt.In(time.Local),
		UpdatedAt:        db.UpdatedAt.In(time.Local),
	}

	if db.PurchaseDate.Valid {
		t := db.PurchaseDate.Time.In(time.Local)
		bus.PurchaseDate = &t
	}

	if db.WarrantyExpiryDate.Valid {
		t := db.WarrantyExpiryDate.Time.In(time.Local)
		bus.WarrantyExpiryDate = &t
	}

	if db.DefaultTechnicianID.Valid {
		id, err := uuid.Parse(db.DefaultTechnicianID.String)
		if err != nil {
			return equipmentbus.Equipment{}, fmt.Errorf("parse technician id: %w", err)
		}
		bus.DefaultTechnicianID = &id
	}

	return bus, nil
}

func toBusEquipments(dbs []equipmentDB) ([]equipmentbus.Equipment, error) {
	bus := make([]equipmentbus.Equipment, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusEquipment(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

func nullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}

	return ns.String
}
