// Package equipmentdb contains equipment related CRUD functionality.
package equipmentdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for equipment database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (equipmentbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// open_request_count is live, a snapshot column would drift from the request
// table on every status change.
const selectEquipment = `
	SELECT
		e.equipment_id, e.company_id, e.name, e.serial_number, e.department,
		e.location, e.assigned_employee, e.purchase_date, e.warranty_expiry_date,
		e.team_id, e.default_technician_id, e.is_scrapped, e.created_at, e.updated_at,
		(SELECT COUNT(1)
		 FROM "public"."maintenance_request" AS r
		 WHERE r.equipment_id = e.equipment_id AND r.status IN ('NEW', 'IN_PROGRESS')) AS open_request_count
	FROM
		"public"."equipment" AS e`

// Create inserts a new asset into the database.
func (s *Store) Create(ctx context.Context, eqp equipmentbus.Equipment) error {
	const q = `
	INSERT INTO "public"."equipment"
		(equipment_id, company_id, name, serial_number, department, location,
		 assigned_employee, purchase_date, warranty_expiry_date, team_id,
		 default_technician_id, is_scrapped, created_at, updated_at)
	VALUES
		(:equipment_id, :company_id, :name, :serial_number, :department, :location,
		 :assigned_employee, :purchase_date, :warranty_expiry_date, :team_id,
		 :default_technician_id, :is_scrapped, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEquipment(eqp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", equipmentbus.ErrUniqueSerial)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces an asset record in the database.
func (s *Store) Update(ctx context.Context, eqp equipmentbus.Equipment) error {
	const q = `
	UPDATE
		"public"."equipment"
	SET
		name = :name,
		serial_number = :serial_number,
		department = :department,
		location = :location,
		assigned_employee = :assigned_employee,
		purchase_date = :purchase_date,
		warranty_expiry_date = :warranty_expiry_date,
		team_id = :team_id,
		default_technician_id = :default_technician_id,
		is_scrapped = :is_scrapped,
		updated_at = :updated_at
	WHERE
		company_id = :company_id AND equipment_id = :equipment_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEquipment(eqp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return equipmentbus.ErrUniqueSerial
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes an asset from the database.
func (s *Store) Delete(ctx context.Context, eqp equipmentbus.Equipment) error {
	const q = `
	DELETE FROM
		"public"."equipment"
	WHERE
		company_id = :company_id AND equipment_id = :equipment_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEquipment(eqp)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing assets from the database.
func (s *Store) Query(ctx context.Context, filter equipmentbus.QueryFilter, orderBy order.By, page page.Page) ([]equipmentbus.Equipment, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectEquipment)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbEqps []equipmentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbEqps); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusEquipments(dbEqps)
}

// Count returns the total number of assets in the DB.
func (s *Store) Count(ctx context.Context, filter equipmentbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."equipment" AS e`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified asset from the database.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, equipmentID uuid.UUID) (equipmentbus.Equipment, error) {
	data := struct {
		CompanyID   string `db:"company_id"`
		EquipmentID string `db:"equipment_id"`
	}{
		CompanyID:   companyID.String(),
		EquipmentID: equipmentID.String(),
	}

	const q = selectEquipment + `
	WHERE
		e.company_id = :company_id AND e.equipment_id = :equipment_id`

	var dbEqp equipmentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbEqp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return equipmentbus.Equipment{}, fmt.Errorf("db: %w", equipmentbus.ErrNotFound)
		}
		return equipmentbus.Equipment{}, fmt.Errorf("db: %w", err)
	}

	return toBusEquipment(dbEqp)
}
