// Package requestdb contains maintenance request related CRUD functionality.
package requestdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for maintenance request database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (requestbus.Storer, error) {
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

const selectRequests = `
	SELECT
		request_id, company_id, equipment_id, team_id, technician_id,
		request_type, status, subject, description, scheduled_date,
		duration_hours, created_by, created_at, updated_at
	FROM
		"public"."maintenance_request"`

// Create inserts a new request into the database.
func (s *Store) Create(ctx context.Context, req requestbus.Request) error {
	const q = `
	INSERT INTO "public"."maintenance_request"
		(request_id, company_id, equipment_id, team_id, technician_id,
		 request_type, status, subject, description, scheduled_date,
		 duration_hours, created_by, created_at, updated_at)
	VALUES
		(:request_id, :company_id, :equipment_id, :team_id, :technician_id,
		 :request_type, :status, :subject, :description, :scheduled_date,
		 :duration_hours, :created_by, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRequest(req)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a request record in the database.
func (s *Store) Update(ctx context.Context, req requestbus.Request) error {
	const q = `
	UPDATE
		"public"."maintenance_request"
	SET
		team_id = :team_id,
		technician_id = :technician_id,
		request_type = :request_type,
		status = :status,
		subject = :subject,
		description = :description,
		scheduled_date = :scheduled_date,
		duration_hours = :duration_hours,
		updated_at = :updated_at
	WHERE
		company_id = :company_id AND request_id = :request_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRequest(req)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a request from the database.
func (s *Store) Delete(ctx context.Context, req requestbus.Request) error {
	const q = `
	DELETE FROM
		"public"."maintenance_request"
	WHERE
		company_id = :company_id AND request_id = :request_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRequest(req)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a page of existing requests from the database.
func (s *Store) Query(ctx context.Context, filter requestbus.QueryFilter, orderBy order.By, page page.Page) ([]requestbus.Request, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectRequests)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbReqs []requestDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbReqs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRequests(dbReqs)
}

// QueryAll retrieves every request matching the filter, unpaged. Used by the
// kanban and calendar reads which need the full company set.
func (s *Store) QueryAll(ctx context.Context, filter requestbus.QueryFilter, orderBy order.By) ([]requestbus.Request, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(selectRequests)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)

	var dbReqs []requestDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbReqs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRequests(dbReqs)
}

// Count returns the total number of requests in the DB.
func (s *Store) Count(ctx context.Context, filter requestbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."maintenance_request"`

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

// QueryByID gets the specified request from the database.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, requestID uuid.UUID) (requestbus.Request, error) {
	data := struct {
		CompanyID string `db:"company_id"`
		RequestID string `db:"request_id"`
	}{
		CompanyID: companyID.String(),
		RequestID: requestID.String(),
	}

	const q = selectRequests + `
	WHERE
		company_id = :company_id AND request_id = :request_id`

	var dbReq requestDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbReq); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return requestbus.Request{}, fmt.Errorf("db: %w", requestbus.ErrNotFound)
		}
		return requestbus.Request{}, fmt.Errorf("db: %w", err)
	}

	return toBusRequest(dbReq)
}
