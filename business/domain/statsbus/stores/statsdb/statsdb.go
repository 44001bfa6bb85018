// Package statsdb contains the aggregate queries behind the dashboard.
package statsdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/statsbus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for dashboard database access.
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

// QueryCounters computes the headline counts for the company.
func (s *Store) QueryCounters(ctx context.Context, companyID uuid.UUID) (statsbus.Counters, error) {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		(SELECT count(1) FROM "public"."equipment" WHERE company_id = :company_id) AS equipment_count,
		(SELECT count(1) FROM "public"."maintenance_team" WHERE company_id = :company_id) AS team_count,
		(SELECT count(1) FROM "public"."users" WHERE company_id = :company_id) AS employee_count,
		(SELECT count(1) FROM "public"."maintenance_request" WHERE company_id = :company_id AND status IN ('NEW', 'IN_PROGRESS')) AS open_request_count`

	var counters countersDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &counters); err != nil {
		return statsbus.Counters{}, fmt.Errorf("namedquerystruct: %w", err)
	}

	return toBusCounters(counters), nil
}

// QueryStatusDistribution counts the company's requests per status.
func (s *Store) QueryStatusDistribution(ctx context.Context, companyID uuid.UUID) (map[requeststatus.Status]int, error) {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		status, count(1) AS count
	FROM
		"public"."maintenance_request"
	WHERE
		company_id = :company_id
	GROUP BY
		status`

	var rows []bucketDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	dist := make(map[requeststatus.Status]int, len(rows))
	for _, row := range rows {
		status, err := requeststatus.Parse(row.Key)
		if err != nil {
			return nil, fmt.Errorf("parse status: %w", err)
		}
		dist[status] = row.Count
	}

	return dist, nil
}

// QueryTypeDistribution counts the company's requests per type.
func (s *Store) QueryTypeDistribution(ctx context.Context, companyID uuid.UUID) (map[requesttype.RequestType]int, error) {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		request_type AS status, count(1) AS count
	FROM
		"public"."maintenance_request"
	WHERE
		company_id = :company_id
	GROUP BY
		request_type`

	var rows []bucketDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	dist := make(map[requesttype.RequestType]int, len(rows))
	for _, row := range rows {
		reqType, err := requesttype.Parse(row.Key)
		if err != nil {
			return nil, fmt.Errorf("parse type: %w", err)
		}
		dist[reqType] = row.Count
	}

	return dist, nil
}

// QueryTechnicianWorkload returns the technicians with the most open assigned
// requests. Every role-TECHNICIAN user of the company appears, idle ones with
// a zero count; non-technician assignees are never counted. Ties break on
// user id so the order is stable across calls.
func (s *Store) QueryTechnicianWorkload(ctx context.Context, companyID uuid.UUID, limit int) ([]statsbus.TechnicianWorkload, error) {
	data := struct {
		CompanyID string `db:"company_id"`
		Limit     int    `db:"limit"`
	}{
		CompanyID: companyID.String(),
		Limit:     limit,
	}

	const q = `
	SELECT
		u.user_id AS technician_id, u.name, count(r.request_id) AS open_requests
	FROM
		"public"."users" AS u
	LEFT JOIN
		"public"."maintenance_request" AS r ON r.technician_id = u.user_id AND r.status IN ('NEW', 'IN_PROGRESS')
	WHERE
		u.company_id = :company_id AND u.role = 'TECHNICIAN'
	GROUP BY
		u.user_id, u.name
	ORDER BY
		open_requests DESC, u.user_id ASC
	LIMIT :limit`

	var rows []workloadDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusWorkloads(rows)
}
