// Package teamdb contains maintenance team related CRUD functionality.
package teamdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for team database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (teambus.Storer, error) {
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

const selectTeams = `
	SELECT
		t.team_id, t.company_id, t.name, t.created_at, t.updated_at,
		COALESCE(array_agg(tm.user_id) FILTER (WHERE tm.user_id IS NOT NULL), '{}') AS member_ids
	FROM
		"public"."maintenance_team" AS t
	LEFT JOIN
		"public"."team_member" AS tm ON tm.team_id = t.team_id`

// Create inserts a new team and its membership into the database.
func (s *Store) Create(ctx context.Context, team teambus.Team) error {
	const q = `
	INSERT INTO "public"."maintenance_team"
		(team_id, company_id, name, created_at, updated_at)
	VALUES
		(:team_id, :company_id, :name, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBTeam(team)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if err := s.insertMembers(ctx, team.ID, team.MemberIDs); err != nil {
		return err
	}

	return nil
}

// Update replaces a team record and rewrites its membership.
func (s *Store) Update(ctx context.Context, team teambus.Team) error {
	const q = `
	UPDATE
		"public"."maintenance_team"
	SET
		name = :name,
		updated_at = :updated_at
	WHERE
		company_id = :company_id AND team_id = :team_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBTeam(team)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if err := s.deleteMembers(ctx, team.ID); err != nil {
		return err
	}

	if err := s.insertMembers(ctx, team.ID, team.MemberIDs); err != nil {
		return err
	}

	return nil
}

// Delete removes a team and its membership from the database.
func (s *Store) Delete(ctx context.Context, team teambus.Team) error {
	if err := s.deleteMembers(ctx, team.ID); err != nil {
		return err
	}

	data := struct {
		CompanyID string `db:"company_id"`
		TeamID    string `db:"team_id"`
	}{
		CompanyID: team.CompanyID.String(),
		TeamID:    team.ID.String(),
	}

	const q = `
	DELETE FROM
		"public"."maintenance_team"
	WHERE
		company_id = :company_id AND team_id = :team_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing teams with their membership.
func (s *Store) Query(ctx context.Context, filter teambus.QueryFilter, orderBy order.By, page page.Page) ([]teambus.Team, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectTeams)
	applyFilter(filter, data, buf)
	buf.WriteString(" GROUP BY t.team_id")

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbTeams []teamDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbTeams); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusTeams(dbTeams)
}

// Count returns the total number of teams in the DB.
func (s *Store) Count(ctx context.Context, filter teambus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		COUNT(*) AS count
	FROM
		"public"."maintenance_team" AS t`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified team from the database.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, teamID uuid.UUID) (teambus.Team, error) {
	data := struct {
		CompanyID string `db:"company_id"`
		TeamID    string `db:"team_id"`
	}{
		CompanyID: companyID.String(),
		TeamID:    teamID.String(),
	}

	const q = selectTeams + `
	WHERE
		t.company_id = :company_id AND t.team_id = :team_id
	GROUP BY
		t.team_id`

	var dbTeam teamDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbTeam); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return teambus.Team{}, fmt.Errorf("db: %w", teambus.ErrNotFound)
		}
		return teambus.Team{}, fmt.Errorf("db: %w", err)
	}

	return toBusTeam(dbTeam)
}

func (s *Store) insertMembers(ctx context.Context, teamID uuid.UUID, memberIDs []uuid.UUID) error {
	const q = `
	INSERT INTO "public"."team_member"
		(team_id, user_id)
	VALUES
		(:team_id, :user_id)`

	for _, memberID := range memberIDs {
		data := struct {
			TeamID string `db:"team_id"`
			UserID string `db:"user_id"`
		}{
			TeamID: teamID.String(),
			UserID: memberID.String(),
		}

		if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
			return fmt.Errorf("namedexeccontext: member[%s]: %w", memberID, err)
		}
	}

	return nil
}

func (s *Store) deleteMembers(ctx context.Context, teamID uuid.UUID) error {
	data := struct {
		TeamID string `db:"team_id"`
	}{
		TeamID: teamID.String(),
	}

	const q = `
	DELETE FROM
		"public"."team_member"
	WHERE
		team_id = :team_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}
