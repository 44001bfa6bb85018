// Package companydb contains company related CRUD functionality.
package companydb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for company database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
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

// Create inserts a new company into the database.
func (s *Store) Create(ctx context.Context, c companybus.Company) error {
	const q = `
	INSERT INTO "public"."company"
		(company_id, name, created_at, updated_at)
	VALUES
		(:company_id, :name, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(c)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", companybus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a company record in the database.
func (s *Store) Update(ctx context.Context, c companybus.Company) error {
	const q = `
	UPDATE
		"public"."company"
	SET
		name = :name,
		updated_at = :updated_at
	WHERE
		company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(c)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", companybus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified company from the database.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID) (companybus.Company, error) {
	data := struct {
		ID string `db:"company_id"`
	}{
		ID: companyID.String(),
	}

	const q = `
	SELECT
		company_id, name, created_at, updated_at
	FROM
		"public"."company"
	WHERE
		company_id = :company_id`

	var dbCmp companyDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
		}
		return companybus.Company{}, fmt.Errorf("db: %w", err)
	}

	return toBusCompany(dbCmp)
}

// QueryByName gets the company with the specified name from the database.
func (s *Store) QueryByName(ctx context.Context, name string) (companybus.Company, error) {
	data := struct {
		Name string `db:"name"`
	}{
		Name: name,
	}

	const q = `
	SELECT
		company_id, name, created_at, updated_at
	FROM
		"public"."company"
	WHERE
		name = :name`

	var dbCmp companyDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
		}
		return companybus.Company{}, fmt.Errorf("db: %w", err)
	}

	return toBusCompany(dbCmp)
}
