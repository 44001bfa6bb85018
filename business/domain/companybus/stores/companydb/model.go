package companydb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

type companyDB struct {
	ID        uuid.UUID `db:"company_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBCompany(bus companybus.Company) companyDB {
	return companyDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusCompany(db companyDB) (companybus.Company, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse name: %w", err)
	}

	return companybus.Company{
		ID:        db.ID,
		Name:      nme,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}, nil
}
