package teamdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb/dbarray"
	"github.com/jcpaschoal/manfix/business/types/name"
)

type teamDB struct {
	ID        uuid.UUID    `db:"team_id"`
	CompanyID uuid.UUID    `db:"company_id"`
	Name      string       `db:"name"`
	MemberIDs dbarray.UUID `db:"member_ids"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func toDBTeam(bus teambus.Team) teamDB {
	return teamDB{
		ID:        bus.ID,
		CompanyID: bus.CompanyID,
		Name:      bus.Name.String(),
		MemberIDs: dbarray.UUID(bus.MemberIDs),
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusTeam(db teamDB) (teambus.Team, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return teambus.Team{}, fmt.Errorf("parse name: %w", err)
	}

	bus := teambus.Team{
		ID:        db.ID,
		CompanyID: db.CompanyID,
		Name:      nme,
		MemberIDs: []uuid.UUID(db.MemberIDs),
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusTeams(dbs []teamDB) ([]teambus.Team, error) {
	bus := make([]teambus.Team, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusTeam(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
