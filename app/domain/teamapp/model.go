package teamapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// Team represents information about an individual maintenance team.
type Team struct {
	ID        string   `json:"id"`
	CompanyID string   `json:"companyId"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// Encode implements the encoder interface.
func (app Team) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppTeam(team teambus.Team) Team {
	members := make([]string, len(team.MemberIDs))
	for i, id := range team.MemberIDs {
		members[i] = id.String()
	}

	return Team{
		ID:        team.ID.String(),
		CompanyID: team.CompanyID.String(),
		Name:      team.Name.String(),
		MemberIDs: members,
		CreatedAt: team.CreatedAt.Format(time.RFC3339),
		UpdatedAt: team.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppTeams(teams []teambus.Team) []Team {
	app := make([]Team, len(teams))
	for i, team := range teams {
		app[i] = toAppTeam(team)
	}

	return app
}

// CreatedTeam wraps a created team so the handler can answer 201.
type CreatedTeam struct {
	Team
}

// HTTPStatus implements the web package status interface.
func (app CreatedTeam) HTTPStatus() int {
	return http.StatusCreated
}

// NewTeam defines the data needed to add a new team.
type NewTeam struct {
	Name      string   `json:"name" validate:"required,min=3,max=100"`
	MemberIDs []string `json:"memberIds" validate:"omitempty,dive,uuid"`
}

// Decode implements the decoder interface.
func (app *NewTeam) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTeam) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewTeam(app NewTeam, companyID uuid.UUID) (teambus.NewTeam, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return teambus.NewTeam{}, fmt.Errorf("parse name: %w", err)
	}

	members, err := parseMemberIDs(app.MemberIDs)
	if err != nil {
		return teambus.NewTeam{}, err
	}

	nt := teambus.NewTeam{
		CompanyID: companyID,
		Name:      nme,
		MemberIDs: members,
	}

	return nt, nil
}

// UpdateTeam defines the data that can be changed on a team.
type UpdateTeam struct {
	Name      *string   `json:"name" validate:"omitempty,min=3,max=100"`
	MemberIDs *[]string `json:"memberIds" validate:"omitempty,dive,uuid"`
}

// Decode implements the decoder interface.
func (app *UpdateTeam) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTeam) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusUpdateTeam(app UpdateTeam) (teambus.UpdateTeam, error) {
	var ut teambus.UpdateTeam

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return teambus.UpdateTeam{}, fmt.Errorf("parse name: %w", err)
		}
		ut.Name = &nme
	}

	if app.MemberIDs != nil {
		members, err := parseMemberIDs(*app.MemberIDs)
		if err != nil {
			return teambus.UpdateTeam{}, err
		}
		ut.MemberIDs = &members
	}

	return ut, nil
}

func parseMemberIDs(ids []string) ([]uuid.UUID, error) {
	members := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		memberID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse member id[%s]: %w", id, err)
		}
		members[i] = memberID
	}

	return members, nil
}
