// Package teamapp maintains the app layer api for the maintenance team domain.
package teamapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/app/sdk/query"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/web"
)

type app struct {
	teamBus *teambus.Core
}

func newApp(teamBus *teambus.Core) *app {
	return &app{
		teamBus: teamBus,
	}
}

// create adds a new team to the requestor's company.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewTeam
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nt, err := toBusNewTeam(app, companyID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	team, err := a.teamBus.Create(ctx, nt)
	if err != nil {
		switch {
		case errors.Is(err, teambus.ErrMemberNotFound):
			return errs.NewFieldErrors("member_ids", err)
		case errors.Is(err, teambus.ErrMemberNotTechnic):
			return errs.NewFieldErrors("member_ids", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: team[%+v]: %s", nt, err)
	}

	return &CreatedTeam{Team: toAppTeam(team)}
}

// update updates an existing team. A nil member_ids leaves the membership
// unchanged; an empty list clears it.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateTeam
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	team, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	ut, err := toBusUpdateTeam(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updTeam, err := a.teamBus.Update(ctx, team, ut)
	if err != nil {
		switch {
		case errors.Is(err, teambus.ErrMemberNotFound):
			return errs.NewFieldErrors("member_ids", err)
		case errors.Is(err, teambus.ErrMemberNotTechnic):
			return errs.NewFieldErrors("member_ids", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: teamID[%s] ut[%+v]: %s", team.ID, ut, err)
	}

	return toAppTeam(updTeam)
}

// delete removes a team. Equipment pointing at it falls back to no default
// team via the schema's on delete set null.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	team, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	if err := a.teamBus.Delete(ctx, team); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: teamID[%s]: %s", team.ID, err)
	}

	return nil
}

// query returns a list of teams with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	filter, err := parseFilter(qp, companyID)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, teambus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	teams, err := a.teamBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.teamBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppTeams(teams), total, page)
}

// queryByID returns a team by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	team, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	return toAppTeam(team)
}

// queryCtx resolve o time da rota garantindo o escopo da empresa.
func (a *app) queryCtx(ctx context.Context, r *http.Request) (teambus.Team, web.Encoder) {
	id := web.Param(r, "team_id")

	teamID, err := uuid.Parse(id)
	if err != nil {
		return teambus.Team{}, errs.NewFieldErrors("team_id", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return teambus.Team{}, errs.New(errs.Unauthenticated, err)
	}

	team, err := a.teamBus.QueryByID(ctx, companyID, teamID)
	if err != nil {
		if errors.Is(err, teambus.ErrNotFound) {
			return teambus.Team{}, errs.New(errs.NotFound, err)
		}
		return teambus.Team{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: teamID[%s]: %s", teamID, err)
	}

	return team, nil
}
