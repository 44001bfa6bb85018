// Package requestapp maintains the app layer api for maintenance requests:
// the ticket CRUD plus the kanban, calendar and personal views.
package requestapp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/app/sdk/query"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/web"
)

type app struct {
	requestBus *requestbus.Core
}

func newApp(requestBus *requestbus.Core) *app {
	return &app{
		requestBus: requestBus,
	}
}

// create opens a new maintenance request. Runs under a transaction so a
// SCRAP ticket and the asset flag land together.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewRequest
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nr, err := toBusNewRequest(app, companyID, userID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	requestBus, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	req, err := requestBus.Create(ctx, nr)
	if err != nil {
		if enc := toErrEncoder(err); enc != nil {
			return enc
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: req[%+v]: %s", nr, err)
	}

	return &CreatedRequest{Request: toAppRequest(req)}
}

// update updates an existing request. Validation runs against the merged
// instance, so a partial update cannot sidestep the scheduling rules.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateRequest
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	requestBus, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	req, errEnc := queryCtx(ctx, r, requestBus)
	if errEnc != nil {
		return errEnc
	}

	ur, err := toBusUpdateRequest(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updReq, err := requestBus.Update(ctx, req, ur)
	if err != nil {
		if enc := toErrEncoder(err); enc != nil {
			return enc
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: requestID[%s] ur[%+v]: %s", req.ID, ur, err)
	}

	return toAppRequest(updReq)
}

// delete removes a request.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	req, errEnc := queryCtx(ctx, r, a.requestBus)
	if errEnc != nil {
		return errEnc
	}

	if err := a.requestBus.Delete(ctx, req); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: requestID[%s]: %s", req.ID, err)
	}

	return nil
}

// query returns a list of requests with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

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

	return a.list(ctx, qp, filter)
}

// myTasks returns the open work assigned to the requestor.
func (a *app) myTasks(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := mid.GetUserID(ctx)
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
	filter.TechnicianID = &userID

	return a.list(ctx, qp, filter)
}

// myReports returns the requests opened by the requestor.
func (a *app) myReports(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := mid.GetUserID(ctx)
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
	filter.CreatedBy = &userID

	return a.list(ctx, qp, filter)
}

func (a *app) list(ctx context.Context, qp queryParams, filter requestbus.QueryFilter) web.Encoder {
	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, requestbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	reqs, err := a.requestBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.requestBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppRequests(reqs), total, page)
}

// queryByID returns a request by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	req, errEnc := queryCtx(ctx, r, a.requestBus)
	if errEnc != nil {
		return errEnc
	}

	return toAppRequest(req)
}

// kanban returns every request grouped by status, one column per status.
func (a *app) kanban(ctx context.Context, _ *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	columns, err := a.requestBus.Kanban(ctx, companyID)
	if err != nil {
		return errs.Errorf(errs.Internal, "kanban: %s", err)
	}

	return toAppKanban(columns)
}

// calendar returns the preventive requests scheduled inside [start, end].
// Either bound may be omitted for an open-ended range.
func (a *app) calendar(ctx context.Context, r *http.Request) web.Encoder {
	values := r.URL.Query()

	var start *time.Time
	if v := values.Get("start"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return errs.NewFieldErrors("start", err)
		}
		start = &t
	}

	var end *time.Time
	if v := values.Get("end"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return errs.NewFieldErrors("end", err)
		}
		end = &t
	}

	if start != nil && end != nil && end.Before(*start) {
		return errs.NewFieldErrors("end", errors.New("end must not be before start"))
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	reqs, err := a.requestBus.Calendar(ctx, companyID, start, end)
	if err != nil {
		return errs.Errorf(errs.Internal, "calendar: %s", err)
	}

	return CalendarResult{Items: toAppRequests(reqs)}
}

// queryCtx resolve a request da rota garantindo o escopo da empresa.
func queryCtx(ctx context.Context, r *http.Request, requestBus *requestbus.Core) (requestbus.Request, web.Encoder) {
	id := web.Param(r, "request_id")

	requestID, err := uuid.Parse(id)
	if err != nil {
		return requestbus.Request{}, errs.NewFieldErrors("request_id", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return requestbus.Request{}, errs.New(errs.Unauthenticated, err)
	}

	req, err := requestBus.QueryByID(ctx, companyID, requestID)
	if err != nil {
		if errors.Is(err, requestbus.ErrNotFound) {
			return requestbus.Request{}, errs.New(errs.NotFound, err)
		}
		return requestbus.Request{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: requestID[%s]: %s", requestID, err)
	}

	return req, nil
}

func (a *app) newWithTx(ctx context.Context) (*requestbus.Core, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	requestBus, err := a.requestBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return requestBus, nil
}

// toErrEncoder maps the domain rule violations to client errors.
func toErrEncoder(err error) web.Encoder {
	switch {
	case errors.Is(err, requestbus.ErrEquipmentNotFound):
		return errs.New(errs.NotFound, err)
	case errors.Is(err, requestbus.ErrEquipmentScrapped):
		return errs.NewFieldErrors("equipment_id", err)
	case errors.Is(err, requestbus.ErrScheduleRequired):
		return errs.NewFieldErrors("scheduled_date", err)
	case errors.Is(err, requestbus.ErrDurationRequired):
		return errs.NewFieldErrors("duration_hours", err)
	case errors.Is(err, requestbus.ErrTeamNotFound):
		return errs.NewFieldErrors("team_id", err)
	case errors.Is(err, requestbus.ErrInvalidTechnician):
		return errs.NewFieldErrors("technician_id", err)
	}

	return nil
}
