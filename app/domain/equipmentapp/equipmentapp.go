// Package equipmentapp maintains the app layer api for the equipment domain.
package equipmentapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/app/sdk/query"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/web"
)

type app struct {
	equipmentBus *equipmentbus.Core
	requestBus   *requestbus.Core
}

func newApp(equipmentBus *equipmentbus.Core, requestBus *requestbus.Core) *app {
	return &app{
		equipmentBus: equipmentBus,
		requestBus:   requestBus,
	}
}

// create registers a new asset under the requestor's company.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewEquipment
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	ne, err := toBusNewEquipment(app, companyID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	eqp, err := a.equipmentBus.Create(ctx, ne)
	if err != nil {
		switch {
		case errors.Is(err, equipmentbus.ErrUniqueSerial):
			return errs.New(errs.Aborted, equipmentbus.ErrUniqueSerial)
		case errors.Is(err, equipmentbus.ErrTeamNotFound):
			return errs.NewFieldErrors("team_id", err)
		case errors.Is(err, equipmentbus.ErrInvalidTechnician):
			return errs.NewFieldErrors("default_technician_id", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: eqp[%+v]: %s", ne, err)
	}

	return &CreatedEquipment{Equipment: toAppEquipment(eqp)}
}

// update updates an existing asset.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateEquipment
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	eqp, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	ue, err := toBusUpdateEquipment(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updEqp, err := a.equipmentBus.Update(ctx, eqp, ue)
	if err != nil {
		switch {
		case errors.Is(err, equipmentbus.ErrUniqueSerial):
			return errs.New(errs.Aborted, equipmentbus.ErrUniqueSerial)
		case errors.Is(err, equipmentbus.ErrTeamNotFound):
			return errs.NewFieldErrors("team_id", err)
		case errors.Is(err, equipmentbus.ErrInvalidTechnician):
			return errs.NewFieldErrors("default_technician_id", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: equipmentID[%s] ue[%+v]: %s", eqp.ID, ue, err)
	}

	return toAppEquipment(updEqp)
}

// delete removes an asset and, by cascade, its maintenance history.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	eqp, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	if err := a.equipmentBus.Delete(ctx, eqp); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: equipmentID[%s]: %s", eqp.ID, err)
	}

	return nil
}

// query returns a list of assets with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, equipmentbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	eqps, err := a.equipmentBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.equipmentBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEquipments(eqps), total, page)
}

// queryByID returns an asset by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	eqp, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	return toAppEquipment(eqp)
}

// queryRequests returns the maintenance history of one asset.
func (a *app) queryRequests(ctx context.Context, r *http.Request) web.Encoder {
	eqp, errEnc := a.queryCtx(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter := requestbus.QueryFilter{
		CompanyID:   eqp.CompanyID,
		EquipmentID: &eqp.ID,
	}

	reqs, err := a.requestBus.Query(ctx, filter, requestbus.DefaultOrderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query requests: %s", err)
	}

	total, err := a.requestBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count requests: %s", err)
	}

	return query.NewResult(toAppHistory(reqs), total, page)
}

// queryCtx resolve o equipamento da rota garantindo o escopo da empresa.
func (a *app) queryCtx(ctx context.Context, r *http.Request) (equipmentbus.Equipment, web.Encoder) {
	id := web.Param(r, "equipment_id")

	equipmentID, err := uuid.Parse(id)
	if err != nil {
		return equipmentbus.Equipment{}, errs.NewFieldErrors("equipment_id", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return equipmentbus.Equipment{}, errs.New(errs.Unauthenticated, err)
	}

	eqp, err := a.equipmentBus.QueryByID(ctx, companyID, equipmentID)
	if err != nil {
		if errors.Is(err, equipmentbus.ErrNotFound) {
			return equipmentbus.Equipment{}, errs.New(errs.NotFound, err)
		}
		return equipmentbus.Equipment{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: equipmentID[%s]: %s", equipmentID, err)
	}

	return eqp, nil
}
