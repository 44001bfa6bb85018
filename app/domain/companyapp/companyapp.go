// Package companyapp maintains the app layer api for the company domain.
package companyapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
)

type app struct {
	companyBus *companybus.Core
}

func newApp(companyBus *companybus.Core) *app {
	return &app{
		companyBus: companyBus,
	}
}

// query returns the authenticated user's company.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: companyID[%s]: %s", companyID, err)
	}

	return toAppCompany(cmp)
}

// update renames the authenticated user's company.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: companyID[%s]: %s", companyID, err)
	}

	uc, err := toBusUpdateCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updCmp, err := a.companyBus.Update(ctx, cmp, uc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueName) {
			return errs.New(errs.Aborted, companybus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: companyID[%s] uc[%+v]: %s", companyID, uc, err)
	}

	return toAppCompany(updCmp)
}
