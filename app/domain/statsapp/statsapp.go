// Package statsapp maintains the app layer api for the dashboard stats.
package statsapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/statsbus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
)

type app struct {
	statsBus *statsbus.Core
}

func newApp(statsBus *statsbus.Core) *app {
	return &app{
		statsBus: statsBus,
	}
}

// query returns the dashboard numbers for the requestor's company.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	stats, err := a.statsBus.Query(ctx, companyID)
	if err != nil {
		return errs.Errorf(errs.Internal, "stats: %s", err)
	}

	return toAppStats(stats)
}
