// Package all binds every route group into the service.
package all

import (
	"github.com/jcpaschoal/manfix/app/domain/authapp"
	"github.com/jcpaschoal/manfix/app/domain/checkapp"
	"github.com/jcpaschoal/manfix/app/domain/companyapp"
	"github.com/jcpaschoal/manfix/app/domain/employeeapp"
	"github.com/jcpaschoal/manfix/app/domain/equipmentapp"
	"github.com/jcpaschoal/manfix/app/domain/requestapp"
	"github.com/jcpaschoal/manfix/app/domain/statsapp"
	"github.com/jcpaschoal/manfix/app/domain/teamapp"
	"github.com/jcpaschoal/manfix/app/sdk/mux"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	beginner := sqldb.NewBeginner(cfg.DB)

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Log:        cfg.Log,
		DB:         beginner,
		Auth:       cfg.AuthConfig.Auth,
		CompanyBus: cfg.BusConfig.CompanyBus,
		UserBus:    cfg.BusConfig.UserBus,
		SessionBus: cfg.BusConfig.SessionBus,
	})

	companyapp.Routes(app, companyapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		CompanyBus: cfg.BusConfig.CompanyBus,
	})

	employeeapp.Routes(app, employeeapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		Permit:  cfg.AuthConfig.Permit,
		UserBus: cfg.BusConfig.UserBus,
	})

	teamapp.Routes(app, teamapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		TeamBus: cfg.BusConfig.TeamBus,
	})

	equipmentapp.Routes(app, equipmentapp.Config{
		Auth:         cfg.AuthConfig.Auth,
		EquipmentBus: cfg.BusConfig.EquipmentBus,
		RequestBus:   cfg.BusConfig.RequestBus,
	})

	requestapp.Routes(app, requestapp.Config{
		Log:        cfg.Log,
		DB:         beginner,
		Auth:       cfg.AuthConfig.Auth,
		RequestBus: cfg.BusConfig.RequestBus,
	})

	statsapp.Routes(app, statsapp.Config{
		Auth:     cfg.AuthConfig.Auth,
		StatsBus: cfg.BusConfig.StatsBus,
	})
}
