package authapp

import (
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/domain/sessionbus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         sqldb.Beginner
	Auth       *auth.Auth
	CompanyBus *companybus.Core
	UserBus    *userbus.Core
	SessionBus *sessionbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	tran := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.Auth, cfg.CompanyBus, cfg.UserBus, cfg.SessionBus)

	app.HandlerFunc(http.MethodPost, version, "/auth/register", api.register, tran)
	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodPost, version, "/auth/refresh", api.refresh)
	app.HandlerFunc(http.MethodPost, version, "/auth/logout", api.logout)
	app.HandlerFunc(http.MethodGet, version, "/auth/me", api.me, authen)
	app.HandlerFunc(http.MethodGet, version, "/auth/roles", api.roles, authen)
}
