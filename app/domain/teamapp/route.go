package teamapp

import (
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	TeamBus *teambus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	staff := mid.Authorize(cfg.Auth, role.CompanyOwner, role.Manager)

	api := newApp(cfg.TeamBus)

	app.HandlerFunc(http.MethodGet, version, "/teams", api.query, authen)
	app.HandlerFunc(http.MethodPost, version, "/teams", api.create, authen, staff)
	app.HandlerFunc(http.MethodGet, version, "/teams/{team_id}", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, version, "/teams/{team_id}", api.update, authen, staff)
	app.HandlerFunc(http.MethodDelete, version, "/teams/{team_id}", api.delete, authen, staff)
}
