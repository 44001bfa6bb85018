package companyapp

import (
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	CompanyBus *companybus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.CompanyBus)

	app.HandlerFunc(http.MethodGet, version, "/company", api.query, authen)
	app.HandlerFunc(http.MethodPut, version, "/company", api.update, authen, mid.Authorize(cfg.Auth, role.CompanyOwner))
}
