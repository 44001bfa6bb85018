package employeeapp

import (
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/actions"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	Permit  *auth.Permit
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	staff := mid.Authorize(cfg.Auth, role.CompanyOwner, role.Manager)
	toggle := mid.AuthorizeUser(cfg.Permit, cfg.UserBus, actions.Toggle)
	update := mid.AuthorizeUser(cfg.Permit, cfg.UserBus, actions.Update)
	remove := mid.AuthorizeUser(cfg.Permit, cfg.UserBus, actions.Delete)

	api := newApp(cfg.Permit, cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/employees", api.query, authen, staff)
	app.HandlerFunc(http.MethodPost, version, "/employees", api.create, authen, staff)
	app.HandlerFunc(http.MethodGet, version, "/employees/{user_id}", api.queryByID, authen, staff)
	app.HandlerFunc(http.MethodPut, version, "/employees/{user_id}", api.update, authen, update)
	app.HandlerFunc(http.MethodDelete, version, "/employees/{user_id}", api.delete, authen, remove)
	app.HandlerFunc(http.MethodPatch, version, "/employees/{user_id}/status", api.toggleStatus, authen, toggle)

	app.HandlerFunc(http.MethodGet, version, "/managers", api.queryManagers, authen, staff)
	app.HandlerFunc(http.MethodPost, version, "/managers", api.createManager, authen, staff)
}
