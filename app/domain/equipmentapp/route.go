package equipmentapp

import (
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	EquipmentBus *equipmentbus.Core
	RequestBus   *requestbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	staff := mid.Authorize(cfg.Auth, role.CompanyOwner, role.Manager)

	api := newApp(cfg.EquipmentBus, cfg.RequestBus)

	app.HandlerFunc(http.MethodGet, version, "/equipment", api.query, authen)
	app.HandlerFunc(http.MethodPost, version, "/equipment", api.create, authen, staff)
	app.HandlerFunc(http.MethodGet, version, "/equipment/{equipment_id}", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, version, "/equipment/{equipment_id}", api.update, authen, staff)
	app.HandlerFunc(http.MethodDelete, version, "/equipment/{equipment_id}", api.delete, authen, staff)
	app.HandlerFunc(http.MethodGet, version, "/equipment/{equipment_id}/maintenance-requests", api.queryRequests, authen)
}
