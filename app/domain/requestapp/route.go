package requestapp

import (
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/jcpaschoal/manfix/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         sqldb.Beginner
	Auth       *auth.Auth
	RequestBus *requestbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	staff := mid.Authorize(cfg.Auth, role.CompanyOwner, role.Manager)
	tran := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.RequestBus)

	app.HandlerFunc(http.MethodGet, version, "/maintenance-requests", api.query, authen)
	app.HandlerFunc(http.MethodPost, version, "/maintenance-requests", api.create, authen, tran)
	app.HandlerFunc(http.MethodGet, version, "/maintenance-requests/kanban", api.kanban, authen)
	app.HandlerFunc(http.MethodGet, version, "/maintenance-requests/calendar", api.calendar, authen)
	app.HandlerFunc(http.MethodGet, version, "/maintenance-requests/my_tasks", api.myTasks, authen)
	app.HandlerFunc(http.MethodGet, version, "/maintenance-requests/my_reports", api.myReports, authen)
	app.HandlerFunc(http.MethodGet, version, "/maintenance-requests/{request_id}", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, version, "/maintenance-requests/{request_id}", api.update, authen, tran)
	app.HandlerFunc(http.MethodDelete, version, "/maintenance-requests/{request_id}", api.delete, authen, staff)
}
