// Package employeeapp maintains the app layer api for employee provisioning.
// Who may create, toggle, update or delete whom is decided by the permit
// table, never by role comparisons in the handlers.
package employeeapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/app/sdk/query"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
	"github.com/jcpaschoal/manfix/business/sdk/page"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/actions"
	"github.com/jcpaschoal/manfix/business/types/role"
)

type app struct {
	permit  *auth.Permit
	userBus *userbus.Core
}

// newApp constructs an employee app API for use.
func newApp(permit *auth.Permit, userBus *userbus.Core) *app {
	return &app{
		permit:  permit,
		userBus: userBus,
	}
}

// create adds a new employee under the requestor's company.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewEmployee
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	return a.provision(ctx, nu)
}

// createManager adds a new manager. Same flow as create with the target role
// fixed, so the permit table only lets an owner through.
func (a *app) createManager(ctx context.Context, r *http.Request) web.Encoder {
	var app NewManager
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(NewEmployee{
		Name:            app.Name,
		Email:           app.Email,
		Role:            role.Manager.String(),
		Password:        app.Password,
		PasswordConfirm: app.PasswordConfirm,
	})
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	return a.provision(ctx, nu)
}

func (a *app) provision(ctx context.Context, nu userbus.NewUser) web.Encoder {
	claims := mid.GetClaims(ctx)

	actorRole, err := role.Parse(claims.Role)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := a.permit.Allow(actorRole, actions.Create, nu.Role); err != nil {
		return errs.New(errs.PermissionDenied, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}
	nu.CompanyID = companyID

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: usr[%+v]: %s", nu, err)
	}

	return &CreatedEmployee{Employee: toAppEmployee(usr)}
}

// allowRoleChange gates the role field of an update. Assigning a role is a
// provisioning act, so the actor must be allowed to create that role, or a
// manager could promote a user to owner.
func (a *app) allowRoleChange(claims auth.Claims, uu userbus.UpdateUser) web.Encoder {
	if uu.Role == nil {
		return nil
	}

	actorRole, err := role.Parse(claims.Role)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := a.permit.Allow(actorRole, actions.Create, *uu.Role); err != nil {
		return errs.New(errs.PermissionDenied, err)
	}

	return nil
}

// update updates an existing employee. The permit check on the target user
// already ran in the middleware that resolved it; the role field gets its
// own gate above.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateEmployee
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if encErr := a.allowRoleChange(mid.GetClaims(ctx), uu); encErr != nil {
		return encErr
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s] uu[%+v]: %s", usr.ID, uu, err)
	}

	return toAppEmployee(updUsr)
}

// toggleStatus flips the employee's enabled flag.
func (a *app) toggleStatus(ctx context.Context, _ *http.Request) web.Encoder {
	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	updUsr, err := a.userBus.ToggleEnabled(ctx, usr)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "toggle: userID[%s]: %s", usr.ID, err)
	}

	return toAppEmployee(updUsr)
}

// delete removes an employee from the system.
func (a *app) delete(ctx context.Context, _ *http.Request) web.Encoder {
	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	if err := a.userBus.Delete(ctx, usr); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: userID[%s]: %s", usr.ID, err)
	}

	return nil
}

// query returns a list of employees with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEmployees(usrs), total, page)
}

// queryManagers returns the company's managers with paging.
func (a *app) queryManagers(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)
	qp.Role = role.Manager.String()

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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEmployees(usrs), total, page)
}

// queryByID returns an employee by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	id := web.Param(r, "user_id")

	userID, err := uuid.Parse(id)
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: userID[%s]: %s", userID, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if usr.CompanyID != companyID {
		return errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	return toAppEmployee(usr)
}
