package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/actions"
	"github.com/jcpaschoal/manfix/business/types/role"
)

var ErrInvalidID = errors.New("ID is not in its proper form")

// Authorize valida se o usuário autenticado possui uma das roles permitidas
// para a rota.
func Authorize(ath *auth.Auth, allowedRoles ...role.Role) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)

			if err := ath.Authorize(ctx, claims, allowedRoles...); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeUser resolves the user named by the user_id route param, checks the
// permit table for (actor role, action, target role) and stores the target in
// the context for the handler. Cross-tenant ids come back as NotFound so ids
// never leak between companies.
func AuthorizeUser(permit *auth.Permit, userBus *userbus.Core, action actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			id := web.Param(r, "user_id")

			userID, err := uuid.Parse(id)
			if err != nil {
				return errs.New(errs.InvalidArgument, ErrInvalidID)
			}

			usr, err := userBus.QueryByID(ctx, userID)
			if err != nil {
				if errors.Is(err, userbus.ErrNotFound) {
					return errs.New(errs.NotFound, err)
				}
				return errs.Errorf(errs.Internal, "querybyid: userID[%s]: %s", userID, err)
			}

			companyID, err := GetCompanyID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if usr.CompanyID != companyID {
				return errs.New(errs.NotFound, userbus.ErrNotFound)
			}

			claims := GetClaims(ctx)
			actorRole, err := role.Parse(claims.Role)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if err := permit.Allow(actorRole, action, usr.Role); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			ctx = setUser(ctx, usr)

			return next(ctx, r)
		}

		return h
	}

	return m
}
