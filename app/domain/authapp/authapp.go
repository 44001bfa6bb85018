// Package authapp maintains the app layer api for the auth domain:
// registration, credential exchange and session rotation.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/auth"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/app/sdk/mid"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/domain/sessionbus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/business/types/role"
)

type app struct {
	auth       *auth.Auth
	companyBus *companybus.Core
	userBus    *userbus.Core
	sessionBus *sessionbus.Core
}

// newApp constructs an auth app API for use.
func newApp(ath *auth.Auth, companyBus *companybus.Core, userBus *userbus.Core, sessionBus *sessionbus.Core) *app {
	return &app{
		auth:       ath,
		companyBus: companyBus,
		userBus:    userBus,
		sessionBus: sessionBus,
	}
}

// register cria (ou reutiliza) a company pelo nome e cria o primeiro usuário
// como COMPANY_OWNER. Runs under a transaction so the company is not left
// without its owner.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var req Register
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nc, nu, err := toBusRegister(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyBus, userBus, sessionBus, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	cmp, err := companyBus.GetOrCreate(ctx, nc)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "getorcreate: company[%+v]: %s", nc, err)
	}

	nu.CompanyID = cmp.ID
	nu.Role = role.CompanyOwner

	usr, err := userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: usr[%+v]: %s", nu, err)
	}

	pair, err := a.mintTokenPair(ctx, sessionBus, usr)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppRegistered(usr, cmp, pair)
}

// login exchanges credentials for an access/refresh token pair.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	pair, err := a.mintTokenPair(ctx, a.sessionBus, usr)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return pair
}

// refresh rotates the session: the presented refresh token is revoked and a
// new pair is minted.
func (a *app) refresh(ctx context.Context, r *http.Request) web.Encoder {
	var req Refresh
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	claims, err := a.auth.AuthenticateRefresh(ctx, req.RefreshToken)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return errs.New(errs.Unauthenticated, fmt.Errorf("invalid token id: %w", err))
	}

	ses, err := a.sessionBus.Validate(ctx, tokenID)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	usr, err := a.userBus.QueryByID(ctx, ses.UserID)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := a.sessionBus.Revoke(ctx, tokenID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "revoke: tokenID[%s]: %s", tokenID, err)
	}

	pair, err := a.mintTokenPair(ctx, a.sessionBus, usr)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return pair
}

// logout revokes the presented refresh token. Access tokens are left to
// expire on their own.
func (a *app) logout(ctx context.Context, r *http.Request) web.Encoder {
	var req Refresh
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	claims, err := a.auth.AuthenticateRefresh(ctx, req.RefreshToken)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("invalid token id: %w", err))
	}

	if err := a.sessionBus.Revoke(ctx, tokenID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "revoke: tokenID[%s]: %s", tokenID, err)
	}

	return nil
}

// me returns the authenticated user's identity.
func (a *app) me(ctx context.Context, _ *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: userID[%s]: %s", userID, err)
	}

	return toAppMe(usr)
}

// roles lists the roles the system knows, with their labels.
func (a *app) roles(ctx context.Context, _ *http.Request) web.Encoder {
	return toAppRoles(role.All())
}

func (a *app) mintTokenPair(ctx context.Context, sessionBus *sessionbus.Core, usr userbus.User) (TokenPair, error) {
	access, err := a.auth.GenerateAccessToken(usr.ID, usr.CompanyID, usr.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	tokenID := uuid.New()

	refresh, expiresAt, err := a.auth.GenerateRefreshToken(usr.ID, usr.CompanyID, usr.Role, tokenID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if _, err := sessionBus.Create(ctx, sessionbus.NewSession{
		TokenID:   tokenID,
		UserID:    usr.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return TokenPair{}, fmt.Errorf("create session: %w", err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (a *app) newWithTx(ctx context.Context) (*companybus.Core, *userbus.Core, *sessionbus.Core, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	companyBus, err := a.companyBus.NewWithTx(tx)
	if err != nil {
		return nil, nil, nil, err
	}

	userBus, err := a.userBus.NewWithTx(tx)
	if err != nil {
		return nil, nil, nil, err
	}

	sessionBus, err := a.sessionBus.NewWithTx(tx)
	if err != nil {
		return nil, nil, nil, err
	}

	return companyBus, userBus, sessionBus, nil
}
