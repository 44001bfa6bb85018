// Package auth provides authentication and authorization support.
// Authentication: You are who you say you are.
// Authorization:  You have permission to do what you are asking to do.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/jcpaschoal/manfix/foundation/logger"
)

// Erros padronizados do pacote de autenticação
var (
	ErrForbidden    = errors.New("attempted action is not allowed")
	ErrKIDMissing   = errors.New("kid missing from token header")
	ErrKIDMalformed = errors.New("kid in token header is malformed")
	ErrUserDisabled = errors.New("user is disabled")
	ErrInvalidRole  = errors.New("token contains an invalid role")
	ErrWrongKind    = errors.New("token is of the wrong kind")
)

// The two kinds of token the service mints. Access tokens carry identity on
// every call, refresh tokens only mint new access tokens and carry the
// session id as jti.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	Kind      string `json:"kind"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log        *logger.Logger
	UserBus    *userbus.Core // Usado para validar se o usuário está ativo/enabled
	KeyLookup  KeyLookup
	ActiveKID  string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Auth is used to authenticate clients.
type Auth struct {
	log        *logger.Logger
	keyLookup  KeyLookup
	userBus    *userbus.Core
	method     jwt.SigningMethod
	parser     *jwt.Parser
	activeKID  string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) *Auth {
	accessTTL := cfg.AccessTTL
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}

	refreshTTL := cfg.RefreshTTL
	if refreshTTL == 0 {
		refreshTTL = 24 * time.Hour
	}

	return &Auth{
		log:        cfg.Log,
		keyLookup:  cfg.KeyLookup,
		userBus:    cfg.UserBus,
		method:     jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		activeKID:  cfg.ActiveKID,
		issuer:     cfg.Issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// RefreshTTL provides the configured refresh token lifetime.
func (a *Auth) RefreshTTL() time.Duration {
	return a.refreshTTL
}

// GenerateAccessToken generates a signed JWT representing the user Claims.
func (a *Auth) GenerateAccessToken(userID uuid.UUID, companyID uuid.UUID, r role.Role) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CompanyID: companyID.String(),
		Role:      r.String(),
		Kind:      KindAccess,
	}

	return a.sign(claims)
}

// GenerateRefreshToken generates a signed refresh JWT carrying the session id
// as jti so it can be revoked server side. Returns the token and its expiry.
func (a *Auth) GenerateRefreshToken(userID uuid.UUID, companyID uuid.UUID, r role.Role, tokenID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.refreshTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   userID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CompanyID: companyID.String(),
		Role:      r.String(),
		Kind:      KindRefresh,
	}

	str, err := a.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}

	return str, expiresAt, nil
}

// Authenticate processes the bearer token to validate the sender is who they
// say they are. Only access tokens pass here.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	claims, err := a.verify(bearerToken[7:])
	if err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "err", err)
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if claims.Kind != KindAccess {
		return Claims{}, ErrWrongKind
	}

	// Verifica no banco se o usuário ainda está ativo/habilitado
	if err := a.isUserEnabled(ctx, claims); err != nil {
		return Claims{}, fmt.Errorf("user not enabled: %w", err)
	}

	return claims, nil
}

// AuthenticateRefresh validates a raw refresh token string. The caller still
// checks the server-side session named by the jti before trusting it.
func (a *Auth) AuthenticateRefresh(ctx context.Context, refreshToken string) (Claims, error) {
	claims, err := a.verify(refreshToken)
	if err != nil {
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if claims.Kind != KindRefresh {
		return Claims{}, ErrWrongKind
	}

	if err := a.isUserEnabled(ctx, claims); err != nil {
		return Claims{}, fmt.Errorf("user not enabled: %w", err)
	}

	return claims, nil
}

// Authorize checks if the claims possess ONE OF the required roles.
func (a *Auth) Authorize(ctx context.Context, claims Claims, allowedRoles ...role.Role) error {
	// Se nenhuma role for passada na rota, bloqueia por padrão (Secure by Default).
	if len(allowedRoles) == 0 {
		return fmt.Errorf("%w: no roles authorized for this endpoint", ErrForbidden)
	}

	for _, r := range allowedRoles {
		if claims.Role == r.String() {
			return nil
		}
	}

	return fmt.Errorf("%w: user role %q is not in the allowed list %v", ErrForbidden, claims.Role, allowedRoles)
}

// Login exchanges credentials for the authenticated user.
func (a *Auth) Login(ctx context.Context, email mail.Address, password string) (userbus.User, error) {
	usr, err := a.userBus.Authenticate(ctx, email, password)
	if err != nil {
		return userbus.User{}, fmt.Errorf("invalid credentials: %w", err)
	}

	return usr, nil
}

func (a *Auth) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = a.activeKID

	privateKeyPEM, err := a.keyLookup.PrivateKey(a.activeKID)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

func (a *Auth) verify(jwtUnverified string) (Claims, error) {
	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	if err := a.verifySignatureAndClaims(jwtUnverified, pem); err != nil {
		return Claims{}, err
	}

	// Valida se a Role que está no token é uma Role conhecida pelo sistema.
	if _, err := role.Parse(claims.Role); err != nil {
		return Claims{}, ErrInvalidRole
	}

	return claims, nil
}

// isUserEnabled checks if the user is active in the database.
func (a *Auth) isUserEnabled(ctx context.Context, claims Claims) error {
	if a.userBus == nil {
		return nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return fmt.Errorf("parsing user ID %q from claims: %w", claims.Subject, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	if !usr.Enabled {
		return ErrUserDisabled
	}

	return nil
}

// verifySignatureAndClaims parses the token with the public key, validates the signature, and checks the issuer claim.
func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) error {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return fmt.Errorf("validating token signature: %w", err)
	}

	if !token.Valid {
		return errors.New("token is invalid")
	}

	if claims.Issuer != a.issuer {
		return fmt.Errorf("invalid issuer: expected %q, got %q", a.issuer, claims.Issuer)
	}

	return nil
}
