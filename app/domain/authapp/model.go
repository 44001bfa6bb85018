package authapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/password"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// TokenPair carries the access/refresh credentials issued on login, register
// and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Encode implements the web.Encoder interface.
func (t TokenPair) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

// =============================================================================

// Register defines the data needed to register a company owner.
type Register struct {
	CompanyName     string `json:"companyName" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *Register) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Register) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusRegister(app Register) (companybus.NewCompany, userbus.NewUser, error) {
	companyName, err := name.Parse(app.CompanyName)
	if err != nil {
		return companybus.NewCompany{}, userbus.NewUser{}, fmt.Errorf("parse company name: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return companybus.NewCompany{}, userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return companybus.NewCompany{}, userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return companybus.NewCompany{}, userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	nc := companybus.NewCompany{
		Name: companyName,
	}

	nu := userbus.NewUser{
		Name:     nme,
		Email:    *addr,
		Password: pass,
	}

	return nc, nu, nil
}

// =============================================================================

// Registered is the register response: the new identity plus credentials.
type Registered struct {
	UserID      string    `json:"userId"`
	CompanyID   string    `json:"companyId"`
	CompanyName string    `json:"companyName"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Tokens      TokenPair `json:"tokens"`
}

// Encode implements the web.Encoder interface.
func (r Registered) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// HTTPStatus implements the web httpStatus interface.
func (r Registered) HTTPStatus() int {
	return 201
}

func toAppRegistered(usr userbus.User, cmp companybus.Company, pair TokenPair) Registered {
	return Registered{
		UserID:      usr.ID.String(),
		CompanyID:   cmp.ID.String(),
		CompanyName: cmp.Name.String(),
		Name:        usr.Name.String(),
		Email:       usr.Email.Address,
		Role:        usr.Role.String(),
		Tokens:      pair,
	}
}

// =============================================================================

// Login defines the data needed to log in.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// Refresh carries the refresh token for rotation and logout.
type Refresh struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Refresh) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Refresh) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// Me represents the authenticated user's identity.
type Me struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Enabled     bool   `json:"enabled"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (m Me) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMe(usr userbus.User) Me {
	return Me{
		ID:          usr.ID.String(),
		CompanyID:   usr.CompanyID.String(),
		Name:        usr.Name.String(),
		Email:       usr.Email.Address,
		Role:        usr.Role.String(),
		Enabled:     usr.Enabled,
		DateCreated: usr.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// Role represents one known role and its label.
type Role struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Roles is the list payload for the roles endpoint.
type Roles []Role

// Encode implements the web.Encoder interface.
func (r Roles) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppRoles(roles []role.Role) Roles {
	app := make(Roles, len(roles))
	for i, r := range roles {
		app[i] = Role{
			Value: r.String(),
			Label: r.Label(),
		}
	}
	return app
}
