package employeeapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/password"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// Employee represents information about an individual employee.
type Employee struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Encode implements the encoder interface.
func (app Employee) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppEmployee(usr userbus.User) Employee {
	return Employee{
		ID:        usr.ID.String(),
		CompanyID: usr.CompanyID.String(),
		Name:      usr.Name.String(),
		Email:     usr.Email.Address,
		Role:      usr.Role.String(),
		Enabled:   usr.Enabled,
		CreatedAt: usr.CreatedAt.Format(time.RFC3339),
		UpdatedAt: usr.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppEmployees(usrs []userbus.User) []Employee {
	app := make([]Employee, len(usrs))
	for i, usr := range usrs {
		app[i] = toAppEmployee(usr)
	}

	return app
}

// CreatedEmployee wraps a created employee so the handler can answer 201.
type CreatedEmployee struct {
	Employee
}

// HTTPStatus implements the web package status interface.
func (app CreatedEmployee) HTTPStatus() int {
	return http.StatusCreated
}

// NewEmployee defines the data needed to add a new employee.
type NewEmployee struct {
	Name            string `json:"name" validate:"required,min=3,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Decode implements the decoder interface.
func (app *NewEmployee) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewEmployee) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewUser(app NewEmployee) (userbus.NewUser, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	rle, err := role.Parse(app.Role)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse role: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	nu := userbus.NewUser{
		Name:     nme,
		Email:    *addr,
		Role:     rle,
		Password: pass,
	}

	return nu, nil
}

// NewManager defines the data needed to add a new manager.
type NewManager struct {
	Name            string `json:"name" validate:"required,min=3,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Decode implements the decoder interface.
func (app *NewManager) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewManager) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

// UpdateEmployee defines the data that can be changed on an employee.
type UpdateEmployee struct {
	Name            *string `json:"name" validate:"omitempty,min=3,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Role            *string `json:"role"`
	Password        *string `json:"password" validate:"omitempty,min=8"`
	PasswordConfirm *string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
}

// Decode implements the decoder interface.
func (app *UpdateEmployee) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateEmployee) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusUpdateUser(app UpdateEmployee) (userbus.UpdateUser, error) {
	var uu userbus.UpdateUser

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse name: %w", err)
		}
		uu.Name = &nme
	}

	if app.Email != nil {
		addr, err := mail.ParseAddress(*app.Email)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse email: %w", err)
		}
		uu.Email = addr
	}

	if app.Role != nil {
		rle, err := role.Parse(*app.Role)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse role: %w", err)
		}
		uu.Role = &rle
	}

	if app.Password != nil {
		pass, err := password.Parse(*app.Password)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse password: %w", err)
		}
		uu.Password = &pass
	}

	return uu, nil
}
