package companyapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// Company represents information about the tenant.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Company) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCompany(bus companybus.Company) Company {
	return Company{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// UpdateCompany defines the data needed to update the company.
type UpdateCompany struct {
	Name *string `json:"name"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCompany(app UpdateCompany) (companybus.UpdateCompany, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	return companybus.UpdateCompany{
		Name: nme,
	}, nil
}
