package equipmentapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// Equipment represents information about an individual asset.
type Equipment struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"companyId"`
	Name                string  `json:"name"`
	SerialNumber        string  `json:"serialNumber"`
	Department          string  `json:"department,omitempty"`
	Location            string  `json:"location,omitempty"`
	AssignedEmployee    string  `json:"assignedEmployee,omitempty"`
	PurchaseDate        string  `json:"purchaseDate,omitempty"`
	WarrantyExpiryDate  string  `json:"warrantyExpiryDate,omitempty"`
	TeamID              string  `json:"teamId"`
	DefaultTechnicianID string  `json:"defaultTechnicianId,omitempty"`
	IsScrapped          bool    `json:"isScrapped"`
	OpenRequestCount    int     `json:"openRequestCount"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// Encode implements the encoder interface.
func (app Equipment) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppEquipment(eqp equipmentbus.Equipment) Equipment {
	app := Equipment{
		ID:               eqp.ID.String(),
		CompanyID:        eqp.CompanyID.String(),
		Name:             eqp.Name.String(),
		SerialNumber:     eqp.SerialNumber,
		Department:       eqp.Department.String(),
		Location:         eqp.Location.String(),
		AssignedEmployee: eqp.AssignedEmployee.String(),
		TeamID:           eqp.TeamID.String(),
		IsScrapped:       eqp.IsScrapped,
		OpenRequestCount: eqp.OpenRequestCount,
		CreatedAt:        eqp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        eqp.UpdatedAt.Format(time.RFC3339),
	}

	if eqp.PurchaseDate != nil {
		app.PurchaseDate = eqp.PurchaseDate.Format(time.DateOnly)
	}

	if eqp.WarrantyExpiryDate != nil {
		app.WarrantyExpiryDate = eqp.WarrantyExpiryDate.Format(time.DateOnly)
	}

	if eqp.DefaultTechnicianID != nil {
		app.DefaultTechnicianID = eqp.DefaultTechnicianID.String()
	}

	return app
}

func toAppEquipments(eqps []equipmentbus.Equipment) []Equipment {
	app := make([]Equipment, len(eqps))
	for i, eqp := range eqps {
		app[i] = toAppEquipment(eqp)
	}

	return app
}

// CreatedEquipment wraps a created asset so the handler can answer 201.
type CreatedEquipment struct {
	Equipment
}

// HTTPStatus implements the web package status interface.
func (app CreatedEquipment) HTTPStatus() int {
	return http.StatusCreated
}

// HistoryEntry summarizes one maintenance request on the asset's history.
type HistoryEntry struct {
	ID            string   `json:"id"`
	Subject       string   `json:"subject"`
	RequestType   string   `json:"requestType"`
	Status        string   `json:"status"`
	ScheduledDate string   `json:"scheduledDate,omitempty"`
	DurationHours *float64 `json:"durationHours,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

func toAppHistory(reqs []requestbus.Request) []HistoryEntry {
	app := make([]HistoryEntry, len(reqs))
	for i, req := range reqs {
		entry := HistoryEntry{
			ID:            req.ID.String(),
			Subject:       req.Subject.String(),
			RequestType:   req.Type.String(),
			Status:        req.Status.String(),
			DurationHours: req.DurationHours,
			CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		}

		if req.ScheduledDate != nil {
			entry.ScheduledDate = req.ScheduledDate.Format(time.DateOnly)
		}

		app[i] = entry
	}

	return app
}

// NewEquipment defines the data needed to register a new asset.
type NewEquipment struct {
	Name                string  `json:"name" validate:"required,min=3,max=100"`
	SerialNumber        string  `json:"serialNumber" validate:"required,min=1,max=50"`
	Department          string  `json:"department"`
	Location            string  `json:"location"`
	AssignedEmployee    string  `json:"assignedEmployee"`
	PurchaseDate        string  `json:"purchaseDate"`
	WarrantyExpiryDate  string  `json:"warrantyExpiryDate"`
	TeamID              string  `json:"teamId" validate:"required,uuid"`
	DefaultTechnicianID *string `json:"defaultTechnicianId" validate:"omitempty,uuid"`
}

// Decode implements the decoder interface.
func (app *NewEquipment) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewEquipment) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewEquipment(app NewEquipment, companyID uuid.UUID) (equipmentbus.NewEquipment, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse name: %w", err)
	}

	department, err := name.ParseNull(app.Department)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse department: %w", err)
	}

	location, err := name.ParseNull(app.Location)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse location: %w", err)
	}

	assigned, err := name.ParseNull(app.AssignedEmployee)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse assigned employee: %w", err)
	}

	purchaseDate, err := parseDate(app.PurchaseDate)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse purchase date: %w", err)
	}

	warrantyDate, err := parseDate(app.WarrantyExpiryDate)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse warranty expiry date: %w", err)
	}

	teamID, err := uuid.Parse(app.TeamID)
	if err != nil {
		return equipmentbus.NewEquipment{}, fmt.Errorf("parse team id: %w", err)
	}

	ne := equipmentbus.NewEquipment{
		CompanyID:          companyID,
		Name:               nme,
		SerialNumber:       app.SerialNumber,
		Department:         department,
		Location:           location,
		AssignedEmployee:   assigned,
		PurchaseDate:       purchaseDate,
		WarrantyExpiryDate: warrantyDate,
		TeamID:             teamID,
	}

	if app.DefaultTechnicianID != nil {
		technicianID, err := uuid.Parse(*app.DefaultTechnicianID)
		if err != nil {
			return equipmentbus.NewEquipment{}, fmt.Errorf("parse default technician id: %w", err)
		}
		ne.DefaultTechnicianID = &technicianID
	}

	return ne, nil
}

// UpdateEquipment defines the data that can be changed on an asset.
type UpdateEquipment struct {
	Name                *string `json:"name" validate:"omitempty,min=3,max=100"`
	SerialNumber        *string `json:"serialNumber" validate:"omitempty,min=1,max=50"`
	Department          *string `json:"department"`
	Location            *string `json:"location"`
	AssignedEmployee    *string `json:"assignedEmployee"`
	PurchaseDate        *string `json:"purchaseDate"`
	WarrantyExpiryDate  *string `json:"warrantyExpiryDate"`
	TeamID              *string `json:"teamId" validate:"omitempty,uuid"`
	DefaultTechnicianID *string `json:"defaultTechnicianId" validate:"omitempty,uuid"`
}

// Decode implements the decoder interface.
func (app *UpdateEquipment) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateEquipment) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusUpdateEquipment(app UpdateEquipment) (equipmentbus.UpdateEquipment, error) {
	var ue equipmentbus.UpdateEquipment

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse name: %w", err)
		}
		ue.Name = &nme
	}

	if app.SerialNumber != nil {
		ue.SerialNumber = app.SerialNumber
	}

	if app.Department != nil {
		department, err := name.ParseNull(*app.Department)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse department: %w", err)
		}
		ue.Department = &department
	}

	if app.Location != nil {
		location, err := name.ParseNull(*app.Location)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse location: %w", err)
		}
		ue.Location = &location
	}

	if app.AssignedEmployee != nil {
		assigned, err := name.ParseNull(*app.AssignedEmployee)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse assigned employee: %w", err)
		}
		ue.AssignedEmployee = &assigned
	}

	if app.PurchaseDate != nil {
		purchaseDate, err := parseDate(*app.PurchaseDate)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse purchase date: %w", err)
		}
		ue.PurchaseDate = purchaseDate
	}

	if app.WarrantyExpiryDate != nil {
		warrantyDate, err := parseDate(*app.WarrantyExpiryDate)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse warranty expiry date: %w", err)
		}
		ue.WarrantyExpiryDate = warrantyDate
	}

	if app.TeamID != nil {
		teamID, err := uuid.Parse(*app.TeamID)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse team id: %w", err)
		}
		ue.TeamID = &teamID
	}

	if app.DefaultTechnicianID != nil {
		technicianID, err := uuid.Parse(*app.DefaultTechnicianID)
		if err != nil {
			return equipmentbus.UpdateEquipment{}, fmt.Errorf("parse default technician id: %w", err)
		}
		ue.DefaultTechnicianID = &technicianID
	}

	return ue, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
