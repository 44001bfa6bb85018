package requestapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
)

// Request represents information about an individual maintenance request.
type Request struct {
	ID            string   `json:"id"`
	CompanyID     string   `json:"companyId"`
	EquipmentID   string   `json:"equipmentId"`
	TeamID        string   `json:"teamId,omitempty"`
	TechnicianID  string   `json:"technicianId,omitempty"`
	RequestType   string   `json:"requestType"`
	Status        string   `json:"status"`
	Subject       string   `json:"subject"`
	Description   string   `json:"description"`
	ScheduledDate string   `json:"scheduledDate,omitempty"`
	DurationHours *float64 `json:"durationHours,omitempty"`
	CreatedBy     string   `json:"createdBy"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// Encode implements the encoder interface.
func (app Request) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppRequest(req requestbus.Request) Request {
	app := Request{
		ID:            req.ID.String(),
		CompanyID:     req.CompanyID.String(),
		EquipmentID:   req.EquipmentID.String(),
		RequestType:   req.Type.String(),
		Status:        req.Status.String(),
		Subject:       req.Subject.String(),
		Description:   req.Description,
		DurationHours: req.DurationHours,
		CreatedBy:     req.CreatedBy.String(),
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     req.UpdatedAt.Format(time.RFC3339),
	}

	if req.TeamID != nil {
		app.TeamID = req.TeamID.String()
	}

	if req.TechnicianID != nil {
		app.TechnicianID = req.TechnicianID.String()
	}

	if req.ScheduledDate != nil {
		app.ScheduledDate = req.ScheduledDate.Format(time.DateOnly)
	}

	return app
}

func toAppRequests(reqs []requestbus.Request) []Request {
	app := make([]Request, len(reqs))
	for i, req := range reqs {
		app[i] = toAppRequest(req)
	}

	return app
}

// CreatedRequest wraps a created request so the handler can answer 201.
type CreatedRequest struct {
	Request
}

// HTTPStatus implements the web package status interface.
func (app CreatedRequest) HTTPStatus() int {
	return http.StatusCreated
}

// KanbanColumn is one status bucket of the kanban board.
type KanbanColumn struct {
	Status   string    `json:"status"`
	Requests []Request `json:"requests"`
}

// KanbanBoard holds the complete board, one column per status.
type KanbanBoard struct {
	Columns []KanbanColumn `json:"columns"`
}

// Encode implements the encoder interface.
func (app KanbanBoard) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppKanban(columns []requestbus.KanbanColumn) KanbanBoard {
	board := KanbanBoard{
		Columns: make([]KanbanColumn, len(columns)),
	}

	for i, col := range columns {
		board.Columns[i] = KanbanColumn{
			Status:   col.Status.String(),
			Requests: toAppRequests(col.Requests),
		}
	}

	return board
}

// CalendarResult holds the preventive requests inside the asked window.
type CalendarResult struct {
	Items []Request `json:"items"`
}

// Encode implements the encoder interface.
func (app CalendarResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// NewRequest defines the data needed to open a maintenance request.
type NewRequest struct {
	EquipmentID   string   `json:"equipmentId" validate:"required,uuid"`
	TeamID        *string  `json:"teamId" validate:"omitempty,uuid"`
	TechnicianID  *string  `json:"technicianId" validate:"omitempty,uuid"`
	RequestType   string   `json:"requestType" validate:"required"`
	Status        string   `json:"status"`
	Subject       string   `json:"subject" validate:"required,min=3,max=100"`
	Description   string   `json:"description" validate:"required"`
	ScheduledDate *string  `json:"scheduledDate"`
	DurationHours *float64 `json:"durationHours" validate:"omitempty,gt=0"`
}

// Decode implements the decoder interface.
func (app *NewRequest) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewRequest) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewRequest(app NewRequest, companyID uuid.UUID, createdBy uuid.UUID) (requestbus.NewRequest, error) {
	equipmentID, err := uuid.Parse(app.EquipmentID)
	if err != nil {
		return requestbus.NewRequest{}, fmt.Errorf("parse equipment id: %w", err)
	}

	typ, err := requesttype.Parse(app.RequestType)
	if err != nil {
		return requestbus.NewRequest{}, fmt.Errorf("parse request type: %w", err)
	}

	subject, err := name.Parse(app.Subject)
	if err != nil {
		return requestbus.NewRequest{}, fmt.Errorf("parse subject: %w", err)
	}

	nr := requestbus.NewRequest{
		CompanyID:     companyID,
		EquipmentID:   equipmentID,
		Type:          typ,
		Subject:       subject,
		Description:   app.Description,
		DurationHours: app.DurationHours,
		CreatedBy:     createdBy,
	}

	if app.Status != "" {
		status, err := requeststatus.Parse(app.Status)
		if err != nil {
			return requestbus.NewRequest{}, fmt.Errorf("parse status: %w", err)
		}
		nr.Status = status
	}

	if app.TeamID != nil {
		teamID, err := uuid.Parse(*app.TeamID)
		if err != nil {
			return requestbus.NewRequest{}, fmt.Errorf("parse team id: %w", err)
		}
		nr.TeamID = &teamID
	}

	if app.TechnicianID != nil {
		technicianID, err := uuid.Parse(*app.TechnicianID)
		if err != nil {
			return requestbus.NewRequest{}, fmt.Errorf("parse technician id: %w", err)
		}
		nr.TechnicianID = &technicianID
	}

	if app.ScheduledDate != nil {
		t, err := time.Parse(time.DateOnly, *app.ScheduledDate)
		if err != nil {
			return requestbus.NewRequest{}, fmt.Errorf("parse scheduled date: %w", err)
		}
		nr.ScheduledDate = &t
	}

	return nr, nil
}

// UpdateRequest defines the data that can be changed on a request.
type UpdateRequest struct {
	TeamID        *string  `json:"teamId" validate:"omitempty,uuid"`
	TechnicianID  *string  `json:"technicianId" validate:"omitempty,uuid"`
	RequestType   *string  `json:"requestType"`
	Status        *string  `json:"status"`
	Subject       *string  `json:"subject" validate:"omitempty,min=3,max=100"`
	Description   *string  `json:"description"`
	ScheduledDate *string  `json:"scheduledDate"`
	DurationHours *float64 `json:"durationHours" validate:"omitempty,gt=0"`
}

// Decode implements the decoder interface.
func (app *UpdateRequest) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateRequest) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusUpdateRequest(app UpdateRequest) (requestbus.UpdateRequest, error) {
	var ur requestbus.UpdateRequest

	if app.TeamID != nil {
		teamID, err := uuid.Parse(*app.TeamID)
		if err != nil {
			return requestbus.UpdateRequest{}, fmt.Errorf("parse team id: %w", err)
		}
		ur.TeamID = &teamID
	}

	if app.TechnicianID != nil {
		technicianID, err := uuid.Parse(*app.TechnicianID)
		if err != nil {
			return requestbus.UpdateRequest{}, fmt.Errorf("parse technician id: %w", err)
		}
		ur.TechnicianID = &technicianID
	}

	if app.RequestType != nil {
		typ, err := requesttype.Parse(*app.RequestType)
		if err != nil {
			return requestbus.UpdateRequest{}, fmt.Errorf("parse request type: %w", err)
		}
		ur.Type = &typ
	}

	if app.Status != nil {
		status, err := requeststatus.Parse(*app.Status)
		if err != nil {
			return requestbus.UpdateRequest{}, fmt.Errorf("parse status: %w", err)
		}
		ur.Status = &status
	}

	if app.Subject != nil {
		subject, err := name.Parse(*app.Subject)
		if err != nil {
			return requestbus.UpdateRequest{}, fmt.Errorf("parse subject: %w", err)
		}
		ur.Subject = &subject
	}

	if app.Description != nil {
		ur.Description = app.Description
	}

	if app.ScheduledDate != nil {
		t, err := time.Parse(time.DateOnly, *app.ScheduledDate)
		if err != nil {
			return requestbus.UpdateRequest{}, fmt.Errorf("parse scheduled date: %w", err)
		}
		ur.ScheduledDate = &t
	}

	if app.DurationHours != nil {
		ur.DurationHours = app.DurationHours
	}

	return ur, nil
}
