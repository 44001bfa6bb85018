package requestapp

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
)

// queryParams struct interna para capturar os dados crus da URL.
type queryParams struct {
	Page               string
	Rows               string
	OrderBy            string
	ID                 string
	EquipmentID        string
	TeamID             string
	TechnicianID       string
	Type               string
	Status             string
	StartScheduledDate string
	EndScheduledDate   string
}

// parseQueryParams extrai os parâmetros da request.
func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:               values.Get("page"),
		Rows:               values.Get("rows"),
		OrderBy:            values.Get("orderBy"),
		ID:                 values.Get("request_id"),
		EquipmentID:        values.Get("equipment_id"),
		TeamID:             values.Get("team_id"),
		TechnicianID:       values.Get("technician_id"),
		Type:               values.Get("request_type"),
		Status:             values.Get("status"),
		StartScheduledDate: values.Get("start_scheduled_date"),
		EndScheduledDate:   values.Get("end_scheduled_date"),
	}
}

// parseFilter valida e converte os parâmetros crus para o filtro de domínio.
func parseFilter(qp queryParams, companyID uuid.UUID) (requestbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors

	filter := requestbus.QueryFilter{
		CompanyID: companyID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("request_id", err)
		}
	}

	if qp.EquipmentID != "" {
		id, err := uuid.Parse(qp.EquipmentID)
		switch err {
		case nil:
			filter.EquipmentID = &id
		default:
			fieldErrors.Add("equipment_id", err)
		}
	}

	if qp.TeamID != "" {
		id, err := uuid.Parse(qp.TeamID)
		switch err {
		case nil:
			filter.TeamID = &id
		default:
			fieldErrors.Add("team_id", err)
		}
	}

	if qp.TechnicianID != "" {
		id, err := uuid.Parse(qp.TechnicianID)
		switch err {
		case nil:
			filter.TechnicianID = &id
		default:
			fieldErrors.Add("technician_id", err)
		}
	}

	if qp.Type != "" {
		typ, err := requesttype.Parse(qp.Type)
		switch err {
		case nil:
			filter.Type = &typ
		default:
			fieldErrors.Add("request_type", err)
		}
	}

	if qp.Status != "" {
		status, err := requeststatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.StartScheduledDate != "" {
		t, err := time.Parse(time.DateOnly, qp.StartScheduledDate)
		switch err {
		case nil:
			filter.StartScheduledDate = &t
		default:
			fieldErrors.Add("start_scheduled_date", err)
		}
	}

	if qp.EndScheduledDate != "" {
		t, err := time.Parse(time.DateOnly, qp.EndScheduledDate)
		switch err {
		case nil:
			filter.EndScheduledDate = &t
		default:
			fieldErrors.Add("end_scheduled_date", err)
		}
	}

	if fieldErrors != nil {
		return requestbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
