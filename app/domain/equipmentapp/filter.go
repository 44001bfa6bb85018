package equipmentapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// queryParams struct interna para capturar os dados crus da URL.
type queryParams struct {
	Page         string
	Rows         string
	OrderBy      string
	ID           string
	Name         string
	SerialNumber string
	TeamID       string
	IsScrapped   string
}

// parseQueryParams extrai os parâmetros da request.
func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:         values.Get("page"),
		Rows:         values.Get("rows"),
		OrderBy:      values.Get("orderBy"),
		ID:           values.Get("equipment_id"),
		Name:         values.Get("name"),
		SerialNumber: values.Get("serial_number"),
		TeamID:       values.Get("team_id"),
		IsScrapped:   values.Get("is_scrapped"),
	}
}

// parseFilter valida e converte os parâmetros crus para o filtro de domínio.
func parseFilter(qp queryParams, companyID uuid.UUID) (equipmentbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors

	filter := equipmentbus.QueryFilter{
		CompanyID: companyID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("equipment_id", err)
		}
	}

	if qp.Name != "" {
		nme, err := name.Parse(qp.Name)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if qp.SerialNumber != "" {
		filter.SerialNumber = &qp.SerialNumber
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

	if qp.IsScrapped != "" {
		scrapped, err := strconv.ParseBool(qp.IsScrapped)
		switch err {
		case nil:
			filter.IsScrapped = &scrapped
		default:
			fieldErrors.Add("is_scrapped", err)
		}
	}

	if fieldErrors != nil {
		return equipmentbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
