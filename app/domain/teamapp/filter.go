package teamapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/types/name"
)

// queryParams struct interna para capturar os dados crus da URL.
type queryParams struct {
	Page     string
	Rows     string
	OrderBy  string
	ID       string
	Name     string
	MemberID string
}

// parseQueryParams extrai os parâmetros da request.
func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:     values.Get("page"),
		Rows:     values.Get("rows"),
		OrderBy:  values.Get("orderBy"),
		ID:       values.Get("team_id"),
		Name:     values.Get("name"),
		MemberID: values.Get("member_id"),
	}
}

// parseFilter valida e converte os parâmetros crus para o filtro de domínio.
func parseFilter(qp queryParams, companyID uuid.UUID) (teambus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors

	filter := teambus.QueryFilter{
		CompanyID: companyID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("team_id", err)
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

	if qp.MemberID != "" {
		id, err := uuid.Parse(qp.MemberID)
		switch err {
		case nil:
			filter.MemberID = &id
		default:
			fieldErrors.Add("member_id", err)
		}
	}

	if fieldErrors != nil {
		return teambus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
