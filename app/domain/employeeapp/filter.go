package employeeapp

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/role"
)

// queryParams struct interna para capturar os dados crus da URL.
type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	Name    string
	Email   string
	Role    string
	Enabled string
}

// parseQueryParams extrai os parâmetros da request.
func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("user_id"),
		Name:    values.Get("name"),
		Email:   values.Get("email"),
		Role:    values.Get("role"),
		Enabled: values.Get("enabled"),
	}
}

// parseFilter valida e converte os parâmetros crus para o filtro de domínio.
// Retorna erro agregado (FieldErrors) se houver falhas de validação.
func parseFilter(qp queryParams, companyID uuid.UUID) (userbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors

	filter := userbus.QueryFilter{
		CompanyID: companyID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("user_id", err)
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

	if qp.Email != "" {
		addr, err := mail.ParseAddress(qp.Email)
		switch err {
		case nil:
			filter.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if qp.Role != "" {
		rle, err := role.Parse(qp.Role)
		switch err {
		case nil:
			filter.Role = &rle
		default:
			fieldErrors.Add("role", err)
		}
	}

	if qp.Enabled != "" {
		enabled, err := strconv.ParseBool(qp.Enabled)
		switch err {
		case nil:
			filter.Enabled = &enabled
		default:
			fieldErrors.Add("enabled", err)
		}
	}

	if fieldErrors != nil {
		return userbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
