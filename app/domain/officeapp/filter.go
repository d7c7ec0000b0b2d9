package officeapp

import (
	"net/http"
	"strconv"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/types/name"
)

// queryParams struct interna para capturar os dados crus da URL.
type queryParams struct {
	Page     string
	Rows     string
	OrderBy  string
	ID       string
	Name     string
	IsPublic string
	Enabled  string
}

// parseQueryParams extrai os parâmetros da request.
func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:     values.Get("page"),
		Rows:     values.Get("rows"),
		OrderBy:  values.Get("orderBy"),
		ID:       values.Get("office_id"),
		Name:     values.Get("name"),
		IsPublic: values.Get("is_public"),
		Enabled:  values.Get("enabled"),
	}
}

// parseFilter valida e converte os parâmetros crus para o filtro de domínio.
func parseFilter(qp queryParams) (officebus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter officebus.QueryFilter

	if qp.ID != "" {
		filter.ID = &qp.ID
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

	if qp.IsPublic != "" {
		v, err := strconv.ParseBool(qp.IsPublic)
		switch err {
		case nil:
			filter.IsPublic = &v
		default:
			fieldErrors.Add("is_public", err)
		}
	}

	if qp.Enabled != "" {
		v, err := strconv.ParseBool(qp.Enabled)
		switch err {
		case nil:
			filter.Enabled = &v
		default:
			fieldErrors.Add("enabled", err)
		}
	}

	if fieldErrors != nil {
		return officebus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
