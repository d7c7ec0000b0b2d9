// Package officeapp maintains the app layer api for the office tenants and
// the board config.
package officeapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/app/sdk/query"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/order"
	"github.com/jcpaschoal/whereabouts/business/sdk/page"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

type app struct {
	officeBus   *officebus.Core
	presenceBus *presencebus.Core
}

// newApp constructs an office app API for use.
func newApp(officeBus *officebus.Core, presenceBus *presencebus.Core) *app {
	return &app{
		officeBus:   officeBus,
		presenceBus: presenceBus,
	}
}

// directory lists the public, enabled offices. This route carries no auth:
// it feeds the login screen picker.
func (a *app) directory(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	isPublic := true
	enabled := true
	filter := officebus.QueryFilter{
		IsPublic: &isPublic,
		Enabled:  &enabled,
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, officebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	ofcs, err := a.officeBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.officeBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppOffices(ofcs), total, pg)
}

// queryAll lists every office with the caller's filters. superAdmin only.
func (a *app) queryAll(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, officebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	ofcs, err := a.officeBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.officeBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppOffices(ofcs), total, pg)
}

// create adds a new office to the system. superAdmin only.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewOffice
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	no, err := toBusNewOffice(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ofc, err := a.officeBus.Create(ctx, no)
	if err != nil {
		if errors.Is(err, officebus.ErrUniqueOffice) {
			return errs.New(errs.Aborted, officebus.ErrUniqueOffice)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: office[%s]: %s", req.ID, err)
	}

	return toAppOffice(ofc)
}

// update edits an office. A superAdmin can edit any office; an officeAdmin
// only the office bound to their token.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	officeID := web.Param(r, "office_id")

	claims := mid.GetClaims(ctx)
	if claims.Role != role.SuperAdmin.String() && claims.Subject != officeID {
		return errs.New(errs.PermissionDenied, errors.New("token is bound to another office"))
	}

	var req UpdateOffice
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uo, err := toBusUpdateOffice(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ofc, err := a.officeBus.QueryByID(ctx, officeID)
	if err != nil {
		if errors.Is(err, officebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: office[%s]: %s", officeID, err)
	}

	ofc, err = a.officeBus.Update(ctx, ofc, uo)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: office[%s]: %s", officeID, err)
	}

	return toAppOffice(ofc)
}

// delete removes an office. superAdmin only.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	officeID := web.Param(r, "office_id")

	ofc, err := a.officeBus.QueryByID(ctx, officeID)
	if err != nil {
		if errors.Is(err, officebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: office[%s]: %s", officeID, err)
	}

	if err := a.officeBus.Delete(ctx, ofc); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: office[%s]: %s", officeID, err)
	}

	return nil
}

// config answers the board shape for the office bound to the token: its name
// and the grouped roster in display order.
func (a *app) config(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	ofc, err := a.officeBus.QueryByID(ctx, officeID)
	if err != nil {
		if errors.Is(err, officebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: office[%s]: %s", officeID, err)
	}

	members, err := a.presenceBus.Roster(ctx, officeID)
	if err != nil {
		return errs.Errorf(errs.Internal, "roster: %s", err)
	}

	return toAppBoardConfig(ofc, members)
}
