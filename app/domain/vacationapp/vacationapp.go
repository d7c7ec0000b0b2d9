// Package vacationapp maintains the app layer api for the vacation entries
// of an office board.
package vacationapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/daybits"
)

type app struct {
	vacationBus *vacationbus.Core
	presenceBus *presencebus.Core
}

// newApp constructs a vacation app API for use.
func newApp(vacationBus *vacationbus.Core, presenceBus *presencebus.Core) *app {
	return &app{
		vacationBus: vacationBus,
		presenceBus: presenceBus,
	}
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	vacs, err := a.vacationBus.Query(ctx, officeID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return toAppVacations(vacs)
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	var req NewVacation
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	vac, err := toBusVacation(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	vac, err = a.vacationBus.Create(ctx, officeID, vac)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: vac[%+v]: %s", req, err)
	}

	return toAppVacation(vac)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	vacationID := web.Param(r, "vacation_id")

	var req UpdateVacation
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uv, err := toBusUpdateVacation(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	vac, err := a.vacationBus.QueryByID(ctx, officeID, vacationID)
	if err != nil {
		if errors.Is(err, vacationbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: vacationID[%s]: %s", vacationID, err)
	}

	vac, err = a.vacationBus.Update(ctx, officeID, vac, uv)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: vacationID[%s]: %s", vacationID, err)
	}

	return toAppVacation(vac)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	vacationID := web.Param(r, "vacation_id")

	if err := a.vacationBus.Delete(ctx, officeID, vacationID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: vacationID[%s]: %s", vacationID, err)
	}

	return nil
}

// setBits replaces only the encoded membership of an entry. Board clients
// use this while the user toggles people day by day, so the rest of the
// entry never rides along.
func (a *app) setBits(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	vacationID := web.Param(r, "vacation_id")

	var req UpdateBits
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bits, err := daybits.Parse(req.Members)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	vac, err := a.vacationBus.QueryByID(ctx, officeID, vacationID)
	if err != nil {
		if errors.Is(err, vacationbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: vacationID[%s]: %s", vacationID, err)
	}

	vac, err = a.vacationBus.Update(ctx, officeID, vac, vacationbus.UpdateVacation{Members: &bits})
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "setbits: vacationID[%s]: %s", vacationID, err)
	}

	return toAppVacation(vac)
}

// members decodes which roster members an entry covers on a given day. The
// date defaults to today when the query parameter is absent.
func (a *app) members(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	vacationID := web.Param(r, "vacation_id")

	date := r.URL.Query().Get("date")
	if date == "" {
		date = web.GetTime(ctx).Format("2006-01-02")
	}

	vac, err := a.vacationBus.QueryByID(ctx, officeID, vacationID)
	if err != nil {
		if errors.Is(err, vacationbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: vacationID[%s]: %s", vacationID, err)
	}

	members, err := a.presenceBus.Roster(ctx, officeID)
	if err != nil {
		return errs.Errorf(errs.Internal, "roster: %s", err)
	}

	roster := make([]daybits.Entry, len(members))
	for i, m := range members {
		roster[i] = daybits.Entry{ID: m.ID, Name: m.Name}
	}

	sel := vac.Members.MembersOn(date, vac.StartDate, vac.EndDate, roster)

	return toAppDayMembers(date, sel)
}
