// Package presenceapp maintains the app layer api for the presence board.
package presenceapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

type app struct {
	presenceBus *presencebus.Core
}

// newApp constructs a presence app API for use.
func newApp(presenceBus *presencebus.Core) *app {
	return &app{
		presenceBus: presenceBus,
	}
}

// read answers the differential poll. since carries the newest timestamp the
// client has seen; nocache=1 forces a database rebuild.
func (a *app) read(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	var since int64
	if v := r.URL.Query().Get("since"); v != "" {
		since, err = strconv.ParseInt(v, 10, 64)
		if err != nil || since < 0 {
			return errs.Errorf(errs.InvalidArgument, "invalid since %q", v)
		}
	}

	nocache := r.URL.Query().Get("nocache") == "1"
	if nocache {
		if claims := mid.GetClaims(ctx); claims.Role == role.User.String() {
			return errs.Errorf(errs.PermissionDenied, "nocache requires an admin role")
		}
	}

	diff, err := a.presenceBus.Read(ctx, officeID, since, nocache)
	if err != nil {
		return errs.Errorf(errs.Internal, "read: %s", err)
	}

	board := toAppBoard(diff, officeID, since, web.GetTime(ctx).UnixMilli())

	if match := r.Header.Get("If-None-Match"); match != "" && match == board.etag && len(board.Data) == 0 {
		board.notModified = true
	}

	return board
}

// update applies a batch of partial status writes. All members touched in one
// call share a single timestamp.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	var req UpdateBoard
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	results, err := a.presenceBus.ApplyStatusUpdates(ctx, officeID, toBusUpdates(req))
	if err != nil {
		if errors.Is(err, presencebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "applystatusupdates: office[%s]: %s", officeID, err)
	}

	var serverUpdated int64
	for _, ts := range results {
		serverUpdated = ts
		break
	}

	return UpdateResult{
		Results:       results,
		ServerUpdated: serverUpdated,
	}
}
