// Package toolapp maintains the app layer api for the links an office pins
// to its board.
package toolapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/toolbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
)

type app struct {
	toolBus *toolbus.Core
}

// newApp constructs a tool app API for use.
func newApp(toolBus *toolbus.Core) *app {
	return &app{
		toolBus: toolBus,
	}
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	tools, err := a.toolBus.Query(ctx, officeID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return toAppTools(tools)
}

func (a *app) replace(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	var req ReplaceTools
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tools, err := a.toolBus.Replace(ctx, officeID, toBusTools(req))
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "replace: office[%s]: %s", officeID, err)
	}

	return toAppTools(tools)
}
