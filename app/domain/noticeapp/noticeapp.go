// Package noticeapp maintains the app layer api for the notice banners of an
// office board.
package noticeapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/noticebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
)

type app struct {
	noticeBus *noticebus.Core
}

// newApp constructs a notice app API for use.
func newApp(noticeBus *noticebus.Core) *app {
	return &app{
		noticeBus: noticeBus,
	}
}

// executeUnderTransaction constructs a new app value using the transaction
// injected by the middleware, when one exists.
func (a *app) executeUnderTransaction(ctx context.Context) (*app, error) {
	if tx, err := mid.GetTran(ctx); err == nil {
		noticeBus, err := a.noticeBus.NewWithTx(tx)
		if err != nil {
			return nil, err
		}

		a = &app{
			noticeBus: noticeBus,
		}

		return a, nil
	}

	return a, nil
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	ntcs, err := a.noticeBus.Query(ctx, officeID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return toAppNotices(ntcs)
}

// replace swaps the whole banner list. The route runs inside a transaction
// so readers never observe the list half swapped.
func (a *app) replace(ctx context.Context, r *http.Request) web.Encoder {
	officeID, err := mid.GetOfficeID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "office missing in context: %s", err)
	}

	var req ReplaceNotices
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	a, err = a.executeUnderTransaction(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	ntcs, err := a.noticeBus.Replace(ctx, officeID, toBusNotices(req))
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "replace: office[%s]: %s", officeID, err)
	}

	return toAppNotices(ntcs)
}
