// Package authapp maintains the app layer api for the auth domain.
package authapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
)

type app struct {
	auth      *auth.Auth
	activeKID string
}

// newApp constructs an auth app API for use.
func newApp(auth *auth.Auth, activeKID string) *app {
	return &app{
		auth:      auth,
		activeKID: activeKID,
	}
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ofc, rle, err := a.auth.Login(ctx, req.Office, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, officebus.ErrNotFound):
			return errs.New(errs.Unauthenticated, officebus.ErrAuthenticationFailure)
		case errors.Is(err, officebus.ErrDisabled):
			return errs.New(errs.PermissionDenied, officebus.ErrDisabled)
		default:
			return errs.New(errs.Unauthenticated, err)
		}
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, ofc.ID, ofc.Name.String(), rle)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr, rle, ofc)
}
