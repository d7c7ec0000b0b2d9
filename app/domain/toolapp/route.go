package toolapp

import (
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/toolbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	ToolBus *toolbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	anyRole := mid.Authorize(cfg.Auth, role.User, role.OfficeAdmin, role.SuperAdmin)
	adminOnly := mid.Authorize(cfg.Auth, role.OfficeAdmin, role.SuperAdmin)

	api := newApp(cfg.ToolBus)

	app.HandlerFunc(http.MethodGet, version, "/tools", api.query, authen, anyRole)
	app.HandlerFunc(http.MethodPut, version, "/tools", api.replace, authen, adminOnly)
}
