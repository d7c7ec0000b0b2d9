package officeapp

import (
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	OfficeBus   *officebus.Core
	PresenceBus *presencebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	anyRole := mid.Authorize(cfg.Auth, role.User, role.OfficeAdmin, role.SuperAdmin)
	adminOnly := mid.Authorize(cfg.Auth, role.OfficeAdmin, role.SuperAdmin)
	superOnly := mid.Authorize(cfg.Auth, role.SuperAdmin)

	api := newApp(cfg.OfficeBus, cfg.PresenceBus)

	app.HandlerFunc(http.MethodGet, version, "/offices/public", api.directory)
	app.HandlerFunc(http.MethodGet, version, "/offices", api.queryAll, authen, superOnly)
	app.HandlerFunc(http.MethodPost, version, "/offices", api.create, authen, superOnly)
	app.HandlerFunc(http.MethodPut, version, "/offices/{office_id}", api.update, authen, adminOnly)
	app.HandlerFunc(http.MethodDelete, version, "/offices/{office_id}", api.delete, authen, superOnly)

	app.HandlerFunc(http.MethodGet, version, "/config", api.config, authen, anyRole)
}
