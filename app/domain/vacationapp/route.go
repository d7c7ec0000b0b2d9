package vacationapp

import (
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	VacationBus *vacationbus.Core
	PresenceBus *presencebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	anyRole := mid.Authorize(cfg.Auth, role.User, role.OfficeAdmin, role.SuperAdmin)
	adminOnly := mid.Authorize(cfg.Auth, role.OfficeAdmin, role.SuperAdmin)

	api := newApp(cfg.VacationBus, cfg.PresenceBus)

	app.HandlerFunc(http.MethodGet, version, "/vacations", api.query, authen, anyRole)
	app.HandlerFunc(http.MethodGet, version, "/vacations/{vacation_id}/members", api.members, authen, anyRole)
	app.HandlerFunc(http.MethodPost, version, "/vacations", api.create, authen, adminOnly)
	app.HandlerFunc(http.MethodPut, version, "/vacations/{vacation_id}", api.update, authen, adminOnly)
	app.HandlerFunc(http.MethodPut, version, "/vacations/{vacation_id}/bits", api.setBits, authen, adminOnly)
	app.HandlerFunc(http.MethodDelete, version, "/vacations/{vacation_id}", api.delete, authen, adminOnly)
}
