package noticeapp

import (
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/app/sdk/mid"
	"github.com/jcpaschoal/whereabouts/business/domain/noticebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
	"github.com/jcpaschoal/whereabouts/business/types/role"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *logger.Logger
	DB        sqldb.Beginner
	Auth      *auth.Auth
	NoticeBus *noticebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	anyRole := mid.Authorize(cfg.Auth, role.User, role.OfficeAdmin, role.SuperAdmin)
	adminOnly := mid.Authorize(cfg.Auth, role.OfficeAdmin, role.SuperAdmin)
	tran := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.NoticeBus)

	app.HandlerFunc(http.MethodGet, version, "/notices", api.query, authen, anyRole)
	app.HandlerFunc(http.MethodPut, version, "/notices", api.replace, authen, adminOnly, tran)
}
