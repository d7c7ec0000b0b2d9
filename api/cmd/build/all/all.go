// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/whereabouts/app/domain/authapp"
	"github.com/jcpaschoal/whereabouts/app/domain/checkapp"
	"github.com/jcpaschoal/whereabouts/app/domain/noticeapp"
	"github.com/jcpaschoal/whereabouts/app/domain/officeapp"
	"github.com/jcpaschoal/whereabouts/app/domain/presenceapp"
	"github.com/jcpaschoal/whereabouts/app/domain/toolapp"
	"github.com/jcpaschoal/whereabouts/app/domain/vacationapp"
	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/app/sdk/mux"
	"github.com/jcpaschoal/whereabouts/business/domain/noticebus"
	"github.com/jcpaschoal/whereabouts/business/domain/noticebus/stores/noticedb"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus/stores/officecache"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus/stores/officedb"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus/stores/presencedb"
	"github.com/jcpaschoal/whereabouts/business/domain/toolbus"
	"github.com/jcpaschoal/whereabouts/business/domain/toolbus/stores/tooldb"
	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus/stores/vacationdb"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {

	officeBus := officebus.NewCore(officecache.NewStore(cfg.Log, officedb.NewStore(cfg.Log, cfg.DB), cfg.CacheConfig.OfficeTTL))

	presenceBus := presencebus.NewCore(presencebus.Config{
		Log:         cfg.Log,
		Storer:      presencedb.NewStore(cfg.Log, cfg.DB),
		Cache:       cfg.Cache,
		Detacher:    cfg.Detacher,
		SnapshotTTL: cfg.CacheConfig.SnapshotTTL,
		RosterTTL:   cfg.CacheConfig.RosterTTL,
		WarmOnWrite: cfg.CacheConfig.WarmOnWrite,
	})

	vacationBus := vacationbus.NewCore(vacationbus.Config{
		Log:      cfg.Log,
		Storer:   vacationdb.NewStore(cfg.Log, cfg.DB),
		Cache:    cfg.Cache,
		Detacher: cfg.Detacher,
		TTL:      cfg.CacheConfig.ListTTL,
	})

	noticeBus := noticebus.NewCore(noticebus.Config{
		Log:      cfg.Log,
		Storer:   noticedb.NewStore(cfg.Log, cfg.DB),
		Cache:    cfg.Cache,
		Detacher: cfg.Detacher,
		TTL:      cfg.CacheConfig.ListTTL,
	})

	toolBus := toolbus.NewCore(toolbus.Config{
		Log:      cfg.Log,
		Storer:   tooldb.NewStore(cfg.Log, cfg.DB),
		Cache:    cfg.Cache,
		Detacher: cfg.Detacher,
		TTL:      cfg.CacheConfig.ListTTL,
	})

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		OfficeBus: officeBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	officeapp.Routes(app, officeapp.Config{
		Auth:        authClient,
		OfficeBus:   officeBus,
		PresenceBus: presenceBus,
	})

	presenceapp.Routes(app, presenceapp.Config{
		Auth:        authClient,
		PresenceBus: presenceBus,
	})

	vacationapp.Routes(app, vacationapp.Config{
		Auth:        authClient,
		VacationBus: vacationBus,
		PresenceBus: presenceBus,
	})

	noticeapp.Routes(app, noticeapp.Config{
		Log:       cfg.Log,
		DB:        sqldb.NewBeginner(cfg.DB),
		Auth:      authClient,
		NoticeBus: noticeBus,
	})

	toolapp.Routes(app, toolapp.Config{
		Auth:    authClient,
		ToolBus: toolBus,
	})
}
