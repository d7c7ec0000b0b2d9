// Package vacationbus provides business access to the vacation entries of an
// office board. The full entry list is small and read far more often than it
// changes, so it is cached whole per office.
package vacationbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
	"github.com/jcpaschoal/whereabouts/business/sdk/detach"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jcpaschoal/whereabouts/foundation/otel"
)

var (
	ErrNotFound = errors.New("vacation not found")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	QueryByOffice(ctx context.Context, officeID string) ([]Vacation, error)
	QueryByID(ctx context.Context, officeID string, vacationID string) (Vacation, error)
	Upsert(ctx context.Context, officeID string, vac Vacation) error
	Delete(ctx context.Context, officeID string, vacationID string) error
}

type Config struct {
	Log      *logger.Logger
	Storer   Storer
	Cache    cachestore.Store
	Detacher *detach.Detacher
	TTL      time.Duration
}

type Core struct {
	log      *logger.Logger
	storer   Storer
	cache    cachestore.Store
	detacher *detach.Detacher
	ttl      time.Duration
}

func NewCore(cfg Config) *Core {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}

	return &Core{
		log:      cfg.Log,
		storer:   cfg.Storer,
		cache:    cfg.Cache,
		detacher: cfg.Detacher,
		ttl:      cfg.TTL,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	nc := *c
	nc.storer = storer

	return &nc, nil
}

// Query retrieves the vacation entries for an office, cached read-through.
func (c *Core) Query(ctx context.Context, officeID string) ([]Vacation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vacationbus.query")
	defer span.End()

	key := cachestore.VacationsKey(officeID)

	if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var vacs []Vacation
		if err := json.Unmarshal(raw, &vacs); err == nil {
			return vacs, nil
		}
	}

	vacs, err := c.storer.QueryByOffice(ctx, officeID)
	if err != nil {
		return nil, fmt.Errorf("query: office[%s]: %w", officeID, err)
	}

	c.detacher.Go("vacationbus.cache", func(ctx context.Context) error {
		raw, err := json.Marshal(vacs)
		if err != nil {
			return fmt.Errorf("encode vacations: %w", err)
		}
		return c.cache.Set(ctx, key, raw, c.ttl)
	})

	return vacs, nil
}

// QueryByID finds one vacation entry, bypassing the cache.
func (c *Core) QueryByID(ctx context.Context, officeID string, vacationID string) (Vacation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vacationbus.queryByID")
	defer span.End()

	vac, err := c.storer.QueryByID(ctx, officeID, vacationID)
	if err != nil {
		return Vacation{}, fmt.Errorf("query: vacationID[%s]: %w", vacationID, err)
	}

	return vac, nil
}

// Create stores a new vacation entry stamped with the current time.
func (c *Core) Create(ctx context.Context, officeID string, vac Vacation) (Vacation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vacationbus.create")
	defer span.End()

	vac.Updated = time.Now().UnixMilli()

	if err := c.storer.Upsert(ctx, officeID, vac); err != nil {
		return Vacation{}, fmt.Errorf("upsert: vacationID[%s]: %w", vac.ID, err)
	}

	c.invalidate(officeID)

	return vac, nil
}

// Update applies a partial update to an existing vacation entry.
func (c *Core) Update(ctx context.Context, officeID string, vac Vacation, uv UpdateVacation) (Vacation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vacationbus.update")
	defer span.End()

	if uv.Title != nil {
		vac.Title = *uv.Title
	}
	if uv.StartDate != nil {
		vac.StartDate = *uv.StartDate
	}
	if uv.EndDate != nil {
		vac.EndDate = *uv.EndDate
	}
	if uv.Color != nil {
		vac.Color = *uv.Color
	}
	if uv.Visible != nil {
		vac.Visible = *uv.Visible
	}
	if uv.Members != nil {
		vac.Members = *uv.Members
	}
	if uv.IsVacation != nil {
		vac.IsVacation = *uv.IsVacation
	}
	if uv.Note != nil {
		vac.Note = *uv.Note
	}
	if uv.NoticeID != nil {
		vac.NoticeID = *uv.NoticeID
	}
	if uv.NoticeTitle != nil {
		vac.NoticeTitle = *uv.NoticeTitle
	}
	if uv.Order != nil {
		vac.Order = *uv.Order
	}

	vac.Updated = time.Now().UnixMilli()

	if err := c.storer.Upsert(ctx, officeID, vac); err != nil {
		return Vacation{}, fmt.Errorf("upsert: vacationID[%s]: %w", vac.ID, err)
	}

	c.invalidate(officeID)

	return vac, nil
}

// Delete removes a vacation entry.
func (c *Core) Delete(ctx context.Context, officeID string, vacationID string) error {
	ctx, span := otel.AddSpan(ctx, "business.vacationbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, officeID, vacationID); err != nil {
		return fmt.Errorf("delete: vacationID[%s]: %w", vacationID, err)
	}

	c.invalidate(officeID)

	return nil
}

func (c *Core) invalidate(officeID string) {
	c.detacher.Go("vacationbus.invalidate", func(ctx context.Context) error {
		return c.cache.Del(ctx, cachestore.VacationsKey(officeID))
	})
}
