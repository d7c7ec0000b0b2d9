// Package noticebus provides business access to the notice banners of an
// office board. Clients replace the whole list at once, so writes are a
// wholesale swap meant to run inside a transaction.
package noticebus

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
	ErrNotFound = errors.New("notice not found")
)

// Notice represents one banner shown on top of an office board.
type Notice struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Visible bool   `json:"visible"`
	Updated int64  `json:"updated"`
}

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	QueryByOffice(ctx context.Context, officeID string) ([]Notice, error)
	Create(ctx context.Context, officeID string, ntc Notice) error
	DeleteByOffice(ctx context.Context, officeID string) error
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

// Query retrieves the notices for an office, cached read-through.
func (c *Core) Query(ctx context.Context, officeID string) ([]Notice, error) {
	ctx, span := otel.AddSpan(ctx, "business.noticebus.query")
	defer span.End()

	key := cachestore.NoticesKey(officeID)

	if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var ntcs []Notice
		if err := json.Unmarshal(raw, &ntcs); err == nil {
			return ntcs, nil
		}
	}

	ntcs, err := c.storer.QueryByOffice(ctx, officeID)
	if err != nil {
		return nil, fmt.Errorf("query: office[%s]: %w", officeID, err)
	}

	c.detacher.Go("noticebus.cache", func(ctx context.Context) error {
		raw, err := json.Marshal(ntcs)
		if err != nil {
			return fmt.Errorf("encode notices: %w", err)
		}
		return c.cache.Set(ctx, key, raw, c.ttl)
	})

	return ntcs, nil
}

// Replace swaps the whole notice list of an office. Every notice is stamped
// with the current time. Run this inside a transaction so readers never see
// the list half swapped.
func (c *Core) Replace(ctx context.Context, officeID string, ntcs []Notice) ([]Notice, error) {
	ctx, span := otel.AddSpan(ctx, "business.noticebus.replace")
	defer span.End()

	if err := c.storer.DeleteByOffice(ctx, officeID); err != nil {
		return nil, fmt.Errorf("deletebyoffice: office[%s]: %w", officeID, err)
	}

	now := time.Now().UnixMilli()

	for i := range ntcs {
		ntcs[i].Updated = now
		if err := c.storer.Create(ctx, officeID, ntcs[i]); err != nil {
			return nil, fmt.Errorf("create: notice[%s]: %w", ntcs[i].ID, err)
		}
	}

	c.detacher.Go("noticebus.invalidate", func(ctx context.Context) error {
		return c.cache.Del(ctx, cachestore.NoticesKey(officeID))
	})

	return ntcs, nil
}
