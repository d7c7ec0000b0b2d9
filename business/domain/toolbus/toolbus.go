// Package toolbus provides business access to the tool links an office pins
// to its board.
package toolbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
	"github.com/jcpaschoal/whereabouts/business/sdk/detach"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jcpaschoal/whereabouts/foundation/otel"
)

// Tool represents one link pinned to an office board.
type Tool struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	QueryByOffice(ctx context.Context, officeID string) ([]Tool, error)
	Save(ctx context.Context, officeID string, tools []Tool, updated int64) error
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

// Query retrieves the tool links for an office, cached read-through.
func (c *Core) Query(ctx context.Context, officeID string) ([]Tool, error) {
	ctx, span := otel.AddSpan(ctx, "business.toolbus.query")
	defer span.End()

	key := cachestore.ToolsKey(officeID)

	if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var tools []Tool
		if err := json.Unmarshal(raw, &tools); err == nil {
			return tools, nil
		}
	}

	tools, err := c.storer.QueryByOffice(ctx, officeID)
	if err != nil {
		return nil, fmt.Errorf("query: office[%s]: %w", officeID, err)
	}

	c.detacher.Go("toolbus.cache", func(ctx context.Context) error {
		raw, err := json.Marshal(tools)
		if err != nil {
			return fmt.Errorf("encode tools: %w", err)
		}
		return c.cache.Set(ctx, key, raw, c.ttl)
	})

	return tools, nil
}

// Replace swaps the whole tool list of an office.
func (c *Core) Replace(ctx context.Context, officeID string, tools []Tool) ([]Tool, error) {
	ctx, span := otel.AddSpan(ctx, "business.toolbus.replace")
	defer span.End()

	now := time.Now().UnixMilli()

	if err := c.storer.Save(ctx, officeID, tools, now); err != nil {
		return nil, fmt.Errorf("save: office[%s]: %w", officeID, err)
	}

	c.detacher.Go("toolbus.invalidate", func(ctx context.Context) error {
		return c.cache.Del(ctx, cachestore.ToolsKey(officeID))
	})

	return tools, nil
}
