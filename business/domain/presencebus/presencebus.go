// Package presencebus provides the differential read and write coordination
// for office member status boards. Reads resolve through a watermark gate and
// a cached snapshot before falling back to the database; writes stamp every
// touched member with one timestamp and advance the watermark detached.
package presencebus

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
	ErrNotFound = errors.New("member not found")
)

const defaultSnapshotTTL = 60 * time.Second

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, officeID string, mem Member) error
	Delete(ctx context.Context, officeID string, memberID string) error
	QueryByOffice(ctx context.Context, officeID string) ([]Member, error)
	UpdateStatus(ctx context.Context, officeID string, memberID string, up StatusUpdate, updated int64) error
}

type Config struct {
	Log         *logger.Logger
	Storer      Storer
	Cache       cachestore.Store
	Detacher    *detach.Detacher
	SnapshotTTL time.Duration
	RosterTTL   time.Duration
	WarmOnWrite bool
}

type Core struct {
	log         *logger.Logger
	storer      Storer
	cache       cachestore.Store
	detacher    *detach.Detacher
	snapshotTTL time.Duration
	rosterTTL   time.Duration
	warmOnWrite bool
}

func NewCore(cfg Config) *Core {
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = defaultSnapshotTTL
	}
	if cfg.RosterTTL <= 0 {
		cfg.RosterTTL = time.Hour
	}

	return &Core{
		log:         cfg.Log,
		storer:      cfg.Storer,
		cache:       cfg.Cache,
		detacher:    cfg.Detacher,
		snapshotTTL: cfg.SnapshotTTL,
		rosterTTL:   cfg.RosterTTL,
		warmOnWrite: cfg.WarmOnWrite,
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

// Read answers a differential status read. since is the newest timestamp the
// caller has already seen; zero asks for the full board. nocache forces a
// database rebuild, bypassing both the gate and the snapshot.
func (c *Core) Read(ctx context.Context, officeID string, since int64, nocache bool) (Diff, error) {
	ctx, span := otel.AddSpan(ctx, "business.presencebus.read")
	defer span.End()

	now := nowMilli()

	if since > 0 && !nocache {
		if wm, ok := c.checkGate(ctx, officeID, since); ok {
			return Diff{Data: map[string]MemberStatus{}, MaxUpdated: wm}, nil
		}
	}

	var snap Snapshot
	var fresh bool
	if !nocache {
		snap, fresh = c.readFresh(ctx, officeID, now)
	}

	if !fresh {
		var err error
		snap, err = c.refreshFromStore(ctx, officeID, now)
		if err != nil {
			return Diff{}, fmt.Errorf("refresh: office[%s]: %w", officeID, err)
		}
	}

	return diffFrom(snap, since), nil
}

// ApplyStatusUpdates writes a batch of partial status updates. All members in
// one call are stamped with the same timestamp, which is returned per member.
// Cache maintenance and the watermark advance run detached after the store
// writes succeed.
func (c *Core) ApplyStatusUpdates(ctx context.Context, officeID string, updates map[string]StatusUpdate) (map[string]int64, error) {
	ctx, span := otel.AddSpan(ctx, "business.presencebus.applyStatusUpdates")
	defer span.End()

	now := nowMilli()

	acks := make(map[string]int64, len(updates))
	for memberID, up := range updates {
		if err := c.storer.UpdateStatus(ctx, officeID, memberID, up, now); err != nil {
			return nil, fmt.Errorf("updatestatus: member[%s]: %w", memberID, err)
		}
		acks[memberID] = now
	}

	if len(acks) == 0 {
		return acks, nil
	}

	if c.warmOnWrite {
		c.warmSnapshot(officeID, updates, now)
	} else {
		c.detacher.Go("presencebus.invalidate", func(ctx context.Context) error {
			return c.cache.Del(ctx, cachestore.StatusKey(officeID))
		})
	}

	c.advanceGate(officeID, now)

	return acks, nil
}

// Roster returns the office members ordered by group, display order and name.
// The result is cached read-through; status reads never use this path.
func (c *Core) Roster(ctx context.Context, officeID string) ([]Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.presencebus.roster")
	defer span.End()

	key := cachestore.ConfigKey(officeID)

	if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var members []Member
		if err := json.Unmarshal(raw, &members); err == nil {
			return members, nil
		}
	}

	members, err := c.storer.QueryByOffice(ctx, officeID)
	if err != nil {
		return nil, fmt.Errorf("query: office[%s]: %w", officeID, err)
	}

	c.detacher.Go("presencebus.roster", func(ctx context.Context) error {
		raw, err := json.Marshal(members)
		if err != nil {
			return fmt.Errorf("encode roster: %w", err)
		}
		return c.cache.Set(ctx, key, raw, c.rosterTTL)
	})

	return members, nil
}

// Create adds a member to an office and drops the cached roster.
func (c *Core) Create(ctx context.Context, officeID string, mem Member) error {
	ctx, span := otel.AddSpan(ctx, "business.presencebus.create")
	defer span.End()

	if err := c.storer.Create(ctx, officeID, mem); err != nil {
		return fmt.Errorf("create: member[%s]: %w", mem.ID, err)
	}

	c.dropDerived(officeID)

	return nil
}

// Delete removes a member from an office and drops the cached roster.
func (c *Core) Delete(ctx context.Context, officeID string, memberID string) error {
	ctx, span := otel.AddSpan(ctx, "business.presencebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, officeID, memberID); err != nil {
		return fmt.Errorf("delete: member[%s]: %w", memberID, err)
	}

	c.dropDerived(officeID)

	return nil
}

func (c *Core) dropDerived(officeID string) {
	c.detacher.Go("presencebus.dropderived", func(ctx context.Context) error {
		if err := c.cache.Del(ctx, cachestore.ConfigKey(officeID)); err != nil {
			return err
		}
		return c.cache.Del(ctx, cachestore.StatusKey(officeID))
	})
}

// warmSnapshot merges a write batch into the cached snapshot instead of
// dropping it. Skipped when no snapshot is cached; there is nothing to merge
// onto and the next read rebuilds anyway.
func (c *Core) warmSnapshot(officeID string, updates map[string]StatusUpdate, now int64) {
	c.detacher.Go("presencebus.warm", func(ctx context.Context) error {
		raw, ok, err := c.cache.Get(ctx, cachestore.StatusKey(officeID))
		if err != nil || !ok {
			return err
		}

		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil || snap.Members == nil {
			return c.cache.Del(ctx, cachestore.StatusKey(officeID))
		}

		for memberID, up := range updates {
			ms := snap.Members[memberID]
			if up.Status != nil {
				ms.Status = *up.Status
			}
			if up.Time != nil {
				ms.Time = *up.Time
			}
			if up.Note != nil {
				ms.Note = *up.Note
			}
			if up.WorkHours != nil {
				ms.WorkHours = *up.WorkHours
			}
			ms.Updated = now
			snap.Members[memberID] = ms
		}

		if now > snap.MaxUpdated {
			snap.MaxUpdated = now
		}

		out, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return c.cache.Set(ctx, cachestore.StatusKey(officeID), out, c.snapshotTTL)
	})
}

// diffFrom filters a snapshot down to the members newer than since. The
// returned MaxUpdated is the maximum over the filtered members and never
// regresses below since.
func diffFrom(snap Snapshot, since int64) Diff {
	if since <= 0 {
		return Diff{Data: snap.Members, MaxUpdated: snap.MaxUpdated}
	}

	d := Diff{
		Data:       make(map[string]MemberStatus),
		MaxUpdated: since,
	}

	for memberID, ms := range snap.Members {
		if ms.Updated > since {
			d.Data[memberID] = ms
			if ms.Updated > d.MaxUpdated {
				d.MaxUpdated = ms.Updated
			}
		}
	}

	return d
}
