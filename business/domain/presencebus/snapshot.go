package presencebus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
)

// readFresh returns the cached snapshot for the office when one exists and is
// younger than the snapshot TTL. Cache errors and corrupt entries degrade to
// a miss.
func (c *Core) readFresh(ctx context.Context, officeID string, now int64) (Snapshot, bool) {
	raw, ok, err := c.cache.Get(ctx, cachestore.StatusKey(officeID))
	if err != nil {
		c.log.Error(ctx, "presencebus: snapshot read", "office", officeID, "err", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, false
	}
	if snap.Members == nil {
		return Snapshot{}, false
	}

	if now-snap.CachedAt > c.snapshotTTL.Milliseconds() {
		return Snapshot{}, false
	}

	return snap, true
}

// refreshFromStore rebuilds the snapshot from the database and stores it
// back detached. MaxUpdated falls back to now if no member carries a
// positive timestamp; the snapshot is shared, so a per-caller floor has no
// place here, diffFrom applies it per request.
func (c *Core) refreshFromStore(ctx context.Context, officeID string, now int64) (Snapshot, error) {
	members, err := c.storer.QueryByOffice(ctx, officeID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query members: %w", err)
	}

	snap := Snapshot{
		CachedAt: now,
		Members:  make(map[string]MemberStatus, len(members)),
	}

	for _, m := range members {
		snap.Members[m.ID] = statusOf(m)
		if m.Updated > snap.MaxUpdated {
			snap.MaxUpdated = m.Updated
		}
	}

	if snap.MaxUpdated == 0 {
		snap.MaxUpdated = now
	}

	c.storeSnapshot(officeID, snap)

	return snap, nil
}

func (c *Core) storeSnapshot(officeID string, snap Snapshot) {
	c.detacher.Go("presencebus.snapshot", func(ctx context.Context) error {
		raw, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return c.cache.Set(ctx, cachestore.StatusKey(officeID), raw, c.snapshotTTL)
	})
}

func nowMilli() int64 {
	return time.Now().UnixMilli()
}
