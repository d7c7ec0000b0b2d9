package presencebus

import (
	"context"
	"strconv"

	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
)

// checkGate reports whether the office watermark proves the caller is already
// up to date. A missing, unreadable, or malformed watermark is a gate miss,
// never a short circuit.
func (c *Core) checkGate(ctx context.Context, officeID string, since int64) (int64, bool) {
	raw, ok, err := c.cache.Get(ctx, cachestore.WatermarkKey(officeID))
	if err != nil {
		c.log.Error(ctx, "presencebus: gate read", "office", officeID, "err", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	wm, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}

	if wm <= since {
		return wm, true
	}

	return 0, false
}

// advanceGate raises the office watermark to max(existing, now). Runs
// detached after a write; failures are logged by the detacher.
func (c *Core) advanceGate(officeID string, now int64) {
	c.detacher.Go("presencebus.gate", func(ctx context.Context) error {
		key := cachestore.WatermarkKey(officeID)

		wm := now
		if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if existing, err := strconv.ParseInt(string(raw), 10, 64); err == nil && existing > wm {
				wm = existing
			}
		}

		return c.cache.Set(ctx, key, []byte(strconv.FormatInt(wm, 10)), 0)
	})
}
