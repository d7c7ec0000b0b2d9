package presencebus_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
	"github.com/jcpaschoal/whereabouts/business/sdk/detach"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
)

// fakeStorer keeps the members of one office in memory and counts the
// database round trips the bus performs.
type fakeStorer struct {
	members map[string]presencebus.Member
	queries int
}

func newFakeStorer(members ...presencebus.Member) *fakeStorer {
	fs := fakeStorer{members: make(map[string]presencebus.Member)}
	for _, m := range members {
		fs.members[m.ID] = m
	}
	return &fs
}

func (fs *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (presencebus.Storer, error) {
	return fs, nil
}

func (fs *fakeStorer) Create(_ context.Context, _ string, mem presencebus.Member) error {
	fs.members[mem.ID] = mem
	return nil
}

func (fs *fakeStorer) Delete(_ context.Context, _ string, memberID string) error {
	delete(fs.members, memberID)
	return nil
}

func (fs *fakeStorer) QueryByOffice(_ context.Context, _ string) ([]presencebus.Member, error) {
	fs.queries++

	members := make([]presencebus.Member, 0, len(fs.members))
	for _, m := range fs.members {
		members = append(members, m)
	}
	return members, nil
}

func (fs *fakeStorer) UpdateStatus(_ context.Context, _ string, memberID string, up presencebus.StatusUpdate, updated int64) error {
	m, ok := fs.members[memberID]
	if !ok {
		return presencebus.ErrNotFound
	}

	if up.Status != nil {
		m.Status = *up.Status
	}
	if up.Time != nil {
		m.Time = *up.Time
	}
	if up.Note != nil {
		m.Note = *up.Note
	}
	if up.WorkHours != nil {
		m.WorkHours = *up.WorkHours
	}
	m.Updated = updated

	fs.members[memberID] = m
	return nil
}

// brokenStore fails every cache operation.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func (brokenStore) Del(context.Context, string) error {
	return errors.New("cache down")
}

type testEnv struct {
	core     *presencebus.Core
	storer   *fakeStorer
	cache    *cachestore.Memory
	detacher *detach.Detacher
}

func newTestEnv(t *testing.T, warm bool, members ...presencebus.Member) *testEnv {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	cache := cachestore.NewMemory(time.Minute)
	t.Cleanup(cache.Close)

	detacher := detach.New(log, time.Second)
	storer := newFakeStorer(members...)

	core := presencebus.NewCore(presencebus.Config{
		Log:         log,
		Storer:      storer,
		Cache:       cache,
		Detacher:    detacher,
		WarmOnWrite: warm,
	})

	return &testEnv{
		core:     core,
		storer:   storer,
		cache:    cache,
		detacher: detacher,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestReadFullBoard(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1", Name: "田中", Status: "在席", Updated: 100},
		presencebus.Member{ID: "m2", Name: "鈴木", Status: "外出", Updated: 250},
	)
	ctx := context.Background()

	diff, err := env.core.Read(ctx, "tokyo", 0, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(diff.Data) != 2 {
		t.Fatalf("got %d members, want 2", len(diff.Data))
	}
	if diff.MaxUpdated != 250 {
		t.Errorf("MaxUpdated: got %d, want 250", diff.MaxUpdated)
	}
	if diff.Data["m2"].Status != "外出" {
		t.Errorf("m2 status: got %q", diff.Data["m2"].Status)
	}
}

func TestReadUsesSnapshot(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1", Updated: 100},
	)
	ctx := context.Background()

	if _, err := env.core.Read(ctx, "tokyo", 0, false); err != nil {
		t.Fatalf("first Read: %v", err)
	}
	env.detacher.Wait()

	if _, err := env.core.Read(ctx, "tokyo", 0, false); err != nil {
		t.Fatalf("second Read: %v", err)
	}

	if env.storer.queries != 1 {
		t.Errorf("second read should come from the snapshot: %d queries", env.storer.queries)
	}
}

func TestReadNocacheBypassesSnapshot(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1", Updated: 100},
	)
	ctx := context.Background()

	if _, err := env.core.Read(ctx, "tokyo", 0, false); err != nil {
		t.Fatalf("first Read: %v", err)
	}
	env.detacher.Wait()

	if _, err := env.core.Read(ctx, "tokyo", 0, true); err != nil {
		t.Fatalf("nocache Read: %v", err)
	}

	if env.storer.queries != 2 {
		t.Errorf("nocache read should hit the store: %d queries", env.storer.queries)
	}
}

func TestGateShortCircuit(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1"},
	)
	ctx := context.Background()

	acks, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Status: strPtr("在席")},
	})
	if err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}
	env.detacher.Wait()

	stamp := acks["m1"]
	if stamp == 0 {
		t.Fatal("expected a nonzero ack timestamp")
	}

	queries := env.storer.queries

	diff, err := env.core.Read(ctx, "tokyo", stamp, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(diff.Data) != 0 {
		t.Errorf("caller at the watermark should get an empty diff, got %d members", len(diff.Data))
	}
	if diff.MaxUpdated != stamp {
		t.Errorf("MaxUpdated: got %d, want %d", diff.MaxUpdated, stamp)
	}
	if env.storer.queries != queries {
		t.Errorf("gate hit should not touch the store")
	}
}

func TestGateMissFallsThrough(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1"},
		presencebus.Member{ID: "m2"},
	)
	ctx := context.Background()

	acks, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Note: strPtr("client visit")},
	})
	if err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}
	env.detacher.Wait()

	stamp := acks["m1"]

	diff, err := env.core.Read(ctx, "tokyo", stamp-1, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(diff.Data) != 1 {
		t.Fatalf("got %d members, want only the updated one", len(diff.Data))
	}
	if diff.Data["m1"].Note != "client visit" {
		t.Errorf("note: got %q", diff.Data["m1"].Note)
	}
	if diff.MaxUpdated != stamp {
		t.Errorf("MaxUpdated: got %d, want %d", diff.MaxUpdated, stamp)
	}
}

func TestBatchSharesOneTimestamp(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1"},
		presencebus.Member{ID: "m2"},
		presencebus.Member{ID: "m3"},
	)
	ctx := context.Background()

	acks, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Status: strPtr("在席")},
		"m2": {Status: strPtr("会議")},
		"m3": {Time: strPtr("15:00")},
	})
	if err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}

	if len(acks) != 3 {
		t.Fatalf("got %d acks, want 3", len(acks))
	}
	for id, stamp := range acks {
		if stamp != acks["m1"] {
			t.Errorf("member %s stamped %d, want %d", id, stamp, acks["m1"])
		}
	}
}

func TestUpdateUnknownMember(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"ghost": {Status: strPtr("在席")},
	})
	if !errors.Is(err, presencebus.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestWriteInvalidatesSnapshot(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1", Updated: 100},
	)
	ctx := context.Background()

	if _, err := env.core.Read(ctx, "tokyo", 0, false); err != nil {
		t.Fatalf("Read: %v", err)
	}
	env.detacher.Wait()

	if _, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Status: strPtr("退社")},
	}); err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}
	env.detacher.Wait()

	if _, ok, _ := env.cache.Get(ctx, cachestore.StatusKey("tokyo")); ok {
		t.Error("write should have dropped the snapshot")
	}
}

func TestWarmOnWriteMergesSnapshot(t *testing.T) {
	env := newTestEnv(t, true,
		presencebus.Member{ID: "m1", Status: "在席", Updated: 100},
		presencebus.Member{ID: "m2", Status: "外出", Updated: 100},
	)
	ctx := context.Background()

	if _, err := env.core.Read(ctx, "tokyo", 0, false); err != nil {
		t.Fatalf("prime Read: %v", err)
	}
	env.detacher.Wait()

	acks, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Status: strPtr("会議"), Note: strPtr("room B")},
	})
	if err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}
	env.detacher.Wait()

	queries := env.storer.queries

	diff, err := env.core.Read(ctx, "tokyo", 100, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if env.storer.queries != queries {
		t.Errorf("warmed snapshot should serve the read without the store")
	}
	if len(diff.Data) != 1 {
		t.Fatalf("got %d members, want 1", len(diff.Data))
	}
	if got := diff.Data["m1"]; got.Status != "会議" || got.Note != "room B" || got.Updated != acks["m1"] {
		t.Errorf("merged status: got %+v", got)
	}
}

func TestMaxUpdatedFallback(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1"},
	)
	ctx := context.Background()

	// A caller with a since keeps it when nothing ever got stamped.
	diff, err := env.core.Read(ctx, "tokyo", 0, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff.MaxUpdated <= 0 {
		t.Errorf("full read of an unstamped board should fall back to now, got %d", diff.MaxUpdated)
	}

	diff, err = env.core.Read(ctx, "tokyo", 42, true)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff.MaxUpdated != 42 {
		t.Errorf("MaxUpdated should never regress below since: got %d, want 42", diff.MaxUpdated)
	}
}

func TestSnapshotFallbackNotShared(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1"},
	)
	ctx := context.Background()

	before := time.Now().UnixMilli()

	// A caller with a since rebuilds the snapshot of an unstamped board.
	// The snapshot it leaves behind must not carry that caller's since.
	diff, err := env.core.Read(ctx, "tokyo", 42, false)
	if err != nil {
		t.Fatalf("first Read: %v", err)
	}
	if diff.MaxUpdated != 42 {
		t.Errorf("first caller MaxUpdated: got %d, want 42", diff.MaxUpdated)
	}
	env.detacher.Wait()

	diff, err = env.core.Read(ctx, "tokyo", 0, false)
	if err != nil {
		t.Fatalf("second Read: %v", err)
	}
	if diff.MaxUpdated < before {
		t.Errorf("full reader got an earlier caller's since: got %d, want >= %d", diff.MaxUpdated, before)
	}
}

func TestWatermarkMonotonic(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1"},
	)
	ctx := context.Background()

	future := time.Now().Add(time.Hour).UnixMilli()
	key := cachestore.WatermarkKey("tokyo")
	if err := env.cache.Set(ctx, key, []byte(formatInt(future)), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := env.core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Status: strPtr("在席")},
	}); err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}
	env.detacher.Wait()

	raw, ok, err := env.cache.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get watermark: ok=%v err=%v", ok, err)
	}
	if string(raw) != formatInt(future) {
		t.Errorf("watermark regressed: got %s, want %d", raw, future)
	}
}

func TestReadSurvivesCacheFailure(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	detacher := detach.New(log, time.Second)
	storer := newFakeStorer(presencebus.Member{ID: "m1", Status: "在席", Updated: 100})

	core := presencebus.NewCore(presencebus.Config{
		Log:      log,
		Storer:   storer,
		Cache:    brokenStore{},
		Detacher: detacher,
	})
	ctx := context.Background()

	diff, err := core.Read(ctx, "tokyo", 50, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(diff.Data) != 1 {
		t.Fatalf("got %d members, want 1", len(diff.Data))
	}

	if _, err := core.ApplyStatusUpdates(ctx, "tokyo", map[string]presencebus.StatusUpdate{
		"m1": {Status: strPtr("退社")},
	}); err != nil {
		t.Fatalf("ApplyStatusUpdates: %v", err)
	}
	detacher.Wait()
}

func TestCreateDropsRoster(t *testing.T) {
	env := newTestEnv(t, false,
		presencebus.Member{ID: "m1", Group: "A", Order: 1},
	)
	ctx := context.Background()

	if _, err := env.core.Roster(ctx, "tokyo"); err != nil {
		t.Fatalf("Roster: %v", err)
	}
	env.detacher.Wait()

	if err := env.core.Create(ctx, "tokyo", presencebus.Member{ID: "m2", Group: "A", Order: 2}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	env.detacher.Wait()

	roster, err := env.core.Roster(ctx, "tokyo")
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(roster) != 2 {
		t.Errorf("got %d members, want 2", len(roster))
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
