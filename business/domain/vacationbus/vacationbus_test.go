package vacationbus_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
	"github.com/jcpaschoal/whereabouts/business/sdk/detach"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/business/types/daybits"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
)

type fakeStorer struct {
	vacs    map[string]vacationbus.Vacation
	queries int
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{vacs: make(map[string]vacationbus.Vacation)}
}

func (fs *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (vacationbus.Storer, error) {
	return fs, nil
}

func (fs *fakeStorer) QueryByOffice(_ context.Context, _ string) ([]vacationbus.Vacation, error) {
	fs.queries++

	vacs := make([]vacationbus.Vacation, 0, len(fs.vacs))
	for _, v := range fs.vacs {
		vacs = append(vacs, v)
	}
	return vacs, nil
}

func (fs *fakeStorer) QueryByID(_ context.Context, _ string, vacationID string) (vacationbus.Vacation, error) {
	v, ok := fs.vacs[vacationID]
	if !ok {
		return vacationbus.Vacation{}, vacationbus.ErrNotFound
	}
	return v, nil
}

func (fs *fakeStorer) Upsert(_ context.Context, _ string, vac vacationbus.Vacation) error {
	fs.vacs[vac.ID] = vac
	return nil
}

func (fs *fakeStorer) Delete(_ context.Context, _ string, vacationID string) error {
	delete(fs.vacs, vacationID)
	return nil
}

func newTestCore(t *testing.T) (*vacationbus.Core, *fakeStorer, *detach.Detacher) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	cache := cachestore.NewMemory(time.Minute)
	t.Cleanup(cache.Close)

	detacher := detach.New(log, time.Second)
	storer := newFakeStorer()

	core := vacationbus.NewCore(vacationbus.Config{
		Log:      log,
		Storer:   storer,
		Cache:    cache,
		Detacher: detacher,
	})

	return core, storer, detacher
}

func TestCreateStampsUpdated(t *testing.T) {
	core, _, _ := newTestCore(t)
	ctx := context.Background()

	before := time.Now().UnixMilli()
	vac, err := core.Create(ctx, "tokyo", vacationbus.Vacation{
		ID:         "v1",
		Title:      "夏季休暇",
		StartDate:  "2026-08-10",
		EndDate:    "2026-08-14",
		Members:    daybits.MustParse("110"),
		IsVacation: true,
		Visible:    true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if vac.Updated < before {
		t.Errorf("Updated stamp missing: got %d", vac.Updated)
	}
}

func TestQueryCachesList(t *testing.T) {
	core, storer, detacher := newTestCore(t)
	ctx := context.Background()

	if _, err := core.Create(ctx, "tokyo", vacationbus.Vacation{ID: "v1", Title: "休暇"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	detacher.Wait()

	if _, err := core.Query(ctx, "tokyo"); err != nil {
		t.Fatalf("first Query: %v", err)
	}
	detacher.Wait()

	vacs, err := core.Query(ctx, "tokyo")
	if err != nil {
		t.Fatalf("second Query: %v", err)
	}

	if storer.queries != 1 {
		t.Errorf("second query should come from cache: %d store queries", storer.queries)
	}
	if len(vacs) != 1 || vacs[0].ID != "v1" {
		t.Errorf("got %+v", vacs)
	}
}

func TestWriteInvalidatesList(t *testing.T) {
	core, storer, detacher := newTestCore(t)
	ctx := context.Background()

	if _, err := core.Create(ctx, "tokyo", vacationbus.Vacation{ID: "v1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	detacher.Wait()

	if _, err := core.Query(ctx, "tokyo"); err != nil {
		t.Fatalf("Query: %v", err)
	}
	detacher.Wait()

	vac, err := core.QueryByID(ctx, "tokyo", "v1")
	if err != nil {
		t.Fatalf("QueryByID: %v", err)
	}

	title := "改"
	if _, err := core.Update(ctx, "tokyo", vac, vacationbus.UpdateVacation{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	detacher.Wait()

	vacs, err := core.Query(ctx, "tokyo")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if storer.queries != 2 {
		t.Errorf("update should have dropped the cached list: %d store queries", storer.queries)
	}
	if len(vacs) != 1 || vacs[0].Title != "改" {
		t.Errorf("got %+v", vacs)
	}
}

func TestUpdatePartial(t *testing.T) {
	core, _, _ := newTestCore(t)
	ctx := context.Background()

	vac, err := core.Create(ctx, "tokyo", vacationbus.Vacation{
		ID:        "v1",
		Title:     "休暇",
		StartDate: "2026-08-10",
		EndDate:   "2026-08-14",
		Visible:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	members := daybits.MustParse("011")
	got, err := core.Update(ctx, "tokyo", vac, vacationbus.UpdateVacation{Members: &members})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got.Title != "休暇" || !got.Visible {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if !got.Members.Equal(members) {
		t.Errorf("members not applied: %q", got.Members.String())
	}
}

func TestDelete(t *testing.T) {
	core, _, detacher := newTestCore(t)
	ctx := context.Background()

	if _, err := core.Create(ctx, "tokyo", vacationbus.Vacation{ID: "v1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := core.Delete(ctx, "tokyo", "v1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	detacher.Wait()

	if _, err := core.QueryByID(ctx, "tokyo", "v1"); !errors.Is(err, vacationbus.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
