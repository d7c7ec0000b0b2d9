package officebus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/order"
	"github.com/jcpaschoal/whereabouts/business/sdk/page"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/business/types/name"
	"github.com/jcpaschoal/whereabouts/business/types/password"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

type fakeStorer struct {
	offices map[string]officebus.Office
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{offices: make(map[string]officebus.Office)}
}

func (fs *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (officebus.Storer, error) {
	return fs, nil
}

func (fs *fakeStorer) Create(_ context.Context, ofc officebus.Office) error {
	if _, exists := fs.offices[ofc.ID]; exists {
		return officebus.ErrUniqueOffice
	}
	fs.offices[ofc.ID] = ofc
	return nil
}

func (fs *fakeStorer) Update(_ context.Context, ofc officebus.Office) error {
	fs.offices[ofc.ID] = ofc
	return nil
}

func (fs *fakeStorer) Delete(_ context.Context, ofc officebus.Office) error {
	delete(fs.offices, ofc.ID)
	return nil
}

func (fs *fakeStorer) Query(_ context.Context, _ officebus.QueryFilter, _ order.By, _ page.Page) ([]officebus.Office, error) {
	offices := make([]officebus.Office, 0, len(fs.offices))
	for _, ofc := range fs.offices {
		offices = append(offices, ofc)
	}
	return offices, nil
}

func (fs *fakeStorer) Count(_ context.Context, _ officebus.QueryFilter) (int, error) {
	return len(fs.offices), nil
}

func (fs *fakeStorer) QueryByID(_ context.Context, officeID string) (officebus.Office, error) {
	ofc, ok := fs.offices[officeID]
	if !ok {
		return officebus.Office{}, officebus.ErrNotFound
	}
	return ofc, nil
}

func createOffice(t *testing.T, core *officebus.Core) officebus.Office {
	t.Helper()

	ofc, err := core.Create(context.Background(), officebus.NewOffice{
		ID:            "tokyo-3f",
		Name:          name.MustParse("営業部 3F"),
		Password:      password.MustParse("member123"),
		AdminPassword: password.MustParse("admin123"),
		IsPublic:      true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return ofc
}

func TestCreateHashesPasswords(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())

	ofc := createOffice(t, core)

	if !ofc.Enabled {
		t.Error("new offices should start enabled")
	}
	if string(ofc.PasswordHash) == "member123" || len(ofc.PasswordHash) == 0 {
		t.Error("member password must be stored hashed")
	}
	if string(ofc.AdminPasswordHash) == "admin123" || len(ofc.AdminPasswordHash) == 0 {
		t.Error("admin password must be stored hashed")
	}
}

func TestCreateDuplicate(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())

	createOffice(t, core)

	_, err := core.Create(context.Background(), officebus.NewOffice{
		ID:            "tokyo-3f",
		Name:          name.MustParse("other"),
		Password:      password.MustParse("p1234"),
		AdminPassword: password.MustParse("p5678"),
	})
	if !errors.Is(err, officebus.ErrUniqueOffice) {
		t.Fatalf("got %v, want ErrUniqueOffice", err)
	}
}

func TestAuthenticateRoles(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())
	ctx := context.Background()

	createOffice(t, core)

	_, r, err := core.Authenticate(ctx, "tokyo-3f", "admin123")
	if err != nil {
		t.Fatalf("admin password: %v", err)
	}
	if !r.Equal(role.OfficeAdmin) {
		t.Errorf("admin password should grant officeAdmin, got %s", r)
	}

	_, r, err = core.Authenticate(ctx, "tokyo-3f", "member123")
	if err != nil {
		t.Fatalf("member password: %v", err)
	}
	if !r.Equal(role.User) {
		t.Errorf("member password should grant user, got %s", r)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())
	ctx := context.Background()

	createOffice(t, core)

	_, _, err := core.Authenticate(ctx, "tokyo-3f", "wrong")
	if !errors.Is(err, officebus.ErrAuthenticationFailure) {
		t.Fatalf("got %v, want ErrAuthenticationFailure", err)
	}
}

func TestAuthenticateUnknownOffice(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())

	_, _, err := core.Authenticate(context.Background(), "nowhere", "member123")
	if !errors.Is(err, officebus.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestAuthenticateDisabledOffice(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())
	ctx := context.Background()

	ofc := createOffice(t, core)

	disabled := false
	if _, err := core.Update(ctx, ofc, officebus.UpdateOffice{Enabled: &disabled}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	_, _, err := core.Authenticate(ctx, "tokyo-3f", "member123")
	if !errors.Is(err, officebus.ErrDisabled) {
		t.Fatalf("got %v, want ErrDisabled", err)
	}
}

func TestUpdateRotatesPassword(t *testing.T) {
	core := officebus.NewCore(newFakeStorer())
	ctx := context.Background()

	ofc := createOffice(t, core)

	np := password.MustParse("rotated99")
	if _, err := core.Update(ctx, ofc, officebus.UpdateOffice{Password: &np}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, _, err := core.Authenticate(ctx, "tokyo-3f", "member123"); !errors.Is(err, officebus.ErrAuthenticationFailure) {
		t.Fatalf("old password should stop working, got %v", err)
	}

	_, r, err := core.Authenticate(ctx, "tokyo-3f", "rotated99")
	if err != nil {
		t.Fatalf("new password: %v", err)
	}
	if !r.Equal(role.User) {
		t.Errorf("got role %s, want user", r)
	}
}
