// Package officebus provides business access to the office tenants. Every
// other domain in the system is keyed by an office this package manages.
package officebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/whereabouts/business/sdk/order"
	"github.com/jcpaschoal/whereabouts/business/sdk/page"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/business/types/role"
	"github.com/jcpaschoal/whereabouts/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound              = errors.New("office not found")
	ErrUniqueOffice          = errors.New("office id is not unique")
	ErrDisabled              = errors.New("office is disabled")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, ofc Office) error
	Update(ctx context.Context, ofc Office) error
	Delete(ctx context.Context, ofc Office) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Office, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, officeID string) (Office, error)
}

type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	nc := NewCore(storer)

	return nc, nil
}

func (c *Core) Create(ctx context.Context, no NewOffice) (Office, error) {
	ctx, span := otel.AddSpan(ctx, "business.officebus.create")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(no.Password.Secret()), bcrypt.DefaultCost)
	if err != nil {
		return Office{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(no.AdminPassword.Secret()), bcrypt.DefaultCost)
	if err != nil {
		return Office{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	now := time.Now()

	ofc := Office{
		ID:                no.ID,
		Name:              no.Name,
		PasswordHash:      hash,
		AdminPasswordHash: adminHash,
		IsPublic:          no.IsPublic,
		Enabled:           true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := c.storer.Create(ctx, ofc); err != nil {
		return Office{}, fmt.Errorf("create: %w", err)
	}

	return ofc, nil
}

func (c *Core) Update(ctx context.Context, ofc Office, uo UpdateOffice) (Office, error) {
	ctx, span := otel.AddSpan(ctx, "business.officebus.update")
	defer span.End()

	if uo.Name != nil {
		ofc.Name = *uo.Name
	}

	if uo.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(uo.Password.Secret()), bcrypt.DefaultCost)
		if err != nil {
			return Office{}, fmt.Errorf("generatefrompassword: %w", err)
		}
		ofc.PasswordHash = hash
	}

	if uo.AdminPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(uo.AdminPassword.Secret()), bcrypt.DefaultCost)
		if err != nil {
			return Office{}, fmt.Errorf("generatefrompassword: %w", err)
		}
		ofc.AdminPasswordHash = hash
	}

	if uo.IsPublic != nil {
		ofc.IsPublic = *uo.IsPublic
	}

	if uo.Enabled != nil {
		ofc.Enabled = *uo.Enabled
	}

	ofc.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, ofc); err != nil {
		return Office{}, fmt.Errorf("update: %w", err)
	}

	return ofc, nil
}

func (c *Core) Delete(ctx context.Context, ofc Office) error {
	ctx, span := otel.AddSpan(ctx, "business.officebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, ofc); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing offices.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Office, error) {
	ctx, span := otel.AddSpan(ctx, "business.officebus.query")
	defer span.End()

	ofcs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ofcs, nil
}

// Count returns the total number of offices.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.officebus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the office by the specified ID.
func (c *Core) QueryByID(ctx context.Context, officeID string) (Office, error) {
	ctx, span := otel.AddSpan(ctx, "business.officebus.queryByID")
	defer span.End()

	ofc, err := c.storer.QueryByID(ctx, officeID)
	if err != nil {
		return Office{}, fmt.Errorf("query: officeID[%s]: %w", officeID, err)
	}

	return ofc, nil
}

// Authenticate verifies an office password and returns the office together
// with the role the password grants: the admin password grants officeAdmin,
// the board password grants user.
func (c *Core) Authenticate(ctx context.Context, officeID string, password string) (Office, role.Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.officebus.authenticate")
	defer span.End()

	ofc, err := c.QueryByID(ctx, officeID)
	if err != nil {
		return Office{}, role.Role{}, fmt.Errorf("query: officeID[%s]: %w", officeID, err)
	}

	if !ofc.Enabled {
		return Office{}, role.Role{}, ErrDisabled
	}

	if err := bcrypt.CompareHashAndPassword(ofc.AdminPasswordHash, []byte(password)); err == nil {
		return ofc, role.OfficeAdmin, nil
	}

	if err := bcrypt.CompareHashAndPassword(ofc.PasswordHash, []byte(password)); err == nil {
		return ofc, role.User, nil
	}

	return Office{}, role.Role{}, fmt.Errorf("comparehashandpassword: %w", ErrAuthenticationFailure)
}
