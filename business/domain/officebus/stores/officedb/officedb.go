// Package officedb contains office data access using a postgres database.
package officedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/order"
	"github.com/jcpaschoal/whereabouts/business/sdk/page"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for office database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (officebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new office into the database.
func (s *Store) Create(ctx context.Context, ofc officebus.Office) error {
	const q = `
	INSERT INTO "public"."office"
		(office_id, name, password, admin_password, is_public, enabled, created_at, updated_at)
	VALUES
		(:office_id, :name, :password, :admin_password, :is_public, :enabled, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBOffice(ofc)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", officebus.ErrUniqueOffice)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces an office document in the database.
func (s *Store) Update(ctx context.Context, ofc officebus.Office) error {
	const q = `
	UPDATE
		"public"."office"
	SET
		name = :name,
		password = :password,
		admin_password = :admin_password,
		is_public = :is_public,
		enabled = :enabled,
		updated_at = :updated_at
	WHERE
		office_id = :office_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBOffice(ofc)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes an office from the database.
func (s *Store) Delete(ctx context.Context, ofc officebus.Office) error {
	const q = `
	DELETE FROM
		"public"."office"
	WHERE
		office_id = :office_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBOffice(ofc)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing offices from the database.
func (s *Store) Query(ctx context.Context, filter officebus.QueryFilter, orderBy order.By, page page.Page) ([]officebus.Office, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		office_id, name, password, admin_password, is_public, enabled, created_at, updated_at
	FROM
		"public"."office"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbOfcs []officeDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbOfcs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusOffices(dbOfcs)
}

// Count returns the total number of offices in the DB.
func (s *Store) Count(ctx context.Context, filter officebus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."office"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified office from the database.
func (s *Store) QueryByID(ctx context.Context, officeID string) (officebus.Office, error) {
	data := struct {
		ID string `db:"office_id"`
	}{
		ID: officeID,
	}

	const q = `
	SELECT
		office_id, name, password, admin_password, is_public, enabled, created_at, updated_at
	FROM
		"public"."office"
	WHERE
		office_id = :office_id`

	var dbOfc officeDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbOfc); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return officebus.Office{}, fmt.Errorf("db: %w", officebus.ErrNotFound)
		}
		return officebus.Office{}, fmt.Errorf("db: %w", err)
	}

	return toBusOffice(dbOfc)
}
