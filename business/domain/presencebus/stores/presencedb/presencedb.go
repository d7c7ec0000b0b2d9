// Package presencedb contains member status data access using a postgres
// database.
package presencedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for member database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (presencebus.Storer, error) {
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

// Create inserts a new member into the database.
func (s *Store) Create(ctx context.Context, officeID string, mem presencebus.Member) error {
	const q = `
	INSERT INTO "public"."member"
		(office_id, member_id, name, group_name, display_order, status, time, note, work_hours, ext, updated)
	VALUES
		(:office_id, :member_id, :name, :group_name, :display_order, :status, :time, :note, :work_hours, :ext, :updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMember(officeID, mem)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a member from the database.
func (s *Store) Delete(ctx context.Context, officeID string, memberID string) error {
	data := struct {
		OfficeID string `db:"office_id"`
		MemberID string `db:"member_id"`
	}{
		OfficeID: officeID,
		MemberID: memberID,
	}

	const q = `
	DELETE FROM
		"public"."member"
	WHERE
		office_id = :office_id AND member_id = :member_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByOffice retrieves the full roster for one office ordered by group,
// display order and name.
func (s *Store) QueryByOffice(ctx context.Context, officeID string) ([]presencebus.Member, error) {
	data := struct {
		OfficeID string `db:"office_id"`
	}{
		OfficeID: officeID,
	}

	const q = `
	SELECT
		office_id, member_id, name, group_name, display_order, status, time, note, work_hours, ext, updated
	FROM
		"public"."member"
	WHERE
		office_id = :office_id
	ORDER BY
		group_name ASC, display_order ASC, name ASC`

	var dbMems []memberDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbMems); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMembers(dbMems), nil
}

// UpdateStatus applies a partial status update to one member, stamping the
// updated column. Only the fields present in the update touch the row.
func (s *Store) UpdateStatus(ctx context.Context, officeID string, memberID string, up presencebus.StatusUpdate, updated int64) error {
	data := map[string]any{
		"office_id": officeID,
		"member_id": memberID,
		"updated":   updated,
	}

	buf := bytes.NewBufferString(`
	UPDATE
		"public"."member"
	SET `)

	if up.Status != nil {
		buf.WriteString("status = :status, ")
		data["status"] = *up.Status
	}
	if up.Time != nil {
		buf.WriteString("time = :time, ")
		data["time"] = *up.Time
	}
	if up.Note != nil {
		buf.WriteString("note = :note, ")
		data["note"] = *up.Note
	}
	if up.WorkHours != nil {
		buf.WriteString("work_hours = :work_hours, ")
		data["work_hours"] = *up.WorkHours
	}

	buf.WriteString(`updated = :updated
	WHERE
		office_id = :office_id AND member_id = :member_id
	RETURNING member_id`)

	var row struct {
		MemberID string `db:"member_id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &row); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return fmt.Errorf("db: %w", presencebus.ErrNotFound)
		}
		return fmt.Errorf("namedquerystruct: %w", err)
	}

	return nil
}
