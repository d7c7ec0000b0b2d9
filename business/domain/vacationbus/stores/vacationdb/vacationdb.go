// Package vacationdb contains vacation data access using a postgres
// database.
package vacationdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for vacation database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (vacationbus.Storer, error) {
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

// QueryByOffice retrieves the vacation entries for one office ordered by
// display order and start date.
func (s *Store) QueryByOffice(ctx context.Context, officeID string) ([]vacationbus.Vacation, error) {
	data := struct {
		OfficeID string `db:"office_id"`
	}{
		OfficeID: officeID,
	}

	const q = `
	SELECT
		office_id, vacation_id, title, start_date, end_date, color, visible,
		members_bits, is_vacation, note, notice_id, notice_title, display_order, updated
	FROM
		"public"."vacation"
	WHERE
		office_id = :office_id
	ORDER BY
		display_order ASC, start_date ASC
	LIMIT 300`

	var dbVacs []vacationDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbVacs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusVacations(dbVacs)
}

// QueryByID gets the specified vacation entry from the database.
func (s *Store) QueryByID(ctx context.Context, officeID string, vacationID string) (vacationbus.Vacation, error) {
	data := struct {
		OfficeID   string `db:"office_id"`
		VacationID string `db:"vacation_id"`
	}{
		OfficeID:   officeID,
		VacationID: vacationID,
	}

	const q = `
	SELECT
		office_id, vacation_id, title, start_date, end_date, color, visible,
		members_bits, is_vacation, note, notice_id, notice_title, display_order, updated
	FROM
		"public"."vacation"
	WHERE
		office_id = :office_id AND vacation_id = :vacation_id`

	var dbVac vacationDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbVac); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return vacationbus.Vacation{}, fmt.Errorf("db: %w", vacationbus.ErrNotFound)
		}
		return vacationbus.Vacation{}, fmt.Errorf("db: %w", err)
	}

	return toBusVacation(dbVac)
}

// Upsert inserts or replaces a vacation entry in the database.
func (s *Store) Upsert(ctx context.Context, officeID string, vac vacationbus.Vacation) error {
	const q = `
	INSERT INTO "public"."vacation"
		(office_id, vacation_id, title, start_date, end_date, color, visible,
		 members_bits, is_vacation, note, notice_id, notice_title, display_order, updated)
	VALUES
		(:office_id, :vacation_id, :title, :start_date, :end_date, :color, :visible,
		 :members_bits, :is_vacation, :note, :notice_id, :notice_title, :display_order, :updated)
	ON CONFLICT (office_id, vacation_id) DO UPDATE SET
		title = EXCLUDED.title,
		start_date = EXCLUDED.start_date,
		end_date = EXCLUDED.end_date,
		color = EXCLUDED.color,
		visible = EXCLUDED.visible,
		members_bits = EXCLUDED.members_bits,
		is_vacation = EXCLUDED.is_vacation,
		note = EXCLUDED.note,
		notice_id = EXCLUDED.notice_id,
		notice_title = EXCLUDED.notice_title,
		display_order = EXCLUDED.display_order,
		updated = EXCLUDED.updated`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBVacation(officeID, vac)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a vacation entry from the database.
func (s *Store) Delete(ctx context.Context, officeID string, vacationID string) error {
	data := struct {
		OfficeID   string `db:"office_id"`
		VacationID string `db:"vacation_id"`
	}{
		OfficeID:   officeID,
		VacationID: vacationID,
	}

	const q = `
	DELETE FROM
		"public"."vacation"
	WHERE
		office_id = :office_id AND vacation_id = :vacation_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}
