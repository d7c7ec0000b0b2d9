// Package noticedb contains notice data access using a postgres database.
package noticedb

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/whereabouts/business/domain/noticebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for notice database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (noticebus.Storer, error) {
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

type noticeDB struct {
	OfficeID string `db:"office_id"`
	NoticeID string `db:"notice_id"`
	Title    string `db:"title"`
	Content  string `db:"content"`
	Visible  bool   `db:"visible"`
	Updated  int64  `db:"updated"`
}

// QueryByOffice retrieves the notices for one office.
func (s *Store) QueryByOffice(ctx context.Context, officeID string) ([]noticebus.Notice, error) {
	data := struct {
		OfficeID string `db:"office_id"`
	}{
		OfficeID: officeID,
	}

	const q = `
	SELECT
		office_id, notice_id, title, content, visible, updated
	FROM
		"public"."notice"
	WHERE
		office_id = :office_id
	ORDER BY
		updated DESC, notice_id ASC
	LIMIT 100`

	var dbNtcs []noticeDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbNtcs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	ntcs := make([]noticebus.Notice, len(dbNtcs))
	for i, db := range dbNtcs {
		ntcs[i] = noticebus.Notice{
			ID:      db.NoticeID,
			Title:   db.Title,
			Content: db.Content,
			Visible: db.Visible,
			Updated: db.Updated,
		}
	}

	return ntcs, nil
}

// Create inserts a new notice into the database.
func (s *Store) Create(ctx context.Context, officeID string, ntc noticebus.Notice) error {
	db := noticeDB{
		OfficeID: officeID,
		NoticeID: ntc.ID,
		Title:    ntc.Title,
		Content:  ntc.Content,
		Visible:  ntc.Visible,
		Updated:  ntc.Updated,
	}

	const q = `
	INSERT INTO "public"."notice"
		(office_id, notice_id, title, content, visible, updated)
	VALUES
		(:office_id, :notice_id, :title, :content, :visible, :updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, db); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// DeleteByOffice removes every notice of one office from the database.
func (s *Store) DeleteByOffice(ctx context.Context, officeID string) error {
	data := struct {
		OfficeID string `db:"office_id"`
	}{
		OfficeID: officeID,
	}

	const q = `
	DELETE FROM
		"public"."notice"
	WHERE
		office_id = :office_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}
