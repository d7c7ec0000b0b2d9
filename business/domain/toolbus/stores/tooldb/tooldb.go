// Package tooldb contains tool link data access using a postgres database.
// The whole list is stored as one json document per office.
package tooldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jcpaschoal/whereabouts/business/domain/toolbus"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for tool link database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (toolbus.Storer, error) {
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

type toolConfigDB struct {
	OfficeID  string `db:"office_id"`
	ToolsJSON string `db:"tools_json"`
	Updated   int64  `db:"updated"`
}

// QueryByOffice retrieves the tool list for one office. A missing row means
// an empty list, not an error.
func (s *Store) QueryByOffice(ctx context.Context, officeID string) ([]toolbus.Tool, error) {
	data := struct {
		OfficeID string `db:"office_id"`
	}{
		OfficeID: officeID,
	}

	const q = `
	SELECT
		office_id, tools_json, updated
	FROM
		"public"."tool_config"
	WHERE
		office_id = :office_id`

	var dbCfg toolConfigDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCfg); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return []toolbus.Tool{}, nil
		}
		return nil, fmt.Errorf("namedquerystruct: %w", err)
	}

	var tools []toolbus.Tool
	if err := json.Unmarshal([]byte(dbCfg.ToolsJSON), &tools); err != nil {
		return nil, fmt.Errorf("decode tools: %w", err)
	}

	return tools, nil
}

// Save upserts the tool list for one office.
func (s *Store) Save(ctx context.Context, officeID string, tools []toolbus.Tool, updated int64) error {
	raw, err := json.Marshal(tools)
	if err != nil {
		return fmt.Errorf("encode tools: %w", err)
	}

	db := toolConfigDB{
		OfficeID:  officeID,
		ToolsJSON: string(raw),
		Updated:   updated,
	}

	const q = `
	INSERT INTO "public"."tool_config"
		(office_id, tools_json, updated)
	VALUES
		(:office_id, :tools_json, :updated)
	ON CONFLICT (office_id) DO UPDATE SET
		tools_json = EXCLUDED.tools_json,
		updated = EXCLUDED.updated`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, db); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}
