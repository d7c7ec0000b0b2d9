// Package officecache contains office data access with an in-process
// read-through cache in front of the database store. Office records are
// read on nearly every request for auth, so they are kept hot here.
package officecache

import (
	"context"
	"time"

	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/sdk/order"
	"github.com/jcpaschoal/whereabouts/business/sdk/page"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for office cached data access.
type Store struct {
	log    *logger.Logger
	storer officebus.Storer
	cache  *sturdyc.Client[officebus.Office]
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, storer officebus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[officebus.Office](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (officebus.Storer, error) {
	storer, err := s.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log:    s.log,
		storer: storer,
		cache:  s.cache,
	}

	return &store, nil
}

// Create inserts a new office into the database.
func (s *Store) Create(ctx context.Context, ofc officebus.Office) error {
	if err := s.storer.Create(ctx, ofc); err != nil {
		return err
	}

	s.writeCache(ofc)

	return nil
}

// Update replaces an office document in the database.
func (s *Store) Update(ctx context.Context, ofc officebus.Office) error {
	if err := s.storer.Update(ctx, ofc); err != nil {
		return err
	}

	s.writeCache(ofc)

	return nil
}

// Delete removes an office from the database.
func (s *Store) Delete(ctx context.Context, ofc officebus.Office) error {
	if err := s.storer.Delete(ctx, ofc); err != nil {
		return err
	}

	s.deleteCache(ofc)

	return nil
}

// Query retrieves a list of existing offices from the database.
func (s *Store) Query(ctx context.Context, filter officebus.QueryFilter, orderBy order.By, page page.Page) ([]officebus.Office, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of offices in the DB.
func (s *Store) Count(ctx context.Context, filter officebus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified office from the cache falling back to the
// database.
func (s *Store) QueryByID(ctx context.Context, officeID string) (officebus.Office, error) {
	if ofc, ok := s.readCache(officeID); ok {
		return ofc, nil
	}

	ofc, err := s.storer.QueryByID(ctx, officeID)
	if err != nil {
		return officebus.Office{}, err
	}

	s.writeCache(ofc)

	return ofc, nil
}

// readCache performs a safe search in the cache for the specified key.
func (s *Store) readCache(key string) (officebus.Office, bool) {
	ofc, exists := s.cache.Get(key)
	if !exists {
		return officebus.Office{}, false
	}

	return ofc, true
}

// writeCache performs a safe write to the cache for the specified office.
func (s *Store) writeCache(ofc officebus.Office) {
	s.cache.Set(ofc.ID, ofc)
}

// deleteCache performs a safe removal from the cache for the specified office.
func (s *Store) deleteCache(ofc officebus.Office) {
	s.cache.Delete(ofc.ID)
}
