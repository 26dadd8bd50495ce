package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	qb "github.com/riskibarqy/dietpop-lineup/internal/platform/querybuilder"
)

// KVStore keeps entries in the kv_entries table created by the migrations.
type KVStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("value").
		From(kvTable).
		Where(qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get kv entry query: %w", err)
	}

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, s.wrap(err, "get kv entry")
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := qb.UpsertModel(kvTable, kvEntryModel{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}, qb.Dollar, "key")
	if err != nil {
		return fmt.Errorf("build upsert kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return s.wrap(err, "upsert kv entry")
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(kvTable).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return s.wrap(err, "delete kv entry")
	}
	return nil
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := qb.Select("key").
		From(kvTable).
		Where(qb.HasPrefix("key", prefix)).
		OrderBy("key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list kv keys query: %w", err)
	}

	var keys []string
	if err := s.db.SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, s.wrap(err, "list kv keys")
	}
	return keys, nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return kvstore.Unavailable(err, "ping postgres")
	}
	return nil
}

func (s *KVStore) wrap(err error, op string) error {
	if isConnectionFailure(err) {
		return kvstore.Unavailable(err, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
