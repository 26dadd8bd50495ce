// Package sqlite implements kvstore.Store on a local SQLite file through the
// pure Go modernc driver, for single-node deployments and the CLI.
package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	qb "github.com/riskibarqy/dietpop-lineup/internal/platform/querybuilder"
)

const kvTable = "kv_entries"

const schema = `CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type kvEntryModel struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type KVStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens or creates the database file at path and ensures the schema.
func Open(ctx context.Context, path string) (*KVStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sqlx.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &KVStore{db: db, now: time.Now}, nil
}

func dsn(path string) string {
	params := url.Values{}
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + params.Encode()
}

func (s *KVStore) Close() error {
	return s.db.Close()
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("value").
		From(kvTable).
		Where(qb.Eq("key", key)).
		Format(qb.Question).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get kv entry query: %w", err)
	}

	var values [][]byte
	if err := s.db.SelectContext(ctx, &values, query, args...); err != nil {
		return nil, false, kvstore.Unavailable(err, "get kv entry")
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	return values[0], true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query, args, err := qb.UpsertModel(kvTable, kvEntryModel{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}, qb.Question, "key")
	if err != nil {
		return fmt.Errorf("build upsert kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return kvstore.Unavailable(err, "upsert kv entry")
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(kvTable).
		Where(qb.Eq("key", key)).
		Format(qb.Question).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return kvstore.Unavailable(err, "delete kv entry")
	}
	return nil
}

// Keys filters again in Go because SQLite LIKE ignores ASCII case.
func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := qb.Select("key").
		From(kvTable).
		Where(qb.HasPrefix("key", prefix)).
		OrderBy("key").
		Format(qb.Question).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list kv keys query: %w", err)
	}

	var rows []string
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, kvstore.Unavailable(err, "list kv keys")
	}

	out := rows[:0]
	for _, key := range rows {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out, nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return kvstore.Unavailable(err, "ping sqlite")
	}
	return nil
}
