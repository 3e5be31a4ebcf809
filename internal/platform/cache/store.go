package cache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

// Default TTLs per category. Rosters move slowly during a day, player
// histories are rebuilt often while a page is open.
var DefaultTTLs = map[Category]time.Duration{
	CategoryRoster:        30 * time.Minute,
	CategoryTransactions:  60 * time.Minute,
	CategoryPlayerHistory: 15 * time.Minute,
}

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	category   TEXT NOT NULL,
	data       BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at ON cache_entries (expires_at);
`

// Open opens (creating if needed) the cache database at path. WAL mode so
// the background sweeper never blocks request-path reads.
func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create cache directory")
		}
	}

	db, err := otelsqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		otelsql.WithAttributes(semconv.DBSystemSqlite),
		otelsql.WithAttributes(attribute.String("db.name", filepath.Base(path))),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open cache database")
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping cache database")
	}

	return db, nil
}

// Store is a durable key-value cache with per-category TTLs. Read and write
// failures degrade to cache misses: callers always get an answer from the
// loader path, at worst without caching.
type Store struct {
	db     *sqlx.DB
	ttls   map[Category]time.Duration
	logger *logging.Logger
	flight singleflight.Group

	now func() time.Time
}

func NewStore(db *sqlx.DB, ttls map[Category]time.Duration, logger *logging.Logger) *Store {
	if len(ttls) == 0 {
		ttls = DefaultTTLs
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Store{
		db:     db,
		ttls:   ttls,
		logger: logger,
		now:    time.Now,
	}
}

// Initialize creates the backing table and sweeps entries left over from a
// previous run. Safe to call on every startup.
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "initialize cache schema")
	}

	cleared, err := s.ClearExpired(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "startup cache sweep failed", "error", err)
		return nil
	}
	if cleared > 0 {
		s.logger.InfoContext(ctx, "startup cache sweep", "cleared", cleared)
	}
	return nil
}

// TTL returns the duration applied to entries of the given category.
func (s *Store) TTL(category Category) time.Duration {
	if ttl, ok := s.ttls[category]; ok {
		return ttl
	}
	return DefaultTTLs[category]
}

// Get loads the entry for key into dest. Expired entries are evicted on
// read and reported as misses.
func (s *Store) Get(ctx context.Context, key Key, dest any) bool {
	var row struct {
		Data      []byte `db:"data"`
		ExpiresAt int64  `db:"expires_at"`
	}

	err := s.db.GetContext(ctx, &row,
		`SELECT data, expires_at FROM cache_entries WHERE key = ?`, key.CacheKey())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "cache read failed", "key", key.CacheKey(), "error", err)
		}
		return false
	}

	if row.ExpiresAt < s.now().UnixMilli() {
		s.Delete(ctx, key)
		return false
	}

	if err := sonic.Unmarshal(row.Data, dest); err != nil {
		s.logger.WarnContext(ctx, "cache entry corrupt, evicting", "key", key.CacheKey(), "error", err)
		s.Delete(ctx, key)
		return false
	}

	return true
}

// Set stores value under key with the category's TTL. Failures are logged
// and swallowed.
func (s *Store) Set(ctx context.Context, key Key, value any) {
	data, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "key", key.CacheKey(), "error", err)
		return
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, category, data, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET
		   category = excluded.category,
		   data = excluded.data,
		   created_at = excluded.created_at,
		   expires_at = excluded.expires_at`,
		key.CacheKey(), string(key.Category()), data,
		now.UnixMilli(), now.Add(s.TTL(key.Category())).UnixMilli())
	if err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key.CacheKey(), "error", err)
	}
}

// Delete removes the entry for key, if any.
func (s *Store) Delete(ctx context.Context, key Key) {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE key = ?`, key.CacheKey()); err != nil {
		s.logger.WarnContext(ctx, "cache delete failed", "key", key.CacheKey(), "error", err)
	}
}

// ClearExpired removes every entry past its deadline and returns the count.
func (s *Store) ClearExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at < ?`, s.now().UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, "clear expired cache entries")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "count cleared cache entries")
	}
	return n, nil
}

// ClearAll drops every cache entry.
func (s *Store) ClearAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	if err != nil {
		return 0, errors.Wrap(err, "clear cache")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "count cleared cache entries")
	}
	return n, nil
}

// Count returns the number of live (unexpired) entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM cache_entries WHERE expires_at >= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, "count cache entries")
	}
	return n, nil
}

// Lookup returns the cached value for key, loading and storing it on a
// miss. Concurrent misses for the same key share one loader call.
func Lookup[T any](ctx context.Context, s *Store, key Key, loader func(context.Context) (T, error)) (T, error) {
	var cached T
	if s.Get(ctx, key, &cached) {
		return cached, nil
	}

	value, err, _ := s.flight.Do(key.CacheKey(), func() (any, error) {
		var again T
		if s.Get(ctx, key, &again) {
			return again, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return value.(T), nil
}
