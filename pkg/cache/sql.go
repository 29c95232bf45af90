package cache

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Dialect selects the SQL flavour used by [SQLCache].
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// SQLCache stores entries in a single table of a SQL database.
//
// Expiration is stored as a unix timestamp in seconds; zero means the entry
// never expires.
type SQLCache struct {
	db      *sql.DB
	table   string
	dialect Dialect
}

// NewSQLCache opens the database and creates the cache table if missing.
//
// The dsn format depends on the dialect:
//   - sqlite: a file path
//   - mysql: user:password@tcp(host:port)/dbname
//   - postgres: host=localhost port=5432 user=postgres dbname=mydb
func NewSQLCache(ctx context.Context, dialect Dialect, dsn, table string) (*SQLCache, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid cache table name %q", table)
	}

	var driver string
	switch dialect {
	case SQLite:
		driver = "sqlite"
	case MySQL:
		driver = "mysql"
	case Postgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported sql dialect: %s", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", dialect, err)
	}
	if dialect == SQLite {
		// Avoid "database is locked" under concurrent writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s cache: %w", dialect, err)
	}

	c := &SQLCache{db: db, table: table, dialect: dialect}
	if _, err := db.ExecContext(ctx, c.createTableQuery()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	return c, nil
}

func (c *SQLCache) createTableQuery() string {
	switch c.dialect {
	case MySQL:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			cache_key VARCHAR(255) PRIMARY KEY,
			cache_value LONGBLOB NOT NULL,
			expires_at BIGINT NOT NULL
		)`, c.table)
	case Postgres:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			cache_value BYTEA NOT NULL,
			expires_at BIGINT NOT NULL
		)`, c.table)
	default:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			cache_value BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		)`, c.table)
	}
}

// placeholders returns n bind parameters for the dialect.
func (c *SQLCache) placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		if c.dialect == Postgres {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

func (c *SQLCache) upsertQuery() string {
	p := c.placeholders(3)
	switch c.dialect {
	case MySQL:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, expires_at) VALUES (%s, %s, %s) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, expires_at = new.expires_at`, c.table, p[0], p[1], p[2])
	case Postgres:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, expires_at) VALUES (%s, %s, %s)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, expires_at = EXCLUDED.expires_at`, c.table, p[0], p[1], p[2])
	default:
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, expires_at) VALUES (%s, %s, %s)`, c.table, p[0], p[1], p[2])
	}
}

// Get retrieves a value from the cache. Expired rows are deleted lazily.
func (c *SQLCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt int64
	)
	query := fmt.Sprintf(`SELECT cache_value, expires_at FROM %s WHERE cache_key = %s`, c.table, c.placeholders(1)[0])
	err := c.db.QueryRowContext(ctx, query, key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if expiresAt > 0 && time.Now().Unix() >= expiresAt {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores a value in the cache.
func (c *SQLCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}
	_, err := c.db.ExecContext(ctx, c.upsertQuery(), key, data, expiresAt)
	return err
}

// Delete removes a value from the cache.
func (c *SQLCache) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE cache_key = %s`, c.table, c.placeholders(1)[0])
	_, err := c.db.ExecContext(ctx, query, key)
	return err
}

// Clear removes every entry.
func (c *SQLCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, c.table))
	return err
}

// Close closes the underlying DB connection.
func (c *SQLCache) Close() error {
	return c.db.Close()
}

var _ Cache = (*SQLCache)(nil)
