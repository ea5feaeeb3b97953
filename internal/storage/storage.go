// Package storage persists cleaned entities into a relational backend behind
// a dialect registry. Backends (mysql, postgres, sqlite) register themselves
// at init time; importing fleximart/internal/storage/all enables all of them.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Config selects and parameterizes a backend. When DSN is empty, the dialect
// builds one from the individual connection fields.
type Config struct {
	Kind     string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Database string // database name; file path for sqlite
}

// Dialect captures what differs between the supported SQL backends: driver
// registration name, DSN construction, parameter placeholders, how insert ids
// are obtained, and the schema DDL.
type Dialect interface {
	// DriverName is the database/sql driver registration name.
	DriverName() string

	// DSN builds a driver connection string from cfg. Ignored when the caller
	// supplies Config.DSN verbatim.
	DSN(cfg Config) string

	// Placeholder returns the parameter placeholder for 1-based position n
	// (e.g. "?" for mysql/sqlite, "$1" for postgres).
	Placeholder(n int) string

	// ReturningID reports whether inserts must use a RETURNING clause to
	// obtain the generated key instead of Result.LastInsertId.
	ReturningID() bool

	// Schema returns the DDL statements that create the four destination
	// tables if they do not exist, in dependency order.
	Schema() []string
}

var (
	regMu    sync.RWMutex
	dialects = map[string]Dialect{}
)

// Register installs (or replaces) the dialect for the given storage kind. It
// is typically called from backend packages' init functions.
func Register(kind string, d Dialect) {
	regMu.Lock()
	defer regMu.Unlock()
	dialects[kind] = d
}

// ListKinds returns the registered storage kinds, sorted.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(dialects))
	for k := range dialects {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Open connects to the backend selected by cfg.Kind and verifies the
// connection with a short ping. The returned Store holds the single shared
// connection pool for the whole run; callers must Close it.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	regMu.RLock()
	d, ok := dialects[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = d.DSN(cfg)
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", cfg.Kind, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", cfg.Kind, err)
	}

	return &Store{db: db, dialect: d}, nil
}
