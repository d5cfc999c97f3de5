package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/logging"
)

// LazyDB opens the trace database on first use. Commands that never touch
// traces skip the WASM compilation and the migrations.
type LazyDB struct {
	path string

	once sync.Once
	mu   sync.Mutex
	db   *sql.DB
	err  error
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

func NewLazyDB(path string) *LazyDB {
	return &LazyDB{path: path}
}

// DB returns the shared connection. A failed open is remembered and
// returned to every later caller.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() { l.open(ctx) })

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, fmt.Errorf("trace database %s: %w", l.path, l.err)
	}
	return l.db, nil
}

func (l *LazyDB) open(ctx context.Context) {
	log := logging.FromContext(ctx).With().Str("path", l.path).Logger()
	log.Debug().Msg("opening trace database")

	db, err := NewConnection(ctx, l.path)
	if err != nil {
		log.Error().Err(err).Msg("trace database unavailable")
	}

	l.mu.Lock()
	l.db, l.err = db, err
	l.mu.Unlock()
}

// Close closes the connection if one was opened. Safe to call twice.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	db := l.db
	l.db = nil
	l.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}

// IsInitialized reports whether a connection is open.
func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

func (l *LazyDB) Path() string {
	return l.path
}
