// Package store implements the relational backend for the FMRD core: it owns
// the database/sql connection, applies the schema, seeds the catalogs, and
// serves the COUNT(*) executor, the position catalog lookup, and the record
// persistence used by the editor.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// DatabaseFile is the SQLite file created inside Config.DataDir.
const DatabaseFile = "fmrd.db"

// Backend is the query executor shared by the readiness gate, the
// referential guard, and the record editor.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dialect  dialect
	logger   *slog.Logger
}

// NewBackend creates a new backend instance. The backend is not attached;
// call Attach with a Config to open the database. A nil logger uses
// slog.Default().
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

// Attach opens the database described by config, applies the schema, and
// seeds the catalog tables on first run.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	d, err := dialectFor(config.Backend)
	if err != nil {
		return err
	}

	dsn := config.DSN
	if config.Backend == types.BackendSQLite {
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dsn = filepath.Join(dataDir, DatabaseFile)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", config.Backend, err)
	}
	if config.Backend == types.BackendSQLite {
		// One connection keeps SQLite writers from tripping over each other.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging %s database: %w", config.Backend, err)
	}

	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return err
	}
	if err := seedCatalogs(ctx, db, d); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.dialect = d
	b.config = config
	b.attached = true

	b.logger.Debug("backend attached",
		slog.String("backend", config.Backend),
		slog.String("data_dir", config.DataDir),
	)
	return nil
}

// Detach releases the database connection. Detach is idempotent. After
// Detach, all operations return ErrBackendDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.logger.Debug("backend detached", slog.String("backend", b.config.Backend))
	return nil
}

// Attached reports whether the backend holds an open connection.
func (b *Backend) Attached() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.attached
}

// Exec runs a write statement written with ? placeholders. It is used to load
// fixtures and by callers that manage match data outside the editor.
func (b *Backend) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.db.ExecContext(ctx, b.dialect.rebind(query), args...)
}
