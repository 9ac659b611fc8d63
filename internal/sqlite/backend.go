// Package sqlite implements the repository Client against a local
// SQLite database. It serves as an offline backend and as the test
// double for the remote service: the same object graph, links,
// annotations, attachments and stored tables, minus the transport.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lumigraph/omebridge/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface check.
var _ types.Client = (*Backend)(nil)

// Backend implements types.Client on a local SQLite database. A root
// Backend owns the database handle; Sudo derives backends that share
// it but act as another user.
type Backend struct {
	mu        sync.Mutex
	db        *sql.DB
	dataDir   string
	root      bool
	user      types.Experimenter
	sessionID string
	groupID   int64
}

// New creates an unconnected backend; call Connect before use.
func New() *Backend {
	return &Backend{root: true}
}

// Connect opens (or creates) the database under cfg.DataDir and starts
// a session for cfg.Username, creating the account on first use. The
// session is identified by a fresh UUID.
func (b *Backend) Connect(ctx context.Context, cfg types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db != nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "bridge.db"))
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	username := cfg.Username
	if username == "" {
		username = "root"
	}
	user, err := ensureUser(ctx, db, username)
	if err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.dataDir = dataDir
	b.user = user
	b.sessionID = uuid.NewString()
	return nil
}

// Close releases the database. Derived (sudo) backends share the
// handle with their root and closing them is a no-op. Idempotent.
func (b *Backend) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.root || b.db == nil {
		b.db = nil
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// SwitchGroup sets the active group and returns it. The local backend
// has no group-based permissions; the value is only echoed back.
func (b *Backend) SwitchGroup(ctx context.Context, groupID int64) (int64, error) {
	if b.db == nil {
		return -1, types.ErrNotConnected
	}
	b.groupID = groupID
	return b.groupID, nil
}

// FindUser resolves a username to an account.
func (b *Backend) FindUser(ctx context.Context, username string) (types.Experimenter, error) {
	if b.db == nil {
		return types.Experimenter{}, types.ErrNotConnected
	}
	var user types.Experimenter
	row := b.db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE username = ?", username)
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if err == sql.ErrNoRows {
			return types.Experimenter{}, types.ErrNotFound
		}
		return types.Experimenter{}, err
	}
	return user, nil
}

// Sudo returns a backend acting as the given user, sharing the
// database with the receiver under a new session id.
func (b *Backend) Sudo(ctx context.Context, username string) (types.Client, error) {
	if b.db == nil {
		return nil, types.ErrNotConnected
	}
	user, err := b.FindUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Backend{
		db:        b.db,
		dataDir:   b.dataDir,
		user:      user,
		sessionID: uuid.NewString(),
		groupID:   b.groupID,
	}, nil
}

// User returns the account the backend acts as.
func (b *Backend) User() types.Experimenter { return b.user }

// SessionID returns the current session token.
func (b *Backend) SessionID() string { return b.sessionID }

// ensureUser looks a username up, creating the account on first use.
func ensureUser(ctx context.Context, db *sql.DB, username string) (types.Experimenter, error) {
	if _, err := db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (username) VALUES (?)", username); err != nil {
		return types.Experimenter{}, err
	}
	var user types.Experimenter
	row := db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE username = ?", username)
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		return types.Experimenter{}, err
	}
	return user, nil
}

// now formats timestamps the way every table stores them.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
