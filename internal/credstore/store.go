// internal/credstore/store.go

// Package credstore holds the current session token in a single
// process-wide slot. The slot is persisted to a small SQLite database so a
// token survives restarts; when the database cannot be opened or written the
// store silently degrades to in-memory only for the life of the process.
package credstore

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is the single owner of the session credential. Set replaces any
// prior token; no other component mutates the credential directly.
type Store struct {
	key string

	mu    sync.RWMutex
	token string
	db    *sql.DB // nil when running in-memory only
}

// Open creates a Store backed by the SQLite file at filename, keyed by key.
// Any failure to open the file or apply migrations is logged and the store
// falls back to in-memory operation; Open never fails.
func Open(filename, key string) *Store {
	if key == "" {
		key = "token"
	}
	s := &Store{key: key}

	db, err := openDatabase(filename)
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).
			Msg("Credential store degraded to in-memory")
		return s
	}
	s.db = db

	if token, err := s.loadPersisted(); err != nil {
		log.Warn().Err(err).Msg("Failed to read persisted credential")
	} else {
		s.token = token
	}
	return s
}

// InMemory creates a Store with no durable backing. Used by tests and as
// the degraded mode of Open.
func InMemory(key string) *Store {
	if key == "" {
		key = "token"
	}
	return &Store{key: key}
}

func openDatabase(filename string) (*sql.DB, error) {
	if filename == "" {
		return nil, fmt.Errorf("no credential database configured")
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("error creating credential directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error opening credential database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error running credential migrations: %w", err)
	}
	return db, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func (s *Store) loadPersisted() (string, error) {
	var token string
	err := s.db.QueryRow(
		"SELECT token FROM credentials WHERE key = ?", s.key,
	).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Set stores the token, replacing any prior one. Persistence is best
// effort: a write failure is logged and the token remains available
// in-memory for this process.
func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	db := s.db
	s.mu.Unlock()

	if db == nil {
		return
	}
	_, err := db.Exec(
		"INSERT INTO credentials (key, token, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at",
		s.key, token, time.Now().UTC(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to persist credential")
	}
}

// Get returns the current token. A token carrying a parseable JWT expiry
// that has passed is treated as absent and cleared.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return "", false
	}
	if expired(token, time.Now()) {
		log.Info().Msg("Stored credential expired, clearing")
		s.Clear()
		return "", false
	}
	return token, true
}

// Clear removes the token from memory and, best effort, from disk.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	db := s.db
	s.mu.Unlock()

	if db == nil {
		return
	}
	if _, err := db.Exec("DELETE FROM credentials WHERE key = ?", s.key); err != nil {
		log.Warn().Err(err).Msg("Failed to clear persisted credential")
	}
}

// Key returns the storage key name the token is kept under.
func (s *Store) Key() string {
	return s.key
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	db := s.db
	s.db = nil
	s.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}

// expired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens and JWTs without an exp claim never expire client-side;
// the server stays the authority on rejecting them.
func expired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
