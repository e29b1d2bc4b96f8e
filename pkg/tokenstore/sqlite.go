package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clientelehq/clientele/pkg/tokenstore/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// SQLite is a durable Store backed by a single-row SQLite table. It survives
// process restarts, so a renewal done by one run of a CLI serves the next.
//
// All Store methods serialize through the database; two processes sharing
// one file observe each other's renewals.
type SQLite struct {
	db     *sql.DB
	sealer *Sealer
}

type SQLiteOption func(*SQLite)

// WithSealer encrypts token values at rest.
func WithSealer(s *Sealer) SQLiteOption {
	return func(st *SQLite) { st.sealer = s }
}

// NewSQLite opens (creating if needed) the store at dsn and applies any
// pending schema migrations.
func NewSQLite(dsn string, opts ...SQLiteOption) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: open sqlite: %w", err)
	}

	// A single-row store gains nothing from connection-level parallelism,
	// and a single connection sidesteps SQLITE_BUSY under concurrent Set.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tokenstore: migrate: %w", err)
	}

	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// applyMigrations runs the embedded migrations against the store's database.
func (s *SQLite) applyMigrations() error {
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context) (Token, bool, error) {
	var (
		value     []byte
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM token WHERE id = 1`,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Token{}, false, nil
	}
	if err != nil {
		return Token{}, false, fmt.Errorf("tokenstore: get: %w", err)
	}

	if s.sealer != nil {
		value, err = s.sealer.Open(value)
		if err != nil {
			return Token{}, false, err
		}
	}

	t := Token{Value: string(value)}
	if expiresAt != 0 {
		t.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	}
	return t, true, nil
}

func (s *SQLite) Set(ctx context.Context, t Token) error {
	value := []byte(t.Value)
	if s.sealer != nil {
		var err error
		value, err = s.sealer.Seal(value)
		if err != nil {
			return err
		}
	}

	var expiresAt int64
	if !t.ExpiresAt.IsZero() {
		expiresAt = t.ExpiresAt.Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO token (id, value, expires_at, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		value, expiresAt, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("tokenstore: set: %w", err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM token WHERE id = 1`); err != nil {
		return fmt.Errorf("tokenstore: clear: %w", err)
	}
	return nil
}
