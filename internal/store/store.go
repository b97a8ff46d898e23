// Package store persists questions and LLM request events in SQLite
// through ent's SQL driver.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "modernc.org/sqlite"
)

// pragmas are applied by the driver to every new connection.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Store owns the database and hands out repositories over it.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open opens the SQLite database at dsn, a file path or a "file:" URI,
// and migrates it to the current schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	drv := entsql.OpenDB(dialect.SQLite, db)
	s := &Store{db: db, drv: drv}

	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if s.seq, err = newSequenceCounter(db); err != nil {
		drv.Close()
		return nil, err
	}
	return s, nil
}

func withPragmas(dsn string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + q.Encode()
}

// DB exposes the connection pool for raw queries.
func (s *Store) DB() *sql.DB { return s.db }

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.drv.Close()
}

// QuestionRepo returns the question repository.
func (s *Store) QuestionRepo() *QuestionRepo {
	return &QuestionRepo{drv: s.drv, seq: s.seq}
}

// EventRepo returns the LLM event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

// DefaultDBPath picks the database file: $CODEGENIUS_DB if set, otherwise
// codegenius/codegenius.db under $XDG_DATA_HOME or ~/.local/share. The
// parent directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CODEGENIUS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "codegenius", "codegenius.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the directory holding path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
