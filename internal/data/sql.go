package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"voxelsurvivor/internal/progression"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore persists accounts in Postgres or SQLite. Queries are written
// with ? placeholders and rebound for Postgres.
type SQLStore struct {
	mu     sync.Mutex
	db     *sql.DB
	driver string
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		nickname   TEXT NOT NULL,
		tag        INTEGER NOT NULL DEFAULT 0,
		data       TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE UNIQUE INDEX IF NOT EXISTS accounts_nickname_tag ON accounts (nickname, tag) WHERE tag > 0;
`

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		nickname   TEXT NOT NULL,
		tag        INTEGER NOT NULL DEFAULT 0,
		data       TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE UNIQUE INDEX IF NOT EXISTS accounts_nickname_tag ON accounts (nickname, tag) WHERE tag > 0;
`

// NewPostgresStore connects with a connection string (e.g. os.Getenv("DATABASE_URL")).
func NewPostgresStore(connStr string) (*SQLStore, error) {
	return openSQL("postgres", connStr, postgresSchema)
}

// NewSQLiteStore opens or creates the database file at path.
func NewSQLiteStore(path string) (*SQLStore, error) {
	return openSQL("sqlite3", path, sqliteSchema)
}

func openSQL(driver, dsn, schema string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db, driver: driver}, nil
}

// NewSQLStore wraps an existing handle whose schema is already in place.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// rebind turns ? placeholders into $1, $2... for Postgres.
func (s *SQLStore) rebind(q string) string {
	if s.driver != "postgres" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Register retries random tags; a taken nickname/tag pair inserts nothing.
func (s *SQLStore) Register(ctx context.Context, nickname string) (User, error) {
	nick, err := cleanNickname(nickname)
	if err != nil {
		return User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rng := newTagSource()
	for i := 0; i < tagAttempts; i++ {
		u := User{ID: newUserID(), Nickname: nick, Tag: nextTag(rng)}
		res, err := s.db.ExecContext(ctx, s.rebind(`
			INSERT INTO accounts (id, nickname, tag, data)
			VALUES (?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`), u.ID, u.Nickname, u.Tag, newAccountFor(u).ToJSON())
		if err != nil {
			return User{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue // tag collision, retry
		}
		return u, nil
	}
	return User{}, fmt.Errorf("failed to generate unique tag for %s", nick)
}

func (s *SQLStore) FindUser(ctx context.Context, nickname string, tag int) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, nickname, tag FROM accounts WHERE nickname = ? AND tag = ?
	`), strings.TrimSpace(nickname), tag).Scan(&u.ID, &u.Nickname, &u.Tag)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// LoadAccount decodes the stored JSON. A row with unreadable data yields
// the default account, not an error.
func (s *SQLStore) LoadAccount(ctx context.Context, id string) (*progression.Account, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT data FROM accounts WHERE id = ?`), id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", id, err)
	}
	acc := progression.AccountFromJSON(raw)
	if acc.ID == "" {
		acc.ID = id
	}
	return acc, nil
}

// SaveAccount upserts. Accounts saved without registering get tag 0 and
// the id as nickname.
func (s *SQLStore) SaveAccount(ctx context.Context, id string, acc *progression.Account) error {
	if acc == nil {
		return fmt.Errorf("save %s: nil account", id)
	}
	nick := acc.Nickname
	if nick == "" {
		nick = id
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO accounts (id, nickname, tag, data, updated_at)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET data = excluded.data,
		    updated_at = excluded.updated_at
	`), id, nick, acc.ToJSON(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save account %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }
