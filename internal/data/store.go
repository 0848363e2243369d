// Package data persists accounts between runs. Every backend stores the
// same thing: a registered user (nickname plus numeric tag) and the
// account progression behind it.
package data

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"voxelsurvivor/internal/progression"

	"github.com/google/uuid"
)

// ErrNotFound is returned for ids and nickname/tag pairs nothing was saved
// under. It is the same sentinel the simulation checks for.
var ErrNotFound = progression.ErrAccountNotFound

// ErrCorrupt marks a save that exists but fails its integrity check.
var ErrCorrupt = errors.New("save data corrupted")

// User is the public identity of an account.
type User struct {
	ID       string `json:"user_id" msgpack:"id"`
	Nickname string `json:"nickname" msgpack:"nickname"`
	Tag      int    `json:"tag" msgpack:"tag"`
}

// Store is an account backend.
type Store interface {
	// Register creates a user with a fresh id and a random tag unique for
	// the nickname, plus its default account.
	Register(ctx context.Context, nickname string) (User, error)
	FindUser(ctx context.Context, nickname string, tag int) (User, error)
	LoadAccount(ctx context.Context, id string) (*progression.Account, error)
	SaveAccount(ctx context.Context, id string, acc *progression.Account) error
	Close() error
}

// Open picks a backend from a location string:
//
//	""  or "memory:"            in-process, lost on exit
//	postgres://... postgresql:// Postgres
//	sqlite:path                  single-file SQLite database
//	file:dir                     one checksummed msgpack save per account
func Open(dsn string) (Store, error) {
	switch {
	case dsn == "" || dsn == "memory:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresStore(dsn)
	case strings.HasPrefix(dsn, "sqlite:"):
		return NewSQLiteStore(strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasPrefix(dsn, "file:"):
		return NewFileStore(strings.TrimPrefix(dsn, "file:"))
	}
	return nil, fmt.Errorf("unsupported store location %q", dsn)
}

// tagAttempts bounds the random tag search before giving up on a nickname.
const tagAttempts = 20

func newUserID() string { return "u_" + uuid.NewString() }

func newTagSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// nextTag is 1..9999.
func nextTag(rng *rand.Rand) int { return rng.Intn(9999) + 1 }

func cleanNickname(nickname string) (string, error) {
	nick := strings.TrimSpace(nickname)
	if nick == "" {
		return "", errors.New("empty nickname")
	}
	if len(nick) > 32 {
		return "", errors.New("nickname too long")
	}
	return nick, nil
}

// newAccountFor is the default account of a freshly registered user.
func newAccountFor(u User) *progression.Account {
	acc := progression.NewAccount()
	acc.ID = u.ID
	acc.Nickname = u.Nickname
	return acc
}
