package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"voxelsurvivor/internal/progression"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
)

// FileStore writes one save per account under a directory. A save is a
// blake2b-256 digest followed by the msgpack payload it covers, so a
// truncated or hand-edited file is detected instead of half-loaded.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

const (
	saveExt   = ".sav"
	usersFile = "users" + saveExt
)

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func seal(v any) ([]byte, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(payload)
	return append(sum[:], payload...), nil
}

func unseal(raw []byte, v any) error {
	if len(raw) < blake2b.Size256 {
		return ErrCorrupt
	}
	sum, payload := raw[:blake2b.Size256], raw[blake2b.Size256:]
	want := blake2b.Sum256(payload)
	if !bytes.Equal(sum, want[:]) {
		return ErrCorrupt
	}
	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}

// path rejects ids that would escape the save directory.
func (f *FileStore) path(id string) (string, error) {
	if id == "" || filepath.Base(id) != id || id == "." || id == ".." {
		return "", fmt.Errorf("invalid account id %q", id)
	}
	return filepath.Join(f.dir, id+saveExt), nil
}

// writeFile replaces name atomically.
func (f *FileStore) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// users reads the nickname index. Caller holds f.mu.
func (f *FileStore) users() (map[string]User, error) {
	raw, err := os.ReadFile(filepath.Join(f.dir, usersFile))
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]User), nil
	}
	if err != nil {
		return nil, err
	}
	users := make(map[string]User)
	if err := unseal(raw, &users); err != nil {
		return nil, fmt.Errorf("user index: %w", err)
	}
	return users, nil
}

func (f *FileStore) Register(_ context.Context, nickname string) (User, error) {
	nick, err := cleanNickname(nickname)
	if err != nil {
		return User{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	users, err := f.users()
	if err != nil {
		return User{}, err
	}
	rng := newTagSource()
	for i := 0; i < tagAttempts; i++ {
		u := User{ID: newUserID(), Nickname: nick, Tag: nextTag(rng)}
		key := userKey(u.Nickname, u.Tag)
		if _, taken := users[key]; taken {
			continue
		}
		users[key] = u
		index, err := seal(users)
		if err != nil {
			return User{}, err
		}
		if err := f.writeFile(filepath.Join(f.dir, usersFile), index); err != nil {
			return User{}, err
		}
		if err := f.saveLocked(u.ID, newAccountFor(u)); err != nil {
			return User{}, err
		}
		return u, nil
	}
	return User{}, fmt.Errorf("failed to generate unique tag for %s", nick)
}

func (f *FileStore) FindUser(_ context.Context, nickname string, tag int) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users, err := f.users()
	if err != nil {
		return User{}, err
	}
	u, ok := users[userKey(nickname, tag)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *FileStore) LoadAccount(_ context.Context, id string) (*progression.Account, error) {
	name, err := f.path(id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	acc := progression.NewAccount()
	if err := unseal(raw, acc); err != nil {
		return nil, fmt.Errorf("load account %s: %w", id, err)
	}
	acc.Normalize()
	return acc, nil
}

func (f *FileStore) SaveAccount(_ context.Context, id string, acc *progression.Account) error {
	if acc == nil {
		return fmt.Errorf("save %s: nil account", id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveLocked(id, acc)
}

func (f *FileStore) saveLocked(id string, acc *progression.Account) error {
	name, err := f.path(id)
	if err != nil {
		return err
	}
	data, err := seal(acc)
	if err != nil {
		return fmt.Errorf("encode account %s: %w", id, err)
	}
	return f.writeFile(name, data)
}

func (f *FileStore) Close() error { return nil }
