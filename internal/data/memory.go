package data

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"voxelsurvivor/internal/progression"
)

// MemoryStore keeps everything in maps. Used for tests and local play
// without a save location.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]User
	accounts map[string]*progression.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]User),
		accounts: make(map[string]*progression.Account),
	}
}

func userKey(nickname string, tag int) string { return nickname + "#" + strconv.Itoa(tag) }

func (m *MemoryStore) Register(_ context.Context, nickname string) (User, error) {
	nick, err := cleanNickname(nickname)
	if err != nil {
		return User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rng := newTagSource()
	for i := 0; i < tagAttempts; i++ {
		u := User{ID: newUserID(), Nickname: nick, Tag: nextTag(rng)}
		key := userKey(u.Nickname, u.Tag)
		if _, taken := m.users[key]; taken {
			continue
		}
		m.users[key] = u
		m.accounts[u.ID] = newAccountFor(u)
		return u, nil
	}
	return User{}, fmt.Errorf("failed to generate unique tag for %s", nick)
}

func (m *MemoryStore) FindUser(_ context.Context, nickname string, tag int) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userKey(nickname, tag)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) LoadAccount(_ context.Context, id string) (*progression.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return acc.Clone(), nil
}

func (m *MemoryStore) SaveAccount(_ context.Context, id string, acc *progression.Account) error {
	if acc == nil {
		return fmt.Errorf("save %s: nil account", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id] = acc.Clone()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
