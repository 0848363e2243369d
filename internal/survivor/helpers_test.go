package survivor

import (
	"context"
	"io"
	"log"
	"math"
	"math/rand"
	"sync"
	"testing"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
	"voxelsurvivor/internal/progression"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

// bareConfig is the default balance with no artifacts on the map.
func bareConfig() config.Config {
	cfg := config.Default()
	cfg.Artifacts.Crystals = 0
	cfg.Artifacts.Chests = 0
	cfg.Artifacts.Fountains = 0
	cfg.Artifacts.Altars = 0
	cfg.Artifacts.Grass = 0
	return cfg
}

func newTestGame(t *testing.T, cfg config.Config, opts Options) *Game {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return NewGame(cfg, opts)
}

func startedGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, bareConfig(), Options{})
	if _, ok := g.StartRun(context.Background()); !ok {
		t.Fatalf("start run failed")
	}
	return g
}

// dummy is a sturdy monster that never dies to a few hits.
func dummy(hp float64) catalog.MonsterDef {
	return catalog.MonsterDef{Type: catalog.MonsterSlime, Name: "Dummy", HP: hp, Attack: 5, Speed: 2, Exp: 10, Coins: 5, Size: 0.8}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

type recordingAudio struct {
	mu   sync.Mutex
	keys []string
}

func (a *recordingAudio) Play(key string) {
	a.mu.Lock()
	a.keys = append(a.keys, key)
	a.mu.Unlock()
}

func (a *recordingAudio) count(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, k := range a.keys {
		if k == key {
			n++
		}
	}
	return n
}

type recordingScene struct {
	spawned map[string]bool
	removed map[string]bool
	moves   int
}

func newRecordingScene() *recordingScene {
	return &recordingScene{spawned: map[string]bool{}, removed: map[string]bool{}}
}

func (s *recordingScene) Spawned(e EntityRef) { s.spawned[e.ID] = true }
func (s *recordingScene) Moved(EntityRef)     { s.moves++ }
func (s *recordingScene) Removed(id string)   { s.removed[id] = true }

type memStore struct {
	accounts map[string]*progression.Account
	loadErr  error
	saves    int
}

func (m *memStore) LoadAccount(_ context.Context, id string) (*progression.Account, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	acc, ok := m.accounts[id]
	if !ok {
		return nil, ErrNoAccount
	}
	return acc.Clone(), nil
}

func (m *memStore) SaveAccount(_ context.Context, id string, acc *progression.Account) error {
	if m.accounts == nil {
		m.accounts = map[string]*progression.Account{}
	}
	m.accounts[id] = acc.Clone()
	m.saves++
	return nil
}

// wall is a terrain with circular obstacles.
type wall []geom.Circle

func (w wall) CheckCollision(p geom.Vec2, r float64) (geom.Circle, bool) {
	for _, c := range w {
		if c.Overlaps(p, r) {
			return c, true
		}
	}
	return geom.Circle{}, false
}

func (w wall) ResolveCollision(p geom.Vec2, r float64) (geom.Vec2, bool) {
	for _, c := range w {
		if !c.Overlaps(p, r) {
			continue
		}
		dir := p.Sub(c.Center).Normalize()
		if dir.IsZero() {
			dir = geom.Vec2{X: 1}
		}
		return c.Center.Add(dir.Scale(c.Radius + r)), true
	}
	return p, false
}
