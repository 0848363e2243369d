package survivor

import (
	"context"
	"math/rand"
	"testing"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
)

func TestSpawnIntervalClamps(t *testing.T) {
	s := newSpawner(config.Default().Spawn, 1, 1)
	tests := []struct {
		day  int
		want float64
	}{
		{2, 3},
		{7, 2},
		{12, 1},
		{40, 1},
	}
	for _, tt := range tests {
		if got := s.Interval(tt.day); !near(got, tt.want) {
			t.Fatalf("day %d interval = %v, want %v", tt.day, got, tt.want)
		}
	}

	fast := newSpawner(config.Default().Spawn, 1, 2)
	if got := fast.Interval(2); !near(got, 1.5) {
		t.Fatalf("spawn rate bonus interval = %v, want 1.5", got)
	}
	if got := fast.Interval(30); !near(got, config.Default().Spawn.MinInterval) {
		t.Fatalf("late interval with spawn rate bonus = %v, want the %v floor", got, config.Default().Spawn.MinInterval)
	}
}

func TestNothingSpawnsOnSafeDays(t *testing.T) {
	s := newSpawner(config.Default().Spawn, 1, 1)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if n := s.Due(1, 1, 0, rng); n != 0 {
			t.Fatalf("spawned %d on a safe day", n)
		}
	}
}

func TestDueNeverExceedsCap(t *testing.T) {
	cfg := config.Default().Spawn
	cfg.DoubleSpawnChance = 1
	s := newSpawner(cfg, 1, 1)
	rng := rand.New(rand.NewSource(1))

	if n := s.Due(5, 2, cfg.MaxMonsters-1, rng); n != 1 {
		t.Fatalf("due = %d, want 1 with one slot left", n)
	}
	if n := s.Due(5, 2, cfg.MaxMonsters, rng); n != 0 {
		t.Fatalf("due = %d at cap", n)
	}
	if n := s.Due(5, 2, 0, rng); n != 2 {
		t.Fatalf("due = %d, want double spawn", n)
	}
}

func TestPopulationStaysUnderCap(t *testing.T) {
	g := startedGame(t)
	g.run.Day = 12
	g.run.Timer = 1e6
	g.run.Stats.MaxHP = 1e9
	g.run.Stats.HP = 1e9
	ctx := context.Background()

	for i := 0; i < 2000; i++ {
		g.Tick(ctx, 0.1, Input{})
		if n := g.horde.Len(); n > g.cfg.Spawn.MaxMonsters {
			t.Fatalf("tick %d: %d monsters, cap %d", i, n, g.cfg.Spawn.MaxMonsters)
		}
		if g.Phase() != PhasePlaying {
			t.Fatalf("left playing phase: %s", g.Phase())
		}
	}
	if g.horde.Len() == 0 {
		t.Fatalf("nothing spawned")
	}
}

func TestPickTypeHonoursDay(t *testing.T) {
	s := newSpawner(config.Default().Spawn, 1, 1)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		def, ok := s.PickType(4, rng)
		if !ok {
			t.Fatalf("no type on day 4")
		}
		if def.MinDay > 4 {
			t.Fatalf("picked %s with min day %d on day 4", def.Type, def.MinDay)
		}
	}
}

func TestEmptyPoolSkipsSpawn(t *testing.T) {
	s := newSpawner(config.Default().Spawn, 0, 1)
	s.rules = []catalog.SpawnRule{{Day: 1, Types: []catalog.MonsterType{catalog.MonsterOrc}}}
	if _, ok := s.PickType(1, rand.New(rand.NewSource(1))); ok {
		t.Fatalf("orc offered before its minimum day")
	}
}

func TestPlaceWithinRing(t *testing.T) {
	cfg := config.Default()
	s := newSpawner(cfg.Spawn, 1, 1)
	rng := rand.New(rand.NewSource(9))
	half := cfg.Map.HalfExtent()
	for i := 0; i < 500; i++ {
		p := s.Place(geom.Vec2{}, half, rng)
		d := p.Len()
		if d > cfg.Spawn.MaxRadius+1e-9 {
			t.Fatalf("spawn at %+v beyond ring", p)
		}
		if p.X > half || p.X < -half || p.Z > half || p.Z < -half {
			t.Fatalf("spawn at %+v off the map", p)
		}
	}
}
