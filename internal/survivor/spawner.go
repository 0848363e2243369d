package survivor

import (
	"math"
	"math/rand"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
)

// Spawner decides when monsters join the run and where.
type Spawner struct {
	cfg   config.SpawnConfig
	safe  int
	rules []catalog.SpawnRule
	rate  float64
	idle  float64
}

func newSpawner(cfg config.SpawnConfig, safeDays int, rate float64) *Spawner {
	if rate <= 0 {
		rate = 1
	}
	return &Spawner{cfg: cfg, safe: safeDays, rules: catalog.SpawnRules, rate: rate}
}

// Interval shrinks by the configured decay per day and is divided by the
// spawn-rate bonus. The minimum holds after the bonus too.
func (s *Spawner) Interval(day int) float64 {
	interval := math.Min(s.cfg.BaseInterval, s.cfg.BaseInterval-float64(day-2)*s.cfg.IntervalDecay)
	return math.Max(s.cfg.MinInterval, interval/s.rate)
}

// Due accumulates idle time and returns how many monsters to spawn now,
// never more than the room left under the cap.
func (s *Spawner) Due(dt float64, day, population int, rng *rand.Rand) int {
	if day <= s.safe {
		return 0
	}
	s.idle += dt
	if s.idle < s.Interval(day) || population >= s.cfg.MaxMonsters {
		return 0
	}
	s.idle = 0
	n := 1
	if rng.Float64() < s.cfg.DoubleSpawnChance {
		n = 2
	}
	if room := s.cfg.MaxMonsters - population; n > room {
		n = room
	}
	return n
}

// PickType draws uniformly from the types eligible on day.
func (s *Spawner) PickType(day int, rng *rand.Rand) (catalog.MonsterDef, bool) {
	types := catalog.AvailableTypes(s.rules, day)
	if len(types) == 0 {
		return catalog.MonsterDef{}, false
	}
	return catalog.Monsters[types[rng.Intn(len(types))]], true
}

// Place picks a point on a random bearing around center, between the
// configured radii, clamped to the map.
func (s *Spawner) Place(center geom.Vec2, half float64, rng *rand.Rand) geom.Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	dist := s.cfg.MinRadius + rng.Float64()*(s.cfg.MaxRadius-s.cfg.MinRadius)
	return center.Add(geom.FromAngle(angle).Scale(dist)).Clamp(half)
}

func (s *Spawner) reset() { s.idle = 0 }
