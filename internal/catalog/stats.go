package catalog

// StatKey names one field of the stat block.
type StatKey string

const (
	StatMaxHP   StatKey = "maxHp"
	StatAttack  StatKey = "atk"
	StatDefense StatKey = "def"
	StatSpeed   StatKey = "spd"
	StatCrit    StatKey = "crit"
	StatCritDmg StatKey = "critDmg"
)

// StatDelta is an additive change to a stat block.
type StatDelta map[StatKey]float64

// Stats is the combat stat block shared by the player and the level-up math.
// Speed is a multiplier over the configured base movement speed.
type Stats struct {
	HP         float64 `json:"hp" msgpack:"hp"`
	MaxHP      float64 `json:"maxHp" msgpack:"maxHp"`
	Attack     float64 `json:"atk" msgpack:"atk"`
	Defense    float64 `json:"def" msgpack:"def"`
	Speed      float64 `json:"spd" msgpack:"spd"`
	Crit       float64 `json:"crit" msgpack:"crit"`
	CritDamage float64 `json:"critDmg" msgpack:"critDmg"`
}

var BaseStats = Stats{
	HP:         100,
	MaxHP:      100,
	Attack:     10,
	Defense:    0,
	Speed:      1.0,
	Crit:       0.05,
	CritDamage: 1.5,
}

// Apply returns s with delta added. Raising max HP raises current HP by the
// same amount; HP never exceeds max HP afterwards.
func (s Stats) Apply(delta StatDelta) Stats {
	for key, v := range delta {
		switch key {
		case StatMaxHP:
			s.MaxHP += v
			s.HP += v
		case StatAttack:
			s.Attack += v
		case StatDefense:
			s.Defense += v
		case StatSpeed:
			s.Speed += v
		case StatCrit:
			s.Crit += v
		case StatCritDmg:
			s.CritDamage += v
		}
	}
	if s.MaxHP < 1 {
		s.MaxHP = 1
	}
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.HP < 0 {
		s.HP = 0
	}
	return s
}

// ========================================
// LEVELS
// ========================================

var LevelExp = []int{
	0, 100, 150, 200, 300, 400, 500, 650, 800, 1000,
	1200, 1500, 1800, 2200, 2600, 3000, 3500, 4000, 4500, 5000,
}

// ExpToNext is the experience needed to leave level. Levels past the table
// fall back to level*step.
func ExpToNext(level, step int) int {
	if level >= 1 && level < len(LevelExp) {
		return LevelExp[level]
	}
	if level < 1 {
		level = 1
	}
	return level * step
}
