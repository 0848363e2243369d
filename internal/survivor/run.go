package survivor

import (
	"math"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/progression"
)

// Run is the per-run progression state. Every subsystem mutates it through
// the methods below, which clamp their inputs, so no caller can leave it
// outside its invariants.
type Run struct {
	ID        string
	Day       int
	Timer     float64
	Level     int
	Exp       int
	ExpToNext int
	Kills     int
	Coins     int
	Stats     catalog.Stats
	Cooldowns map[catalog.SkillID]float64

	AutoSkills    map[catalog.AutoSkillID]bool
	Passives      map[catalog.PassiveID]bool
	SkillUpgrades map[catalog.SkillUpgradeID]bool

	Bonuses progression.RunBonuses
	Revived bool
	Settled bool

	levelCap        int
	expStep         int
	levelUpPending  bool
	dead            bool
	lowHealthWarned bool
}

func newRun(id string, acc *progression.Account, firstDay float64, levelCap, expStep int) *Run {
	r := &Run{
		ID:            id,
		Day:           1,
		Timer:         firstDay,
		Level:         1,
		Stats:         acc.StartingStats(),
		Cooldowns:     make(map[catalog.SkillID]float64, len(catalog.Skills)),
		AutoSkills:    make(map[catalog.AutoSkillID]bool),
		Passives:      make(map[catalog.PassiveID]bool),
		SkillUpgrades: make(map[catalog.SkillUpgradeID]bool),
		Bonuses:       acc.Bonuses(),
		levelCap:      levelCap,
		expStep:       expStep,
	}
	for id := range catalog.Skills {
		r.Cooldowns[id] = 0
	}
	r.ExpToNext = catalog.ExpToNext(r.Level, expStep)
	return r
}

// GainExp adds experience and resolves every level-up it pays for. Several
// level-ups from one gain raise a single pending prompt.
func (r *Run) GainExp(amount int) (leveled bool) {
	if amount <= 0 {
		return false
	}
	r.Exp += amount
	for r.Exp >= r.ExpToNext && r.Level < r.levelCap {
		r.Exp -= r.ExpToNext
		r.Level++
		r.ExpToNext = catalog.ExpToNext(r.Level, r.expStep)
		leveled = true
	}
	if r.Level >= r.levelCap && r.Exp >= r.ExpToNext {
		r.Exp = r.ExpToNext - 1
	}
	if leveled {
		r.levelUpPending = true
	}
	return leveled
}

// TakeDamage applies defense with a floor of one and returns the damage
// actually dealt.
func (r *Run) TakeDamage(amount float64) float64 {
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	dmg := math.Max(1, amount-r.Stats.Defense)
	r.Stats.HP = math.Max(0, r.Stats.HP-dmg)
	if r.Stats.HP <= 0 {
		r.dead = true
	}
	return dmg
}

// Heal restores up to max HP and returns the amount restored.
func (r *Run) Heal(amount float64) float64 {
	if amount <= 0 || r.Stats.HP <= 0 {
		return 0
	}
	before := r.Stats.HP
	r.Stats.HP = math.Min(r.Stats.MaxHP, r.Stats.HP+amount)
	return r.Stats.HP - before
}

func (r *Run) AddCoins(n int) {
	if n > 0 {
		r.Coins += n
	}
}

func (r *Run) AddKill() { r.Kills++ }

func (r *Run) ApplyStats(delta catalog.StatDelta) {
	r.Stats = r.Stats.Apply(delta)
}

func (r *Run) HealthFraction() float64 {
	if r.Stats.MaxHP <= 0 {
		return 0
	}
	return r.Stats.HP / r.Stats.MaxHP
}

// Lifesteal sums the passive and the starting upgrade.
func (r *Run) Lifesteal() float64 {
	ls := r.Bonuses.Lifesteal
	if r.Passives[catalog.PassiveLifesteal] {
		ls += catalog.Passives[catalog.PassiveLifesteal].Value
	}
	return ls
}

// DamageScale is the multiplier applied to all player-sourced damage.
func (r *Run) DamageScale() float64 {
	if r.Day <= progression.StartingDamageDays {
		return 1 + r.Bonuses.EarlyDamage
	}
	return 1
}

// tickCooldowns counts every active skill cooldown down to zero.
func (r *Run) tickCooldowns(dt float64) {
	for id, left := range r.Cooldowns {
		r.Cooldowns[id] = math.Max(0, left-dt)
	}
}

// advanceClock runs the day timer. It returns true when a day boundary was
// crossed.
func (r *Run) advanceClock(dt, dayLength float64) bool {
	r.Timer -= dt
	if r.Timer > 0 {
		return false
	}
	r.Day++
	r.Timer = dayLength
	return true
}

// reviveOrDie resolves zero health: the revival upgrade brings the player
// back once per run, otherwise the run is over.
func (r *Run) reviveOrDie() (revived bool) {
	if r.Stats.HP > 0 {
		r.dead = false
		return false
	}
	if r.Bonuses.Revival && !r.Revived {
		r.Revived = true
		r.Stats.HP = math.Max(1, r.Stats.MaxHP*r.Bonuses.RevivalFraction)
		r.dead = false
		return true
	}
	r.dead = true
	return false
}

// sane reports whether the numbers are still usable. A false here means a
// bug upstream, and the run is abandoned rather than simulated further.
func (r *Run) sane() bool {
	s := r.Stats
	for _, v := range []float64{s.HP, s.MaxHP, s.Attack, s.Defense, s.Speed, r.Timer} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.MaxHP > 0 && r.Exp >= 0 && r.Level >= 1
}

func (r *Run) result() progression.RunResult {
	return progression.RunResult{
		RunID:       r.ID,
		Day:         r.Day,
		Kills:       r.Kills,
		Level:       r.Level,
		CoinsEarned: r.Coins,
	}
}
