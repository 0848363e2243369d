package survivor

import (
	"math"
	"math/rand"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
)

// resolver is the slice of game state every combat system works on: the
// run, the player, the horde and the side channels. It owns the damage
// rules so hits from attacks, skills and auto-skills all settle the same way.
type resolver struct {
	cfg    *config.Config
	run    *Run
	player *Player
	horde  *Horde
	rng    *rand.Rand
	fx     *Effects
	cue    func(Cue)
	scene  Scene

	explosions []geom.Vec2
}

// hitMonster deals dmg to m. Kills grant rewards immediately.
func (r *resolver) hitMonster(m *Monster, dmg float64, cue Cue) (killed bool) {
	if !m.Alive() || dmg <= 0 {
		return false
	}
	killed = m.TakeDamage(dmg, r.cfg.Spawn.DeathAnimation)
	r.fx.Push(Effect{Kind: fxDamage, Pos: m.Pos, Value: math.Round(dmg), TTL: 0.6})
	if killed {
		r.reward(m)
		return true
	}
	if cue != "" {
		r.cue(cue)
	}
	return false
}

func (r *resolver) reward(m *Monster) {
	r.grantExp(m.Exp)
	r.grantCoins(m.Coins)
	r.run.AddKill()
	r.cue(CueMonsterDeath)
	r.fx.Push(Effect{Kind: fxDeath, Pos: m.Pos, Radius: m.Radius, TTL: r.cfg.Spawn.DeathAnimation})
	if r.run.Bonuses.ExplosionChance > 0 && r.rng.Float64() < r.run.Bonuses.ExplosionChance {
		r.explosions = append(r.explosions, m.Pos)
	}
}

func (r *resolver) grantExp(n int) {
	r.run.GainExp(int(math.Round(float64(n) * r.run.Bonuses.ExpMultiplier)))
}

func (r *resolver) grantCoins(n int) {
	r.run.AddCoins(int(math.Round(float64(n) * r.run.Bonuses.CoinMultiplier)))
}

// within returns living monsters whose centre lies inside radius of c.
func (r *resolver) within(c geom.Vec2, radius float64) []*Monster {
	var out []*Monster
	for _, m := range r.horde.Living() {
		if m.Pos.Dist(c) < radius {
			out = append(out, m)
		}
	}
	return out
}

// nearest returns the closest living monster to c within maxDist, skipping
// any in exclude.
func (r *resolver) nearest(c geom.Vec2, maxDist float64, exclude map[int]bool) *Monster {
	var best *Monster
	bestDist := maxDist
	for _, m := range r.horde.Living() {
		if exclude[m.ID] {
			continue
		}
		if d := m.Pos.Dist(c); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

// ========================================
// CONTACT & PICKUPS
// ========================================

// contact resolves monster bodies touching the player. Invincibility from a
// hit or a dash skips it entirely; one hit per tick, since the hit itself
// grants invincibility.
func (r *resolver) contact() {
	p := r.player
	if p.Invincible() || r.run.Stats.HP <= 0 {
		return
	}
	for _, m := range r.horde.Living() {
		if m.Pos.Dist(p.Pos) >= r.cfg.Player.Radius+m.Radius {
			continue
		}
		dealt := r.run.TakeDamage(m.Attack)
		r.cue(CuePlayerHit)
		r.fx.Push(Effect{Kind: fxDamage, Pos: p.Pos, Value: dealt, TTL: 0.6})
		if r.run.Passives[catalog.PassiveThorns] {
			r.hitMonster(m, dealt*catalog.Passives[catalog.PassiveThorns].Value, CueMonsterHit)
		}
		p.hitInvincible = r.cfg.Player.HitInvincibility
		away := p.Pos.Sub(m.Pos).Normalize()
		if away.IsZero() {
			away = p.Facing.Scale(-1)
		}
		p.knockback(away, r.cfg.Player.KnockbackDistance, r.cfg.Player.KnockbackDuration)
		return
	}
}

// detonate resolves queued death explosions. A kill by explosion may queue
// another; each monster dies once so the loop ends.
func (r *resolver) detonate() {
	for len(r.explosions) > 0 {
		at := r.explosions[0]
		r.explosions = r.explosions[1:]
		r.fx.Push(Effect{Kind: fxExplosion, Pos: at, Radius: r.cfg.Spawn.ExplosionRadius, TTL: 0.4})
		r.cue(CueFireballExplode)
		for _, m := range r.within(at, r.cfg.Spawn.ExplosionRadius) {
			r.hitMonster(m, r.cfg.Spawn.ExplosionDamage, "")
		}
	}
}

// checkHealth applies revival and the low health warning after all damage
// for the tick has landed.
func (r *resolver) checkHealth() {
	if r.run.Stats.HP <= 0 {
		if r.run.reviveOrDie() {
			r.cue(CuePlayerHeal)
			r.fx.Push(Effect{Kind: fxHeal, Pos: r.player.Pos, TTL: 1})
		}
		return
	}
	low := r.run.HealthFraction() < r.cfg.Day.LowHealthFraction
	if low && !r.run.lowHealthWarned {
		r.cue(CueLowHealth)
	}
	r.run.lowHealthWarned = low
}
