package survivor

import (
	"math"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
)

// Player is the one player entity of a run. Stats live on the Run; this is
// the body: where it is, where it faces, and its action timers.
type Player struct {
	Pos    geom.Vec2
	Facing geom.Vec2

	attackCooldown float64
	hitInvincible  float64
	swings         int

	dash  *dashMove
	knock knockMove
}

type dashMove struct {
	from, to geom.Vec2
	elapsed  float64
	duration float64
}

type knockMove struct {
	dir      geom.Vec2
	speed    float64
	left     float64
	duration float64
}

func newPlayer() *Player {
	return &Player{Facing: geom.Vec2{Z: 1}}
}

func (p *Player) Dashing() bool { return p.dash != nil }

// Invincible covers both the post-hit window and an active dash.
func (p *Player) Invincible() bool { return p.hitInvincible > 0 || p.dash != nil }

func (p *Player) ref() EntityRef {
	return EntityRef{ID: "player", Kind: "player", Pos: p.Pos, Facing: p.Facing}
}

// bounds keeps a body on the map and out of obstacles.
type bounds struct {
	half    float64
	radius  float64
	terrain Terrain
}

func (b bounds) settle(pos geom.Vec2) geom.Vec2 {
	pos = pos.Clamp(b.half)
	if _, hit := b.terrain.CheckCollision(pos, b.radius); hit {
		if pushed, ok := b.terrain.ResolveCollision(pos, b.radius); ok {
			pos = pushed.Clamp(b.half)
		}
	}
	return pos
}

// Move walks along the input direction at speed. Dashing overrides input.
func (p *Player) Move(input geom.Vec2, speed, dt float64, b bounds) {
	if p.dash != nil {
		return
	}
	dir := input.Normalize()
	if dir.IsZero() {
		return
	}
	p.Facing = dir
	p.Pos = b.settle(p.Pos.Add(dir.Scale(speed * dt)))
}

// knockback pushes the player along dir by roughly distance, decaying
// linearly to zero over duration.
func (p *Player) knockback(dir geom.Vec2, distance, duration float64) {
	if duration <= 0 || distance <= 0 {
		return
	}
	p.knock = knockMove{
		dir:      dir.Normalize(),
		speed:    2 * distance / duration,
		left:     duration,
		duration: duration,
	}
}

// startDash samples the path ahead and stops short of the first obstacle.
func (p *Player) startDash(distance, duration float64, samples int, b bounds) {
	if samples < 1 {
		samples = 1
	}
	reach := 1.0
	for i := 1; i <= samples; i++ {
		sample := p.Pos.Add(p.Facing.Scale(distance * float64(i) / float64(samples)))
		if _, hit := b.terrain.CheckCollision(sample, b.radius); hit {
			reach = float64(i-1) / float64(samples)
			break
		}
	}
	p.dash = &dashMove{
		from:     p.Pos,
		to:       p.Pos.Add(p.Facing.Scale(distance * reach)).Clamp(b.half),
		duration: math.Max(duration, 1e-3),
	}
}

// tick advances the player's own timers: attack gate, hit window, dash
// easing and knockback decay.
func (p *Player) tick(dt float64, b bounds) {
	p.attackCooldown = math.Max(0, p.attackCooldown-dt)
	p.hitInvincible = math.Max(0, p.hitInvincible-dt)

	if d := p.dash; d != nil {
		d.elapsed += dt
		t := math.Min(1, d.elapsed/d.duration)
		eased := 1 - math.Pow(1-t, 3)
		p.Pos = d.from.Lerp(d.to, eased).Clamp(b.half)
		if t >= 1 {
			p.dash = nil
		}
	}

	if k := &p.knock; k.left > 0 {
		step := math.Min(dt, k.left)
		v := k.speed * (k.left / k.duration)
		k.left -= dt
		p.Pos = b.settle(p.Pos.Add(k.dir.Scale(v * step)))
	}
}

func (p *Player) reset() {
	*p = *newPlayer()
}

// ========================================
// ATTACK & SKILLS
// ========================================

var swingCues = []Cue{CueAttack1, CueAttack2, CueAttack3}

// attack swings at every monster in range and in front, or close enough
// that facing does not matter. Returns false while the swing is gated.
func (r *resolver) attack() bool {
	p := r.player
	if p.attackCooldown > 0 {
		return false
	}
	p.attackCooldown = r.cfg.Player.AttackCooldown * r.run.Bonuses.AttackCooldownMul
	r.cue(swingCues[p.swings%len(swingCues)])
	p.swings++
	r.fx.Push(Effect{Kind: fxSlash, Pos: p.Pos, To: p.Pos.Add(p.Facing.Scale(r.cfg.Player.AttackRange)), TTL: 0.2})

	strikes := 1
	if r.run.SkillUpgrades[catalog.UpgradeMultiStrike] {
		strikes = catalog.SkillUpgrades[catalog.UpgradeMultiStrike].AttackCount
	}

	var total float64
	for _, m := range r.horde.Living() {
		to := m.Pos.Sub(p.Pos)
		dist := to.Len()
		if dist > r.cfg.Player.AttackRange {
			continue
		}
		if dist > r.cfg.Player.FallbackRadius && p.Facing.Dot(to) <= 0 {
			continue
		}
		for i := 0; i < strikes && m.Alive(); i++ {
			dmg := r.rollDamage()
			total += dmg
			r.hitMonster(m, dmg, CueMonsterHit)
		}
	}
	if ls := r.run.Lifesteal(); ls > 0 && total > 0 {
		r.run.Heal(total * ls)
	}
	return true
}

// rollDamage is one melee hit: attack, berserk, early-days bonus and a
// crit roll.
func (r *resolver) rollDamage() float64 {
	dmg := r.run.Stats.Attack * r.run.DamageScale()
	if r.run.Passives[catalog.PassiveBerserk] {
		b := catalog.Passives[catalog.PassiveBerserk]
		if r.run.HealthFraction() < b.Threshold {
			dmg *= 1 + b.Value
		}
	}
	if r.rng.Float64() < r.run.Stats.Crit {
		dmg *= r.run.Stats.CritDamage
		r.fx.Push(Effect{Kind: fxCrit, Pos: r.player.Pos, Value: dmg, TTL: 0.5})
	}
	return dmg
}

// skillCooldown is the catalog cooldown after upgrades.
func (r *resolver) skillCooldown(id catalog.SkillID) float64 {
	cd := catalog.Skills[id].Cooldown
	if id == catalog.SkillDash {
		if r.run.SkillUpgrades[catalog.UpgradeDashMaster] {
			cd -= catalog.SkillUpgrades[catalog.UpgradeDashMaster].CooldownReduction
		}
		cd -= r.run.Bonuses.DashCooldownCut
	}
	return math.Max(0.5, cd)
}

// useSkill fires an active skill. The caller has already checked the phase.
func (r *resolver) useSkill(id catalog.SkillID, b bounds) bool {
	def, ok := catalog.Skills[id]
	if !ok || r.run.Cooldowns[id] > 0 {
		return false
	}
	r.run.Cooldowns[id] = r.skillCooldown(id)

	switch id {
	case catalog.SkillSpin:
		radius := def.Radius + r.run.Bonuses.SpinRadiusBonus
		mul := def.DamageMul
		if r.run.SkillUpgrades[catalog.UpgradeSpinMaster] {
			up := catalog.SkillUpgrades[catalog.UpgradeSpinMaster]
			radius += up.RadiusBonus
			mul *= 1 + up.DamageBonus
		}
		r.cue(CueSkillSpin)
		r.fx.Push(Effect{Kind: fxSpin, Pos: r.player.Pos, Radius: radius, TTL: 0.4})
		dmg := r.run.Stats.Attack * mul * r.run.DamageScale()
		for _, m := range r.within(r.player.Pos, radius) {
			r.hitMonster(m, dmg, CueMonsterHit)
		}
	case catalog.SkillDash:
		distance := def.Distance
		if r.run.SkillUpgrades[catalog.UpgradeDashMaster] {
			distance += catalog.SkillUpgrades[catalog.UpgradeDashMaster].DistanceBonus
		}
		r.cue(CueSkillDash)
		r.player.startDash(distance, r.cfg.Player.DashDuration, r.cfg.Player.DashSamples, b)
		r.fx.Push(Effect{Kind: fxDash, Pos: r.player.dash.from, To: r.player.dash.to, TTL: r.cfg.Player.DashDuration})
	case catalog.SkillHeal:
		r.run.Heal(r.run.Stats.MaxHP * def.HealPercent)
		r.cue(CuePlayerHeal)
		r.fx.Push(Effect{Kind: fxHeal, Pos: r.player.Pos, TTL: 0.8})
	}
	return true
}
