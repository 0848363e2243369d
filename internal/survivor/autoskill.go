package survivor

import (
	"math"
	"strconv"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
)

// autoSkill is one acquired auto-skill's runtime. Handlers are built from
// the catalog effect variant, one per variant.
type autoSkill interface {
	update(r *resolver, dt float64)
}

// newAutoSkill is the single dispatch point from effect variant to handler.
func newAutoSkill(id catalog.AutoSkillID, effect catalog.AutoEffect, hits *HitCooldowns, instances func() int) autoSkill {
	switch e := effect.(type) {
	case catalog.Orbit:
		o := &orbitSkill{params: e, hits: hits, cue: CueOrbitalHit}
		if id == catalog.AutoSpinningBlades {
			o.cue = CueBladeHit
		}
		for i := 0; i < e.Count; i++ {
			o.instances = append(o.instances, instances())
		}
		o.positions = make([]geom.Vec2, e.Count)
		return o
	case catalog.Projectile:
		return &projectileSkill{params: e}
	case catalog.Chain:
		return &chainSkill{params: e}
	case catalog.Aura:
		return &auraSkill{params: e}
	case catalog.Nova:
		return &novaSkill{params: e}
	default:
		return nil
	}
}

// AutoSkills holds the auto-skills acquired this run. An acquired skill
// starts uninitialized and is built on its first update; it is never
// removed mid-run.
type AutoSkills struct {
	slots        map[catalog.AutoSkillID]autoSkill
	acquired     map[catalog.AutoSkillID]bool
	hits         *HitCooldowns
	nextInstance int
	regenTimer   float64
}

func newAutoSkills() *AutoSkills {
	return &AutoSkills{
		slots:    make(map[catalog.AutoSkillID]autoSkill),
		acquired: make(map[catalog.AutoSkillID]bool),
		hits:     newHitCooldowns(),
	}
}

func (a *AutoSkills) Acquire(id catalog.AutoSkillID) bool {
	if _, ok := catalog.AutoSkills[id]; !ok || a.acquired[id] {
		return false
	}
	a.acquired[id] = true
	return true
}

func (a *AutoSkills) Initialized(id catalog.AutoSkillID) bool {
	return a.slots[id] != nil
}

func (a *AutoSkills) instance() int {
	a.nextInstance++
	return a.nextInstance
}

// Update runs every acquired skill in catalog order, then regeneration.
func (a *AutoSkills) Update(r *resolver, dt float64) {
	a.hits.Tick(dt)
	for _, id := range catalog.AutoSkillOrder {
		if !a.acquired[id] {
			continue
		}
		s := a.slots[id]
		if s == nil {
			s = newAutoSkill(id, catalog.AutoSkills[id].Effect, a.hits, a.instance)
			if s == nil {
				continue
			}
			a.slots[id] = s
		}
		s.update(r, dt)
	}
	a.regenerate(r, dt)
}

func (a *AutoSkills) regenerate(r *resolver, dt float64) {
	if !r.run.Passives[catalog.PassiveRegeneration] {
		return
	}
	a.regenTimer += dt
	for a.regenTimer >= 1 {
		a.regenTimer -= 1
		r.run.Heal(catalog.Passives[catalog.PassiveRegeneration].Value)
	}
}

// Forget releases per-monster bookkeeping for a removed monster.
func (a *AutoSkills) Forget(monster int) { a.hits.Forget(monster) }

// Orbs returns the current orbiting hitbox positions of every orbit skill.
func (a *AutoSkills) Orbs() []OrbView {
	var out []OrbView
	for _, id := range catalog.AutoSkillOrder {
		if o, ok := a.slots[id].(*orbitSkill); ok {
			for _, pos := range o.positions {
				out = append(out, OrbView{Skill: id, Pos: pos})
			}
		}
	}
	return out
}

// Projectiles returns live projectiles across all projectile skills.
func (a *AutoSkills) Projectiles() []*Projectile {
	var out []*Projectile
	for _, id := range catalog.AutoSkillOrder {
		if p, ok := a.slots[id].(*projectileSkill); ok {
			out = append(out, p.live...)
		}
	}
	return out
}

func (a *AutoSkills) Cooldown(id catalog.AutoSkillID) float64 {
	switch s := a.slots[id].(type) {
	case *projectileSkill:
		return math.Max(0, s.cooldown)
	case *chainSkill:
		return math.Max(0, s.cooldown)
	case *novaSkill:
		return math.Max(0, s.cooldown)
	}
	return 0
}

// ========================================
// ORBIT (orbital, spinning blades)
// ========================================

type orbitSkill struct {
	params    catalog.Orbit
	angle     float64
	instances []int
	positions []geom.Vec2
	hits      *HitCooldowns
	cue       Cue
}

func (o *orbitSkill) update(r *resolver, dt float64) {
	o.angle += o.params.AngularSpeed * dt
	step := 2 * math.Pi / float64(len(o.instances))
	dmg := o.params.Damage * r.run.DamageScale()
	living := r.horde.Living()
	for i, inst := range o.instances {
		pos := r.player.Pos.Add(geom.FromAngle(o.angle + step*float64(i)).Scale(o.params.Radius))
		o.positions[i] = pos
		for _, m := range living {
			if !m.Alive() || m.Pos.Dist(pos) >= o.params.HitRadius || !o.hits.Ready(inst, m.ID) {
				continue
			}
			o.hits.Mark(inst, m.ID, o.params.HitCooldown)
			r.hitMonster(m, dmg, o.cue)
		}
	}
}

// ========================================
// PROJECTILE (fireball)
// ========================================

type Projectile struct {
	ID       int
	Pos      geom.Vec2
	Dir      geom.Vec2
	Speed    float64
	Damage   float64
	Lifetime float64
	Dead     bool
}

func projectileKey(id int) string { return "projectile:" + strconv.Itoa(id) }

type projectileSkill struct {
	params   catalog.Projectile
	cooldown float64
	live     []*Projectile
	nextID   int
}

func (s *projectileSkill) update(r *resolver, dt float64) {
	s.cooldown -= dt
	if s.cooldown <= 0 {
		if target := r.nearest(r.player.Pos, s.params.Range, nil); target != nil {
			s.nextID++
			p := &Projectile{
				ID:       s.nextID,
				Pos:      r.player.Pos,
				Dir:      target.Pos.Sub(r.player.Pos).Normalize(),
				Speed:    s.params.Speed,
				Damage:   s.params.Damage * r.run.DamageScale(),
				Lifetime: s.params.Lifetime,
			}
			if p.Dir.IsZero() {
				p.Dir = r.player.Facing
			}
			s.live = append(s.live, p)
			s.cooldown = s.params.Cooldown
			r.cue(CueFireballShoot)
			r.scene.Spawned(EntityRef{ID: projectileKey(p.ID), Kind: "fireball", Pos: p.Pos, Facing: p.Dir})
		}
	}

	kept := s.live[:0]
	for _, p := range s.live {
		p.step(r, dt, s.params.HitRadius)
		if p.Dead {
			r.scene.Removed(projectileKey(p.ID))
			continue
		}
		r.scene.Moved(EntityRef{ID: projectileKey(p.ID), Kind: "fireball", Pos: p.Pos, Facing: p.Dir})
		kept = append(kept, p)
	}
	s.live = kept
}

// step flies the projectile and resolves its one hit.
func (p *Projectile) step(r *resolver, dt, hitRadius float64) {
	p.Pos = p.Pos.Add(p.Dir.Scale(p.Speed * dt))
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		p.Dead = true
		return
	}
	for _, m := range r.horde.Living() {
		if m.Pos.Dist(p.Pos) >= hitRadius {
			continue
		}
		r.hitMonster(m, p.Damage, CueMonsterHit)
		r.cue(CueFireballExplode)
		r.fx.Push(Effect{Kind: fxExplosion, Pos: p.Pos, Radius: hitRadius, TTL: 0.3})
		p.Dead = true
		return
	}
}

// ========================================
// CHAIN (lightning)
// ========================================

type chainSkill struct {
	params   catalog.Chain
	cooldown float64
}

func (s *chainSkill) update(r *resolver, dt float64) {
	s.cooldown -= dt
	if s.cooldown > 0 {
		return
	}
	living := r.horde.Living()
	if len(living) == 0 {
		return
	}
	s.cooldown = s.params.Cooldown
	r.cue(CueLightning)

	scale := r.run.DamageScale()
	target := living[r.rng.Intn(len(living))]
	hit := map[int]bool{target.ID: true}
	from := target.Pos
	r.fx.Push(Effect{Kind: fxLightning, Pos: from, TTL: 0.1})
	r.hitMonster(target, s.params.Damage*scale, "")

	for i := 1; i < s.params.ChainCount; i++ {
		next := r.nearest(from, s.params.ChainRange, hit)
		if next == nil {
			break
		}
		hit[next.ID] = true
		r.fx.Push(Effect{Kind: fxLightning, Pos: from, To: next.Pos, TTL: 0.1})
		from = next.Pos
		r.hitMonster(next, s.params.Damage*s.params.ChainFactor*scale, "")
	}
}

// ========================================
// AURA (poison)
// ========================================

type auraSkill struct {
	params catalog.Aura
	timer  float64
}

func (s *auraSkill) update(r *resolver, dt float64) {
	s.timer += dt
	if s.timer < s.params.TickRate {
		return
	}
	s.timer = 0
	targets := r.within(r.player.Pos, s.params.Radius)
	if len(targets) == 0 {
		return
	}
	r.cue(CuePoisonTick)
	r.fx.Push(Effect{Kind: fxPoison, Pos: r.player.Pos, Radius: s.params.Radius, TTL: s.params.TickRate})
	dmg := s.params.Damage * r.run.DamageScale()
	for _, m := range targets {
		r.hitMonster(m, dmg, "")
	}
}

// ========================================
// NOVA (frost)
// ========================================

type novaSkill struct {
	params   catalog.Nova
	cooldown float64
}

func (s *novaSkill) update(r *resolver, dt float64) {
	s.cooldown -= dt
	if s.cooldown > 0 {
		return
	}
	targets := r.within(r.player.Pos, s.params.Radius)
	if len(targets) == 0 {
		return
	}
	s.cooldown = s.params.Cooldown
	r.cue(CueFrostNova)
	r.fx.Push(Effect{Kind: fxFrost, Pos: r.player.Pos, Radius: s.params.Radius, TTL: 0.3})
	dmg := s.params.Damage * r.run.DamageScale()
	for _, m := range targets {
		r.hitMonster(m, dmg, "")
		m.ApplySlow(s.params.SlowFactor, s.params.SlowDuration)
	}
}
