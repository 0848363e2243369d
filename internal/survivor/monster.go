package survivor

import (
	"strconv"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
)

type MonsterState string

const (
	MonsterAlive MonsterState = "alive"
	MonsterDying MonsterState = "dying"
)

type Monster struct {
	ID     int
	Type   catalog.MonsterType
	Pos    geom.Vec2
	Facing geom.Vec2
	HP     float64
	MaxHP  float64
	Attack float64
	Speed  float64
	Radius float64
	Exp    int
	Coins  int
	State  MonsterState

	dyingLeft    float64
	slowLeft     float64
	preSlowSpeed float64
}

func newMonster(id int, def catalog.MonsterDef, pos geom.Vec2) *Monster {
	return &Monster{
		ID:     id,
		Type:   def.Type,
		Pos:    pos,
		Facing: geom.Vec2{Z: 1},
		HP:     def.HP,
		MaxHP:  def.HP,
		Attack: def.Attack,
		Speed:  def.Speed,
		Radius: def.Size,
		Exp:    def.Exp,
		Coins:  def.Coins,
		State:  MonsterAlive,
	}
}

func (m *Monster) Alive() bool { return m.State == MonsterAlive }

func (m *Monster) Slowed() bool { return m.slowLeft > 0 }

func (m *Monster) ref() EntityRef {
	return EntityRef{ID: monsterKey(m.ID), Kind: string(m.Type), Pos: m.Pos, Facing: m.Facing}
}

func monsterKey(id int) string { return "monster:" + strconv.Itoa(id) }

// TakeDamage subtracts amount from health. It reports true exactly once,
// on the hit that moves the monster into its dying state.
func (m *Monster) TakeDamage(amount float64, deathAnimation float64) (killed bool) {
	if !m.Alive() {
		return false
	}
	m.HP -= amount
	if m.HP > 0 {
		return false
	}
	m.HP = 0
	m.State = MonsterDying
	m.dyingLeft = deathAnimation
	return true
}

// ApplySlow multiplies speed by factor for duration. A slowed monster
// ignores further slows until the current one expires.
func (m *Monster) ApplySlow(factor, duration float64) bool {
	if m.Slowed() || !m.Alive() || duration <= 0 {
		return false
	}
	m.preSlowSpeed = m.Speed
	m.Speed = m.Speed * factor
	m.slowLeft = duration
	return true
}

func (m *Monster) tickStatus(dt float64) {
	if m.slowLeft <= 0 {
		return
	}
	m.slowLeft -= dt
	if m.slowLeft <= 0 {
		m.slowLeft = 0
		m.Speed = m.preSlowSpeed
	}
}

// chase steps toward target and faces the direction of travel.
func (m *Monster) chase(target geom.Vec2, dt float64) {
	dir := target.Sub(m.Pos).Normalize()
	if dir.IsZero() {
		return
	}
	m.Pos = m.Pos.Add(dir.Scale(m.Speed * dt))
	m.Facing = dir
}

// ========================================
// HORDE
// ========================================

// Horde owns every monster of a run, including the dying ones still playing
// their death animation.
type Horde struct {
	monsters []*Monster
	nextID   int
}

func (h *Horde) Spawn(def catalog.MonsterDef, pos geom.Vec2) *Monster {
	h.nextID++
	m := newMonster(h.nextID, def, pos)
	h.monsters = append(h.monsters, m)
	return m
}

// Len counts every monster in the collection, dying ones included.
func (h *Horde) Len() int { return len(h.monsters) }

// Living returns the monsters that can still be hit. The slice is fresh.
func (h *Horde) Living() []*Monster {
	out := make([]*Monster, 0, len(h.monsters))
	for _, m := range h.monsters {
		if m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

func (h *Horde) All() []*Monster { return h.monsters }

func (h *Horde) Get(id int) *Monster {
	for _, m := range h.monsters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Update moves the living toward target, runs status timers, and drops
// monsters whose death animation has finished. Removed ids are returned.
func (h *Horde) Update(dt float64, target geom.Vec2, half float64) (removed []int) {
	kept := h.monsters[:0]
	for _, m := range h.monsters {
		if m.State == MonsterDying {
			m.dyingLeft -= dt
			if m.dyingLeft <= 0 {
				removed = append(removed, m.ID)
				continue
			}
			kept = append(kept, m)
			continue
		}
		m.tickStatus(dt)
		m.chase(target, dt)
		m.Pos = m.Pos.Clamp(half)
		kept = append(kept, m)
	}
	for i := len(kept); i < len(h.monsters); i++ {
		h.monsters[i] = nil
	}
	h.monsters = kept
	return removed
}

func (h *Horde) Clear() {
	h.monsters = nil
	h.nextID = 0
}
