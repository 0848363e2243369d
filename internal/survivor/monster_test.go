package survivor

import (
	"testing"

	"voxelsurvivor/internal/geom"
)

func TestMonsterKilledExactlyOnce(t *testing.T) {
	h := &Horde{}
	m := h.Spawn(dummy(20), geom.Vec2{})

	if m.TakeDamage(15, 0.3) {
		t.Fatalf("non-lethal hit reported a kill")
	}
	if !m.TakeDamage(15, 0.3) {
		t.Fatalf("lethal hit not reported")
	}
	if m.TakeDamage(15, 0.3) {
		t.Fatalf("dying monster killed again")
	}
	if m.HP != 0 {
		t.Fatalf("hp = %v, want 0", m.HP)
	}
}

func TestSlowDoesNotStackAndRestoresExactly(t *testing.T) {
	m := newMonster(1, dummy(100), geom.Vec2{})
	m.Speed = 3.3

	if !m.ApplySlow(0.5, 2) {
		t.Fatalf("first slow refused")
	}
	if m.ApplySlow(0.5, 2) {
		t.Fatalf("second slow stacked")
	}
	if !near(m.Speed, 1.65) {
		t.Fatalf("slowed speed = %v, want 1.65", m.Speed)
	}
	m.tickStatus(1)
	if !m.Slowed() {
		t.Fatalf("slow expired early")
	}
	m.tickStatus(1.5)
	if m.Slowed() || m.Speed != 3.3 {
		t.Fatalf("speed = %v slowed=%v, want exact 3.3 restored", m.Speed, m.Slowed())
	}
}

func TestHordeKeepsDyingUntilAnimationEnds(t *testing.T) {
	h := &Horde{}
	a := h.Spawn(dummy(10), geom.Vec2{X: 5})
	h.Spawn(dummy(10), geom.Vec2{X: -5})
	a.TakeDamage(100, 0.3)

	if removed := h.Update(0.2, geom.Vec2{}, 24); len(removed) != 0 {
		t.Fatalf("removed %v during death animation", removed)
	}
	if h.Len() != 2 || len(h.Living()) != 1 {
		t.Fatalf("len %d living %d, want 2 and 1", h.Len(), len(h.Living()))
	}
	removed := h.Update(0.2, geom.Vec2{}, 24)
	if len(removed) != 1 || removed[0] != a.ID {
		t.Fatalf("removed = %v, want [%d]", removed, a.ID)
	}
	if h.Get(a.ID) != nil {
		t.Fatalf("dead monster still retrievable")
	}
}

func TestMonstersChaseAndFaceTarget(t *testing.T) {
	h := &Horde{}
	m := h.Spawn(dummy(10), geom.Vec2{X: 10})
	h.Update(1, geom.Vec2{}, 24)

	if !near(m.Pos.X, 8) {
		t.Fatalf("x = %v, want 8", m.Pos.X)
	}
	if m.Facing != (geom.Vec2{X: -1}) {
		t.Fatalf("facing = %+v", m.Facing)
	}
}

func TestDyingMonsterDoesNotMove(t *testing.T) {
	h := &Horde{}
	m := h.Spawn(dummy(10), geom.Vec2{X: 10})
	m.TakeDamage(100, 1)
	h.Update(0.5, geom.Vec2{}, 24)
	if m.Pos.X != 10 {
		t.Fatalf("dying monster moved to %+v", m.Pos)
	}
}
