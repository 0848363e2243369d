package survivor

import (
	"context"
	"testing"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
)

func TestAttackHitsOncePerCall(t *testing.T) {
	g := startedGame(t)
	g.run.Stats.Crit = 0
	m := g.horde.Spawn(dummy(1000), geom.Vec2{Z: 1})
	r := g.resolver()

	if !r.attack() {
		t.Fatalf("first attack gated")
	}
	if m.HP != 990 {
		t.Fatalf("hp = %v, want 990", m.HP)
	}
	if r.attack() {
		t.Fatalf("attack ignored its cooldown")
	}
	if m.HP != 990 {
		t.Fatalf("gated attack still dealt damage")
	}
}

func TestMultiStrikeHitsTwice(t *testing.T) {
	g := startedGame(t)
	g.run.Stats.Crit = 0
	g.run.SkillUpgrades[catalog.UpgradeMultiStrike] = true
	m := g.horde.Spawn(dummy(1000), geom.Vec2{Z: 1})

	g.resolver().attack()
	if m.HP != 980 {
		t.Fatalf("hp = %v, want 980", m.HP)
	}
}

func TestAttackArc(t *testing.T) {
	g := startedGame(t)
	g.run.Stats.Crit = 0
	behindFar := g.horde.Spawn(dummy(1000), geom.Vec2{Z: -2})
	behindClose := g.horde.Spawn(dummy(1000), geom.Vec2{Z: -1})
	outOfRange := g.horde.Spawn(dummy(1000), geom.Vec2{Z: 3})

	g.resolver().attack()
	if behindFar.HP != 1000 {
		t.Fatalf("monster behind the player outside fallback radius was hit")
	}
	if behindClose.HP != 990 {
		t.Fatalf("monster inside fallback radius missed, hp %v", behindClose.HP)
	}
	if outOfRange.HP != 1000 {
		t.Fatalf("monster out of range was hit")
	}
}

func TestBerserkAndCrit(t *testing.T) {
	g := startedGame(t)
	g.run.Passives[catalog.PassiveBerserk] = true
	g.run.Stats.HP = 40
	g.run.Stats.Crit = 1
	m := g.horde.Spawn(dummy(1000), geom.Vec2{Z: 1})

	g.resolver().attack()
	want := 1000 - 10*1.3*1.5
	if !near(m.HP, want) {
		t.Fatalf("hp = %v, want %v", m.HP, want)
	}
}

func TestLifestealHealsFromDamage(t *testing.T) {
	g := startedGame(t)
	g.run.Stats.Crit = 0
	g.run.Stats.HP = 50
	g.run.Passives[catalog.PassiveLifesteal] = true
	g.horde.Spawn(dummy(1000), geom.Vec2{Z: 1})

	g.resolver().attack()
	if !near(g.run.Stats.HP, 50.5) {
		t.Fatalf("hp = %v, want 50.5", g.run.Stats.HP)
	}
}

func TestKillGrantsRewardsOnce(t *testing.T) {
	g := startedGame(t)
	m := g.horde.Spawn(dummy(5), geom.Vec2{Z: 1})
	r := g.resolver()

	if !r.hitMonster(m, 10, "") {
		t.Fatalf("lethal hit did not kill")
	}
	if r.hitMonster(m, 10, "") {
		t.Fatalf("dead monster died twice")
	}
	if g.run.Kills != 1 || g.run.Exp != 10 || g.run.Coins != 5 {
		t.Fatalf("got kills %d exp %d coins %d", g.run.Kills, g.run.Exp, g.run.Coins)
	}
	if m.State != MonsterDying {
		t.Fatalf("state = %s, want dying", m.State)
	}
}

func TestContactDamageKnockbackAndInvincibility(t *testing.T) {
	g := startedGame(t)
	g.run.Stats.Defense = 3
	monster := dummy(1000)
	monster.Attack = 5
	g.horde.Spawn(monster, geom.Vec2{X: 1})
	r := g.resolver()

	r.contact()
	if g.run.Stats.HP != 98 {
		t.Fatalf("hp = %v, want 98", g.run.Stats.HP)
	}
	if !g.player.Invincible() {
		t.Fatalf("hit did not grant invincibility")
	}
	r.contact()
	if g.run.Stats.HP != 98 {
		t.Fatalf("invincible player took damage")
	}

	b := g.bounds()
	for i := 0; i < 5; i++ {
		g.player.tick(0.05, b)
	}
	if g.player.Pos.X >= 0 {
		t.Fatalf("knockback moved player to %+v, want negative x", g.player.Pos)
	}
	if g.player.Pos.X < -1 {
		t.Fatalf("knockback overshot: %+v", g.player.Pos)
	}
	if s := g.Snapshot(); s.Player.Y != 0 {
		t.Fatalf("player left the ground: y=%v", s.Player.Y)
	}
}

func TestThornsReflectsRealizedDamage(t *testing.T) {
	g := startedGame(t)
	g.run.Passives[catalog.PassiveThorns] = true
	monster := dummy(1000)
	monster.Attack = 20
	m := g.horde.Spawn(monster, geom.Vec2{X: 1})

	g.resolver().contact()
	if !near(m.HP, 996) {
		t.Fatalf("monster hp = %v, want 996", m.HP)
	}
}

func TestDashIsInvincibleAndStopsAtObstacle(t *testing.T) {
	terrain := wall{{Center: geom.Vec2{Z: 3}, Radius: 0.5}}
	g := newTestGame(t, bareConfig(), Options{Terrain: terrain})
	g.StartRun(context.Background())
	r := g.resolver()
	b := g.bounds()

	if !r.useSkill(catalog.SkillDash, b) {
		t.Fatalf("dash refused")
	}
	if !g.player.Invincible() {
		t.Fatalf("dash not invincible")
	}
	if r.useSkill(catalog.SkillDash, b) {
		t.Fatalf("dash ignored its cooldown")
	}
	g.player.tick(0.1, b)
	g.player.tick(0.1, b)
	g.player.tick(0.01, b)
	if g.player.Dashing() {
		t.Fatalf("dash did not finish")
	}
	if !near(g.player.Pos.Z, 2) || !near(g.player.Pos.X, 0) {
		t.Fatalf("dash ended at %+v, want (0, 2)", g.player.Pos)
	}
}

func TestSpinAttackHitsAllAround(t *testing.T) {
	g := startedGame(t)
	a := g.horde.Spawn(dummy(1000), geom.Vec2{X: 2})
	b := g.horde.Spawn(dummy(1000), geom.Vec2{X: -2})
	c := g.horde.Spawn(dummy(1000), geom.Vec2{X: 5})

	g.resolver().useSkill(catalog.SkillSpin, g.bounds())
	if a.HP != 985 || b.HP != 985 {
		t.Fatalf("spin hp = %v/%v, want 985", a.HP, b.HP)
	}
	if c.HP != 1000 {
		t.Fatalf("spin hit outside its radius")
	}
}

func TestMoveClampsAndAvoidsTerrain(t *testing.T) {
	g := newTestGame(t, bareConfig(), Options{Terrain: wall{{Center: geom.Vec2{X: 3}, Radius: 1}}})
	g.StartRun(context.Background())
	b := g.bounds()

	g.player.Move(geom.Vec2{X: 1}, 8, 0.375, b)
	if d := g.player.Pos.Dist(geom.Vec2{X: 3}); d < 1.5-1e-9 {
		t.Fatalf("player inside obstacle at %+v (d=%v)", g.player.Pos, d)
	}

	g.player.Pos = geom.Vec2{}
	g.player.Move(geom.Vec2{Z: -1}, 8, 100, b)
	if g.player.Pos.Z != -g.cfg.Map.HalfExtent() {
		t.Fatalf("player escaped map: %+v", g.player.Pos)
	}
	if g.player.Facing != (geom.Vec2{Z: -1}) {
		t.Fatalf("facing = %+v", g.player.Facing)
	}
}

func TestHealSkill(t *testing.T) {
	g := startedGame(t)
	g.run.Stats.HP = 10
	if _, ok := g.StartRun(context.Background()); ok {
		t.Fatalf("start accepted mid-run")
	}
	g.Tick(context.Background(), 0.01, Input{Skills: []catalog.SkillID{catalog.SkillHeal}})
	if !near(g.run.Stats.HP, 40) {
		t.Fatalf("hp = %v, want 40", g.run.Stats.HP)
	}
	if g.run.Cooldowns[catalog.SkillHeal] <= 0 {
		t.Fatalf("heal cooldown not set")
	}
}
