package survivor

import (
	"context"
	"testing"

	"voxelsurvivor/internal/catalog"
)

func TestPhaseTransitions(t *testing.T) {
	p := newPhaseMachine(nil)
	ctx := context.Background()
	steps := []struct {
		event string
		ok    bool
		want  Phase
	}{
		{evPause, false, PhaseLobby},
		{evStart, true, PhasePlaying},
		{evStart, false, PhasePlaying},
		{evLevelUp, true, PhaseLevelUp},
		{evPause, false, PhaseLevelUp},
		{evChoose, true, PhasePlaying},
		{evPause, true, PhasePaused},
		{evLevelUp, false, PhasePaused},
		{evDie, false, PhasePaused},
		{evResume, true, PhasePlaying},
		{evDie, true, PhaseGameOver},
		{evQuit, false, PhaseGameOver},
		{evLobby, true, PhaseLobby},
	}
	for i, s := range steps {
		if got := p.fire(ctx, s.event); got != s.ok {
			t.Fatalf("step %d %s: got %v, want %v", i, s.event, got, s.ok)
		}
		if p.Current() != s.want {
			t.Fatalf("step %d %s: phase %s, want %s", i, s.event, p.Current(), s.want)
		}
	}
}

func TestPausedRunRejectsEverythingButResumeAndQuit(t *testing.T) {
	g := startedGame(t)
	ctx := context.Background()

	if _, ok := g.Pause(); !ok {
		t.Fatalf("pause failed")
	}
	before := g.Snapshot()
	after := g.Tick(ctx, 0.1, Input{MoveX: 1, Attack: true, Skills: []catalog.SkillID{catalog.SkillHeal}})
	if after.Timer != before.Timer || after.Player.Pos != before.Player.Pos {
		t.Fatalf("paused tick advanced the run")
	}
	if after.Cooldowns[catalog.SkillHeal] != 0 {
		t.Fatalf("skill used while paused")
	}
	if _, ok := g.StartRun(ctx); ok {
		t.Fatalf("start accepted while paused")
	}
	if _, ok := g.SelectChoice(ctx, "stat:atk"); ok {
		t.Fatalf("choice accepted while paused")
	}
	g.account.Coins = 1000
	if _, ok := g.PurchaseUpgrade(ctx, catalog.UpgradeHP); ok {
		t.Fatalf("purchase accepted while paused")
	}
	if _, ok := g.Resume(); !ok {
		t.Fatalf("resume failed")
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, want playing", g.Phase())
	}
}

func TestQuitSettlesOnceAndReturnsToLobby(t *testing.T) {
	g := startedGame(t)
	ctx := context.Background()
	g.run.AddCoins(40)

	if _, ok := g.Quit(ctx); ok {
		t.Fatalf("quit accepted while playing")
	}
	g.Pause()
	s, ok := g.Quit(ctx)
	if !ok || s.Phase != PhaseLobby {
		t.Fatalf("quit: ok=%v phase=%s", ok, s.Phase)
	}
	if s.Account.Coins != 40 {
		t.Fatalf("coins = %d, want 40", s.Account.Coins)
	}
	if len(s.Monsters) != 0 || s.RunID != "" {
		t.Fatalf("run state survived quit: %+v", s)
	}
}
