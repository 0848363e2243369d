package survivor

import (
	"context"
	"math/rand"
	"testing"

	"voxelsurvivor/internal/catalog"
)

func TestRollChoicesDistinct(t *testing.T) {
	g := startedGame(t)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		choices := rollChoices(g.run, 3, rng)
		if len(choices) != 3 {
			t.Fatalf("got %d choices, want 3", len(choices))
		}
		seen := map[string]bool{}
		for _, c := range choices {
			if seen[c.ID] {
				t.Fatalf("duplicate choice %s", c.ID)
			}
			seen[c.ID] = true
		}
	}
}

func TestRollChoicesExcludesOwned(t *testing.T) {
	g := startedGame(t)
	for _, id := range catalog.AutoSkillOrder {
		g.run.AutoSkills[id] = true
	}
	for _, id := range catalog.PassiveOrder {
		g.run.Passives[id] = true
	}
	for _, id := range catalog.SkillUpgradeOrder {
		g.run.SkillUpgrades[id] = true
	}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		for _, c := range rollChoices(g.run, 3, rng) {
			if c.Kind != ChoiceItem && c.Kind != ChoiceStat {
				t.Fatalf("owned grant offered: %s", c.ID)
			}
		}
	}
}

func TestRollChoicesBackfillsShortPool(t *testing.T) {
	g := startedGame(t)
	choices := rollChoices(g.run, 30, rand.New(rand.NewSource(1)))
	if len(choices) != len(choicePool(g.run)) {
		t.Fatalf("got %d, want the whole pool of %d", len(choices), len(choicePool(g.run)))
	}
}

func TestApplyChoiceRejectsDuplicates(t *testing.T) {
	g := startedGame(t)
	luck := Choice{ID: "passive:luck", Kind: ChoicePassive, Effect: PassiveGrant{ID: catalog.PassiveLuck}}
	crit := g.run.Stats.Crit

	if !applyChoice(g.run, g.skills, luck) {
		t.Fatalf("luck refused")
	}
	if applyChoice(g.run, g.skills, luck) {
		t.Fatalf("luck granted twice")
	}
	if !near(g.run.Stats.Crit, crit+0.1) {
		t.Fatalf("crit = %v, want %v", g.run.Stats.Crit, crit+0.1)
	}

	orb := Choice{ID: "auto:orbital", Kind: ChoiceAutoSkill, Effect: AutoSkillGrant{ID: catalog.AutoOrbital}}
	if !applyChoice(g.run, g.skills, orb) || applyChoice(g.run, g.skills, orb) {
		t.Fatalf("auto-skill grant not applied exactly once")
	}
	if applyChoice(g.run, g.skills, Choice{ID: "broken"}) {
		t.Fatalf("choice without effect applied")
	}
}

func TestLevelUpPromptFlow(t *testing.T) {
	g := startedGame(t)
	ctx := context.Background()
	g.run.GainExp(250)

	s := g.Tick(ctx, 0.01, Input{})
	if s.Phase != PhaseLevelUp {
		t.Fatalf("phase = %s, want levelup", s.Phase)
	}
	if len(s.Choices) != 3 {
		t.Fatalf("offered %d choices, want 3", len(s.Choices))
	}
	timer := s.Timer
	if s = g.Tick(ctx, 0.1, Input{}); s.Timer != timer {
		t.Fatalf("clock ran during level-up")
	}

	if _, ok := g.SelectChoice(ctx, "bogus"); ok {
		t.Fatalf("unknown choice accepted")
	}
	s, ok := g.SelectChoice(ctx, s.Choices[0].ID)
	if !ok || s.Phase != PhasePlaying {
		t.Fatalf("select: ok=%v phase=%s", ok, s.Phase)
	}
	if g.run.levelUpPending {
		t.Fatalf("prompt still pending")
	}
	if s = g.Tick(ctx, 0.01, Input{}); s.Phase != PhasePlaying {
		t.Fatalf("two level-ups from one gain raised a second prompt")
	}
	if _, ok := g.SelectChoice(ctx, "stat:atk"); ok {
		t.Fatalf("choice accepted outside level-up")
	}
}
