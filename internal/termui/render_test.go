package termui

import (
	"strings"
	"testing"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
	"voxelsurvivor/internal/progression"
	"voxelsurvivor/internal/survivor"
	"voxelsurvivor/internal/terrain"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func rows(screen tcell.Screen) []string {
	w, h := screen.Size()
	out := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		out[y] = b.String()
	}
	return out
}

func cell(screen tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(x, y)
	return r, style
}

func contains(lines []string, text string) bool {
	for _, l := range lines {
		if strings.Contains(l, text) {
			return true
		}
	}
	return false
}

func TestRenderLobbyShop(t *testing.T) {
	screen := newScreen(t)
	acc := progression.NewAccount()
	acc.Coins = 75
	NewRenderer(screen, nil, 100).Draw(survivor.Snapshot{Phase: survivor.PhaseLobby, Account: acc}, 1)

	lines := rows(screen)
	if !contains(lines, "UPGRADES  (coins: 75)") {
		t.Fatalf("shop header missing:\n%s", strings.Join(lines, "\n"))
	}
	selected := catalog.Upgrades[catalog.UpgradeOrder[1]]
	if !strings.Contains(lines[9], selected.Name) {
		t.Fatalf("row 9 = %q, want %s", lines[9], selected.Name)
	}
	_, style := cell(screen, 2, 9)
	if _, _, attr := style.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Fatalf("selected row not highlighted")
	}
	_, style = cell(screen, 2, 8)
	if _, _, attr := style.Decompose(); attr&tcell.AttrReverse != 0 {
		t.Fatalf("unselected row highlighted")
	}
}

func TestRenderFieldAroundPlayer(t *testing.T) {
	screen := newScreen(t)
	obstacles := []terrain.Obstacle{{Kind: terrain.Rock, Circle: geom.Circle{Center: geom.Vec2{X: 3, Z: 2}, Radius: 1}}}
	snap := survivor.Snapshot{
		Phase:     survivor.PhasePlaying,
		Day:       2,
		Timer:     41,
		Level:     3,
		Exp:       10,
		ExpToNext: 40,
		Stats:     catalog.Stats{HP: 50, MaxHP: 100},
		Player:    survivor.PlayerView{Pos: geom.Vec2{X: 3, Z: 4}},
		Monsters: []survivor.MonsterView{
			{ID: 1, Type: catalog.MonsterGoblin, Pos: geom.Vec2{X: 5, Z: 4}},
			{ID: 2, Type: catalog.MonsterSlime, Pos: geom.Vec2{X: 3, Z: 7}, Dying: true},
		},
		Cooldowns: map[catalog.SkillID]float64{catalog.SkillDash: 2.5},
	}
	NewRenderer(screen, obstacles, 100).Draw(snap, 0)

	// 80x24: field rows 1..22, centre at column 40 row 12.
	checks := []struct {
		name string
		x, y int
		want rune
	}{
		{"player", 40, 12, '@'},
		{"goblin two units right", 44, 12, 'g'},
		{"slime three units down", 40, 15, 's'},
		{"rock two units up", 40, 10, '●'},
	}
	for _, c := range checks {
		if got, _ := cell(screen, c.x, c.y); got != c.want {
			t.Fatalf("%s: cell (%d,%d) = %q, want %q", c.name, c.x, c.y, got, c.want)
		}
	}
	if _, style := cell(screen, 40, 15); style != styleDying {
		t.Fatalf("dying monster not dimmed")
	}

	lines := rows(screen)
	if !strings.Contains(lines[0], "Day 2") || !strings.Contains(lines[0], "Lv 3") {
		t.Fatalf("hud = %q", lines[0])
	}
	if !strings.Contains(lines[23], "[2] Dash 2.5s") || !strings.Contains(lines[23], "[1] Spin Attack") {
		t.Fatalf("cooldown bar = %q", lines[23])
	}
}

func TestRenderShadesOutsideMap(t *testing.T) {
	screen := newScreen(t)
	snap := survivor.Snapshot{Phase: survivor.PhasePlaying, Player: survivor.PlayerView{Pos: geom.Vec2{X: 4}}}
	NewRenderer(screen, nil, 10).Draw(snap, 0)

	if got, _ := cell(screen, 79, 12); got != '░' {
		t.Fatalf("far right cell = %q, want shading", got)
	}
	if got, _ := cell(screen, 38, 12); got == '░' {
		t.Fatalf("cell inside the map shaded")
	}
}

func TestRenderOverlays(t *testing.T) {
	screen := newScreen(t)
	r := NewRenderer(screen, nil, 100)

	r.Draw(survivor.Snapshot{Phase: survivor.PhasePaused}, 0)
	if !contains(rows(screen), "PAUSED") {
		t.Fatalf("pause overlay missing")
	}

	r.Draw(survivor.Snapshot{
		Phase: survivor.PhaseLevelUp,
		Level: 4,
		Choices: []survivor.Choice{
			{ID: "a", Name: "Might", Desc: "+5 attack"},
			{ID: "b", Name: "Fireball", Desc: "new auto skill"},
		},
	}, 0)
	lines := rows(screen)
	if !contains(lines, "LEVEL UP! (level 4)") || !contains(lines, "2. Fireball  new auto skill") {
		t.Fatalf("choices overlay:\n%s", strings.Join(lines, "\n"))
	}

	r.Draw(survivor.Snapshot{Phase: survivor.PhaseGameOver, Day: 6, Level: 9, Kills: 120, Coins: 33, Account: progression.NewAccount()}, 0)
	lines = rows(screen)
	if !contains(lines, "G A M E   O V E R") || !contains(lines, "120 kills, 33 coins earned") {
		t.Fatalf("game over overlay:\n%s", strings.Join(lines, "\n"))
	}
}
