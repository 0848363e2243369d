package termui

import (
	"fmt"
	"math"
	"strings"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
	"voxelsurvivor/internal/survivor"
	"voxelsurvivor/internal/terrain"

	"github.com/gdamore/tcell/v2"
)

// A world unit is two columns wide and one row tall, which keeps circles
// roughly round in a terminal font.
const colsPerUnit = 2

var (
	styleDefault = tcell.StyleDefault
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleOutside = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleInvuln  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	styleTree    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleRock    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMonster = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSlowed  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDying   = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleOrb     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleShot    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var monsterGlyph = map[catalog.MonsterType]rune{
	catalog.MonsterSlime:    's',
	catalog.MonsterGoblin:   'g',
	catalog.MonsterWolf:     'w',
	catalog.MonsterSkeleton: 'k',
	catalog.MonsterOrc:      'O',
	catalog.MonsterMage:     'M',
}

var artifactGlyph = map[catalog.ArtifactKind]struct {
	r     rune
	style tcell.Style
}{
	catalog.ArtifactCrystal:  {'◆', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	catalog.ArtifactChest:    {'$', tcell.StyleDefault.Foreground(tcell.ColorGold)},
	catalog.ArtifactFountain: {'~', tcell.StyleDefault.Foreground(tcell.ColorBlue)},
	catalog.ArtifactAltar:    {'Ω', tcell.StyleDefault.Foreground(tcell.ColorPurple)},
	catalog.ArtifactGrass:    {'"', tcell.StyleDefault.Foreground(tcell.ColorLime)},
}

var effectGlyph = map[string]struct {
	r     rune
	style tcell.Style
}{
	"slash":     {'/', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	"spin":      {'@', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	"crit":      {'!', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"explosion": {'*', tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)},
	"lightning": {'+', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"frost":     {'*', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	"poison":    {'%', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	"heal":      {'+', tcell.StyleDefault.Foreground(tcell.ColorLime)},
	"pickup":    {'^', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	"levelup":   {'^', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"death":     {'x', tcell.StyleDefault.Foreground(tcell.ColorMaroon)},
}

// Renderer draws snapshots top-down with the camera on the player.
type Renderer struct {
	screen    tcell.Screen
	obstacles []terrain.Obstacle
	half      float64
}

func NewRenderer(screen tcell.Screen, obstacles []terrain.Obstacle, mapSize float64) *Renderer {
	return &Renderer{screen: screen, obstacles: obstacles, half: mapSize / 2}
}

// view maps world positions onto the field rows between the HUD and the
// cooldown bar.
type view struct {
	cam       geom.Vec2
	w, top, h int
}

func (v view) cell(p geom.Vec2) (int, int, bool) {
	x := v.w/2 + int(math.Round((p.X-v.cam.X)*colsPerUnit))
	y := v.top + v.h/2 + int(math.Round(p.Z-v.cam.Z))
	return x, y, x >= 0 && x < v.w && y >= v.top && y < v.top+v.h
}

func (v view) world(x, y int) geom.Vec2 {
	return geom.Vec2{
		X: v.cam.X + float64(x-v.w/2)/colsPerUnit,
		Z: v.cam.Z + float64(y-v.top-v.h/2),
	}
}

func (r *Renderer) puts(x, y int, style tcell.Style, text string) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func (r *Renderer) center(y int, style tcell.Style, text string) {
	w, _ := r.screen.Size()
	r.puts((w-len([]rune(text)))/2, y, style, text)
}

func (r *Renderer) Draw(s survivor.Snapshot, shopCursor int) {
	r.screen.Clear()
	switch s.Phase {
	case survivor.PhaseLobby:
		r.drawLobby(s, shopCursor)
	case survivor.PhaseGameOver:
		r.drawGameOver(s, shopCursor)
	default:
		r.drawField(s)
		switch s.Phase {
		case survivor.PhasePaused:
			r.drawBox([]string{"PAUSED", "", "Esc / p  resume", "q        quit to lobby"})
		case survivor.PhaseLevelUp:
			r.drawChoices(s)
		}
	}
	r.screen.Show()
}

func (r *Renderer) drawField(s survivor.Snapshot) {
	w, h := r.screen.Size()
	if h < 3 {
		return
	}
	v := view{cam: s.Player.Pos, w: w, top: 1, h: h - 2}

	for y := v.top; y < v.top+v.h; y++ {
		for x := 0; x < w; x++ {
			p := v.world(x, y)
			if math.Abs(p.X) > r.half || math.Abs(p.Z) > r.half {
				r.screen.SetContent(x, y, '░', nil, styleOutside)
			}
		}
	}
	for _, o := range r.obstacles {
		ch, style := '♣', styleTree
		if o.Kind == terrain.Rock {
			ch, style = '●', styleRock
		}
		if x, y, ok := v.cell(o.Circle.Center); ok {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
	for _, a := range s.Artifacts {
		g, known := artifactGlyph[a.Kind]
		if !known {
			continue
		}
		if x, y, ok := v.cell(a.Pos); ok {
			r.screen.SetContent(x, y, g.r, nil, g.style)
		}
	}
	for _, fx := range s.Effects {
		g, known := effectGlyph[fx.Kind]
		if !known {
			continue
		}
		if x, y, ok := v.cell(fx.Pos); ok {
			r.screen.SetContent(x, y, g.r, nil, g.style)
		}
		if fx.Kind == "lightning" && !fx.To.IsZero() {
			if x, y, ok := v.cell(fx.To); ok {
				r.screen.SetContent(x, y, g.r, nil, g.style)
			}
		}
	}
	for _, m := range s.Monsters {
		x, y, ok := v.cell(m.Pos)
		if !ok {
			continue
		}
		ch, style := monsterGlyph[m.Type], styleMonster
		if ch == 0 {
			ch = '?'
		}
		switch {
		case m.Dying:
			style = styleDying
		case m.Slowed:
			style = styleSlowed
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
	for _, o := range s.Orbs {
		if x, y, ok := v.cell(o.Pos); ok {
			r.screen.SetContent(x, y, 'o', nil, styleOrb)
		}
	}
	for _, p := range s.Projectiles {
		if x, y, ok := v.cell(p.Pos); ok {
			r.screen.SetContent(x, y, '•', nil, styleShot)
		}
	}
	style := stylePlayer
	if s.Player.Invincible {
		style = styleInvuln
	}
	if x, y, ok := v.cell(s.Player.Pos); ok {
		r.screen.SetContent(x, y, '@', nil, style)
	}

	r.drawHUD(s, w)
	r.drawCooldowns(s, w, h-1)
}

func bar(frac float64, width int) string {
	frac = math.Max(0, math.Min(1, frac))
	full := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}

func (r *Renderer) drawHUD(s survivor.Snapshot, w int) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, styleHUD)
	}
	hp := 0.0
	if s.Stats.MaxHP > 0 {
		hp = s.Stats.HP / s.Stats.MaxHP
	}
	xp := 0.0
	if s.ExpToNext > 0 {
		xp = float64(s.Exp) / float64(s.ExpToNext)
	}
	line := fmt.Sprintf(" Day %d %4.0fs  HP %s %3.0f/%-3.0f  Lv %d %s  Kills %d  Coins %d",
		s.Day, math.Max(0, s.Timer), bar(hp, 10), s.Stats.HP, s.Stats.MaxHP, s.Level, bar(xp, 8), s.Kills, s.Coins)
	r.puts(0, 0, styleHUD, line)
}

func (r *Renderer) drawCooldowns(s survivor.Snapshot, w, y int) {
	parts := make([]string, 0, 3+len(s.AutoSkills))
	for i, id := range []catalog.SkillID{catalog.SkillSpin, catalog.SkillDash, catalog.SkillHeal} {
		name := catalog.Skills[id].Name
		if cd := s.Cooldowns[id]; cd > 0 {
			parts = append(parts, fmt.Sprintf("[%d] %s %.1fs", i+1, name, cd))
		} else {
			parts = append(parts, fmt.Sprintf("[%d] %s", i+1, name))
		}
	}
	for _, id := range s.AutoSkills {
		parts = append(parts, catalog.AutoSkills[id].Name)
	}
	r.puts(0, y, styleDim, " "+strings.Join(parts, "  "))
}

func (r *Renderer) drawBox(lines []string) {
	w, h := r.screen.Size()
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	top := (h - len(lines)) / 2
	left := (w - width) / 2
	for y := top - 1; y <= top+len(lines); y++ {
		for x := left; x < left+width; x++ {
			r.screen.SetContent(x, y, ' ', nil, styleCursor)
		}
	}
	for i, l := range lines {
		r.puts(left+2, top+i, styleCursor, l)
	}
}

func (r *Renderer) drawChoices(s survivor.Snapshot) {
	lines := []string{fmt.Sprintf("LEVEL UP! (level %d)", s.Level), ""}
	for i, c := range s.Choices {
		lines = append(lines, fmt.Sprintf("%d. %s  %s", i+1, c.Name, c.Desc))
	}
	r.drawBox(lines)
}

func (r *Renderer) drawShop(s survivor.Snapshot, top, cursor int) {
	if s.Account == nil {
		return
	}
	a := s.Account
	r.puts(2, top, styleTitle, fmt.Sprintf("UPGRADES  (coins: %d)   up/down select, b buy", a.Coins))
	for i, id := range catalog.UpgradeOrder {
		u := catalog.Upgrades[id]
		lvl := a.Upgrades[id]
		price := "MAX"
		if lvl < u.MaxLevel {
			price = fmt.Sprintf("%d", u.Cost(lvl))
		}
		style := styleDefault
		if i == cursor {
			style = styleCursor
		}
		r.puts(2, top+1+i, style, fmt.Sprintf("%-18s %2d/%-2d %6s  %s", u.Name, lvl, u.MaxLevel, price, u.Description))
	}
}

func (r *Renderer) drawLobby(s survivor.Snapshot, cursor int) {
	r.center(1, styleTitle, "V O X E L   S U R V I V O R")
	if a := s.Account; a != nil {
		r.center(3, styleDefault, fmt.Sprintf("Level %d  (%d/%d exp)   Coins %d   Best day %d   Runs %d   Kills %d",
			a.Level, a.Exp, a.Level*100, a.Coins, a.HighestDay, a.TotalRuns, a.TotalKills))
	}
	r.center(5, styleDim, "Enter start   WASD/arrows move   space attack   1 spin  2 dash  3 heal   Esc pause")
	r.drawShop(s, 7, cursor)
}

func (r *Renderer) drawGameOver(s survivor.Snapshot, cursor int) {
	r.center(1, styleTitle, "G A M E   O V E R")
	r.center(3, styleDefault, fmt.Sprintf("Survived to day %d at level %d", s.Day, s.Level))
	r.center(4, styleDefault, fmt.Sprintf("%d kills, %d coins earned", s.Kills, s.Coins))
	r.center(5, styleDim, "Enter  back to lobby")
	r.drawShop(s, 7, cursor)
}
