package termui

import (
	"time"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/survivor"

	"github.com/gdamore/tcell/v2"
)

// CommandKind is a discrete request decoded from a key press.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdExit
	CmdStart
	CmdPause
	CmdResume
	CmdQuit
	CmdLobby
	CmdChoose
	CmdBuy
)

type Command struct {
	Kind    CommandKind
	Choice  int // index into the offered choices
	Upgrade catalog.UpgradeID
}

// DefaultHold is how long a movement key counts as held after its last
// press. Terminals report presses and auto-repeats but never releases.
const DefaultHold = 150 * time.Millisecond

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

var skillKeys = map[rune]catalog.SkillID{
	'1': catalog.SkillSpin,
	'2': catalog.SkillDash,
	'3': catalog.SkillHeal,
}

// Controls turns terminal key events into simulation input.
type Controls struct {
	hold    time.Duration
	pressed map[direction]time.Time
	swing   bool
	skills  []catalog.SkillID

	// ShopCursor selects an upgrade in catalog.UpgradeOrder on the lobby
	// and game-over screens.
	ShopCursor int
}

func NewControls(hold time.Duration) *Controls {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Controls{hold: hold, pressed: make(map[direction]time.Time)}
}

func movement(ev *tcell.EventKey) (direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return dirUp, true
	case tcell.KeyDown:
		return dirDown, true
	case tcell.KeyLeft:
		return dirLeft, true
	case tcell.KeyRight:
		return dirRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return dirUp, true
		case 's', 'S':
			return dirDown, true
		case 'a', 'A':
			return dirLeft, true
		case 'd', 'D':
			return dirRight, true
		}
	}
	return 0, false
}

// HandleKey records held movement and one-shot actions, and returns the
// command the key stands for in the given phase.
func (c *Controls) HandleKey(phase survivor.Phase, ev *tcell.EventKey, now time.Time) Command {
	if ev.Key() == tcell.KeyCtrlC {
		return Command{Kind: CmdExit}
	}
	switch phase {
	case survivor.PhasePlaying:
		return c.playingKey(ev, now)
	case survivor.PhasePaused:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P'):
			return Command{Kind: CmdResume}
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return Command{Kind: CmdQuit}
		}
	case survivor.PhaseLevelUp:
		if ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9' {
			return Command{Kind: CmdChoose, Choice: int(ev.Rune() - '1')}
		}
	case survivor.PhaseLobby, survivor.PhaseGameOver:
		return c.shopKey(phase, ev)
	}
	return Command{}
}

func (c *Controls) playingKey(ev *tcell.EventKey, now time.Time) Command {
	if d, ok := movement(ev); ok {
		c.pressed[d] = now
		return Command{}
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return Command{Kind: CmdPause}
	case tcell.KeyRune:
		r := ev.Rune()
		if id, ok := skillKeys[r]; ok {
			c.skills = append(c.skills, id)
			return Command{}
		}
		switch r {
		case ' ', 'j', 'J':
			c.swing = true
		case 'p', 'P':
			return Command{Kind: CmdPause}
		}
	}
	return Command{}
}

func (c *Controls) shopKey(phase survivor.Phase, ev *tcell.EventKey) Command {
	n := len(catalog.UpgradeOrder)
	switch ev.Key() {
	case tcell.KeyEnter:
		if phase == survivor.PhaseGameOver {
			return Command{Kind: CmdLobby}
		}
		return Command{Kind: CmdStart}
	case tcell.KeyEscape:
		return Command{Kind: CmdExit}
	case tcell.KeyUp:
		c.ShopCursor = (c.ShopCursor + n - 1) % n
	case tcell.KeyDown:
		c.ShopCursor = (c.ShopCursor + 1) % n
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W', 'k':
			c.ShopCursor = (c.ShopCursor + n - 1) % n
		case 's', 'S', 'j':
			c.ShopCursor = (c.ShopCursor + 1) % n
		case 'b', 'B':
			return Command{Kind: CmdBuy, Upgrade: catalog.UpgradeOrder[c.ShopCursor]}
		case 'q', 'Q':
			return Command{Kind: CmdExit}
		}
	}
	return Command{}
}

// Input is the simulation input for a tick at now. Held directions decay
// after the hold window; swings and skills are consumed.
func (c *Controls) Input(now time.Time) survivor.Input {
	held := func(d direction) float64 {
		if t, ok := c.pressed[d]; ok && now.Sub(t) <= c.hold {
			return 1
		}
		return 0
	}
	in := survivor.Input{
		MoveX:  held(dirRight) - held(dirLeft),
		MoveZ:  held(dirDown) - held(dirUp),
		Attack: c.swing,
		Skills: c.skills,
	}
	c.swing = false
	c.skills = nil
	return in
}

// Release forgets every held key, e.g. when the run pauses.
func (c *Controls) Release() {
	for d := range c.pressed {
		delete(c.pressed, d)
	}
	c.swing = false
	c.skills = nil
}
