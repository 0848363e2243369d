package termui

import (
	"testing"
	"time"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/survivor"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func char(r rune) *tcell.EventKey     { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestMovementHoldsThenDecays(t *testing.T) {
	c := NewControls(DefaultHold)
	t0 := time.Now()
	c.HandleKey(survivor.PhasePlaying, key(tcell.KeyRight), t0)

	if in := c.Input(t0.Add(50 * time.Millisecond)); in.MoveX != 1 || in.MoveZ != 0 {
		t.Fatalf("held right = %+v", in)
	}
	if in := c.Input(t0.Add(DefaultHold + time.Millisecond)); in.MoveX != 0 {
		t.Fatalf("right still held after the hold window: %+v", in)
	}
}

func TestMovementCombines(t *testing.T) {
	c := NewControls(time.Second)
	now := time.Now()
	c.HandleKey(survivor.PhasePlaying, char('w'), now)
	c.HandleKey(survivor.PhasePlaying, char('d'), now)
	if in := c.Input(now); in.MoveX != 1 || in.MoveZ != -1 {
		t.Fatalf("w+d = (%v, %v), want (1, -1)", in.MoveX, in.MoveZ)
	}

	c.HandleKey(survivor.PhasePlaying, key(tcell.KeyLeft), now)
	if in := c.Input(now); in.MoveX != 0 {
		t.Fatalf("left+right = %v, want 0", in.MoveX)
	}

	c.Release()
	if in := c.Input(now); in.MoveX != 0 || in.MoveZ != 0 {
		t.Fatalf("released input = %+v", in)
	}
}

func TestOneShotsAreConsumed(t *testing.T) {
	c := NewControls(DefaultHold)
	now := time.Now()
	c.HandleKey(survivor.PhasePlaying, char(' '), now)
	c.HandleKey(survivor.PhasePlaying, char('2'), now)
	c.HandleKey(survivor.PhasePlaying, char('3'), now)

	in := c.Input(now)
	if !in.Attack || len(in.Skills) != 2 || in.Skills[0] != catalog.SkillDash || in.Skills[1] != catalog.SkillHeal {
		t.Fatalf("first input = %+v", in)
	}
	if in := c.Input(now); in.Attack || len(in.Skills) != 0 {
		t.Fatalf("one-shots repeated: %+v", in)
	}
}

func TestHandleKeyPerPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase survivor.Phase
		ev    *tcell.EventKey
		want  CommandKind
	}{
		{"ctrl-c anywhere", survivor.PhasePlaying, key(tcell.KeyCtrlC), CmdExit},
		{"esc pauses", survivor.PhasePlaying, key(tcell.KeyEscape), CmdPause},
		{"p pauses", survivor.PhasePlaying, char('p'), CmdPause},
		{"q ignored while playing", survivor.PhasePlaying, char('q'), CmdNone},
		{"esc resumes", survivor.PhasePaused, key(tcell.KeyEscape), CmdResume},
		{"q quits paused run", survivor.PhasePaused, char('q'), CmdQuit},
		{"enter starts", survivor.PhaseLobby, key(tcell.KeyEnter), CmdStart},
		{"q exits lobby", survivor.PhaseLobby, char('q'), CmdExit},
		{"enter leaves game over", survivor.PhaseGameOver, key(tcell.KeyEnter), CmdLobby},
		{"letters ignored on level up", survivor.PhaseLevelUp, char('x'), CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControls(DefaultHold)
			if got := c.HandleKey(tt.phase, tt.ev, time.Now()); got.Kind != tt.want {
				t.Fatalf("got %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestLevelUpDigitsPickChoices(t *testing.T) {
	c := NewControls(DefaultHold)
	got := c.HandleKey(survivor.PhaseLevelUp, char('2'), time.Now())
	if got.Kind != CmdChoose || got.Choice != 1 {
		t.Fatalf("got %+v, want choice index 1", got)
	}
}

func TestShopCursorWraps(t *testing.T) {
	c := NewControls(DefaultHold)
	last := len(catalog.UpgradeOrder) - 1

	c.HandleKey(survivor.PhaseLobby, key(tcell.KeyUp), time.Now())
	if c.ShopCursor != last {
		t.Fatalf("cursor = %d, want %d", c.ShopCursor, last)
	}
	got := c.HandleKey(survivor.PhaseLobby, char('b'), time.Now())
	if got.Kind != CmdBuy || got.Upgrade != catalog.UpgradeOrder[last] {
		t.Fatalf("buy = %+v", got)
	}
	c.HandleKey(survivor.PhaseGameOver, char('s'), time.Now())
	if c.ShopCursor != 0 {
		t.Fatalf("cursor = %d after wrapping down, want 0", c.ShopCursor)
	}
}
