// Package termui is a terminal front end for a local survival run: tcell
// draws the field top-down and keyboard input drives the same Game the
// websocket arena serves.
package termui

import (
	"context"
	"log"
	"time"

	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/survivor"
	"voxelsurvivor/internal/terrain"

	"github.com/gdamore/tcell/v2"
)

type App struct {
	screen   tcell.Screen
	game     *survivor.Game
	controls *Controls
	renderer *Renderer
	tick     time.Duration
	log      *log.Logger
}

func NewApp(screen tcell.Screen, game *survivor.Game, field *terrain.Field, cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	var obstacles []terrain.Obstacle
	if field != nil {
		obstacles = field.Obstacles()
	}
	return &App{
		screen:   screen,
		game:     game,
		controls: NewControls(DefaultHold),
		renderer: NewRenderer(screen, obstacles, cfg.Map.Size),
		tick:     cfg.Server.TickInterval(),
		log:      logger,
	}
}

// HandleEvent applies one terminal event. It returns false once the player
// asked to leave.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		cmd := a.controls.HandleKey(a.game.Phase(), ev, now)
		return a.apply(ctx, cmd)
	}
	return true
}

func (a *App) apply(ctx context.Context, cmd Command) bool {
	switch cmd.Kind {
	case CmdExit:
		return false
	case CmdStart:
		a.game.ReloadAccount(ctx)
		a.controls.Release()
		a.game.StartRun(ctx)
	case CmdPause:
		a.controls.Release()
		a.game.Pause()
	case CmdResume:
		a.game.Resume()
	case CmdQuit:
		a.game.Quit(ctx)
	case CmdLobby:
		a.game.ReturnToLobby()
	case CmdChoose:
		snap := a.game.Snapshot()
		if cmd.Choice >= 0 && cmd.Choice < len(snap.Choices) {
			a.game.SelectChoice(ctx, snap.Choices[cmd.Choice].ID)
		}
	case CmdBuy:
		a.game.ReloadAccount(ctx)
		if _, ok := a.game.PurchaseUpgrade(ctx, cmd.Upgrade); !ok {
			a.log.Printf("termui: purchase of %s refused", cmd.Upgrade)
		}
	}
	return true
}

// Frame advances the simulation by dt while a run is being played and
// redraws the screen.
func (a *App) Frame(ctx context.Context, dt float64, now time.Time) survivor.Snapshot {
	var snap survivor.Snapshot
	if a.game.Phase() == survivor.PhasePlaying {
		snap = a.game.Tick(ctx, dt, a.controls.Input(now))
	} else {
		snap = a.game.Snapshot()
	}
	a.renderer.Draw(snap, a.controls.ShopCursor)
	return snap
}

// poll forwards screen events until the screen is finalized or done closes.
func (a *App) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run polls keys and ticks the game until the player exits or ctx ends.
// A run left in progress is settled before returning.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go a.poll(events, done)

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()
	defer a.game.Abandon(context.WithoutCancel(ctx))

	last := time.Now()
	a.Frame(ctx, 0, last)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ctx, ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.Frame(ctx, dt, now)
		}
	}
}
