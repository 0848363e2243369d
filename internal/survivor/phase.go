package survivor

import (
	"context"

	"github.com/looplab/fsm"
)

type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseLevelUp  Phase = "levelup"
	PhaseGameOver Phase = "gameover"
)

const (
	evStart   = "start"
	evPause   = "pause"
	evResume  = "resume"
	evLevelUp = "levelup"
	evChoose  = "choose"
	evDie     = "die"
	evQuit    = "quit"
	evLobby   = "lobby"
	evAbort   = "abort"
)

// phaseMachine is the run's lifecycle. Transitions not listed here are
// rejected, which is how a paused run refuses everything but resume and quit.
type phaseMachine struct {
	fsm *fsm.FSM
}

func newPhaseMachine(onEnter func(from, to Phase)) *phaseMachine {
	callbacks := fsm.Callbacks{}
	if onEnter != nil {
		callbacks["enter_state"] = func(_ context.Context, e *fsm.Event) {
			onEnter(Phase(e.Src), Phase(e.Dst))
		}
	}
	return &phaseMachine{
		fsm: fsm.NewFSM(
			string(PhaseLobby),
			fsm.Events{
				{Name: evStart, Src: []string{string(PhaseLobby)}, Dst: string(PhasePlaying)},
				{Name: evPause, Src: []string{string(PhasePlaying)}, Dst: string(PhasePaused)},
				{Name: evResume, Src: []string{string(PhasePaused)}, Dst: string(PhasePlaying)},
				{Name: evLevelUp, Src: []string{string(PhasePlaying)}, Dst: string(PhaseLevelUp)},
				{Name: evChoose, Src: []string{string(PhaseLevelUp)}, Dst: string(PhasePlaying)},
				{Name: evDie, Src: []string{string(PhasePlaying)}, Dst: string(PhaseGameOver)},
				{Name: evQuit, Src: []string{string(PhasePaused)}, Dst: string(PhaseLobby)},
				{Name: evLobby, Src: []string{string(PhaseGameOver)}, Dst: string(PhaseLobby)},
				{Name: evAbort, Src: []string{string(PhasePlaying), string(PhasePaused), string(PhaseLevelUp), string(PhaseGameOver)}, Dst: string(PhaseLobby)},
			},
			callbacks,
		),
	}
}

func (p *phaseMachine) Current() Phase {
	return Phase(p.fsm.Current())
}

func (p *phaseMachine) Is(ph Phase) bool {
	return p.fsm.Is(string(ph))
}

// fire attempts a transition and reports whether it happened.
func (p *phaseMachine) fire(ctx context.Context, event string) bool {
	if !p.fsm.Can(event) {
		return false
	}
	return p.fsm.Event(ctx, event) == nil
}
