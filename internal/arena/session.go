package arena

import (
	"context"
	"log"
	"sync"
	"time"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/survivor"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// cueBuffer collects the cues a game plays between two outgoing messages.
type cueBuffer struct {
	mu   sync.Mutex
	keys []string
}

func (c *cueBuffer) Play(key string) {
	c.mu.Lock()
	c.keys = append(c.keys, key)
	c.mu.Unlock()
}

func (c *cueBuffer) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.keys
	c.keys = nil
	return keys
}

// Session is one connected player driving their own game.
type Session struct {
	ID        string
	AccountID string

	conn     *websocket.Conn
	send     chan outbound
	codec    string
	tick     time.Duration
	game     *survivor.Game
	cues     *cueBuffer
	log      *log.Logger
	loopDone chan struct{}

	mu     sync.Mutex
	held   survivor.Input
	swing  bool
	skills []catalog.SkillID
}

// takeInput builds the next tick's input. Held axes persist; one-shot
// swings and skills are consumed.
func (s *Session) takeInput() survivor.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.held
	in.Attack = s.held.Attack || s.swing
	in.Skills = s.skills
	s.swing = false
	s.skills = nil
	return in
}

func (s *Session) queue(msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch msg.Type {
	case MsgInput:
		s.held.MoveX = axis(msg.X)
		s.held.MoveZ = axis(msg.Z)
		s.held.Attack = msg.Attack
	case MsgAttack:
		s.swing = true
	case MsgSkill:
		if _, ok := catalog.Skills[msg.Skill]; ok {
			s.skills = append(s.skills, msg.Skill)
		}
	}
}

// push encodes and queues a message. A full queue drops it; the next frame
// carries the whole state again.
func (s *Session) push(msg ServerMessage) {
	out, err := encode(s.codec, msg)
	if err != nil {
		s.log.Printf("arena: session %s encode %s: %v", s.ID, msg.Type, err)
		return
	}
	select {
	case s.send <- out:
	default:
	}
}

// run is the session's fixed-rate tick loop. Frames go out only while a
// run is being played.
func (s *Session) run(ctx context.Context) {
	defer close(s.loopDone)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if s.game.Phase() != survivor.PhasePlaying {
				continue
			}
			snap := s.game.Tick(ctx, dt, s.takeInput())
			s.push(ServerMessage{Type: MsgFrame, Snapshot: &snap, Cues: s.cues.drain()})
		}
	}
}

func (s *Session) writePump() {
	defer s.conn.Close()
	for msg := range s.send {
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(msg.kind, msg.data); err != nil {
			return
		}
	}
	_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (s *Session) readPump(ctx context.Context) {
	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := decode(kind, data, &msg); err != nil {
			continue
		}
		s.handle(ctx, msg)
	}
}

// handle applies one client message. Commands answer with a result
// carrying the resulting snapshot; input only updates what the next tick
// will read.
func (s *Session) handle(ctx context.Context, msg ClientMessage) {
	var (
		snap survivor.Snapshot
		ok   bool
	)
	switch msg.Type {
	case MsgInput, MsgAttack, MsgSkill:
		s.queue(msg)
		return
	case MsgStart:
		s.game.ReloadAccount(ctx)
		snap, ok = s.game.StartRun(ctx)
	case MsgPause:
		snap, ok = s.game.Pause()
	case MsgResume:
		snap, ok = s.game.Resume()
	case MsgQuit:
		snap, ok = s.game.Quit(ctx)
	case MsgLobby:
		snap, ok = s.game.ReturnToLobby()
	case MsgChoose:
		snap, ok = s.game.SelectChoice(ctx, msg.Choice)
	case MsgBuy:
		s.game.ReloadAccount(ctx)
		snap, ok = s.game.PurchaseUpgrade(ctx, msg.Upgrade)
	case MsgReload:
		snap, ok = s.game.ReloadAccount(ctx)
	case MsgState:
		snap, ok = s.game.Snapshot(), true
	default:
		snap = s.game.Snapshot()
	}
	s.push(ServerMessage{Type: MsgResult, Command: msg.Type, OK: ok, Snapshot: &snap, Cues: s.cues.drain()})
}
