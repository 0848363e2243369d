// Package arena hosts survival runs over websockets. Every connection gets
// its own game, terrain and tick loop; the account named by the user_id
// cookie is loaded on connect and saved whenever the game settles.
package arena

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"voxelsurvivor/internal/auth"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/data"
	"voxelsurvivor/internal/presence"
	"voxelsurvivor/internal/survivor"
	"voxelsurvivor/internal/terrain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Server struct {
	cfg   config.Config
	store data.Store
	log   *log.Logger

	mu        sync.Mutex
	sessions  map[string]*Session
	byAccount map[string]*Session
}

// NewServer builds the websocket host. store may be nil, in which case
// every player is a guest and nothing is persisted.
func NewServer(cfg config.Config, store data.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:       cfg,
		store:     store,
		log:       logger,
		sessions:  make(map[string]*Session),
		byAccount: make(map[string]*Session),
	}
}

// Sessions is the number of connected players.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Online lists every connected account with its run progress.
func (s *Server) Online() []presence.Player {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	out := make([]presence.Player, 0, len(sessions))
	for _, sess := range sessions {
		snap := sess.game.Snapshot()
		out = append(out, presence.Player{
			AccountID: sess.AccountID,
			Phase:     snap.Phase,
			Day:       snap.Day,
			Level:     snap.Level,
			Kills:     snap.Kills,
		})
	}
	return out
}

// register adds a session and returns the one it replaces: an account
// plays from one connection at a time.
func (s *Server) register(sess *Session) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	old := s.byAccount[sess.AccountID]
	s.byAccount[sess.AccountID] = sess
	return old
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.ID)
	if s.byAccount[sess.AccountID] == sess {
		delete(s.byAccount, sess.AccountID)
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	accountID, err := auth.UserID(r)
	guest := err != nil || s.store == nil
	if err != nil {
		accountID = "guest_" + uuid.NewString()[:8]
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("arena: upgrade:", err)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	field := terrain.Generate(s.cfg.Map, rng)
	cues := &cueBuffer{}

	opts := survivor.Options{
		AccountID: accountID,
		Terrain:   field,
		Audio:     cues,
		Rand:      rng,
		Logger:    s.log,
	}
	if !guest {
		opts.Store = s.store
	}

	sess := &Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		conn:      conn,
		send:      make(chan outbound, 64),
		codec:     s.cfg.Server.Codec,
		tick:      s.cfg.Server.TickInterval(),
		cues:      cues,
		log:       s.log,
		loopDone:  make(chan struct{}),
	}
	sess.game = survivor.NewGame(s.cfg, opts)

	if old := s.register(sess); old != nil {
		s.log.Printf("arena: account %s reconnected, closing session %s", accountID, old.ID)
		old.conn.Close()
	}
	s.log.Printf("arena: session %s connected (account %s)", sess.ID, accountID)

	go sess.writePump()
	snap := sess.game.Snapshot()
	sess.push(ServerMessage{
		Type:      MsgWelcome,
		SessionID: sess.ID,
		AccountID: accountID,
		TickRate:  s.cfg.Server.TickRate,
		Map:       &MapInfo{Size: s.cfg.Map.Size, Obstacles: field.Obstacles()},
		OK:        true,
		Cues:      cues.drain(),
		Snapshot:  &snap,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go sess.run(ctx)
	sess.readPump(ctx)

	cancel()
	<-sess.loopDone
	if snap, ok := sess.game.Abandon(context.Background()); ok {
		s.log.Printf("arena: session %s left mid-run, settled (account coins %d)", sess.ID, snap.Account.Coins)
	}
	close(sess.send)
	s.unregister(sess)
	s.log.Printf("arena: session %s disconnected", sess.ID)
}
