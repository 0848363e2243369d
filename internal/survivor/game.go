package survivor

import (
	"context"
	"errors"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
	"voxelsurvivor/internal/progression"

	"github.com/google/uuid"
)

// ErrNoAccount is what an AccountStore returns for an id it has never saved.
// Any other load error is logged before falling back to a new account.
var ErrNoAccount = progression.ErrAccountNotFound

// Input is one tick of player intent.
type Input struct {
	MoveX  float64           `json:"x" msgpack:"x"`
	MoveZ  float64           `json:"z" msgpack:"z"`
	Attack bool              `json:"attack" msgpack:"attack"`
	Skills []catalog.SkillID `json:"skills,omitempty" msgpack:"skills,omitempty"`
}

type Options struct {
	AccountID string
	Store     AccountStore
	Terrain   Terrain
	Audio     AudioSink
	Scene     Scene
	Rand      *rand.Rand
	Logger    *log.Logger
}

// Game owns one player's account and the run in progress. All methods are
// safe to call from several goroutines; they serialize on one mutex.
type Game struct {
	mu sync.Mutex

	cfg       config.Config
	accountID string
	store     AccountStore
	terrain   Terrain
	audio     AudioSink
	scene     Scene
	rng       *rand.Rand
	log       *log.Logger

	account *progression.Account
	phase   *phaseMachine
	music   Cue

	run       *Run
	player    *Player
	horde     *Horde
	spawner   *Spawner
	skills    *AutoSkills
	artifacts []*Artifact
	fx        *Effects
	choices   []Choice
	refused   []string // actions of the last tick that were no-ops
}

// ActionAttack names a refused melee swing in Snapshot.Refused; refused
// skills appear under their skill id.
const ActionAttack = "attack"

func NewGame(cfg config.Config, opts Options) *Game {
	g := &Game{
		cfg:       cfg,
		accountID: opts.AccountID,
		store:     opts.Store,
		terrain:   opts.Terrain,
		audio:     opts.Audio,
		scene:     opts.Scene,
		rng:       opts.Rand,
		log:       opts.Logger,
		player:    newPlayer(),
		horde:     &Horde{},
		skills:    newAutoSkills(),
		fx:        &Effects{},
	}
	if g.terrain == nil {
		g.terrain = openField{}
	}
	if g.audio == nil {
		g.audio = silence{}
	}
	if g.scene == nil {
		g.scene = noScene{}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.log == nil {
		g.log = log.Default()
	}
	g.phase = newPhaseMachine(nil)
	g.account = g.loadAccount(context.Background())
	g.setMusic(MusicLobby)
	return g
}

// ========================================
// PERSISTENCE BOUNDARY
// ========================================

func (g *Game) loadAccount(ctx context.Context) *progression.Account {
	if g.store == nil {
		return progression.NewAccount()
	}
	acc, err := g.store.LoadAccount(ctx, g.accountID)
	switch {
	case errors.Is(err, ErrNoAccount):
		return progression.NewAccount()
	case err != nil:
		g.log.Printf("survivor: load account %s: %v, starting fresh", g.accountID, err)
		return progression.NewAccount()
	case acc == nil:
		return progression.NewAccount()
	}
	acc.Normalize()
	return acc
}

// storedAccount rereads the account before a settlement. Unlike loadAccount
// it keeps the in-memory copy when the store cannot be read, so a flaky
// store never turns a settlement into a reset.
func (g *Game) storedAccount(ctx context.Context) *progression.Account {
	if g.store == nil {
		return g.account
	}
	acc, err := g.store.LoadAccount(ctx, g.accountID)
	switch {
	case errors.Is(err, ErrNoAccount):
		return g.account
	case err != nil || acc == nil:
		if err != nil {
			g.log.Printf("survivor: reload account %s before settling: %v", g.accountID, err)
		}
		return g.account
	}
	acc.Normalize()
	return acc
}

func (g *Game) saveAccount(ctx context.Context) {
	if g.store == nil {
		return
	}
	if err := g.store.SaveAccount(ctx, g.accountID, g.account.Clone()); err != nil {
		g.log.Printf("survivor: save account %s: %v", g.accountID, err)
	}
}

// ========================================
// COMMANDS
// ========================================

// StartRun discards anything left of the previous run and begins a new one.
func (g *Game) StartRun(ctx context.Context) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.phase.Is(PhaseLobby) {
		return g.snapshot(), false
	}
	g.clearRun()

	run := newRun(uuid.NewString(), g.account, g.cfg.Day.FirstDuration, g.cfg.Progression.LevelCap, g.cfg.Progression.FallbackExpStep)
	run.Bonuses.DayShortening = float64(g.account.UpgradeLevel(catalog.UpgradeTimeWarp)) * g.cfg.Day.TimeWarpPerLvl
	run.Bonuses.ExplosionChance = float64(g.account.UpgradeLevel(catalog.UpgradeExplosiveKills)) * g.cfg.Spawn.ExplosionPerLevel
	g.run = run
	g.spawner = newSpawner(g.cfg.Spawn, g.cfg.Day.SafeDays, run.Bonuses.SpawnRate)
	g.artifacts = placeArtifacts(g.cfg, g.rng)

	g.phase.fire(ctx, evStart)
	g.scene.Spawned(g.player.ref())
	for _, a := range g.artifacts {
		g.scene.Spawned(a.ref())
	}
	g.cue(CueGameStart)
	g.setMusic(MusicForDay(run.Day))
	g.log.Printf("survivor: run %s started for %s", run.ID, g.accountID)
	return g.snapshot(), true
}

func (g *Game) Pause() (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.phase.fire(context.Background(), evPause)
	return g.snapshot(), ok
}

func (g *Game) Resume() (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.phase.fire(context.Background(), evResume)
	return g.snapshot(), ok
}

// Quit abandons a paused run. Rewards earned so far are still settled.
func (g *Game) Quit(ctx context.Context) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.phase.Is(PhasePaused) {
		return g.snapshot(), false
	}
	g.settle(ctx)
	g.phase.fire(ctx, evQuit)
	g.clearRun()
	g.setMusic(MusicLobby)
	return g.snapshot(), true
}

// Abandon ends whatever run is live, from any phase, settling what it had
// earned. Hosts call it when the player goes away mid-run.
func (g *Game) Abandon(ctx context.Context) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase.Is(PhaseLobby) {
		return g.snapshot(), false
	}
	g.settle(ctx)
	g.phase.fire(ctx, evAbort)
	g.clearRun()
	g.setMusic(MusicLobby)
	return g.snapshot(), true
}

// ReturnToLobby leaves the game-over screen.
func (g *Game) ReturnToLobby() (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.phase.fire(context.Background(), evLobby) {
		return g.snapshot(), false
	}
	g.clearRun()
	g.setMusic(MusicLobby)
	return g.snapshot(), true
}

// SelectChoice applies one of the offered level-up choices and resumes play.
func (g *Game) SelectChoice(ctx context.Context, choiceID string) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.phase.Is(PhaseLevelUp) {
		return g.snapshot(), false
	}
	for _, c := range g.choices {
		if c.ID != choiceID {
			continue
		}
		if !applyChoice(g.run, g.skills, c) {
			return g.snapshot(), false
		}
		g.choices = nil
		g.run.levelUpPending = false
		g.cue(CueChoiceSelect)
		g.phase.fire(ctx, evChoose)
		return g.snapshot(), true
	}
	return g.snapshot(), false
}

// PurchaseUpgrade buys one level of a permanent upgrade. Only allowed
// between runs.
func (g *Game) PurchaseUpgrade(ctx context.Context, id catalog.UpgradeID) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.phase.Is(PhaseLobby) && !g.phase.Is(PhaseGameOver) {
		return g.snapshot(), false
	}
	if err := g.account.Purchase(id); err != nil {
		return g.snapshot(), false
	}
	g.cue(CueCoinCollect)
	g.saveAccount(ctx)
	return g.snapshot(), true
}

// Snapshot returns the current view without advancing anything.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase.Current()
}

// Account returns a copy of the persisted account state.
func (g *Game) Account() *progression.Account {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.account.Clone()
}

// ReloadAccount rereads the account from the store so changes made through
// another surface (the HTTP shop) are seen. Refused while a run is live
// and for games without a store.
func (g *Game) ReloadAccount(ctx context.Context) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.phase.Is(PhaseLobby) || g.store == nil {
		return g.snapshot(), false
	}
	g.account = g.loadAccount(ctx)
	return g.snapshot(), true
}

// ========================================
// FRAME
// ========================================

// Tick advances the run by dt seconds. Outside the playing phase nothing
// moves and the snapshot is returned unchanged.
func (g *Game) Tick(ctx context.Context, dt float64, in Input) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refused = nil
	if !g.phase.Is(PhasePlaying) || g.run == nil {
		return g.snapshot()
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	dt = math.Min(dt, g.cfg.Server.MaxFrameDelta)

	run := g.run
	if !run.sane() {
		g.log.Printf("survivor: run %s state corrupted, returning to lobby", run.ID)
		g.settle(ctx)
		g.phase.fire(ctx, evAbort)
		g.clearRun()
		g.setMusic(MusicLobby)
		return g.snapshot()
	}
	r := g.resolver()
	b := g.bounds()

	// cooldowns and day timer
	run.tickCooldowns(dt)
	if run.advanceClock(dt, g.dayLength()) {
		g.cue(CueDayChange)
		g.setMusic(MusicForDay(run.Day))
	}

	// player input
	speed := g.cfg.Player.Speed * run.Stats.Speed
	g.player.Move(geom.Vec2{X: in.MoveX, Z: in.MoveZ}, speed, dt, b)
	if in.Attack && !r.attack() {
		g.refused = append(g.refused, ActionAttack)
	}
	for _, id := range in.Skills {
		if !r.useSkill(id, b) {
			g.refused = append(g.refused, string(id))
		}
	}

	// player timers
	g.player.tick(dt, b)
	g.scene.Moved(g.player.ref())

	// monsters
	if n := g.spawner.Due(dt, run.Day, g.horde.Len(), g.rng); n > 0 {
		g.spawnMonsters(n)
	}
	for _, id := range g.horde.Update(dt, g.player.Pos, b.half) {
		g.skills.Forget(id)
		g.scene.Removed(monsterKey(id))
	}
	for _, m := range g.horde.Living() {
		g.scene.Moved(m.ref())
	}

	// auto-skills and passives
	g.skills.Update(r, dt)

	// collision
	r.contact()
	var gone []int
	g.artifacts, gone = r.pickups(g.artifacts)
	for _, id := range gone {
		g.scene.Removed(artifactKey(id))
	}
	r.detonate()
	r.checkHealth()
	g.fx.Tick(dt)

	// phase transitions: death outranks a pending level-up
	switch {
	case run.dead:
		g.endRun(ctx)
	case run.levelUpPending:
		g.offerChoices(ctx)
	}
	return g.snapshot()
}

func (g *Game) resolver() *resolver {
	return &resolver{
		cfg:    &g.cfg,
		run:    g.run,
		player: g.player,
		horde:  g.horde,
		rng:    g.rng,
		fx:     g.fx,
		cue:    g.cue,
		scene:  g.scene,
	}
}

func (g *Game) bounds() bounds {
	return bounds{half: g.cfg.Map.HalfExtent(), radius: g.cfg.Player.Radius, terrain: g.terrain}
}

// dayLength is the post-rollover day duration after time warp, floored.
func (g *Game) dayLength() float64 {
	return math.Max(g.cfg.Day.MinDuration, g.cfg.Day.Duration-g.run.Bonuses.DayShortening)
}

func (g *Game) spawnMonsters(n int) {
	for i := 0; i < n; i++ {
		def, ok := g.spawner.PickType(g.run.Day, g.rng)
		if !ok {
			return
		}
		pos := g.spawner.Place(g.player.Pos, g.cfg.Map.HalfExtent(), g.rng)
		m := g.horde.Spawn(def, pos)
		g.scene.Spawned(m.ref())
		g.cue(CueMonsterSpawn)
	}
}

func (g *Game) offerChoices(ctx context.Context) {
	g.choices = rollChoices(g.run, g.cfg.Progression.ChoiceCount, g.rng)
	g.cue(CueLevelUp)
	g.fx.Push(Effect{Kind: fxLevelUp, Pos: g.player.Pos, TTL: 1})
	g.phase.fire(ctx, evLevelUp)
}

// endRun moves a dead run to game over and settles it. Calling it again
// for the same run changes nothing.
func (g *Game) endRun(ctx context.Context) {
	if g.run == nil {
		return
	}
	if g.phase.Is(PhasePlaying) {
		g.phase.fire(ctx, evDie)
		g.cue(CuePlayerDeath)
		g.setMusic(MusicGameOver)
	}
	g.settle(ctx)
}

// settle folds the run into the account exactly once and persists it.
func (g *Game) settle(ctx context.Context) {
	run := g.run
	if run == nil || run.Settled {
		return
	}
	run.Settled = true
	// Purchases made through another surface during the run are in the
	// store, not in g.account.
	g.account = g.storedAccount(ctx)
	if !g.account.Settle(run.result()) {
		return
	}
	g.log.Printf("survivor: run %s ended on day %d, level %d, %d kills, %d coins",
		run.ID, run.Day, run.Level, run.Kills, run.Coins)
	g.saveAccount(ctx)
}

// clearRun drops every entity and timer of the previous run so nothing
// stale can touch the next one.
func (g *Game) clearRun() {
	for _, m := range g.horde.All() {
		g.scene.Removed(monsterKey(m.ID))
	}
	for _, p := range g.skills.Projectiles() {
		g.scene.Removed(projectileKey(p.ID))
	}
	for _, a := range g.artifacts {
		g.scene.Removed(artifactKey(a.ID))
	}
	g.horde.Clear()
	g.skills = newAutoSkills()
	g.artifacts = nil
	g.fx.Clear()
	g.choices = nil
	g.player.reset()
	if g.spawner != nil {
		g.spawner.reset()
	}
	g.run = nil
}

func (g *Game) cue(c Cue) { g.audio.Play(string(c)) }

func (g *Game) setMusic(c Cue) {
	if g.music == c {
		return
	}
	g.music = c
	g.audio.Play(string(c))
}
