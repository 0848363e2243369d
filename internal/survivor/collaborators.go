package survivor

import (
	"context"

	"voxelsurvivor/internal/geom"
	"voxelsurvivor/internal/progression"
)

// Terrain answers static-obstacle queries for movement and dash.
type Terrain interface {
	CheckCollision(p geom.Vec2, radius float64) (geom.Circle, bool)
	ResolveCollision(p geom.Vec2, radius float64) (geom.Vec2, bool)
}

// AudioSink plays cues by key. Playback failures stay inside the sink.
type AudioSink interface {
	Play(key string)
}

// Scene is told about entity lifecycles. It never answers back.
type Scene interface {
	Spawned(e EntityRef)
	Moved(e EntityRef)
	Removed(id string)
}

// AccountStore persists the account between runs.
type AccountStore interface {
	LoadAccount(ctx context.Context, id string) (*progression.Account, error)
	SaveAccount(ctx context.Context, id string, acc *progression.Account) error
}

// EntityRef is the position and orientation handed to the scene.
type EntityRef struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Pos    geom.Vec2 `json:"pos"`
	Facing geom.Vec2 `json:"facing"`
}

type openField struct{}

func (openField) CheckCollision(geom.Vec2, float64) (geom.Circle, bool) { return geom.Circle{}, false }
func (openField) ResolveCollision(geom.Vec2, float64) (geom.Vec2, bool) { return geom.Vec2{}, false }

type silence struct{}

func (silence) Play(string) {}

type noScene struct{}

func (noScene) Spawned(EntityRef) {}
func (noScene) Moved(EntityRef)   {}
func (noScene) Removed(string)    {}

// ========================================
// AUDIO CUES
// ========================================

type Cue string

const (
	CueAttack1         Cue = "sfx_attack_1"
	CueAttack2         Cue = "sfx_attack_2"
	CueAttack3         Cue = "sfx_attack_3"
	CuePlayerHit       Cue = "sfx_player_hit"
	CuePlayerDeath     Cue = "sfx_player_death"
	CuePlayerHeal      Cue = "sfx_player_heal"
	CueSkillSpin       Cue = "sfx_skill_spin"
	CueSkillDash       Cue = "sfx_skill_dash"
	CueOrbitalHit      Cue = "sfx_orbital_hit"
	CueFireballShoot   Cue = "sfx_fireball_shoot"
	CueFireballExplode Cue = "sfx_fireball_explosion"
	CueLightning       Cue = "sfx_lightning_strike"
	CuePoisonTick      Cue = "sfx_poison_tick"
	CueFrostNova       Cue = "sfx_frost_nova"
	CueBladeHit        Cue = "sfx_blade_hit"
	CueMonsterHit      Cue = "sfx_monster_hit"
	CueMonsterDeath    Cue = "sfx_monster_death"
	CueMonsterSpawn    Cue = "sfx_monster_spawn"
	CueLevelUp         Cue = "sfx_levelup"
	CueChoiceSelect    Cue = "sfx_choice_select"
	CueCoinCollect     Cue = "sfx_coin_collect"
	CueExpCollect      Cue = "sfx_exp_collect"
	CueGameStart       Cue = "sfx_game_start"
	CueDayChange       Cue = "sfx_day_change"
	CueLowHealth       Cue = "sfx_warning_low_hp"

	MusicLobby    Cue = "bgm_lobby"
	MusicEarly    Cue = "bgm_gameplay_early"
	MusicMid      Cue = "bgm_gameplay_mid"
	MusicLate     Cue = "bgm_gameplay_late"
	MusicGameOver Cue = "bgm_gameover"
)

// AllCues lists every key the simulation may emit.
var AllCues = []Cue{
	CueAttack1, CueAttack2, CueAttack3, CuePlayerHit, CuePlayerDeath, CuePlayerHeal,
	CueSkillSpin, CueSkillDash, CueOrbitalHit, CueFireballShoot, CueFireballExplode,
	CueLightning, CuePoisonTick, CueFrostNova, CueBladeHit, CueMonsterHit,
	CueMonsterDeath, CueMonsterSpawn, CueLevelUp, CueChoiceSelect, CueCoinCollect,
	CueExpCollect, CueGameStart, CueDayChange, CueLowHealth,
	MusicLobby, MusicEarly, MusicMid, MusicLate, MusicGameOver,
}

// MusicForDay picks the gameplay track for day.
func MusicForDay(day int) Cue {
	switch {
	case day <= 3:
		return MusicEarly
	case day <= 7:
		return MusicMid
	default:
		return MusicLate
	}
}
