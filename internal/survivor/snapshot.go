package survivor

import (
	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/geom"
	"voxelsurvivor/internal/progression"
)

// Snapshot is the full read-only view handed to front-ends after every
// command and tick. It shares no memory with the live game.
type Snapshot struct {
	Phase     Phase   `json:"phase" msgpack:"phase"`
	RunID     string  `json:"runId,omitempty" msgpack:"runId,omitempty"`
	Day       int     `json:"day" msgpack:"day"`
	Timer     float64 `json:"timer" msgpack:"timer"`
	Level     int     `json:"level" msgpack:"level"`
	Exp       int     `json:"exp" msgpack:"exp"`
	ExpToNext int     `json:"expToNext" msgpack:"expToNext"`
	Kills     int     `json:"kills" msgpack:"kills"`
	Coins     int     `json:"coinsEarned" msgpack:"coinsEarned"`
	Music     Cue     `json:"music" msgpack:"music"`

	Stats         catalog.Stats                   `json:"stats" msgpack:"stats"`
	Cooldowns     map[catalog.SkillID]float64     `json:"cooldowns" msgpack:"cooldowns"`
	AutoSkills    []catalog.AutoSkillID           `json:"autoSkills" msgpack:"autoSkills"`
	Passives      []catalog.PassiveID             `json:"passives" msgpack:"passives"`
	SkillUpgrades []catalog.SkillUpgradeID        `json:"skillUpgrades" msgpack:"skillUpgrades"`
	AutoCooldowns map[catalog.AutoSkillID]float64 `json:"autoCooldowns,omitempty" msgpack:"autoCooldowns,omitempty"`

	Player      PlayerView       `json:"player" msgpack:"player"`
	Monsters    []MonsterView    `json:"monsters" msgpack:"monsters"`
	Projectiles []ProjectileView `json:"projectiles" msgpack:"projectiles"`
	Orbs        []OrbView        `json:"orbs" msgpack:"orbs"`
	Artifacts   []ArtifactView   `json:"artifacts" msgpack:"artifacts"`
	Effects     []Effect         `json:"effects" msgpack:"effects"`
	Choices     []Choice         `json:"choices,omitempty" msgpack:"choices,omitempty"`
	Refused     []string         `json:"refused,omitempty" msgpack:"refused,omitempty"`

	Account *progression.Account `json:"account" msgpack:"account"`
}

type PlayerView struct {
	Pos        geom.Vec2 `json:"pos" msgpack:"pos"`
	Y          float64   `json:"y" msgpack:"y"`
	Facing     geom.Vec2 `json:"facing" msgpack:"facing"`
	Dashing    bool      `json:"dashing" msgpack:"dashing"`
	Invincible bool      `json:"invincible" msgpack:"invincible"`
	AttackCD   float64   `json:"attackCooldown" msgpack:"attackCooldown"`
}

type MonsterView struct {
	ID     int                 `json:"id" msgpack:"id"`
	Type   catalog.MonsterType `json:"type" msgpack:"type"`
	Pos    geom.Vec2           `json:"pos" msgpack:"pos"`
	Facing geom.Vec2           `json:"facing" msgpack:"facing"`
	HP     float64             `json:"hp" msgpack:"hp"`
	MaxHP  float64             `json:"maxHp" msgpack:"maxHp"`
	Radius float64             `json:"radius" msgpack:"radius"`
	Dying  bool                `json:"dying" msgpack:"dying"`
	Slowed bool                `json:"slowed" msgpack:"slowed"`
}

type ProjectileView struct {
	ID  int       `json:"id" msgpack:"id"`
	Pos geom.Vec2 `json:"pos" msgpack:"pos"`
	Dir geom.Vec2 `json:"dir" msgpack:"dir"`
}

type OrbView struct {
	Skill catalog.AutoSkillID `json:"skill" msgpack:"skill"`
	Pos   geom.Vec2           `json:"pos" msgpack:"pos"`
}

type ArtifactView struct {
	ID   int                  `json:"id" msgpack:"id"`
	Kind catalog.ArtifactKind `json:"kind" msgpack:"kind"`
	Pos  geom.Vec2            `json:"pos" msgpack:"pos"`
}

// snapshot builds the view. Caller holds g.mu.
func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		Phase:   g.phase.Current(),
		Music:   g.music,
		Account: g.account.Clone(),
		Effects: g.fx.Active(),
		Player: PlayerView{
			Pos:        g.player.Pos,
			Facing:     g.player.Facing,
			Dashing:    g.player.Dashing(),
			Invincible: g.player.Invincible(),
			AttackCD:   g.player.attackCooldown,
		},
	}
	if len(g.choices) > 0 {
		s.Choices = append([]Choice(nil), g.choices...)
	}
	if len(g.refused) > 0 {
		s.Refused = append([]string(nil), g.refused...)
	}

	if r := g.run; r != nil {
		s.RunID = r.ID
		s.Day = r.Day
		s.Timer = r.Timer
		s.Level = r.Level
		s.Exp = r.Exp
		s.ExpToNext = r.ExpToNext
		s.Kills = r.Kills
		s.Coins = r.Coins
		s.Stats = r.Stats
		s.Cooldowns = make(map[catalog.SkillID]float64, len(r.Cooldowns))
		for id, v := range r.Cooldowns {
			s.Cooldowns[id] = v
		}
		s.AutoCooldowns = make(map[catalog.AutoSkillID]float64)
		for _, id := range catalog.AutoSkillOrder {
			if r.AutoSkills[id] {
				s.AutoSkills = append(s.AutoSkills, id)
				s.AutoCooldowns[id] = g.skills.Cooldown(id)
			}
		}
		for _, id := range catalog.PassiveOrder {
			if r.Passives[id] {
				s.Passives = append(s.Passives, id)
			}
		}
		for _, id := range catalog.SkillUpgradeOrder {
			if r.SkillUpgrades[id] {
				s.SkillUpgrades = append(s.SkillUpgrades, id)
			}
		}
	}

	for _, m := range g.horde.All() {
		s.Monsters = append(s.Monsters, MonsterView{
			ID: m.ID, Type: m.Type, Pos: m.Pos, Facing: m.Facing,
			HP: m.HP, MaxHP: m.MaxHP, Radius: m.Radius,
			Dying: !m.Alive(), Slowed: m.Slowed(),
		})
	}
	for _, p := range g.skills.Projectiles() {
		s.Projectiles = append(s.Projectiles, ProjectileView{ID: p.ID, Pos: p.Pos, Dir: p.Dir})
	}
	s.Orbs = g.skills.Orbs()
	for _, a := range g.artifacts {
		if !a.Collected {
			s.Artifacts = append(s.Artifacts, ArtifactView{ID: a.ID, Kind: a.Kind, Pos: a.Pos})
		}
	}
	return s
}
