package survivor

import (
	"math/rand"
	"strconv"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
)

type Artifact struct {
	ID        int
	Kind      catalog.ArtifactKind
	Pos       geom.Vec2
	Collected bool
}

func artifactKey(id int) string { return "artifact:" + strconv.Itoa(id) }

func (a *Artifact) ref() EntityRef {
	return EntityRef{ID: artifactKey(a.ID), Kind: string(a.Kind), Pos: a.Pos}
}

// placeArtifacts scatters the configured artifact counts over the map.
func placeArtifacts(cfg config.Config, rng *rand.Rand) []*Artifact {
	counts := []struct {
		kind catalog.ArtifactKind
		n    int
	}{
		{catalog.ArtifactCrystal, cfg.Artifacts.Crystals},
		{catalog.ArtifactChest, cfg.Artifacts.Chests},
		{catalog.ArtifactFountain, cfg.Artifacts.Fountains},
		{catalog.ArtifactAltar, cfg.Artifacts.Altars},
		{catalog.ArtifactGrass, cfg.Artifacts.Grass},
	}
	spread := cfg.Map.Size * cfg.Artifacts.Spread
	half := cfg.Map.HalfExtent()
	var out []*Artifact
	for _, c := range counts {
		for i := 0; i < c.n; i++ {
			pos := geom.Vec2{
				X: (rng.Float64() - 0.5) * spread,
				Z: (rng.Float64() - 0.5) * spread,
			}
			out = append(out, &Artifact{ID: len(out) + 1, Kind: c.kind, Pos: pos.Clamp(half)})
		}
	}
	return out
}

// pickupRadius is the contact radius, widened by the magnet passive.
func (r *resolver) pickupRadius() float64 {
	radius := r.cfg.Artifacts.ContactRadius
	if r.run.Passives[catalog.PassiveMagnet] {
		radius *= catalog.Passives[catalog.PassiveMagnet].Value
	}
	return radius
}

// collect applies an artifact's one-shot effect. A collected artifact is
// inert: a second call changes nothing.
func (r *resolver) collect(a *Artifact) bool {
	if a.Collected {
		return false
	}
	def, ok := catalog.Artifacts[a.Kind]
	if !ok {
		return false
	}
	a.Collected = true
	r.fx.Push(Effect{Kind: fxPickup, Pos: a.Pos, TTL: 0.5})

	switch def.Effect {
	case catalog.EffectExp:
		r.grantExp(def.Value)
		r.cue(CueExpCollect)
	case catalog.EffectHeal:
		r.run.Heal(float64(def.Value))
		r.cue(CuePlayerHeal)
	case catalog.EffectLevelUp:
		r.run.GainExp(r.run.ExpToNext)
		r.cue(CueExpCollect)
	case catalog.EffectRandom:
		r.openChest()
	}
	return true
}

// openChest rolls exp or coins. Treasure hunter may pay out both.
func (r *resolver) openChest() {
	roll := catalog.Chest
	both := r.run.Bonuses.TreasureChance > 0 && r.rng.Float64() < r.run.Bonuses.TreasureChance
	if both || r.rng.Float64() < roll.ExpChance {
		r.grantExp(roll.ExpBase + r.rng.Intn(roll.ExpSpread))
		r.cue(CueExpCollect)
		if !both {
			return
		}
	}
	r.grantCoins(roll.CoinsBase + r.rng.Intn(roll.CoinsSpread))
	r.cue(CueCoinCollect)
}

// pickups collects every artifact the player touches and returns the ids
// that left the field.
func (r *resolver) pickups(field []*Artifact) (kept []*Artifact, gone []int) {
	radius := r.pickupRadius()
	kept = field[:0]
	for _, a := range field {
		if !a.Collected && a.Pos.Dist(r.player.Pos) < radius {
			r.collect(a)
		}
		if a.Collected {
			gone = append(gone, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	return kept, gone
}
