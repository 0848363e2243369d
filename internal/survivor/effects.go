package survivor

import "voxelsurvivor/internal/geom"

// Effect is a cosmetic marker for front-ends: slashes, explosions, bolts,
// damage numbers. The simulation writes them and never reads them back.
type Effect struct {
	Kind   string    `json:"kind" msgpack:"kind"`
	Pos    geom.Vec2 `json:"pos" msgpack:"pos"`
	To     geom.Vec2 `json:"to,omitempty" msgpack:"to,omitempty"`
	Radius float64   `json:"radius,omitempty" msgpack:"radius,omitempty"`
	Value  float64   `json:"value,omitempty" msgpack:"value,omitempty"`
	TTL    float64   `json:"ttl" msgpack:"ttl"`
}

const (
	fxSlash     = "slash"
	fxSpin      = "spin"
	fxDash      = "dash"
	fxHeal      = "heal"
	fxDamage    = "damage"
	fxCrit      = "crit"
	fxExplosion = "explosion"
	fxLightning = "lightning"
	fxFrost     = "frost"
	fxPoison    = "poison"
	fxPickup    = "pickup"
	fxLevelUp   = "levelup"
	fxDeath     = "death"
)

const maxEffects = 128

// Effects is the presentation queue. Oldest entries are dropped when full.
type Effects struct {
	list []Effect
}

func (e *Effects) Push(fx Effect) {
	if fx.TTL <= 0 {
		fx.TTL = 0.3
	}
	if len(e.list) >= maxEffects {
		e.list = append(e.list[:0], e.list[1:]...)
	}
	e.list = append(e.list, fx)
}

func (e *Effects) Tick(dt float64) {
	kept := e.list[:0]
	for _, fx := range e.list {
		fx.TTL -= dt
		if fx.TTL > 0 {
			kept = append(kept, fx)
		}
	}
	e.list = kept
}

func (e *Effects) Active() []Effect {
	out := make([]Effect, len(e.list))
	copy(out, e.list)
	return out
}

func (e *Effects) Clear() { e.list = nil }
