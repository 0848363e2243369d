// Package terrain is the static obstacle field of the map: trees and rocks
// scattered at run start that bodies cannot walk through.
package terrain

import (
	"math"
	"math/rand"

	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
)

type Kind string

const (
	Tree Kind = "tree"
	Rock Kind = "rock"
)

// Obstacle is one round blocker on the ground plane.
type Obstacle struct {
	Kind   Kind        `json:"kind" msgpack:"kind"`
	Circle geom.Circle `json:"circle" msgpack:"circle"`
}

// Field holds every obstacle of a map. It never changes after Generate, so
// one Field may be shared between readers.
type Field struct {
	obstacles []Obstacle
}

// New builds a field from explicit obstacles.
func New(obstacles ...Obstacle) *Field {
	return &Field{obstacles: append([]Obstacle(nil), obstacles...)}
}

// Generate scatters the configured trees and rocks over the central part of
// the map, leaving a clearing around the spawn point. Candidates landing in
// the clearing are dropped, not retried.
func Generate(cfg config.MapConfig, rng *rand.Rand) *Field {
	f := &Field{}
	span := cfg.Size * cfg.ObstacleField

	// trees
	for i := 0; i < cfg.Trees; i++ {
		p := scatter(span, rng)
		if math.Abs(p.X) < cfg.TreeClearing && math.Abs(p.Z) < cfg.TreeClearing {
			continue
		}
		scale := 0.8 + rng.Float64()*0.4
		f.obstacles = append(f.obstacles, Obstacle{Kind: Tree, Circle: geom.Circle{Center: p, Radius: 0.5 * scale}})
	}

	// rocks
	for i := 0; i < cfg.Rocks; i++ {
		p := scatter(span, rng)
		if math.Abs(p.X) < cfg.RockClearing && math.Abs(p.Z) < cfg.RockClearing {
			continue
		}
		scale := 0.5 + rng.Float64()*0.8
		f.obstacles = append(f.obstacles, Obstacle{Kind: Rock, Circle: geom.Circle{Center: p, Radius: 0.7 * scale}})
	}
	return f
}

func scatter(span float64, rng *rand.Rand) geom.Vec2 {
	return geom.Vec2{
		X: (rng.Float64() - 0.5) * span,
		Z: (rng.Float64() - 0.5) * span,
	}
}

// Obstacles returns a copy of the field for renderers.
func (f *Field) Obstacles() []Obstacle {
	return append([]Obstacle(nil), f.obstacles...)
}

// CheckCollision reports the first obstacle a body of radius r at p overlaps.
func (f *Field) CheckCollision(p geom.Vec2, r float64) (geom.Circle, bool) {
	for _, o := range f.obstacles {
		if o.Circle.Overlaps(p, r) {
			return o.Circle, true
		}
	}
	return geom.Circle{}, false
}

// ResolveCollision pushes p out of the first obstacle it overlaps, along the
// line from the obstacle centre. A body exactly on a centre is pushed along
// +X. The result may still touch a neighbouring obstacle.
func (f *Field) ResolveCollision(p geom.Vec2, r float64) (geom.Vec2, bool) {
	c, hit := f.CheckCollision(p, r)
	if !hit {
		return p, false
	}
	away := p.Sub(c.Center)
	dist := away.Len()
	overlap := r + c.Radius - dist
	if dist == 0 {
		return p.Add(geom.Vec2{X: overlap}), true
	}
	return p.Add(away.Scale(overlap / dist)), true
}
