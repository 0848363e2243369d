package terrain

import (
	"math"
	"math/rand"
	"testing"

	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/geom"
)

func TestGenerateKeepsClearing(t *testing.T) {
	cfg := config.Default().Map
	f := Generate(cfg, rand.New(rand.NewSource(42)))

	obs := f.Obstacles()
	if len(obs) == 0 || len(obs) > cfg.Trees+cfg.Rocks {
		t.Fatalf("got %d obstacles", len(obs))
	}
	limit := cfg.Size * cfg.ObstacleField / 2
	for _, o := range obs {
		p := o.Circle.Center
		clearing := cfg.RockClearing
		if o.Kind == Tree {
			clearing = cfg.TreeClearing
		}
		if math.Abs(p.X) < clearing && math.Abs(p.Z) < clearing {
			t.Fatalf("%s at %+v inside spawn clearing", o.Kind, p)
		}
		if math.Abs(p.X) > limit || math.Abs(p.Z) > limit {
			t.Fatalf("%s at %+v outside obstacle field", o.Kind, p)
		}
	}
	if _, hit := f.CheckCollision(geom.Vec2{}, 0.5); hit {
		t.Fatalf("spawn point blocked")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config.Default().Map
	a := Generate(cfg, rand.New(rand.NewSource(7))).Obstacles()
	b := Generate(cfg, rand.New(rand.NewSource(7))).Obstacles()
	if len(a) != len(b) {
		t.Fatalf("len %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCheckCollision(t *testing.T) {
	f := New(Obstacle{Kind: Rock, Circle: geom.Circle{Center: geom.Vec2{X: 3}, Radius: 1}})
	tests := []struct {
		p    geom.Vec2
		want bool
	}{
		{geom.Vec2{X: 1.4}, true},
		{geom.Vec2{X: 1.5}, false},
		{geom.Vec2{X: 3, Z: 1.2}, true},
		{geom.Vec2{}, false},
	}
	for _, tt := range tests {
		if _, got := f.CheckCollision(tt.p, 0.5); got != tt.want {
			t.Fatalf("collision at %+v = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestResolveCollisionPushesOut(t *testing.T) {
	f := New(Obstacle{Kind: Tree, Circle: geom.Circle{Center: geom.Vec2{X: 3}, Radius: 1}})

	p, moved := f.ResolveCollision(geom.Vec2{X: 2}, 0.5)
	if !moved || math.Abs(p.X-1.5) > 1e-9 || p.Z != 0 {
		t.Fatalf("resolved to %+v moved=%v, want (1.5, 0)", p, moved)
	}

	p, moved = f.ResolveCollision(geom.Vec2{X: 3}, 0.5)
	if !moved || math.Abs(p.X-4.5) > 1e-9 {
		t.Fatalf("centre case resolved to %+v", p)
	}

	free := geom.Vec2{X: -5}
	if p, moved = f.ResolveCollision(free, 0.5); moved || p != free {
		t.Fatalf("free point moved to %+v", p)
	}
}
