package config

import "math"

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if math.IsNaN(v) {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// Clamp enforces hard safety bounds in place so hand-edited YAML cannot
// produce a run that divides by zero or spawns without limit.
func Clamp(cfg *Config) {
	if cfg == nil {
		return
	}

	// --- server ---
	cfg.Server.TickRate = clampInt(cfg.Server.TickRate, 10, 120)
	cfg.Server.MaxFrameDelta = clampFloat(cfg.Server.MaxFrameDelta, 0.01, 0.5)
	if cfg.Server.Codec != "msgpack" {
		cfg.Server.Codec = "json"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	// --- map ---
	cfg.Map.Size = clampFloat(cfg.Map.Size, 10, 500)
	cfg.Map.Trees = clampInt(cfg.Map.Trees, 0, 500)
	cfg.Map.Rocks = clampInt(cfg.Map.Rocks, 0, 500)
	cfg.Map.TreeClearing = clampFloat(cfg.Map.TreeClearing, 0, cfg.Map.Size/4)
	cfg.Map.RockClearing = clampFloat(cfg.Map.RockClearing, 0, cfg.Map.Size/4)
	cfg.Map.ObstacleField = clampFloat(cfg.Map.ObstacleField, 0, 1)

	// --- day ---
	cfg.Day.MinDuration = clampFloat(cfg.Day.MinDuration, 5, 600)
	cfg.Day.Duration = clampFloat(cfg.Day.Duration, cfg.Day.MinDuration, 600)
	cfg.Day.FirstDuration = clampFloat(cfg.Day.FirstDuration, 5, 600)
	cfg.Day.TimeWarpPerLvl = clampFloat(cfg.Day.TimeWarpPerLvl, 0, 30)
	cfg.Day.SafeDays = clampInt(cfg.Day.SafeDays, 0, 100)
	cfg.Day.LowHealthFraction = clampFloat(cfg.Day.LowHealthFraction, 0, 1)

	// --- player ---
	cfg.Player.Speed = clampFloat(cfg.Player.Speed, 0.5, 50)
	cfg.Player.Radius = clampFloat(cfg.Player.Radius, 0.1, 5)
	cfg.Player.AttackRange = clampFloat(cfg.Player.AttackRange, 0.5, 20)
	cfg.Player.AttackCooldown = clampFloat(cfg.Player.AttackCooldown, 0.05, 5)
	cfg.Player.FallbackRadius = clampFloat(cfg.Player.FallbackRadius, 0, cfg.Player.AttackRange)
	cfg.Player.HitInvincibility = clampFloat(cfg.Player.HitInvincibility, 0, 5)
	cfg.Player.KnockbackDistance = clampFloat(cfg.Player.KnockbackDistance, 0, 10)
	cfg.Player.KnockbackDuration = clampFloat(cfg.Player.KnockbackDuration, 0.01, 2)
	cfg.Player.DashDuration = clampFloat(cfg.Player.DashDuration, 0.01, 2)
	cfg.Player.DashSamples = clampInt(cfg.Player.DashSamples, 1, 100)

	// --- spawn ---
	cfg.Spawn.MinRadius = clampFloat(cfg.Spawn.MinRadius, 1, cfg.Map.Size)
	cfg.Spawn.MaxRadius = clampFloat(cfg.Spawn.MaxRadius, cfg.Spawn.MinRadius, cfg.Map.Size)
	cfg.Spawn.MinInterval = clampFloat(cfg.Spawn.MinInterval, 0.1, 60)
	cfg.Spawn.BaseInterval = clampFloat(cfg.Spawn.BaseInterval, cfg.Spawn.MinInterval, 60)
	cfg.Spawn.IntervalDecay = clampFloat(cfg.Spawn.IntervalDecay, 0, 10)
	cfg.Spawn.MaxMonsters = clampInt(cfg.Spawn.MaxMonsters, 1, 500)
	cfg.Spawn.DoubleSpawnChance = clampFloat(cfg.Spawn.DoubleSpawnChance, 0, 1)
	cfg.Spawn.DeathAnimation = clampFloat(cfg.Spawn.DeathAnimation, 0, 5)
	cfg.Spawn.ExplosionRadius = clampFloat(cfg.Spawn.ExplosionRadius, 0, 20)
	cfg.Spawn.ExplosionDamage = clampFloat(cfg.Spawn.ExplosionDamage, 0, 1000)
	cfg.Spawn.ExplosionPerLevel = clampFloat(cfg.Spawn.ExplosionPerLevel, 0, 1)

	// --- artifacts ---
	cfg.Artifacts.Crystals = clampInt(cfg.Artifacts.Crystals, 0, 100)
	cfg.Artifacts.Chests = clampInt(cfg.Artifacts.Chests, 0, 100)
	cfg.Artifacts.Fountains = clampInt(cfg.Artifacts.Fountains, 0, 100)
	cfg.Artifacts.Altars = clampInt(cfg.Artifacts.Altars, 0, 100)
	cfg.Artifacts.Grass = clampInt(cfg.Artifacts.Grass, 0, 500)
	cfg.Artifacts.ContactRadius = clampFloat(cfg.Artifacts.ContactRadius, 0.1, 10)
	cfg.Artifacts.Spread = clampFloat(cfg.Artifacts.Spread, 0, 1)

	// --- progression ---
	cfg.Progression.LevelCap = clampInt(cfg.Progression.LevelCap, 1, 100)
	cfg.Progression.ChoiceCount = clampInt(cfg.Progression.ChoiceCount, 1, 6)
	cfg.Progression.FallbackExpStep = clampInt(cfg.Progression.FallbackExpStep, 1, 100000)
}
