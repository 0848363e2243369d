package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a run plus the server deployment values.
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	Map         MapConfig         `yaml:"map" json:"map"`
	Day         DayConfig         `yaml:"day" json:"day"`
	Player      PlayerConfig      `yaml:"player" json:"player"`
	Spawn       SpawnConfig       `yaml:"spawn" json:"spawn"`
	Artifacts   ArtifactConfig    `yaml:"artifacts" json:"artifacts"`
	Progression ProgressionConfig `yaml:"progression" json:"progression"`
}

type ServerConfig struct {
	Port          string  `yaml:"port" json:"port" jsonschema:"description=HTTP listen port"`
	DatabaseURL   string  `yaml:"database_url" json:"database_url" jsonschema:"description=Account store location: postgres:// or sqlite: or file: URL"`
	TickRate      int     `yaml:"tick_rate" json:"tick_rate" jsonschema:"minimum=10,maximum=120"`
	MaxFrameDelta float64 `yaml:"max_frame_delta" json:"max_frame_delta" jsonschema:"description=Largest delta in seconds a single tick may advance"`
	Codec         string  `yaml:"codec" json:"codec" jsonschema:"enum=json,enum=msgpack"`
}

type MapConfig struct {
	Size          float64 `yaml:"size" json:"size"`
	Trees         int     `yaml:"trees" json:"trees"`
	Rocks         int     `yaml:"rocks" json:"rocks"`
	TreeClearing  float64 `yaml:"tree_clearing" json:"tree_clearing" jsonschema:"description=Half-width of the obstacle-free square around spawn for trees"`
	RockClearing  float64 `yaml:"rock_clearing" json:"rock_clearing"`
	ObstacleField float64 `yaml:"obstacle_field" json:"obstacle_field" jsonschema:"description=Fraction of the map obstacles are scattered over"`
}

type DayConfig struct {
	FirstDuration     float64 `yaml:"first_duration" json:"first_duration"`
	Duration          float64 `yaml:"duration" json:"duration"`
	MinDuration       float64 `yaml:"min_duration" json:"min_duration"`
	TimeWarpPerLvl    float64 `yaml:"time_warp_per_level" json:"time_warp_per_level"`
	SafeDays          int     `yaml:"safe_days" json:"safe_days"`
	LowHealthFraction float64 `yaml:"low_health_fraction" json:"low_health_fraction"`
}

type PlayerConfig struct {
	Speed             float64 `yaml:"speed" json:"speed"`
	Radius            float64 `yaml:"radius" json:"radius"`
	AttackRange       float64 `yaml:"attack_range" json:"attack_range"`
	AttackCooldown    float64 `yaml:"attack_cooldown" json:"attack_cooldown"`
	FallbackRadius    float64 `yaml:"fallback_radius" json:"fallback_radius"`
	HitInvincibility  float64 `yaml:"hit_invincibility" json:"hit_invincibility"`
	KnockbackDistance float64 `yaml:"knockback_distance" json:"knockback_distance"`
	KnockbackDuration float64 `yaml:"knockback_duration" json:"knockback_duration"`
	DashDuration      float64 `yaml:"dash_duration" json:"dash_duration"`
	DashSamples       int     `yaml:"dash_samples" json:"dash_samples"`
}

type SpawnConfig struct {
	MinRadius         float64 `yaml:"min_radius" json:"min_radius"`
	MaxRadius         float64 `yaml:"max_radius" json:"max_radius"`
	BaseInterval      float64 `yaml:"base_interval" json:"base_interval"`
	MinInterval       float64 `yaml:"min_interval" json:"min_interval"`
	IntervalDecay     float64 `yaml:"interval_decay" json:"interval_decay" jsonschema:"description=Seconds removed from the interval per day past the first spawning day"`
	MaxMonsters       int     `yaml:"max_monsters" json:"max_monsters"`
	DoubleSpawnChance float64 `yaml:"double_spawn_chance" json:"double_spawn_chance"`
	DeathAnimation    float64 `yaml:"death_animation" json:"death_animation"`
	ExplosionRadius   float64 `yaml:"explosion_radius" json:"explosion_radius"`
	ExplosionDamage   float64 `yaml:"explosion_damage" json:"explosion_damage"`
	ExplosionPerLevel float64 `yaml:"explosion_per_level" json:"explosion_per_level"`
}

type ArtifactConfig struct {
	Crystals      int     `yaml:"crystals" json:"crystals"`
	Chests        int     `yaml:"chests" json:"chests"`
	Fountains     int     `yaml:"fountains" json:"fountains"`
	Altars        int     `yaml:"altars" json:"altars"`
	Grass         int     `yaml:"grass" json:"grass"`
	ContactRadius float64 `yaml:"contact_radius" json:"contact_radius"`
	Spread        float64 `yaml:"spread" json:"spread"`
}

type ProgressionConfig struct {
	LevelCap        int `yaml:"level_cap" json:"level_cap"`
	ChoiceCount     int `yaml:"choice_count" json:"choice_count"`
	FallbackExpStep int `yaml:"fallback_exp_step" json:"fallback_exp_step"`
}

// Default returns the shipped balance.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8080",
			TickRate:      30,
			MaxFrameDelta: 0.1,
			Codec:         "json",
		},
		Map: MapConfig{
			Size:          50,
			Trees:         30,
			Rocks:         20,
			TreeClearing:  5,
			RockClearing:  3,
			ObstacleField: 0.9,
		},
		Day: DayConfig{
			FirstDuration:     30,
			Duration:          60,
			MinDuration:       30,
			TimeWarpPerLvl:    3,
			SafeDays:          1,
			LowHealthFraction: 0.25,
		},
		Player: PlayerConfig{
			Speed:             8,
			Radius:            0.5,
			AttackRange:       2.5,
			AttackCooldown:    0.4,
			FallbackRadius:    1.5,
			HitInvincibility:  0.5,
			KnockbackDistance: 0.5,
			KnockbackDuration: 0.15,
			DashDuration:      0.2,
			DashSamples:       10,
		},
		Spawn: SpawnConfig{
			MinRadius:         10,
			MaxRadius:         20,
			BaseInterval:      3.0,
			MinInterval:       1.0,
			IntervalDecay:     0.2,
			MaxMonsters:       30,
			DoubleSpawnChance: 0.3,
			DeathAnimation:    0.3,
			ExplosionRadius:   3,
			ExplosionDamage:   20,
			ExplosionPerLevel: 0.1,
		},
		Artifacts: ArtifactConfig{
			Crystals:      5,
			Chests:        3,
			Fountains:     1,
			Altars:        1,
			Grass:         20,
			ContactRadius: 2,
			Spread:        0.8,
		},
		Progression: ProgressionConfig{
			LevelCap:        20,
			ChoiceCount:     3,
			FallbackExpStep: 100,
		},
	}
}

// HalfExtent is the largest absolute coordinate an entity may occupy.
func (m MapConfig) HalfExtent() float64 {
	return m.Size/2 - 1
}

// TickInterval converts the tick rate into a ticker period.
func (s ServerConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(s.TickRate)
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	Clamp(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Server.DatabaseURL = dsn
	}
}
