package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if cfg.Day.FirstDuration != want.Day.FirstDuration || cfg.Spawn.MaxMonsters != want.Spawn.MaxMonsters {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesAndEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/x.db")

	path := filepath.Join(t.TempDir(), "game.yaml")
	body := "day:\n  duration: 45\nspawn:\n  max_monsters: 12\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Day.Duration != 45 {
		t.Fatalf("day duration = %v, want 45", cfg.Day.Duration)
	}
	if cfg.Spawn.MaxMonsters != 12 {
		t.Fatalf("max monsters = %d, want 12", cfg.Spawn.MaxMonsters)
	}
	if cfg.Day.FirstDuration != 30 {
		t.Fatalf("unset keys should keep defaults, first day = %v", cfg.Day.FirstDuration)
	}
	if cfg.Server.Port != "9090" || cfg.Server.DatabaseURL != "sqlite:/tmp/x.db" {
		t.Fatalf("env overrides not applied: %+v", cfg.Server)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("day: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestClampBounds(t *testing.T) {
	cfg := Default()
	cfg.Spawn.MaxMonsters = -4
	cfg.Spawn.MinInterval = 0
	cfg.Spawn.BaseInterval = 0
	cfg.Day.Duration = 1
	cfg.Day.MinDuration = 30
	cfg.Server.Codec = "xml"

	Clamp(&cfg)

	if cfg.Spawn.MaxMonsters != 1 {
		t.Fatalf("max monsters = %d, want 1", cfg.Spawn.MaxMonsters)
	}
	if cfg.Spawn.MinInterval <= 0 || cfg.Spawn.BaseInterval < cfg.Spawn.MinInterval {
		t.Fatalf("intervals not clamped: %+v", cfg.Spawn)
	}
	if cfg.Day.Duration < cfg.Day.MinDuration {
		t.Fatalf("day duration %v below minimum %v", cfg.Day.Duration, cfg.Day.MinDuration)
	}
	if cfg.Server.Codec != "json" {
		t.Fatalf("codec = %q, want json", cfg.Server.Codec)
	}
}

func TestClampKeepsDefaults(t *testing.T) {
	cfg := Default()
	Clamp(&cfg)
	if cfg != Default() {
		t.Fatalf("defaults changed by clamp:\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestSchemaDescribesSections(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not json: %v", err)
	}
	for _, key := range []string{"server", "spawn", "day", "progression"} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Fatalf("schema missing %q section", key)
		}
	}
}
