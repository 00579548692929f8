package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	isolate(t)
	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != "embedded" {
		t.Errorf("source = %q, expected embedded", source)
	}
	want := DefaultConfig()
	if cfg.Game != want.Game || cfg.SSH != want.SSH || cfg.Window != want.Window || cfg.Input != want.Input {
		t.Errorf("embedded config %+v differs from DefaultConfig %+v", cfg, want)
	}
	if strings.Join(cfg.Palettes.Life, ",") != strings.Join(want.Palettes.Life, ",") {
		t.Errorf("life palette = %v", cfg.Palettes.Life)
	}
}

func TestSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeConfig(t, filepath.Join(work, "configs", FileName), "game:\n  start_level: Local\n")
	cfg, source, err := LoadWithSource("")
	if err != nil || cfg.Game.StartLevel != "Local" {
		t.Fatalf("local config: %q from %s, %v", cfg.Game.StartLevel, source, err)
	}

	writeConfig(t, filepath.Join(home, ".gbjam5", "configs", FileName), "game:\n  start_level: User\n")
	cfg, _, _ = LoadWithSource("")
	if cfg.Game.StartLevel != "User" {
		t.Errorf("user config should win over local, got %q", cfg.Game.StartLevel)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeConfig(t, custom, "game:\n  start_level: Custom\n")
	cfg, source, _ = LoadWithSource(custom)
	if cfg.Game.StartLevel != "Custom" || source != custom {
		t.Errorf("custom config should win, got %q from %s", cfg.Game.StartLevel, source)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "partial.yaml")
	writeConfig(t, path, "audio:\n  enabled: true\nssh:\n  idle_timeout: 90s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.Audio.Enabled || cfg.Audio.Volume != 0.5 {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("idle timeout = %v", cfg.SSH.IdleTimeout)
	}
	if cfg.Game.TickRate != 50 || cfg.SSH.Address != ":23234" {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestCustomPathErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "game: [\n"},
		{"bad palette", "palettes:\n  life: [\"#000000\"]\n"},
		{"bad colour", "palettes:\n  death: [\"#zzzzzz\", \"#000000\", \"#000000\", \"#000000\"]\n"},
		{"negative tick rate", "game:\n  tick_rate: -1\n"},
		{"loud", "audio:\n  volume: 2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(work, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			writeConfig(t, path, tc.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%s) succeeded, expected error", tc.name)
			}
		})
	}
}

func TestBrokenUserConfigFallsThrough(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, filepath.Join(home, ".gbjam5", "configs", FileName), "game: [\n")
	_, source, err := LoadWithSource("")
	if err != nil || source != "embedded" {
		t.Errorf("broken user config should be skipped: source %q, err %v", source, err)
	}
}

func TestRuntimeAndHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.TickRate = 0
	cfg.Game.StartLevel = "Key_Level"
	rc := cfg.Runtime()
	if rc.TickRate != 50 || rc.StartLevel != "Key_Level" {
		t.Errorf("Runtime() = %+v", rc)
	}
	if rc.TickInterval() != 20*time.Millisecond {
		t.Errorf("TickInterval() = %v", rc.TickInterval())
	}

	cfg.Input.HoldMS = 0
	if cfg.HoldWindow() != DefaultHoldWindow {
		t.Errorf("HoldWindow() = %v", cfg.HoldWindow())
	}

	life, death, err := cfg.ParsePalettes()
	if err != nil {
		t.Fatalf("ParsePalettes() failed: %v", err)
	}
	if life[0].Hex() != "#0f380f" || death[3].Hex() != "#c8c0d8" {
		t.Errorf("palettes = %v / %v", life, death)
	}

	t.Setenv("HOME", "/home/tester")
	if got := ExpandHome("~/x.db"); got != filepath.Join("/home/tester", "x.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("ExpandHome(abs) = %q", got)
	}
}
