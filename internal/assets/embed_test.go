package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if b.Dir() != "" {
		t.Errorf("Dir() = %q, expected empty", b.Dir())
	}

	for _, name := range []string{"tiles/blank", "fade/fade", "menu/title", "player/life_stand", "items/key", "bg/hills_0"} {
		if _, ok := b.Sheet(name); !ok {
			t.Errorf("embedded sheet %s missing", name)
		}
	}

	levels := b.Levels()
	found := false
	for _, name := range levels {
		if name == "Death_Jumping_Level" {
			found = true
		}
	}
	if !found {
		t.Errorf("Levels() = %v, expected Death_Jumping_Level", levels)
	}

	if _, err := b.LevelText("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LevelText(nope) error = %v, expected ErrNotFound", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const overrideSheet = `sheets:
  - name: tiles/ground
    frames:
      - rows: ["0"]
`

func TestLoadOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "levels", "Custom.txt"), "ENTITY\nLEVEL\n\n1,1\n")
	writeFile(t, filepath.Join(dir, "sprites", "extra.yaml"), overrideSheet)
	writeFile(t, filepath.Join(dir, "sprites", "notes.md"), "ignored")

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	text, err := b.LevelText("Custom")
	if err != nil || text == "" {
		t.Errorf("LevelText(Custom) = %q, %v", text, err)
	}
	ground, ok := b.Sheet("tiles/ground")
	if !ok || ground.Frames[0].W != 1 {
		t.Error("disk sheet should replace the embedded one")
	}
	if _, ok := b.Sheet("player/life_stand"); !ok {
		t.Error("embedded sheets should remain")
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Load() should fail for a missing directory")
	}
}

func TestLoadBadSheet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sprites", "broken.yaml"), "sheets:\n  - name: x\n")
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on a broken sheet")
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	levelPath := filepath.Join(dir, "levels", "Live.txt")
	writeFile(t, levelPath, "first")

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	writeFile(t, levelPath, "second")
	if err := b.Reload(levelPath); err != nil {
		t.Fatalf("Reload(abs) failed: %v", err)
	}
	if text, _ := b.LevelText("Live"); text != "second" {
		t.Errorf("after absolute reload text = %q", text)
	}

	writeFile(t, levelPath, "third")
	if err := b.Reload(filepath.Join("levels", "Live.txt")); err != nil {
		t.Fatalf("Reload(rel) failed: %v", err)
	}
	if text, _ := b.LevelText("Live"); text != "third" {
		t.Errorf("after relative reload text = %q", text)
	}

	embedded, _ := Load("")
	if err := embedded.Reload("levels/x.txt"); err == nil {
		t.Error("Reload() without a directory should fail")
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	levelPath := filepath.Join(dir, "levels", "Live.txt")
	writeFile(t, levelPath, "first")

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "levels", "notes.md"), "ignored")
	writeFile(t, levelPath, "second")

	select {
	case p := <-w.Events:
		if filepath.Base(p) != "Live.txt" {
			t.Errorf("event for %s, expected Live.txt", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherNeedsDirectories(t *testing.T) {
	if _, err := NewWatcher(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewWatcher(empty) error = %v, expected os.ErrNotExist", err)
	}
}
