// Package assets provides the sprite sheets and level texts the game is built
// from. Everything ships embedded; an optional directory on disk overrides
// embedded files of the same name, which is how levels are edited live.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mraof/gbjam5/internal/sprite"
)

//go:embed levels/*.txt sprites/*.yaml
var embedded embed.FS

// ErrNotFound is returned for unknown level or sheet names.
var ErrNotFound = errors.New("assets: not found")

// Bundle is a read-mostly dictionary of sheets and level texts.
type Bundle struct {
	mu     sync.RWMutex
	dir    string
	sheets map[string]*sprite.Sheet
	levels map[string]string
}

// Load reads the embedded assets and then, when dir is not empty, the files
// under dir/sprites and dir/levels on top of them.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{
		dir:    dir,
		sheets: make(map[string]*sprite.Sheet),
		levels: make(map[string]string),
	}

	if err := b.loadFS(embedded); err != nil {
		return nil, err
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("assets: override directory: %w", err)
		}
		b.dir = abs
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("assets: override directory: %w", err)
		}
		if err := b.loadFS(os.DirFS(abs)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// loadFS reads sprites/** and levels/** from fsys. Missing directories are fine.
func (b *Bundle) loadFS(fsys fs.FS) error {
	for _, root := range []string{"sprites", "levels"} {
		err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("assets: read %s: %w", p, err)
			}
			return b.add(p, data)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// add files one asset by its slash-separated path relative to the asset root.
func (b *Bundle) add(p string, data []byte) error {
	ext := strings.ToLower(path.Ext(p))
	name := strings.TrimSuffix(p, path.Ext(p))

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case strings.HasPrefix(p, "levels/") && ext == ".txt":
		b.levels[strings.TrimPrefix(name, "levels/")] = string(data)
	case strings.HasPrefix(p, "sprites/") && (ext == ".yaml" || ext == ".yml"):
		sheets, err := DecodeSheets(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		for _, s := range sheets {
			b.sheets[s.Name] = s
		}
	case strings.HasPrefix(p, "sprites/") && ext == ".gif":
		sheetName := strings.TrimPrefix(name, "sprites/")
		sheet, err := DecodeGIF(sheetName, bytes.NewReader(data))
		if err != nil {
			return err
		}
		b.sheets[sheetName] = sheet
	}
	return nil
}

// Reload re-reads one file from the override directory. The path may be
// absolute or relative to it.
func (b *Bundle) Reload(file string) error {
	if b.dir == "" {
		return fmt.Errorf("assets: no override directory")
	}
	rel := file
	if r, err := filepath.Rel(b.dir, file); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}
	data, err := os.ReadFile(filepath.Join(b.dir, rel))
	if err != nil {
		return fmt.Errorf("assets: reload %s: %w", rel, err)
	}
	return b.add(filepath.ToSlash(rel), data)
}

// Dir returns the override directory, or "" when there is none.
func (b *Bundle) Dir() string {
	return b.dir
}

// Sheet looks up a sprite sheet by name, e.g. "player/life_walk".
func (b *Bundle) Sheet(name string) (*sprite.Sheet, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.sheets[name]
	return s, ok
}

// LevelText returns the raw text of a level.
func (b *Bundle) LevelText(name string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	text, ok := b.levels[name]
	if !ok {
		return "", fmt.Errorf("%w: level %q", ErrNotFound, name)
	}
	return text, nil
}

// Levels returns the sorted level names.
func (b *Bundle) Levels() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.levels))
	for name := range b.levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SheetNames returns the sorted sheet names.
func (b *Bundle) SheetNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.sheets))
	for name := range b.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
