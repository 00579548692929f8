// Package level parses level text into a Definition: the tile catalog and
// two-version grid, the visuals they reference, background layers and the
// entity spawn list.
package level

import (
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
	"github.com/mraof/gbjam5/internal/tile"
)

// Lookup resolves sprite sheet names.
type Lookup interface {
	Sheet(name string) (*sprite.Sheet, bool)
}

// BlankVisual is the sheet behind visual id 0.
const BlankVisual = "tiles/blank"

// DefaultKeySheet is used by key legend lines without a sprite argument.
const DefaultKeySheet = "items/key"

// Default player spawn when the level has no player legend character.
const (
	DefaultSpawnX = 0
	DefaultSpawnY = 5 * core.TileSize
)

// Definition is the immutable result of parsing a level.
type Definition struct {
	Name        string
	Grid        *tile.Grid
	Visuals     []*sprite.Sheet // indexed by visual id
	VisualNames []string
	Backgrounds []*sprite.Sheet
	Spawns      []Spawn
	SpawnX      int // player spawn, pixels
	SpawnY      int
	KeyTotal    int
}

// Spawn places one non-player entity.
type Spawn struct {
	X, Y    int // pixels, bottom-left
	Version core.Version
	Kind    Kind
}

// Kind is the closed set of spawnable entity templates.
type Kind interface {
	isKind()
}

// EnemyKind is a pacing enemy. Sheets holds the alive sheet at core.Life and
// the dead sheet at core.Death.
type EnemyKind struct {
	Sheets    [2]*sprite.Sheet
	Dir       core.Direction
	Collision bool
	Gravity   bool
	Deadly    bool
}

// KeyKind is a collectible key.
type KeyKind struct {
	Sheet *sprite.Sheet
}

func (EnemyKind) isKind() {}
func (KeyKind) isKind()   {}

// playerKind marks the spawn point in the entity legend; it never reaches
// Definition.Spawns.
type playerKind struct{}

func (playerKind) isKind() {}
