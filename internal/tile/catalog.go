package tile

// Blank is the catalog index of the empty background tile.
const Blank = 0

// Tile is an immutable tile definition.
type Tile struct {
	Visual   int // visual id; the open visual for doors and key backgrounds
	Behavior Behavior
}

// BlankTile is the synthetic tile returned for out-of-bounds lookups.
var BlankTile = Tile{Visual: 0, Behavior: Background{}}

// VisualFor returns the visual to draw. Locked doors and key backgrounds use
// their closed visual.
func (t Tile) VisualFor(unlocked bool) int {
	if unlocked {
		return t.Visual
	}
	switch b := t.Behavior.(type) {
	case Door:
		return b.Closed
	case KeyBackground:
		return b.Closed
	}
	return t.Visual
}

// Solid reports whether the tile blocks movement.
func (t Tile) Solid() bool {
	return IsSolid(t.Behavior)
}

// Catalog is an arena of tile definitions. Index Blank always holds BlankTile.
type Catalog struct {
	tiles []Tile
}

// NewCatalog creates a catalog seeded with the blank tile.
func NewCatalog() *Catalog {
	return &Catalog{tiles: []Tile{BlankTile}}
}

// Add appends a definition and returns its index.
func (c *Catalog) Add(t Tile) int {
	c.tiles = append(c.tiles, t)
	return len(c.tiles) - 1
}

// Get returns the definition at idx, or BlankTile for an unknown index.
func (c *Catalog) Get(idx int) Tile {
	if idx < 0 || idx >= len(c.tiles) {
		return BlankTile
	}
	return c.tiles[idx]
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.tiles)
}
