package tile

import "github.com/mraof/gbjam5/internal/core"

// Grid stores both world versions of a level as catalog indices.
// Row 0 is the bottom row.
type Grid struct {
	Width  int
	Height int
	Wrap   bool // vertical wraparound

	catalog *Catalog
	cells   [2][]int
}

// NewGrid creates a grid filled with the blank tile.
func NewGrid(catalog *Catalog, width, height int, wrap bool) *Grid {
	g := &Grid{Width: width, Height: height, Wrap: wrap, catalog: catalog}
	for _, v := range core.Versions {
		g.cells[v] = make([]int, width*height)
	}
	return g
}

// Catalog returns the arena backing the grid.
func (g *Grid) Catalog() *Catalog {
	return g.catalog
}

// Set stores a catalog index. Out-of-bounds writes are ignored.
func (g *Grid) Set(v core.Version, x, y, idx int) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.cells[v][y*g.Width+x] = idx
}

// Index returns the catalog index at a tile coordinate, or Blank when the
// coordinate is outside the grid. Wraparound grids remap y first.
func (g *Grid) Index(v core.Version, x, y int) int {
	if g.Wrap && g.Height > 0 {
		y = core.Mod(y, g.Height)
	}
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Blank
	}
	return g.cells[v][y*g.Width+x]
}

// At returns the tile at a tile coordinate. It never fails: outside the grid
// it returns BlankTile.
func (g *Grid) At(v core.Version, x, y int) Tile {
	return g.catalog.Get(g.Index(v, x, y))
}

// AtPixel returns the tile covering a world pixel.
func (g *Grid) AtPixel(v core.Version, px, py int) Tile {
	return g.At(v, core.FloorDiv(px, core.TileSize), core.FloorDiv(py, core.TileSize))
}

// SolidAt reports whether the pixel lies in a solid tile.
func (g *Grid) SolidAt(v core.Version, px, py int) bool {
	return g.AtPixel(v, px, py).Solid()
}

// PixelHeight returns the grid height in pixels.
func (g *Grid) PixelHeight() int {
	return g.Height * core.TileSize
}

// PixelWidth returns the grid width in pixels.
func (g *Grid) PixelWidth() int {
	return g.Width * core.TileSize
}
