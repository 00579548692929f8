package tile

import (
	"testing"

	"github.com/mraof/gbjam5/internal/core"
)

func newTestGrid(wrap bool) (*Grid, int) {
	cat := NewCatalog()
	solid := cat.Add(Tile{Visual: 1, Behavior: Solid{}})
	g := NewGrid(cat, 4, 3, wrap)
	for x := 0; x < 4; x++ {
		g.Set(core.Life, x, 0, solid)
	}
	g.Set(core.Death, 2, 2, solid)
	return g, solid
}

func TestGridOutOfBoundsIsBackground(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		g, _ := newTestGrid(wrap)
		coords := [][2]int{{-1, 0}, {4, 0}, {100, 1}, {-50, 2}}
		if !wrap {
			coords = append(coords, [2]int{0, -1}, [2]int{0, 3}, [2]int{1, 99})
		}
		for _, c := range coords {
			for _, v := range core.Versions {
				tl := g.At(v, c[0], c[1])
				if _, ok := tl.Behavior.(Background); !ok {
					t.Errorf("wrap=%v At(%v, %d, %d) = %T, expected Background", wrap, v, c[0], c[1], tl.Behavior)
				}
			}
		}
	}
}

func TestGridWraparoundRemapsY(t *testing.T) {
	g, solid := newTestGrid(true)

	tests := []struct {
		name string
		y    int
	}{
		{"one above top", 3},
		{"one below bottom", -3},
		{"far above", 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Index(core.Life, 1, tc.y); got != solid {
				t.Errorf("Index(life, 1, %d) = %d, expected %d", tc.y, got, solid)
			}
		})
	}

	// Wraparound never remaps x.
	if g.Index(core.Life, 5, 0) != Blank {
		t.Error("x should not wrap")
	}
}

func TestGridVersionsAreIndependent(t *testing.T) {
	g, _ := newTestGrid(false)

	if !g.At(core.Life, 0, 0).Solid() {
		t.Error("life (0,0) should be solid")
	}
	if g.At(core.Death, 0, 0).Solid() {
		t.Error("death (0,0) should be empty")
	}
	if !g.At(core.Death, 2, 2).Solid() {
		t.Error("death (2,2) should be solid")
	}
}

func TestGridAtPixel(t *testing.T) {
	g, _ := newTestGrid(false)

	if !g.SolidAt(core.Life, 15, 15) {
		t.Error("pixel (15,15) lies in tile (0,0)")
	}
	if g.SolidAt(core.Life, 15, 16) {
		t.Error("pixel (15,16) lies in tile (0,1)")
	}
	if g.SolidAt(core.Life, 0, -1) {
		t.Error("pixel y=-1 is below the grid")
	}
}

func TestTileVisualFor(t *testing.T) {
	door := Tile{Visual: 5, Behavior: Door{Target: "next", Closed: 6}}
	if door.VisualFor(false) != 6 || door.VisualFor(true) != 5 {
		t.Errorf("door visuals = %d/%d, expected 6/5", door.VisualFor(false), door.VisualFor(true))
	}

	kb := Tile{Visual: 2, Behavior: KeyBackground{Closed: 3}}
	if kb.VisualFor(false) != 3 {
		t.Errorf("locked key background visual = %d, expected 3", kb.VisualFor(false))
	}

	plain := Tile{Visual: 4, Behavior: Solid{}}
	if plain.VisualFor(false) != 4 {
		t.Error("plain tiles ignore the lock state")
	}
}

func TestIsSolid(t *testing.T) {
	tests := []struct {
		b     Behavior
		solid bool
	}{
		{Background{}, false},
		{Solid{}, true},
		{Door{}, false},
		{KeyBackground{}, false},
		{Checkpoint{}, false},
		{Switch{}, false},
		{SwitchBlock{}, true},
		{Arrow{Dir: core.DirLeft}, false},
	}
	for _, tc := range tests {
		if IsSolid(tc.b) != tc.solid {
			t.Errorf("IsSolid(%s) = %v, expected %v", Name(tc.b), !tc.solid, tc.solid)
		}
	}
}

func TestCatalogBlankAndUnknown(t *testing.T) {
	cat := NewCatalog()
	if cat.Len() != 1 {
		t.Fatalf("new catalog length = %d, expected 1", cat.Len())
	}
	if cat.Get(Blank) != BlankTile {
		t.Error("index 0 should be the blank tile")
	}
	if cat.Get(42) != BlankTile {
		t.Error("unknown index should be the blank tile")
	}
}
