package core

import "testing"

func TestNewScreen(t *testing.T) {
	s := NewScreen(ScreenW, ScreenH)

	if s.Width() != 160 {
		t.Errorf("Width() = %d, expected 160", s.Width())
	}
	if s.Height() != 144 {
		t.Errorf("Height() = %d, expected 144", s.Height())
	}

	// Check that it's initialized with the background shade
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != 3 {
				t.Fatalf("New screen should be filled with shade 3, got %d at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 1)
	if s.Get(5, 5) != 1 {
		t.Errorf("Get(5, 5) = %d, expected 1", s.Get(5, 5))
	}

	// Transparent writes leave the pixel alone
	s.Set(5, 5, Transparent)
	if s.Get(5, 5) != 1 {
		t.Errorf("transparent Set changed pixel to %d", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 0)  // Should not panic
	s.Set(100, 0, 0) // Should not panic
	s.Set(0, -1, 0)  // Should not panic
	s.Set(0, 100, 0) // Should not panic

	if s.Get(-1, 0) != 3 {
		t.Error("Out of bounds Get should return the background shade")
	}
}

func TestScreenFillAndRow(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill(2)
	s.Set(1, 3, 0)

	row := s.Row(3)
	if len(row) != 5 {
		t.Fatalf("Row() length = %d, expected 5", len(row))
	}
	if row[1] != 0 || row[0] != 2 {
		t.Errorf("Row(3) = %v, expected [2 0 2 2 2]", row)
	}

	s.Clear()
	if s.Get(1, 3) != 3 {
		t.Error("Clear should reset to the background shade")
	}
}

func TestPaletteDarkenAndLerp(t *testing.T) {
	p, err := ParsePalette([]string{"#000000", "#555555", "#aaaaaa", "#ffffff"})
	if err != nil {
		t.Fatalf("ParsePalette() failed: %v", err)
	}

	d := p.Darken()
	if d[3] != p[2] || d[0] != p[0] {
		t.Errorf("Darken() = %v", d)
	}

	white, _ := ParsePalette([]string{"#ffffff", "#ffffff", "#ffffff", "#ffffff"})
	half := p.Lerp(white, 0.5)
	if half[0].Hex() != "#808080" {
		t.Errorf("Lerp(0.5)[0] = %s, expected #808080", half[0].Hex())
	}

	if _, err := ParsePalette([]string{"#000000"}); err == nil {
		t.Error("ParsePalette with one colour should fail")
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Error("ParseColor(#zzzzzz) should fail")
	}
}

func TestInputFrame(t *testing.T) {
	f := Press(ButtonLeft, ButtonStart)
	if !f.Has(ButtonLeft) || !f.Has(ButtonStart) || f.Has(ButtonA) {
		t.Fatalf("Press() frame = %v", f.Buttons)
	}

	clone := f.Clone()
	f.Release(ButtonStart)
	if f.Has(ButtonStart) {
		t.Error("Release should drop the button")
	}
	if !clone.Has(ButtonStart) {
		t.Error("Clone should not share state")
	}

	f.Clear()
	if f.Has(ButtonLeft) {
		t.Error("Clear should release every button")
	}
}
