package assets

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
)

// DelayUnit is the unit of the frame delays stored in sheet files.
const DelayUnit = 10 * time.Millisecond

// SheetFile is the YAML layout of a text-art sprite file. One file may hold
// many sheets.
type SheetFile struct {
	Sheets []SheetSpec `yaml:"sheets"`
}

// SheetSpec describes one named sheet.
type SheetSpec struct {
	Name   string      `yaml:"name"`
	Delay  int         `yaml:"delay"` // default frame delay in DelayUnit
	W      int         `yaml:"w"`     // optional: tile rows to this width
	H      int         `yaml:"h"`     // optional: tile rows to this height
	Frames []FrameSpec `yaml:"frames"`
}

// FrameSpec is one frame drawn with '0'-'3' for shades and '.' for
// transparency, top row first.
type FrameSpec struct {
	Delay *int     `yaml:"delay"`
	Rows  []string `yaml:"rows"`
}

// DecodeSheets parses a YAML sheet file.
func DecodeSheets(data []byte) ([]*sprite.Sheet, error) {
	var file SheetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("assets: parse sheets: %w", err)
	}

	sheets := make([]*sprite.Sheet, 0, len(file.Sheets))
	for _, spec := range file.Sheets {
		sheet, err := spec.build()
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (s SheetSpec) build() (*sprite.Sheet, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("assets: sheet without a name")
	}
	if len(s.Frames) == 0 {
		return nil, fmt.Errorf("assets: sheet %s: no frames", s.Name)
	}

	sheet := &sprite.Sheet{Name: s.Name}
	for i, fs := range s.Frames {
		delay := s.Delay
		if fs.Delay != nil {
			delay = *fs.Delay
		}
		frame, err := decodeRows(fs.Rows, s.W, s.H)
		if err != nil {
			return nil, fmt.Errorf("assets: sheet %s frame %d: %w", s.Name, i, err)
		}
		frame.Delay = time.Duration(delay) * DelayUnit
		sheet.Frames = append(sheet.Frames, frame)
	}
	return sheet, nil
}

// decodeRows turns text rows into a frame. When w or h exceed the art, the art
// repeats to fill them.
func decodeRows(rows []string, w, h int) (*sprite.Frame, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	artW := len(rows[0])
	for i, r := range rows {
		if len(r) != artW {
			return nil, fmt.Errorf("row %d has width %d, expected %d", i, len(r), artW)
		}
	}
	if artW == 0 {
		return nil, fmt.Errorf("empty rows")
	}
	if w <= 0 {
		w = artW
	}
	if h <= 0 {
		h = len(rows)
	}

	frame := &sprite.Frame{W: w, H: h, Pix: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		row := rows[y%len(rows)]
		for x := 0; x < w; x++ {
			idx, err := shadeOf(row[x%artW])
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y%len(rows), x%artW, err)
			}
			frame.Pix[y*w+x] = idx
		}
	}
	return frame, nil
}

func shadeOf(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '3':
		return c - '0', nil
	case c == '.' || c == ' ':
		return core.Transparent, nil
	}
	return 0, fmt.Errorf("invalid pixel %q", c)
}
