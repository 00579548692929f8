package level

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
	"github.com/mraof/gbjam5/internal/tile"
)

const (
	entitySeparator = "ENTITY"
	levelSeparator  = "LEVEL"
)

// parser carries state across the sections of one level text.
type parser struct {
	name   string
	lookup Lookup
	lines  []string
	pos    int // index of the next unread line

	catalog  *tile.Catalog
	tiles    map[rune]int
	entities map[rune]Kind
	visualID map[string]int
	def      *Definition
}

// Parse builds a Definition from level text. Any error is fatal for the
// level; no partial definition is returned.
func Parse(name, text string, lookup Lookup) (*Definition, error) {
	p := &parser{
		name:     name,
		lookup:   lookup,
		lines:    strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"),
		catalog:  tile.NewCatalog(),
		tiles:    map[rune]int{' ': tile.Blank},
		entities: make(map[rune]Kind),
		visualID: make(map[string]int),
		def:      &Definition{Name: name, SpawnX: DefaultSpawnX, SpawnY: DefaultSpawnY},
	}

	blank, ok := lookup.Sheet(BlankVisual)
	if !ok {
		return nil, p.fail(0, fmt.Errorf("%w: %s", ErrMissingSheet, BlankVisual))
	}
	p.def.Visuals = []*sprite.Sheet{blank}
	p.def.VisualNames = []string{BlankVisual}
	p.visualID[BlankVisual] = 0

	if err := p.tileLegend(); err != nil {
		return nil, err
	}
	if err := p.entityLegend(); err != nil {
		return nil, err
	}
	if err := p.backgrounds(); err != nil {
		return nil, err
	}
	if err := p.grids(); err != nil {
		return nil, err
	}
	return p.def, nil
}

func (p *parser) fail(line int, err error) error {
	return &ParseError{Level: p.name, Line: line, Err: err}
}

// next returns the next line and its 1-based number.
func (p *parser) next() (string, int, bool) {
	if p.pos >= len(p.lines) {
		return "", 0, false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, p.pos, true
}

// splitLegend separates the leading character from the comma separated
// fields. The character itself may be a comma.
func splitLegend(line string) (rune, []string, bool) {
	ch, size := utf8.DecodeRuneInString(line)
	if ch == utf8.RuneError || size >= len(line) || line[size] != ',' {
		return 0, nil, false
	}
	fields := strings.Split(line[size+1:], ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return ch, fields, true
}

// visual resolves a sheet name to a visual id, assigning ids on first use.
// Unknown names map to the blank visual.
func (p *parser) visual(name string) int {
	if id, ok := p.visualID[name]; ok {
		return id
	}
	sheet, ok := p.lookup.Sheet(name)
	if !ok {
		p.visualID[name] = 0
		return 0
	}
	id := len(p.def.Visuals)
	p.def.Visuals = append(p.def.Visuals, sheet)
	p.def.VisualNames = append(p.def.VisualNames, name)
	p.visualID[name] = id
	return id
}

func (p *parser) tileLegend() error {
	for {
		line, n, ok := p.next()
		if !ok {
			return p.fail(0, fmt.Errorf("%w: %s", ErrMissingSeparator, entitySeparator))
		}
		if strings.TrimSpace(line) == entitySeparator {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ch, fields, ok := splitLegend(line)
		if !ok || len(fields) < 2 {
			return p.fail(n, fmt.Errorf("%w: %q", ErrBadLegend, line))
		}

		visual := p.visual(fields[0])
		behavior, err := p.behavior(fields[1], fields[2:], visual)
		if err != nil {
			return p.fail(n, err)
		}
		p.tiles[ch] = p.catalog.Add(tile.Tile{Visual: visual, Behavior: behavior})
	}
}

// behavior decodes a behavior keyword. Unknown keywords are Background.
func (p *parser) behavior(keyword string, args []string, visual int) (tile.Behavior, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch strings.ToLower(keyword) {
	case "solid":
		return tile.Solid{}, nil
	case "door":
		if arg(0) == "" {
			return nil, fmt.Errorf("%w: door needs a target level", ErrBadLegend)
		}
		closed := visual
		if arg(1) != "" {
			closed = p.visual(arg(1))
		}
		return tile.Door{Target: arg(0), Closed: closed}, nil
	case "keybackground":
		closed := visual
		if arg(0) != "" {
			closed = p.visual(arg(0))
		}
		return tile.KeyBackground{Closed: closed}, nil
	case "checkpoint":
		return tile.Checkpoint{}, nil
	case "switch":
		return tile.Switch{}, nil
	case "switchblock":
		return tile.SwitchBlock{}, nil
	case "arrow":
		dir, err := core.ParseDirection(arg(0))
		if err != nil {
			return nil, fmt.Errorf("%w: arrow: %w", ErrBadLegend, err)
		}
		return tile.Arrow{Dir: dir}, nil
	default:
		return tile.Background{}, nil
	}
}

func (p *parser) entityLegend() error {
	for {
		line, n, ok := p.next()
		if !ok {
			return p.fail(0, fmt.Errorf("%w: %s", ErrMissingSeparator, levelSeparator))
		}
		if strings.TrimSpace(line) == levelSeparator {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ch, fields, ok := splitLegend(line)
		if !ok || len(fields) < 1 || fields[0] == "" {
			return p.fail(n, fmt.Errorf("%w: %q", ErrBadLegend, line))
		}

		kind, err := p.entityKind(strings.ToLower(fields[0]), fields[1:])
		if err != nil {
			return p.fail(n, err)
		}
		p.entities[ch] = kind
	}
}

func (p *parser) entityKind(kind string, args []string) (Kind, error) {
	switch kind {
	case "player":
		return playerKind{}, nil

	case "enemy":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: enemy needs a sprite and a direction", ErrBadLegend)
		}
		e := EnemyKind{}
		for _, v := range core.Versions {
			suffix := "_alive"
			if v == core.Death {
				suffix = "_dead"
			}
			sheet, ok := p.lookup.Sheet(args[0] + suffix)
			if !ok {
				return nil, fmt.Errorf("%w: %s%s", ErrMissingSheet, args[0], suffix)
			}
			e.Sheets[v] = sheet
		}
		dir, err := core.ParseDirection(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: enemy: %w", ErrBadLegend, err)
		}
		e.Dir = dir
		for _, flag := range args[2:] {
			switch strings.ToLower(flag) {
			case "collision":
				e.Collision = true
			case "gravity":
				e.Gravity = true
			case "deadly":
				e.Deadly = true
			case "":
			default:
				return nil, fmt.Errorf("%w: unknown enemy flag %q", ErrBadLegend, flag)
			}
		}
		return e, nil

	case "key":
		name := DefaultKeySheet
		if len(args) > 0 && args[0] != "" {
			name = args[0]
		}
		sheet, ok := p.lookup.Sheet(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSheet, name)
		}
		return KeyKind{Sheet: sheet}, nil
	}
	return nil, fmt.Errorf("%w: unknown entity kind %q", ErrBadLegend, kind)
}

// backgrounds reads the prefix line and collects prefix_0, prefix_1, ...
func (p *parser) backgrounds() error {
	line, n, ok := p.next()
	if !ok {
		return p.fail(0, fmt.Errorf("%w: background line", ErrUnexpectedEOF))
	}
	prefix := strings.TrimSpace(line)
	if prefix == "" {
		return nil
	}
	for i := 0; ; i++ {
		sheet, ok := p.lookup.Sheet(fmt.Sprintf("%s_%d", prefix, i))
		if !ok {
			break
		}
		p.def.Backgrounds = append(p.def.Backgrounds, sheet)
	}
	if len(p.def.Backgrounds) == 0 {
		return p.fail(n, fmt.Errorf("%w: %s_0", ErrMissingSheet, prefix))
	}
	return nil
}

func (p *parser) grids() error {
	line, n, ok := p.next()
	if !ok {
		return p.fail(0, fmt.Errorf("%w: size line", ErrUnexpectedEOF))
	}

	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 2 {
		return p.fail(n, fmt.Errorf("%w: %q", ErrBadSize, line))
	}
	width, werr := strconv.Atoi(strings.TrimSpace(fields[0]))
	height, herr := strconv.Atoi(strings.TrimSpace(fields[1]))
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return p.fail(n, fmt.Errorf("%w: %q", ErrBadSize, line))
	}
	wrap := false
	for _, f := range fields[2:] {
		if strings.EqualFold(strings.TrimSpace(f), "wraparound") {
			wrap = true
		}
	}

	grid := tile.NewGrid(p.catalog, width, height, wrap)
	playerSet := false
	for _, v := range core.Versions {
		for r := 0; r < height; r++ {
			row, _, _ := p.next() // short files pad with blank rows
			y := height - 1 - r
			runes := []rune(row)
			for x := 0; x < width; x++ {
				ch := ' '
				if x < len(runes) {
					ch = runes[x]
				}
				if idx, ok := p.tiles[ch]; ok {
					grid.Set(v, x, y, idx)
				}
				kind, ok := p.entities[ch]
				if !ok {
					continue
				}
				px, py := x*core.TileSize, y*core.TileSize
				switch k := kind.(type) {
				case playerKind:
					if !playerSet {
						p.def.SpawnX, p.def.SpawnY = px, py
						playerSet = true
					}
				case KeyKind:
					p.def.KeyTotal++
					p.def.Spawns = append(p.def.Spawns, Spawn{X: px, Y: py, Version: v, Kind: k})
				default:
					p.def.Spawns = append(p.def.Spawns, Spawn{X: px, Y: py, Version: v, Kind: k})
				}
			}
		}
	}
	p.def.Grid = grid
	return nil
}
