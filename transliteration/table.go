package transliteration

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTable is returned when an embedded rule table fails validation.
var ErrInvalidTable = errors.New("invalid rule table")

//go:embed tables/*.yaml
var tableFS embed.FS

type contextKind uint8

const (
	contextInitial contextKind = iota
	contextVoiced
	contextTail
)

// Context is what phonetically precedes a lead consonant: the start of an
// utterance, a voiced continuation, or the tail of the previous syllable.
// The zero value is Initial.
type Context struct {
	kind contextKind
	tail int
}

var (
	Initial = Context{kind: contextInitial}
	Voiced  = Context{kind: contextVoiced}
)

// TailContext is the context left behind by a syllable with the given tail
// index. Tail 0 is the no-tail context.
func TailContext(tail int) Context {
	return Context{kind: contextTail, tail: tail}
}

func (c Context) String() string {
	switch c.kind {
	case contextInitial:
		return "initial"
	case contextVoiced:
		return "voiced"
	}
	if c.tail < 0 || c.tail >= tailN {
		return fmt.Sprintf("tail(%d)", c.tail)
	}
	return tailSymbols[c.tail]
}

// row is the matrix row of c, or -1 when c names no row.
func (c Context) row() int {
	switch c.kind {
	case contextInitial:
		return 0
	case contextVoiced:
		return 1
	}
	if c.tail < 0 || c.tail >= tailN {
		return -1
	}
	return 2 + c.tail
}

const (
	matrixRows = 2 + tailN
	matrixCols = leadN + 1
	finalCol   = leadN
)

// Blend is a literal substitution applied to a romanized run after assembly.
type Blend struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Table holds the spellings of one romanization system. It is immutable once
// loaded and safe for concurrent use.
type Table struct {
	system System
	vowels [vowelN + 1]string
	matrix [matrixRows][matrixCols]string
	blends []Blend
}

func (t *Table) System() System {
	return t.system
}

// Blends returns a copy of the table's ordered blend rules.
func (t *Table) Blends() []Blend {
	return slices.Clone(t.blends)
}

// lead returns the spelling of lead consonant index lead after ctx.
// Anything outside the table spells as nothing.
func (t *Table) lead(ctx Context, lead int) string {
	row := ctx.row()
	if row < 0 || lead < 1 || lead > leadN {
		return ""
	}
	return t.matrix[row][lead-1]
}

func (t *Table) vowel(vowel int) string {
	if vowel < 1 || vowel > vowelN {
		return ""
	}
	return t.vowels[vowel]
}

// final returns the spelling of a tail at the end of a run.
func (t *Table) final(tail int) string {
	row := TailContext(tail).row()
	if row < 0 {
		return ""
	}
	return t.matrix[row][finalCol]
}

var (
	tablesOnce sync.Once
	tables     map[System]*Table
	tablesErr  error
)

// LoadTable returns the cached rule table for system. The embedded tables
// are parsed and validated once per process.
func LoadTable(system System) (*Table, error) {
	if !slices.Contains(Systems(), system) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, string(system))
	}
	tablesOnce.Do(func() {
		tables, tablesErr = loadTables()
	})
	if tablesErr != nil {
		return nil, tablesErr
	}
	return tables[system], nil
}

func loadTables() (map[System]*Table, error) {
	loaded := make(map[System]*Table, len(Systems()))
	for _, system := range Systems() {
		data, err := tableFS.ReadFile("tables/" + string(system) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("reading %s table: %w", system, err)
		}
		t, err := parseTable(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s table: %w", system, err)
		}
		if t.system != system {
			return nil, fmt.Errorf("%w: %s table declares system %q", ErrInvalidTable, system, string(t.system))
		}
		loaded[system] = t
	}
	return loaded, nil
}

type tableFile struct {
	System System   `yaml:"system"`
	Vowels []string `yaml:"vowels"`
	Blends []Blend  `yaml:"blends"`
	Matrix string   `yaml:"matrix"`
}

func parseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	if len(f.Vowels) != vowelN {
		return nil, fmt.Errorf("%w: want %d vowels, got %d", ErrInvalidTable, vowelN, len(f.Vowels))
	}
	for i, b := range f.Blends {
		if b.From == "" {
			return nil, fmt.Errorf("%w: blend %d has an empty pattern", ErrInvalidTable, i)
		}
	}

	t := &Table{system: f.System, blends: f.Blends}
	copy(t.vowels[1:], f.Vowels)
	if err := t.parseMatrix(f.Matrix); err != nil {
		return nil, err
	}
	return t, nil
}

// parseMatrix reads the whitespace grid. The header names the lead symbol of
// each column plus "final"; every other line starts with its context key.
// "_" in a cell means the sound is not written.
func (t *Table) parseMatrix(grid string) error {
	lines := strings.FieldsFunc(grid, func(r rune) bool { return r == '\n' })
	lines = slices.DeleteFunc(lines, func(l string) bool { return strings.TrimSpace(l) == "" })
	if len(lines) == 0 {
		return fmt.Errorf("%w: empty matrix", ErrInvalidTable)
	}

	header := strings.Fields(lines[0])
	if len(header) != matrixCols+1 {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrInvalidTable, len(header)-1, matrixCols)
	}
	cols := make([]int, 0, matrixCols)
	var seenCol [matrixCols]bool
	for _, sym := range header[1:] {
		col, ok := columnOf(sym)
		if !ok {
			return fmt.Errorf("%w: unknown lead symbol %q", ErrInvalidTable, sym)
		}
		if seenCol[col] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidTable, sym)
		}
		seenCol[col] = true
		cols = append(cols, col)
	}

	var seenRow [matrixRows]bool
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		ctx, ok := contextOf(fields[0])
		if !ok {
			return fmt.Errorf("%w: unknown context %q", ErrInvalidTable, fields[0])
		}
		if len(fields)-1 != matrixCols {
			return fmt.Errorf("%w: row %q has %d cells, want %d", ErrInvalidTable, fields[0], len(fields)-1, matrixCols)
		}
		row := ctx.row()
		if seenRow[row] {
			return fmt.Errorf("%w: duplicate row %q", ErrInvalidTable, fields[0])
		}
		seenRow[row] = true
		for i, cell := range fields[1:] {
			if cell == "_" {
				cell = ""
			}
			t.matrix[row][cols[i]] = cell
		}
	}

	for row, seen := range seenRow {
		if !seen {
			return fmt.Errorf("%w: missing row for context %q", ErrInvalidTable, rowContext(row))
		}
	}
	return nil
}

func columnOf(sym string) (int, bool) {
	if sym == "final" {
		return finalCol, true
	}
	i := slices.Index(leadSymbols, sym)
	if i < 1 {
		return 0, false
	}
	return i - 1, true
}

func contextOf(key string) (Context, bool) {
	switch key {
	case "initial":
		return Initial, true
	case "voiced":
		return Voiced, true
	}
	i := slices.Index(tailSymbols, key)
	if i < 0 {
		return Context{}, false
	}
	return TailContext(i), true
}

func rowContext(row int) Context {
	switch row {
	case 0:
		return Initial
	case 1:
		return Voiced
	}
	return TailContext(row - 2)
}
