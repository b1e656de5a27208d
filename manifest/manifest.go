// Package manifest loads declarative deck manifests from TOML.
//
// A manifest describes a whole deck: document metadata, canvas size, and
// a [[slide]] array where each slide lists its title, accents, widgets,
// and tables. Table rows may mix TOML value types; StringRows converts
// each cell to its string form, one explicit conversion per type.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrNoSlides reports a manifest that decodes cleanly but describes an
// empty deck.
var ErrNoSlides = errors.New("manifest has no slides")

// Manifest is a complete deck description.
type Manifest struct {
	Title    string   `toml:"title"`
	Author   string   `toml:"author"`
	Subject  string   `toml:"subject"`
	Company  string   `toml:"company"`
	Keywords []string `toml:"keywords"`

	// Canvas size in inches; zero values keep the default canvas.
	WidthInches  float64 `toml:"width_inches"`
	HeightInches float64 `toml:"height_inches"`

	Slides []Slide `toml:"slide"`
}

// Slide describes one slide of the deck.
type Slide struct {
	Title    string    `toml:"title"`
	Backdrop bool      `toml:"backdrop"`
	DividerY float64   `toml:"divider_y"` // inches; zero means no divider
	Widgets  []Widget  `toml:"widget"`
	Tables   []Table   `toml:"table"`
	Pictures []Picture `toml:"picture"`
}

// Widget describes a two-tone widget placement.
type Widget struct {
	Title string   `toml:"title"`
	Left  []string `toml:"left"`
	Right []string `toml:"right"`
	X     *float64 `toml:"x"` // inches; omitted centers horizontally
	Y     float64  `toml:"y"` // inches; zero uses the default offset
}

// Table describes a table slide body.
type Table struct {
	Title   string   `toml:"title"`
	Headers []string `toml:"headers"`
	Rows    [][]any  `toml:"rows"`
}

// Picture describes an image placement.
type Picture struct {
	Path   string  `toml:"path"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"` // inches; zero adopts the intrinsic size
	Height float64 `toml:"height"`
}

// Load reads a manifest file. The second return value lists non-fatal
// warnings: keys present in the TOML that no manifest field decodes.
func Load(filename string) (*Manifest, []string, error) {
	var m Manifest
	md, err := toml.DecodeFile(filename, &m)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return finish(&m, md)
}

// Parse reads a manifest from r.
func Parse(r io.Reader) (*Manifest, []string, error) {
	var m Manifest
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}
	return finish(&m, md)
}

func finish(m *Manifest, md toml.MetaData) (*Manifest, []string, error) {
	if len(m.Slides) == 0 {
		return nil, nil, ErrNoSlides
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown manifest key %q", key.String()))
	}
	return m, warnings, nil
}

// StringRows converts the table's typed cells to strings.
func (t Table) StringRows() [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, len(row))
		for j, v := range row {
			out[j] = formatCell(v)
		}
		rows[i] = out
	}
	return rows
}

// formatCell stringifies one TOML value. Each type the decoder can
// produce gets its own conversion; nothing relies on a container's
// default formatting.
func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", x)
	}
}
