// Package csvtable reads tabular data from CSV sources.
package csvtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Table is a parsed CSV source. The first record is the header row; the
// remaining records are data rows with the same field count (enforced by
// the CSV reader).
type Table struct {
	Headers []string
	Rows    [][]string
}

// Options configure CSV ingestion.
type Options struct {
	Comma    rune   // field delimiter; zero means comma
	Encoding string // source encoding; empty means utf-8
}

// ReadFile reads a UTF-8 CSV file.
func ReadFile(filename string) (*Table, error) {
	return ReadFileWithOptions(filename, Options{})
}

// ReadFileWithOptions reads a CSV file with the given options.
func ReadFileWithOptions(filename string, opts Options) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadWithOptions(f, opts)
}

// Read reads UTF-8 CSV data from r.
func Read(r io.Reader) (*Table, error) {
	return ReadWithOptions(r, Options{})
}

// ReadWithOptions reads CSV data from r with the given options.
func ReadWithOptions(r io.Reader, opts Options) (*Table, error) {
	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv source has no records")
	}

	headers := records[0]
	// Strip a UTF-8 BOM left on the first header cell.
	headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")

	return &Table{Headers: headers, Rows: records[1:]}, nil
}

// decoderFor maps an encoding name to its decoder. UTF-8 input needs none.
func decoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
