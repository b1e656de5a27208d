// Package format provides input format detection for the rostra library.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates a PowerPoint (.pptx) presentation.
	PPTX
	// TOML indicates a TOML deck manifest.
	TOML
	// HTML indicates an HTML document.
	HTML
	// CSV indicates a comma-separated values file.
	CSV
	// XLSX indicates a spreadsheet (.xlsx) workbook.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case TOML:
		return "TOML"
	case HTML:
		return "HTML"
	case CSV:
		return "CSV"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PPTX:
		return ".pptx"
	case TOML:
		return ".toml"
	case HTML:
		return ".html"
	case CSV:
		return ".csv"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pptx":
		return PPTX
	case ".toml":
		return TOML
	case ".html", ".htm":
		return HTML
	case ".csv":
		return CSV
	case ".xlsx":
		return XLSX
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. ZIP archives
// are ambiguous from magic bytes alone; use DetectFromReader to resolve
// them. CSV has no signature and is never reported here.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic (PPTX is a ZIP archive): PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return Unknown
	}

	if detectHTMLMagic(data) {
		return HTML
	}
	if detectTOMLMagic(data) {
		return TOML
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// detectTOMLMagic checks whether the first significant line reads like
// TOML: a table header or a key assignment.
func detectTOMLMagic(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			return true
		}
		if i := strings.Index(line, "="); i > 0 {
			key := strings.TrimSpace(line[:i])
			return key != "" && !strings.ContainsAny(key, "<>,;")
		}
		return false
	}
	return false
}

// DetectFromReader inspects the content to determine format. This is more
// reliable than extension-based detection and resolves ZIP archives to
// PPTX or XLSX by looking inside them.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}
	if detectHTMLMagic(magic) {
		return HTML, nil
	}
	if detectTOMLMagic(magic) {
		return TOML, nil
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for PresentationML or
// SpreadsheetML parts.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}

	return Unknown, nil
}
