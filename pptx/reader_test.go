package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// writeZipFile writes a file into a zip archive.
func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// newFixture creates a pptx file in a temp dir from the given parts.
func newFixture(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.pptx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range parts {
		writeZipFile(t, zw, name, content)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return path
}

// createMinimalPPTX creates a minimal valid PPTX file for testing. The
// slide XML is deliberately sparse; a reader has to cope with parts that
// carry less than our writer emits.
func createMinimalPPTX(t *testing.T) string {
	t.Helper()

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
  <Override PartName="/ppt/slides/slide1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
</Types>`

	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

	presentation := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rId1"/>
  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`

	slide := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
      </p:nvGrpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Title 1"/>
          <p:nvPr>
            <p:ph type="title"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="457200" y="274638"/>
            <a:ext cx="8229600" cy="1143000"/>
          </a:xfrm>
        </p:spPr>
        <p:txBody>
          <a:bodyPr/>
          <a:p>
            <a:r>
              <a:t>Delivery Plan</a:t>
            </a:r>
          </a:p>
        </p:txBody>
      </p:sp>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="3" name="Content 1"/>
          <p:nvPr>
            <p:ph type="body" idx="1"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:p>
            <a:r>
              <a:t>First milestone</a:t>
            </a:r>
          </a:p>
          <a:p>
            <a:r>
              <a:t>Second milestone</a:t>
            </a:r>
          </a:p>
          <a:p>
            <a:r>
              <a:t>Stretch goal</a:t>
            </a:r>
          </a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

	return newFixture(t, map[string]string{
		"[Content_Types].xml":             contentTypes,
		"_rels/.rels":                     rels,
		"ppt/presentation.xml":            presentation,
		"ppt/_rels/presentation.xml.rels": rels,
		"ppt/slides/slide1.xml":           slide,
	})
}

// createPPTXWithTable creates a PPTX holding a single table slide.
func createPPTXWithTable(t *testing.T) string {
	t.Helper()

	slide := `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
      </p:nvGrpSpPr>
      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="2" name="Table"/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="457200" y="1188720"/>
          <a:ext cx="11277600" cy="4755072"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblGrid>
                <a:gridCol w="5638800"/>
                <a:gridCol w="5638800"/>
              </a:tblGrid>
              <a:tr h="370332">
                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:p><a:r><a:rPr b="1"/><a:t>Finding</a:t></a:r></a:p>
                  </a:txBody>
                  <a:tcPr><a:solidFill><a:srgbClr val="1F396C"/></a:solidFill></a:tcPr>
                </a:tc>
                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:p><a:r><a:rPr b="1"/><a:t>Status</a:t></a:r></a:p>
                  </a:txBody>
                  <a:tcPr><a:solidFill><a:srgbClr val="1F396C"/></a:solidFill></a:tcPr>
                </a:tc>
              </a:tr>
              <a:tr h="370332">
                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:p><a:r><a:t>Legacy auth</a:t></a:r></a:p>
                  </a:txBody>
                  <a:tcPr/>
                </a:tc>
                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:p><a:r><a:t>Open</a:t></a:r></a:p>
                  </a:txBody>
                  <a:tcPr/>
                </a:tc>
              </a:tr>
            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
    </p:spTree>
  </p:cSld>
</p:sld>`

	return newFixture(t, map[string]string{
		"[Content_Types].xml":   `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"ppt/presentation.xml":  `<?xml version="1.0"?><p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`,
		"ppt/slides/slide1.xml": slide,
	})
}

// createMultiSlidePPTX creates a PPTX with numbered title slides.
func createMultiSlidePPTX(t *testing.T, numSlides int) string {
	t.Helper()

	parts := map[string]string{
		"[Content_Types].xml":  `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"ppt/presentation.xml": `<?xml version="1.0"?><p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`,
	}
	for i := 1; i <= numSlides; i++ {
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", i)] = fmt.Sprintf(`<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/></p:nvGrpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Title"/>
          <p:nvPr><p:ph type="title"/></p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:p><a:r><a:t>Slide %d</a:t></a:r></a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`, i)
	}

	return newFixture(t, parts)
}

// ============================================================================
// OPEN
// ============================================================================

func TestOpen(t *testing.T) {
	r, err := Open(createMinimalPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	if r.SlideCount() != 1 {
		t.Errorf("SlideCount() = %d, want 1", r.SlideCount())
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.pptx")
	if err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pptx")
	if err := os.WriteFile(path, []byte("not a zip file"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Open(path)
	if err == nil {
		t.Error("Open() expected error for invalid zip")
	}
}

func TestOpen_MissingPresentation(t *testing.T) {
	path := newFixture(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
	})

	_, err := Open(path)
	if err == nil {
		t.Fatal("Open() expected error for missing presentation.xml")
	}
	if !errors.Is(err, ErrNotPPTX) {
		t.Errorf("Expected ErrNotPPTX, got: %v", err)
	}
	if !strings.Contains(err.Error(), "missing required file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestOpen_NoSlides(t *testing.T) {
	path := newFixture(t, map[string]string{
		"[Content_Types].xml":  "<Types/>",
		"ppt/presentation.xml": "<presentation/>",
	})

	_, err := Open(path)
	if err == nil {
		t.Fatal("Open() expected error for missing slides")
	}
	if !errors.Is(err, ErrNoSlides) {
		t.Errorf("Expected ErrNoSlides, got: %v", err)
	}
}

func TestReader_Close(t *testing.T) {
	r, err := Open(createMinimalPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Second close should be safe
	if err := r.Close(); err != nil {
		t.Errorf("Second Close() failed: %v", err)
	}
}

// ============================================================================
// SLIDE ACCESS
// ============================================================================

func TestReader_SlideCount(t *testing.T) {
	tests := []struct {
		name   string
		slides int
	}{
		{"single slide", 1},
		{"multiple slides", 3},
		{"five slides", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Open(createMultiSlidePPTX(t, tt.slides))
			if err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			defer r.Close()

			if got := r.SlideCount(); got != tt.slides {
				t.Errorf("SlideCount() = %d, want %d", got, tt.slides)
			}
		})
	}
}

func TestReader_Slide(t *testing.T) {
	r, err := Open(createMultiSlidePPTX(t, 3))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	for i := 0; i < 3; i++ {
		slide, err := r.Slide(i)
		if err != nil {
			t.Errorf("Slide(%d) failed: %v", i, err)
		}
		if slide == nil {
			t.Errorf("Slide(%d) returned nil", i)
		}
	}

	for _, idx := range []int{-1, 100} {
		_, err := r.Slide(idx)
		if err == nil {
			t.Errorf("Slide(%d) expected error", idx)
		} else if !strings.Contains(err.Error(), "out of range") {
			t.Errorf("Slide(%d) unexpected error: %v", idx, err)
		}
	}
}

func TestReader_SlideOrdering(t *testing.T) {
	// With more than nine slides a lexical sort would put slide10
	// before slide2.
	r, err := Open(createMultiSlidePPTX(t, 11))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	second, err := r.Slide(1)
	if err != nil {
		t.Fatalf("Slide(1) failed: %v", err)
	}
	if second.Title != "Slide 2" {
		t.Errorf("Slide(1) title = %q, want %q", second.Title, "Slide 2")
	}

	last, err := r.Slide(10)
	if err != nil {
		t.Fatalf("Slide(10) failed: %v", err)
	}
	if last.Title != "Slide 11" {
		t.Errorf("Slide(10) title = %q, want %q", last.Title, "Slide 11")
	}
}

func TestReader_SlideSize(t *testing.T) {
	r, err := Open(createMinimalPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	w, h := r.SlideSize()
	if w != geom.EMU(9144000) || h != geom.EMU(6858000) {
		t.Errorf("SlideSize() = %d x %d, want 9144000 x 6858000", w, h)
	}
}

// ============================================================================
// CONTENT EXTRACTION
// ============================================================================

func TestReader_TitleDetection(t *testing.T) {
	r, err := Open(createMinimalPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	slide, err := r.Slide(0)
	if err != nil {
		t.Fatalf("Slide(0) failed: %v", err)
	}

	if slide.Title != "Delivery Plan" {
		t.Errorf("Title = %q, want %q", slide.Title, "Delivery Plan")
	}
	if len(slide.Content) != 2 {
		t.Fatalf("Expected 2 text blocks, got %d", len(slide.Content))
	}

	title := slide.Content[0]
	if !title.IsTitle {
		t.Error("First block should be the title placeholder")
	}
	if title.Placeholder != "title" {
		t.Errorf("Placeholder = %q, want %q", title.Placeholder, "title")
	}
	if title.X != 457200 || title.Width != 8229600 {
		t.Errorf("Title geometry = (%d, w %d), want (457200, w 8229600)", title.X, title.Width)
	}

	body := slide.Content[1]
	if body.IsTitle {
		t.Error("Body block mistaken for a title")
	}
	// The body shape carries no transform.
	if body.Width != 0 {
		t.Errorf("Body width = %d, want 0", body.Width)
	}
	if body.Text != "First milestone\nSecond milestone\nStretch goal" {
		t.Errorf("Body text = %q", body.Text)
	}
}

func TestReader_Text(t *testing.T) {
	r, err := Open(createMinimalPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}

	if !strings.HasPrefix(text, "Delivery Plan\n\n") {
		t.Errorf("Text should open with the title, got %q", text)
	}
	for _, want := range []string{"First milestone", "Second milestone", "Stretch goal"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text missing %q", want)
		}
	}
}

func TestReader_Markdown(t *testing.T) {
	r, err := Open(createMinimalPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	md, err := r.Markdown()
	if err != nil {
		t.Fatalf("Markdown() failed: %v", err)
	}

	if !strings.HasPrefix(md, "# Delivery Plan") {
		t.Errorf("Markdown should open with a heading, got %q", md)
	}
	if !strings.Contains(md, "First milestone") {
		t.Error("Markdown missing body text")
	}
}

func TestReader_Table(t *testing.T) {
	r, err := Open(createPPTXWithTable(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	slide, err := r.Slide(0)
	if err != nil {
		t.Fatalf("Slide(0) failed: %v", err)
	}

	if len(slide.Tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(slide.Tables))
	}
	table := slide.Tables[0]

	if table.Columns != 2 {
		t.Errorf("Columns = %d, want 2", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.X != 457200 || table.Y != 1188720 {
		t.Errorf("Table position = (%d, %d), want (457200, 1188720)", table.X, table.Y)
	}

	header := table.Rows[0][0]
	if header.Text != "Finding" {
		t.Errorf("Header text = %q, want Finding", header.Text)
	}
	if !header.Bold {
		t.Error("Header cell should be bold")
	}
	if header.Fill != "1F396C" {
		t.Errorf("Header fill = %q, want 1F396C", header.Fill)
	}

	body := table.Rows[1][1]
	if body.Text != "Open" {
		t.Errorf("Body text = %q, want Open", body.Text)
	}
	if body.Bold {
		t.Error("Body cell should not be bold")
	}
	if body.Fill != "" {
		t.Errorf("Body fill = %q, want empty", body.Fill)
	}
}

// ============================================================================
// SLIDE FORMATTING
// ============================================================================

func TestSlide_GetText(t *testing.T) {
	slide := &Slide{
		Title: "Weekly Update",
		Content: []TextBlock{
			{
				IsTitle:    true,
				Text:       "Weekly Update",
				Paragraphs: []Paragraph{{Text: "Weekly Update"}},
			},
			{
				Text: "Shipment on track\nRisks reviewed",
				Paragraphs: []Paragraph{
					{Text: "Shipment on track"},
					{Text: ""},
					{Text: "Risks reviewed"},
				},
			},
		},
	}

	got := slide.GetText()
	want := "Weekly Update\n\nShipment on track\nRisks reviewed\n\n"
	if got != want {
		t.Errorf("GetText() = %q, want %q", got, want)
	}
}

func TestSlide_GetMarkdown(t *testing.T) {
	slide := &Slide{
		Title: "Weekly Update",
		Content: []TextBlock{
			{
				IsTitle:    true,
				Text:       "Weekly Update",
				Paragraphs: []Paragraph{{Text: "Weekly Update"}},
			},
			{
				Text:       "Shipment on track",
				Paragraphs: []Paragraph{{Text: "Shipment on track"}},
			},
		},
	}

	got := slide.GetMarkdown()
	if !strings.HasPrefix(got, "# Weekly Update\n\n") {
		t.Errorf("GetMarkdown() should open with a heading, got %q", got)
	}
	if !strings.Contains(got, "Shipment on track") {
		t.Error("GetMarkdown() missing body text")
	}
}

func TestTable_ToMarkdown(t *testing.T) {
	table := &Table{
		Columns: 2,
		Rows: [][]TableCell{
			{{Text: "Name"}, {Text: "State"}},
			{{Text: "Auth"}, {Text: "Open"}},
		},
	}

	got := table.ToMarkdown()
	want := "| Name | State |\n|---|---|\n| Auth | Open |\n"
	if got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}

func TestTable_ToMarkdown_Empty(t *testing.T) {
	table := &Table{}
	if got := table.ToMarkdown(); got != "" {
		t.Errorf("ToMarkdown() = %q, want empty", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a|b", "a\\|b"},
		{"line1\nline2", "line1 line2"},
		{"line1\rline2", "line1 line2"},
	}

	for _, tt := range tests {
		if got := escapeMarkdown(tt.input); got != tt.want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractSlideNumber(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"ppt/slides/slide1.xml", 1},
		{"ppt/slides/slide10.xml", 10},
		{"ppt/slides/slide999.xml", 999},
		{"ppt/slides/slideX.xml", 0},
	}

	for _, tt := range tests {
		if got := extractSlideNumber(tt.path); got != tt.want {
			t.Errorf("extractSlideNumber(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

// ============================================================================
// BENCHMARKS
// ============================================================================

func BenchmarkNewReader(b *testing.B) {
	deck := model.NewDeck()
	for i := 0; i < 10; i++ {
		slide := deck.AddSlide()
		box := slide.AddTextBox(geom.RectInches(0.5, 0.3, 12, 1))
		box.AddParagraph(model.AlignLeft).AddRun(fmt.Sprintf("Slide %d", i+1), model.Style{Size: 28})

		tbl, err := slide.AddTable(geom.RectInches(0.5, 1.5, 12, 5), 4, 3)
		if err != nil {
			b.Fatal(err)
		}
		for r := 0; r < 4; r++ {
			for c := 0; c < 3; c++ {
				cell, err := tbl.Cell(r, c)
				if err != nil {
					b.Fatal(err)
				}
				cell.Text = "cell"
			}
		}
	}

	var buf bytes.Buffer
	if err := Write(deck, &buf); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			b.Fatal(err)
		}
	}
}
