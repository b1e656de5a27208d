package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// ErrNotPPTX reports an archive that lacks the parts every presentation
// package carries.
var ErrNotPPTX = errors.New("not a PPTX file")

// ErrNoSlides reports a presentation without any slide parts.
var ErrNoSlides = errors.New("no slides found in presentation")

// Reader provides access to the content of a saved presentation.
type Reader struct {
	files        []*zip.File
	closer       io.Closer
	presentation *presentationXML
	slides       []*Slide
	slideRels    map[int]*relationshipsXML // slide index -> relationships
	coreProps    *corePropertiesXML
	appProps     *appPropertiesXML
}

// Open opens a PPTX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	r, err := newReader(&zr.Reader, zr)
	if err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads a presentation from an in-memory or seekable source.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, nil)
}

func newReader(zr *zip.Reader, closer io.Closer) (*Reader, error) {
	r := &Reader{
		files:     zr.File,
		closer:    closer,
		slideRels: make(map[int]*relationshipsXML),
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := r.parsePresentation(); err != nil {
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}
	if err := r.parseSlides(); err != nil {
		return nil, fmt.Errorf("parsing slides: %w", err)
	}

	// Metadata parts are optional.
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases the underlying file. Closing an already closed Reader is
// a no-op.
func (r *Reader) Close() error {
	if r.closer != nil {
		c := r.closer
		r.closer = nil
		return c.Close()
	}
	return nil
}

// validate checks that required PPTX parts exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.files {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file %s: %w", name, ErrNotPPTX)
		}
	}

	hasSlide := false
	for name := range fileMap {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			hasSlide = true
			break
		}
	}
	if !hasSlide {
		return ErrNoSlides
	}

	return nil
}

// getFileContent reads the content of a part from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.files {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func (r *Reader) parsePresentation() error {
	data, err := r.getFileContent("ppt/presentation.xml")
	if err != nil {
		return err
	}

	r.presentation = &presentationXML{}
	return xml.Unmarshal(data, r.presentation)
}

func (r *Reader) parseSlides() error {
	slideFiles := make([]string, 0)
	for _, f := range r.files {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			if !strings.Contains(f.Name, "_rels") {
				slideFiles = append(slideFiles, f.Name)
			}
		}
	}

	sort.Slice(slideFiles, func(i, j int) bool {
		return extractSlideNumber(slideFiles[i]) < extractSlideNumber(slideFiles[j])
	})

	r.slides = make([]*Slide, 0, len(slideFiles))

	for i, slidePath := range slideFiles {
		r.parseSlideRelationships(slidePath, i)

		slide, err := r.parseSlide(slidePath, i)
		if err != nil {
			continue // skip slides that fail to parse
		}
		r.slides = append(r.slides, slide)
	}

	if len(r.slides) == 0 {
		return fmt.Errorf("no slides could be parsed")
	}

	return nil
}

// extractSlideNumber extracts the slide number from a path like
// "ppt/slides/slide1.xml".
func extractSlideNumber(p string) int {
	name := strings.TrimPrefix(p, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

func (r *Reader) parseSlide(slidePath string, index int) (*Slide, error) {
	data, err := r.getFileContent(slidePath)
	if err != nil {
		return nil, err
	}

	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, err
	}

	slide := &Slide{Index: index}
	r.extractShapes(&sx.CSld.SpTree, slide, index)
	return slide, nil
}

// extractShapes fills the slide from the shape tree. A shape with a text
// body is a text block; a shape with a solid fill and no text body is a
// filled shape.
func (r *Reader) extractShapes(tree *spTreeXML, slide *Slide, index int) {
	for i := range tree.Sp {
		sp := &tree.Sp[i]
		if sp.TxBody != nil {
			block := extractTextBlock(sp)
			if block.IsTitle && slide.Title == "" {
				slide.Title = block.Text
			}
			slide.Content = append(slide.Content, block)
			continue
		}
		if sp.SpPr.SolidFill != nil {
			slide.Shapes = append(slide.Shapes, extractShape(sp))
		}
	}

	for i := range tree.CxnSp {
		slide.Lines = append(slide.Lines, extractLine(&tree.CxnSp[i]))
	}

	for i := range tree.GraphicFrame {
		gf := &tree.GraphicFrame[i]
		if gf.Graphic.GraphicData.Tbl != nil {
			slide.Tables = append(slide.Tables, extractTable(gf))
		}
	}

	for i := range tree.Pic {
		slide.Pictures = append(slide.Pictures, r.extractPicture(&tree.Pic[i], index))
	}
}

func extractTextBlock(sp *spXML) TextBlock {
	block := TextBlock{}

	if sp.NvSpPr.NvPr.Ph != nil {
		block.Placeholder = sp.NvSpPr.NvPr.Ph.Type
		block.IsTitle = block.Placeholder == "title" || block.Placeholder == "ctrTitle"
	}

	if sp.SpPr.Xfrm != nil {
		block.X = geom.EMU(sp.SpPr.Xfrm.Off.X)
		block.Y = geom.EMU(sp.SpPr.Xfrm.Off.Y)
		block.Width = geom.EMU(sp.SpPr.Xfrm.Ext.Cx)
		block.Height = geom.EMU(sp.SpPr.Xfrm.Ext.Cy)
	}

	var lines []string
	for i := range sp.TxBody.P {
		para := extractParagraph(&sp.TxBody.P[i])
		block.Paragraphs = append(block.Paragraphs, para)
		if para.Text != "" {
			lines = append(lines, para.Text)
		}
	}
	block.Text = strings.Join(lines, "\n")

	return block
}

func extractParagraph(p *pXML) Paragraph {
	para := Paragraph{}

	if p.PPr != nil {
		para.Alignment = p.PPr.Algn
		if p.PPr.SpcBef != nil && p.PPr.SpcBef.SpcPts != nil {
			para.SpaceBefore = p.PPr.SpcBef.SpcPts.Val
		}
	}

	var text strings.Builder
	for _, run := range p.R {
		text.WriteString(run.T)

		ro := Run{Text: run.T}
		if run.RPr != nil {
			ro.Bold = run.RPr.B != nil && *run.RPr.B == 1
			ro.Italic = run.RPr.I != nil && *run.RPr.I == 1
			ro.FontSize = run.RPr.Sz
			if run.RPr.SolidFill != nil && run.RPr.SolidFill.SrgbClr != nil {
				ro.Color = run.RPr.SolidFill.SrgbClr.Val
			}
			if run.RPr.Latin != nil {
				ro.Font = run.RPr.Latin.Typeface
			}
		}
		para.Runs = append(para.Runs, ro)
	}

	para.Text = strings.TrimSpace(text.String())
	return para
}

func extractShape(sp *spXML) Shape {
	shape := Shape{}

	if sp.SpPr.PrstGeom != nil {
		shape.Preset = sp.SpPr.PrstGeom.Prst
	}
	if sp.SpPr.SolidFill != nil && sp.SpPr.SolidFill.SrgbClr != nil {
		shape.Fill = sp.SpPr.SolidFill.SrgbClr.Val
	}
	if sp.SpPr.Ln != nil {
		shape.BorderWidth = geom.EMU(sp.SpPr.Ln.W)
		if sp.SpPr.Ln.SolidFill != nil && sp.SpPr.Ln.SolidFill.SrgbClr != nil {
			shape.BorderColor = sp.SpPr.Ln.SolidFill.SrgbClr.Val
		}
	}
	if sp.SpPr.Xfrm != nil {
		shape.Rotation = float64(sp.SpPr.Xfrm.Rot) / 60000
		shape.X = geom.EMU(sp.SpPr.Xfrm.Off.X)
		shape.Y = geom.EMU(sp.SpPr.Xfrm.Off.Y)
		shape.Width = geom.EMU(sp.SpPr.Xfrm.Ext.Cx)
		shape.Height = geom.EMU(sp.SpPr.Xfrm.Ext.Cy)
	}

	return shape
}

func extractLine(cx *cxnSpXML) Line {
	line := Line{}

	if cx.SpPr.Ln != nil {
		line.Weight = geom.EMU(cx.SpPr.Ln.W)
		if cx.SpPr.Ln.SolidFill != nil && cx.SpPr.Ln.SolidFill.SrgbClr != nil {
			line.Color = cx.SpPr.Ln.SolidFill.SrgbClr.Val
		}
	}
	if cx.SpPr.Xfrm != nil {
		line.X = geom.EMU(cx.SpPr.Xfrm.Off.X)
		line.Y = geom.EMU(cx.SpPr.Xfrm.Off.Y)
		line.Width = geom.EMU(cx.SpPr.Xfrm.Ext.Cx)
		line.Height = geom.EMU(cx.SpPr.Xfrm.Ext.Cy)
	}

	return line
}

func extractTable(gf *graphicFrameXML) Table {
	tbl := gf.Graphic.GraphicData.Tbl
	t := Table{Columns: len(tbl.TblGrid.GridCol)}

	if gf.Xfrm != nil {
		t.X = geom.EMU(gf.Xfrm.Off.X)
		t.Y = geom.EMU(gf.Xfrm.Off.Y)
		t.Width = geom.EMU(gf.Xfrm.Ext.Cx)
		t.Height = geom.EMU(gf.Xfrm.Ext.Cy)
	}

	for _, tr := range tbl.Tr {
		row := make([]TableCell, 0, len(tr.Tc))
		for i := range tr.Tc {
			tc := &tr.Tc[i]
			cell := TableCell{}

			if tc.TxBody != nil {
				var parts []string
				for j := range tc.TxBody.P {
					para := extractParagraph(&tc.TxBody.P[j])
					if para.Text != "" {
						parts = append(parts, para.Text)
					}
					for _, run := range para.Runs {
						if run.Bold {
							cell.Bold = true
						}
					}
				}
				cell.Text = strings.Join(parts, " ")
			}
			if tc.TcPr != nil && tc.TcPr.SolidFill != nil && tc.TcPr.SolidFill.SrgbClr != nil {
				cell.Fill = tc.TcPr.SolidFill.SrgbClr.Val
			}

			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// extractPicture resolves the picture's relationship to its media part.
func (r *Reader) extractPicture(pic *picXML, index int) PictureRef {
	ref := PictureRef{}

	if pic.SpPr.Xfrm != nil {
		ref.X = geom.EMU(pic.SpPr.Xfrm.Off.X)
		ref.Y = geom.EMU(pic.SpPr.Xfrm.Off.Y)
		ref.Width = geom.EMU(pic.SpPr.Xfrm.Ext.Cx)
		ref.Height = geom.EMU(pic.SpPr.Xfrm.Ext.Cy)
	}

	rels := r.slideRels[index]
	if rels == nil || pic.BlipFill.Blip.Embed == "" {
		return ref
	}
	for _, rel := range rels.Relationship {
		if rel.ID != pic.BlipFill.Blip.Embed {
			continue
		}
		target := rel.Target
		if strings.HasPrefix(target, "../") {
			target = "ppt/" + strings.TrimPrefix(target, "../")
		}
		ref.Target = target
		if data, err := r.getFileContent(target); err == nil {
			ref.Data = data
		}
		break
	}

	return ref
}

// parseSlideRelationships parses the relationships for a slide.
func (r *Reader) parseSlideRelationships(slidePath string, index int) {
	dir := path.Dir(slidePath)
	base := path.Base(slidePath)
	relsPath := path.Join(dir, "_rels", base+".rels")

	data, err := r.getFileContent(relsPath)
	if err != nil {
		return // relationships are optional
	}

	rels := &relationshipsXML{}
	if err := xml.Unmarshal(data, rels); err != nil {
		return
	}

	r.slideRels[index] = rels
}

func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	r.coreProps = &corePropertiesXML{}
	xml.Unmarshal(data, r.coreProps)
}

func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	r.appProps = &appPropertiesXML{}
	xml.Unmarshal(data, r.appProps)
}

// SlideCount returns the number of slides.
func (r *Reader) SlideCount() int {
	return len(r.slides)
}

// Slide returns the slide at the given index (0-indexed).
func (r *Reader) Slide(index int) (*Slide, error) {
	if index < 0 || index >= len(r.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(r.slides)-1)
	}
	return r.slides[index], nil
}

// SlideSize returns the canvas dimensions recorded in the presentation.
func (r *Reader) SlideSize() (width, height geom.EMU) {
	if r.presentation != nil && r.presentation.SlideSz != nil {
		return geom.EMU(r.presentation.SlideSz.Cx), geom.EMU(r.presentation.SlideSz.Cy)
	}
	return 0, 0
}

// Text extracts and returns all text content from the presentation.
func (r *Reader) Text() (string, error) {
	var b strings.Builder

	for i, slide := range r.slides {
		if i > 0 {
			b.WriteString("\n\n")
		}

		if slide.Title != "" {
			b.WriteString(slide.Title)
			b.WriteString("\n\n")
		}

		for _, block := range slide.Content {
			if block.IsTitle {
				continue
			}
			for _, para := range block.Paragraphs {
				if para.Text != "" {
					b.WriteString(para.Text)
					b.WriteString("\n")
				}
			}
		}

		for _, table := range slide.Tables {
			b.WriteString("\n")
			for _, row := range table.Rows {
				for j, cell := range row {
					if j > 0 {
						b.WriteString("\t")
					}
					b.WriteString(cell.Text)
				}
				b.WriteString("\n")
			}
		}
	}

	return b.String(), nil
}

// Markdown returns the presentation content as Markdown, one section per
// slide.
func (r *Reader) Markdown() (string, error) {
	var b strings.Builder

	for i, slide := range r.slides {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(slide.GetMarkdown())
	}

	return strings.TrimSpace(b.String()), nil
}

// Metadata returns the document metadata recorded in the file.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}

	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		meta.Identifier = r.coreProps.Identifier
		if r.coreProps.Keywords != "" {
			meta.Keywords = strings.Split(r.coreProps.Keywords, ",")
			for i, kw := range meta.Keywords {
				meta.Keywords[i] = strings.TrimSpace(kw)
			}
		}
		if t, err := time.Parse(time.RFC3339, r.coreProps.Created); err == nil {
			meta.Created = t
		}
		if t, err := time.Parse(time.RFC3339, r.coreProps.Modified); err == nil {
			meta.Modified = t
		}
	}
	if r.appProps != nil {
		meta.Application = r.appProps.Application
		meta.Company = r.appProps.Company
	}

	return meta
}
