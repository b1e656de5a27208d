// Package pptx writes and reads PPTX (Office Open XML Presentation) files.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// Relationship types used in .rels parts.
const (
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// slideNamespaces declares the namespaces used by presentation and slide
// parts.
const slideNamespaces = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// imageContentTypes maps the formats the model accepts to their MIME types.
var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// Save writes the deck to filename as a PPTX file. It is a single blocking
// call; when it returns without error the file on disk is complete.
func Save(deck *model.Deck, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := Write(deck, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the deck as a PPTX archive to w. A deck with no slides
// cannot be written; the resulting file would not be a valid presentation.
func Write(deck *model.Deck, w io.Writer) error {
	if deck == nil || deck.SlideCount() == 0 {
		return fmt.Errorf("deck has no slides")
	}

	pw := &partWriter{zw: zip.NewWriter(w), deck: deck}
	if err := pw.writeParts(); err != nil {
		pw.zw.Close()
		return err
	}
	return pw.zw.Close()
}

// partWriter assembles the package parts of one presentation.
type partWriter struct {
	zw         *zip.Writer
	deck       *model.Deck
	media      []mediaPart
	imageCount int
}

type mediaPart struct {
	name string // full part name, e.g. ppt/media/image1.png
	data []byte
}

type relEntry struct {
	id     string
	typ    string
	target string
}

func (pw *partWriter) writeParts() error {
	if err := pw.writePart("[Content_Types].xml", pw.contentTypes()); err != nil {
		return err
	}
	if err := pw.writePart("_rels/.rels", rootRelsPart); err != nil {
		return err
	}
	if err := pw.writePart("docProps/core.xml", pw.coreProps()); err != nil {
		return err
	}
	if err := pw.writePart("docProps/app.xml", pw.appProps()); err != nil {
		return err
	}
	if err := pw.writePart("ppt/presentation.xml", pw.presentation()); err != nil {
		return err
	}
	if err := pw.writePart("ppt/_rels/presentation.xml.rels", relsXML(pw.presentationRels())); err != nil {
		return err
	}

	statics := []struct{ name, content string }{
		{"ppt/slideMasters/slideMaster1.xml", slideMasterPart},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsPart},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutPart},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsPart},
		{"ppt/theme/theme1.xml", themePart},
		{"ppt/tableStyles.xml", tableStylesPart},
	}
	for _, p := range statics {
		if err := pw.writePart(p.name, p.content); err != nil {
			return err
		}
	}

	for i, s := range pw.deck.Slides {
		if err := pw.writeSlide(s, i+1); err != nil {
			return err
		}
	}

	for _, m := range pw.media {
		w, err := pw.zw.Create(m.name)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", m.name, err)
		}
		if _, err := w.Write(m.data); err != nil {
			return fmt.Errorf("writing part %s: %w", m.name, err)
		}
	}

	return nil
}

func (pw *partWriter) writePart(name, content string) error {
	w, err := pw.zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

// imageExtensions returns the distinct picture formats used by the deck, in
// stable order.
func (pw *partWriter) imageExtensions() []string {
	seen := make(map[string]bool)
	for _, s := range pw.deck.Slides {
		for _, prim := range s.Primitives {
			if pic, ok := prim.(*model.Picture); ok {
				seen[pic.Format] = true
			}
		}
	}
	exts := make([]string, 0, len(seen))
	for ext := range seen {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (pw *partWriter) contentTypes() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` + "\n")
	b.WriteString(`  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` + "\n")
	b.WriteString(`  <Default Extension="xml" ContentType="application/xml"/>` + "\n")
	for _, ext := range pw.imageExtensions() {
		ct := imageContentTypes[ext]
		if ct == "" {
			ct = "image/" + ext
		}
		fmt.Fprintf(&b, `  <Default Extension="%s" ContentType="%s"/>`+"\n", ext, ct)
	}
	b.WriteString(`  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` + "\n")
	b.WriteString(`  <Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>` + "\n")
	b.WriteString(`  <Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` + "\n")
	b.WriteString(`  <Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` + "\n")
	b.WriteString(`  <Override PartName="/ppt/tableStyles.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"/>` + "\n")
	for i := range pw.deck.Slides {
		fmt.Fprintf(&b, `  <Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`+"\n", i+1)
	}
	b.WriteString(`  <Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` + "\n")
	b.WriteString(`  <Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` + "\n")
	b.WriteString(`</Types>`)
	return b.String()
}

func (pw *partWriter) coreProps() string {
	m := pw.deck.Metadata
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` + "\n")
	if m.Title != "" {
		fmt.Fprintf(&b, "  <dc:title>%s</dc:title>\n", escape(m.Title))
	}
	if m.Subject != "" {
		fmt.Fprintf(&b, "  <dc:subject>%s</dc:subject>\n", escape(m.Subject))
	}
	if m.Author != "" {
		fmt.Fprintf(&b, "  <dc:creator>%s</dc:creator>\n", escape(m.Author))
	}
	if len(m.Keywords) > 0 {
		fmt.Fprintf(&b, "  <cp:keywords>%s</cp:keywords>\n", escape(strings.Join(m.Keywords, ", ")))
	}
	if m.Identifier != "" {
		fmt.Fprintf(&b, "  <dc:identifier>%s</dc:identifier>\n", escape(m.Identifier))
	}
	if !m.Created.IsZero() {
		fmt.Fprintf(&b, `  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`+"\n", m.Created.UTC().Format(time.RFC3339))
	}
	if !m.Modified.IsZero() {
		fmt.Fprintf(&b, `  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`+"\n", m.Modified.UTC().Format(time.RFC3339))
	}
	b.WriteString(`</cp:coreProperties>`)
	return b.String()
}

func (pw *partWriter) appProps() string {
	m := pw.deck.Metadata
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` + "\n")
	if m.Application != "" {
		fmt.Fprintf(&b, "  <Application>%s</Application>\n", escape(m.Application))
	}
	fmt.Fprintf(&b, "  <Slides>%d</Slides>\n", pw.deck.SlideCount())
	if m.Company != "" {
		fmt.Fprintf(&b, "  <Company>%s</Company>\n", escape(m.Company))
	}
	b.WriteString(`</Properties>`)
	return b.String()
}

func (pw *partWriter) presentation() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<p:presentation ` + slideNamespaces + ">\n")
	b.WriteString("  <p:sldMasterIdLst>\n")
	b.WriteString(`    <p:sldMasterId id="2147483648" r:id="rId1"/>` + "\n")
	b.WriteString("  </p:sldMasterIdLst>\n")
	b.WriteString("  <p:sldIdLst>\n")
	for i := range pw.deck.Slides {
		fmt.Fprintf(&b, `    <p:sldId id="%d" r:id="rId%d"/>`+"\n", 256+i, i+2)
	}
	b.WriteString("  </p:sldIdLst>\n")
	fmt.Fprintf(&b, `  <p:sldSz cx="%d" cy="%d"/>`+"\n", pw.deck.SlideWidth, pw.deck.SlideHeight)
	b.WriteString(`  <p:notesSz cx="6858000" cy="9144000"/>` + "\n")
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (pw *partWriter) presentationRels() []relEntry {
	rels := []relEntry{{id: "rId1", typ: relTypeSlideMaster, target: "slideMasters/slideMaster1.xml"}}
	for i := range pw.deck.Slides {
		rels = append(rels, relEntry{
			id:     fmt.Sprintf("rId%d", i+2),
			typ:    relTypeSlide,
			target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	rels = append(rels, relEntry{
		id:     fmt.Sprintf("rId%d", pw.deck.SlideCount()+2),
		typ:    relTypeTableStyles,
		target: "tableStyles.xml",
	})
	return rels
}

func relsXML(rels []relEntry) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + "\n")
	for _, r := range rels {
		fmt.Fprintf(&b, `  <Relationship Id="%s" Type="%s" Target="%s"/>`+"\n", r.id, r.typ, r.target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func (pw *partWriter) writeSlide(s *model.Slide, num int) error {
	sw := &slideWriter{
		pw:     pw,
		nextID: 2, // id 1 is the shape tree group
		rels:   []relEntry{{id: "rId1", typ: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"}},
	}

	content, err := sw.build(s, num)
	if err != nil {
		return err
	}
	if err := pw.writePart(fmt.Sprintf("ppt/slides/slide%d.xml", num), content); err != nil {
		return err
	}
	return pw.writePart(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), relsXML(sw.rels))
}

// slideWriter emits the shape tree of one slide.
type slideWriter struct {
	pw     *partWriter
	rels   []relEntry
	nextID int
}

func (sw *slideWriter) id() int {
	id := sw.nextID
	sw.nextID++
	return id
}

func (sw *slideWriter) build(s *model.Slide, num int) (string, error) {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<p:sld ` + slideNamespaces + `>`)
	b.WriteString(`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	for _, prim := range s.Primitives {
		switch p := prim.(type) {
		case *model.FilledRect:
			sw.filledRect(&b, p)
		case *model.TextBox:
			sw.textBox(&b, p)
		case *model.Table:
			sw.table(&b, p)
		case *model.Line:
			sw.line(&b, p)
		case *model.Picture:
			sw.picture(&b, p)
		default:
			return "", fmt.Errorf("slide %d: cannot serialize primitive %T", num, prim)
		}
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String(), nil
}

// xfrm writes the shape transform. Rotation is in degrees; DrawingML wants
// 60000ths of a degree.
func (sw *slideWriter) xfrm(b *strings.Builder, r geom.Rect, rotation float64) {
	if rotation != 0 {
		fmt.Fprintf(b, `<a:xfrm rot="%d">`, int64(math.Round(rotation*60000)))
	} else {
		b.WriteString(`<a:xfrm>`)
	}
	fmt.Fprintf(b, `<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.Width, r.Height)
}

func (sw *slideWriter) filledRect(b *strings.Builder, r *model.FilledRect) {
	id := sw.id()
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	sw.xfrm(b, r.Rect, r.Rotation)
	prst := r.Preset
	if prst == "" {
		prst = "rect"
	}
	fmt.Fprintf(b, `<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, prst)
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.Fill.Hex())
	if r.BorderWidth > 0 {
		fmt.Fprintf(b, `<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`, r.BorderWidth, r.BorderColor.Hex())
	}
	// Empty effect list keeps the shape from inheriting the theme shadow.
	b.WriteString(`<a:effectLst/>`)
	b.WriteString(`</p:spPr></p:sp>`)
}

func (sw *slideWriter) textBox(b *strings.Builder, tb *model.TextBox) {
	id := sw.id()
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	sw.xfrm(b, tb.Rect, 0)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"/><a:lstStyle/>`)
	if len(tb.Paragraphs) == 0 {
		// A text body must hold at least one paragraph.
		b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	for _, p := range tb.Paragraphs {
		sw.paragraph(b, p)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func (sw *slideWriter) paragraph(b *strings.Builder, p *model.Paragraph) {
	b.WriteString(`<a:p>`)
	fmt.Fprintf(b, `<a:pPr algn="%s"`, alignCode(p.Alignment))
	if p.SpaceBefore > 0 {
		fmt.Fprintf(b, `><a:spcBef><a:spcPts val="%d"/></a:spcBef></a:pPr>`, hundredths(p.SpaceBefore))
	} else {
		b.WriteString(`/>`)
	}
	for _, r := range p.Runs {
		sw.run(b, r.Text, r.Style)
	}
	if len(p.Runs) == 0 {
		b.WriteString(`<a:endParaRPr lang="en-US"/>`)
	}
	b.WriteString(`</a:p>`)
}

func (sw *slideWriter) run(b *strings.Builder, text string, style model.Style) {
	b.WriteString(`<a:r><a:rPr lang="en-US"`)
	if style.Size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, int(math.Round(style.Size*100)))
	}
	if style.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(`>`)
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, style.Color.Hex())
	if style.Font != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, escape(style.Font))
	}
	b.WriteString(`</a:rPr>`)
	fmt.Fprintf(b, `<a:t>%s</a:t>`, escape(text))
	b.WriteString(`</a:r>`)
}

func (sw *slideWriter) line(b *strings.Builder, l *model.Line) {
	id := sw.id()
	fmt.Fprintf(b, `<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="Line %d"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr><p:spPr>`, id, id)
	sw.xfrm(b, l.Rect, 0)
	b.WriteString(`<a:prstGeom prst="line"><a:avLst/></a:prstGeom>`)
	fmt.Fprintf(b, `<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`, l.Weight, l.Color.Hex())
	b.WriteString(`</p:spPr></p:cxnSp>`)
}

func (sw *slideWriter) table(b *strings.Builder, t *model.Table) {
	id := sw.id()
	fmt.Fprintf(b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/><p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	fmt.Fprintf(b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`, t.Rect.X, t.Rect.Y, t.Rect.Width, t.Rect.Height)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
	fmt.Fprintf(b, `<a:tblPr firstRow="1" bandRow="1"><a:tableStyleId>%s</a:tableStyleId></a:tblPr>`, tableStyleDefault)
	b.WriteString(`<a:tblGrid>`)
	for c := 0; c < t.ColCount(); c++ {
		fmt.Fprintf(b, `<a:gridCol w="%d"/>`, t.ColumnWidth(c))
	}
	b.WriteString(`</a:tblGrid>`)
	for r := range t.Rows {
		fmt.Fprintf(b, `<a:tr h="%d">`, t.RowHeight(r))
		for c := range t.Rows[r] {
			sw.tableCell(b, &t.Rows[r][c])
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func (sw *slideWriter) tableCell(b *strings.Builder, c *model.Cell) {
	b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p>`)
	if c.Text != "" {
		sw.run(b, c.Text, c.Style)
	} else {
		b.WriteString(`<a:endParaRPr lang="en-US"/>`)
	}
	b.WriteString(`</a:p></a:txBody>`)
	if c.Fill != nil {
		fmt.Fprintf(b, `<a:tcPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:tcPr>`, c.Fill.Hex())
	} else {
		b.WriteString(`<a:tcPr/>`)
	}
	b.WriteString(`</a:tc>`)
}

func (sw *slideWriter) picture(b *strings.Builder, p *model.Picture) {
	id := sw.id()
	sw.pw.imageCount++
	name := fmt.Sprintf("image%d.%s", sw.pw.imageCount, p.Format)
	sw.pw.media = append(sw.pw.media, mediaPart{name: "ppt/media/" + name, data: p.Data})

	relID := fmt.Sprintf("rId%d", len(sw.rels)+1)
	sw.rels = append(sw.rels, relEntry{id: relID, typ: relTypeImage, target: "../media/" + name})

	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID)
	b.WriteString(`<p:spPr>`)
	sw.xfrm(b, p.Rect, 0)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func alignCode(a model.Alignment) string {
	switch a {
	case model.AlignCenter:
		return "ctr"
	case model.AlignRight:
		return "r"
	case model.AlignJustify:
		return "just"
	default:
		return "l"
	}
}

// hundredths converts an EMU length to hundredths of a point, the unit
// DrawingML uses for spacing values.
func hundredths(v geom.EMU) int {
	return int(math.Round(v.Points() * 100))
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
