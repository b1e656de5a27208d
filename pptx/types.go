package pptx

import "encoding/xml"

// presentationXML represents the ppt/presentation.xml part.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"` // width in EMUs
	Cy int64 `xml:"cy,attr"` // height in EMUs
}

// slideXML represents a ppt/slides/slide*.xml part.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"spTree"`
}

// spTreeXML is the shape tree holding all shapes on a slide.
type spTreeXML struct {
	Sp           []spXML           `xml:"sp"`           // text boxes and filled shapes
	CxnSp        []cxnSpXML        `xml:"cxnSp"`        // connectors
	Pic          []picXML          `xml:"pic"`          // pictures
	GraphicFrame []graphicFrameXML `xml:"graphicFrame"` // tables
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"` // placeholder info
}

type phXML struct {
	Type string `xml:"type,attr"` // title, body, subTitle, ctrTitle, etc.
	Idx  int    `xml:"idx,attr"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	PrstGeom  *prstGeomXML  `xml:"prstGeom"`
	SolidFill *solidFillXML `xml:"solidFill"`
	NoFill    *struct{}     `xml:"noFill"`
	Ln        *lnXML        `xml:"ln"`
}

type xfrmXML struct {
	Rot int64  `xml:"rot,attr"` // rotation in 60000ths of a degree
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"` // position in EMUs
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"` // size in EMUs
	Cy int64 `xml:"cy,attr"`
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"` // preset geometry name
}

type solidFillXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type srgbClrXML struct {
	Val string `xml:"val,attr"` // RRGGBB hex
}

type lnXML struct {
	W         int64         `xml:"w,attr"` // line width in EMUs
	SolidFill *solidFillXML `xml:"solidFill"`
}

// txBodyXML represents text body content.
type txBodyXML struct {
	BodyPr bodyPrXML `xml:"bodyPr"`
	P      []pXML    `xml:"p"` // paragraphs
}

type bodyPrXML struct {
	Anchor string `xml:"anchor,attr"`
	Wrap   string `xml:"wrap,attr"`
}

// pXML represents a paragraph.
type pXML struct {
	PPr *pPrXML `xml:"pPr"`
	R   []rXML  `xml:"r"` // text runs
}

type pPrXML struct {
	Algn   string     `xml:"algn,attr"` // l, ctr, r, just
	SpcBef *spcBefXML `xml:"spcBef"`
}

type spcBefXML struct {
	SpcPts *spcPtsXML `xml:"spcPts"`
}

type spcPtsXML struct {
	Val int `xml:"val,attr"` // hundredths of a point
}

// rXML represents a text run.
type rXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

type rPrXML struct {
	Lang      string        `xml:"lang,attr"`
	Sz        int           `xml:"sz,attr"` // font size in hundredths of a point
	B         *int          `xml:"b,attr"`  // bold (1 = true)
	I         *int          `xml:"i,attr"`  // italic (1 = true)
	SolidFill *solidFillXML `xml:"solidFill"`
	Latin     *latinXML     `xml:"latin"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

// cxnSpXML represents a connector shape.
type cxnSpXML struct {
	SpPr spPrXML `xml:"spPr"`
}

// picXML represents an embedded picture.
type picXML struct {
	BlipFill blipFillXML `xml:"blipFill"`
	SpPr     spPrXML     `xml:"spPr"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
}

// graphicFrameXML represents a graphic frame holding a table.
type graphicFrameXML struct {
	Xfrm    *xfrmXML   `xml:"xfrm"`
	Graphic graphicXML `xml:"graphic"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string  `xml:"uri,attr"`
	Tbl *tblXML `xml:"tbl"`
}

type tblXML struct {
	TblGrid tblGridXML `xml:"tblGrid"`
	Tr      []trXML    `xml:"tr"`
}

type tblGridXML struct {
	GridCol []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W int64 `xml:"w,attr"` // column width in EMUs
}

type trXML struct {
	H  int64   `xml:"h,attr"` // row height in EMUs
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
	TcPr   *tcPrXML   `xml:"tcPr"`
}

type tcPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
}

// relationshipsXML represents .rels parts.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName    xml.Name `xml:"coreProperties"`
	Title      string   `xml:"title"`
	Subject    string   `xml:"subject"`
	Creator    string   `xml:"creator"`
	Keywords   string   `xml:"keywords"`
	Identifier string   `xml:"identifier"`
	Created    string   `xml:"created"`
	Modified   string   `xml:"modified"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Slides      int      `xml:"Slides"`
}
