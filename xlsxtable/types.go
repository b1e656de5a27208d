package xlsxtable

import "encoding/xml"

// workbookXML represents the xl/workbook.xml part.
type workbookXML struct {
	XMLName xml.Name  `xml:"workbook"`
	Sheets  sheetsXML `xml:"sheets"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

type sheetRefXML struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// worksheetXML represents a xl/worksheets/sheet*.xml part.
type worksheetXML struct {
	XMLName   xml.Name     `xml:"worksheet"`
	SheetData sheetDataXML `xml:"sheetData"`
}

type sheetDataXML struct {
	Rows []rowXML `xml:"row"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // 1-indexed row number
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string        `xml:"r,attr"` // A1-style reference
	T  string        `xml:"t,attr"` // s, b, str, inlineStr, e; empty means number
	V  string        `xml:"v"`
	Is *inlineStrXML `xml:"is"`
}

type inlineStrXML struct {
	T string `xml:"t"`
}

// sharedStringsXML represents the xl/sharedStrings.xml part.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T string   `xml:"t"` // plain text entry
	R []runXML `xml:"r"` // rich text runs
}

type runXML struct {
	T string `xml:"t"`
}

// relationshipsXML represents the xl/_rels/workbook.xml.rels part.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}
