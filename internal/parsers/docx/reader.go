package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// Archive part names.
const (
	documentPart = "word/document.xml"
	corePart     = "docProps/core.xml"
)

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body blockList `xml:"body"`
}

// blockList is the ordered block content of a body or table cell.
type blockList []block

// block is exactly one of a paragraph, a table or a structured data tag.
type block struct {
	Paragraph *paragraph
	Table     *table
	SDT       bool
}

type paragraph struct {
	Props paragraphProps
	Runs  []run
}

type paragraphProps struct {
	NumPr  *struct{} `xml:"numPr"`
	Indent *indent   `xml:"ind"`
}

// indent carries the character-unit indentation in hundredths of a character.
type indent struct {
	StartChars int `xml:"startChars,attr"`
	LeftChars  int `xml:"leftChars,attr"`
}

type run struct {
	Text string
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Content blockList
}

// UnmarshalXML decodes body or cell children in document order.
func (l *blockList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				*l = append(*l, block{Paragraph: &p})
			case "tbl":
				var tbl table
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				*l = append(*l, block{Table: &tbl})
			case "sdt":
				*l = append(*l, block{SDT: true})
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes the cell's block content.
func (c *tableCell) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return c.Content.UnmarshalXML(d, start)
}

// UnmarshalXML collects paragraph properties and runs, including runs
// nested in hyperlinks.
func (p *paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Props, &t); err != nil {
					return err
				}
			case "r":
				var r run
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink", "ins", "smartTag":
				// runs inside are collected by this loop
				continue
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// UnmarshalXML renders a run's text, tabs and breaks in order.
func (r *run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				b.WriteString(s)
			case "tab":
				b.WriteByte('\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				b.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = b.String()
			return nil
		}
	}
}

// Text is the paragraph's runs joined.
func (p *paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Numbered reports whether the paragraph belongs to a numbered or bulleted list.
func (p *paragraph) Numbered() bool {
	return p.Props.NumPr != nil
}

// IndentColumns is the start indentation in whole characters.
func (p *paragraph) IndentColumns() int {
	if p.Props.Indent == nil {
		return 0
	}
	chars := p.Props.Indent.StartChars
	if chars == 0 {
		chars = p.Props.Indent.LeftChars
	}
	if chars < 0 {
		return 0
	}
	return chars / 100
}

// openArchive reads the package and returns the named parts. A missing
// core part is returned as nil.
func openArchive(data []byte) (document, core []byte, err error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("docx: open archive: %v: %w", err, domain.ErrParseFailure)
	}

	for _, file := range reader.File {
		if file.Name != documentPart && file.Name != corePart {
			continue
		}
		content, err := readPart(file)
		if err != nil {
			return nil, nil, fmt.Errorf("docx: read %s: %v: %w", file.Name, err, domain.ErrParseFailure)
		}
		if file.Name == documentPart {
			document = content
		} else {
			core = content
		}
	}

	if document == nil {
		return nil, nil, fmt.Errorf("docx: missing %s: %w", documentPart, domain.ErrParseFailure)
	}
	return document, core, nil
}

func readPart(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// decodeDocument parses word/document.xml.
func decodeDocument(content []byte) (*documentXML, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("docx: decode document: %v: %w", err, domain.ErrParseFailure)
	}
	return &doc, nil
}
