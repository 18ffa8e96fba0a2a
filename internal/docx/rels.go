package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	relsPartName     = "word/_rels/document.xml.rels"
	packageRelsNS    = "http://schemas.openxmlformats.org/package/2006/relationships"
	HyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// Relationship is one entry of the document part's relationship table.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// External reports whether the relationship points outside the package.
func (r Relationship) External() bool { return r.TargetMode == "External" }

type relationshipTable struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []Relationship `xml:"Relationship"`
}

func parseRelationships(data []byte) (*relationshipTable, error) {
	var table relationshipTable
	if err := xml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	if table.Xmlns == "" {
		table.Xmlns = packageRelsNS
	}
	return &table, nil
}

func (t *relationshipTable) serialize() ([]byte, error) {
	body, err := xml.Marshal(t)
	if err != nil {
		return nil, err
	}
	out := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" + string(body)
	return []byte(out), nil
}

func (t *relationshipTable) byID(id string) (Relationship, bool) {
	for _, r := range t.Rels {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// add appends a relationship with a fresh rId and returns it.
func (t *relationshipTable) add(relType, target string, external bool) Relationship {
	max := 0
	for _, r := range t.Rels {
		numeric := strings.TrimPrefix(r.ID, "rId")
		if n, err := strconv.Atoi(numeric); err == nil && n > max {
			max = n
		}
	}
	rel := Relationship{
		ID:     fmt.Sprintf("rId%d", max+1),
		Type:   relType,
		Target: target,
	}
	if external {
		rel.TargetMode = "External"
	}
	t.Rels = append(t.Rels, rel)
	return rel
}
