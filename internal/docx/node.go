package docx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// node is one element or character-data node of a WordprocessingML part.
// Character data nodes have an empty Name and carry their bytes in Text.
type node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*node
	Text     string
}

func (n *node) isElement() bool { return n.Name.Local != "" }

// is reports whether n is an element with the given local name.
// WordprocessingML local names are unambiguous for the elements this
// package touches, so the namespace is not compared.
func (n *node) is(local string) bool {
	return n.Name.Local == local
}

// childElements returns direct element children with the given local name.
func (n *node) childElements(local string) []*node {
	var out []*node
	for _, c := range n.Children {
		if c.isElement() && c.is(local) {
			out = append(out, c)
		}
	}
	return out
}

// descendants appends all descendant elements with the given local name
// in document order.
func (n *node) descendants(local string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, c := range cur.Children {
			if !c.isElement() {
				continue
			}
			if c.is(local) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// text concatenates all character data below n.
func (n *node) text() string {
	var b strings.Builder
	var walk func(*node)
	walk = func(cur *node) {
		for _, c := range cur.Children {
			if c.isElement() {
				walk(c)
				continue
			}
			b.WriteString(c.Text)
		}
	}
	walk(n)
	return b.String()
}

// setCharData replaces all character-data children of n with a single one.
// Element children are kept in place.
func (n *node) setCharData(s string) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.isElement() {
			kept = append(kept, c)
		}
	}
	n.Children = append(kept, &node{Text: s})
}

// attr returns the value of the attribute with the given namespace and
// local name ("" namespace matches unprefixed attributes).
func (n *node) attr(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// setAttr sets or adds an attribute value.
func (n *node) setAttr(space, local, value string) {
	for i, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Space: space, Local: local}, Value: value})
}

// parseXML builds a node tree from a raw XML part. Comments and
// processing instructions are dropped; docx parts do not carry
// meaningful ones outside the XML declaration, which is re-emitted on
// serialization.
func parseXML(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []*node
	var root *node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, &node{Text: string(t)})
			}
		}
	}
	return root, nil
}

// nsPrefixes collects namespace declarations from the root element so
// that serialization can restore the original prefixes. encoding/xml
// expands prefixed names to full URIs while parsing.
func nsPrefixes(root *node) map[string]string {
	prefixes := make(map[string]string)
	for _, a := range root.Attrs {
		if a.Name.Space == "xmlns" {
			prefixes[a.Value] = a.Name.Local
		} else if a.Name.Space == "" && a.Name.Local == "xmlns" {
			prefixes[a.Value] = ""
		}
	}
	prefixes["xml"] = "xml"
	return prefixes
}

// serializeXML writes the node tree back to bytes, restoring namespace
// prefixes from the given map and prepending the XML declaration Word
// emits for its parts.
func serializeXML(root *node, prefixes map[string]string) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n")
	writeNode(&b, root, prefixes)
	return b.Bytes()
}

func writeNode(b *bytes.Buffer, n *node, prefixes map[string]string) {
	if !n.isElement() {
		_ = xml.EscapeText(b, []byte(n.Text))
		return
	}
	name := qualifiedName(n.Name, prefixes)
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(attrName(a.Name, prefixes))
		b.WriteString(`="`)
		_ = xml.EscapeText(b, []byte(a.Value))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		writeNode(b, c, prefixes)
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func qualifiedName(name xml.Name, prefixes map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	if p, ok := prefixes[name.Space]; ok && p != "" {
		return p + ":" + name.Local
	}
	return name.Local
}

func attrName(name xml.Name, prefixes map[string]string) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == "xmlns":
		return "xmlns:" + name.Local
	default:
		return qualifiedName(name, prefixes)
	}
}
