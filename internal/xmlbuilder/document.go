package xmlbuilder

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const noParent = -1

type nodeKind int

const (
	elementNode nodeKind = iota
	textNode
)

// node lives in the document arena and refers to others by index.
type node struct {
	kind     nodeKind
	tag      string
	text     string
	attrs    []Attr
	parent   int
	children []int
}

// Document is an assembled claim document. Index 0 is the root element.
type Document struct {
	nodes []node
}

func newDocument(rootTag string, attrs []Attr) *Document {
	d := &Document{}
	d.nodes = append(d.nodes, node{
		kind:   elementNode,
		tag:    rootTag,
		attrs:  append([]Attr(nil), attrs...),
		parent: noParent,
	})
	return d
}

const root = 0

// RootTag returns the name of the root element.
func (d *Document) RootTag() string {
	return d.nodes[root].tag
}

// Elements returns the number of elements, including the root.
func (d *Document) Elements() int {
	n := 0
	for _, nd := range d.nodes {
		if nd.kind == elementNode {
			n++
		}
	}
	return n
}

func (d *Document) addElement(parent int, tag string, attrs []Attr) int {
	idx := len(d.nodes)
	d.nodes = append(d.nodes, node{
		kind:   elementNode,
		tag:    tag,
		attrs:  append([]Attr(nil), attrs...),
		parent: parent,
	})
	d.nodes[parent].children = append(d.nodes[parent].children, idx)
	return idx
}

func (d *Document) addText(parent int, text string) {
	idx := len(d.nodes)
	d.nodes = append(d.nodes, node{kind: textNode, text: text, parent: parent})
	d.nodes[parent].children = append(d.nodes[parent].children, idx)
}

// setAttr overwrites an existing attribute in place or appends a new one.
func (d *Document) setAttr(idx int, name, value string) {
	attrs := d.nodes[idx].attrs
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return
		}
	}
	d.nodes[idx].attrs = append(attrs, Attr{Name: name, Value: value})
}

func (d *Document) attr(idx int, name string) (string, bool) {
	for _, a := range d.nodes[idx].attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// matches reports whether element idx carries want. In exact mode the
// attribute sets must be equal, otherwise want must be a subset.
func (d *Document) matches(idx int, want []Attr, exact bool) bool {
	if exact && len(d.nodes[idx].attrs) != len(want) {
		return false
	}
	for _, a := range want {
		if v, ok := d.attr(idx, a.Name); !ok || v != a.Value {
			return false
		}
	}
	return true
}

// child returns the first element child of parent with tag and matching attributes.
func (d *Document) child(parent int, tag string, want []Attr, exact bool) (int, bool) {
	for _, c := range d.nodes[parent].children {
		n := d.nodes[c]
		if n.kind == elementNode && n.tag == tag && d.matches(c, want, exact) {
			return c, true
		}
	}
	return 0, false
}

// text returns the concatenated text below idx in document order.
func (d *Document) text(idx int) string {
	n := d.nodes[idx]
	if n.kind == textNode {
		return n.text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(d.text(c))
	}
	return sb.String()
}

// selectPath returns every element matching path. A leading "/" makes the
// path absolute, starting with the root tag; otherwise it starts below the root.
func (d *Document) selectPath(path string) ([]int, error) {
	current := []int{root}
	if strings.HasPrefix(path, pathSeparator) {
		segments, err := parsePath(strings.TrimPrefix(path, pathSeparator))
		if err != nil {
			return nil, err
		}
		if segments[0].tag != d.RootTag() || !d.matches(root, segments[0].attrs, false) {
			return nil, nil
		}
		return d.descend(current, segments[1:]), nil
	}

	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	return d.descend(current, segments), nil
}

func (d *Document) descend(current []int, segments []segment) []int {
	for _, seg := range segments {
		var next []int
		for _, idx := range current {
			for _, c := range d.nodes[idx].children {
				n := d.nodes[c]
				if n.kind == elementNode && n.tag == seg.tag && d.matches(c, seg.attrs, false) {
					next = append(next, c)
				}
			}
		}
		current = next
	}
	return current
}

// NodeValue returns the text of the first element matching path, or of the
// attribute when the last segment is "@name". Missing nodes yield "".
func (d *Document) NodeValue(path string) string {
	attrName := ""
	if i := strings.LastIndex(path, pathSeparator+"@"); i >= 0 {
		attrName = path[i+2:]
		path = path[:i]
	}

	matches, err := d.selectPath(path)
	if err != nil || len(matches) == 0 {
		return ""
	}
	if attrName != "" {
		v, _ := d.attr(matches[0], attrName)
		return v
	}
	return d.text(matches[0])
}

// Count returns the number of elements matching path.
func (d *Document) Count(path string) int {
	matches, err := d.selectPath(path)
	if err != nil {
		return 0
	}
	return len(matches)
}

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Render serializes the document, optionally with an XML declaration and
// two-space indentation. Output is deterministic.
func (d *Document) Render(includeDecl, pretty bool) (string, error) {
	var buf bytes.Buffer
	if includeDecl {
		buf.WriteString(declaration)
		if pretty {
			buf.WriteByte('\n')
		}
	}

	enc := xml.NewEncoder(&buf)
	if pretty {
		enc.Indent("", "  ")
	}
	if err := d.encode(enc, root); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Document) encode(enc *xml.Encoder, idx int) error {
	n := d.nodes[idx]
	if n.kind == textNode {
		return enc.EncodeToken(xml.CharData(n.text))
	}

	start := xml.StartElement{Name: xml.Name{Local: n.tag}}
	for _, a := range n.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := d.encode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// String renders the compact form with a declaration.
func (d *Document) String() string {
	s, err := d.Render(true, false)
	if err != nil {
		return "<!-- " + err.Error() + " -->"
	}
	return s
}
