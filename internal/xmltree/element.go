package xmltree

import (
	"encoding/xml"
	"strings"
)

// Element is a node of the parsed document.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	text     []byte
}

// Is reports whether the element has the given namespace URI and local name.
func (e *Element) Is(space, local string) bool {
	return e != nil && e.Name.Space == space && e.Name.Local == local
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(space, local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Is(space, local) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the direct children with the given name in document order.
func (e *Element) ChildrenNamed(space, local string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Is(space, local) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant (not e itself) with the given name,
// searching depth-first in document order.
func (e *Element) Find(space, local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Is(space, local) {
			return c
		}
		if found := c.Find(space, local); found != nil {
			return found
		}
	}
	return nil
}

// Text returns the character data held directly by the element. Elements
// that also have child elements only contribute their non-blank text.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	if len(e.Children) > 0 {
		return strings.TrimSpace(string(e.text))
	}
	return string(e.text)
}

// ChildText returns the text of the first matching direct child and whether
// that child exists.
func (e *Element) ChildText(space, local string) (string, bool) {
	c := e.Child(space, local)
	if c == nil {
		return "", false
	}
	return c.Text(), true
}

// Attr returns the value of the attribute with the given name.
func (e *Element) Attr(space, local string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
