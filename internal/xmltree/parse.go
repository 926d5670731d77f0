package xmltree

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	defaultMaxDepth    = 1024
	defaultMaxElements = 5_000_000
)

// Limits bounds the size of a parsed document. Zero values select defaults.
type Limits struct {
	MaxDepth    int
	MaxElements int
}

func (l Limits) resolve() Limits {
	return Limits{
		MaxDepth:    cmp.Or(l.MaxDepth, defaultMaxDepth),
		MaxElements: cmp.Or(l.MaxElements, defaultMaxElements),
	}
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader, limits Limits) (*Element, error) {
	limits = limits.resolve()
	decoder := newDecoder(r)

	var stack []*Element
	var root *Element
	rootClosed := false
	count := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			if len(stack) >= limits.MaxDepth {
				return nil, fmt.Errorf("element %s exceeds maximum depth %d", t.Name.Local, limits.MaxDepth)
			}
			count++
			if count > limits.MaxElements {
				return nil, fmt.Errorf("document exceeds maximum of %d elements", limits.MaxElements)
			}
			elem := &Element{
				Name:  t.Name,
				Attrs: t.Copy().Attr,
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].text = append(stack[len(stack)-1].text, t...)
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	if !rootClosed {
		return nil, fmt.Errorf("element %s is not closed: %w", root.Name.Local, io.ErrUnexpectedEOF)
	}

	return root, nil
}

// newDecoder strips a UTF-8 BOM, transcodes BOM-marked UTF-16 input and
// resolves any other declared encoding through the html charset table.
func newDecoder(r io.Reader) *xml.Decoder {
	utf8Input := transform.NewReader(r, textunicode.BOMOverride(transform.Nop))
	decoder := xml.NewDecoder(utf8Input)
	decoder.CharsetReader = charsetReader
	return decoder
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16", "utf-16le", "utf-16be", "unicode":
		// BOMOverride has already produced UTF-8
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
