package xmltree

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	textunicode "golang.org/x/text/encoding/unicode"
)

const testNS = "urn:test"

func TestParse_BuildsTree(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<Root xmlns="urn:test" xmlns:o="urn:other">
  <Item id="1"><Name>first</Name></Item>
  <o:Item>other</o:Item>
  <Item id="2"><Name>second</Name><Deep><Name>nested</Name></Deep></Item>
</Root>`

	root, err := Parse(strings.NewReader(doc), Limits{})
	require.NoError(t, err)

	assert.True(t, root.Is(testNS, "Root"))
	items := root.ChildrenNamed(testNS, "Item")
	require.Len(t, items, 2)

	id, ok := items[1].Attr("", "id")
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	name, ok := items[0].ChildText(testNS, "Name")
	assert.True(t, ok)
	assert.Equal(t, "first", name)

	other := root.Child("urn:other", "Item")
	require.NotNil(t, other)
	assert.Equal(t, "other", other.Text())

	_, ok = items[0].ChildText(testNS, "Missing")
	assert.False(t, ok)
}

func TestElement_FindIsDepthFirstDocumentOrder(t *testing.T) {
	doc := `<r xmlns="urn:test"><a><b><t>deep</t></b></a><t>shallow</t></r>`

	root, err := Parse(strings.NewReader(doc), Limits{})
	require.NoError(t, err)

	found := root.Find(testNS, "t")
	require.NotNil(t, found)
	assert.Equal(t, "deep", found.Text())

	assert.Nil(t, root.Find(testNS, "r"), "Find must not match the element itself")
	assert.Nil(t, root.Find(testNS, "missing"))
}

func TestElement_TextOfContainerIsTrimmed(t *testing.T) {
	doc := "<r xmlns=\"urn:test\">\n  <a>  padded  </a>\n</r>"

	root, err := Parse(strings.NewReader(doc), Limits{})
	require.NoError(t, err)

	assert.Equal(t, "", root.Text())
	assert.Equal(t, "  padded  ", root.Child(testNS, "a").Text())
}

func TestElement_NilSafe(t *testing.T) {
	var e *Element
	assert.Nil(t, e.Child(testNS, "a"))
	assert.Nil(t, e.Find(testNS, "a"))
	assert.Empty(t, e.ChildrenNamed(testNS, "a"))
	assert.Equal(t, "", e.Text())
	assert.False(t, e.Is(testNS, "a"))
}

func TestParse_Encodings(t *testing.T) {
	utf16, err := textunicode.UTF16(textunicode.LittleEndian, textunicode.UseBOM).NewEncoder().
		String(`<?xml version="1.0" encoding="utf-16"?><r xmlns="urn:test"><a>café</a></r>`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  "utf-8 with BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<r xmlns="urn:test"><a>café</a></r>`)...),
		},
		{
			name:  "utf-16 with BOM",
			input: []byte(utf16),
		},
		{
			name:  "latin-1 declaration",
			input: []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r xmlns=\"urn:test\"><a>caf\xe9</a></r>"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(bytes.NewReader(tt.input), Limits{})
			require.NoError(t, err)
			text, ok := root.ChildText(testNS, "a")
			require.True(t, ok)
			assert.Equal(t, "café", text)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		limits Limits
	}{
		{name: "empty document", input: ""},
		{name: "unclosed root", input: "<r><a></a>"},
		{name: "mismatched tags", input: "<r><a></b></r>"},
		{name: "text outside root", input: "junk<r/>"},
		{name: "second root", input: "<r/><s/>"},
		{name: "depth limit", input: "<a><b><c><d/></c></b></a>", limits: Limits{MaxDepth: 3}},
		{name: "element limit", input: "<a><b/><b/><b/></a>", limits: Limits{MaxElements: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), tt.limits)
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyIsUnexpectedEOF(t *testing.T) {
	_, err := Parse(strings.NewReader("   "), Limits{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
