package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cbxreport/internal/xmltree"
)

func parseDoc(t *testing.T, doc string) *xmltree.Element {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(doc), xmltree.Limits{})
	require.NoError(t, err)
	return root
}
