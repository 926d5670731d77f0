package container

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbxreport/internal/config"
	apperrors "cbxreport/internal/errors"
	"cbxreport/internal/shared/testutil"
	"cbxreport/internal/xmltree"
)

const jobXML = `<TakeoffJob xmlns="urn:job"><RootTradeContainer/></TakeoffJob>`

// isolateTemp points os.MkdirTemp at a fresh directory so leftovers can be counted.
func isolateTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	return tmp
}

func assertNoLeftovers(t *testing.T, tmp string) {
	t.Helper()
	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "extraction directory must be removed")
}

func TestLoader_Load(t *testing.T) {
	tmp := isolateTemp(t)
	archive := testutil.WriteArchive(t, t.TempDir(), "job.CBX", map[string]string{
		"TakeoffJob.xml": jobXML,
		"Other.bin":      "ignored",
	})

	root, err := NewLoader(Options{}, nil, nil).Load(context.Background(), archive)
	require.NoError(t, err)
	assert.True(t, root.Is("urn:job", "TakeoffJob"))
	assert.NotNil(t, root.Child("urn:job", "RootTradeContainer"))

	assertNoLeftovers(t, tmp)
}

func TestLoader_MemberMatching(t *testing.T) {
	tests := []struct {
		name    string
		members map[string]string
		member  string
		wantErr bool
	}{
		{name: "case insensitive fallback", members: map[string]string{"takeoffjob.XML": jobXML}},
		{name: "custom member", members: map[string]string{"Job.xml": jobXML}, member: "Job.xml"},
		{name: "missing member", members: map[string]string{"Other.xml": jobXML}, wantErr: true},
		{name: "nested member does not match", members: map[string]string{"sub/TakeoffJob.xml": jobXML}, wantErr: true},
		{name: "nested member by full name", members: map[string]string{"data/TakeoffJob.xml": jobXML}, member: "data/TakeoffJob.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := testutil.WriteArchive(t, t.TempDir(), "job.cbx", tt.members)
			_, err := NewLoader(Options{Member: tt.member}, nil, nil).Load(context.Background(), archive)
			if tt.wantErr {
				assert.Equal(t, apperrors.ErrTypeArchive, apperrors.TypeOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	tmp := isolateTemp(t)
	dir := t.TempDir()

	notZip := filepath.Join(dir, "broken.CBX")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0644))

	badXML := testutil.WriteArchive(t, dir, "bad.CBX", map[string]string{"TakeoffJob.xml": "<TakeoffJob><unclosed>"})

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{name: "missing file", path: filepath.Join(dir, "none.CBX"), wantType: apperrors.ErrTypeArchive},
		{name: "not a zip", path: notZip, wantType: apperrors.ErrTypeArchive},
		{name: "malformed document", path: badXML, wantType: apperrors.ErrTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(Options{}, nil, nil).Load(context.Background(), tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}

	assertNoLeftovers(t, tmp)
}

func TestLoader_ElementLimit(t *testing.T) {
	archive := testutil.WriteArchive(t, t.TempDir(), "big.CBX", map[string]string{
		"TakeoffJob.xml": "<r>" + strings.Repeat("<a/>", 10) + "</r>",
	})

	_, err := NewLoader(Options{Limits: xmltree.Limits{MaxElements: 5}}, nil, nil).Load(context.Background(), archive)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(Options{}, nil, nil).Load(ctx, "unused.CBX")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_Member(t *testing.T) {
	assert.Equal(t, config.DefaultMember, NewLoader(Options{}, nil, nil).Member())
	assert.Equal(t, "x.xml", NewLoader(Options{Member: "x.xml"}, nil, nil).Member())
}

func TestLoader_MemberSizeLimit(t *testing.T) {
	tmp := isolateTemp(t)
	archive := testutil.WriteArchive(t, t.TempDir(), "job.CBX", map[string]string{"TakeoffJob.xml": jobXML})

	_, err := NewLoader(Options{MaxMemberBytes: 10}, nil, nil).Load(context.Background(), archive)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeArchive, apperrors.TypeOf(err))
	assert.ErrorIs(t, err, ErrMemberTooLarge)
	assertNoLeftovers(t, tmp)

	_, err = NewLoader(Options{MaxMemberBytes: int64(len(jobXML))}, nil, nil).Load(context.Background(), archive)
	assert.NoError(t, err)
}

func TestCappedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int64
		wantErr bool
	}{
		{name: "under limit", input: "abc", max: 5},
		{name: "at limit", input: "abcde", max: 5},
		{name: "over limit", input: "abcdef", max: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &cappedReader{r: io.LimitReader(strings.NewReader(tt.input), tt.max+1), max: tt.max}
			data, err := io.ReadAll(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMemberTooLarge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(data))
		})
	}
}
