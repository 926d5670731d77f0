// Package container opens take-off archives and parses the job document
// they carry.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"

	"cbxreport/internal/config"
	apperrors "cbxreport/internal/errors"
	"cbxreport/internal/files"
	"cbxreport/internal/xmltree"
)

// ErrMemberTooLarge is returned when the job document exceeds the configured size.
var ErrMemberTooLarge = errors.New("archive member exceeds size limit")

// Options configures a Loader. Zero values select the config defaults.
type Options struct {
	Member         string
	MaxMemberBytes int64
	Limits         xmltree.Limits
}

// Loader extracts the job document of an archive and parses it.
type Loader struct {
	member   string
	maxBytes int64
	limits   xmltree.Limits
	manager  *files.Manager
	logger   *slog.Logger
}

// NewLoader creates a loader. A nil manager or logger selects defaults.
func NewLoader(opts Options, manager *files.Manager, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	member := opts.Member
	if member == "" {
		member = config.DefaultMember
	}
	maxBytes := opts.MaxMemberBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxMemberBytes
	}
	return &Loader{
		member:   member,
		maxBytes: maxBytes,
		limits:   opts.Limits,
		manager:  manager,
		logger:   logger,
	}
}

// Member returns the archive entry the loader reads.
func (l *Loader) Member() string {
	return l.member
}

// Load returns the root element of the job document in archivePath. The
// member is extracted to a private temp directory that is removed before
// Load returns, whether or not parsing succeeds.
func (l *Loader) Load(ctx context.Context, archivePath string) (*xmltree.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, apperrors.NewArchiveError("failed to open archive", err).
			WithContext("archive", archivePath)
	}
	defer reader.Close()

	entry := findMember(reader.File, l.member)
	if entry == nil {
		return nil, apperrors.NewArchiveError(fmt.Sprintf("archive has no %s member", l.member), nil).
			WithContext("archive", archivePath)
	}

	if entry.UncompressedSize64 > uint64(l.maxBytes) {
		return nil, apperrors.NewArchiveError(fmt.Sprintf("%s is larger than %d bytes", entry.Name, l.maxBytes), ErrMemberTooLarge).
			WithContext("archive", archivePath)
	}

	dir, cleanup, err := l.manager.TempWorkspace("cbx-*")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create extraction directory", err)
	}
	defer cleanup()

	extracted, err := l.extract(entry, dir)
	if err != nil {
		return nil, apperrors.NewArchiveError(fmt.Sprintf("failed to extract %s", entry.Name), err).
			WithContext("archive", archivePath)
	}

	l.logger.DebugContext(ctx, "Extracted archive member",
		slog.String("archive", archivePath),
		slog.String("member", entry.Name),
		slog.Uint64("size", entry.UncompressedSize64))

	return l.parse(extracted)
}

func (l *Loader) extract(entry *zip.File, dir string) (string, error) {
	src, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// The header size is not trusted; the copy itself is capped too.
	capped := &cappedReader{r: io.LimitReader(src, l.maxBytes+1), max: l.maxBytes}
	return l.manager.WriteStream(dir, path.Base(entry.Name), capped)
}

type cappedReader struct {
	r   io.Reader
	n   int64
	max int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.max {
		return n, ErrMemberTooLarge
	}
	return n, err
}

func (l *Loader) parse(path string) (*xmltree.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open extracted document", err)
	}
	defer f.Close()

	root, err := xmltree.Parse(f, l.limits)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse %s", l.member), err)
	}
	return root, nil
}

// findMember returns the entry named member, preferring an exact match over
// a case-insensitive one.
func findMember(entries []*zip.File, member string) *zip.File {
	var fold *zip.File
	for _, f := range entries {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.Name == member {
			return f
		}
		if fold == nil && strings.EqualFold(f.Name, member) {
			fold = f
		}
	}
	return fold
}
