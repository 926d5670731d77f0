package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager provides scratch-space and output file operations
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// TempWorkspace creates an isolated scratch directory. The returned cleanup
// removes it and everything inside; it is safe to call more than once.
func (m *Manager) TempWorkspace(pattern string) (string, func(), error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	m.logger.Debug("Created workspace", slog.String("dir", dir))

	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			m.logger.Warn("Failed to remove workspace",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			return
		}
		m.logger.Debug("Removed workspace", slog.String("dir", dir))
	}
	return dir, cleanup, nil
}

// WriteStream copies src into dir/name and returns the written path. name
// must be a plain file name.
func (m *Manager) WriteStream(dir, name string, src io.Reader) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	dstPath := filepath.Join(dir, name)

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	// Copy content
	written, err := io.Copy(dstFile, src)
	if err != nil {
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	// Sync to ensure write is complete
	if err := dstFile.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync file: %w", err)
	}

	m.logger.Debug("Wrote file",
		slog.String("path", dstPath),
		slog.Int64("bytes", written))

	return dstPath, nil
}
