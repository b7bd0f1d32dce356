// Package markfile makes repeated appends to user config files idempotent by
// wrapping each managed region in unique delimiter comments.
package markfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

const (
	blockStartFmt = "# >>> devrig %s >>>"
	blockEndFmt   = "# <<< devrig %s <<<"

	filePerm = os.FileMode(0o644)
	dirPerm  = os.FileMode(0o755)
)

// StartMarker returns the opening delimiter line for a marker.
func StartMarker(marker string) string {
	return fmt.Sprintf(blockStartFmt, marker)
}

// EndMarker returns the closing delimiter line for a marker.
func EndMarker(marker string) string {
	return fmt.Sprintf(blockEndFmt, marker)
}

// Writer appends marked blocks to config files. There is exactly one writer
// per provisioning run, so no locking is needed.
type Writer struct {
	fs ports.FileSystem
}

// NewWriter creates a new Writer.
func NewWriter(fs ports.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// HasBlock reports whether the file already carries the marker's block.
// A missing file carries no blocks.
func (w *Writer) HasBlock(file, marker string) (bool, error) {
	path := ports.ExpandPath(file)
	if !w.fs.Exists(path) {
		return false, nil
	}
	data, err := w.fs.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Contains(string(data), StartMarker(marker)), nil
}

// UpsertBlock appends content wrapped in marker delimiters to the file,
// creating the file and parent directory if absent. If the marker is already
// present the file is left byte-identical, even when the desired content
// differs: a block is written once and owned by the user afterwards.
// The write goes through a temp file and rename, so an interrupted run never
// leaves a truncated config behind.
func (w *Writer) UpsertBlock(file, marker, content string) error {
	if err := validation.ValidateMarker(marker); err != nil {
		return err
	}

	path := ports.ExpandPath(file)

	var existing string
	if w.fs.Exists(path) {
		data, err := w.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		existing = string(data)
	}

	if strings.Contains(existing, StartMarker(marker)) {
		return nil
	}

	updated := appendBlock(existing, marker, content)

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := w.fs.WriteFileAtomic(path, []byte(updated), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// appendBlock appends a rendered block to content, separating it from prior
// content with a blank line.
func appendBlock(content, marker, block string) string {
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}

	rendered := StartMarker(marker) + "\n" + block + EndMarker(marker) + "\n"

	if content == "" {
		return rendered
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + rendered
}
