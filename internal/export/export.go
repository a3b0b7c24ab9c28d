// Package export hands generated output to the outside world: the system
// clipboard, a CSV download stream, or a file on disk. The output is written
// exactly as generated; no quoting or escaping is applied.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/phyraph/gemki/internal/domain"
)

// DefaultFilename is used when no filename is supplied.
const DefaultFilename = "flashcards.csv"

// ContentType is the media type of exported files.
const ContentType = "text/csv"

// ImportHint tells the user how to import an export into Anki.
const ImportHint = "When importing into Anki, select COLON (:) as the field separator."

// ErrInvalidFilename is returned for names that would escape the target directory.
var ErrInvalidFilename = errors.New("invalid export filename")

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Copy writes text to clip. Failures wrap domain.ErrClipboardFailed.
func Copy(clip Clipboard, text string) error {
	if clip == nil {
		clip = SystemClipboard{}
	}
	if err := clip.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrClipboardFailed, err)
	}
	return nil
}

// Download writes text to w unchanged.
func Download(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// NormalizeFilename returns a safe export filename. Blank names become
// DefaultFilename and a missing .csv extension is appended.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename, nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		name += ".csv"
	}
	return name, nil
}

// SaveFile writes text to dir/filename and returns the written path.
// An empty dir means the current directory.
func SaveFile(dir, filename, text string) (string, error) {
	name, err := NormalizeFilename(filename)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
