// Package source normalises user input into the single string the pipeline
// consumes. Input arrives either as typed text or as an uploaded file; files are
// accepted only when their media type is plain text or CSV.
//
// There is no size limit: an accepted file is read fully into memory.
package source

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/phyraph/gemki/internal/domain"
)

// Accepted media types.
const (
	MediaTypePlain = "text/plain"
	MediaTypeCSV   = "text/csv"
)

// FromText returns manually entered text unchanged.
func FromText(s string) string {
	return s
}

// Accepted reports whether a declared media type is one the pipeline reads.
// Parameters such as "; charset=utf-8" are ignored.
func Accepted(declaredType string) bool {
	mediaType, _, err := mime.ParseMediaType(declaredType)
	if err != nil {
		return false
	}
	return mediaType == MediaTypePlain || mediaType == MediaTypeCSV
}

// Read returns the full contents of r as text if declaredType is accepted.
// An unsupported type returns domain.ErrUnsupportedFileType without reading r.
func Read(name, declaredType string, r io.Reader) (string, error) {
	if !Accepted(declaredType) {
		return "", fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFileType, name, declaredType)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	return string(content), nil
}

// ReadFile reads a file from disk. Files carry no declared type, so the type
// is taken from the extension and, failing that, sniffed from the content.
func ReadFile(path string) (string, error) {
	declared, err := DetectType(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	return Read(filepath.Base(path), declared, f)
}

// extensionTypes covers the accepted kinds regardless of the host's mime.types.
var extensionTypes = map[string]string{
	".txt": MediaTypePlain,
	".csv": MediaTypeCSV,
}

// DetectType returns the media type for a file on disk.
func DetectType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if known, ok := extensionTypes[ext]; ok {
		return known, nil
	}

	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt, nil
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	return detected.String(), nil
}
