// Package fileprobe turns filesystem paths into file candidates, declaring
// the media type the way a browser file picker does.
package fileprobe

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/psim-config/internal/widget"
	"github.com/mattn/go-shellwords"
)

// ErrDirectory is returned when a path names a directory.
var ErrDirectory = errors.New("path is a directory")

const unknownType = "application/octet-stream"

// Probe stats path and reports it as a candidate typed by its extension.
func Probe(path string) (widget.Candidate, error) {
	clean := expandHome(strings.TrimSpace(path))
	if clean == "" {
		return widget.Candidate{}, fmt.Errorf("probe: empty path")
	}
	info, err := os.Stat(clean)
	if err != nil {
		return widget.Candidate{}, fmt.Errorf("probe %s: %w", clean, err)
	}
	if info.IsDir() {
		return widget.Candidate{}, fmt.Errorf("probe %s: %w", clean, ErrDirectory)
	}
	return widget.Candidate{
		Name:     filepath.Base(clean),
		MimeType: mediaType(clean),
		Handle:   clean,
	}, nil
}

// mediaType declares the type from the extension alone, the way a browser
// file picker does. Content never promotes a file to XML.
func mediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xml" {
		return widget.MIMEXML
	}
	declared := mime.TypeByExtension(ext)
	if declared == "" {
		return unknownType
	}
	parsed, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return unknownType
	}
	return parsed
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SplitPaths splits pasted text into paths. Terminals paste dropped files as
// shell words, with spaces backslash-escaped or quoted. file:// prefixes are
// removed. Text that does not parse as shell words falls back to splitting
// on whitespace.
func SplitPaths(pasted string) []string {
	words, err := shellwords.Parse(pasted)
	if err != nil {
		words = strings.Fields(pasted)
	}
	paths := make([]string, 0, len(words))
	for _, word := range words {
		if p := strings.TrimPrefix(word, "file://"); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
