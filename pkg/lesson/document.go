package lesson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// Document is one lesson source: its raw text, kept verbatim for the proof
// slicer, and the lines scanned from it. A Document is immutable.
type Document struct {
	name  string
	raw   string
	lines []string
}

// NewDocument wraps already-read text. name identifies the document in errors.
func NewDocument(name, text string) *Document {
	raw := strings.TrimPrefix(text, utf8BOM)

	lines := strings.Split(raw, "\n")
	// A final newline does not start another line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return &Document{name: name, raw: raw, lines: lines}
}

// ReadDocument reads a lesson from disk. A missing file is reported as a
// ParseError of kind ErrNotFound.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, path, 0, "no such file")
		}
		return nil, fmt.Errorf("reading lesson %s: %w", path, err)
	}
	return NewDocument(path, string(data)), nil
}

// Name returns the document identifier.
func (d *Document) Name() string { return d.name }

// Raw returns the unmodified text.
func (d *Document) Raw() string { return d.raw }

// Lines returns the scanned lines, without line terminators.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the number of scanned lines.
func (d *Document) LineCount() int { return len(d.lines) }
