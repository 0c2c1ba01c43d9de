// Package export renders analysis results to JSON, Graphviz DOT,
// Mermaid, and Markdown, and writes artifacts atomically.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Format identifies one export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatDOT      Format = "dot"
	FormatMermaid  Format = "mermaid"
	FormatMarkdown Format = "markdown"
)

// Extension returns the conventional file extension for the format,
// including the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatDOT:
		return ".dot"
	case FormatMermaid:
		return ".mmd"
	case FormatMarkdown:
		return ".md"
	default:
		return ".json"
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatDOT, FormatMermaid, FormatMarkdown:
		return Format(name), nil
	}
	return "", fmt.Errorf("unsupported format %q: use json, dot, mermaid, or markdown", name)
}

// WriteFile writes data to path atomically: parent directories are
// created, content goes to a temp file in the same directory, and a
// rename publishes it. A failed write never leaves a partial artifact
// at path.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename (POSIX guarantees atomicity).
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// WriteJSON marshals v with indentation and writes it atomically.
func WriteJSON(path string, v any) error {
	data, err := renderJSON(v)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

func renderJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
