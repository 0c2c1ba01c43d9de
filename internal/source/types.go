package source

import "path/filepath"

// File represents a single source file handed to the analyzers.
// Paths are owned by the caller; the analysis core never mutates a File.
type File struct {
	Path     string `json:"path"`          // Absolute path on disk
	RelPath  string `json:"relative_path"` // Normalized relative path (forward slashes)
	Language string `json:"language"`      // Language tag, see language.go
	Content  string `json:"-"`             // Raw file text
}

// Name returns the base filename of the file.
func (f File) Name() string {
	return filepath.Base(f.RelPath)
}

// NormalizePath converts a path to the canonical forward-slash form used
// as the key in every file-indexed structure.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}
