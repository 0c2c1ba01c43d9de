package source

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a root directory and collects source files matching
// glob include patterns, minus ignore patterns.
type Discovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewDiscovery creates a file discovery instance for rootDir.
func NewDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.includePatterns = append(d.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the directory tree and returns the matching files with
// content loaded and languages detected, in walk order.
func (d *Discovery) Discover() ([]File, error) {
	var files []File

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}
		if !d.matchesAnyPattern(relPath, d.includePatterns) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		files = append(files, File{
			Path:     path,
			RelPath:  relPath,
			Language: DetectLanguage(relPath),
			Content:  string(content),
		})
		return nil
	})

	return files, err
}

// shouldIgnore checks if a path matches any ignore pattern, including
// the directory form (pattern matching "dir/**").
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}
	return d.matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

func (d *Discovery) matchesAnyPattern(relPath string, patterns []compiledPattern) bool {
	for _, p := range patterns {
		if p.glob.Match(relPath) {
			return true
		}
	}
	return false
}
