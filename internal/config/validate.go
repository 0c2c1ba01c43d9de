package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNoIncludePatterns indicates an empty include pattern list
	ErrNoIncludePatterns = errors.New("no include patterns configured")

	// ErrInvalidThreshold indicates a non-positive coupling threshold
	ErrInvalidThreshold = errors.New("coupling threshold must be positive")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("watch debounce must not be negative")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Include) == 0 {
		return ErrNoIncludePatterns
	}
	if cfg.Analysis.CouplingThreshold <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, cfg.Analysis.CouplingThreshold)
	}
	switch cfg.Output.Format {
	case "json", "dot", "mermaid", "markdown":
	default:
		return fmt.Errorf("%w: %q (use json, dot, mermaid, or markdown)", ErrInvalidFormat, cfg.Output.Format)
	}
	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs)
	}
	return nil
}
