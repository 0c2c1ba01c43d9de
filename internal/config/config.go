package config

// Config represents the complete atlas configuration.
// It can be loaded from .atlas/config.yml with environment variable overrides.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig defines which files to analyze and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// AnalysisConfig tunes the dependency analysis.
type AnalysisConfig struct {
	CouplingThreshold int `yaml:"coupling_threshold" mapstructure:"coupling_threshold"` // min in+out degree to flag a file
}

// OutputConfig defines where and how artifacts are written.
type OutputConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`       // artifact directory
	Format string `yaml:"format" mapstructure:"format"` // json, dot, mermaid, or markdown
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-analysis
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.java",
				"**/*.cs",
				"**/*.vb",
				"**/*.fs",
				"**/*.php",
				"**/*.js",
				"**/*.jsx",
				"**/*.ts",
				"**/*.tsx",
				"**/*.html",
				"**/*.cshtml",
			},
			Ignore: []string{
				"node_modules/**",
				"bin/**",
				"obj/**",
				"dist/**",
				"build/**",
				"target/**",
				".git/**",
				"vendor/**",
				"*.min.js",
			},
		},
		Analysis: AnalysisConfig{
			CouplingThreshold: 5,
		},
		Output: OutputConfig{
			Dir:    ".atlas/out",
			Format: "json",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}
