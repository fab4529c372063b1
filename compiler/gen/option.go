package gen

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Config is the configuration for one generator run.
type Config struct {
	// Package is the name of the generated package.
	// Defaults to the base name of Target.
	Package string

	// Target is the output directory for generated files.
	Target string

	// Header overrides the generated-code header comment.
	Header string

	// Features enabled for this run, on top of the defaults.
	Features []Feature

	// Disabled names default features to turn off.
	Disabled []string

	// Renderer renders planned units into Go source files.
	Renderer Renderer

	// Hooks wrap the renderer, outermost first.
	Hooks []Hook

	// Logger reports progress. Defaults to a silent logger.
	Logger *log.Logger

	// Workers bounds concurrent file rendering and writing.
	// Defaults to the number of CPUs.
	Workers int

	// Force regenerates every input even when the snapshot manifest
	// reports it unchanged.
	Force bool

	// SnapshotPath overrides the location of the snapshot manifest.
	// Defaults to Target/.microtype.snap.
	SnapshotPath string
}

// EnabledFeatures resolves the feature set for this run: the defaults,
// plus explicit enables, minus explicit disables. Duplicates collapse.
func (c *Config) EnabledFeatures() ([]Feature, error) {
	seen := make(map[string]bool)
	var fs []Feature
	for _, f := range append(DefaultFeatures(), c.Features...) {
		if !seen[f.Name] {
			seen[f.Name] = true
			fs = append(fs, f)
		}
	}
	for _, name := range c.Disabled {
		if _, ok := FeatureByName(name); !ok {
			return nil, NewConfigError("Disabled", name, "unknown feature name")
		}
		if seen[name] {
			seen[name] = false
			for i, f := range fs {
				if f.Name == name {
					fs = append(fs[:i], fs[i+1:]...)
					break
				}
			}
		}
	}
	return fs, nil
}

// FeatureEnabled reports whether a feature is enabled for this run.
// Unknown feature names return a ConfigError.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, NewConfigError("Features", name, "unknown feature name")
	}
	fs, err := c.EnabledFeatures()
	if err != nil {
		return false, err
	}
	for _, f := range fs {
		if f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Families resolves the capability families the dispatcher may plan.
func (c *Config) Families() (Families, error) {
	fs, err := c.EnabledFeatures()
	if err != nil {
		return Families{}, err
	}
	var fams Families
	for _, f := range fs {
		switch f.Name {
		case FeatureSerde.Name:
			fams.Serde = true
		case FeatureDeref.Name:
			fams.Deref = true
		case FeatureSecret.Name:
			fams.Secret = true
		case FeatureTestDebug.Name:
			fams.TestDebug = true
		}
	}
	return fams, nil
}

// logger returns the configured logger or a silent fallback.
func (c *Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the name of the generated package.
// For example: "model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
// Unknown names are rejected with a ConfigError.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature name")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithoutFeatures disables features by name.
// Used to turn off features that are enabled by default.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := FeatureByName(name); !ok {
				return NewConfigError("Disabled", name, "unknown feature name")
			}
			c.Disabled = append(c.Disabled, name)
		}
		return nil
	}
}

// WithRenderer sets the renderer producing the generated source.
// If not set, generation fails; the golang package provides the default.
func WithRenderer(r Renderer) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Renderer", nil, "renderer cannot be nil")
		}
		c.Renderer = r
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks wrap the renderer and run around unit rendering.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers bounds concurrent file rendering and writing.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithForce regenerates every input regardless of the snapshot manifest.
func WithForce(force bool) Option {
	return func(c *Config) error {
		c.Force = force
		return nil
	}
}

// WithSnapshotPath overrides the location of the snapshot manifest.
func WithSnapshotPath(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("SnapshotPath", nil, "snapshot path cannot be empty")
		}
		c.SnapshotPath = path
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
