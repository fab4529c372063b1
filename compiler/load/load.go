// Package load reads the project configuration and discovers the
// declaration files a generator run consumes.
//
// A project keeps its settings in .microtype.yaml next to the schemas:
//
//	package: model
//	target: ./model
//	inputs:
//	  - schema/*.microtype
//	features: [serde, deref]
//
// Every field is optional; a missing file yields the defaults.
package load

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/syssam/microtype/compiler/gen"
)

// ConfigFile is the project configuration file name.
const ConfigFile = ".microtype.yaml"

// Ext is the declaration file extension.
const Ext = ".microtype"

// ErrConfig marks configuration loading and validation failures.
var ErrConfig = errors.New("microtype: invalid project config")

// A ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("microtype: config field %q (value: %v): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("microtype: config field %q: %s", e.Field, e.Message)
}

// Is reports whether the target is the config sentinel.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Config is the project configuration.
type Config struct {
	// Package is the generated package name. Defaults to the base name
	// of Target, resolved by the generator.
	Package string `yaml:"package"`
	// Target is the output directory for generated files.
	Target string `yaml:"target"`
	// Inputs are glob patterns selecting the declaration files,
	// relative to the project directory.
	Inputs []string `yaml:"inputs"`
	// Features are the feature names enabled on top of the defaults.
	Features []string `yaml:"features"`
	// Disabled are default feature names turned off.
	Disabled []string `yaml:"disabled"`
	// Header is an extra line added to the generated file headers.
	Header string `yaml:"header"`
}

// Defaults fills the zero fields with their default values.
func (c *Config) Defaults() {
	if c.Target == "" {
		c.Target = "."
	}
	if len(c.Inputs) == 0 {
		c.Inputs = []string{"*" + Ext}
	}
}

// Validate checks the configuration after defaulting.
func (c *Config) Validate() error {
	if c.Package != "" && !identifier(c.Package) {
		return &ConfigError{Field: "package", Value: c.Package, Message: "not a valid Go package name"}
	}
	for _, name := range append(append([]string{}, c.Features...), c.Disabled...) {
		if _, ok := gen.FeatureByName(name); !ok {
			return &ConfigError{Field: "features", Value: name, Message: "unknown feature name"}
		}
	}
	for _, g := range c.Inputs {
		if _, err := filepath.Match(g, ""); err != nil {
			return &ConfigError{Field: "inputs", Value: g, Message: "malformed glob pattern"}
		}
	}
	return nil
}

// Options translates the configuration into generator options.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{gen.WithTarget(c.Target)}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if len(c.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(c.Features...))
	}
	if len(c.Disabled) > 0 {
		opts = append(opts, gen.WithoutFeatures(c.Disabled...))
	}
	return opts
}

// FromReader decodes, defaults, and validates a configuration.
func FromReader(r io.Reader) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("microtype: decode project config: %w", err)
	}
	c.Defaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromFile loads the configuration at path. A missing file is not an
// error; it yields the defaults.
func FromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		c := &Config{}
		c.Defaults()
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("microtype: open project config: %w", err)
	}
	defer f.Close()
	c, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FromDir loads the project configuration of dir.
func FromDir(dir string) (*Config, error) {
	return FromFile(filepath.Join(dir, ConfigFile))
}

// Discover expands the glob patterns relative to dir into a sorted,
// de-duplicated list of declaration file paths. Matches without the
// declaration extension are skipped.
func Discover(dir string, globs []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, g := range globs {
		matches, err := filepath.Glob(filepath.Join(dir, g))
		if err != nil {
			return nil, &ConfigError{Field: "inputs", Value: g, Message: "malformed glob pattern"}
		}
		for _, m := range matches {
			if filepath.Ext(m) != Ext || seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// An Input is the content of one discovered declaration file.
type Input struct {
	Path   string
	Source []byte
}

// ReadInputs reads the discovered declaration files.
func ReadInputs(paths []string) ([]*Input, error) {
	inputs := make([]*Input, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("microtype: read input: %w", err)
		}
		inputs = append(inputs, &Input{Path: p, Source: src})
	}
	return inputs, nil
}

// GenInputs converts loaded inputs into the generator's input shape.
func GenInputs(inputs []*Input) []gen.Input {
	gi := make([]gen.Input, len(inputs))
	for i, in := range inputs {
		gi[i] = gen.Input{Path: in.Path, Source: in.Source}
	}
	return gi
}

// identifier reports whether s is a valid Go identifier.
func identifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
