package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	// FeatureSerde provides transparent JSON marshaling for every
	// generated wrapper and unlocks the serialize form of the secret
	// marker.
	FeatureSerde = Feature{
		Name:        "serde",
		Stage:       Stable,
		Default:     true,
		Description: "Serde generates transparent JSON marshaling and unmarshaling for wrappers",
	}

	// FeatureDeref provides a pointer accessor to the wrapped inner value.
	FeatureDeref = Feature{
		Name:        "deref",
		Stage:       Beta,
		Default:     false,
		Description: "Deref generates a pointer accessor to the wrapped inner value",
	}

	// FeatureSecret provides the secret wrapper variant. Wrappers marked
	// secret redact their formatting output and zeroize their inner value
	// on destroy.
	FeatureSecret = Feature{
		Name:        "secret",
		Stage:       Stable,
		Default:     false,
		Description: "Secret generates wrappers with redacted formatting and zeroize-on-destroy",
	}

	// FeatureTestDebug emits the secret debug and equality helpers
	// unguarded instead of behind the microtypetest build tag.
	FeatureTestDebug = Feature{
		Name:        "testdebug",
		Stage:       Experimental,
		Default:     false,
		Description: "TestDebug emits secret debug helpers without the microtypetest build tag",
	}

	// FeatureSnapshot stores a digest manifest next to the output and
	// skips regeneration of unchanged inputs.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Snapshot skips regeneration of inputs whose digest has not changed",
		cleanup: func(c *Config) error {
			return remove(filepath.Join(c.Target, snapshotFile))
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureSerde,
		FeatureDeref,
		FeatureSecret,
		FeatureTestDebug,
		FeatureSnapshot,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested
	// in the integration environment.
	Experimental

	// Alpha features are features whose initial development was finished
	// and tested, but we expect breaking-changes to their APIs.
	Alpha

	// Beta features are Alpha features that were added to the public
	// documentation, and no breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while in
	// production codebases.
	Stable
)

// String implements fmt.Stringer.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return fmt.Sprintf("FeatureStage(%d)", int(s))
	}
}

// A Feature of the microtype codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// DefaultFeatures returns the features that are enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// remove deletes a generated file if it exists.
func remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
