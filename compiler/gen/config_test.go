package gen

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Options(t *testing.T) {
	t.Parallel()
	cfg, err := NewConfig(
		WithPackage("model"),
		WithTarget("./model"),
		WithHeader("Custom header"),
		WithWorkers(4),
		WithForce(true),
	)
	require.NoError(t, err)
	assert.Equal(t, "model", cfg.Package)
	assert.Equal(t, "./model", cfg.Target)
	assert.Equal(t, "Custom header", cfg.Header)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Force)
}

func TestNewConfig_OptionValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty package", WithPackage("")},
		{"empty target", WithTarget("")},
		{"nil renderer", WithRenderer(nil)},
		{"nil logger", WithLogger(nil)},
		{"zero workers", WithWorkers(0)},
		{"empty snapshot path", WithSnapshotPath("")},
		{"unknown feature name", WithFeatureNames("telemetry")},
		{"unknown disabled name", WithoutFeatures("telemetry")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConfig(tt.opt)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestConfig_ApplyAllCollectsErrors(t *testing.T) {
	t.Parallel()
	c := &Config{}
	err := c.ApplyAll(
		WithPackage(""),
		WithTarget("./model"),
		WithWorkers(-1),
	)
	require.Error(t, err)
	// Valid options still applied.
	assert.Equal(t, "./model", c.Target)
}

func TestMustNewConfig_Panics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		MustNewConfig(WithPackage(""))
	})
	assert.NotPanics(t, func() {
		cfg := MustNewConfig(WithPackage("model"))
		assert.Equal(t, "model", cfg.Package)
	})
}

func TestConfig_EnabledFeatures(t *testing.T) {
	t.Parallel()
	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		c := MustNewConfig()
		fs, err := c.EnabledFeatures()
		require.NoError(t, err)
		require.Len(t, fs, 1)
		assert.Equal(t, FeatureSerde.Name, fs[0].Name)
	})
	t.Run("explicit enable", func(t *testing.T) {
		t.Parallel()
		c := MustNewConfig(WithFeatures(FeatureSecret, FeatureDeref))
		on, err := c.FeatureEnabled("secret")
		require.NoError(t, err)
		assert.True(t, on)
		on, err = c.FeatureEnabled("deref")
		require.NoError(t, err)
		assert.True(t, on)
	})
	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		c := MustNewConfig(WithFeatures(FeatureSecret, FeatureSecret, FeatureSerde))
		fs, err := c.EnabledFeatures()
		require.NoError(t, err)
		assert.Len(t, fs, 2)
	})
	t.Run("disable default", func(t *testing.T) {
		t.Parallel()
		c := MustNewConfig(WithoutFeatures("serde"))
		on, err := c.FeatureEnabled("serde")
		require.NoError(t, err)
		assert.False(t, on)
	})
	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		c := MustNewConfig()
		_, err := c.FeatureEnabled("telemetry")
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestConfig_Families(t *testing.T) {
	t.Parallel()
	c := MustNewConfig(
		WithFeatureNames("secret", "testdebug"),
		WithoutFeatures("serde"),
	)
	fams, err := c.Families()
	require.NoError(t, err)
	assert.Equal(t, Families{Secret: true, TestDebug: true}, fams)
}

func TestConfig_Logger(t *testing.T) {
	t.Parallel()
	c := MustNewConfig()
	require.NotNil(t, c.logger())

	l := log.New(io.Discard)
	c = MustNewConfig(WithLogger(l))
	assert.Same(t, l, c.logger())
}

func TestFeatureByName(t *testing.T) {
	t.Parallel()
	f, ok := FeatureByName("snapshot")
	require.True(t, ok)
	assert.Equal(t, FeatureSnapshot.Name, f.Name)
	assert.Equal(t, Experimental, f.Stage)

	_, ok = FeatureByName("telemetry")
	assert.False(t, ok)
}

func TestDefaultFeatures(t *testing.T) {
	t.Parallel()
	fs := DefaultFeatures()
	require.Len(t, fs, 1)
	assert.Equal(t, "serde", fs[0].Name)
}

func TestFeatureStage_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "experimental", Experimental.String())
	assert.Equal(t, "alpha", Alpha.String())
	assert.Equal(t, "beta", Beta.String())
	assert.Equal(t, "stable", Stable.String())
	assert.Equal(t, "FeatureStage(9)", FeatureStage(9).String())
}

func TestConfigFeatureEnabled_AllFeatures(t *testing.T) {
	// Test that all declared features can be queried
	for _, f := range AllFeatures {
		t.Run(f.Name, func(t *testing.T) {
			c := &Config{Features: []Feature{f}}

			enabled, err := c.FeatureEnabled(f.Name)

			assert.NoError(t, err)
			assert.True(t, enabled)
		})
	}
}
