package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/mesh"
)

func TestLoadUsesDefaultsWhenUnset(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	BindFlags(fs, v)
	require.NoError(t, fs.Parse(nil))

	opts, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, mesh.DefaultOptions(), opts)
}

func TestLoadHonorsFlagOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	BindFlags(fs, v)
	require.NoError(t, fs.Parse([]string{"--merging-distance=0.5"}))

	opts, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 0.5, opts.MergingDistance)
}

func TestLoadRejectsNonPositiveMergingDistance(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	BindFlags(fs, v)
	require.NoError(t, fs.Parse([]string{"--merging-distance=0"}))

	_, err := Load(v)
	assert.Error(t, err)
}
