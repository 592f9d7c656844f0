package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, 1.0, cfg.Fusion.ML+cfg.Fusion.Collaborative+cfg.Fusion.Content, 1e-9)
	assert.Equal(t, 0.4, cfg.Fusion.ML)
	assert.Equal(t, 0.6, cfg.Caps.High)
	assert.Equal(t, 0.85, cfg.Caps.Medium)
	assert.Equal(t, 1.0, cfg.Caps.Low)
	assert.Equal(t, 10, cfg.TopK)
}

func TestValidate_RejectsBadWeights(t *testing.T) {
	cfg := Default()
	cfg.Fusion.ML = 0.9
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadCapFactor(t *testing.T) {
	cfg := Default()
	cfg.Caps.High = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Caps.Low = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadForestShape(t *testing.T) {
	cfg := Default()
	cfg.Forest.Trees = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Forest.FeatureFrac = 1.2
	assert.Error(t, cfg.Validate())
}

func TestCapFactor_ByStressLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.6, cfg.CapFactor("high"))
	assert.Equal(t, 0.85, cfg.CapFactor("medium"))
	assert.Equal(t, 1.0, cfg.CapFactor("low"))
	// Unknown levels fall back to the unconstrained cap.
	assert.Equal(t, 1.0, cfg.CapFactor("unknown"))
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "caps.high", envTransform("STUDYFLOW_CAPS_HIGH"))
	assert.Equal(t, "fusion.ml", envTransform("STUDYFLOW_FUSION_ML"))
	assert.Equal(t, "forest.max_depth", envTransform("STUDYFLOW_FOREST_MAX_DEPTH"))
	assert.Equal(t, "top_k", envTransform("STUDYFLOW_TOP_K"))
	assert.Equal(t, "max_plausible_hours", envTransform("STUDYFLOW_MAX_PLAUSIBLE_HOURS"))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studyflow.yaml")
	yaml := "top_k: 5\ncaps:\n  high: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 0.5, cfg.Caps.High)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.4, cfg.Fusion.ML)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studyflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 5\n"), 0644))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("STUDYFLOW_TOP_K", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TopK)
}
