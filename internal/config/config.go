package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "STUDYFLOW_CONFIG"

// envPrefix namespaces all studyflow environment overrides,
// e.g. STUDYFLOW_FUSION_ML -> fusion.ml.
const envPrefix = "STUDYFLOW_"

// FusionWeights are the hybrid score mixing weights. They must sum to 1.
type FusionWeights struct {
	ML            float64 `koanf:"ml"`
	Collaborative float64 `koanf:"collaborative"`
	Content       float64 `koanf:"content"`
}

// StressCaps are the fractions of nominal daily capacity permitted per
// stress level.
type StressCaps struct {
	Low    float64 `koanf:"low"`
	Medium float64 `koanf:"medium"`
	High   float64 `koanf:"high"`
}

// ForestConfig shapes the regression ensemble.
type ForestConfig struct {
	Trees       int     `koanf:"trees"`
	MaxDepth    int     `koanf:"max_depth"`
	MinLeaf     int     `koanf:"min_leaf"`
	FeatureFrac float64 `koanf:"feature_frac"`
}

// Config holds all engine tuning constants. The zero value is unusable;
// call Load (or Default) to get a populated instance.
type Config struct {
	Fusion FusionWeights `koanf:"fusion"`
	Caps   StressCaps    `koanf:"caps"`
	Forest ForestConfig  `koanf:"forest"`

	// MaxPlausibleHours scales raw hour predictions into [0,1] for fusion.
	MaxPlausibleHours float64 `koanf:"max_plausible_hours"`
	// TargetScore is the score students aim for when deriving the
	// performance gap.
	TargetScore float64 `koanf:"target_score"`
	// PassingThreshold marks weak areas: score below it flags the subject.
	PassingThreshold float64 `koanf:"passing_threshold"`
	// WeakAreaBoost multiplies priority for weak-area subjects.
	WeakAreaBoost float64 `koanf:"weak_area_boost"`
	// TopK bounds the peer neighborhood for collaborative scoring
	// (ties at the boundary are kept, so the window may overflow).
	TopK int `koanf:"top_k"`
	// MinAllocationHours is the per-subject allocation floor.
	MinAllocationHours float64 `koanf:"min_allocation_hours"`
	// RevisionBlockHours is the fixed block appended for low-mastery
	// subjects, carved out of the capped capacity.
	RevisionBlockHours float64 `koanf:"revision_block_hours"`
}

// Default returns the built-in engine constants. These are applied
// first, then overridden by the config file and environment.
func Default() *Config {
	return &Config{
		Fusion: FusionWeights{
			ML:            0.4,
			Collaborative: 0.3,
			Content:       0.3,
		},
		Caps: StressCaps{
			Low:    1.0,
			Medium: 0.85,
			High:   0.6,
		},
		Forest: ForestConfig{
			Trees:       50,
			MaxDepth:    8,
			MinLeaf:     2,
			FeatureFrac: 0.6,
		},
		MaxPlausibleHours:  4.0,
		TargetScore:        75,
		PassingThreshold:   60,
		WeakAreaBoost:      1.5,
		TopK:               10,
		MinAllocationHours: 0,
		RevisionBlockHours: 0.25,
	}
}

// Load reads configuration with layered sources, lowest priority first:
// built-in defaults, an optional YAML file, then STUDYFLOW_* environment
// variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate rejects constants the engine cannot plan with.
func (c *Config) Validate() error {
	sum := c.Fusion.ML + c.Fusion.Collaborative + c.Fusion.Content
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("fusion weights must sum to 1, got %.3f", sum)
	}
	for name, factor := range map[string]float64{
		"caps.low": c.Caps.Low, "caps.medium": c.Caps.Medium, "caps.high": c.Caps.High,
	} {
		if factor <= 0 || factor > 1 {
			return fmt.Errorf("%s must be in (0,1], got %.2f", name, factor)
		}
	}
	if c.MaxPlausibleHours <= 0 {
		return fmt.Errorf("max_plausible_hours must be > 0, got %.2f", c.MaxPlausibleHours)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be > 0, got %d", c.TopK)
	}
	if c.Forest.Trees <= 0 || c.Forest.MaxDepth <= 0 || c.Forest.MinLeaf <= 0 {
		return fmt.Errorf("forest trees/max_depth/min_leaf must all be > 0")
	}
	if c.Forest.FeatureFrac <= 0 || c.Forest.FeatureFrac > 1 {
		return fmt.Errorf("forest.feature_frac must be in (0,1], got %.2f", c.Forest.FeatureFrac)
	}
	if c.RevisionBlockHours < 0 || c.MinAllocationHours < 0 {
		return fmt.Errorf("allocation floors must not be negative")
	}
	return nil
}

// CapFactor returns the stress-derived fraction of capacity allowed.
func (c *Config) CapFactor(stress string) float64 {
	switch stress {
	case "high":
		return c.Caps.High
	case "medium":
		return c.Caps.Medium
	default:
		return c.Caps.Low
	}
}

// envTransform maps STUDYFLOW_* variable names to koanf paths. Nested
// sections split on their section prefix; flat keys keep their
// underscores: STUDYFLOW_CAPS_HIGH -> caps.high,
// STUDYFLOW_MAX_PLAUSIBLE_HOURS -> max_plausible_hours.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"fusion_", "caps_", "forest_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	candidates := []string{"studyflow.yaml", "studyflow.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".studyflow", "config.yaml"),
			filepath.Join(home, ".studyflow", "config.yml"),
		)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
