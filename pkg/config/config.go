// Package config defines the engine configuration. The configuration is an
// explicit, constructed object handed to each component at construction time;
// there is no process-global configuration state.
package config

import (
	"time"
)

// RuleConfig describes one weighted pattern rule in a detector table.
type RuleConfig struct {
	// ID uniquely identifies the rule within its table.
	ID string `yaml:"id" json:"id"`

	// Pattern is a regular expression matched against lower-cased text.
	Pattern string `yaml:"pattern" json:"pattern"`

	// Weight is the base intensity/severity contributed by a single match.
	// Must lie in (0, 1].
	Weight float64 `yaml:"weight" json:"weight"`

	// Category tags the rule with its indicator category.
	Category string `yaml:"category" json:"category"`

	// Disabled excludes the rule from detection until re-enabled at runtime.
	Disabled bool `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// SentimentConfig configures the external sentiment collaborator boundary.
type SentimentConfig struct {
	// Endpoint is the URL of the classifier service. Empty disables the
	// remote classifier; the pipeline then runs degraded.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`

	// RequestTimeout bounds a single classification call (e.g. "2s").
	// Default: "2s".
	RequestTimeout string `yaml:"request_timeout,omitempty" json:"request_timeout,omitempty"`

	// ReadyAttempts is the maximum number of readiness probes during
	// pipeline initialization. Default: 30.
	ReadyAttempts int `yaml:"ready_attempts,omitempty" json:"ready_attempts,omitempty"`

	// ReadyInterval is the delay between readiness probes (e.g. "1s").
	// Default: "1s".
	ReadyInterval string `yaml:"ready_interval,omitempty" json:"ready_interval,omitempty"`

	// MaxTextLength truncates classifier input to bound latency.
	// Default: 512.
	MaxTextLength int `yaml:"max_text_length,omitempty" json:"max_text_length,omitempty"`
}

// ScrollConfig configures the scroll profiler.
type ScrollConfig struct {
	// RapidVelocity is the px/s threshold above which a sample counts as
	// rapid scrolling. Default: 1000.
	RapidVelocity float64 `yaml:"rapid_velocity,omitempty" json:"rapid_velocity,omitempty"`

	// Debounce is the quiet period after which the profiler transitions
	// back to idle (e.g. "150ms"). Default: "150ms".
	Debounce string `yaml:"debounce,omitempty" json:"debounce,omitempty"`

	// HistoryCapacity bounds the in-memory sample ring. Default: 100.
	HistoryCapacity int `yaml:"history_capacity,omitempty" json:"history_capacity,omitempty"`

	// HistoryHorizon is the age beyond which samples are pruned on cleanup
	// (e.g. "5m"). Default: "5m".
	HistoryHorizon string `yaml:"history_horizon,omitempty" json:"history_horizon,omitempty"`

	// ClassifyWindow is the lookback window for rage-scroll classification
	// (e.g. "10s"). Default: "10s".
	ClassifyWindow string `yaml:"classify_window,omitempty" json:"classify_window,omitempty"`
}

// RiskConfig holds the weights for fusing per-detector risk into one score.
// Weights are normalized to sum to 1.0 when they do not.
type RiskConfig struct {
	SentimentWeight  float64 `yaml:"sentiment_weight,omitempty" json:"sentiment_weight,omitempty"`
	DistortionWeight float64 `yaml:"distortion_weight,omitempty" json:"distortion_weight,omitempty"`
	RageWeight       float64 `yaml:"rage_weight,omitempty" json:"rage_weight,omitempty"`
}

// EngineConfig is the root configuration for the analysis engine.
type EngineConfig struct {
	Sentiment SentimentConfig `yaml:"sentiment,omitempty" json:"sentiment,omitempty"`
	Scroll    ScrollConfig    `yaml:"scroll,omitempty" json:"scroll,omitempty"`
	Risk      RiskConfig      `yaml:"risk,omitempty" json:"risk,omitempty"`

	// RageRules overrides the built-in rage rule table when non-empty.
	RageRules []RuleConfig `yaml:"rage_rules,omitempty" json:"rage_rules,omitempty"`

	// DistortionRules overrides the built-in distortion rule table when
	// non-empty.
	DistortionRules []RuleConfig `yaml:"distortion_rules,omitempty" json:"distortion_rules,omitempty"`
}

// Duration parses a duration string, falling back to def when the string is
// empty or malformed.
func Duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
