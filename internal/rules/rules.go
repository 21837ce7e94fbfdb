// internal/rules/rules.go
//
// Comparison rule configuration for the guessing engine.
// Responsibilities:
//   - Define the per-attribute rule schema (mode + exact/partial/close bands).
//   - Load configuration from a YAML file (RULES_FILE) or embedded defaults.
//   - Validate bands at load time and fail fast on misconfiguration.
//
// The loaded Config is immutable for the process lifetime: it is built once
// at startup and handed to the engine by value. There is no package-level
// mutable state, so several engines with different difficulty configs can
// coexist.

package rules

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects how a guessed value is measured against the target.
type Mode string

const (
	// Absolute compares by |guess − target|.
	Absolute Mode = "absolute"
	// Relative compares by the max/min ratio scaled to percent (100 = equal).
	Relative Mode = "relative"
	// CalendarYears compares calendar dates by day difference, with bands
	// given in years (converted as years × 365 days).
	CalendarYears Mode = "years"
	// ExactText is a case-insensitive equality check, no bands.
	ExactText Mode = "text"
	// SetOverlap classifies by the shared percentage of two label sets
	// (intersection over union). Bands are descending: higher is better.
	SetOverlap Mode = "overlap"
)

// Rule holds the comparison mode and its three classification bands.
// For ascending modes (absolute/relative/years) a distance d classifies as
// exact if d ≤ Exact, partial if d ≤ Partial, close if d ≤ Close, else wrong.
// For overlap the bands invert: overlap ≥ Exact → exact, and so on.
type Rule struct {
	Mode    Mode    `yaml:"mode"`
	Exact   float64 `yaml:"exact"`
	Partial float64 `yaml:"partial"`
	Close   float64 `yaml:"close"`
}

// Config is the full rule set for one game configuration.
type Config struct {
	Attributes  map[string]Rule   `yaml:"attributes"`
	Colors      map[string]string `yaml:"colors"`
	MaxAttempts int               `yaml:"maxAttempts"`
}

// Embedded defaults keep the server runnable without any config file.
//
//go:embed rules.yaml
var embeddedRules []byte

// Load reads the rule set from path, or from the embedded defaults when path
// is empty. The result is validated; a misconfigured rule set is an error,
// never a silently odd classification.
func Load(path string) (Config, error) {
	data := embeddedRules
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read rules %s: %w", path, err)
		}
		data = b
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse rules: %w", err)
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Attribute returns the rule for name. Falling back to a zero rule would
// misclassify everything as wrong, so a missing attribute is a lookup error
// for the caller to surface at startup.
func (c Config) Attribute(name string) (Rule, error) {
	r, ok := c.Attributes[name]
	if !ok {
		return Rule{}, fmt.Errorf("rules: no rule for attribute %q", name)
	}
	return r, nil
}
