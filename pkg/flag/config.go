package flag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the declarative description of a feature set, as read from JSON
// or YAML. Build validates it and turns it into an immutable Registry.
type Config struct {
	Features map[string]FeatureConfig `json:"features" yaml:"features"`
}

// FeatureConfig describes one feature.
type FeatureConfig struct {
	Enabled        bool             `json:"enabled" yaml:"enabled"`
	ValueType      ValueKind        `json:"value_type" yaml:"value_type"`
	Variants       map[string]Value `json:"variants" yaml:"variants"`
	DefaultVariant string           `json:"default_variant" yaml:"default_variant"`
	AudienceRules  []RuleConfig     `json:"audience_rules,omitempty" yaml:"audience_rules,omitempty"`
	DefaultRule    BucketingConfig  `json:"default_rule" yaml:"default_rule"`
}

// RuleConfig describes one audience rule: a named expression plus its
// bucketing. Rules apply in the order they are listed.
type RuleConfig struct {
	Name            string `json:"name" yaml:"name"`
	Expression      string `json:"expression" yaml:"expression"`
	BucketingConfig `json:",inline" yaml:",inline"`
}

// BucketingConfig selects variants either statically or by weighted
// distribution. Exactly one of the two forms must be set.
type BucketingConfig struct {
	// Variant names a single variant; shorthand for a full-weight distribution.
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	// Distribution maps variant keys to weights. Entries are ordered by
	// variant key, which fixes the bucket ranges independently of map order.
	Distribution map[string]uint32 `json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// distribution expands the config form into an ordered Distribution.
func (b BucketingConfig) distribution() (Distribution, error) {
	switch {
	case b.Variant != "" && len(b.Distribution) > 0:
		return nil, errors.Join(ErrInvalidConfig,
			errors.New("variant and distribution are mutually exclusive"))
	case b.Variant != "":
		return Distribution{{VariantKey: b.Variant, Weight: DefaultTotalWeight}}, nil
	case len(b.Distribution) > 0:
		keys := make([]string, 0, len(b.Distribution))
		for key := range b.Distribution {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		dist := make(Distribution, 0, len(keys))
		for _, key := range keys {
			dist = append(dist, DistributionEntry{VariantKey: key, Weight: b.Distribution[key]})
		}
		return dist, nil
	default:
		return nil, errors.Join(ErrInvalidConfig,
			errors.New("either variant or distribution is required"))
	}
}

// ParseJSON decodes a configuration document from JSON.
func ParseJSON(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ParseYAML decodes a configuration document from YAML.
func ParseYAML(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadFile reads a configuration file, choosing the codec by extension:
// .json for JSON, .yaml or .yml for YAML.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Config{}, errors.Join(ErrInvalidConfig,
			fmt.Errorf("unsupported config extension %q", filepath.Ext(path)))
	}
}

// Build validates the configuration and constructs the registry, compiling
// every audience expression through the supplied compiler. The registry is
// all-or-nothing: any invalid feature aborts construction. Features are
// instantiated in sorted key order, which fixes DecideAll's iteration order.
func Build(cfg Config, compiler Compiler) (*Registry, error) {
	keys := make([]string, 0, len(cfg.Features))
	for key := range cfg.Features {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	features := make([]*Feature, 0, len(keys))
	for _, key := range keys {
		f, err := buildFeature(key, cfg.Features[key], compiler)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return NewRegistry(features...)
}

// buildFeature assembles one feature from its configuration.
func buildFeature(key string, cfg FeatureConfig, compiler Compiler) (*Feature, error) {
	builder := NewFeature(key, cfg.ValueType).
		Enabled(cfg.Enabled).
		DefaultVariant(cfg.DefaultVariant)

	for variant, value := range cfg.Variants {
		builder.Variant(variant, value)
	}

	for _, rc := range cfg.AudienceRules {
		if rc.Expression == "" {
			return nil, errors.Join(ErrInvalidConfig,
				fmt.Errorf("feature %q: rule %q has no expression", key, rc.Name))
		}
		if compiler == nil {
			return nil, errors.Join(ErrInvalidConfig,
				fmt.Errorf("feature %q: rule %q requires a compiler", key, rc.Name))
		}
		predicate, err := compiler.Compile(rc.Expression)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig,
				fmt.Errorf("feature %q: rule %q: %w", key, rc.Name, err))
		}
		dist, err := rc.distribution()
		if err != nil {
			return nil, fmt.Errorf("feature %q: rule %q: %w", key, rc.Name, err)
		}
		rule, err := NewRule(rc.Name, predicate, dist)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", key, err)
		}
		builder.Rule(rule)
	}

	defaultDist, err := cfg.DefaultRule.distribution()
	if err != nil {
		return nil, fmt.Errorf("feature %q: default rule: %w", key, err)
	}
	builder.DefaultDistribution(defaultDist)

	return builder.Build()
}
