// README: Engine tuning loader: defaults, optional YAML file, env overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"pawmatch/internal/modules/assignment"
	"pawmatch/internal/modules/matching"
	"pawmatch/internal/modules/recommend"
	"pawmatch/internal/modules/reputation"
	"pawmatch/internal/modules/schedule"
)

// LoadEngine layers engine tuning, low to high precedence:
//  1. compiled defaults
//  2. YAML file named by PAWMATCH_ENGINE_CONFIG, if set
//  3. PAWMATCH_ENGINE_* env vars (PAWMATCH_ENGINE_WEIGHTS.DISTANCE etc.)
func LoadEngine() (*Engine, error) {
	base := DefaultEngine()

	k := koanf.New(".")
	if path := os.Getenv("PAWMATCH_ENGINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load engine config %s: %w", path, err)
		}
	}
	envProvider := env.Provider("PAWMATCH_ENGINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "pawmatch_engine_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load engine env overrides: %w", err)
	}

	cfg := base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal engine config: %w", err)
	}

	if sum := cfg.Weights.Sum(); sum <= 0 {
		return nil, fmt.Errorf("matching weights must sum to a positive value, got %v", sum)
	}
	return &cfg, nil
}

func DefaultEngine() Engine {
	return Engine{
		Weights:    matching.DefaultWeights(),
		Baselines:  matching.DefaultBaselines(),
		Matching:   matching.DefaultConfig(),
		Value:      schedule.DefaultValueParams(),
		Assignment: assignment.DefaultConfig(),
		Reputation: reputation.DefaultParams(),
		Recommend:  recommend.DefaultParams(),
	}
}
