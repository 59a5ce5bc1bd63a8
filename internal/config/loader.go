package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PAWMATE_CONFIG is set
//  3. env (prefix PAWMATE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PAWMATE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PAWMATE_STORE_ROOT, PAWMATE_SCHEMA_PATH, ...
	// Map env keys like PAWMATE_STORE_ROOT -> store_root (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PAWMATE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "pawmate_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.StoreRoot == "" {
		return nil, fmt.Errorf("%w: store_root must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxExtractBytes <= 0 {
		return nil, fmt.Errorf("%w: max_extract_bytes must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
