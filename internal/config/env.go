package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplyEnv overrides cfg with PIXELCALC_* variables. Unset variables
// leave the current values alone. A nil environ reads the process
// environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, envOptions(environ)); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

type pathEnv struct {
	Config string `env:"CONFIG"`
}

// envConfigPath returns PIXELCALC_CONFIG.
func envConfigPath(environ map[string]string) (string, error) {
	var p pathEnv
	if err := env.ParseWithOptions(&p, envOptions(environ)); err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	return p.Config, nil
}

func envOptions(environ map[string]string) env.Options {
	return env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
}
