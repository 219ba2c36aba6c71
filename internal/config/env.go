package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg through the `env` and `envPrefix` tags of
// [StructuredConfig]. Variables are read from environ, or from the process
// environment when environ is nil.
func parseEnv(cfg any, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
