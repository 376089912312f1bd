package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ApplyEnv fills environment-sourced fields. A .env file in the current
// directory is loaded first when one exists, so tokens stay out of shell
// history and process lists.
//
// Precedence: a value already set (by a CLI flag) wins over the
// environment, which wins over the built-in default.
func (c *Config) ApplyEnv() {
	// Missing .env is the normal case, not an error
	_ = godotenv.Load()

	if c.Token == "" {
		c.Token = os.Getenv(EnvToken)
	}
	if v := os.Getenv(EnvBackendURL); v != "" && (c.BackendURL == "" || c.BackendURL == DefaultBackendURL) {
		c.BackendURL = v
	}
}
