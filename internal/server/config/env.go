package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with BLOG_* environment variables. A dotenv file
// at dotenvPath is loaded first when it exists; it never overrides variables
// that are already set in the process environment.
//
// Unset variables leave the current value untouched. A malformed value
// (e.g. an unparsable BLOG_TOKEN_VALIDITY) panics, like the JSON loader.
func parseEnv(config *Config, dotenvPath string) {
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			if err := godotenv.Load(dotenvPath); err != nil {
				panic(err)
			}
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
