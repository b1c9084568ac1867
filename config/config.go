package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds all process-wide configuration. The signing secret is
// loaded once at startup and never mutated afterwards.
type AppConfig struct {
	Port                string        `env:"PORT" envDefault:"5010"`
	MongoURI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	DBName              string        `env:"DB_NAME" envDefault:"connectapp"`
	SecretKey           string        `env:"SECRET_KEY,required"`
	TokenTTL            time.Duration `env:"TOKEN_TTL" envDefault:"2h"`
	DefaultProfileImage string        `env:"DEFAULT_PROFILE_IMAGE" envDefault:"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/1.png"`
}

// Load parses configuration from environment variables.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
