package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// FallbackSecret signs tokens when JWT_SECRET is unset. Kept for
// compatibility with existing deployments; main logs a warning whenever it
// is in effect.
const FallbackSecret = "rahasia-tugas-pbp"

// Store driver names accepted by STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Port      string        `env:"PORT, default=8080"`
	Env       string        `env:"ENV, default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`

	// StoreDriver selects the article/user store: "memory" (default,
	// discarded on restart) or "mongo".
	StoreDriver string `env:"STORE_DRIVER, default=memory"`
	// SeedDemoData loads the demo users and articles into an empty store.
	SeedDemoData bool `env:"SEED_DEMO_DATA, default=true"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=articles_api"`
}

type RedisConfig struct {
	// Addr enables the published-listing cache; empty disables Redis
	// entirely.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// SecretOrFallback returns the configured signing secret, and whether the
// hardcoded fallback is in use.
func (c *Config) SecretOrFallback() (string, bool) {
	if c.JWTSecret == "" {
		return FallbackSecret, true
	}
	return c.JWTSecret, false
}
