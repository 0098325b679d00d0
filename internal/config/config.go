// README: Config loader with env defaults for HTTP, DB, Redis, AI and guard settings.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AIConfig struct {
	GeminiKey   string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; an empty DSN disables the generation quota.
		DSN string
	}
	Redis struct {
		Addr string
	}
	AI    AIConfig
	Quota struct {
		Monthly int
	}
	InFlight struct {
		TTL time.Duration
	}
}

// Load reads the environment. A .env file in the working directory is
// loaded first; variables already set in the process win.
func Load() (Config, error) {
	if os.Getenv("FORMULAGEN_NO_DOTENV") != "1" {
		_ = godotenv.Load()
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FORMULAGEN_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("FORMULAGEN_DB_DSN")
	cfg.Redis.Addr = envOrDefault("FORMULAGEN_REDIS_ADDR", "localhost:6379")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.Model = envOrDefault("FORMULAGEN_AI_MODEL", "gemini-2.5-flash")
	cfg.AI.Temperature = envOrDefaultFloat("FORMULAGEN_AI_TEMPERATURE", 0.2)
	cfg.AI.Timeout = time.Duration(envOrDefaultInt("FORMULAGEN_AI_TIMEOUT", 30)) * time.Second
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = defaultAITimeout
	}
	cfg.Quota.Monthly = envOrDefaultInt("FORMULAGEN_QUOTA_MONTHLY", 100)
	cfg.InFlight.TTL = time.Duration(envOrDefaultInt("FORMULAGEN_INFLIGHT_TTL", 60)) * time.Second
	return cfg, nil
}

const (
	defaultAITimeout = 30 * time.Second
	// lockMargin covers credential load and validation around the provider call.
	lockMargin = 5 * time.Second
)

// InFlightTTL is the configured lock TTL, raised so a lock never expires
// while its generation is still within the AI timeout.
func (c Config) InFlightTTL() time.Duration {
	if floor := c.AI.Timeout + lockMargin; c.InFlight.TTL < floor {
		return floor
	}
	return c.InFlight.TTL
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
