package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Env       string
	Addr      string
	CORSAllow []string

	RoomTTL       time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development.
func Load() Config {
	return Config{
		Env:           getEnv("APP_ENV", "dev"),
		Addr:          getEnv("HTTP_ADDR", ":8080"),
		CORSAllow:     splitCSV(getEnv("CORS_ALLOW", "*")),
		RoomTTL:       getEnvDuration("ROOM_TTL", 30*time.Minute),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", 5*time.Minute),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
