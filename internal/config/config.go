package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "github.com/gabrielwysoczanski31/aurora-sub001/common/config"
)

// CEEB submission modes.
const (
	CeebModeSimulated = "simulated"
	CeebModeHTTP      = "http"
)

// Config chimney-admin (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr              string
		AllowedOrigins    []string
		RateLimitRequests int
		RateLimitWindow   time.Duration
		TrustProxy        bool
	}
	Log struct {
		Level  string
		Format string
	}
	Snapshot struct {
		RefreshInterval time.Duration
		Seed            uint64
	}
	DBEnabled    bool
	Database     commoncfg.DatabaseConfig
	RedisEnabled bool
	Redis        commoncfg.RedisConfig
	MQTTEnabled  bool
	MQTT         commoncfg.MQTTConfig
	Events struct {
		Stream       string
		StreamMaxLen int64
	}
	Ceeb struct {
		Mode     string
		Endpoint string
		Timeout  time.Duration
	}
	Delays struct {
		Export time.Duration
		Submit time.Duration
		Save   time.Duration
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "*"))
	cfg.HTTP.RateLimitRequests = parseInt(getEnv("RATE_LIMIT_REQUESTS", "100"), 100)
	cfg.HTTP.RateLimitWindow = commoncfg.ParseDuration(os.Getenv("RATE_LIMIT_WINDOW"), time.Minute)
	cfg.HTTP.TrustProxy = getEnv("TRUST_PROXY", "false") == "true"

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Snapshot.RefreshInterval = commoncfg.ParseDuration(os.Getenv("REFRESH_INTERVAL"), 30*time.Second)
	if seed := os.Getenv("RANDOM_SEED"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED %q: %w", seed, err)
		}
		cfg.Snapshot.Seed = v
	}

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database = commoncfg.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "chimney",
		SSLMode:  "disable",
		MaxConns: 10,
		MaxIdle:  5,
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.MQTTEnabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT = commoncfg.MQTTConfig{
		Broker:      "tcp://localhost:1883",
		ClientID:    "chimney-admin",
		QoS:         1,
		TopicPrefix: "chimney/events",
	}
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.Events.Stream = getEnv("EVENT_STREAM", "chimney:events")
	cfg.Events.StreamMaxLen = int64(parseInt(getEnv("EVENT_STREAM_MAXLEN", "1000"), 1000))

	cfg.Ceeb.Mode = strings.ToLower(getEnv("CEEB_MODE", CeebModeSimulated))
	cfg.Ceeb.Endpoint = getEnv("CEEB_ENDPOINT", "")
	cfg.Ceeb.Timeout = commoncfg.ParseDuration(os.Getenv("CEEB_TIMEOUT"), 30*time.Second)

	cfg.Delays.Export = commoncfg.ParseDuration(os.Getenv("EXPORT_DELAY"), 1500*time.Millisecond)
	cfg.Delays.Submit = commoncfg.ParseDuration(os.Getenv("SUBMIT_DELAY"), 2*time.Second)
	cfg.Delays.Save = commoncfg.ParseDuration(os.Getenv("SAVE_DELAY"), time.Second)

	switch cfg.Ceeb.Mode {
	case CeebModeSimulated:
	case CeebModeHTTP:
		if cfg.Ceeb.Endpoint == "" {
			return nil, fmt.Errorf("CEEB_ENDPOINT is required when CEEB_MODE=%s", CeebModeHTTP)
		}
	default:
		return nil, fmt.Errorf("invalid CEEB_MODE %q", cfg.Ceeb.Mode)
	}
	if cfg.Snapshot.RefreshInterval <= 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
