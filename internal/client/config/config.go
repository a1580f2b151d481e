package config

import "time"

// Config holds runtime settings for the polygame client.
//
// Fields:
//   - ServerBaseURL: root of the backend REST API, including the /api/v1 prefix.
//   - RequestTimeout: upper bound for a single backend call (0 disables it).
//   - StorageDriver: durable session storage, "sqlite" or "redis".
//   - StoragePath: SQLite database file (sqlite driver).
//   - RedisAddr, RedisPrefix: server and key prefix (redis driver).
//   - MetricsAddr: if set, Prometheus metrics are served on this address.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StorageDriver  string
	StoragePath    string
	RedisAddr      string
	RedisPrefix    string
	MetricsAddr    string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api/v1"
	c.RequestTimeout = 10 * time.Second
	c.StorageDriver = "sqlite"
	c.StoragePath = "polygame.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "polygame:client:"
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env file and POLYGAME_* variables), a JSON file and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
