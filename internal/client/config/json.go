package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/polygame/internal/flagx"
	"github.com/dmitrijs2005/polygame/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StorageDriver  string          `json:"storage_driver"`
	StoragePath    string          `json:"storage_path"`
	RedisAddr      string          `json:"redis_addr"`
	RedisPrefix    string          `json:"redis_prefix"`
	MetricsAddr    string          `json:"metrics_addr"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Without the
// flag nothing happens. Read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(jc.ServerBaseURL, &cfg.ServerBaseURL)
	overlay(jc.StorageDriver, &cfg.StorageDriver)
	overlay(jc.StoragePath, &cfg.StoragePath)
	overlay(jc.RedisAddr, &cfg.RedisAddr)
	overlay(jc.RedisPrefix, &cfg.RedisPrefix)
	overlay(jc.MetricsAddr, &cfg.MetricsAddr)
	overlay(jc.LogLevel, &cfg.LogLevel)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
