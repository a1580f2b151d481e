package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/polygame/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables understood by parseEnv.
const (
	EnvServerBaseURL  = "POLYGAME_SERVER_URL"
	EnvRequestTimeout = "POLYGAME_REQUEST_TIMEOUT"
	EnvStorageDriver  = "POLYGAME_STORAGE_DRIVER"
	EnvStoragePath    = "POLYGAME_STORAGE_PATH"
	EnvRedisAddr      = "POLYGAME_REDIS_ADDR"
	EnvRedisPrefix    = "POLYGAME_REDIS_PREFIX"
	EnvMetricsAddr    = "POLYGAME_METRICS_ADDR"
	EnvLogLevel       = "POLYGAME_LOG_LEVEL"
)

// parseEnv overlays cfg with POLYGAME_* values. The dotenv file named by
// -e/-env (default ".env") is read first; real environment variables win
// over the file. A missing default file is not an error.
func parseEnv(cfg *Config) {
	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		values = map[string]string{}
	}
	for _, k := range []string{
		EnvServerBaseURL, EnvRequestTimeout, EnvStorageDriver, EnvStoragePath,
		EnvRedisAddr, EnvRedisPrefix, EnvMetricsAddr, EnvLogLevel,
	} {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}

	applyEnv(cfg, values)
}

func applyEnv(cfg *Config, values map[string]string) {
	set := func(key string, dst *string) {
		if v, ok := values[key]; ok && v != "" {
			*dst = v
		}
	}

	set(EnvServerBaseURL, &cfg.ServerBaseURL)
	set(EnvStorageDriver, &cfg.StorageDriver)
	set(EnvStoragePath, &cfg.StoragePath)
	set(EnvRedisAddr, &cfg.RedisAddr)
	set(EnvRedisPrefix, &cfg.RedisPrefix)
	set(EnvMetricsAddr, &cfg.MetricsAddr)
	set(EnvLogLevel, &cfg.LogLevel)

	if v, ok := values[EnvRequestTimeout]; ok && v != "" {
		cfg.RequestTimeout = parseTimeout(v)
	}
}

// parseTimeout accepts a Go duration ("5s") or a plain number of seconds.
func parseTimeout(v string) time.Duration {
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	return time.Duration(n) * time.Second
}
