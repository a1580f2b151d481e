// Package config loads runtime configuration for the polygame client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a dotenv file (-e/-env, default ".env") overlaid by real
//     POLYGAME_* variables (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-s string   SQLite storage path
//	-m string   metrics listen address
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080/api/v1",
//	  "request_timeout": "5s",
//	  "storage_driver": "redis",
//	  "redis_addr": "127.0.0.1:6379"
//	}
package config
