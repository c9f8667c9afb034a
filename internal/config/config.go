package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the variable pointing at an optional YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPath is tried when CONFIG_PATH is not set.
const DefaultConfigPath = "config.yaml"

// Config captures all runtime configuration. Values come from defaults, then an
// optional YAML file, then environment variables.
type Config struct {
	Port                   string   `koanf:"port"`
	DBURL                  string   `koanf:"db_url"`
	ReadTimeoutSecs        int      `koanf:"server_read_timeout"`
	WriteTimeoutSecs       int      `koanf:"server_write_timeout"`
	IdleTimeoutSecs        int      `koanf:"server_idle_timeout"`
	DBMaxConns             int      `koanf:"db_max_conns"`
	DBMinConns             int      `koanf:"db_min_conns"`
	DBMaxIdleSecs          int      `koanf:"db_max_conn_idle_secs"`
	DBMaxLifeSecs          int      `koanf:"db_max_conn_lifetime_secs"`
	DBConnTimeoutSecs      int      `koanf:"db_conn_timeout_secs"`
	DBStatementCache       int      `koanf:"db_statement_cache_capacity"`
	DatasetLoadTimeoutSecs int      `koanf:"dataset_load_timeout_secs"`
	LogLevel               string   `koanf:"log_level"`
	LogFormat              string   `koanf:"log_format"`
	CORSOrigins            []string `koanf:"cors_origins"`
	RateLimitRequests      int      `koanf:"rate_limit_requests"`
	RateLimitWindowSecs    int      `koanf:"rate_limit_window_secs"`
	SessionStorePath       string   `koanf:"session_store_path"`
	SessionTTLSecs         int      `koanf:"session_ttl_secs"`
}

func defaults() Config {
	return Config{
		Port:                   "8080",
		ReadTimeoutSecs:        15,
		WriteTimeoutSecs:       15,
		IdleTimeoutSecs:        60,
		DBMaxConns:             20,
		DBMinConns:             2,
		DBMaxIdleSecs:          300,
		DBMaxLifeSecs:          3600,
		DBConnTimeoutSecs:      10,
		DBStatementCache:       256,
		DatasetLoadTimeoutSecs: 30,
		LogLevel:               "info",
		LogFormat:              "json",
		CORSOrigins:            []string{"*"},
		RateLimitRequests:      100,
		RateLimitWindowSecs:    60,
		SessionTTLSecs:         86400,
	}
}

// envKeys maps recognised environment variables to config keys. Anything else
// in the environment is ignored.
var envKeys = map[string]string{
	"PORT":                        "port",
	"DB_URL":                      "db_url",
	"SERVER_READ_TIMEOUT":         "server_read_timeout",
	"SERVER_WRITE_TIMEOUT":        "server_write_timeout",
	"SERVER_IDLE_TIMEOUT":         "server_idle_timeout",
	"DB_MAX_CONNS":                "db_max_conns",
	"DB_MIN_CONNS":                "db_min_conns",
	"DB_MAX_CONN_IDLE_SECS":       "db_max_conn_idle_secs",
	"DB_MAX_CONN_LIFETIME_SECS":   "db_max_conn_lifetime_secs",
	"DB_CONN_TIMEOUT_SECS":        "db_conn_timeout_secs",
	"DB_STATEMENT_CACHE_CAPACITY": "db_statement_cache_capacity",
	"DATASET_LOAD_TIMEOUT_SECS":   "dataset_load_timeout_secs",
	"LOG_LEVEL":                   "log_level",
	"LOG_FORMAT":                  "log_format",
	"CORS_ORIGINS":                "cors_origins",
	"RATE_LIMIT_REQUESTS":         "rate_limit_requests",
	"RATE_LIMIT_WINDOW_SECS":      "rate_limit_window_secs",
	"SESSION_STORE_PATH":          "session_store_path",
	"SESSION_TTL_SECS":            "session_ttl_secs",
}

// Load reads configuration, applying defaults and validation.
func Load() (Config, error) {
	k := koanf.New(".")

	d := defaults()
	if err := k.Load(structs.Provider(&d, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// empty variables count as unset
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		path, ok := envKeys[key]
		if !ok {
			return "", nil
		}
		if path == "cors_origins" {
			return path, splitList(value)
		}
		return path, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and limits. Errors name the environment variable.
func (cfg Config) Validate() error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	if cfg.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}
	if cfg.DatasetLoadTimeoutSecs <= 0 {
		return fmt.Errorf("DATASET_LOAD_TIMEOUT_SECS must be positive")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	if cfg.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be non-negative")
	}
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindowSecs <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECS must be positive")
	}
	if cfg.SessionTTLSecs <= 0 {
		return fmt.Errorf("SESSION_TTL_SECS must be positive")
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}
	return ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
