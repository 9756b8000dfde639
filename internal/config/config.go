// Package config loads service configuration from an optional YAML file,
// environment variables and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30 * time.Second
	defaultDatabasePort    = 5432
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultRedisAddress    = "localhost:6379"

	defaultCronSpec       = "0 4 * * *"
	defaultFreshnessDays  = 3
	defaultExpiryDays     = 30
	defaultMaxPages       = 3
	defaultPageDelay      = 300 * time.Millisecond
	defaultRequestTimeout = 15 * time.Second

	defaultAdzunaQuota  = 250
	defaultJoobleQuota  = 500
	defaultJSearchQuota = 200
)

// portalSlugs are the portal names with a dedicated Jooble credential slot.
var portalSlugs = []string{"ausbildung", "praktikum", "vollzeit", "minijob", "werkstudent"}

type Config struct {
	Debug     bool            `mapstructure:"debug"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Import    ImportConfig    `mapstructure:"import"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds the optional Redis connection used for import events.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// ImportConfig tunes the aggregation pipeline itself.
type ImportConfig struct {
	CronSpec       string        `mapstructure:"cron_spec"`
	FreshnessDays  int           `mapstructure:"freshness_days"`
	ExpiryDays     int           `mapstructure:"expiry_days"`
	MaxPages       int           `mapstructure:"max_pages"`
	PageDelay      time.Duration `mapstructure:"page_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type ProvidersConfig struct {
	Adzuna  AdzunaConfig  `mapstructure:"adzuna"`
	Jooble  JoobleConfig  `mapstructure:"jooble"`
	JSearch JSearchConfig `mapstructure:"jsearch"`
}

type AdzunaConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	AppID      string `mapstructure:"app_id"`
	AppKey     string `mapstructure:"app_key"`
	Country    string `mapstructure:"country"`
	DailyQuota int    `mapstructure:"daily_quota"`
}

// JoobleConfig carries one API key per portal because Jooble issues affiliate
// identifiers per category.
type JoobleConfig struct {
	BaseURL    string            `mapstructure:"base_url"`
	APIKeys    map[string]string `mapstructure:"api_keys"`
	DailyQuota int               `mapstructure:"daily_quota"`
}

type JSearchConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Host       string `mapstructure:"host"`
	DailyQuota int    `mapstructure:"daily_quota"`
}

// Load reads configuration from the given file path (optional), environment
// variables and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && path != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Import.FreshnessDays <= 0 {
		return errors.New("import.freshness_days must be positive")
	}
	if c.Import.MaxPages <= 0 {
		return errors.New("import.max_pages must be positive")
	}
	return nil
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("debug", "APP_DEBUG")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.dbname", "DB_NAME")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("redis.address", "REDIS_ADDRESS")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.enabled", "REDIS_EVENTS_ENABLED")
	_ = v.BindEnv("import.cron_spec", "IMPORT_CRON_SPEC")
	_ = v.BindEnv("providers.adzuna.app_id", "ADZUNA_APP_ID")
	_ = v.BindEnv("providers.adzuna.app_key", "ADZUNA_APP_KEY")
	_ = v.BindEnv("providers.adzuna.country", "ADZUNA_COUNTRY")
	_ = v.BindEnv("providers.jsearch.api_key", "RAPIDAPI_KEY")

	// Jooble issues one affiliate key per portal.
	for _, slug := range portalSlugs {
		_ = v.BindEnv("providers.jooble.api_keys."+slug, "JOOBLE_API_KEY_"+strings.ToUpper(slug))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", defaultDatabasePort)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "gojobs")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", defaultMaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaultMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", defaultConnMaxLifetime)

	v.SetDefault("redis.address", defaultRedisAddress)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", false)

	v.SetDefault("import.cron_spec", defaultCronSpec)
	v.SetDefault("import.freshness_days", defaultFreshnessDays)
	v.SetDefault("import.expiry_days", defaultExpiryDays)
	v.SetDefault("import.max_pages", defaultMaxPages)
	v.SetDefault("import.page_delay", defaultPageDelay)
	v.SetDefault("import.request_timeout", defaultRequestTimeout)

	v.SetDefault("providers.adzuna.base_url", "https://api.adzuna.com/v1/api/jobs")
	v.SetDefault("providers.adzuna.country", "de")
	v.SetDefault("providers.adzuna.daily_quota", defaultAdzunaQuota)
	v.SetDefault("providers.jooble.base_url", "https://jooble.org/api")
	v.SetDefault("providers.jooble.daily_quota", defaultJoobleQuota)
	v.SetDefault("providers.jsearch.base_url", "https://jsearch.p.rapidapi.com")
	v.SetDefault("providers.jsearch.host", "jsearch.p.rapidapi.com")
	v.SetDefault("providers.jsearch.daily_quota", defaultJSearchQuota)
}
