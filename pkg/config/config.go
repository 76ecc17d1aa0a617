package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Availability AvailabilityConfig
	Scheduler    SchedulerConfig
	Google       GoogleConfig
	Meetings     MeetingsConfig
	Exports      ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AvailabilityConfig governs the availability accessor: cache freshness,
// per-participant provider timeouts and the background refresh pool.
type AvailabilityConfig struct {
	FreshnessTTL   time.Duration
	FetchTimeout   time.Duration
	RefreshWorkers int
	RefreshEnabled bool
}

// SchedulerConfig carries slot-finding defaults applied when a request omits them.
type SchedulerConfig struct {
	WorkingHoursStart  string
	WorkingHoursEnd    string
	PreferredTimeOfDay string
	MaxResults         int
}

// GoogleConfig points the free/busy provider at the Calendar API.
type GoogleConfig struct {
	FreeBusyURL string
	AccessToken string
	Timeout     time.Duration
}

// MeetingsConfig gates the meeting booking endpoints.
type MeetingsConfig struct {
	Enabled bool
}

// ExportsConfig gates proposal export endpoints.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Availability = AvailabilityConfig{
		FreshnessTTL:   parseDuration(v.GetString("AVAILABILITY_FRESHNESS_TTL"), time.Hour),
		FetchTimeout:   parseDuration(v.GetString("AVAILABILITY_FETCH_TIMEOUT"), 10*time.Second),
		RefreshWorkers: v.GetInt("AVAILABILITY_REFRESH_WORKERS"),
		RefreshEnabled: v.GetBool("AVAILABILITY_REFRESH_ENABLED"),
	}

	cfg.Scheduler = SchedulerConfig{
		WorkingHoursStart:  v.GetString("SCHEDULER_WORKING_HOURS_START"),
		WorkingHoursEnd:    v.GetString("SCHEDULER_WORKING_HOURS_END"),
		PreferredTimeOfDay: v.GetString("SCHEDULER_PREFERRED_TIME"),
		MaxResults:         v.GetInt("SCHEDULER_MAX_RESULTS"),
	}

	cfg.Google = GoogleConfig{
		FreeBusyURL: v.GetString("GOOGLE_FREEBUSY_URL"),
		AccessToken: v.GetString("GOOGLE_ACCESS_TOKEN"),
		Timeout:     parseDuration(v.GetString("GOOGLE_API_TIMEOUT"), 10*time.Second),
	}

	cfg.Meetings = MeetingsConfig{
		Enabled: v.GetBool("ENABLE_MEETINGS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "meetwise")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("AVAILABILITY_FRESHNESS_TTL", "1h")
	v.SetDefault("AVAILABILITY_FETCH_TIMEOUT", "10s")
	v.SetDefault("AVAILABILITY_REFRESH_WORKERS", 2)
	v.SetDefault("AVAILABILITY_REFRESH_ENABLED", true)

	v.SetDefault("SCHEDULER_WORKING_HOURS_START", "09:00")
	v.SetDefault("SCHEDULER_WORKING_HOURS_END", "17:00")
	v.SetDefault("SCHEDULER_PREFERRED_TIME", "10:00")
	v.SetDefault("SCHEDULER_MAX_RESULTS", 5)

	v.SetDefault("GOOGLE_FREEBUSY_URL", "https://www.googleapis.com/calendar/v3/freeBusy")
	v.SetDefault("GOOGLE_ACCESS_TOKEN", "")
	v.SetDefault("GOOGLE_API_TIMEOUT", "10s")

	v.SetDefault("ENABLE_MEETINGS", false)
	v.SetDefault("ENABLE_EXPORTS", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
