package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	Dashboard DashboardConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	Timezone   string
	CORSOrigin string
}

// UpstreamConfig points at the clinic REST API the dashboards are built on.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DashboardConfig struct {
	ToastDelay     time.Duration
	ScreenIdleTTL  time.Duration
	CurrencySymbol string
	Insights       InsightConfig
}

// InsightConfig drives the rule-based insight stub shown on the hospital dashboard.
type InsightConfig struct {
	HighRiskThreshold     float64
	ModerateRiskThreshold float64
	LongStayDays          int
}

type DBConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// LoadConfig reads .env from the working directory (if present) and the process environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			Timezone:   v.GetString("APP_TIMEZONE"),
			CORSOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		},
		Upstream: UpstreamConfig{
			BaseURL: v.GetString("UPSTREAM_API_URL"),
			Timeout: durationOr(v, "UPSTREAM_TIMEOUT", 15*time.Second),
		},
		Dashboard: DashboardConfig{
			ToastDelay:     durationOr(v, "TOAST_DELAY", 5*time.Second),
			ScreenIdleTTL:  durationOr(v, "SCREEN_IDLE_TTL", 30*time.Minute),
			CurrencySymbol: v.GetString("CURRENCY_SYMBOL"),
			Insights: InsightConfig{
				HighRiskThreshold:     v.GetFloat64("INSIGHT_HIGH_RISK_THRESHOLD"),
				ModerateRiskThreshold: v.GetFloat64("INSIGHT_MODERATE_RISK_THRESHOLD"),
				LongStayDays:          v.GetInt("INSIGHT_LONG_STAY_DAYS"),
			},
		},
		DB: DBConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: durationOr(v, "JWT_ACCESS_EXPIRY", 8*time.Hour),
		},
	}

	if config.Upstream.BaseURL == "" {
		return nil, errors.New("UPSTREAM_API_URL is required")
	}
	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("CURRENCY_SYMBOL", "$")
	v.SetDefault("INSIGHT_HIGH_RISK_THRESHOLD", 7)
	v.SetDefault("INSIGHT_MODERATE_RISK_THRESHOLD", 4)
	v.SetDefault("INSIGHT_LONG_STAY_DAYS", 7)
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
