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

	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Setup     SetupConfig
	GNews     GNewsConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
}

// MongoConfig configures the document store connection lifecycle.
// URI intentionally carries no default: a missing connection string is a
// configuration error, not a transient one, and must fail without retrying.
type MongoConfig struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	ConnectTimeout         time.Duration
	SocketTimeout          time.Duration
	ServerSelectionTimeout time.Duration
	MaxRetries             int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SetupConfig guards the first-run admin bootstrap endpoint.
type SetupConfig struct {
	Key string
}

// GNewsConfig configures the upstream news aggregator proxy.
// An empty APIKey disables the feature instead of crashing.
type GNewsConfig struct {
	BaseURL        string
	APIKey         string
	Country        string
	Lang           string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	CacheTTL       time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig tunes admin stats caching.
type DashboardConfig struct {
	CacheTTL time.Duration
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

	cfg.Mongo = MongoConfig{
		URI:                    v.GetString("MONGO_URI"),
		Database:               v.GetString("MONGO_DATABASE"),
		MaxPoolSize:            uint64(v.GetInt("MONGO_MAX_POOL_SIZE")),
		ConnectTimeout:         parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 5*time.Second),
		SocketTimeout:          parseDuration(v.GetString("MONGO_SOCKET_TIMEOUT"), 8*time.Second),
		ServerSelectionTimeout: parseDuration(v.GetString("MONGO_SERVER_SELECTION_TIMEOUT"), 5*time.Second),
		MaxRetries:             v.GetInt("MONGO_MAX_RETRIES"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 7*24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Setup = SetupConfig{Key: v.GetString("ADMIN_SETUP_KEY")}

	cfg.GNews = GNewsConfig{
		BaseURL:        v.GetString("GNEWS_BASE_URL"),
		APIKey:         v.GetString("GNEWS_API_KEY"),
		Country:        v.GetString("GNEWS_COUNTRY"),
		Lang:           v.GetString("GNEWS_LANG"),
		Timeout:        parseDuration(v.GetString("GNEWS_TIMEOUT"), 10*time.Second),
		MaxAttempts:    v.GetInt("GNEWS_MAX_ATTEMPTS"),
		InitialBackoff: parseDuration(v.GetString("GNEWS_INITIAL_BACKOFF"), time.Second),
		MaxBackoff:     parseDuration(v.GetString("GNEWS_MAX_BACKOFF"), 10*time.Second),
		CacheTTL:       parseDuration(v.GetString("GNEWS_CACHE_TTL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("MONGO_DATABASE", "newsphere")
	v.SetDefault("MONGO_MAX_POOL_SIZE", 5)
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "5s")
	v.SetDefault("MONGO_SOCKET_TIMEOUT", "8s")
	v.SetDefault("MONGO_SERVER_SELECTION_TIMEOUT", "5s")
	v.SetDefault("MONGO_MAX_RETRIES", 3)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "168h")
	v.SetDefault("JWT_ISSUER", "newsphere-api")

	v.SetDefault("ADMIN_SETUP_KEY", "")

	v.SetDefault("GNEWS_BASE_URL", "https://gnews.io/api/v4")
	v.SetDefault("GNEWS_API_KEY", "")
	v.SetDefault("GNEWS_COUNTRY", "us")
	v.SetDefault("GNEWS_LANG", "en")
	v.SetDefault("GNEWS_TIMEOUT", "10s")
	v.SetDefault("GNEWS_MAX_ATTEMPTS", 3)
	v.SetDefault("GNEWS_INITIAL_BACKOFF", "1s")
	v.SetDefault("GNEWS_MAX_BACKOFF", "10s")
	v.SetDefault("GNEWS_CACHE_TTL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
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
