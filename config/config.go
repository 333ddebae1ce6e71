package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server   Server
	Log      Log
	Database Database
	Redis    Redis
	Quiz     Quiz
	Gemini   Gemini
}

type Server struct {
	Port    string
	GinMode string
	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is honored. Empty trusts none.
	TrustedProxies []string
}

type Log struct {
	Level  string
	Pretty bool
}

type Database struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Quiz struct {
	// UpsertOnUpdate makes PUT /questions/:id create the question when the id is unknown.
	UpsertOnUpdate     bool
	PasscodeRateLimit  int
	PasscodeRateWindow time.Duration
}

type Gemini struct {
	ApiKey string
	Model  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("QUIZ_UPSERT_ON_UPDATE", true)
	v.SetDefault("PASSCODE_RATE_LIMIT", 10)
	v.SetDefault("PASSCODE_RATE_WINDOW", time.Minute)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	config := fromViper(v)

	log.Info().Interface("config", config.Redacted()).Msg("Config loaded")
	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")
	config.Server.TrustedProxies = splitList(v.GetString("TRUSTED_PROXIES"))

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Pretty = v.GetBool("LOG_PRETTY")

	config.Database.Driver = v.GetString("STORE_DRIVER")
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	config.Quiz.UpsertOnUpdate = v.GetBool("QUIZ_UPSERT_ON_UPDATE")
	config.Quiz.PasscodeRateLimit = v.GetInt("PASSCODE_RATE_LIMIT")
	config.Quiz.PasscodeRateWindow = v.GetDuration("PASSCODE_RATE_WINDOW")

	config.Gemini.ApiKey = v.GetString("GEMINI_API_KEY")
	config.Gemini.Model = v.GetString("GEMINI_MODEL")

	return &config
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Database.Password != "" {
		c.Database.Password = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	if c.Gemini.ApiKey != "" {
		c.Gemini.ApiKey = "***"
	}
	return c
}
