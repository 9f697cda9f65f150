package config

import (
	"time"

	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level      string
	Format     string
	Output     string
	OutputFile string
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      getStringOrDefault(v, "logger.level", "info"),
		Format:     getStringOrDefault(v, "logger.format", "text"),
		Output:     getStringOrDefault(v, "logger.output", "stderr"),
		OutputFile: v.GetString("logger.output_file"),
	}
}

// Redis connection settings for the redis store driver.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Storage selects where session values are kept: memory, sqlite or redis.
type Storage struct {
	Driver    string
	Path      string
	KeyPrefix string
	TTL       time.Duration
	Redis     *Redis
}

func getStorageConfig(v *viper.Viper) *Storage {
	return &Storage{
		Driver:    getStringOrDefault(v, "storage.driver", "memory"),
		Path:      getStringOrDefault(v, "storage.path", "store.db"),
		KeyPrefix: getStringOrDefault(v, "storage.key_prefix", "calc:session:"),
		TTL:       getDurationOrDefault(v, "storage.ttl", 30*24*time.Hour),
		Redis: &Redis{
			Addr:     getStringOrDefault(v, "storage.redis.addr", "localhost:6379"),
			Password: v.GetString("storage.redis.password"),
			DB:       v.GetInt("storage.redis.db"),
		},
	}
}

// Auth holds the session token settings.
type Auth struct {
	SigningKey string
	TokenTTL   time.Duration
}

func getAuthConfig(v *viper.Viper) *Auth {
	return &Auth{
		SigningKey: getStringOrDefault(v, "auth.signing_key", "calcengine-dev-key"),
		TokenTTL:   getDurationOrDefault(v, "auth.token_ttl", 30*24*time.Hour),
	}
}

// Session controls in-memory session handling.
type Session struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	ResetOnError  bool
}

func getSessionConfig(v *viper.Viper) *Session {
	return &Session{
		IdleTimeout:   getDurationOrDefault(v, "session.idle_timeout", 30*time.Minute),
		SweepInterval: getDurationOrDefault(v, "session.sweep_interval", time.Minute),
		ResetOnError:  getBoolOrDefault(v, "session.reset_on_error", true),
	}
}
