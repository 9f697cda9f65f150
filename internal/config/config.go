// Package config loads calculator service settings with viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	AppName string
	Host    string
	Port    int
	Logger  *Logger
	Storage *Storage
	Auth    *Auth
	Session *Session
	Viper   *viper.Viper
}

// LoadConfig reads configPath, or searches the usual locations when it is
// empty. A missing config file is not an error: defaults and CALC_*
// environment variables apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("calc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/calcengine")
		v.AddConfigPath("$HOME/.calcengine")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName: getStringOrDefault(v, "app_name", "calcengine"),
		Host:    getStringOrDefault(v, "server.host", "localhost"),
		Port:    getIntOrDefault(v, "server.port", 8080),
		Logger:  getLoggerConfig(v),
		Storage: getStorageConfig(v),
		Auth:    getAuthConfig(v),
		Session: getSessionConfig(v),
		Viper:   v,
	}
}

// Addr returns the listen address, binding all interfaces for localhost.
func (c *Config) Addr() string {
	if strings.Contains(c.Host, "localhost") || strings.Contains(c.Host, "127.0.0.1") {
		return fmt.Sprintf(":%d", c.Port)
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
