// Package config carga la configuración del proceso (env-first via viper).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"app_name"`
	// Env controla el modo de los errores: en "production" los 500 no
	// exponen detalle interno.
	Env string `mapstructure:"app_env" validate:"oneof=development test production"`

	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Swagger SwaggerConfig `mapstructure:"swagger"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gt=0,lt=65536"`
}

type DBConfig struct {
	// URL vacía => repos in-memory (dev/tests).
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type SwaggerConfig struct {
	// ServerURL es el host que publica swagger (SWAGGER_SERVER_URL).
	ServerURL string `mapstructure:"server_url"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load arma la config desde env vars con defaults razonables.
// Reconocidas: PORT, DATABASE_URL, LOG_LEVEL, LOG_FORMAT, SWAGGER_SERVER_URL,
// APP_ENV, APP_NAME.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app_name", "adoptme-api")
	v.SetDefault("app_env", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("swagger.server_url", "")

	v.AutomaticEnv()
	// binding explícito: los nombres públicos de las env vars no siguen la
	// jerarquía interna
	bindings := map[string]string{
		"app_name":           "APP_NAME",
		"app_env":            "APP_ENV",
		"server.port":        "PORT",
		"db.url":             "DATABASE_URL",
		"log.level":          "LOG_LEVEL",
		"log.format":         "LOG_FORMAT",
		"swagger.server_url": "SWAGGER_SERVER_URL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
