package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	Model   ModelConfig
	Content ContentConfig
}

type AppConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
	AllowedOrigin   string
}

type LogConfig struct {
	Level string
}

type ModelConfig struct {
	Type string
	Path string
}

type ContentConfig struct {
	// Path to a YAML content document; empty means the embedded default.
	Path string
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file (if it exists) and the process environment.
func LoadConfigFrom(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MODEL_TYPE", "random_forest")
	v.SetDefault("MODEL_PATH", "models/rf_model.json")
	v.SetDefault("CONTENT_PATH", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if shutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %s must be positive", shutdownTimeout)
	}

	config := &Config{
		App: AppConfig{
			Port:            v.GetString("APP_PORT"),
			Env:             v.GetString("APP_ENV"),
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigin:   v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Model: ModelConfig{
			Type: v.GetString("MODEL_TYPE"),
			Path: v.GetString("MODEL_PATH"),
		},
		Content: ContentConfig{
			Path: v.GetString("CONTENT_PATH"),
		},
	}

	return config, nil
}
