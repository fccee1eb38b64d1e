package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	envAddr     = "ADVFILTER_ADDR"
	envCatalog  = "ADVFILTER_CATALOG"
	envLogLevel = "ADVFILTER_LOG_LEVEL"

	defaultAddr     = ":8080"
	defaultLogLevel = "info"
)

type Config struct {
	Addr        string `validate:"required,hostname_port"`
	CatalogPath string `validate:"omitempty,file"`
	LogLevel    string `validate:"required,oneof=debug info warn error"`
}

var validate = validator.New()

// LoadConfig reads envFile into the environment, if it exists, and then
// the ADVFILTER_* variables. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load %s", envFile)
		}
	}
	return Config{
		Addr:        getEnv(envAddr, defaultAddr),
		CatalogPath: getEnv(envCatalog, ""),
		LogLevel:    getEnv(envLogLevel, defaultLogLevel),
	}, nil
}

// Validate checks everything every command needs. The listen address is
// left to ValidateListen.
func (c Config) Validate() error {
	return errors.Wrap(validate.StructExcept(c, "Addr"), "invalid configuration")
}

func (c Config) ValidateListen() error {
	return errors.Wrap(validate.StructPartial(c, "Addr"), "invalid configuration")
}

func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
