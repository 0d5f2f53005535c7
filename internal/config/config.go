package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"careerpath/internal"
	"careerpath/internal/errors"
	"careerpath/internal/persona"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Artifacts ArtifactConfig
	Model     ModelConfig
	Log       LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the training dataset location
type DataConfig struct {
	DatasetFile string
}

// ArtifactConfig holds where trained models are written and read
type ArtifactConfig struct {
	Dir string
}

// LogConfig holds the leveled logger settings
type LogConfig struct {
	Level internal.LogLevel
}

// ModelConfig holds training and serving knobs
type ModelConfig struct {
	PersonaMode persona.Mode
	Seed        uint64
	Trees       int
	MaxDepth    int
	Workers     int // 0 means one per CPU
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Artifacts: *loadArtifactConfig(),
	}

	modelConfig, err := loadModelConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model configuration")
	}
	config.Model = *modelConfig

	logConfig, err := loadLogConfig()
	if err != nil {
		return nil, err
	}
	config.Log = *logConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		DatasetFile: getEnvOrDefault("CAREER_DATASET", "smote_balanced_data.csv"),
	}
}

func loadArtifactConfig() *ArtifactConfig {
	return &ArtifactConfig{
		Dir: getEnvOrDefault("CAREER_ARTIFACT_DIR", "artifacts"),
	}
}

func loadLogConfig() (*LogConfig, error) {
	value := getEnvOrDefault("LOG_LEVEL", "INFO")
	level, ok := internal.ParseLogLevel(value)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL must be ERROR, WARN, INFO or DEBUG, got %q", value))
	}
	return &LogConfig{Level: level}, nil
}

func loadModelConfig() (*ModelConfig, error) {
	mode, err := persona.ParseMode(getEnvOrDefault("CAREER_PERSONA_MODE", string(persona.ModeFitted)))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	seed, err := getEnvUintOrDefault("CAREER_SEED", 42)
	if err != nil {
		return nil, err
	}

	trees, err := getEnvIntOrDefault("CAREER_TREES", 600)
	if err != nil {
		return nil, err
	}
	maxDepth, err := getEnvIntOrDefault("CAREER_MAX_DEPTH", 20)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvIntOrDefault("CAREER_WORKERS", 0)
	if err != nil {
		return nil, err
	}

	return &ModelConfig{
		PersonaMode: mode,
		Seed:        seed,
		Trees:       trees,
		MaxDepth:    maxDepth,
		Workers:     workers,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Artifacts.Dir == "" {
		return errors.ConfigInvalid("artifact directory is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("PORT must be a number, got %q", config.Server.Port))
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("GIN_MODE must be debug, release or test, got %q", config.Server.GinMode))
	}
	if config.Model.Trees < 1 {
		return errors.ConfigInvalid("CAREER_TREES must be at least 1")
	}
	if config.Model.MaxDepth < 1 {
		return errors.ConfigInvalid("CAREER_MAX_DEPTH must be at least 1")
	}
	if config.Model.Workers < 0 {
		return errors.ConfigInvalid("CAREER_WORKERS cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault rejects malformed values instead of falling back to the default
func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return v, nil
}

func getEnvUintOrDefault(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a non-negative integer, got %q", key, value))
	}
	return v, nil
}
