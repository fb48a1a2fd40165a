// Package config loads the service configuration from an optional YAML file
// and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Stores the service can keep assessments in.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config is the service configuration.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen" validate:"required"`
	// BaseURL is the externally visible URL of the service.  Pie links in
	// stored assessments are built from it.  Discovered when empty.
	BaseURL string `yaml:"baseURL" validate:"omitempty,url"`
	// Store selects where assessments and pies are kept.
	Store string      `yaml:"store" validate:"oneof=mongo memory"`
	Mongo MongoConfig `yaml:"mongo"`
	// RiskRegion is the baseline risk category used for patients that
	// don't carry their own.
	RiskRegion string `yaml:"riskRegion" validate:"oneof=low high"`
	// CalculateDelay is how long calculation requests for a patient are
	// held back waiting for newer data.
	CalculateDelay time.Duration `yaml:"calculateDelay" validate:"gt=0"`
	LogLevel       string        `yaml:"logLevel" validate:"oneof=debug info warn error"`
}

// MongoConfig locates the MongoDB database.
type MongoConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Database string `yaml:"database" validate:"required"`
}

var validate = validator.New()

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Listen: ":9000",
		Store:  StoreMongo,
		Mongo: MongoConfig{
			Host:     "localhost",
			Database: "scoreservice",
		},
		RiskRegion:     "low",
		CalculateDelay: 3 * time.Second,
		LogLevel:       "info",
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and the environment, in that order of
// increasing precedence.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := loadFromEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func loadFromEnv(config *Config) error {
	// Check for a linked MongoDB container if we are running in Docker
	if v := os.Getenv("MONGO_PORT_27017_TCP_ADDR"); v != "" {
		config.Mongo.Host = v
	}
	if v := os.Getenv("SCORE_MONGO_DATABASE"); v != "" {
		config.Mongo.Database = v
	}
	if v := os.Getenv("SCORE_LISTEN"); v != "" {
		config.Listen = v
	}
	if v := os.Getenv("SCORE_BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := os.Getenv("SCORE_STORE"); v != "" {
		config.Store = v
	}
	if v := os.Getenv("SCORE_RISK_REGION"); v != "" {
		config.RiskRegion = v
	}
	if v := os.Getenv("SCORE_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("SCORE_CALCULATE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SCORE_CALCULATE_DELAY: %w", err)
		}
		config.CalculateDelay = d
	}
	return nil
}
