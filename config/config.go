package config

import (
	"fmt"
	"os"
	"time"

	"github.com/appclacks/datto-monitor/internal/datto"
	"github.com/appclacks/datto-monitor/internal/http"
	"github.com/appclacks/datto-monitor/internal/tracing"
	"github.com/appclacks/datto-monitor/internal/validator"
	"github.com/appclacks/datto-monitor/pkg/backup"
	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
	"github.com/joho/godotenv"
	er "github.com/mcorbin/corbierror"
	"gopkg.in/yaml.v3"
)

const (
	ClientIDEnv     = "DATTO_CLIENT_ID"
	ClientSecretEnv = "DATTO_CLIENT_SECRET"

	defaultURL        = "https://api.datto.com"
	defaultInterval   = "1h"
	defaultRunTimeout = "10m"
)

type Configuration struct {
	Datto     datto.Configuration
	Monitor   backup.Configuration
	HTTP      http.Configuration
	Tracing   tracing.Configuration
	Companies []aggregates.Company
}

// Load reads the env file (if it exists) and the YAML configuration file.
// JSON configuration files are also accepted.
func Load(path string, envFile string) (*Configuration, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("fail to load env file %s: %w", envFile, err)
			}
		}
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fail to read configuration file: %w", err)
	}
	var config Configuration
	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("fail to parse yaml configuration file: %w", err)
	}
	if clientID := os.Getenv(ClientIDEnv); clientID != "" {
		config.Datto.ClientID = clientID
	}
	if clientSecret := os.Getenv(ClientSecretEnv); clientSecret != "" {
		config.Datto.ClientSecret = clientSecret
	}
	if config.Datto.URL == "" {
		config.Datto.URL = defaultURL
	}
	if config.Monitor.Interval == "" {
		config.Monitor.Interval = defaultInterval
	}
	if config.Monitor.RunTimeout == "" {
		config.Monitor.RunTimeout = defaultRunTimeout
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Configuration) validate() error {
	err := validator.Validator.Struct(c.Datto)
	if err != nil {
		return fmt.Errorf("invalid datto configuration: %w", err)
	}
	if len(c.Companies) == 0 {
		return er.New("no company configured", er.BadRequest, true)
	}
	for i, company := range c.Companies {
		err = validator.Validator.Struct(company)
		if err != nil {
			return fmt.Errorf("invalid company %d (%s): %w", i, company.Name, err)
		}
	}
	err = validator.Validator.Struct(c.Monitor)
	if err != nil {
		return fmt.Errorf("invalid monitor configuration: %w", err)
	}
	durations := map[string]string{
		"datto.timeout":       c.Datto.Timeout,
		"monitor.interval":    c.Monitor.Interval,
		"monitor.run-timeout": c.Monitor.RunTimeout,
	}
	for key, duration := range durations {
		if duration == "" {
			continue
		}
		parsed, err := time.ParseDuration(duration)
		if err != nil {
			return er.Newf("invalid duration %s for %s in configuration", er.BadRequest, true, duration, key)
		}
		if parsed <= 0 {
			return er.Newf("invalid duration %s for %s in configuration, it should be positive", er.BadRequest, true, duration, key)
		}
	}
	return nil
}

func (c *Configuration) Interval() time.Duration {
	interval, _ := time.ParseDuration(c.Monitor.Interval)
	return interval
}

func (c *Configuration) RunTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Monitor.RunTimeout)
	return timeout
}
