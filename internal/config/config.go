package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB  DBConfig  `yaml:"db"`
	Log LogConfig `yaml:"log"`
}

type DBConfig struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	ConnectAttempts int    `yaml:"connect_attempts"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path sends logs to a size-capped file instead of stderr.
	Path string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Driver:          "sqlite",
			ConnectAttempts: 3,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}

	if path := os.Getenv("PROJECTS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if driver := os.Getenv("PROJECTS_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dsn := os.Getenv("PROJECTS_DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if attemptsStr := os.Getenv("PROJECTS_DB_CONNECT_ATTEMPTS"); attemptsStr != "" {
		attempts, err := strconv.Atoi(attemptsStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJECTS_DB_CONNECT_ATTEMPTS: %w", err)
		}
		cfg.DB.ConnectAttempts = attempts
	}
	if level := os.Getenv("PROJECTS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PROJECTS_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	if cfg.DB.Driver == "sqlite" && cfg.DB.DSN == "" {
		cfg.DB.DSN = defaultSQLitePath()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot be used to start the console.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite":
	case "mysql":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q (want sqlite or mysql)", c.DB.Driver)
	}
	if c.DB.ConnectAttempts < 1 {
		return fmt.Errorf("db.connect_attempts must be at least 1, got %d", c.DB.ConnectAttempts)
	}
	return nil
}

// defaultSQLitePath returns <user config dir>/projects/projects.db, or a file
// in the working directory when no config dir is known.
func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "projects.db"
	}
	return filepath.Join(dir, "projects", "projects.db")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
