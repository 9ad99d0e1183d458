package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdem-trainer/internal/util"
	"holdem-trainer/pkg/holdem"
)

// strategies a table can be configured with
const (
	StrategyPassive = "passive"
	StrategyStyled  = "styled"
)

// Config provides configuration for the hold'em trainer
type Config struct {
	loaded bool
	Log    LogConfig    `yaml:"log" envconfig:"log"`
	Game   GameConfig   `yaml:"game" envconfig:"game"`
	Server ServerConfig `yaml:"server" envconfig:"server"`
}

// LogConfig configures logrus
type LogConfig struct {
	Level string `yaml:"level" envconfig:"level"`
	// Format is "text" or "json"
	Format string `yaml:"format" envconfig:"format"`
}

// GameConfig configures every table
type GameConfig struct {
	SmallBlind        int    `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind          int    `yaml:"bigBlind" envconfig:"big_blind"`
	StartingChips     int    `yaml:"startingChips" envconfig:"starting_chips"`
	DecisionTimeoutMS int    `yaml:"decisionTimeoutMs" envconfig:"decision_timeout_ms"`
	Strategy          string `yaml:"strategy" envconfig:"strategy"`

	// Seed makes dealing deterministic when non-zero
	Seed int64 `yaml:"seed" envconfig:"seed"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr           string   `yaml:"addr" envconfig:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	AccessLog      bool     `yaml:"accessLog" envconfig:"access_log"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	opts := holdem.DefaultOptions()

	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Game: GameConfig{
			SmallBlind:        opts.SmallBlind,
			BigBlind:          opts.BigBlind,
			StartingChips:     opts.StartingChips,
			DecisionTimeoutMS: int(opts.DecisionTimeout / time.Millisecond),
			Strategy:          StrategyStyled,
		},
		Server: ServerConfig{
			Addr:           ":5000",
			AllowedOrigins: []string{"*"},
			AccessLog:      true,
		},
	}
}

// Options returns the engine options for the game configuration
func (g GameConfig) Options() holdem.Options {
	return holdem.Options{
		SmallBlind:      g.SmallBlind,
		BigBlind:        g.BigBlind,
		StartingChips:   g.StartingChips,
		DecisionTimeout: time.Duration(g.DecisionTimeoutMS) * time.Millisecond,
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional, environment variables prefixed with HOLDEM_ override it.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

func (c Config) validate() error {
	switch c.Game.Strategy {
	case StrategyPassive, StrategyStyled:
	default:
		return fmt.Errorf("unknown strategy: %s", c.Game.Strategy)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}

	return nil
}
