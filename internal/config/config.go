// apps/go-rules/internal/config/config.go
//
// Runtime configuration.
//
// Sources, lowest precedence first:
//   1. built-in defaults,
//   2. an optional YAML file named by WORDLE_CONFIG,
//   3. environment variables (a .env file is loaded into the environment first).

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

// Word modes.
const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

// Config is the full server/CLI configuration.
type Config struct {
	Port             string        `yaml:"port"`
	LogLevel         string        `yaml:"log_level"`
	MaxGuesses       int           `yaml:"max_guesses"`
	Scoring          string        `yaml:"scoring"`
	WordMode         string        `yaml:"word_mode"`
	DailySalt        string        `yaml:"daily_salt"`
	AnswersFile      string        `yaml:"answers_file"`
	AllowedFile      string        `yaml:"allowed_file"`
	RedisAddr        string        `yaml:"redis_addr"`
	RedisPassword    string        `yaml:"redis_password"`
	GameTTL          time.Duration `yaml:"game_ttl"`
	DBPath           string        `yaml:"db_path"`
	JWTSecret        string        `yaml:"jwt_secret"`
	ClientOrigin     string        `yaml:"client_origin"`
	AllowFixedAnswer bool          `yaml:"allow_fixed_answer"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		MaxGuesses:     game.DefaultMaxGuesses,
		Scoring:        string(game.ScoringSimple),
		WordMode:       ModeRandom,
		DailySalt:      "local_dev_salt",
		GameTTL:        24 * time.Hour,
		JWTSecret:      "dev_secret_change_me",
		ClientOrigin:   "http://localhost:5173",
		RequestTimeout: 10 * time.Second,
	}
}

// Load reads .env, the optional YAML file and the environment, then validates.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("WORDLE_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setStr := func(k string, dst *string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	setStr("PORT", &c.Port)
	setStr("LOG_LEVEL", &c.LogLevel)
	setStr("SCORING", &c.Scoring)
	setStr("WORD_MODE", &c.WordMode)
	setStr("DAILY_SALT", &c.DailySalt)
	setStr("WORDS_ANSWERS_FILE", &c.AnswersFile)
	setStr("WORDS_ALLOWED_FILE", &c.AllowedFile)
	setStr("REDIS_ADDR", &c.RedisAddr)
	setStr("REDIS_PASSWORD", &c.RedisPassword)
	setStr("DB_PATH", &c.DBPath)
	setStr("JWT_SECRET", &c.JWTSecret)
	setStr("CLIENT_ORIGIN", &c.ClientOrigin)

	if v := os.Getenv("MAX_GUESSES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_GUESSES: %w", err)
		}
		c.MaxGuesses = n
	}
	if v := os.Getenv("ALLOW_FIXED_ANSWER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALLOW_FIXED_ANSWER: %w", err)
		}
		c.AllowFixedAnswer = b
	}
	for k, dst := range map[string]*time.Duration{"GAME_TTL": &c.GameTTL, "REQUEST_TIMEOUT": &c.RequestTimeout} {
		if v := os.Getenv(k); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = d
		}
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxGuesses <= 0 {
		errs = append(errs, fmt.Errorf("max_guesses must be positive, got %d", c.MaxGuesses))
	}
	if _, err := game.ParseScoringMode(c.Scoring); err != nil {
		errs = append(errs, err)
	}
	if c.WordMode != ModeRandom && c.WordMode != ModeDaily {
		errs = append(errs, fmt.Errorf("word_mode must be %q or %q, got %q", ModeRandom, ModeDaily, c.WordMode))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	return errors.Join(errs...)
}

// ScoringMode returns the validated scoring mode.
func (c Config) ScoringMode() game.ScoringMode {
	m, _ := game.ParseScoringMode(c.Scoring)
	return m
}
