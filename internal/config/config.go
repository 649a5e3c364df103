package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ExtractorParagraphs  = "paragraphs"
	ExtractorReadability = "readability"

	DefaultEnvFile = ".env"
)

type Config struct {
	EnvFile string `env:"ENV_FILE"`

	Addr string `env:"ADDR" envDefault:":8080"`

	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	Model            string        `env:"MODEL"             envDefault:"gemini-1.5-flash"`
	LLMBaseURL       string        `env:"LLM_BASE_URL"      envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Temperature      float64       `env:"TEMPERATURE"       envDefault:"0.7"`
	SummarizeTimeout time.Duration `env:"SUMMARIZE_TIMEOUT" envDefault:"2m"`

	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT"   envDefault:"10s"`
	FetchMaxBytes int64         `env:"FETCH_MAX_BYTES" envDefault:"5242880"`
	Extractor     string        `env:"EXTRACTOR"       envDefault:"paragraphs"`
}

type envFileConfig struct {
	Path string `env:"ENV_FILE"`
}

// Load reads the dotenv file named by ENV_FILE (default .env, skipped when
// missing) into the process environment and parses Config from it. Variables
// already set in the environment win.
func Load() (Config, error) {
	var fileCfg envFileConfig
	if err := env.Parse(&fileCfg); err != nil {
		return Config{}, fmt.Errorf("parse env file path: %w", err)
	}

	envFile := strings.TrimSpace(fileCfg.Path)
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file (path = %s): %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.EnvFile = envFile

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.Extractor {
	case ExtractorParagraphs, ExtractorReadability:
	default:
		errs = append(errs, fmt.Errorf("EXTRACTOR must be %q or %q, got %q",
			ExtractorParagraphs, ExtractorReadability, c.Extractor))
	}

	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT must be positive"))
	}

	if c.FetchMaxBytes <= 0 {
		errs = append(errs, errors.New("FETCH_MAX_BYTES must be positive"))
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("TEMPERATURE must be within [0, 2], got %v", c.Temperature))
	}

	return errors.Join(errs...)
}
