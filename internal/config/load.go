package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is read when no env file is named explicitly. A missing
// default file is not an error.
const DefaultEnvFile = ".env"

// LoadOptions names the optional files consulted by Load.
type LoadOptions struct {
	// ConfigFile is a .yaml, .yml or .toml file. Empty skips it.
	ConfigFile string
	// EnvFile is a dotenv file. Empty means DefaultEnvFile.
	EnvFile string
}

// Load builds a validated Config from defaults, files and the environment.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := loadFile(opts.ConfigFile, &cfg); err != nil {
			return nil, err
		}
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse YAML config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse TOML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
	}
	return nil
}

// loadEnvFile exports a dotenv file into the process environment without
// overriding variables that are already set.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvAsInt("PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.ShutdownTimeout = getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Store.Driver = strings.ToLower(getEnv("CODEGENIUS_STORE", cfg.Store.Driver))
	cfg.Store.Path = getEnv("CODEGENIUS_DB", getEnv("DB_URL", cfg.Store.Path))
	cfg.Store.Timeout = getEnvAsDuration("CODEGENIUS_STORE_TIMEOUT", cfg.Store.Timeout)

	cfg.Bot.Port = getEnvAsInt("BOT_PORT", cfg.Bot.Port)
	cfg.Bot.LLMProvider = getEnv("CODEGENIUS_LLM_PROVIDER", cfg.Bot.LLMProvider)

	cfg.Client.APIBase = getEnv("CODEGENIUS_API_BASE", cfg.Client.APIBase)
	cfg.Client.BotURL = getEnv("CODEGENIUS_BOT_URL", cfg.Client.BotURL)

	cfg.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Log.Level))
	cfg.Log.File = getEnv("CODEGENIUS_LOG_FILE", cfg.Log.File)

	cfg.Speech.Engine = strings.ToLower(getEnv("CODEGENIUS_TTS", cfg.Speech.Engine))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
