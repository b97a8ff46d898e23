// Package config loads runtime settings for every codegenius process.
//
// Values are layered: built-in defaults, then an optional YAML or TOML file,
// then a .env file, then the process environment. Command flags are applied
// by the caller on top of the result.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Speech engines.
const (
	SpeechNone   = "none"
	SpeechEspeak = "espeak"
	SpeechSay    = "say"
)

// Config is the complete runtime configuration.
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Store  StoreConfig  `yaml:"store" toml:"store"`
	Bot    BotConfig    `yaml:"bot" toml:"bot"`
	Client ClientConfig `yaml:"client" toml:"client"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Speech SpeechConfig `yaml:"speech" toml:"speech"`
}

// ServerConfig configures the question service listener.
type ServerConfig struct {
	Port            int           `yaml:"port" toml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// StoreConfig selects the durable question store.
type StoreConfig struct {
	Driver  string        `yaml:"driver" toml:"driver"`
	Path    string        `yaml:"path" toml:"path"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

// BotConfig configures the feedback service.
type BotConfig struct {
	Port        int    `yaml:"port" toml:"port"`
	LLMProvider string `yaml:"llm_provider" toml:"llm_provider"`
}

// Addr returns the listen address for Port.
func (b BotConfig) Addr() string {
	return fmt.Sprintf(":%d", b.Port)
}

// ClientConfig configures the interview client's backends.
type ClientConfig struct {
	APIBase      string        `yaml:"api_base" toml:"api_base"`
	BotURL       string        `yaml:"bot_url" toml:"bot_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" toml:"fetch_timeout"`
	ChatTimeout  time.Duration `yaml:"chat_timeout" toml:"chat_timeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File receives interview client logs. Empty discards them.
	File string `yaml:"file" toml:"file"`
}

// SpeechConfig selects the text-to-speech engine for spoken feedback.
type SpeechConfig struct {
	Engine string `yaml:"engine" toml:"engine"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Driver:  StoreSQLite,
			Timeout: 5 * time.Second,
		},
		Bot: BotConfig{
			Port: 8081,
		},
		Client: ClientConfig{
			APIBase:      "http://localhost:8080",
			BotURL:       "http://localhost:8081",
			FetchTimeout: 10 * time.Second,
			ChatTimeout:  60 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Speech: SpeechConfig{
			Engine: SpeechNone,
		},
	}
}

// Validate checks enumerations and ranges after all layers are applied.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Bot.Port <= 0 || c.Bot.Port > 65535 {
		return fmt.Errorf("bot port %d out of range", c.Bot.Port)
	}

	switch c.Store.Driver {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.Store.Driver, StoreSQLite, StoreMemory)
	}

	switch c.Speech.Engine {
	case SpeechNone, SpeechEspeak, SpeechSay:
	default:
		return fmt.Errorf("unknown speech engine %q", c.Speech.Engine)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	c.Client.APIBase = strings.TrimRight(c.Client.APIBase, "/")
	c.Client.BotURL = strings.TrimRight(c.Client.BotURL, "/")
	if c.Client.APIBase == "" {
		return fmt.Errorf("client api base is required")
	}
	if c.Client.BotURL == "" {
		return fmt.Errorf("client bot url is required")
	}
	return nil
}
