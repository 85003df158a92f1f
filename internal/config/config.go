// Package config loads the settings of fin.
//
// Settings are layered, the last one winning: built-in defaults, a TOML file,
// a .env file, then FINTRACK_* environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

type Config struct {
	Currency string       `toml:"currency"`
	Store    StoreConfig  `toml:"store"`
	Log      LogConfig    `toml:"log"`
	Server   ServerConfig `toml:"server"`
	AMQP     AMQPConfig   `toml:"amqp"`
	Assist   AssistConfig `toml:"assist"`
}

type StoreConfig struct {
	Kind string `toml:"kind"` // memory, dir or sqlite
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AMQPConfig enables change notifications when URL is set.
type AMQPConfig struct {
	URL        string `toml:"url"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`
}

type AssistConfig struct {
	Model string `toml:"model"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Currency: "BDT",
		Store:    StoreConfig{Kind: "dir", Path: ".fintrack"},
		Log:      LogConfig{Level: "warn"},
		Server:   ServerConfig{Addr: "127.0.0.1:8089"},
		AMQP:     AMQPConfig{Exchange: "fintrack", RoutingKey: "ledger.changed"},
		Assist:   AssistConfig{Model: "gemini-2.5-pro"},
	}
}

// DefaultPath is $FINTRACK_CONFIG, or config.toml in the user config folder.
func DefaultPath() string {
	if p := os.Getenv("FINTRACK_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fintrack", "config.toml")
}

// Load reads the settings. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("could not read config %q: %w", path, err)
		}
	}
	// .env values never override the real environment.
	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Currency, "FINTRACK_CURRENCY")
	setFromEnv(&c.Store.Kind, "FINTRACK_STORE")
	setFromEnv(&c.Store.Path, "FINTRACK_STORE_PATH")
	setFromEnv(&c.Log.Level, "FINTRACK_LOG_LEVEL")
	setFromEnv(&c.Server.Addr, "FINTRACK_ADDR")
	setFromEnv(&c.AMQP.URL, "FINTRACK_AMQP_URL")
	setFromEnv(&c.AMQP.Exchange, "FINTRACK_AMQP_EXCHANGE")
	setFromEnv(&c.AMQP.RoutingKey, "FINTRACK_AMQP_ROUTING_KEY")
	setFromEnv(&c.Assist.Model, "FINTRACK_ASSIST_MODEL")
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate returns every problem found, joined in one error.
func (c Config) Validate() error {
	var problems []string

	if money.GetCurrency(c.Currency) == nil {
		problems = append(problems, fmt.Sprintf("unknown currency %q", c.Currency))
	}

	kinds := []string{"memory", "dir", "sqlite"}
	if !slices.Contains(kinds, c.Store.Kind) {
		problems = append(problems, fmt.Sprintf("invalid store kind %q: must be one of %v", c.Store.Kind, kinds))
	} else if c.Store.Kind != "memory" && c.Store.Path == "" {
		problems = append(problems, fmt.Sprintf("store path cannot be empty with the %s store", c.Store.Kind))
	}

	levels := []string{"trace", "debug", "info", "warn", "error", "disabled"}
	if !slices.Contains(levels, c.Log.Level) {
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be one of %v", c.Log.Level, levels))
	}

	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQP.URL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQP.Exchange == "" {
			problems = append(problems, "AMQP exchange cannot be empty when an AMQP URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
