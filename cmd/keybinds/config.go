package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/config/kv"
	"github.com/dshills/keybinds/internal/config/loader"
	"github.com/dshills/keybinds/internal/input/key"
)

//go:embed default.toml
var defaultSchema []byte

// Config is the CLI configuration, read from keybinds.toml, KEYBINDS_*
// environment variables and flags.
type Config struct {
	Schema    string        `mapstructure:"schema"`
	Handlers  string        `mapstructure:"handlers"`
	Platform  string        `mapstructure:"platform"`
	LogLevel  string        `mapstructure:"log_level"`
	HoldDelay time.Duration `mapstructure:"hold_delay"`
	Storage   StorageConfig `mapstructure:"storage"`
}

// StorageConfig selects where overrides are persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "keybinds")
	}
	return "."
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "")
	v.SetDefault("handlers", "")
	v.SetDefault("platform", "auto")
	v.SetDefault("log_level", "warn")
	v.SetDefault("hold_delay", "400ms")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", "keybinds:overrides")
}

// bindFlags maps persistent flags onto configuration keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for flag, key := range map[string]string{
		"schema":       "schema",
		"handlers":     "handlers",
		"platform":     "platform",
		"log-level":    "log_level",
		"hold-delay":   "hold_delay",
		"storage":      "storage.backend",
		"storage-path": "storage.path",
		"storage-key":  "storage.key",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig reads the config file, if any, and unmarshals the result.
func loadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	v.SetConfigType("toml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(defaultDataDir())
		v.SetConfigName("keybinds")
	}

	v.SetEnvPrefix("KEYBINDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func (c Config) parser() key.Parser {
	return key.NewParser(key.ParsePlatform(c.Platform))
}

// loadSchema reads the configured schema, or the built-in demo schema.
func (c Config) loadSchema() (config.Schema, error) {
	p := c.parser()
	if c.Schema == "" {
		var s config.Schema
		if err := loader.Decode("default.toml", loader.FormatTOML, defaultSchema, &s); err != nil {
			return nil, err
		}
		return config.DefineSchemaWithParser(p, s)
	}
	return config.LoadSchema(loader.New(loader.OSFS{}), p, c.Schema)
}

// openKV opens the configured backend. The returned close function is
// never nil.
func (c Config) openKV() (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch c.Storage.Backend {
	case "memory":
		return kv.NewMemory(), noop, nil
	case "", "file":
		path := c.Storage.Path
		if path == "" {
			path = filepath.Join(defaultDataDir(), "overrides.json")
		}
		return kv.NewFile(path), noop, nil
	case "sqlite":
		path := c.Storage.Path
		if path == "" {
			path = filepath.Join(defaultDataDir(), "keybinds.db")
		}
		db, err := kv.OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q (expected memory, file or sqlite)", c.Storage.Backend)
}
