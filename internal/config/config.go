// Package config resolves runtime settings from flags, PRDGRAPH_* env
// vars and an optional config file, all through viper.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/HendryAvila/prdgraph/internal/policy"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "PRDGRAPH"

// Keys shared by flags, env and config files.
const (
	KeyDataDir  = "data-dir"
	KeyDocument = "document"
	KeyJournal  = "journal"
	KeyLogLevel = "log-level"
	KeyJSON     = "json"
	KeyConfig   = "config"
	KeyPolicies = "policies"
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDir    string
	Document   string
	Journal    bool
	LogLevel   string
	JSON       bool
	ConfigFile string
	Policies   policy.Set
}

// DefaultDataDir returns ~/.prdgraph.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".prdgraph")
}

// NewViper returns a viper instance with env binding and defaults set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDataDir, DefaultDataDir())
	v.SetDefault(KeyJournal, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyJSON, false)
	return v
}

// Load reads the optional config file named by the config key and builds
// a validated Config.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	cfg := Config{
		DataDir:    v.GetString(KeyDataDir),
		Document:   v.GetString(KeyDocument),
		Journal:    v.GetBool(KeyJournal),
		LogLevel:   v.GetString(KeyLogLevel),
		JSON:       v.GetBool(KeyJSON),
		ConfigFile: v.ConfigFileUsed(),
	}

	pol, err := loadPolicies(v)
	if err != nil {
		return Config{}, err
	}
	cfg.Policies = pol

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadPolicies starts from the built-in tables and replaces each list the
// config file sets.
func loadPolicies(v *viper.Viper) (policy.Set, error) {
	set := policy.Default()
	if !v.IsSet(KeyPolicies) {
		return set, nil
	}

	var override policy.Set
	err := v.UnmarshalKey(KeyPolicies, &override, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
		dc.ErrorUnused = true
	})
	if err != nil {
		return policy.Set{}, fmt.Errorf("decoding policies: %w", err)
	}

	if override.ActorPolicy.Allowlist != nil {
		set.ActorPolicy.Allowlist = override.ActorPolicy.Allowlist
	}
	if override.ActorPolicy.Blocklist != nil {
		set.ActorPolicy.Blocklist = override.ActorPolicy.Blocklist
	}
	if override.TermPolicy.Allowlist != nil {
		set.TermPolicy.Allowlist = override.TermPolicy.Allowlist
	}
	if override.TermPolicy.Blocklist != nil {
		set.TermPolicy.Blocklist = override.TermPolicy.Blocklist
	}
	if override.TermPolicy.Synonyms != nil {
		set.TermPolicy.Synonyms = override.TermPolicy.Synonyms
	}
	return set, nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%s must not be empty", KeyDataDir)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return nil
}

// NewLogger builds the process logger. It writes to stderr so stdout stays
// free for the MCP stdio transport and CLI output.
func NewLogger(c Config) *logrus.Logger {
	return newLogger(c, os.Stderr)
}

func newLogger(c Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
