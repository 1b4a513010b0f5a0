package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir(), cfg.DataDir)
	assert.True(t, cfg.Journal)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.JSON)
	assert.Empty(t, cfg.Document)
	assert.Contains(t, cfg.Policies.ActorPolicy.Blocklist, "User")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PRDGRAPH_DATA_DIR", "/tmp/prd-data")
	t.Setenv("PRDGRAPH_JOURNAL", "false")
	t.Setenv("PRDGRAPH_LOG_LEVEL", "debug")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prd-data", cfg.DataDir)
	assert.False(t, cfg.Journal)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeFile(t, "prdgraph.yaml", `
document: ./checkout.yaml
log-level: warn
policies:
  actorPolicy:
    blocklist: [Visitor]
  termPolicy:
    synonyms:
      cart: [basket, trolley]
`)
	v := NewViper()
	v.Set(KeyConfig, path)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "./checkout.yaml", cfg.Document)
	assert.Equal(t, "warn", cfg.LogLevel)

	assert.Equal(t, []string{"Visitor"}, cfg.Policies.ActorPolicy.Blocklist)
	assert.Contains(t, cfg.Policies.ActorPolicy.Allowlist, "Product Manager", "unset lists keep defaults")
	assert.Equal(t, []string{"basket", "trolley"}, cfg.Policies.TermPolicy.Synonyms["cart"])
	assert.Contains(t, cfg.Policies.TermPolicy.Blocklist, "API")
}

func TestLoad_UnknownPolicyKey(t *testing.T) {
	path := writeFile(t, "prdgraph.yaml", "policies:\n  actorPolicy:\n    denylist: [x]\n")
	v := NewViper()
	v.Set(KeyConfig, path)

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding policies")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	v := NewViper()
	v.Set(KeyConfig, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{DataDir: "/tmp/x", LogLevel: "info"}, false},
		{"empty data dir", Config{DataDir: " ", LogLevel: "info"}, true},
		{"bad level", Config{DataDir: "/tmp/x", LogLevel: "loud"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(Config{LogLevel: "warn"}, &buf)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, logrus.InfoLevel, newLogger(Config{LogLevel: "??"}, &buf).GetLevel())
	assert.Equal(t, os.Stderr, NewLogger(Config{LogLevel: "info"}).Out)
}
