package server

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/prdgraph/internal/config"
	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/session"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{DataDir: t.TempDir(), Journal: true, LogLevel: "info", Policies: policy.Default()}
}

func TestNew(t *testing.T) {
	s, sess, cleanup, err := New(testConfig(t), quietLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, s)
	_, err = sess.Journal(1)
	assert.NoError(t, err)
}

func TestNewSession_LoadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meta:\n  id: doc-7\n  title: Billing\n"), 0o644))

	cfg := testConfig(t)
	cfg.Document = path
	sess, cleanup, err := NewSession(cfg, quietLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "doc-7", sess.DocumentID())
	assert.Equal(t, "Billing", sess.Snapshot().Meta.Title)
}

func TestNewSession_MissingDocument(t *testing.T) {
	cfg := testConfig(t)
	cfg.Document = filepath.Join(t.TempDir(), "missing.yaml")
	_, cleanup, err := NewSession(cfg, quietLogger())
	require.Error(t, err)
	cleanup()
}

func TestNewSession_JournalDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal = false
	sess, cleanup, err := NewSession(cfg, quietLogger())
	require.NoError(t, err)
	defer cleanup()

	_, err = sess.Journal(1)
	assert.ErrorIs(t, err, session.ErrNoJournal)
}

func TestNewSession_JournalFailureIsNotFatal(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := testConfig(t)
	cfg.DataDir = filepath.Join(blocker, "sub")
	sess, cleanup, err := NewSession(cfg, quietLogger())
	require.NoError(t, err)
	defer cleanup()

	_, err = sess.Journal(1)
	assert.ErrorIs(t, err, session.ErrNoJournal)
}
