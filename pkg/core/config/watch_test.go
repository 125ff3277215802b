package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/hcmd/foundation/core/log"
)

func TestWatchReloadsValidChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hcmd.toml")
	require.NoError(t, os.WriteFile(path, []byte("[console]\nsuggest = false\n"), 0o644))

	changes := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config) { changes <- cfg }, mdwlog.Discard())
	require.NoError(t, err)
	defer w.Close()

	// invalid content is skipped
	require.NoError(t, os.WriteFile(path, []byte("[console]\nmax_alias_contexts = -5\n"), 0o644))
	select {
	case cfg := <-changes:
		t.Fatalf("unexpected reload: %+v", cfg.Console)
	case <-time.After(500 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("[console]\nsuggest = true\n[console.aliases]\nhi = \"echo hi\"\n"), 0o644))
	select {
	case cfg := <-changes:
		assert.True(t, cfg.Console.Suggest)
		assert.Equal(t, "echo hi", cfg.Console.Aliases["hi"])
	case <-time.After(5 * time.Second):
		t.Fatal("config change not noticed")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hcmd.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	changes := make(chan *Config, 1)
	w, err := Watch(path, func(cfg *Config) { changes <- cfg }, mdwlog.Discard())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0o644))
	select {
	case <-changes:
		t.Fatal("change of another file triggered a reload")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchErrors(t *testing.T) {
	_, err := Watch("", nil, mdwlog.Discard())
	assert.Error(t, err)

	_, err = Watch(filepath.Join(t.TempDir(), "missing", "hcmd.toml"), nil, mdwlog.Discard())
	assert.Error(t, err)
}

func TestWatcherPathAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hcmd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("console:\n  suggest: true\n"), 0o644))

	w, err := Watch(path, nil, mdwlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())
	assert.NoError(t, w.Close())
}
