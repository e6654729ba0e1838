package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/adapters/config"
	"go.trai.ch/gbfsync/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WIKI_USERNAME", "WIKI_PASSWORD", "PROXY_URL",
		"GBFSYNC_WIKI_USERNAME", "GBFSYNC_CDN_CONCURRENCY", "GBFSYNC_SYNC_DELAY",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gbfsync.yaml"), []byte(content), domain.FilePerm))
}

func TestLoader_Defaults(t *testing.T) {
	clearEnv(t)
	loader := &config.Loader{Home: t.TempDir()}

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)

	want := domain.DefaultConfig()
	assert.Equal(t, want.Wiki, cfg.Wiki)
	assert.Equal(t, want.CDN, cfg.CDN)
	assert.Equal(t, want.Sync, cfg.Sync)
	assert.Equal(t, domain.DefaultLedgerPath(), cfg.Ledger.Path)
}

func TestLoader_FileInParentDirectory(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	writeConfig(t, root, `
cdn:
  concurrency: 2
  timeout: 10s
sync:
  delay: 1s
  concurrent: false
log:
  json: true
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := (&config.Loader{Home: t.TempDir()}).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.CDN.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.CDN.Timeout)
	assert.Equal(t, time.Second, cfg.Sync.Delay)
	assert.False(t, cfg.Sync.Concurrent)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, domain.DefaultCDNHost, cfg.CDN.Host)
	assert.Equal(t, filepath.Join(root, domain.StateDirName, domain.LedgerFileName), cfg.Ledger.Path)
}

func TestLoader_HomeConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".config", "gbfsync"), "wiki:\n  api_url: https://wiki.local/api.php\n")

	cfg, err := (&config.Loader{Home: home}).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.local/api.php", cfg.Wiki.APIURL)
}

func TestLoader_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "cdn:\n  concurrency: 2\n")

	t.Setenv("GBFSYNC_CDN_CONCURRENCY", "5")
	t.Setenv("WIKI_USERNAME", "Bot@sync")
	t.Setenv("WIKI_PASSWORD", "secret")
	t.Setenv("PROXY_URL", "http://proxy.local:3128")

	cfg, err := (&config.Loader{Home: t.TempDir()}).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.CDN.Concurrency)
	assert.Equal(t, "Bot@sync", cfg.Wiki.Username)
	assert.Equal(t, "secret", cfg.Wiki.Password)
	assert.Equal(t, "http://proxy.local:3128", cfg.CDN.ProxyURL)
}

func TestLoader_PrefixedEnvWinsOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("GBFSYNC_WIKI_USERNAME", "new")
	t.Setenv("WIKI_USERNAME", "old")

	cfg, err := (&config.Loader{Home: t.TempDir()}).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Wiki.Username)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "cdn: [\n",
			wantErr: domain.ErrConfigLoadFailed,
		},
		{
			name:    "zero concurrency",
			content: "cdn:\n  concurrency: 0\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "negative retries",
			content: "cdn:\n  max_retries: -1\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "empty api url",
			content: "wiki:\n  api_url: \"\"\n",
			wantErr: domain.ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := (&config.Loader{Home: t.TempDir()}).Load(dir)
			require.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}
