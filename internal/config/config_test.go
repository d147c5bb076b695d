package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(timezoneEnv, "")

	cfg := Load()

	require.Len(t, cfg.Sources, 3)
	require.Equal(t, "Fintech News", cfg.Sources[0].Name)
	require.Equal(t, 10, cfg.Fetch.MaxEntries)
	require.Equal(t, 2.0, cfg.Server.RateLimit)
	require.Len(t, cfg.Keywords.Fintech, 27)
	require.Equal(t, "UTC", cfg.Location().String())

	params := cfg.Defaults.Params()
	require.Equal(t, 14, params.DaysBack)
	require.True(t, params.ShowFunding && params.ShowGlobal && params.ShowNational)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
logging:
  level: debug
fetch:
  timeout: 5s
  maxEntries: 4
sources:
  - name: Local
    url: http://localhost/feed
    scanner: rss
keywords:
  funding: [seed round]
defaults:
  daysBack: 3
  showGlobal: false
server:
  rateLimit: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(exportDirEnv, "/tmp/exports")
	t.Setenv(serverAddrEnv, "")
	t.Setenv(timezoneEnv, "Europe/Berlin")

	cfg := Load()

	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	require.Equal(t, 4, cfg.Fetch.MaxEntries)
	require.Equal(t, 3, cfg.Fetch.Concurrency)
	require.Equal(t, []SourceConfig{{Name: "Local", URL: "http://localhost/feed", Scanner: "rss"}}, cfg.Sources)
	require.Equal(t, []string{"seed round"}, cfg.Keywords.Funding)
	require.Len(t, cfg.Keywords.Fintech, 27, "untouched groups keep defaults")
	require.Equal(t, "/tmp/exports", cfg.Export.Dir)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 0.5, cfg.Server.RateLimit)
	require.Equal(t, "Europe/Berlin", cfg.Location().String())

	params := cfg.Defaults.Params()
	require.Equal(t, 3, params.DaysBack)
	require.False(t, params.ShowGlobal)
	require.True(t, params.ShowFunding)
}

func TestLoadFallsBackOnBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [::"), 0o600))

	_, err := ReadFile(path)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, "parse", fileErr.Op)

	t.Setenv(configPathEnv, path)
	t.Setenv(timezoneEnv, "Mars/Olympus")
	cfg := Load()
	require.Len(t, cfg.Sources, 3)
	require.Equal(t, "UTC", cfg.Timezone)
}
