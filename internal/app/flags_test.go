package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseServerConfig_Defaults(t *testing.T) {
	cfg, err := ParseServerConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, 300, cfg.StoreInterval)
	assert.True(t, cfg.Restore)
	assert.Len(t, cfg.Seed.Ratings, 5)
}

func TestParseServerConfig_Precedence(t *testing.T) {
	path := writeFile(t, "server.yaml", `
address: "file:1"
store_interval: 60
key: from-file
trusted_subnet: 10.0.0.0/8
`)

	t.Setenv("KEY", "from-env")

	cfg, err := ParseServerConfig([]string{"-c", path, "-a", "flag:2", "-k", "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "flag:2", cfg.Address)
	assert.Equal(t, 60, cfg.StoreInterval)
	assert.Equal(t, "from-env", cfg.Key)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedSubnet)
}

func TestParseServerConfig_Env(t *testing.T) {
	t.Setenv("ADDRESS", "env:3")
	t.Setenv("STORE_INTERVAL", "0")
	t.Setenv("RESTORE", "false")
	t.Setenv("SYSTEM_METRICS", "true")

	cfg, err := ParseServerConfig([]string{"-i", "10"})
	require.NoError(t, err)

	assert.Equal(t, "env:3", cfg.Address)
	assert.Equal(t, 0, cfg.StoreInterval)
	assert.False(t, cfg.Restore)
	assert.True(t, cfg.SystemMetrics)
}

func TestParseServerConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad env int", env: map[string]string{"STORE_INTERVAL": "soon"}},
		{name: "bad env bool", env: map[string]string{"RESTORE": "maybe"}},
		{name: "negative interval", args: []string{"-i", "-5"}},
		{name: "unknown flag", args: []string{"-zzz"}},
		{name: "missing file", args: []string{"-c", "/nonexistent/server.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseServerConfig(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseAgentConfig(t *testing.T) {
	path := writeFile(t, "agent.json", `{"address":"dash:8080","report_interval":30,"rate_limit":4}`)
	t.Setenv("POLL_INTERVAL", "5")

	cfg, err := ParseAgentConfig([]string{"-config", path, "-l", "8", "-disk", "/data"})
	require.NoError(t, err)

	assert.Equal(t, "dash:8080", cfg.Address)
	assert.Equal(t, 30, cfg.ReportInterval)
	assert.Equal(t, 5, cfg.PollInterval)
	assert.Equal(t, 8, cfg.RateLimit)
	assert.Equal(t, "/data", cfg.DiskPath)
}

func TestParseAgentConfig_InvalidInterval(t *testing.T) {
	_, err := ParseAgentConfig([]string{"-p", "0"})
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT", "many")
	_, err = ParseAgentConfig(nil)
	assert.Error(t, err)
}
