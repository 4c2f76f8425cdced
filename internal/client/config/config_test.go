package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url": "http://json:1",
		"timeout":    "3s",
	})

	tests := []struct {
		name string
		args []string
		want *Config
	}{
		{"defaults", nil, &Config{ServerURL: "http://localhost:3000", Timeout: 10 * time.Second}},
		{"json only", []string{"-c", path}, &Config{ServerURL: "http://json:1", Timeout: 3 * time.Second}},
		{"flags override json", []string{"-config", path, "-s", "http://flag:2"},
			&Config{ServerURL: "http://flag:2", Timeout: 3 * time.Second}},
		{"timeout flag", []string{"-t", "750ms"}, &Config{ServerURL: "http://localhost:3000", Timeout: 750 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))

	_, err := Load([]string{"-c", bad})
	require.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	_, err = Load([]string{"-t", "abc"})
	require.Error(t, err)
}

func TestParseJson_PartialKeepsOtherFields(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"timeout": int64(2 * time.Second)})

	cfg := &Config{ServerURL: "http://keep"}
	require.NoError(t, parseJson(cfg, []string{"-c", path}))
	assert.Equal(t, "http://keep", cfg.ServerURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}
