package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/scene"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	assert.Equal(t, SourceSheet, cfg.GetSource())
	assert.Equal(t, ":8080", cfg.GetListen())
	assert.Equal(t, "https://thequantumfamily.com", cfg.GetParentOrigin())
	assert.Equal(t, roles.DefaultOrder, cfg.GetRoleOrder())
	assert.Equal(t, 30*time.Second, cfg.GetCacheTTL())
	assert.Equal(t, 10*time.Second, cfg.GetFetchTimeout())
	assert.Equal(t, scene.DefaultOptions(), cfg.Scene)
}

func TestEmptyConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SourceSheet, cfg.GetSource())
	assert.Equal(t, "", cfg.GetSheetURL())
	assert.Equal(t, "archetype.db", cfg.GetDBPath())
	assert.Equal(t, ":8080", cfg.GetListen())
	assert.True(t, strings.HasPrefix(cfg.GetAssetsHost(), "https://"))
	assert.Equal(t, 30*time.Second, cfg.GetCacheTTL())
}

func TestLoadConfig_PartialFileKeepsSceneDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "partial.json", `{
		"source": "sqlite",
		"db_path": "/var/lib/archetype/responses.db",
		"cache_ttl": "0s",
		"role_order": ["Pupil", "Scholar", "Servant", "Founder", "Engineer", "Artist"],
		"scene": {"sphere_color": "#ff0000"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, SourceSQLite, cfg.GetSource())
	assert.Equal(t, "/var/lib/archetype/responses.db", cfg.GetDBPath())
	assert.Equal(t, time.Duration(0), cfg.GetCacheTTL())
	assert.Equal(t, "Founder", cfg.GetRoleOrder()[3])
	assert.Equal(t, "#ff0000", cfg.Scene.SphereColor)
	assert.Equal(t, scene.DefaultOptions().CubeSizes, cfg.Scene.CubeSizes)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "config.yaml", `{}`, ".json extension"},
		{"bad json", "bad.json", `{"source":`, "failed to parse config JSON"},
		{"unknown source", "src.json", `{"source": "postgres"}`, "source must be"},
		{"bad duration", "ttl.json", `{"cache_ttl": "soon"}`, "invalid cache_ttl"},
		{"negative duration", "neg.json", `{"fetch_timeout": "-1s"}`, "must not be negative"},
		{"bad role order", "order.json", `{"role_order": ["Pupil"]}`, "role_order"},
		{"bad origin", "origin.json", `{"parent_origin": "thequantumfamily.com"}`, "parent_origin"},
		{"bad sheet url", "sheet.json", `{"sheet_url": "ftp://example.com"}`, "sheet_url"},
		{"bad scene", "scene.json", `{"scene": {"cube_sizes": [1, 2]}}`, "scene"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.body)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat config file")
}

func TestLoadConfig_TooLarge(t *testing.T) {
	t.Parallel()

	body := `{"sheet_url": "https://example.com/` + strings.Repeat("a", 1024*1024) + `"}`
	path := writeConfig(t, "large.json", body)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ARCHETYPE_SHEET_URL", "https://sheetdb.io/api/v1/abc123")
	t.Setenv("ARCHETYPE_SOURCE", "sqlite")
	t.Setenv("ARCHETYPE_DB_PATH", "/tmp/responses.db")
	t.Setenv("ARCHETYPE_PARENT_ORIGIN", "https://example.org/")
	t.Setenv("ARCHETYPE_CACHE_TTL", "5m")
	t.Setenv("ARCHETYPE_ROLE_ORDER", "Pupil,Scholar,Servant,Founder,Engineer,Artist")
	t.Setenv("PORT", "9090")

	cfg := EmptyConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "https://sheetdb.io/api/v1/abc123", cfg.GetSheetURL())
	assert.Equal(t, SourceSQLite, cfg.GetSource())
	assert.Equal(t, "/tmp/responses.db", cfg.GetDBPath())
	assert.Equal(t, "https://example.org", cfg.GetParentOrigin())
	assert.Equal(t, 5*time.Minute, cfg.GetCacheTTL())
	assert.Equal(t, "Founder", cfg.GetRoleOrder()[3])
	assert.Equal(t, ":9090", cfg.GetListen())
}

func TestApplyEnv_ListenBeatsPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ARCHETYPE_LISTEN", "127.0.0.1:7000")

	cfg := EmptyConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "127.0.0.1:7000", cfg.GetListen())
}

func TestApplyEnv_EmptyLeavesFileValues(t *testing.T) {
	t.Setenv("ARCHETYPE_SHEET_URL", "")
	t.Setenv("PORT", "")

	path := writeConfig(t, "file.json", `{"sheet_url": "https://example.com/rows", "listen": ":3000"}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "https://example.com/rows", cfg.GetSheetURL())
	assert.Equal(t, ":3000", cfg.GetListen())
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("ARCHETYPE_SOURCE", "csv")

	cfg := EmptyConfig()
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source must be")
}
