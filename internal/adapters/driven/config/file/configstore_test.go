package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tierdeck")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("catalog.path", "/srv/catalog.yaml"))
	require.NoError(t, store1.Set("catalog.watch", false))
	require.NoError(t, store1.Set("api.requests_per_second", 2.5))
	require.NoError(t, store1.Set("display.indicators", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/catalog.yaml", store2.GetString("catalog.path"))
	assert.False(t, store2.GetBool("catalog.watch"))
	_, ok := store2.Get("catalog.watch")
	assert.True(t, ok)
	assert.InDelta(t, 2.5, store2.GetFloat("api.requests_per_second"), 0.0001)
	assert.True(t, store2.GetBool("display.indicators"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("catalog.source", "file"))
	require.NoError(t, store.Set("catalog.path", "/c.json"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[catalog]")
	assert.NotContains(t, string(raw), "'catalog.path'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[catalog]
source = "api"

[api]
base_url = "https://market.example.com"
tenant = "acme"
requests_per_second = 4
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "api", store.GetString("catalog.source"))
	assert.Equal(t, "acme", store.GetString("api.tenant"))
	assert.InDelta(t, 4.0, store.GetFloat("api.requests_per_second"), 0.0001, "TOML integers convert")
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("catalog.path", 42))

	assert.Empty(t, store.GetString("catalog.path"))
	assert.False(t, store.GetBool("catalog.path"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("api.token", "secret"))

	require.NoError(t, store.Unset("api.token"))
	require.NoError(t, store.Unset("api.token"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("api.token")
	assert.False(t, ok)
}

func TestConfigStore_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TIERDECK_CATALOG_PATH", "/env/catalog.json")
	t.Setenv("TIERDECK_API_TOKEN", "env-token")

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("catalog.path", "/file/catalog.json"))

	assert.Equal(t, "/env/catalog.json", store.GetString("catalog.path"))
	assert.Equal(t, "env-token", store.GetString("api.token"))
	assert.True(t, store.Overridden("catalog.path"))
	assert.False(t, store.Overridden("api.tenant"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "/file/catalog.json")
	assert.NotContains(t, string(raw), "env-token", "overrides are never persisted")
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("catalog.path")
	assert.False(t, ok)
	require.NoError(t, store.Set("catalog.path", "/x"))
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits differ on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("display.placeholders", true)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetBool("display.placeholders")
		}()
	}
	wg.Wait()

	assert.True(t, store.GetBool("display.placeholders"))
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"catalog.path":  "/c",
		"catalog.watch": true,
		"top":           1,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"catalog": map[string]any{"path": "/c", "watch": true},
		"top":     1,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
