package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

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

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".siteassist", "config.toml"), store.Path())
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://localhost:5000"))

	assert.Equal(t, "http://localhost:5000", store.GetString("backend.url"))
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("backend.rate_limit", 2))
	assert.Equal(t, "", store.GetString("backend.rate_limit"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("history.limit", 20))

	assert.Equal(t, 20, store.GetInt("history.limit"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	require.NoError(t, store.Set("backend.url", "not an int"))
	assert.Equal(t, 0, store.GetInt("backend.url"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.rate_limit", 2.5))
	require.NoError(t, store.Set("backend.burst", 3))

	assert.InDelta(t, 2.5, store.GetFloat("backend.rate_limit"), 1e-9)
	assert.InDelta(t, 3.0, store.GetFloat("backend.burst"), 1e-9)
	assert.Zero(t, store.GetFloat("nonexistent"))

	// Integers come back from disk as int64
	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, reloaded.GetFloat("backend.burst"), 1e-9)
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("tui.mouse", true))
	require.NoError(t, store.Set("tui.alt_screen", false))
	require.NoError(t, store.Set("tui.theme", "true"))

	assert.True(t, store.GetBool("tui.mouse"))
	assert.False(t, store.GetBool("tui.alt_screen"))
	assert.False(t, store.GetBool("tui.theme"))
	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("backend.url", "https://api.acme.test"))
	require.NoError(t, store1.Set("backend.timeout", "30s"))
	require.NoError(t, store1.Set("chat.fallback_message", "Try again later"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.acme.test", store2.GetString("backend.url"))
	assert.Equal(t, "30s", store2.GetString("backend.timeout"))
	assert.Equal(t, "Try again later", store2.GetString("chat.fallback_message"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://localhost:5000"))
	require.NoError(t, store.Set("chat.fallback_message", "oops"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(raw)
	assert.Contains(t, content, "[backend]")
	assert.Contains(t, content, "[chat]")
	assert.NotContains(t, content, "'backend.url'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[backend]
url = "http://10.0.0.5:5000"
timeout = "1m"
rate_limit = 4

[chat]
fallback_message = "Please retry"
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:5000", store.GetString("backend.url"))
	assert.Equal(t, "1m", store.GetString("backend.timeout"))
	assert.InDelta(t, 4.0, store.GetFloat("backend.rate_limit"), 1e-9)
	assert.Equal(t, "Please retry", store.GetString("chat.fallback_message"))
}

func TestConfigStore_KeyConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend", "http://localhost:5000"))

	err = store.Set("backend.url", "http://localhost:5000")
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://localhost:5000"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("backend.url")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "worker.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

// TestNewConfigStore_MkdirAllError tests error handling when directory creation fails
func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.url", "http://localhost:5000"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("backend.timeout", "5s"))
}

func TestConfigStore_Watch_ReloadsOnExternalWrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.url", "http://localhost:5000"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() { calls.Add(1) })
	}()

	external := []byte("[backend]\nurl = \"http://edited.test:5000\"\n")
	assert.Eventually(t, func() bool {
		// Rewrite until the watcher is attached and sees a change.
		_ = os.WriteFile(store.Path(), external, 0600)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, "http://edited.test:5000", store.GetString("backend.url"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestConfigStore_Watch_KeepsValuesOnBadFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.url", "http://localhost:5000"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = store.Watch(ctx, nil) }()

	require.NoError(t, os.WriteFile(store.Path(), []byte("not toml ][}{"), 0600))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, "http://localhost:5000", store.GetString("backend.url"))
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"backend.url":     "http://localhost:5000",
		"backend.timeout": "5s",
		"top":             true,
	})
	require.NoError(t, err)

	backend, ok := nested["backend"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:5000", backend["url"])
	assert.Equal(t, "5s", backend["timeout"])
	assert.Equal(t, true, nested["top"])

	assert.Equal(t, map[string]any{
		"backend.url":     "http://localhost:5000",
		"backend.timeout": "5s",
		"top":             true,
	}, flattenMap(nested, ""))
}
