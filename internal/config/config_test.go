package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, "creatorsync.db", cfg.LocalDBPath)
	assert.Equal(t, BackendMemory, cfg.RemoteBackend)
	assert.Equal(t, "creatorsync", cfg.DynamoTable)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-d", "sync.db", "-b", "dynamo", "-t", "mytable", "-i", "30")

	cfg := LoadConfig()

	assert.Equal(t, "sync.db", cfg.LocalDBPath)
	assert.Equal(t, BackendDynamo, cfg.RemoteBackend)
	assert.Equal(t, "mytable", cfg.DynamoTable)
	assert.Equal(t, 30*time.Second, cfg.RemoteTimeout)
}

func TestLoadConfig_Json(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	data := `{
		"local_db_path": "from-json.db",
		"remote_backend": "postgres",
		"remote_timeout": "25s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, "from-json.db", cfg.LocalDBPath)
	assert.Equal(t, BackendPostgres, cfg.RemoteBackend)
	assert.Equal(t, 25*time.Second, cfg.RemoteTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, "creatorsync", cfg.DynamoTable)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"local_db_path":"from-json.db"}`), 0o600))

	withArgs(t, "-c", path, "-d", "from-flag.db")

	cfg := LoadConfig()

	assert.Equal(t, "from-flag.db", cfg.LocalDBPath)
}
