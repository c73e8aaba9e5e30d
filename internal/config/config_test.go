package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15

[database]
host = "localhost"
port = 5432
user = "booking"
password = "booking"
dbname = "studio_booking"
sslmode = "disable"

[logs]
file = "logs/test.log"
level = "info"

[draft]
secret = "test-secret"
ttl_minutes = 30
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "studio_booking", cfg.Database.DBName)
	assert.Equal(t, "test-secret", cfg.Draft.Secret)
	assert.Equal(t, 30, cfg.Draft.TTLMinutes)
	assert.Equal(t,
		"host=localhost port=5432 user=booking password=booking dbname=studio_booking sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_DefaultDraftTTL(t *testing.T) {
	content := `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "studio_booking"

[draft]
secret = "test-secret"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Draft.TTLMinutes)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing draft secret", func(t *testing.T) {
		content := `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "studio_booking"
`
		_, err := Load(writeConfig(t, content))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "draft.secret")
	})

	t.Run("missing port", func(t *testing.T) {
		content := `
[database]
host = "localhost"
dbname = "studio_booking"

[draft]
secret = "s"
`
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}
