package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "hotel_system", c.Database.Name)
	assert.Equal(t, 3306, c.Database.Port)
	assert.Equal(t, 30, c.Retention.SnapshotDays)
	assert.Equal(t, 90, c.Retention.TaskDays)
	assert.Equal(t, time.Hour, c.SweepInterval())
	assert.Equal(t, ":8080", c.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9000
database:
  host: db.internal
  port: 3307
  name: rooms
retention:
  snapshot_days: 7
timezone: UTC
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("DB_NAME", "rooms_override")
	t.Setenv("PORT", "9100")
	t.Setenv("DB_PORT", "not-a-number")

	c := Load(path)

	assert.Equal(t, 9100, c.Server.Port)
	assert.Equal(t, "db.internal", c.Database.Host)
	assert.Equal(t, 3307, c.Database.Port, "unparsable int env keeps file value")
	assert.Equal(t, "rooms_override", c.Database.Name)
	assert.Equal(t, 7, c.Retention.SnapshotDays)
	assert.Equal(t, 90, c.Retention.TaskDays, "unset keys keep defaults")
	assert.Equal(t, "UTC", c.Location().String())
}

func TestLocation_Fallback(t *testing.T) {
	c := Default()
	c.Timezone = "Nowhere/Invalid"
	assert.Equal(t, time.Local, c.Location())
}

func TestMySQLConfig(t *testing.T) {
	c := Default()
	c.Database.User = "hk"
	c.Database.Password = "secret"

	mc := c.MySQLConfig()
	assert.Equal(t, "localhost:3306", mc.Addr)
	assert.Equal(t, "hk", mc.User)
	assert.True(t, mc.ParseTime)
	assert.Equal(t, "utf8mb4", mc.Params["charset"])
}
