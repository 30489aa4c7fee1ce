package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "", cfg.Device.Serial)
	assert.Equal(t, DefaultCollectionName, cfg.Collection.Name)
	assert.Equal(t, "./sync", cfg.Sync.WatchDir)
	assert.Equal(t, 2*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Sync.Timeout)
	assert.Equal(t, "./notes", cfg.Output.NotesDir)
	assert.Equal(t, "./backup", cfg.Output.BackupDir)
	assert.Equal(t, 3*time.Second, cfg.Automation.ExportDelay)
	assert.Equal(t, 3, cfg.Automation.MaxRetries)
	assert.Equal(t, 5, cfg.Automation.MaxScrolls)
	assert.False(t, cfg.Schedule.Enabled)
	assert.Equal(t, "0 * * * *", cfg.Schedule.Spec)
	assert.Equal(t, int32(8189), cfg.HTTP.Port)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DEVICE_SERIAL", "emulator-5554")
	t.Setenv("COLLECTION_NAME", "History")
	t.Setenv("SYNC_TIMEOUT", "5m")
	t.Setenv("SCHEDULE_ENABLED", "true")
	t.Setenv("PORT", "9000")
	t.Setenv("LABEL_CLOUD_TARGET", "Dropbox")

	cfg := NewConfig()

	assert.Equal(t, "emulator-5554", cfg.Device.Serial)
	assert.Equal(t, "History", cfg.Collection.Name)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Timeout)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "Dropbox", cfg.Labels.CloudTarget)
}
