package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Device
		Collection
		Sync
		Output
		Labels
		Automation
		Schedule
		HTTP
		Audit
		Database
		Global
	}

	Device struct {
		Serial string // ADB serial of the target device; empty means "the only attached one"
	}
	Collection struct {
		Name string // exact, case-sensitive collection name
	}
	Sync struct {
		WatchDir     string        // folder the cloud-sync client delivers exports into
		PollInterval time.Duration // fixed poll interval for the sync waiter
		Timeout      time.Duration // per-book upper bound on sync latency
	}
	Output struct {
		NotesDir  string // markdown note documents land here
		BackupDir string // consumed artifacts are moved here
	}
	// Labels override the default screen text per logical action, as
	// comma-separated candidate lists. Empty means the built-in labels.
	Labels struct {
		Library     string
		Collections string
		Notes       string
		Share       string
		CloudTarget string
	}
	Automation struct {
		ExportDelay time.Duration // inter-book delay, deliberate UI rate limit
		UIWait      time.Duration // bounded wait for a single UI element
		MaxRetries  int           // retry budget for label lookups
		RetryDelay  time.Duration // fixed backoff between retries
		MaxScrolls  int           // bounded scrolling while locating the collection
	}
	Schedule struct {
		Enabled bool
		Spec    string // cron format: "0 * * * *" = hourly
	}
	HTTP struct {
		Port int32
		Host string
	}
	Audit struct {
		Dir string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("device_serial", "")
	v.SetDefault("collection_name", DefaultCollectionName)

	v.SetDefault("sync_watch_dir", "./sync")
	v.SetDefault("sync_poll_interval", "2s")
	v.SetDefault("sync_timeout", "2m")

	v.SetDefault("notes_dir", "./notes")
	v.SetDefault("backup_dir", "./backup")

	v.SetDefault("label_library", "")
	v.SetDefault("label_collections", "")
	v.SetDefault("label_notes", "")
	v.SetDefault("label_share", "")
	v.SetDefault("label_cloud_target", "")

	v.SetDefault("export_delay", "3s")
	v.SetDefault("ui_wait", "10s")
	v.SetDefault("ui_max_retries", 3)
	v.SetDefault("ui_retry_delay", "2s")
	v.SetDefault("ui_max_scrolls", 5)

	v.SetDefault("schedule_enabled", false)
	v.SetDefault("schedule_spec", "0 * * * *") // Hourly at :00

	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	return &Config{
		Device: Device{
			Serial: v.GetString("DEVICE_SERIAL"),
		},
		Collection: Collection{
			Name: v.GetString("COLLECTION_NAME"),
		},
		Sync: Sync{
			WatchDir:     v.GetString("SYNC_WATCH_DIR"),
			PollInterval: v.GetDuration("SYNC_POLL_INTERVAL"),
			Timeout:      v.GetDuration("SYNC_TIMEOUT"),
		},
		Output: Output{
			NotesDir:  v.GetString("NOTES_DIR"),
			BackupDir: v.GetString("BACKUP_DIR"),
		},
		Labels: Labels{
			Library:     v.GetString("LABEL_LIBRARY"),
			Collections: v.GetString("LABEL_COLLECTIONS"),
			Notes:       v.GetString("LABEL_NOTES"),
			Share:       v.GetString("LABEL_SHARE"),
			CloudTarget: v.GetString("LABEL_CLOUD_TARGET"),
		},
		Automation: Automation{
			ExportDelay: v.GetDuration("EXPORT_DELAY"),
			UIWait:      v.GetDuration("UI_WAIT"),
			MaxRetries:  v.GetInt("UI_MAX_RETRIES"),
			RetryDelay:  v.GetDuration("UI_RETRY_DELAY"),
			MaxScrolls:  v.GetInt("UI_MAX_SCROLLS"),
		},
		Schedule: Schedule{
			Enabled: v.GetBool("SCHEDULE_ENABLED"),
			Spec:    v.GetString("SCHEDULE_SPEC"),
		},
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
