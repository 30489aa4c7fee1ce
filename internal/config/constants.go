package config

// Default paths and identifiers
const (
	// DefaultDatabasePath is the default path for the run-history database
	DefaultDatabasePath = "./notehammer.db"

	// DefaultCollectionName is the Kindle collection processed when none is given
	DefaultCollectionName = "To Export"

	// KindlePackage is the Android package name of the Kindle application
	KindlePackage = "com.amazon.kindle"
)
