package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ScriptFilePermissions is the permission for saved scripts (rw-r--r--)
	ScriptFilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Rate limiter constants
const (
	// RateWindowDuration is the trailing interval over which request load is measured.
	RateWindowDuration = 60 * time.Second
	// DefaultRequestsPerMinute is the advisory per-minute budget against the
	// generation service. The limiter reports load; it never refuses.
	DefaultRequestsPerMinute = 15
)

// Model defaults
const (
	// DefaultModelID matches the model the original desktop app shipped with.
	DefaultModelID = "gemini-1.5-flash"
	// DefaultAPIKeyEnvVar is consulted when the config does not name one.
	DefaultAPIKeyEnvVar = "GEMINI_API_KEY"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of run records to display.
	DefaultHistoryLimit = 20
)
