// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// TelemetryShutdown caps how long a command waits to flush pending spans
// before exiting.
const TelemetryShutdown = 5 * time.Second

// SQLiteBusy is how long a SQLite connection waits on a locked database
// before failing.
const SQLiteBusy = 5 * time.Second
