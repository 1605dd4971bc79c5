// Package timeouts defines shared timeout constants used by personnel
// commands.
package timeouts

import "time"

// TelemetryShutdown caps how long a command waits for pending spans to flush.
const TelemetryShutdown = 5 * time.Second

// SaveStore limits a single campaign save load or write.
const SaveStore = 10 * time.Second
