// Package observability wires OpenTelemetry tracing and metrics and the
// structured logger used by every reloadstats command.
package observability

import (
	"log/slog"
	"time"
)

// DefaultServiceName is the OTel service name.
const DefaultServiceName = "reloadstats"

const defaultShutdownTimeout = 5 * time.Second

// Config holds all observability configuration. The zero value logs at INFO
// to stderr and exports nothing.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string // e.g. "dev", "ci"

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables trace and metric export.
	OTLPEndpoint string
	OTLPHeaders  map[string]string
	OTLPInsecure bool

	// MetricsFile, when set, collects metrics in a Prometheus registry that
	// is written as a text exposition on shutdown.
	MetricsFile string

	LogLevel slog.Level
	LogJSON  bool

	// ShutdownTimeout bounds the final flush. Zero uses five seconds.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:     DefaultServiceName,
		LogLevel:        slog.LevelInfo,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}
