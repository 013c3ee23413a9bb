package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const metricsDirPerm = 0o750

// NewPrometheusReader returns a fresh registry and the OTel reader that
// feeds it. Each call is independent so repeated setups never collide.
func NewPrometheusReader() (*prometheus.Registry, sdkmetric.Reader, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return registry, exporter, nil
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	err := os.MkdirAll(filepath.Dir(path), metricsDirPerm)
	if err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}

	err = prometheus.WriteToTextfile(path, g)
	if err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	return nil
}
