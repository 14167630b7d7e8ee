// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Codec metrics.
	MetricEncodes      = "turbts_encodes_total"
	MetricDecodes      = "turbts_decodes_total"
	MetricEncodedBytes = "turbts_encoded_bytes_total"
	MetricDecodedBytes = "turbts_decoded_bytes_total"
	MetricFormatErrors = "turbts_format_errors_total"

	// Archive metrics.
	MetricLoads       = "turbts_loads_total"
	MetricSaves       = "turbts_saves_total"
	MetricLoadSeconds = "turbts_load_seconds"
	MetricSaveSeconds = "turbts_save_seconds"

	// Cache metrics.
	MetricCacheHits   = "turbts_cache_hits_total"
	MetricCacheMisses = "turbts_cache_misses_total"
	MetricCacheSize   = "turbts_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
