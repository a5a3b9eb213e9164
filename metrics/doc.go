// Package metrics exposes Prometheus metrics for YAML conversions: a counter
// by result, a duration histogram by parser backend and an input size
// histogram.
package metrics
