// Package metrics defines the Recorder hooks used across docsite.
//
// Components receive a Recorder through injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	nav := navigation.New(builder, navigation.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry,
// which the admin server exposes via HTTPHandler.
package metrics
