// Package metrics records pipeline metrics for the site builder.
//
// Components default to NoopRecorder, so nothing needs nil checks. The watch
// command swaps in a PrometheusRecorder and serves it over HTTP:
//
//	reg := prometheus.NewRegistry()
//	builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
