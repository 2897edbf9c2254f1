// Package observability bridges bin lifecycle hooks to Prometheus.
//
// Metrics owns the collectors; Hooks() adapts them to graft.Hooks so a
// host wires monitoring with a single option:
//
//	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
//	bin := graft.NewBin(graft.WithHooks(metrics.Hooks()))
//
// Hosts that also want their own callbacks compose with graft.Join.
package observability
