// Package oteladapters connects the loanstore observability interfaces to OpenTelemetry.
//
// Three adapters are provided:
//   - MetricsCollector maps durations to histograms, counters to counters and values to gauges.
//   - TracingCollector wraps a trace.Tracer and maps loanstore status strings to span codes.
//   - SlogBridgeLogger and OTelLogger implement loanstore.ContextualLogger.
//
// Wire them into a store with the matching postgresengine options:
//
//	store, err := postgresengine.NewLoanStoreFromPGXPool(pool,
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("loans"))),
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("loans"))),
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("loans")),
//	)
package oteladapters
