// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The wrapped handlers stay free of observability code. A wrapper starts a span, delegates,
// classifies the returned error with shell.ClassifyError and records:
//   - commandhandler_handle_duration_seconds / queryhandler_handle_duration_seconds
//   - commandhandler_handle_calls_total / queryhandler_handle_calls_total
//   - outcome counters for business failures, cancellations and timeouts
//   - retry counters taken from shell.HandlerResult
//
// Expected lifecycle refusals such as a duplicate request or a lost approval race are logged
// at info level with a business_outcome attribute. They are not errors of the system.
//
// Usage:
//
//	handler, err := observable.NewCommandWrapper[approveloan.Command](
//		approveloan.NewCommandHandler(store, clock),
//		observable.WithCommandMetrics[approveloan.Command](metrics),
//		observable.WithCommandTracing[approveloan.Command](tracing),
//		observable.WithCommandContextualLogging[approveloan.Command](logger),
//	)
package observable
