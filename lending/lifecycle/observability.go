package lifecycle

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/observable"
)

// ObservabilityConfig holds the observability adapters for command and query handlers.
// Every field is optional.
type ObservabilityConfig struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector
}

func buildCommandOptions[C shell.Command](obsConfig ObservabilityConfig) []observable.CommandOption[C] {
	var options []observable.CommandOption[C]
	if obsConfig.MetricsCollector != nil {
		options = append(options, observable.WithCommandMetrics[C](obsConfig.MetricsCollector))
	}
	if obsConfig.TracingCollector != nil {
		options = append(options, observable.WithCommandTracing[C](obsConfig.TracingCollector))
	}
	if obsConfig.ContextualLogger != nil {
		options = append(options, observable.WithCommandContextualLogging[C](obsConfig.ContextualLogger))
	}
	if obsConfig.Logger != nil {
		options = append(options, observable.WithCommandLogging[C](obsConfig.Logger))
	}
	return options
}

func buildQueryOptions[Q shell.Query, R any](obsConfig ObservabilityConfig) []observable.QueryOption[Q, R] {
	var options []observable.QueryOption[Q, R]
	if obsConfig.MetricsCollector != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](obsConfig.MetricsCollector))
	}
	if obsConfig.TracingCollector != nil {
		options = append(options, observable.WithQueryTracing[Q, R](obsConfig.TracingCollector))
	}
	if obsConfig.ContextualLogger != nil {
		options = append(options, observable.WithQueryContextualLogging[Q, R](obsConfig.ContextualLogger))
	}
	if obsConfig.Logger != nil {
		options = append(options, observable.WithQueryLogging[Q, R](obsConfig.Logger))
	}
	return options
}

// retryOptionsFor adds the retry metrics of one command type to the configured retry options.
func retryOptionsFor(commandType string, base []shell.RetryOption, obsConfig ObservabilityConfig) []shell.RetryOption {
	options := append([]shell.RetryOption(nil), base...)
	if obsConfig.MetricsCollector != nil {
		options = append(options, shell.WithMetrics(obsConfig.MetricsCollector, commandType))
	}

	return options
}
