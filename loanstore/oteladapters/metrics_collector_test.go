package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "insert", "status": "success"}

	// act
	collector.RecordDuration("loanstore_insert_duration_seconds", 250*time.Millisecond, labels)

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "loanstore_insert_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.25, histogram.DataPoints[0].Sum, 0.001)

	expected := attribute.NewSet(attribute.String("operation", "insert"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter_Accumulates(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "update", "conflict_type": "concurrency"}

	// act
	collector.IncrementCounter("loanstore_concurrency_conflicts_total", labels)
	collector.IncrementCounterContext(context.Background(), "loanstore_concurrency_conflicts_total", labels)
	collector.IncrementCounter("loanstore_concurrency_conflicts_total", labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "loanstore_concurrency_conflicts_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(3), counter.DataPoints[0].Value)
	assert.True(t, counter.IsMonotonic)
}

func Test_MetricsCollector_IncrementCounter_SeparatesLabelSets(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.IncrementCounter("loanstore_database_errors_total", map[string]string{"error_type": "database_query"})
	collector.IncrementCounter("loanstore_database_errors_total", map[string]string{"error_type": "row_scan"})

	// assert
	counter := findCounterMetric(t, collect(t, reader), "loanstore_database_errors_total")
	assert.Len(t, counter.DataPoints, 2)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "query"}

	// act
	collector.RecordValue("loanstore_records_returned", 4, labels)
	collector.RecordValueContext(context.Background(), "loanstore_records_returned", 9, labels)

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "loanstore_records_returned")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 9.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_ConcurrentUse(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	var wg sync.WaitGroup

	// act
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounter("loanstore_records_queried_total", map[string]string{"operation": "query"})
			collector.RecordDuration("loanstore_query_duration_seconds", time.Millisecond, nil)
		}()
	}
	wg.Wait()

	// assert
	rm := collect(t, reader)
	assert.Equal(t, int64(20), findCounterMetric(t, rm, "loanstore_records_queried_total").DataPoints[0].Value)
	assert.Equal(t, uint64(20), findHistogramMetric(t, rm, "loanstore_query_duration_seconds").DataPoints[0].Count)
}

func givenMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func findHistogramMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	h, ok := findMetric(t, rm, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %s is not a float64 histogram", name)

	return h
}

func findCounterMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	c, ok := findMetric(t, rm, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)

	return c
}

func findGaugeMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	g, ok := findMetric(t, rm, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "metric %s is not a float64 gauge", name)

	return g
}
