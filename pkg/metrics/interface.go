package metrics

// Collector is the interface for metrics collection in MQForge.
// This interface allows for easy mocking in tests.
type Collector interface {
	// Gateway metrics
	RecordGatewayRequest(method, status string)

	// Lifecycle metrics
	RecordSystemProvisioned(template string)
	RecordProvisionFailure(template string)
	RecordSystemDeleted()
	RecordResourcesDeleted(queues, exchanges int)
}

// Ensure both implementations satisfy Collector.
var (
	_ Collector = (*PrometheusCollector)(nil)
	_ Collector = (*Noop)(nil)
)
