package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports MQForge metrics through a prometheus registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	gatewayRequests    *prometheus.CounterVec
	systemsProvisioned *prometheus.CounterVec
	provisionFailures  *prometheus.CounterVec
	systemsDeleted     prometheus.Counter
	queuesDeleted      prometheus.Counter
	exchangesDeleted   prometheus.Counter
}

// NewPrometheusCollector creates a collector with its own registry.
func NewPrometheusCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	c := &PrometheusCollector{
		registry: registry,
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqforge_gateway_requests_total",
			Help: "Management API requests issued by the gateway, by method and status.",
		}, []string{"method", "status"}),
		systemsProvisioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqforge_systems_provisioned_total",
			Help: "Logical systems provisioned successfully, by template.",
		}, []string{"template"}),
		provisionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqforge_provision_failures_total",
			Help: "Provisioning attempts that aborted, by template.",
		}, []string{"template"}),
		systemsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqforge_systems_deleted_total",
			Help: "Logical systems torn down.",
		}),
		queuesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqforge_queues_deleted_total",
			Help: "Queues deleted during teardown.",
		}),
		exchangesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqforge_exchanges_deleted_total",
			Help: "Exchanges deleted during teardown.",
		}),
	}

	registry.MustRegister(
		c.gatewayRequests,
		c.systemsProvisioned,
		c.provisionFailures,
		c.systemsDeleted,
		c.queuesDeleted,
		c.exchangesDeleted,
	)
	return c
}

// Registry exposes the underlying registry for the /metrics handler.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *PrometheusCollector) RecordGatewayRequest(method, status string) {
	c.gatewayRequests.WithLabelValues(method, status).Inc()
}

func (c *PrometheusCollector) RecordSystemProvisioned(template string) {
	c.systemsProvisioned.WithLabelValues(template).Inc()
}

func (c *PrometheusCollector) RecordProvisionFailure(template string) {
	c.provisionFailures.WithLabelValues(template).Inc()
}

func (c *PrometheusCollector) RecordSystemDeleted() {
	c.systemsDeleted.Inc()
}

func (c *PrometheusCollector) RecordResourcesDeleted(queues, exchanges int) {
	c.queuesDeleted.Add(float64(queues))
	c.exchangesDeleted.Add(float64(exchanges))
}
