package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollectorCounters(t *testing.T) {
	c := NewPrometheusCollector()

	c.RecordGatewayRequest("GET", "200")
	c.RecordGatewayRequest("GET", "200")
	c.RecordGatewayRequest("PUT", "401")
	c.RecordSystemProvisioned("retry-system")
	c.RecordProvisionFailure("retry-system")
	c.RecordSystemDeleted()
	c.RecordResourcesDeleted(3, 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.gatewayRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.gatewayRequests.WithLabelValues("PUT", "401")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.systemsProvisioned.WithLabelValues("retry-system")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.provisionFailures.WithLabelValues("retry-system")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.systemsDeleted))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.queuesDeleted))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.exchangesDeleted))
}

func TestPrometheusCollectorRegistryGathers(t *testing.T) {
	c := NewPrometheusCollector()
	c.RecordSystemDeleted()

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	var names []string
	for _, fam := range families {
		names = append(names, fam.GetName())
	}
	assert.Contains(t, strings.Join(names, ","), "mqforge_systems_deleted_total")
}
