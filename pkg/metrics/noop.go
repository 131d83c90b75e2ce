package metrics

// Noop is a Collector that discards everything. Used when metrics are
// disabled and as the default in tests.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) RecordGatewayRequest(method, status string) {}

func (n *Noop) RecordSystemProvisioned(template string) {}

func (n *Noop) RecordProvisionFailure(template string) {}

func (n *Noop) RecordSystemDeleted() {}

func (n *Noop) RecordResourcesDeleted(queues, exchanges int) {}
