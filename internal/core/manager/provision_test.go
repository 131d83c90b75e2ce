package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqforge/mqforge/internal/core/identity"
	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/internal/core/template"
)

func renderedConfig() *template.RenderedSystemConfig {
	return &template.RenderedSystemConfig{
		VHost: "/",
		Exchanges: []template.ExchangeSpec{
			{Name: "orders.work", Type: "direct", Durable: true},
		},
		Queues: []template.QueueSpec{
			{Name: "orders.work", Durable: true, Arguments: map[string]any{"x-message-ttl": 30000}},
			{Name: "orders.retry", Durable: true},
		},
		Bindings: []template.BindingSpec{
			{Source: "orders.work", Destination: "orders.work", RoutingKey: "work"},
		},
	}
}

func TestCreateSystemTagsEveryResource(t *testing.T) {
	gw := newFakeGateway()
	service := newTestService(t, gw)

	resp, err := service.CreateSystem(context.Background(), renderedConfig(), "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})
	require.NoError(t, err)

	assert.Equal(t, "retry-system@/:orders", resp.SystemID)
	assert.Equal(t, 2, resp.Queues)
	assert.Equal(t, 1, resp.Exchanges)
	assert.Equal(t, 1, resp.Bindings)

	queue := gw.queues["/"]["orders.work"]
	assert.Equal(t, "retry-system@/:orders", queue.Arguments[identity.TagSystemID])
	assert.Equal(t, "retry-system", queue.Arguments[identity.TagTemplate])
	assert.Equal(t, "1.2", queue.Arguments[identity.TagVersion])
	assert.NotEmpty(t, queue.Arguments[identity.TagCreatedAt])
	// spec arguments survive alongside the tags
	assert.Equal(t, 30000, queue.Arguments["x-message-ttl"])

	exchange := gw.exchanges["/"]["orders.work"]
	assert.Equal(t, "retry-system@/:orders", exchange.Arguments[identity.TagSystemID])
	assert.True(t, exchange.Durable)
	assert.Equal(t, "direct", exchange.Type)

	require.Len(t, gw.bindings["/"], 1)
	binding := gw.bindings["/"][0]
	assert.Equal(t, "orders.work", binding.Source)
	assert.Equal(t, "retry-system@/:orders", binding.Arguments[identity.TagSystemID])
}

func TestCreateSystemWithoutPrefixParameter(t *testing.T) {
	gw := newFakeGateway()
	service := newTestService(t, gw)

	resp, err := service.CreateSystem(context.Background(), renderedConfig(), "retry-system", "1.2", nil)
	require.NoError(t, err)

	assert.Equal(t, "retry-system@/:unnamed", resp.SystemID)
}

func TestCreateSystemConflictOnExistingExchange(t *testing.T) {
	gw := newFakeGateway()
	gw.addExchange("/", "orders.work", nil)
	service := newTestService(t, gw)

	_, err := service.CreateSystem(context.Background(), renderedConfig(), "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "orders.work", conflict.Resource)
	assert.Contains(t, err.Error(), "already exists")

	// Abort happened before any queue was created.
	assert.Empty(t, gw.queues["/"])
}

func TestCreateSystemLeavesPartialStateOnLateConflict(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "orders.retry", nil) // second queue spec collides
	service := newTestService(t, gw)

	_, err := service.CreateSystem(context.Background(), renderedConfig(), "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "orders.retry", conflict.Resource)

	// No rollback: the exchange and first queue created earlier remain.
	assert.Contains(t, gw.exchanges["/"], "orders.work")
	assert.Contains(t, gw.queues["/"], "orders.work")
	assert.Empty(t, gw.bindings["/"])
}

func TestCreateSystemReusesExistingSilently(t *testing.T) {
	gw := newFakeGateway()
	gw.addExchange("/", "orders.work", map[string]any{"keep": "me"})
	service := newTestService(t, gw)

	cfg := renderedConfig()
	cfg.Exchanges[0].ReuseIfExists = true

	_, err := service.CreateSystem(context.Background(), cfg, "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})
	require.NoError(t, err)

	// Reused exchange was not re-declared or re-tagged.
	assert.Equal(t, map[string]any{"keep": "me"}, gw.exchanges["/"]["orders.work"].Arguments)
	assert.Contains(t, gw.queues["/"], "orders.work")
}

func TestCreateSystemReuseWithValidationMismatch(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "orders.work", map[string]any{"x-message-ttl": 60000})
	existing := gw.queues["/"]["orders.work"]
	existing.Durable = true
	gw.queues["/"]["orders.work"] = existing
	service := newTestService(t, gw)

	cfg := renderedConfig()
	cfg.Exchanges = nil
	cfg.Queues = cfg.Queues[:1]
	cfg.Bindings = nil
	cfg.Queues[0].ReuseIfExists = true
	cfg.Queues[0].ValidateIfExists = map[string]any{
		"durable": false,
		"arguments": map[string]any{
			"x-message-ttl": 30000,
		},
	}

	_, err := service.CreateSystem(context.Background(), cfg, "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "orders.work", conflict.Resource)
	require.Len(t, conflict.Mismatches, 2)
	assert.Contains(t, err.Error(), "durable expected false, found true")
	assert.Contains(t, err.Error(), "arguments.x-message-ttl expected 30000, found 60000")

	// Nothing was mutated.
	assert.True(t, gw.queues["/"]["orders.work"].Durable)
	assert.Equal(t, 60000, gw.queues["/"]["orders.work"].Arguments["x-message-ttl"])
}

func TestCreateSystemReuseWithValidationMatchProceeds(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "orders.work", nil)
	existing := gw.queues["/"]["orders.work"]
	existing.Durable = true
	gw.queues["/"]["orders.work"] = existing
	service := newTestService(t, gw)

	cfg := renderedConfig()
	cfg.Queues[0].ReuseIfExists = true
	cfg.Queues[0].ValidateIfExists = map[string]any{"durable": true}

	_, err := service.CreateSystem(context.Background(), cfg, "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})
	require.NoError(t, err)
	assert.Contains(t, gw.queues["/"], "orders.retry")
}

func TestCreateSystemGatewayErrorPropagates(t *testing.T) {
	gw := newFakeGateway()
	service := newTestService(t, gw)

	cfg := renderedConfig()
	cfg.VHost = "/"
	gwErr := errors.New("boom")
	// A non-NotFound error from the existence probe must abort.
	broken := &erroringGateway{fakeGateway: gw, getExchangeErr: gwErr}
	service = newTestService(t, broken)

	_, err := service.CreateSystem(context.Background(), cfg, "retry-system", "1.2", nil)
	assert.ErrorIs(t, err, gwErr)
}

func TestProvisionFromTemplateShortCircuitsOnValidationErrors(t *testing.T) {
	gw := newFakeGateway()
	tpl, err := template.Parse([]byte(`
template:
  name: retry-system
  version: "1.2"
parameters:
  - name: queuePrefix
    label: Queue prefix
    kind: string
    required: true
queues:
  - name: "${queuePrefix}.work"
`))
	require.NoError(t, err)
	service := NewService(gw, template.NewRegistry(tpl), nil, nil)

	resp, validationErrs, err := service.ProvisionFromTemplate(context.Background(), "/", "retry-system", nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "queuePrefix", validationErrs[0].Field)
	assert.Empty(t, gw.queues["/"])
}

func TestProvisionFromTemplateUnknownTemplate(t *testing.T) {
	service := NewService(newFakeGateway(), template.NewRegistry(), nil, nil)

	_, _, err := service.ProvisionFromTemplate(context.Background(), "/", "nope", nil)
	assert.ErrorContains(t, err, "template 'nope' not found")
}

func TestProvisionRecordsAuditOperation(t *testing.T) {
	gw := newFakeGateway()
	audit := &fakeAudit{}
	service := NewService(gw, nil, nil, audit)

	_, err := service.CreateSystem(context.Background(), renderedConfig(), "retry-system", "1.2",
		map[string]any{"queuePrefix": "orders"})
	require.NoError(t, err)

	require.Len(t, audit.ops, 1)
	assert.Equal(t, "provision", audit.ops[0].Kind)
	assert.Equal(t, "succeeded", audit.ops[0].Outcome)
	assert.Equal(t, "retry-system@/:orders", audit.ops[0].SystemID)
	assert.NotEmpty(t, audit.ops[0].ID)
}

// erroringGateway wraps the fake to force errors on specific calls.
type erroringGateway struct {
	*fakeGateway
	getExchangeErr error
}

func (e *erroringGateway) GetExchange(ctx context.Context, vhost, name string) (*models.ExchangeDTO, error) {
	if e.getExchangeErr != nil {
		return nil, e.getExchangeErr
	}
	return e.fakeGateway.GetExchange(ctx, vhost, name)
}
