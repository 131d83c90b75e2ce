package manager

import (
	"context"
	"sort"
	"testing"

	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/identity"
	"github.com/mqforge/mqforge/internal/core/models"
)

// fakeGateway implements Gateway over in-memory fixture resource lists, with
// the broker's implicit-binding-removal semantics on deletes.
type fakeGateway struct {
	queues    map[string]map[string]models.QueueDTO
	exchanges map[string]map[string]models.ExchangeDTO
	bindings  map[string][]models.BindingDTO

	failDeleteExchange map[string]error
	bindingFetches     int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		queues:             map[string]map[string]models.QueueDTO{},
		exchanges:          map[string]map[string]models.ExchangeDTO{},
		bindings:           map[string][]models.BindingDTO{},
		failDeleteExchange: map[string]error{},
	}
}

func (f *fakeGateway) addQueue(vhost, name string, args map[string]any) {
	if f.queues[vhost] == nil {
		f.queues[vhost] = map[string]models.QueueDTO{}
	}
	f.queues[vhost][name] = models.QueueDTO{VHost: vhost, Name: name, Arguments: args}
}

func (f *fakeGateway) addExchange(vhost, name string, args map[string]any) {
	if f.exchanges[vhost] == nil {
		f.exchanges[vhost] = map[string]models.ExchangeDTO{}
	}
	f.exchanges[vhost][name] = models.ExchangeDTO{VHost: vhost, Name: name, Type: "direct", Arguments: args}
}

func (f *fakeGateway) bind(vhost, source, destination, kind string) {
	f.bindings[vhost] = append(f.bindings[vhost], models.BindingDTO{
		VHost:           vhost,
		Source:          source,
		Destination:     destination,
		DestinationType: kind,
	})
}

func (f *fakeGateway) ListVhosts(ctx context.Context) ([]models.VHostDTO, error) {
	return []models.VHostDTO{{Name: "/"}}, nil
}

func (f *fakeGateway) ListQueues(ctx context.Context, vhost string) ([]models.QueueDTO, error) {
	list := make([]models.QueueDTO, 0, len(f.queues[vhost]))
	for _, name := range sortedQueueNames(f.queues[vhost]) {
		list = append(list, f.queues[vhost][name])
	}
	return list, nil
}

func (f *fakeGateway) GetQueue(ctx context.Context, vhost, name string) (*models.QueueDTO, error) {
	q, ok := f.queues[vhost][name]
	if !ok {
		return nil, &gateway.NotFoundError{Resource: "queue " + name}
	}
	return &q, nil
}

func (f *fakeGateway) CreateQueue(ctx context.Context, vhost, name string, opts gateway.QueueOptions) error {
	if f.queues[vhost] == nil {
		f.queues[vhost] = map[string]models.QueueDTO{}
	}
	f.queues[vhost][name] = models.QueueDTO{
		VHost:      vhost,
		Name:       name,
		Durable:    opts.Durable,
		AutoDelete: opts.AutoDelete,
		Arguments:  opts.Arguments,
	}
	return nil
}

func (f *fakeGateway) DeleteQueue(ctx context.Context, vhost, name string) error {
	if _, ok := f.queues[vhost][name]; !ok {
		return &gateway.NotFoundError{Resource: "queue " + name}
	}
	delete(f.queues[vhost], name)
	f.removeBindings(vhost, func(b models.BindingDTO) bool {
		return b.Destination == name && b.DestinationType != "exchange"
	})
	return nil
}

func (f *fakeGateway) ListExchanges(ctx context.Context, vhost string) ([]models.ExchangeDTO, error) {
	list := make([]models.ExchangeDTO, 0, len(f.exchanges[vhost]))
	for _, name := range sortedExchangeNames(f.exchanges[vhost]) {
		list = append(list, f.exchanges[vhost][name])
	}
	return list, nil
}

func (f *fakeGateway) GetExchange(ctx context.Context, vhost, name string) (*models.ExchangeDTO, error) {
	ex, ok := f.exchanges[vhost][name]
	if !ok {
		return nil, &gateway.NotFoundError{Resource: "exchange " + name}
	}
	return &ex, nil
}

func (f *fakeGateway) CreateExchange(ctx context.Context, vhost, name string, opts gateway.ExchangeOptions) error {
	if f.exchanges[vhost] == nil {
		f.exchanges[vhost] = map[string]models.ExchangeDTO{}
	}
	f.exchanges[vhost][name] = models.ExchangeDTO{
		VHost:      vhost,
		Name:       name,
		Type:       opts.Type,
		Durable:    opts.Durable,
		AutoDelete: opts.AutoDelete,
		Internal:   opts.Internal,
		Arguments:  opts.Arguments,
	}
	return nil
}

func (f *fakeGateway) DeleteExchange(ctx context.Context, vhost, name string) error {
	if err, ok := f.failDeleteExchange[name]; ok {
		return err
	}
	if _, ok := f.exchanges[vhost][name]; !ok {
		return &gateway.NotFoundError{Resource: "exchange " + name}
	}
	delete(f.exchanges[vhost], name)
	// Deleting an exchange implicitly removes its bindings on both ends.
	f.removeBindings(vhost, func(b models.BindingDTO) bool {
		return b.Source == name || (b.Destination == name && b.DestinationType == "exchange")
	})
	return nil
}

func (f *fakeGateway) ListBindings(ctx context.Context, vhost string) ([]models.BindingDTO, error) {
	f.bindingFetches++
	return append([]models.BindingDTO{}, f.bindings[vhost]...), nil
}

func (f *fakeGateway) CreateBinding(ctx context.Context, vhost, source, destination string, opts gateway.BindingOptions) error {
	kind := "queue"
	if opts.DestinationKind == "exchange" {
		kind = "exchange"
	}
	f.bindings[vhost] = append(f.bindings[vhost], models.BindingDTO{
		VHost:           vhost,
		Source:          source,
		Destination:     destination,
		DestinationType: kind,
		RoutingKey:      opts.RoutingKey,
		Arguments:       opts.Arguments,
	})
	return nil
}

func (f *fakeGateway) removeBindings(vhost string, match func(models.BindingDTO) bool) {
	remaining := f.bindings[vhost][:0]
	for _, b := range f.bindings[vhost] {
		if !match(b) {
			remaining = append(remaining, b)
		}
	}
	f.bindings[vhost] = remaining
}

func sortedQueueNames(m map[string]models.QueueDTO) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedExchangeNames(m map[string]models.ExchangeDTO) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fakeAudit captures recorded operations.
type fakeAudit struct {
	ops []Operation
}

func (f *fakeAudit) RecordOperation(op Operation) error {
	f.ops = append(f.ops, op)
	return nil
}

func bindingWithArgs(source, destination string, args map[string]any) models.BindingDTO {
	return models.BindingDTO{
		VHost:           "/",
		Source:          source,
		Destination:     destination,
		DestinationType: "queue",
		Arguments:       args,
	}
}

// tagged builds an ownership argument map for fixtures.
func tagged(systemID, tpl, version, createdAt string) map[string]any {
	return map[string]any{
		identity.TagSystemID:  systemID,
		identity.TagTemplate:  tpl,
		identity.TagVersion:   version,
		identity.TagCreatedAt: createdAt,
	}
}

func newTestService(t *testing.T, gw Gateway) *Service {
	t.Helper()
	return NewService(gw, nil, nil, nil)
}
