package gateway

import (
	"context"

	"github.com/mqforge/mqforge/internal/core/models"
)

// BindingOptions describe a binding from a source exchange to a destination.
type BindingOptions struct {
	DestinationKind string         // "queue" (default) or "exchange"
	RoutingKey      string
	Arguments       map[string]any
}

type bindingBody struct {
	RoutingKey string         `json:"routing_key"`
	Arguments  map[string]any `json:"arguments,omitempty"`
}

// ListBindings fetches all bindings in the vhost. Never cached; the teardown
// loop re-reads binding state every round.
func (c *Client) ListBindings(ctx context.Context, vhost string) ([]models.BindingDTO, error) {
	var bindings []models.BindingDTO
	if err := c.do(ctx, "GET", "/api/bindings/"+escape(vhost), nil, &bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

// CreateBinding appends a binding. The broker deduplicates identical
// (source, destination, routing key, arguments) tuples server side.
func (c *Client) CreateBinding(ctx context.Context, vhost, source, destination string, opts BindingOptions) error {
	kind := "q"
	if opts.DestinationKind == "exchange" {
		kind = "e"
	}
	path := "/api/bindings/" + escape(vhost) + "/e/" + escape(source) + "/" + kind + "/" + escape(destination)
	return c.do(ctx, "POST", path, bindingBody{
		RoutingKey: opts.RoutingKey,
		Arguments:  opts.Arguments,
	}, nil)
}
