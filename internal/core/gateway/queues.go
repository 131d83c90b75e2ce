package gateway

import (
	"context"

	"github.com/mqforge/mqforge/internal/core/models"
)

// QueueOptions are the broker-visible properties of a queue declaration.
type QueueOptions struct {
	Durable    bool           `json:"durable"`
	AutoDelete bool           `json:"auto_delete"`
	Arguments  map[string]any `json:"arguments,omitempty"`
}

// ListQueues fetches all queues in the vhost. Never cached.
func (c *Client) ListQueues(ctx context.Context, vhost string) ([]models.QueueDTO, error) {
	var queues []models.QueueDTO
	if err := c.do(ctx, "GET", "/api/queues/"+escape(vhost), nil, &queues); err != nil {
		return nil, err
	}
	return queues, nil
}

// GetQueue fetches a single queue. Fails with NotFoundError when absent.
func (c *Client) GetQueue(ctx context.Context, vhost, name string) (*models.QueueDTO, error) {
	var queue models.QueueDTO
	if err := c.do(ctx, "GET", "/api/queues/"+escape(vhost)+"/"+escape(name), nil, &queue); err != nil {
		return nil, err
	}
	return &queue, nil
}

// CreateQueue declares a queue. The broker treats this as an idempotent
// upsert; reuse policy is the orchestrator's concern, not the gateway's.
func (c *Client) CreateQueue(ctx context.Context, vhost, name string, opts QueueOptions) error {
	return c.do(ctx, "PUT", "/api/queues/"+escape(vhost)+"/"+escape(name), opts, nil)
}

// DeleteQueue removes a queue. Fails with NotFoundError when absent; callers
// wanting ignore-missing semantics must suppress that themselves.
func (c *Client) DeleteQueue(ctx context.Context, vhost, name string) error {
	return c.do(ctx, "DELETE", "/api/queues/"+escape(vhost)+"/"+escape(name), nil, nil)
}

// PurgeQueue drops all messages in a queue.
func (c *Client) PurgeQueue(ctx context.Context, vhost, name string) error {
	return c.do(ctx, "DELETE", "/api/queues/"+escape(vhost)+"/"+escape(name)+"/contents", nil, nil)
}
