package gateway

import (
	"context"

	"github.com/mqforge/mqforge/internal/core/models"
)

// ExchangeOptions are the broker-visible properties of an exchange declaration.
type ExchangeOptions struct {
	Type       string         `json:"type"`
	Durable    bool           `json:"durable"`
	AutoDelete bool           `json:"auto_delete"`
	Internal   bool           `json:"internal"`
	Arguments  map[string]any `json:"arguments,omitempty"`
}

// ListExchanges fetches all exchanges in the vhost. Never cached.
func (c *Client) ListExchanges(ctx context.Context, vhost string) ([]models.ExchangeDTO, error) {
	var exchanges []models.ExchangeDTO
	if err := c.do(ctx, "GET", "/api/exchanges/"+escape(vhost), nil, &exchanges); err != nil {
		return nil, err
	}
	return exchanges, nil
}

// GetExchange fetches a single exchange. Fails with NotFoundError when absent.
func (c *Client) GetExchange(ctx context.Context, vhost, name string) (*models.ExchangeDTO, error) {
	var exchange models.ExchangeDTO
	if err := c.do(ctx, "GET", "/api/exchanges/"+escape(vhost)+"/"+escape(name), nil, &exchange); err != nil {
		return nil, err
	}
	return &exchange, nil
}

// CreateExchange declares an exchange as an idempotent upsert.
func (c *Client) CreateExchange(ctx context.Context, vhost, name string, opts ExchangeOptions) error {
	return c.do(ctx, "PUT", "/api/exchanges/"+escape(vhost)+"/"+escape(name), opts, nil)
}

// DeleteExchange removes an exchange. Fails with NotFoundError when absent.
func (c *Client) DeleteExchange(ctx context.Context, vhost, name string) error {
	return c.do(ctx, "DELETE", "/api/exchanges/"+escape(vhost)+"/"+escape(name), nil, nil)
}
