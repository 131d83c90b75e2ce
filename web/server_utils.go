package web

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/rabbitmq/amqp091-go"
)

// GetBrokerClient dials the broker's AMQP port for the given vhost, using
// the configured management credentials.
func GetBrokerClient(c *Config, vhost string) (*amqp091.Connection, error) {
	username := c.Username
	password := c.Password
	host := c.BrokerHost
	port := c.BrokerPort

	vhostSegment := "/"
	if vhost != "" && vhost != "/" {
		vhostSegment = "/" + url.PathEscape(vhost)
	}

	connectionString := fmt.Sprintf("amqp://%s:%s@%s:%s%s", username, password, host, port, vhostSegment)
	brokerAddr := fmt.Sprintf("%s:%s", host, port)
	log.Debug().Str("addr", brokerAddr).Str("vhost", vhost).Msg("Connecting to broker")

	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	return conn, nil
}
