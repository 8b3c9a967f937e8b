package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakia12/bizconnect-backend/config"
)

func TestNewPublisherDisabledWithoutURL(t *testing.T) {
	p, err := NewPublisher(&config.Config{RabbitMQURL: ""})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	err := p.Publish(context.Background(), RoutingOrderPlaced, OrderEvent{
		OrderID: "ORD-1-ABCDEF",
		Status:  "pending",
	})
	assert.NoError(t, err)

	// Close on nil must not panic either.
	p.Close()
}
