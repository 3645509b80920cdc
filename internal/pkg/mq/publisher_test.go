package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishJSON(context.Background(), "booking.created", map[string]string{"id": "1"}))
	assert.NoError(t, p.Close())
}

func TestRabbitPublisher_MarshalError(t *testing.T) {
	p := &RabbitPublisher{exchange: "booking.exchange"}
	err := p.PublishJSON(context.Background(), "booking.created", make(chan int))
	assert.ErrorContains(t, err, "marshal event booking.created")
}

func TestRabbitPublisher_CloseWithoutConnection(t *testing.T) {
	assert.NoError(t, (&RabbitPublisher{}).Close())
}
