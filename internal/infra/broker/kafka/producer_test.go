package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageSortsHeaders(t *testing.T) {
	msg := newMessage("booking.events.v1", "sub-1", []byte(`{}`), map[string]string{
		"content-type": "application/cloudevents+json",
		"ce-id":        "e-1",
	})
	assert.Equal(t, "booking.events.v1", msg.Topic)
	assert.Equal(t, sarama.StringEncoder("sub-1"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "ce-id", string(msg.Headers[0].Key))
	assert.Equal(t, "content-type", string(msg.Headers[1].Key))

	assert.Nil(t, newMessage("t", "", nil, nil).Key)
}

func TestPublishSendsThroughSyncProducer(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"type":"booking.requested.v1"}` {
			return errors.New("unexpected payload")
		}
		return nil
	})
	p := &Producer{sync: mock}

	err := p.Publish(context.Background(), "booking.events.v1", "sub-1", []byte(`{"type":"booking.requested.v1"}`), nil)
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	p := &Producer{sync: mock}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, "t", "k", []byte("{}"), nil), context.Canceled)
	require.NoError(t, p.Close())
}
