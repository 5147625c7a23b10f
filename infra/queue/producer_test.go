package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishMessageWithoutWriter(t *testing.T) {
	var missing *Producer
	err := missing.PublishMessage([]byte("k"), []byte("v"))
	require.Error(t, err)

	empty := &Producer{}
	err = empty.PublishMessage([]byte("k"), []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestNewProducerPlaintextTransport(t *testing.T) {
	p := NewProducer("localhost:9092", "user.verify_email", "", "")
	require.NotNil(t, p.writer)
	assert.Nil(t, p.writer.Transport)
}

func TestNewProducerSASLTransport(t *testing.T) {
	p := NewProducer("broker:9092", "user.verify_email", "svc", "pw")
	require.NotNil(t, p.writer)
	assert.NotNil(t, p.writer.Transport)
}
