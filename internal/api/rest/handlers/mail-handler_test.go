package handlers_test

import (
	"errors"
	"testing"

	"github.com/AnnaHort/phonebook-auth/internal/api/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	to    string
	token string
	err   error
}

func (s *stubSender) SendVerifyEmail(to string, token string) error {
	s.to = to
	s.token = token
	return s.err
}

func TestHandleMessage(t *testing.T) {
	sender := &stubSender{}
	h := handlers.NewMailHandler(sender)

	err := h.HandleMessage(`{"user_id":7,"email":"a@x.com","token":"abc123"}`)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", sender.to)
	assert.Equal(t, "abc123", sender.token)
}

func TestHandleMessageInvalidPayload(t *testing.T) {
	sender := &stubSender{}
	h := handlers.NewMailHandler(sender)

	err := h.HandleMessage("not json")
	require.Error(t, err)
	assert.Empty(t, sender.to)
}

func TestHandleMessageSendFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp: connection refused")}
	h := handlers.NewMailHandler(sender)

	err := h.HandleMessage(`{"user_id":7,"email":"a@x.com","token":"abc123"}`)
	assert.Error(t, err)
}
