package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailService(baseURL string) *MailService {
	return NewMailService(
		"smtp.example.com", 587, "user", "pass",
		"noreply@example.com", "PhoneBook", "Welcome to PhoneBook",
		baseURL,
	)
}

func TestVerifyLink(t *testing.T) {
	s := newTestMailService("http://localhost:3000")
	assert.Equal(t, "http://localhost:3000/users/verify/abc123", s.VerifyLink("abc123"))
}

func TestVerifyLinkTrimsTrailingSlash(t *testing.T) {
	s := newTestMailService("http://localhost:3000/")
	assert.Equal(t, "http://localhost:3000/users/verify/abc123", s.VerifyLink("abc123"))
}

func TestVerifyLinkHasNoLegacyDelimiter(t *testing.T) {
	s := newTestMailService("http://localhost:3000")
	assert.NotContains(t, s.VerifyLink("abc123"), "/verify/:")
}

func TestRenderVerifyBody(t *testing.T) {
	s := newTestMailService("http://localhost:3000")

	body, err := s.renderVerifyBody(s.VerifyLink("abc123"))
	require.NoError(t, err)
	assert.Contains(t, body, `href="http://localhost:3000/users/verify/abc123"`)
	assert.Contains(t, body, "Welcome to PhoneBook")
}
