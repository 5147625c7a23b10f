package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AnnaHort/phonebook-auth/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(apperr.Validation("bad input")))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(apperr.Conflict("Email in use")))
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(apperr.Auth("Not authorized")))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("Not found")))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(apperr.Internal(errors.New("boom"))))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("register: %w", apperr.Conflict("Email in use"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Not found", apperr.NotFound("Not found").Error())

	cause := errors.New("dial tcp: refused")
	internal := apperr.Internal(cause)
	assert.Equal(t, "dial tcp: refused", internal.Error())
	assert.ErrorIs(t, internal, cause)

	assert.Equal(t, "internal error", (&apperr.Error{}).Error())
}
