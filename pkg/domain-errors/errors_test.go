package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"credo-consent/pkg/platform/sentinel"
)

func TestCodes(t *testing.T) {
	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		err := Wrap(fmt.Errorf("interaction u1: %w", sentinel.ErrNotFound), CodeInvalidRequest, "session expired")
		assert.True(t, HasCode(err, CodeInvalidRequest))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("outermost code wins", func(t *testing.T) {
		inner := New(CodeNotAuthenticated, "no user")
		outer := Wrap(inner, CodeServerError, "submission failed")
		assert.Equal(t, CodeServerError, CodeOf(outer))
		assert.False(t, HasCode(outer, CodeNotAuthenticated))
	})

	t.Run("uncoded errors default to server_error", func(t *testing.T) {
		assert.Equal(t, CodeServerError, CodeOf(errors.New("boom")))
	})
}
