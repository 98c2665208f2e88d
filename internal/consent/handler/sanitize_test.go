package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("trims strings except opted-out fields", func(t *testing.T) {
		req := submitRequest{Consent: " accept ", UID: "\tu1\n"}
		sanitize(&req)
		assert.Equal(t, submitRequest{Consent: " accept ", UID: "u1"}, req)
	})

	t.Run("ignores non-struct and nil targets", func(t *testing.T) {
		s := " x "
		sanitize(&s)
		assert.Equal(t, " x ", s)

		var req *submitRequest
		assert.NotPanics(t, func() { sanitize(req) })
	})
}
