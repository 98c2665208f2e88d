package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"credo-consent/pkg/testutil"
)

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("no dependencies", func(t *testing.T) {
		rr := testutil.DoRequest(healthHandler(nil), testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
	})

	t.Run("all healthy", func(t *testing.T) {
		rr := testutil.DoRequest(healthHandler(map[string]func(context.Context) error{"postgres": ok, "redis": ok}),
			testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)
	})

	t.Run("failing dependency", func(t *testing.T) {
		rr := testutil.DoRequest(healthHandler(map[string]func(context.Context) error{"postgres": ok, "redis": down}),
			testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		resp := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["redis"])
		assert.Equal(t, "ok", resp.Checks["postgres"])
	})
}
