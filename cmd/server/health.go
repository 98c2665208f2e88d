package main

import (
	"context"
	"net/http"
	"sort"
	"time"

	"credo-consent/pkg/platform/httputil"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler reports ok when every dependency check passes, and 503 with
// the failing checks otherwise.
func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
