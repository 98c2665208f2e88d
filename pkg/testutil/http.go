// Package testutil holds request builders and response assertions shared by
// handler and wiring tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

func newRequest(method, path, contentType string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

// NewRequest builds a bodiless request.
func NewRequest(_ *testing.T, method, path string) *http.Request {
	return newRequest(method, path, "", nil)
}

// NewJSONRequest encodes body as JSON. A nil body sends no payload.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return newRequest(method, path, contentTypeJSON, nil)
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err, "encode request body")
	return newRequest(method, path, contentTypeJSON, bytes.NewReader(raw))
}

// NewRequestWithBody sends body verbatim as JSON, for malformed-payload cases.
func NewRequestWithBody(_ *testing.T, method, path, body string) *http.Request {
	return newRequest(method, path, contentTypeJSON, strings.NewReader(body))
}

// NewFormRequest builds a URL-encoded form submission, the way an interaction
// page posts back.
func NewFormRequest(_ *testing.T, method, path string, form url.Values) *http.Request {
	return newRequest(method, path, contentTypeForm, strings.NewReader(form.Encode()))
}

// DoRequest serves req through handler and returns the recorded response.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(target), "decode response body: %s", rr.Body.String())
}

// UnmarshalResponse decodes the response body into a T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	decode(t, rr, &out)
	return &out
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "status code (body: %s)", rr.Body.String())
}

func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertStatusAndError checks the status and the "error" field of the
// httputil error envelope.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	AssertStatus(t, rr, status)
	var envelope struct {
		Error string `json:"error"`
	}
	decode(t, rr, &envelope)
	assert.Equal(t, code, envelope.Error, "error code")
}

// AssertJSONContains checks a single top-level field of a JSON object body.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, expected any) {
	t.Helper()
	var body map[string]any
	decode(t, rr, &body)
	assert.Equal(t, expected, body[key], "value of %q", key)
}

// AssertSeeOther asserts a 303 redirect to location.
func AssertSeeOther(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, rr, http.StatusSeeOther)
	assert.Equal(t, location, rr.Header().Get("Location"), "redirect location")
}
