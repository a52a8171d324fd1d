//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// RequestOption adjusts a request before it is served.
type RequestOption func(*http.Request)

func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithRemoteAddr sets the peer address gin reports as the client IP.
func WithRemoteAddr(addr string) RequestOption {
	return func(r *http.Request) {
		r.RemoteAddr = addr
	}
}

// Serve runs one request through router. body is sent as-is.
func Serve(router http.Handler, method, path string, body io.Reader, opts ...RequestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ServeJSON encodes body as JSON. A nil body sends an empty request.
func ServeJSON(t *testing.T, router http.Handler, method, path string, body any, opts ...RequestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		reader = bytes.NewReader(raw)
		opts = append([]RequestOption{WithHeader("Content-Type", "application/json")}, opts...)
	}
	return Serve(router, method, path, reader, opts...)
}

func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return ServeJSON(t, router, method, path, body, WithBearer(authToken))
}

func PerformRequestWithCookies(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return ServeJSON(t, router, method, path, body, WithCookies(cookies...), WithBearer(authToken))
}

// PostWebhook delivers a provider notification with its signature header.
func PostWebhook(router http.Handler, path string, payload []byte, signature string) *httptest.ResponseRecorder {
	return Serve(router, http.MethodPost, path, bytes.NewReader(payload),
		WithHeader("Content-Type", "application/json"),
		WithHeader("Stripe-Signature", signature))
}

func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) error {
	t.Helper()

	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "decode response body")
	return err
}
