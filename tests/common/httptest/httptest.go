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

// PerformRequest sends body as JSON (nil for none). A non-empty authToken goes out as a Bearer header.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(router, newRequest(t, method, path, body, authToken))
}

// PerformRequestWithHeaders is PerformRequest plus extra headers such as Idempotency-Key.
func PerformRequestWithHeaders(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string, authToken string) *httptest.ResponseRecorder {
	t.Helper()

	req := newRequest(t, method, path, body, authToken)
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	return serve(router, req)
}

func PerformRequestWithCookies(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie, authToken string) *httptest.ResponseRecorder {
	t.Helper()

	req := newRequest(t, method, path, body, authToken)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(router, req)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newRequest(t *testing.T, method, path string, body any, authToken string) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "request body must be JSON-encodable")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	return req
}

func ExtractCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	return w.Result().Cookies()
}

// ExtractCookie returns nil when the response did not set name.
func ExtractCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range ExtractCookies(w) {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) error {
	t.Helper()

	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "response body is not valid JSON")
	return err
}
