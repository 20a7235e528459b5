package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"socialgraph/app/config"
	"socialgraph/app/logging"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/test"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"duration"`)
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithOutput(config.LogConfig{Level: "info", Format: "text"}, &buf)

	handler := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedHeader string
	}{
		{
			name:           "API route",
			path:           "/api/test",
			expectedHeader: "application/json",
		},
		{
			name:           "Non-API route",
			path:           "/test",
			expectedHeader: "",
		},
		{
			name:           "Short path",
			path:           "/",
			expectedHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			contentType := w.Header().Get("Content-Type")
			assert.Equal(t, tt.expectedHeader, contentType)
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	log := logging.Discard()
	handler := Logger(log)(Recoverer(log)(ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "panic") {
			panic("test panic")
		}
		w.WriteHeader(http.StatusOK)
	}))))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "Normal API request",
			path:           "/api/test",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Panic request",
			path:           "/api/panic",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}
