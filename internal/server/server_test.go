package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmiddleware "github.com/nfrund/onlinehelp/internal/middleware"
)

// captureLogs routes the default logger into a buffer for the duration of
// the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(original) })
	return &buf
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		handler    echo.HandlerFunc
		wantStatus int
		wantLog    []string
		notLog     []string
	}{
		{
			name: "unhandled error logs a stack trace",
			handler: func(c echo.Context) error {
				return errors.New("topic store exploded")
			},
			wantStatus: http.StatusInternalServerError,
			wantLog: []string{
				"Internal Server Error (Unhandled)",
				`error="topic store exploded"`,
				"stack_trace=",
				"runtime/debug/stack.go",
			},
		},
		{
			name: "render failure is logged as server error",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to render help topic").
					SetInternal(errors.New("missing key"))
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"Server error", "status=500", "missing key"},
			notLog:     []string{"stack_trace="},
		},
		{
			name: "missing topic is logged at debug level",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusNotFound, "no help topic or resource \"nope\"")
			},
			wantStatus: http.StatusNotFound,
			wantLog:    []string{"level=DEBUG", "Request failed", "status=404"},
			notLog:     []string{"level=ERROR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			e := echo.New()
			e.Use(middleware.RequestID())
			e.Use(appmiddleware.Logger)
			setupErrorHandling(e)
			e.GET("/fail", tt.handler)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			out := logs.String()
			assert.Contains(t, out, "request_id=")
			assert.Contains(t, out, "path=/fail")
			for _, want := range tt.wantLog {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notLog {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}
