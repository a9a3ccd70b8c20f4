package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

func TestMetricsMiddleware(t *testing.T) {
	otel.SetMeterProvider(noop.NewMeterProvider())
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	tests := []struct {
		name    string
		handler echo.HandlerFunc
		wantErr bool
	}{
		{
			name:    "正常系: 200",
			handler: func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		},
		{
			name:    "正常系: 422",
			handler: func(c echo.Context) error { return c.JSON(http.StatusUnprocessableEntity, map[string]bool{"ok": false}) },
		},
		{
			name:    "異常系: HTTPエラー",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest) },
			wantErr: true,
		},
		{
			name:    "異常系: 予期しないエラー",
			handler: func(c echo.Context) error { return errors.New("boom") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := MetricsMiddleware(metrics)(tt.handler)(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
