package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-server/internal/domain/checkout"
	"checkout-server/internal/domain/processor"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		handlerErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "正常系: エラーなし",
			handlerErr:     nil,
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "異常系: nonceなし",
			handlerErr:     checkout.ErrMissingNonce,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Missing payment_method_nonce"}`,
		},
		{
			name:           "異常系: 金額不正（ラップされたエラー）",
			handlerErr:     fmt.Errorf("%w: %q", checkout.ErrInvalidAmount, "abc"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Invalid amount"}`,
		},
		{
			name:           "異常系: ゲートウェイエラー",
			handlerErr:     processor.NewGatewayError("sale", processor.ErrServer, "sale error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"ok":false,"error":"gateway server error"}`,
		},
		{
			name:           "異常系: EchoのHTTPエラー",
			handlerErr:     echo.NewHTTPError(http.StatusNotFound, "route not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Not Found","message":"route not found"}`,
		},
		{
			name:           "異常系: メッセージが文字列でないHTTPエラー",
			handlerErr:     echo.NewHTTPError(http.StatusMethodNotAllowed, map[string]string{"k": "v"}),
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `{"error":"Method Not Allowed","message":"Method Not Allowed"}`,
		},
		{
			name:           "異常系: 予期しないエラー",
			handlerErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal_server_error","message":"An unexpected error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := ErrorHandlerMiddleware(newTestLogger(t))(func(c echo.Context) error {
				if tt.handlerErr != nil {
					return tt.handlerErr
				}
				return c.String(http.StatusOK, "ok")
			})

			err := handler(c)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.handlerErr == nil {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestErrorHandlerMiddleware_Committed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ErrorHandlerMiddleware(newTestLogger(t))(func(c echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		return errors.New("late failure")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
