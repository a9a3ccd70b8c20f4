package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"checkout-server/internal/domain/checkout"
	"checkout-server/internal/domain/processor"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// ErrorResponse 汎用エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// FailureResponse チェックアウトAPIのエラーレスポンス
type FailureResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			if c.Response().Committed {
				logger.Error(c.Request().Context(), "Error after response committed", err, map[string]interface{}{
					"path": c.Request().URL.Path,
				})
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// 入力検証エラー（ゲートウェイ呼び出し前）
	if checkout.IsValidationError(err) {
		logger.Warn(ctx, "Validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, FailureResponse{
			OK:    false,
			Error: checkout.ValidationMessage(err),
		})
	}

	var gatewayErr *processor.GatewayError
	if errors.As(err, &gatewayErr) {
		logger.Error(ctx, "Gateway error", err, map[string]interface{}{
			"op": gatewayErr.Op,
		})
		return c.JSON(http.StatusInternalServerError, FailureResponse{
			OK:    false,
			Error: gatewayErr.Error(),
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
