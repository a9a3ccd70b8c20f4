package handler

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	checkoutapp "checkout-server/internal/application/checkout"
	restmiddleware "checkout-server/internal/presentation/rest/middleware"
)

const invalidBodyMessage = "Invalid request body"

// CheckoutHandler チェックアウト関連ハンドラー
type CheckoutHandler struct {
	checkoutService *checkoutapp.CheckoutApplicationService
}

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutApplicationService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Checkout チェックアウトハンドラー
// @Summary 売上トランザクションを登録
// @Description nonceと金額で売上を登録し、即時に決済確定を要求します。金額省略時は100.00
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "チェックアウトリクエスト"
// @Success 200 {object} CheckoutSuccessResponse "決済成功"
// @Failure 400 {object} CheckoutErrorResponse "入力エラー"
// @Failure 422 {object} CheckoutDeclinedResponse "ゲートウェイが拒否"
// @Failure 500 {object} CheckoutErrorResponse "ゲートウェイエラー"
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	if customerID, ok := c.Get(restmiddleware.CustomerIDKey).(string); ok {
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("checkout.customer_id", customerID))
	}

	// JSON以外の本文は空オブジェクトとして扱う
	var reqBody CheckoutRequest
	if isJSONRequest(c.Request()) {
		if err := c.Bind(&reqBody); err != nil {
			return c.JSON(http.StatusBadRequest, CheckoutErrorResponse{
				OK:    false,
				Error: invalidBodyMessage,
			})
		}
	}

	resp, err := h.checkoutService.Checkout(ctx, &checkoutapp.CheckoutRequest{
		PaymentMethodNonce: reqBody.PaymentMethodNonce,
		Amount:             string(reqBody.Amount),
	})
	if err != nil {
		// 入力検証エラーはエラーハンドリングミドルウェアで400にする
		return err
	}

	switch resp.Outcome {
	case "settled":
		return c.JSON(http.StatusOK, CheckoutSuccessResponse{
			OK:            true,
			TransactionID: resp.TransactionID,
		})
	case "declined":
		details := make([]ValidationDetail, len(resp.Errors))
		for i, e := range resp.Errors {
			details[i] = ValidationDetail{
				Attribute: e.Attribute,
				Code:      e.Code,
				Message:   e.Message,
			}
		}
		return c.JSON(http.StatusUnprocessableEntity, CheckoutDeclinedResponse{
			OK:      false,
			Error:   resp.Message,
			Details: details,
		})
	default:
		return c.JSON(http.StatusInternalServerError, CheckoutErrorResponse{
			OK:    false,
			Error: resp.Message,
		})
	}
}

// isJSONRequest Content-TypeがJSONか
func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(echo.HeaderContentType))
	if err != nil {
		return false
	}
	return mediaType == echo.MIMEApplicationJSON
}
